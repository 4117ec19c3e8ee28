// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/node"
)

// filterRegex splits an expression into key, optional operator (with
// optional negation) and target. Examples: "path" (key only),
// "type=added" (key + operator + target), "new!@x" (negated contains).
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Keys lists the filterable change attributes.
var Keys = []string{"type", "path", "old", "new", "value", "embedded"}

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unknown key or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	// If there are no filters specified, go home early.
	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("YD_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if !slices.Contains(Keys, key) {
			log.Errorf("invalid filter: unknown key %q in %s", key, filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// Apply returns the changes matching every expression in spec, in their
// original order.
func Apply(changes []change.Change, spec string) []change.Change {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return changes
	}

	var kept []change.Change
	for _, c := range changes {
		if applyFilters(c, filters) {
			kept = append(kept, c)
		}
	}
	log.Debugf("filters kept %d of %d changes", len(kept), len(changes))
	return kept
}

// applyFilters returns true if the change matches all of the filters.
func applyFilters(c change.Change, filters []Filter) bool {
	for _, filter := range filters {
		value, present := attribute(c, filter.Key)

		// A bare key keeps changes where the attribute exists.
		if filter.Operand == "" {
			if present == filter.Negate {
				return false
			}
			continue
		}

		// A missing attribute never matches, negated or not.
		if !present {
			return false
		}

		result := true
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, filter)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), filter)
		case nil:
			result = checkStringOperand("null", filter)
		default:
			if num, ok := toFloat64(v); ok {
				result = checkNumericOperand(num, filter)
			} else {
				result = checkContainsOperand(v, filter)
			}
		}

		if !result {
			return false
		}
	}

	return true
}

// attribute resolves a filter key against a change. Collections are returned
// as plain maps and slices.
func attribute(c change.Change, key string) (any, bool) {
	switch key {
	case "type":
		return c.Kind.String(), true
	case "path":
		return c.Path.String(), true
	case "embedded":
		if !c.Embedded {
			return nil, false
		}
		return c.EmbeddedAt.String(), true
	case "old":
		return nodeValue(c.Old)
	case "new":
		return nodeValue(c.New)
	case "value":
		return nodeValue(c.Value())
	default:
		return nil, false
	}
}

func nodeValue(n *node.Node) (any, bool) {
	if n == nil {
		return nil, false
	}
	return n.Interface(), true
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against slice or map values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	if filter.Operand != "@" {
		log.Error(fmt.Sprintf("unsupported operand %q for a collection", filter.Operand))
		return false
	}

	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Value]
		return found == !filter.Negate
	default:
		log.Error(fmt.Sprintf("unsupported type for contains filtering: %T", value))
		return false
	}
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "="). Other operands
// compare the number's text.
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=", ">", "<":
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Error("invalid numeric value: " + filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	default:
		return (value < tgt) == !filter.Negate
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}

// toFloat64 normalizes the numeric scalar types to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
