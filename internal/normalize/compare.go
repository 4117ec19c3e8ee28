// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"math"
	"sort"
	"strings"

	"github.com/tfctl/yd/internal/node"
)

// Compare is a total order over nodes. Scalars come before sequences, which
// come before mappings. Scalars order null < bool < number < string; ints and
// floats compare by value, with an int placed before an equal float. Compare
// returns 0 exactly when node.Equal reports true.
func Compare(a, b *node.Node) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if a.Kind != b.Kind {
		return cmpInt(kindRank(a.Kind), kindRank(b.Kind))
	}

	switch a.Kind {
	case node.Sequence:
		for i := 0; i < len(a.Items) && i < len(b.Items); i++ {
			if c := Compare(a.Items[i], b.Items[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(a.Items), len(b.Items))

	case node.Mapping:
		ak, bk := sortedKeys(a), sortedKeys(b)
		for i := 0; i < len(ak) && i < len(bk); i++ {
			if c := strings.Compare(ak[i], bk[i]); c != 0 {
				return c
			}
			av, _ := a.Get(ak[i])
			bv, _ := b.Get(bk[i])
			if c := Compare(av, bv); c != 0 {
				return c
			}
		}
		return cmpInt(len(ak), len(bk))

	default:
		return CompareScalars(a.Value, b.Value)
	}
}

// CompareScalars orders two scalar values.
func CompareScalars(a, b any) int {
	ra, rb := scalarRank(a), scalarRank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}

	switch av := a.(type) {
	case nil:
		return 0
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case string:
		return strings.Compare(av, b.(string))
	}

	if ai, ok := a.(int64); ok {
		if bi, ok := b.(int64); ok {
			return cmpInt64(ai, bi)
		}
	}
	if c := cmpFloat(toFloat(a), toFloat(b)); c != 0 {
		return c
	}
	// Numerically equal: int before float.
	_, aInt := a.(int64)
	_, bInt := b.(int64)
	switch {
	case aInt == bInt:
		return 0
	case aInt:
		return -1
	default:
		return 1
	}
}

func kindRank(k node.Kind) int {
	switch k {
	case node.Scalar:
		return 0
	case node.Sequence:
		return 1
	default:
		return 2
	}
}

func scalarRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int64, float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

func toFloat(v any) float64 {
	switch v := v.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return math.NaN()
	}
}

// cmpFloat places NaN before every other number.
func cmpFloat(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return -1
	case bn:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	return cmpInt64(int64(a), int64(b))
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sortedKeys(n *node.Node) []string {
	keys := n.Keys()
	sort.Strings(keys)
	return keys
}
