// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Data: raw key/value tree unmarshaled from YAML.
//
// Callers should use the typed getters rather than reading Data directly.
type Type struct {
	Source string
	Data   map[string]interface{}

	// tried is set once a getter has attempted a lazy load, so a missing
	// file is looked for only once.
	tried bool
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// init attempts to load configuration at process start. Errors are ignored so
// yd still runs without a config file.
func init() {
	_, _ = Load()
	Config.tried = true
}

// GetBool returns the boolean at the dotted key path, or the single
// defaultValue when the key is missing.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return typed(key, "a bool", defaultValue, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// GetInt returns the integer at the dotted key path. YAML numbers decode as
// int, int64 or float64.
func GetInt(key string, defaultValue ...int) (int, error) {
	return typed(key, "an int", defaultValue, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	})
}

// GetString returns the string at the dotted key path. A value that exists
// but is not a string is an error, even when a default is given.
func GetString(key string, defaultValue ...string) (string, error) {
	return typed(key, "a string", defaultValue, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// GetStringSlice returns the list of strings at the dotted key path, e.g.
// sort_keys.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return typed(key, "a list of strings", defaultValue, func(v any) ([]string, bool) {
		switch l := v.(type) {
		case []string:
			return l, true
		case []interface{}:
			out := make([]string, len(l))
			for i, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out[i] = s
			}
			return out, true
		}
		return nil, false
	})
}

// typed resolves key and converts it with conv. The default applies only to
// a missing key.
func typed[T any](key, want string, def []T, conv func(any) (T, bool)) (T, error) {
	var zero T

	val, err := lookup(key)
	if err != nil {
		if len(def) == 1 {
			return def[0], nil
		}
		return zero, err
	}

	v, ok := conv(val)
	if !ok {
		return zero, fmt.Errorf("value at %q is not %s", key, want)
	}
	return v, nil
}

func lookup(key string) (any, error) {
	if !Config.tried {
		_, _ = Load()
		Config.tried = true
	}
	return Config.get(key)
}

// Load reads the YAML configuration file and populates the global Config.
//
// Returns the loaded Type or an error if the file could not be located or
// parsed.
func Load() (Type, error) {
	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data,
		tried:  true,
	}

	return Config, nil
}

// get traverses the configuration tree using a dotted key path (e.g.
// "colors.added"). Returns the raw value (any) if found.
func (cfg *Type) get(kspec string) (any, error) {
	var current interface{} = cfg.Data
	for _, key := range strings.Split(kspec, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("no value found at %q", kspec)
		}
		current, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("no value found at %q", kspec)
		}
	}
	return current, nil
}

// getConfigFile returns the absolute path to the YAML config file. If the
// YD_CFG_FILE environment variable is set, it is treated as the full path to
// the config file. Otherwise, the OS-specific user configuration directory
// returned by os.UserConfigDir is used with the filename "yd.yaml". The file
// must exist and not be a directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv("YD_CFG_FILE"); cfgPath != "" {
		if fileInfo, err := os.Stat(cfgPath); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file from YD_CFG_FILE: %s", cfgPath)
				return cfgPath, nil
			}
			return "", fmt.Errorf("YD_CFG_FILE points to a directory: %s", cfgPath)
		}
		return "", fmt.Errorf("config file not found at YD_CFG_FILE path: %s", cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "yd.yaml")
	if fileInfo, err := os.Stat(file); err == nil {
		if !fileInfo.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, nil
		}
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
