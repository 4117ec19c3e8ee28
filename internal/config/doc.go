// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for yd's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/yd.yaml or $HOME/.config/yd.yaml
//   - macOS: $HOME/Library/Application Support/yd.yaml
//   - Windows: %APPDATA%/yd.yaml
//
// YD_CFG_FILE overrides the location. Recognized keys:
//
//	sort_keys: [name, key, id]   # record fields tried first when sorting lists
//	color: auto                  # auto, always or never
//	colors:
//	  added: "#00ff00"
//	  removed: "9"
//	  modified: "11"
//	cache:
//	  clean: 24                  # hours before cached S3 objects are purged
//	s3:
//	  region: us-east-1
//	  profile: default
//	log:
//	  max_size: 10               # megabytes, with YD_LOG_FILE
//	  max_backups: 3
//	  max_age: 28                # days
package config
