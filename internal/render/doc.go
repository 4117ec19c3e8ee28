// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package render writes a change list in one of several output modes.
//
// The default tree mode reads like a YAML document restricted to the parts
// that changed, with a one-character gutter marking each line:
//
//	  spec:
//	    containers:
//	      - name: app
//	~       image: nginx:1.24 → nginx:1.25
//	+       ports:
//	+         - containerPort: 8080
//
// The other modes are a one-line summary (counts), one path per change
// (paths), machine-readable records (json, yaml), an RFC 7386 merge patch
// (merge-patch) and a gojsondiff delta of the whole documents (json-delta).
package render
