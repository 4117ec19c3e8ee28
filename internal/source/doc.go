// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source reads the raw bytes of the documents being compared. A
// document is named by a file path, "-" for stdin, or an S3 URI of the form
// s3://bucket/key with an optional ?versionId= query. Versioned S3 objects
// are immutable and are cached on disk.
package source
