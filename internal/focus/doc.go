// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package focus narrows a document to one subtree before it is compared.
//
// Paths use the same form the diff output prints, a.b[0].c, with
// bracketed quoted fields for keys containing dots: metadata["app.kubernetes.io/name"].
// Anything else is handed to gjson, so queries such as
// spec.containers.#(name=="app").env work too.
package focus
