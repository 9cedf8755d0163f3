// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address is
// configured. The server has no other transport, so this is a fatal
// misconfiguration.
var errNoHandlersAreCreated = errors.New("no handlers are created")
