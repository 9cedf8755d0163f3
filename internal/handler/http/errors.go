// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package http

import "errors"

// Request-shape errors raised by the handlers themselves, before a service
// is called. All of them are answered with 400 except the missing
// credential, which the session gate answers with 401.
var (
	// ErrMissingToken is returned by the session gate when the configured
	// transport carries no credential.
	ErrMissingToken = errors.New("you are not authenticated")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidForm is returned when a multipart body cannot be parsed.
	ErrInvalidForm = errors.New("invalid multipart form")

	// ErrInvalidPathParam is returned when a numeric path or query parameter
	// does not parse.
	ErrInvalidPathParam = errors.New("invalid identifier")

	// ErrTooManyRequests is returned by the rate limiter.
	ErrTooManyRequests = errors.New("too many requests")
)
