// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

// Package validators provides input validation for request models.
//
// Validation rules live on the models as `validate` struct tags and are
// enforced by go-playground/validator. Callers depend on the [Validator]
// interface so services and handlers stay testable.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
