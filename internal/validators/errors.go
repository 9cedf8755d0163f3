package validators

import "errors"

var (
	// ErrInvalidInput is wrapped by every rule violation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedType is returned for values that are not structs.
	ErrUnsupportedType = errors.New("unsupported type for validation")
)
