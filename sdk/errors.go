package sdk

import "errors"

var (
	// ErrTagMismatch is returned when a RawVal carries a different tag than
	// the target type expects.
	ErrTagMismatch = errors.New("raw value tag mismatch")
	// ErrOutOfRange is returned when a value does not fit the target.
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnsupportedType is returned for types without a conversion.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrInvalidSymbol is returned for malformed symbols.
	ErrInvalidSymbol = errors.New("invalid symbol")
)
