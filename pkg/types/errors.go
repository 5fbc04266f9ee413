package types

import "errors"

// Schema data errors.
var (
	ErrInvalidSchemaID             = errors.New("invalid schema ID")
	ErrInvalidArgument             = errors.New("invalid argument")
	ErrUnknownSerializationVersion = errors.New("unknown schema serialization version")
	ErrMalformedContent            = errors.New("malformed schema content")
)

// Merge errors. ErrPatchConflict is raised by the patcher; the update guard
// reports it to callers as ErrEditConflict.
var (
	ErrPatchConflict = errors.New("patch conflict")
	ErrEditConflict  = errors.New("edit conflict")
)
