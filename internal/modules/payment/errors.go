package payment

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrServiceNotFound    = errors.New("service not found")
	ErrDuplicateReference = errors.New("duplicate external reference")
)
