package service

import (
	"errors"
	"fmt"
	"strings"

	"tortilleria-ventas/pkg/validator"
)

var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrProductNotFound  = errors.New("product not found")
)

// ValidationError rejects a request before anything is written.
type ValidationError struct {
	Fields []*validator.ErrorResponse
	msg    string
}

func (e *ValidationError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("field '%s' failed on tag '%s'", f.FailedField, f.Tag))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(fields []*validator.ErrorResponse) *ValidationError {
	return &ValidationError{Fields: fields}
}

func invalidf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Fields: []*validator.ErrorResponse{{FailedField: field, Tag: "invalid"}},
		msg:    fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
