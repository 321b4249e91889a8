package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeMalformedRecord     Code = "malformed_record"
	CodeDuplicateIdentifier Code = "duplicate_identifier"
	CodeDanglingManager     Code = "dangling_manager_reference"
	CodeNoRoot              Code = "no_root_found"
	CodeMultipleRoots       Code = "multiple_roots_found"
	CodeCyclicChain         Code = "cyclic_management_chain"
	CodeConfig              Code = "config"
	CodeInternal            Code = "internal"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// IsDataError reports whether err was caused by the contents of the employee
// data rather than by configuration or infrastructure.
func IsDataError(err error) bool {
	switch GetCode(err) {
	case CodeMalformedRecord, CodeDuplicateIdentifier, CodeDanglingManager,
		CodeNoRoot, CodeMultipleRoots, CodeCyclicChain:
		return true
	default:
		return false
	}
}
