package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeNotFound         Code = "NOT_FOUND"
	CodeSnapshotInvalid  Code = "SNAPSHOT_INVALID"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeDependency       Code = "DEPENDENCY_ERROR"
	CodeInternal         Code = "INTERNAL_ERROR"
)

// Metadata describes how callers may treat a given code.
type Metadata struct {
	Retryable     bool
	Recoverable   bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:     false,
		Recoverable:   false,
		PublicMessage: "validation failed",
	},
	CodeNotFound: {
		Retryable:     false,
		Recoverable:   true,
		PublicMessage: "resource not found",
	},
	CodeSnapshotInvalid: {
		Retryable:     false,
		Recoverable:   true,
		PublicMessage: "persisted snapshot discarded",
	},
	CodeStoreUnavailable: {
		Retryable:     true,
		Recoverable:   true,
		PublicMessage: "storage medium unavailable",
	},
	CodeDependency: {
		Retryable:     true,
		Recoverable:   false,
		PublicMessage: "dependency unavailable",
	},
	CodeInternal: {
		Retryable:     true,
		Recoverable:   false,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Recoverable reports whether the error may be absorbed by falling back to
// default empty state instead of being propagated.
func Recoverable(err error) bool {
	typed := As(err)
	if typed == nil {
		return false
	}
	return MetadataFor(typed.Code()).Recoverable
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
