package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeResponseValidation Code = "RESPONSE_VALIDATION_ERROR"
	CodeInvalidQuantity    Code = "INVALID_QUANTITY"
	CodeNotFound           Code = "NOT_FOUND"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeRequest            Code = "REQUEST_ERROR"
	CodeInternal           Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeResponseValidation: {
		Retryable:      true,
		PublicMessage:  "server returned an unexpected response",
		DetailsAllowed: true,
	},
	CodeInvalidQuantity: {
		Retryable:      false,
		PublicMessage:  "quantity is not allowed",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Retryable:      false,
		PublicMessage:  "resource not found",
		DetailsAllowed: false,
	},
	CodeUnauthorized: {
		Retryable:      false,
		PublicMessage:  "authentication required",
		DetailsAllowed: false,
	},
	CodeRequest: {
		Retryable:      true,
		PublicMessage:  "request failed",
		DetailsAllowed: true,
	},
	CodeInternal: {
		Retryable:      true,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
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

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
