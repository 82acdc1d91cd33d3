package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/xmlschema"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeTimeout           = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapGenerateError converts an engine error to a coded error.
func WrapGenerateError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var parseErr *xmlschema.ParseError
	switch {
	case errors.As(err, &parseErr):
		coded = &CodedError{
			Code:    ErrCodeParseError,
			Message: "malformed XML document",
			Cause:   err,
		}
	case errors.Is(err, xmlschema.ErrNoMatch), errors.Is(err, xmlschema.ErrInvalidXPath):
		coded = &CodedError{
			Code:    ErrCodeInvalidInput,
			Message: "xpath selection failed",
			Cause:   err,
		}
	case errors.Is(err, codegen.ErrUnknownFormat):
		coded = &CodedError{
			Code:    ErrCodeUnsupportedFormat,
			Message: fmt.Sprintf("supported formats: %v", codegen.Formats()),
			Cause:   err,
		}
	case errors.Is(err, xmltypes.ErrNotXML), errors.Is(err, xmltypes.ErrNoSamples):
		coded = &CodedError{
			Code:    ErrCodeInvalidInput,
			Message: err.Error(),
		}
	case errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{
			Code:    ErrCodeTimeout,
			Message: "generation timed out",
			Cause:   err,
		}
	default:
		coded = &CodedError{
			Code:    ErrCodeInvalidInput,
			Message: err.Error(),
		}
	}

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
