// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// A prediction either returns its value or a *StructuredError whose Code
// classifies the failure. Only the HTTP boundary translates codes into
// status codes.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeValidation,
//	    "could not convert field to float",
//	    parseErr,
//	    map[string]any{
//	        "field": "temp",
//	    },
//	)
package errors
