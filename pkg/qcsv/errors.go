package qcsv

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := converter.Convert(ctx, config)
//	if errors.Is(err, qcsv.ErrEmptyInput) {
//	    // Handle an input without a header record
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIO indicates an input file could not be opened or read.
	ErrIO = errors.New("i/o error")

	// ErrEmptyInput indicates an input stream had no header record.
	ErrEmptyInput = errors.New("empty input: could not read header")

	// ErrRecordRead indicates a malformed record in the delimited stream.
	ErrRecordRead = errors.New("malformed record")

	// ErrConnectionFailed indicates the destination store could not be opened.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrSink indicates a script could not be written to the sink.
	ErrSink = errors.New("sink write failed")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")
)

// usageErrorPatterns are message fragments produced by cobra/pflag for
// command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrSink):
		return ExitSinkError
	case errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, ErrEmptyInput):
		return ExitEmptyInput
	case errors.Is(err, ErrRecordRead):
		return ExitRecordRead
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
