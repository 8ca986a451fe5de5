package qcsv

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // All inputs converted
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or flags
	ExitConnectionError = 11 // Destination store could not be opened
	ExitApprovalDenied  = 12 // User denied overwrite approval
	ExitSinkError       = 13 // At least one table could not be written (--strict only)
	ExitIOError         = 14 // Input file could not be opened or read
	ExitEmptyInput      = 15 // Input has no header record
	ExitRecordRead      = 16 // Malformed record in an input
)

const (
	// DefaultDelimiter is the field separator used when none is configured.
	DefaultDelimiter = ','

	// DefaultEncoding is the text encoding assumed for input files.
	DefaultEncoding = "utf-8"

	// ConsoleDestination selects standard output as the destination.
	ConsoleDestination = "-"

	// ColumnType is the only column type ever produced.
	ColumnType = "TEXT"

	// MaxErrorPreviewLength is the maximum number of characters of a failed
	// script shown in error messages.
	MaxErrorPreviewLength = 200

	// DefaultForceApprovalCountdown is how long --force waits before
	// dropping tables, giving the user a last chance to press Ctrl+C.
	DefaultForceApprovalCountdown = 5 * time.Second
)
