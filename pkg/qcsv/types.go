package qcsv

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DestinationKind identifies where rendered scripts are delivered.
type DestinationKind int

const (
	// DestinationConsole writes scripts to standard output.
	DestinationConsole DestinationKind = iota
	// DestinationSQLite executes scripts against an embedded SQLite file.
	DestinationSQLite
	// DestinationPostgres executes scripts against a PostgreSQL database.
	DestinationPostgres
	// DestinationMySQL executes scripts against a MySQL database.
	DestinationMySQL
)

// String returns the string representation of the destination kind.
func (k DestinationKind) String() string {
	switch k {
	case DestinationConsole:
		return "console"
	case DestinationSQLite:
		return "sqlite"
	case DestinationPostgres:
		return "postgres"
	case DestinationMySQL:
		return "mysql"
	default:
		return fmt.Sprintf("DestinationKind(%d)", int(k))
	}
}

// Destination is a parsed output destination.
type Destination struct {
	// Kind selects the sink and store implementation.
	Kind DestinationKind

	// Target is the SQLite file path or the driver connection string.
	// Empty for the console.
	Target string

	// Raw is the destination exactly as the user gave it.
	Raw string

	// Auth selects managed-database authentication. PostgreSQL only.
	Auth CloudAuth
}

// AuthMethod represents how a PostgreSQL destination authenticates.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Password from the connection string
	AuthMethodAWSIAM                         // AWS RDS IAM database authentication
	AuthMethodAzureEntraID                   // Azure Entra ID token
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM via the Cloud SQL connector
)

// String returns the flag spelling of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "standard"
	case AuthMethodAWSIAM:
		return "aws"
	case AuthMethodAzureEntraID:
		return "azure"
	case AuthMethodGoogleIAM:
		return "gcp"
	default:
		return fmt.Sprintf("AuthMethod(%d)", int(a))
	}
}

// ParseAuthMethod parses a --pg-auth value. Empty selects AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "azure", "entra":
		return AuthMethodAzureEntraID, nil
	case "gcp", "google":
		return AuthMethodGoogleIAM, nil
	default:
		return AuthMethodStandard, fmt.Errorf("unknown PostgreSQL auth method %q (want standard, aws, azure or gcp): %w", s, ErrInvalidConfig)
	}
}

// CloudAuth carries the settings for token-based PostgreSQL authentication.
type CloudAuth struct {
	Method AuthMethod

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// Azure Service Principal credentials. When any is empty the
	// DefaultAzureCredential chain is used instead.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GCPInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthMethodGoogleIAM.
	GCPInstance string
}

// Validate checks that the settings required by Method are present.
func (a *CloudAuth) Validate() error {
	switch a.Method {
	case AuthMethodStandard, AuthMethodAzureEntraID:
		return nil
	case AuthMethodAWSIAM:
		if a.AWSRegion == "" {
			return fmt.Errorf("AWS IAM auth requires a region (use --aws-region or $AWS_REGION): %w", ErrInvalidConfig)
		}
		return nil
	case AuthMethodGoogleIAM:
		if strings.Count(a.GCPInstance, ":") != 2 {
			return fmt.Errorf("--pg-auth gcp requires --gcp-instance as project:region:instance, got %q: %w", a.GCPInstance, ErrInvalidConfig)
		}
		return nil
	default:
		return fmt.Errorf("invalid auth method %d: %w", int(a.Method), ErrInvalidConfig)
	}
}

// IsConsole reports whether scripts go to standard output.
func (d Destination) IsConsole() bool {
	return d.Kind == DestinationConsole
}

// ReaderOptions controls how delimited input is tokenized.
type ReaderOptions struct {
	// Delimiter is the field separator. Zero selects one from the file
	// extension (tab for .tsv and .tab, comma otherwise).
	Delimiter rune

	// Comment, if not zero, marks lines to skip.
	Comment rune

	// LazyQuotes allows quotes to appear in unquoted fields.
	LazyQuotes bool

	// TrimLeadingSpace ignores leading white space in a field.
	TrimLeadingSpace bool

	// Encoding is the text encoding label of the input (WHATWG names,
	// e.g. "utf-8", "latin1", "windows-1252"). Empty means UTF-8.
	Encoding string
}

// Validate checks that the options can configure a csv.Reader.
func (o *ReaderOptions) Validate() error {
	var errs []error

	if o.Delimiter != 0 && !validDelimiter(o.Delimiter) {
		errs = append(errs, fmt.Errorf("invalid delimiter %q: %w", o.Delimiter, ErrInvalidConfig))
	}
	if o.Comment != 0 && !validDelimiter(o.Comment) {
		errs = append(errs, fmt.Errorf("invalid comment character %q: %w", o.Comment, ErrInvalidConfig))
	}
	if o.Comment != 0 && o.Comment == o.Delimiter {
		errs = append(errs, fmt.Errorf("comment character must differ from delimiter: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

func validDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// ConvertConfig contains all parameters needed for a conversion run.
type ConvertConfig struct {
	// Inputs are the file or directory paths to convert, in order.
	Inputs []string

	// Destination selects the console or a store.
	Destination Destination

	// Reader configures tokenizing of every input.
	Reader ReaderOptions

	// QuoteIdentifiers quotes the table name and escapes embedded double
	// quotes in identifiers.
	QuoteIdentifiers bool

	// Overwrite drops each target table before it is created.
	Overwrite bool

	// Force bypasses interactive approval when used with Overwrite.
	Force bool

	// Strict fails the run after all tables were attempted if any
	// table could not be written.
	Strict bool

	// Timeout bounds the whole run. Zero disables it.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the ConvertConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ConvertConfig) Validate() error {
	var errs []error

	if len(c.Inputs) == 0 {
		errs = append(errs, fmt.Errorf("at least one input is required: %w", ErrInvalidConfig))
	}

	if c.Overwrite && c.Destination.IsConsole() {
		errs = append(errs, fmt.Errorf("overwrite requires a store destination: %w", ErrInvalidConfig))
	}

	// Force requires Overwrite to be set
	if c.Force && !c.Overwrite {
		errs = append(errs, fmt.Errorf("force flag requires overwrite to be enabled: %w", ErrInvalidConfig))
	}

	if c.Destination.Auth.Method != AuthMethodStandard && c.Destination.Kind != DestinationPostgres {
		errs = append(errs, fmt.Errorf("--pg-auth %s requires a PostgreSQL destination: %w", c.Destination.Auth.Method, ErrInvalidConfig))
	}
	if err := c.Destination.Auth.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if err := c.Reader.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
