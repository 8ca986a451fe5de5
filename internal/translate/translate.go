package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// Options controls identifier handling.
type Options struct {
	// QuoteIdentifiers quotes the table name and escapes embedded double
	// quotes in table and column names.
	QuoteIdentifiers bool
}

// Translator turns tables into SQL scripts.
// A Translator is stateless and safe for concurrent use.
type Translator struct {
	opts Options
}

// New creates a Translator.
func New(opts Options) *Translator {
	return &Translator{opts: opts}
}

// TableIdentifier returns the table name as it appears in the script.
func (tr *Translator) TableIdentifier(name string) string {
	if tr.opts.QuoteIdentifiers {
		return QuoteIdentifier(name)
	}
	return name
}

func (tr *Translator) column(name string) string {
	if tr.opts.QuoteIdentifiers {
		return QuoteIdentifier(name)
	}
	return `"` + name + `"`
}

// Render returns the schema statement, a newline, and one INSERT per record
// joined by newlines. There is no newline after the last INSERT; a table
// without records yields the schema statement followed by a newline.
func (tr *Translator) Render(t *qcsv.Table) string {
	table := tr.TableIdentifier(t.Name)

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(table)
	sb.WriteString(" (")
	for i, field := range t.Header {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tr.column(field))
		sb.WriteString(" ")
		sb.WriteString(qcsv.ColumnType)
	}
	sb.WriteString(");\n")

	for i, record := range t.Records {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("INSERT INTO ")
		sb.WriteString(table)
		sb.WriteString(" VALUES (")
		for j, value := range record {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(QuoteLiteral(value))
		}
		sb.WriteString(");")
	}

	return sb.String()
}

// Apply renders t and hands the whole script to sink as one batch.
// A sink failure is returned wrapped with qcsv.ErrSink.
func (tr *Translator) Apply(ctx context.Context, t *qcsv.Table, sink qcsv.StatementSink) error {
	script := tr.Render(t)
	if err := sink.Write(ctx, tr.TableIdentifier(t.Name), script); err != nil {
		return fmt.Errorf("%s: %w: %w", t.Name, qcsv.ErrSink, err)
	}
	return nil
}
