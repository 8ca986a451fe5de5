// Package report records the outcome of a conversion run and renders it as
// a summary table.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// Status is the outcome of one table.
type Status int

const (
	StatusWritten Status = iota
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Entry describes one converted input.
type Entry struct {
	Input    string
	Table    string
	Columns  int
	Rows     int
	Status   Status
	Err      error
	Duration time.Duration
}

// Report collects the entries of one run.
// Not safe for concurrent use.
type Report struct {
	RunID       string
	Destination string
	Started     time.Time
	Entries     []Entry
}

// New starts a report for a run against destination.
func New(destination string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Destination: destination,
		Started:     time.Now(),
	}
}

// Add appends an entry.
func (r *Report) Add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Failed returns the entries whose sink write failed.
func (r *Report) Failed() []Entry {
	var failed []Entry
	for _, e := range r.Entries {
		if e.Status == StatusFailed {
			failed = append(failed, e)
		}
	}
	return failed
}

// Written returns the number of tables delivered successfully.
func (r *Report) Written() int {
	return len(r.Entries) - len(r.Failed())
}

// Render writes the summary table to w.
func (r *Report) Render(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Run %s -> %s\n", r.RunID, r.Destination)
	if len(r.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "(no inputs)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Input", "Table", "Columns", "Rows", "Status", "Time", "Error"})

	totalRows := 0
	for _, e := range r.Entries {
		totalRows += e.Rows
		t.AppendRow(table.Row{
			e.Input,
			e.Table,
			e.Columns,
			e.Rows,
			e.Status.String(),
			e.Duration.Round(time.Millisecond).String(),
			errorPreview(e.Err),
		})
	}
	t.AppendFooter(table.Row{"", "", "", totalRows, fmt.Sprintf("%d/%d", r.Written(), len(r.Entries)), "", ""})
	t.Render()
}

// errorPreview flattens err to one line of at most qcsv.MaxErrorPreviewLength
// characters. Truncation never splits a character.
func errorPreview(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if utf8.RuneCountInString(msg) > qcsv.MaxErrorPreviewLength {
		runes := []rune(msg)
		msg = string(runes[:qcsv.MaxErrorPreviewLength-3]) + "..."
	}
	return msg
}
