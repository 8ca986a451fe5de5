package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vvka-141/qcsv/internal/db"
	"github.com/vvka-141/qcsv/internal/report"
	"github.com/vvka-141/qcsv/internal/sink"
	"github.com/vvka-141/qcsv/internal/translate"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// LoaderFactory builds a table loader for a set of reader options.
type LoaderFactory func(qcsv.ReaderOptions) (qcsv.TableLoader, error)

// ConnectorFactory builds a store connector for a destination.
type ConnectorFactory func(qcsv.Destination) (qcsv.Connector, error)

// ConversionService runs conversions.
// Thread-Safety: NOT safe for concurrent Convert() calls on the same instance.
type ConversionService struct {
	loaderFactory    LoaderFactory
	scanner          qcsv.InputScanner
	connectorFactory ConnectorFactory
	approver         qcsv.Approver
	logger           qcsv.Logger
	stdout           io.Writer
}

// NewConversionService creates a ConversionService with all dependencies injected.
// Panics on nil dependencies: these are wiring mistakes, not runtime conditions.
func NewConversionService(
	loaderFactory LoaderFactory,
	scanner qcsv.InputScanner,
	connectorFactory ConnectorFactory,
	approver qcsv.Approver,
	logger qcsv.Logger,
	stdout io.Writer,
) *ConversionService {
	if loaderFactory == nil {
		panic("loaderFactory cannot be nil")
	}
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if stdout == nil {
		panic("stdout cannot be nil")
	}

	return &ConversionService{
		loaderFactory:    loaderFactory,
		scanner:          scanner,
		connectorFactory: connectorFactory,
		approver:         approver,
		logger:           logger,
		stdout:           stdout,
	}
}

// Convert converts every input of cfg, in order, into cfg.Destination.
//
// Load, I/O and connection errors stop the run. A failed sink write is
// logged, recorded in the report, and the run continues with the next
// input; with cfg.Strict the run then ends with an error wrapping
// qcsv.ErrSink. The report is returned even when err is non-nil.
func (s *ConversionService) Convert(ctx context.Context, cfg qcsv.ConvertConfig) (*report.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rep := report.New(db.Redact(cfg.Destination))
	s.logger.Verbose("Run %s", rep.RunID)

	inputs, err := s.scanner.Expand(cfg.Inputs)
	if err != nil {
		return rep, err
	}
	if len(inputs) == 0 {
		return rep, fmt.Errorf("no delimited files found in %v: %w", cfg.Inputs, qcsv.ErrInvalidConfig)
	}
	s.logger.Verbose("Resolved %d input file(s)", len(inputs))

	loader, err := s.loaderFactory(cfg.Reader)
	if err != nil {
		return rep, err
	}

	out, closeSink, err := s.openSink(ctx, cfg, rep.Destination)
	if err != nil {
		return rep, err
	}
	defer closeSink()

	tr := translate.New(translate.Options{QuoteIdentifiers: cfg.QuoteIdentifiers})

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("conversion interrupted before %s: %w", input.Path, err)
		}

		start := time.Now()
		table, err := loader.LoadInput(input)
		if err != nil {
			return rep, err
		}
		s.logger.Verbose("Loaded %s as table %s (%d columns, %d rows)",
			input.Path, table.Name, len(table.Header), len(table.Records))

		entry := report.Entry{
			Input:   input.Path,
			Table:   table.Name,
			Columns: len(table.Header),
			Rows:    len(table.Records),
			Status:  report.StatusWritten,
		}

		if err := tr.Apply(ctx, table, out); err != nil {
			if !errors.Is(err, qcsv.ErrSink) {
				return rep, err
			}
			entry.Status = report.StatusFailed
			entry.Err = err
			s.logger.Error("%v", err)
		}

		entry.Duration = time.Since(start)
		rep.Add(entry)
	}

	failed := len(rep.Failed())
	if !cfg.Destination.IsConsole() {
		s.logger.Info("✓ Wrote %d of %d table(s) to %s", rep.Written(), len(rep.Entries), rep.Destination)
	}
	if cfg.Strict && failed > 0 {
		return rep, fmt.Errorf("%d of %d table(s) could not be written: %w", failed, len(rep.Entries), qcsv.ErrSink)
	}
	return rep, nil
}

// openSink returns the sink for cfg.Destination and a function that
// releases it. Store destinations are connected once per run; with
// cfg.Overwrite the user must approve dropping tables first.
func (s *ConversionService) openSink(ctx context.Context, cfg qcsv.ConvertConfig, display string) (qcsv.StatementSink, func(), error) {
	if cfg.Destination.IsConsole() {
		return sink.NewConsoleSink(s.stdout), func() {}, nil
	}

	connector, err := s.connectorFactory(cfg.Destination)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	s.logger.Verbose("Connecting to %s", display)
	store, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			s.logger.Error("failed to close %s: %v", display, err)
		}
	}

	if cfg.Overwrite {
		approved, err := s.approver.RequestApproval(ctx, db.TargetName(cfg.Destination))
		if err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("approval failed: %w", err)
		}
		if !approved {
			closeStore()
			return nil, nil, qcsv.ErrApprovalDenied
		}
	}

	return sink.NewStoreSink(store, cfg.Overwrite), closeStore, nil
}
