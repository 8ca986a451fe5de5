package sink

import (
	"context"
	"fmt"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// StoreSink executes each script against a relational store.
// The store is shared across tables and is closed by its owner, not the sink.
type StoreSink struct {
	store   qcsv.Store
	replace bool
}

// NewStoreSink creates a sink over store. With replace set, each table is
// dropped before its script runs.
// Panics if store is nil.
func NewStoreSink(store qcsv.Store, replace bool) *StoreSink {
	if store == nil {
		panic("store cannot be nil")
	}
	return &StoreSink{store: store, replace: replace}
}

// Write implements qcsv.StatementSink.
func (s *StoreSink) Write(ctx context.Context, table string, script string) error {
	if s.replace {
		if err := s.store.ExecScript(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}

	if err := s.store.ExecScript(ctx, script); err != nil {
		return fmt.Errorf("execute script for %s: %w", table, err)
	}
	return nil
}

var _ qcsv.StatementSink = (*StoreSink)(nil)
