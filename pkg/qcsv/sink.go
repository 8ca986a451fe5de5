package qcsv

import "context"

// StatementSink receives the rendered script of one table.
//
// Implementations:
//   - ConsoleSink: writes the script to a text stream
//   - StoreSink: executes the script against a relational store
type StatementSink interface {
	// Write delivers the script rendered for table.
	Write(ctx context.Context, table, script string) error
}

// Store is a relational connection that can execute a multi-statement script.
//
// Thread-Safety: NOT required. A Store is owned by a single conversion run.
type Store interface {
	// ExecScript executes every statement in script, in order.
	ExecScript(ctx context.Context, script string) error

	// Close releases the underlying connection.
	Close() error
}

// Connector opens a Store for a destination.
// Different implementations handle the supported store kinds.
type Connector interface {
	// Connect opens the store. The caller must Close it when done.
	Connect(ctx context.Context) (Store, error)
}
