// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the small set of file operations the converter needs,
// enabling testability through an in-memory implementation while production
// code reads from the OS filesystem.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
