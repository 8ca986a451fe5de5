// Package files provides input-side functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Expansion of input arguments into an ordered list of files
//   - loader: Reading one delimited file into a header and records
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/qcsv/internal/files/loader"
//	    "github.com/vvka-141/qcsv/internal/files/scanner"
//	)
//
//	inputs, err := scanner.NewScanner().Expand([]string{"./exports"})
//	l, err := loader.NewLoader(qcsv.ReaderOptions{})
//	for _, in := range inputs {
//	    table, err := l.LoadFile(in)
//	    ...
//	}
package files
