// Package loader reads character-delimited input into qcsv.Table values.
//
// The first record of every input is the header; every later record is a
// data row. Fields are opaque strings: no trimming, no type coercion and no
// field-count validation. A table either loads completely or not at all.
//
// # Usage
//
//	l, err := loader.NewLoader(qcsv.ReaderOptions{})
//	if err != nil {
//	    return err
//	}
//	table, err := l.LoadFile("./data/people.csv")
//
// Inputs ending in .gz or .zst are decompressed transparently, and inputs in
// a legacy text encoding are decoded to UTF-8 before tokenizing.
package loader
