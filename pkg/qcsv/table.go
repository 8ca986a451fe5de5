package qcsv

// Table is the in-memory form of one delimited input.
//
// Records are not required to have the same number of fields as Header.
// A Table is built once by a TableLoader, consumed once by the translator
// and then dropped; it is never mutated after construction.
type Table struct {
	// Name is the table name, usually derived from the input file name.
	Name string

	// Header holds the column names taken from the first record.
	Header []string

	// Records holds the remaining records in input order.
	Records [][]string
}

// RecordStream yields the records of a character-delimited input.
// Read returns io.EOF once the stream is exhausted.
// *csv.Reader satisfies this interface.
type RecordStream interface {
	Read() (record []string, err error)
}
