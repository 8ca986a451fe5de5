package qcsv

// TableLoader builds a Table from a record stream or an input file.
// Implementations are NOT required to be safe for concurrent use.
type TableLoader interface {
	// Load treats the first record of stream as the header and every
	// remaining record as a data row.
	Load(name string, stream RecordStream) (*Table, error)

	// LoadFile opens path, derives the table name from its base name and
	// loads it.
	LoadFile(path string) (*Table, error)

	// LoadInput opens in.Path and loads it under in.TableName.
	LoadInput(in InputFile) (*Table, error)
}

// InputScanner expands command line inputs into the list of files to convert.
type InputScanner interface {
	// Expand resolves each path to one or more input files, preserving
	// argument order. Directories expand to the delimited files they contain.
	Expand(paths []string) ([]InputFile, error)
}

// InputFile describes one resolved input.
type InputFile struct {
	// Path is the path as it will be opened.
	Path string

	// TableName is the name derived from the file name. The loader names
	// the table with it.
	TableName string
}
