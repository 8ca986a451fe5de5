package loader

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"

	"github.com/vvka-141/qcsv/internal/files/filesystem"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// Loader implements qcsv.TableLoader.
// Loader holds no per-load state and may be reused for any number of inputs.
type Loader struct {
	fsProvider filesystem.FileSystemProvider
	opts       qcsv.ReaderOptions
	enc        encoding.Encoding
}

// NewLoader creates a loader reading from the OS filesystem.
// Returns an error wrapping qcsv.ErrInvalidConfig for unusable options.
func NewLoader(opts qcsv.ReaderOptions) (*Loader, error) {
	return NewLoaderWithFS(filesystem.NewOSFileSystem(), opts)
}

// NewLoaderWithFS creates a loader with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewLoaderWithFS(fsProvider filesystem.FileSystemProvider, opts qcsv.ReaderOptions) (*Loader, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	enc, err := resolveEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	return &Loader{
		fsProvider: fsProvider,
		opts:       opts,
		enc:        enc,
	}, nil
}

// Load pulls one record from stream as the header and every remaining
// record as a data row, preserving input order.
//
// Returns qcsv.ErrEmptyInput if the stream has no records, and
// qcsv.ErrRecordRead (wrapping the underlying cause) if any read fails.
func (l *Loader) Load(name string, stream qcsv.RecordStream) (*qcsv.Table, error) {
	header, err := stream.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", name, qcsv.ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: header: %w: %w", name, qcsv.ErrRecordRead, err)
	}

	records := make([][]string, 0)
	for {
		record, err := stream.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w: %w", name, len(records)+1, qcsv.ErrRecordRead, err)
		}
		records = append(records, record)
	}

	return &qcsv.Table{
		Name:    name,
		Header:  header,
		Records: records,
	}, nil
}

// LoadFile opens path, derives the table name from its base name and loads it.
//
// Returns qcsv.ErrIO if the file cannot be opened, its name is not valid
// text, or its compressed framing is unreadable.
func (l *Loader) LoadFile(path string) (*qcsv.Table, error) {
	name, err := TableName(path)
	if err != nil {
		return nil, err
	}
	return l.LoadInput(qcsv.InputFile{Path: path, TableName: name})
}

// LoadInput loads a resolved input under the table name it carries. An
// empty TableName is derived from the path.
func (l *Loader) LoadInput(in qcsv.InputFile) (*qcsv.Table, error) {
	if in.TableName == "" {
		return l.LoadFile(in.Path)
	}

	f, err := l.fsProvider.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", in.Path, qcsv.ErrIO, err)
	}
	defer f.Close()

	src, err := decompress(f, in.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", in.Path, qcsv.ErrIO, err)
	}
	defer src.Close()

	return l.Load(in.TableName, l.newReader(src, in.Path))
}

var _ qcsv.TableLoader = (*Loader)(nil)
