package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// resolveEncoding maps an encoding label to a decoder source.
// Empty and UTF-8 labels return nil; UTF-8 input is only stripped of a BOM.
func resolveEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, qcsv.DefaultEncoding) || strings.EqualFold(label, "utf8") {
		return nil, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, qcsv.ErrInvalidConfig)
	}
	return enc, nil
}

// newReader builds the record stream for one input. Header detection is the
// loader's job, so every line, including the first, is returned as a record.
func (l *Loader) newReader(r io.Reader, path string) *csv.Reader {
	var decoder transform.Transformer
	if l.enc != nil {
		decoder = l.enc.NewDecoder()
	} else {
		decoder = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}

	reader := csv.NewReader(transform.NewReader(r, decoder))
	reader.Comma = delimiterFor(path, l.opts.Delimiter)
	reader.Comment = l.opts.Comment
	reader.LazyQuotes = l.opts.LazyQuotes
	reader.TrimLeadingSpace = l.opts.TrimLeadingSpace
	reader.FieldsPerRecord = -1 // ragged records are kept as-is
	return reader
}

// delimiterFor returns the configured delimiter, or one chosen from the
// file extension when none is configured.
func delimiterFor(path string, configured rune) rune {
	if configured != 0 {
		return configured
	}
	switch dataExt(path) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return qcsv.DefaultDelimiter
	}
}

// decompress wraps r with a decompressor selected by the file extension.
func decompress(r io.Reader, path string) (io.ReadCloser, error) {
	switch compressionExt(path) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}
