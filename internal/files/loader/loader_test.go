package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/qcsv/internal/files/filesystem"
	"github.com/vvka-141/qcsv/pkg/qcsv"
)

func newTestLoader(t *testing.T, mfs *filesystem.MemoryFileSystem, opts qcsv.ReaderOptions) *Loader {
	t.Helper()
	l, err := NewLoaderWithFS(mfs, opts)
	require.NoError(t, err)
	return l
}

func streamOf(content string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	return r
}

// failingStream yields its records, then fails with err.
type failingStream struct {
	records [][]string
	err     error
}

func (s *failingStream) Read() ([]string, error) {
	if len(s.records) == 0 {
		return nil, s.err
	}
	rec := s.records[0]
	s.records = s.records[1:]
	return rec, nil
}

func TestLoad_HeaderAndRecords(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	table, err := l.Load("people", streamOf("name,age\nAnn,30\nO'Brien,41\n"))
	require.NoError(t, err)

	assert.Equal(t, "people", table.Name)
	assert.Equal(t, []string{"name", "age"}, table.Header)
	assert.Equal(t, [][]string{{"Ann", "30"}, {"O'Brien", "41"}}, table.Records)
}

func TestLoad_HeaderOnly(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	table, err := l.Load("empty_rows", streamOf("a,b,c\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, table.Header)
	assert.Empty(t, table.Records)
}

func TestLoad_EmptyStream(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	table, err := l.Load("nothing", streamOf(""))
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, qcsv.ErrEmptyInput), "expected ErrEmptyInput, got: %v", err)
}

func TestLoad_RaggedRecordsKept(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	table, err := l.Load("ragged", streamOf("a,b\n1,2,3\n4\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4"}}, table.Records)
}

func TestLoad_QuotedFields(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	table, err := l.Load("notes", streamOf("id,text\n1,\"hello, world\"\n2,\"line one\nline two\"\n3,\"say \"\"hi\"\"\"\n"))
	require.NoError(t, err)
	require.Len(t, table.Records, 3)
	assert.Equal(t, "hello, world", table.Records[0][1])
	assert.Equal(t, "line one\nline two", table.Records[1][1])
	assert.Equal(t, `say "hi"`, table.Records[2][1])
}

func TestLoad_FieldsNotTrimmed(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	table, err := l.Load("spaces", streamOf(" a , b \n 1 ,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{" a ", " b "}, table.Header)
	assert.Equal(t, []string{" 1 ", "2"}, table.Records[0])
}

func TestLoad_MalformedRecord(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	table, err := l.Load("broken", streamOf("a,b\n1,2\n3,\"unterminated\n"))
	assert.Nil(t, table)
	require.True(t, errors.Is(err, qcsv.ErrRecordRead), "expected ErrRecordRead, got: %v", err)

	var parseErr *csv.ParseError
	assert.True(t, errors.As(err, &parseErr), "expected the csv.ParseError to be reachable")
}

func TestLoad_MalformedHeader(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})

	_, err := l.Load("broken", streamOf("a,b\"c\n1,2\n"))
	assert.True(t, errors.Is(err, qcsv.ErrRecordRead), "expected ErrRecordRead, got: %v", err)
}

func TestLoad_StreamFaultIsNotPartiallyRecovered(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{})
	cause := errors.New("disk on fire")

	table, err := l.Load("faulty", &failingStream{
		records: [][]string{{"a"}, {"1"}, {"2"}},
		err:     cause,
	})
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, qcsv.ErrRecordRead))
	assert.True(t, errors.Is(err, cause))
}

func TestLoadFile_DerivesNameAndReads(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("people.csv", "name,age\nAnn,30\nO'Brien,41\n")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	table, err := l.LoadFile("/data/people.csv")
	require.NoError(t, err)
	assert.Equal(t, "people", table.Name)
	assert.Equal(t, []string{"name", "age"}, table.Header)
	assert.Len(t, table.Records, 2)
}

func TestLoadInput_UsesGivenTableName(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("export.tsv", "a\tb\n1\t2\n")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	table, err := l.LoadInput(qcsv.InputFile{Path: "/data/export.tsv", TableName: "staff"})
	require.NoError(t, err)
	assert.Equal(t, "staff", table.Name)
	assert.Equal(t, []string{"a", "b"}, table.Header, "delimiter still follows the path")

	table, err = l.LoadInput(qcsv.InputFile{Path: "/data/export.tsv"})
	require.NoError(t, err)
	assert.Equal(t, "export", table.Name, "empty name is derived from the path")
}

func TestLoadFile_FirstLineIsHeaderNotSkipped(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("one.csv", "only\n")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	table, err := l.LoadFile("one.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, table.Header)
	assert.Empty(t, table.Records)
}

func TestLoadFile_Missing(t *testing.T) {
	l := newTestLoader(t, filesystem.NewMemoryFileSystem("/data"), qcsv.ReaderOptions{})

	_, err := l.LoadFile("missing.csv")
	assert.True(t, errors.Is(err, qcsv.ErrIO), "expected ErrIO, got: %v", err)
}

func TestLoadFile_EmptyFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("empty.csv", "")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	_, err := l.LoadFile("empty.csv")
	assert.True(t, errors.Is(err, qcsv.ErrEmptyInput), "expected ErrEmptyInput, got: %v", err)
}

func TestLoadFile_TSVUsesTab(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("scores.tsv", "team\tpoints\nred, inc\t7\n")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	table, err := l.LoadFile("scores.tsv")
	require.NoError(t, err)
	assert.Equal(t, "scores", table.Name)
	assert.Equal(t, []string{"red, inc", "7"}, table.Records[0])
}

func TestLoadFile_ConfiguredDelimiterWins(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("eu.csv", "name;price\nbread;1,20\n")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{Delimiter: ';'})

	table, err := l.LoadFile("eu.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"bread", "1,20"}, table.Records[0])
}

func TestLoadFile_CommentsSkipped(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("c.csv", "# exported by hand\na,b\n# note\n1,2\n")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{Comment: '#'})

	table, err := l.LoadFile("c.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Records)
}

func TestLoadFile_StripsUTF8BOM(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("bom.csv", "\ufeffid,name\n1,x\n")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	table, err := l.LoadFile("bom.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.Header)
}

func TestLoadFile_Latin1(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFileBytes("menu.csv", []byte("dish\ncaf\xe9\n"))
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{Encoding: "latin1"})

	table, err := l.LoadFile("menu.csv")
	require.NoError(t, err)
	assert.Equal(t, "café", table.Records[0][0])
}

func TestLoadFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := io.WriteString(zw, "name,age\nAnn,30\n")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFileBytes("people.csv.gz", buf.Bytes())
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	table, err := l.LoadFile("people.csv.gz")
	require.NoError(t, err)
	assert.Equal(t, "people", table.Name)
	assert.Equal(t, [][]string{{"Ann", "30"}}, table.Records)
}

func TestLoadFile_Zstd(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = io.WriteString(zw, "k\tv\na\tb\n")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFileBytes("pairs.tsv.zst", buf.Bytes())
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	table, err := l.LoadFile("pairs.tsv.zst")
	require.NoError(t, err)
	assert.Equal(t, "pairs", table.Name)
	assert.Equal(t, [][]string{{"a", "b"}}, table.Records)
}

func TestLoadFile_CorruptGzipHeader(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("bad.csv.gz", "definitely not gzip")
	l := newTestLoader(t, mfs, qcsv.ReaderOptions{})

	_, err := l.LoadFile("bad.csv.gz")
	assert.True(t, errors.Is(err, qcsv.ErrIO), "expected ErrIO, got: %v", err)
}

func TestNewLoader_UnknownEncoding(t *testing.T) {
	_, err := NewLoaderWithFS(filesystem.NewMemoryFileSystem("/"), qcsv.ReaderOptions{Encoding: "klingon-8"})
	assert.True(t, errors.Is(err, qcsv.ErrInvalidConfig), "expected ErrInvalidConfig, got: %v", err)
}

func TestNewLoaderWithFS_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewLoaderWithFS(nil, qcsv.ReaderOptions{})
	})
}
