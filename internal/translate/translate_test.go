package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

type recordingSink struct {
	tables  []string
	scripts []string
	err     error
}

func (s *recordingSink) Write(_ context.Context, table, script string) error {
	s.tables = append(s.tables, table)
	s.scripts = append(s.scripts, script)
	return s.err
}

func peopleTable() *qcsv.Table {
	return &qcsv.Table{
		Name:   "people",
		Header: []string{"name", "age"},
		Records: [][]string{
			{"Ann", "30"},
			{"O'Brien", "41"},
		},
	}
}

func TestRender_People(t *testing.T) {
	got := New(Options{}).Render(peopleTable())

	want := "CREATE TABLE people (\"name\" TEXT, \"age\" TEXT);\n" +
		"INSERT INTO people VALUES ('Ann', '30');\n" +
		"INSERT INTO people VALUES ('O''Brien', '41');"
	assert.Equal(t, want, got)
}

func TestRender_NoRecords(t *testing.T) {
	got := New(Options{}).Render(&qcsv.Table{Name: "t", Header: []string{"a", "b", "c"}})
	assert.Equal(t, "CREATE TABLE t (\"a\" TEXT, \"b\" TEXT, \"c\" TEXT);\n", got)
}

func TestRender_RaggedRecordUsesOwnFieldCount(t *testing.T) {
	table := &qcsv.Table{
		Name:    "t",
		Header:  []string{"a", "b"},
		Records: [][]string{{"1", "2", "3"}, {"4"}},
	}

	got := New(Options{}).Render(table)
	assert.Equal(t, "CREATE TABLE t (\"a\" TEXT, \"b\" TEXT);\n"+
		"INSERT INTO t VALUES ('1', '2', '3');\n"+
		"INSERT INTO t VALUES ('4');", got)
}

func TestRender_EmptyAndMultilineValues(t *testing.T) {
	table := &qcsv.Table{
		Name:    "notes",
		Header:  []string{"id", "body"},
		Records: [][]string{{"1", ""}, {"2", "line one\nline two"}},
	}

	got := New(Options{}).Render(table)
	assert.Contains(t, got, "INSERT INTO notes VALUES ('1', '');")
	assert.Contains(t, got, "INSERT INTO notes VALUES ('2', 'line one\nline two');")
}

func TestRender_IdentifiersVerbatimByDefault(t *testing.T) {
	table := &qcsv.Table{
		Name:    "my table",
		Header:  []string{`odd"col`},
		Records: [][]string{{"x"}},
	}

	got := New(Options{}).Render(table)
	assert.Equal(t, "CREATE TABLE my table (\"odd\"col\" TEXT);\nINSERT INTO my table VALUES ('x');", got)
}

func TestRender_QuoteIdentifiers(t *testing.T) {
	table := &qcsv.Table{
		Name:    "my table",
		Header:  []string{`odd"col`, "plain"},
		Records: [][]string{{"x", "y"}},
	}

	got := New(Options{QuoteIdentifiers: true}).Render(table)
	assert.Equal(t, "CREATE TABLE \"my table\" (\"odd\"\"col\" TEXT, \"plain\" TEXT);\n"+
		"INSERT INTO \"my table\" VALUES ('x', 'y');", got)
}

func TestRender_QuoteIdentifiersMatchesDefaultForPlainNames(t *testing.T) {
	plain := New(Options{}).Render(peopleTable())
	quoted := New(Options{QuoteIdentifiers: true}).Render(peopleTable())

	assert.Equal(t, `CREATE TABLE "people"`, quoted[:len(`CREATE TABLE "people"`)])
	assert.NotEqual(t, plain, quoted)
}

func TestApply_DeliversWholeScriptOnce(t *testing.T) {
	tr := New(Options{})
	sink := &recordingSink{}

	require.NoError(t, tr.Apply(context.Background(), peopleTable(), sink))

	require.Len(t, sink.scripts, 1)
	assert.Equal(t, []string{"people"}, sink.tables)
	assert.Equal(t, tr.Render(peopleTable()), sink.scripts[0])
}

func TestApply_WrapsSinkError(t *testing.T) {
	cause := errors.New("table already exists")
	sink := &recordingSink{err: cause}

	err := New(Options{}).Apply(context.Background(), peopleTable(), sink)
	assert.True(t, errors.Is(err, qcsv.ErrSink), "expected ErrSink, got: %v", err)
	assert.True(t, errors.Is(err, cause))
}
