package services

import (
	"context"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

type mockConnector struct {
	store qcsv.Store
	err   error
}

func (m *mockConnector) Connect(_ context.Context) (qcsv.Store, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.store, nil
}

type mockStore struct {
	executed []string
	failures map[int]error // 1-based call number -> error
	closed   bool
}

func (m *mockStore) ExecScript(_ context.Context, script string) error {
	m.executed = append(m.executed, script)
	return m.failures[len(m.executed)]
}

func (m *mockStore) Close() error {
	m.closed = true
	return nil
}

type mockApprover struct {
	approved bool
	err      error
	asked    []string
}

func (m *mockApprover) RequestApproval(_ context.Context, destination string) (bool, error) {
	m.asked = append(m.asked, destination)
	return m.approved, m.err
}

type mockScanner struct {
	inputs []qcsv.InputFile
	err    error
}

func (m *mockScanner) Expand(_ []string) ([]qcsv.InputFile, error) {
	return m.inputs, m.err
}

type mockLoader struct {
	tables map[string]*qcsv.Table
	errs   map[string]error
	loaded []string
}

func (m *mockLoader) Load(name string, _ qcsv.RecordStream) (*qcsv.Table, error) {
	return m.tables[name], m.errs[name]
}

func (m *mockLoader) LoadInput(in qcsv.InputFile) (*qcsv.Table, error) {
	return m.LoadFile(in.Path)
}

func (m *mockLoader) LoadFile(path string) (*qcsv.Table, error) {
	m.loaded = append(m.loaded, path)
	if err := m.errs[path]; err != nil {
		return nil, err
	}
	return m.tables[path], nil
}
