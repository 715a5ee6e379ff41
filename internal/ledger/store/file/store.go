package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

// Store keeps the whole ledger in one JSON document on disk. Every call
// re-reads the file so edits made outside the process are picked up.
type Store struct {
	mu   sync.RWMutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Get(_ context.Context, key ledger.MonthKey) (ledger.MonthEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, err := s.read()
	if err != nil {
		return ledger.MonthEntry{}, err
	}

	entry, ok := snap[key]
	if !ok {
		return ledger.MonthEntry{}, fmt.Errorf("%w: %s", ledger.ErrNotFound, key)
	}

	return entry, nil
}

func (s *Store) GetAll(_ context.Context) (ledger.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read()
}

func (s *Store) Put(_ context.Context, key ledger.MonthKey, entry ledger.MonthEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}

	snap[key] = entry.Clone()

	return s.write(snap)
}

func (s *Store) Delete(_ context.Context, key ledger.MonthKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := snap[key]; !ok {
		return fmt.Errorf("%w: %s", ledger.ErrNotFound, key)
	}

	delete(snap, key)

	return s.write(snap)
}

func (s *Store) ReplaceAll(_ context.Context, snap ledger.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(snap)
}

// read treats a missing file as an empty ledger.
func (s *Store) read() (ledger.Snapshot, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.Snapshot{}, nil
	}

	if err != nil {
		return nil, ledger.WrapStorage("read", err)
	}
	defer f.Close()

	snap, err := ledger.DecodeDocument(f)
	if err != nil {
		return nil, ledger.WrapStorage("read", err)
	}

	return snap, nil
}

// write replaces the document through a temp file so a failed write never
// leaves a truncated ledger behind.
func (s *Store) write(snap ledger.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ledger.WrapStorage("write", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return ledger.WrapStorage("write", err)
	}

	if err := ledger.EncodeDocument(tmp, snap); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return ledger.WrapStorage("write", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return ledger.WrapStorage("write", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return ledger.WrapStorage("write", err)
	}

	return nil
}
