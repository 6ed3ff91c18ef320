package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrDecode marks a malformed collection file. Fatal: the run
	// aborts before any mutation.
	ErrDecode = errors.New("collection decode error")
	// ErrWrite marks a failed save. The in-memory collection stays
	// intact so the caller may retry.
	ErrWrite = errors.New("collection write error")
)

const lockRetryDelay = 100 * time.Millisecond

// Store reads and writes a collection file, serializing access with an
// advisory lock placed next to the file.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore builds a Store rooted at the provided path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the whole collection. A missing or malformed
// file is fatal to the run.
func (s *Store) Load(ctx context.Context) (*Collection, error) {
	locked, err := s.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire collection lock: %w", err)
	}
	if !locked {
		return nil, errors.New("collection file is locked by another process")
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrDecode, s.path, err)
	}

	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrDecode, s.path, err)
	}
	return &col, nil
}

// Save encodes the collection and writes it atomically: a temp file in
// the target directory is renamed over the destination after a
// successful write.
func (s *Store) Save(ctx context.Context, col *Collection) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire collection lock: %w", err)
	}
	if !locked {
		return errors.New("collection file is locked by another process")
	}
	defer s.lock.Unlock()

	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrWrite, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replace %s: %w", ErrWrite, s.path, err)
	}
	return nil
}
