package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"intime-cli/internal/fsutil"
)

const kvFileName = "intime.json"

// FileKV keeps every key in one JSON object file. Each call re-reads the file so
// writes from another process are picked up. Writes hold an advisory lock on
// intime.json.lock for the whole read-modify-write, so a CLI and a TUI updating
// different keys at once do not lose either update.
type FileKV struct {
	mu   sync.Mutex
	dir  string
	path string
	lock *flock.Flock
}

func OpenFileKV(dir string) (*FileKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("file kv: missing dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, kvFileName)
	return &FileKV{dir: dir, path: path, lock: flock.New(path + ".lock")}, nil
}

// locked runs fn holding both the in-process mutex and the cross-process file lock.
func (f *FileKV) locked(fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", f.lock.Path(), err)
	}
	defer func() { _ = f.lock.Unlock() }()
	return fn()
}

// quarantine moves an undecodable file aside so its bytes survive the rewrite.
func (f *FileKV) quarantine() error {
	dst := fmt.Sprintf("%s.corrupt-%d", f.path, time.Now().UnixMilli())
	if err := os.Rename(f.path, dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileKV) Path() string { return f.path }

func (f *FileKV) read() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return map[string]string{}, nil
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return m, nil
}

func (f *FileKV) write(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.AtomicWriteFile(f.dir, kvFileName+".*.tmp", f.path, b, 0o600)
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set rewrites the file with key updated. A file that no longer decodes is kept
// as intime.json.corrupt-<unixms> and replaced by a fresh one.
func (f *FileKV) Set(_ context.Context, key, value string) error {
	return f.locked(func() error {
		m, err := f.read()
		if err != nil {
			if qerr := f.quarantine(); qerr != nil {
				return fmt.Errorf("%w (keeping corrupt file failed: %v)", err, qerr)
			}
			m = map[string]string{}
		}
		m[key] = value
		return f.write(m)
	})
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	return f.locked(func() error {
		m, err := f.read()
		if err != nil {
			return err
		}
		if _, ok := m[key]; !ok {
			return nil
		}
		delete(m, key)
		return f.write(m)
	})
}

func (f *FileKV) Close() error { return nil }
