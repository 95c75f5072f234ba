package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupt is returned by FileKV.Get when the storage file is not a JSON object.
var ErrCorrupt = errors.New("storage file is corrupt")

// FileKV keeps every key in one JSON object on disk. Each call re-reads the
// file so writes made by other processes are visible (last write wins).
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV returns a FileKV rooted at path. The file is created on first write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the storage file location
func (f *FileKV) Path() string {
	return f.path
}

// Get implements KV
func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set implements KV
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		// A corrupt file is replaced rather than blocking every write
		values = map[string]string{}
	}
	values[key] = value
	return f.writeAll(values)
}

// Delete implements KV
func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		values = map[string]string{}
	}
	if _, ok := values[key]; !ok && err == nil {
		return nil
	}
	delete(values, key)
	return f.writeAll(values)
}

// Close implements KV
func (f *FileKV) Close() error {
	return nil
}

// readAll loads the whole file. A missing or empty file is an empty store.
func (f *FileKV) readAll() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return values, nil
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

func (f *FileKV) writeAll(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(f.path, data, 0644)
}

// atomicWrite writes data to a temp file in the same directory, syncs it,
// then renames it over path.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".beacon-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}
