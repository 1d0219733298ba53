package kv

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// File stores each key as a JSON document in a directory.
type File struct {
	dir string
}

// OpenFile returns a file-backed medium rooted at dir, creating it if needed.
func OpenFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("file medium requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) keyPath(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) lockPath() string {
	return filepath.Join(f.dir, "store.lock")
}

// Get reads the value stored under key.
func (f *File) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put atomically replaces the value stored under key.
func (f *File) Put(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return f.withLock(func() error {
		path := f.keyPath(key)
		if existing, err := os.ReadFile(path); err == nil {
			if bytes.Equal(existing, value) {
				return nil
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", key, err)
		}

		tmpFile, err := os.CreateTemp(f.dir, filepath.Base(path)+".tmp")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		name := tmpFile.Name()
		_, err = tmpFile.Write(value)
		if err1 := tmpFile.Close(); err1 != nil && err == nil {
			err = err1
		}
		if err != nil {
			os.Remove(name)
			return fmt.Errorf("write temp file: %w", err)
		}

		if err := os.Rename(name, path); err != nil {
			os.Remove(name)
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	})
}

// Close is a no-op for the file medium.
func (f *File) Close() error {
	return nil
}

// withLock runs fn while holding an exclusive lock on the directory's lock file.
func (f *File) withLock(fn func() error) error {
	lockFile, err := os.OpenFile(f.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}
