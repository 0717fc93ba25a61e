package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/exp/mmap"
)

// Hooks used for testing (overridable)
var (
	readFile   = readMapped
	writeFile  = os.WriteFile
	stat       = os.Stat
	readDir    = os.ReadDir
	remove     = os.Remove
	removeAll  = os.RemoveAll
	rename     = os.Rename
	createTemp = createTempFile
	mkdirAll   = os.MkdirAll
	isNotExist = func(err error) bool { return errors.Is(err, fs.ErrNotExist) }
)

var exists = func(path string) bool {
	_, err := stat(path)
	return err == nil
}

// readMapped reads a whole file through a read-only memory map.
func readMapped(path string) ([]byte, error) {
	fi, err := stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	// mmap reports an empty mapping as closed
	if fi.Size() == 0 {
		return []byte{}, nil
	}

	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read mmap %q: %w", path, err)
	}
	return data, nil
}

func createTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return f, f.Name(), nil
}

// getters and setters for test override
func GetReadFile() func(string) ([]byte, error)  { return readFile }
func SetReadFile(f func(string) ([]byte, error)) { readFile = f }
func GetWriteFile() func(string, []byte, os.FileMode) error {
	return writeFile
}
func SetWriteFile(f func(string, []byte, os.FileMode) error) {
	writeFile = f
}
func GetRemoveAll() func(string) error       { return removeAll }
func SetRemoveAll(f func(string) error)      { removeAll = f }
func GetRename() func(string, string) error  { return rename }
func SetRename(f func(string, string) error) { rename = f }
func GetCreateTemp() func(string, string) (io.WriteCloser, string, error) {
	return createTemp
}
func SetCreateTemp(f func(string, string) (io.WriteCloser, string, error)) {
	createTemp = f
}
