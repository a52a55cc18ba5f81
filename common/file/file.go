package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Default permission modes for created files and folders
const (
	DefaultPermissionOctal os.FileMode = 0o755
	filePermission         os.FileMode = 0o644
)

var errPathIsEmpty = errors.New("file path is empty")

// Write writes selected data to a file or returns an error if it fails. This
// func also ensures that all files are set to this permission (only rw access
// for the running user and the group the user is a member of)
func Write(file string, data []byte) error {
	if file == "" {
		return errPathIsEmpty
	}
	if err := os.MkdirAll(filepath.Dir(file), DefaultPermissionOctal); err != nil {
		return err
	}
	return os.WriteFile(file, data, filePermission)
}

// WriteAtomic writes data to a temporary file in the target folder and then
// renames it over file, so readers never observe a partial write
func WriteAtomic(file string, data []byte) error {
	if file == "" {
		return errPathIsEmpty
	}
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, DefaultPermissionOctal); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err = tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err = tmp.Chmod(filePermission); err != nil {
		return cleanup(err)
	}
	if err = tmp.Close(); err != nil {
		return cleanup(err)
	}
	if err = os.Rename(tmpName, file); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not replace %s: %w", file, err)
	}
	return nil
}

// Writer creates a writer to a file or returns an error if it fails. This
// func also ensures that all files are set to this permission (only rw access
// for the running user and the group the user is a member of)
func Writer(file string) (*os.File, error) {
	if file == "" {
		return nil, errPathIsEmpty
	}
	if err := os.MkdirAll(filepath.Dir(file), DefaultPermissionOctal); err != nil {
		return nil, err
	}
	return os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
}

// Move moves a file from a source path to a destination path. This must be
// used across the codebase for compatibility with Docker volumes and Golang
// (fixes Invalid cross-device link when using os.Rename)
func Move(sourcePath, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), DefaultPermissionOctal); err != nil {
		return err
	}
	inputFile, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	outputFile, err := os.Create(destPath)
	if err != nil {
		inputFile.Close()
		return err
	}
	_, err = io.Copy(outputFile, inputFile)
	inputFile.Close()
	outputFile.Close()
	if err != nil {
		return err
	}
	return os.Remove(sourcePath)
}

// Exists returns whether or not a file or path exists
func Exists(name string) bool {
	_, err := os.Stat(name)
	return !os.IsNotExist(err)
}
