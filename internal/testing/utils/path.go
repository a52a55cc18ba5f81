package path

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/thrasher-corp/execsim/database"
)

// Exported public errors
var (
	ErrRootNotFound = errors.New("could not find root of execsim")
)

// RootPathFromCWD returns the system path to the module root from the current
// working directory. Expects to find a go.mod file
func RootPathFromCWD() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return RootPath(wd)
}

// RootPath returns the system path to the module root from a sub-directory path
func RootPath(p string) (string, error) {
	parts := strings.Split(p, string(filepath.Separator))
	for i := len(parts); i > 0; i-- {
		dir := strings.Join(parts[:i], string(filepath.Separator))
		if dir == "" {
			dir = string(filepath.Separator)
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
	}
	return "", ErrRootNotFound
}

// MigrationDirFromCWD returns the absolute database migration folder
func MigrationDirFromCWD() (string, error) {
	root, err := RootPathFromCWD()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, database.MigrationDir), nil
}
