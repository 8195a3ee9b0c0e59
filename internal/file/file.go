package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Exists returns a bool indicating if the specified file exists or not. It
// returns false if there was any error performing the check.
func Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// ErrParse is returned by ReadJSON when a file exists but does not hold valid
// JSON for the requested type.
type ErrParse struct {
	Name string
	Err  error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("error parsing %s: %s", e.Name, e.Err)
}

func (e *ErrParse) Unwrap() error {
	return e.Err
}

// ReadJSON unmarshals the contents of the named file into obj. It returns
// false without error when the file does not exist or is empty.
func ReadJSON(name string, obj interface{}) (bool, error) {
	if !Exists(name) {
		return false, nil
	}
	contents, err := os.ReadFile(name)
	if err != nil {
		return false, errors.Wrapf(err, "error reading %s", name)
	}
	if len(contents) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(contents, obj); err != nil {
		return false, &ErrParse{Name: name, Err: err}
	}
	return true, nil
}

// WriteJSON marshals obj and replaces the named file with the result. The
// parent directory is created with 0700 permissions if needed and the file
// itself is only ever readable by its owner. Readers never observe a partially
// written file.
func WriteJSON(name string, obj interface{}) error {
	contents, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrapf(err, "error marshaling contents of %s", name)
	}
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrapf(err, "error creating directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(name)+".*")
	if err != nil {
		return errors.Wrapf(err, "error creating temporary file in %s", dir)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "error writing to %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "error closing %s", tmp.Name())
	}
	// CreateTemp already uses 0600
	if err := os.Rename(tmp.Name(), name); err != nil {
		return errors.Wrapf(err, "error replacing %s", name)
	}
	return nil
}

// Remove deletes the named file. A file that does not exist is not an error.
func Remove(name string) error {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "error deleting %s", name)
	}
	return nil
}
