package storage

import (
	"context"
	"sync"

	"github.com/gamerecs/gamerecs/internal/file"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type fileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a Store that persists all of its values as a single
// JSON object in the file at the specified path. The file and its parent
// directory are created on first write and the file is deleted once it no
// longer holds any values.
func NewFileStore(path string) Store {
	return &fileStore{
		path: path,
	}
}

func (f *fileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (f *fileStore) Set(_ context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.loadForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *fileStore) Remove(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.loadForWrite()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(values, key)
	}
	return f.save(values)
}

func (f *fileStore) load() (map[string]string, error) {
	values := map[string]string{}
	if _, err := file.ReadJSON(f.path, &values); err != nil {
		return nil, errors.Wrap(err, "error parsing session file")
	}
	return values, nil
}

// loadForWrite is load, except that a file that cannot be parsed is treated as
// empty so that writing replaces it.
func (f *fileStore) loadForWrite() (map[string]string, error) {
	values, err := f.load()
	var parseErr *file.ErrParse
	if errors.As(err, &parseErr) {
		glog.Warningf("discarding unparseable session file: %s", parseErr)
		return map[string]string{}, nil
	}
	return values, err
}

func (f *fileStore) save(values map[string]string) error {
	if len(values) == 0 {
		return file.Remove(f.path)
	}
	return errors.Wrap(file.WriteJSON(f.path, values), "error saving session file")
}
