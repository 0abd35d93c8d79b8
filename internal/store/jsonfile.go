package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"todocli/internal/logging"
	"todocli/internal/task"
)

// JSONFile stores the collection as a pretty-printed JSON array.
// Writes overwrite the file in place; a crash mid-write can corrupt it.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON file store at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path implements Store.
func (s *JSONFile) Path() string { return s.path }

// Close implements Store.
func (s *JSONFile) Close() error { return nil }

// Init implements Store. Existing files are left untouched.
func (s *JSONFile) Init(ctx context.Context) (bool, error) {
	if err := ensureDir(s.path); err != nil {
		return false, err
	}
	ok, err := exists(s.path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", s.path, err)
	}
	if ok {
		return false, nil
	}
	if err := s.Save(ctx, nil); err != nil {
		return false, err
	}
	return true, nil
}

// Load implements Store.
// Whitespace-only files load as an empty collection.
func (s *JSONFile) Load(ctx context.Context) ([]task.Task, error) {
	logger := logging.From(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		logger.Debug("store is empty", "path", s.path)
		return []task.Task{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeError{Path: s.path, Err: err}
	}
	if dec.More() {
		return nil, &DecodeError{Path: s.path, Err: errors.New("unexpected data after top-level array")}
	}
	if err := validateDocument(doc); err != nil {
		return nil, &DecodeError{Path: s.path, Err: err}
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &DecodeError{Path: s.path, Err: err}
	}

	logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save implements Store.
func (s *JSONFile) Save(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	data = append(data, '\n')

	if err := ensureDir(s.path); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write store: %w", err)
	}

	logging.From(ctx).Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}
