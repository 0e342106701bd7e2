package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/job-autofill/internal/types"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the profile in a single JSON or YAML document. The format
// follows the file extension (.yaml and .yml are YAML, anything else JSON).
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path. The file need not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// IsYAML reports whether path names a YAML document.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Decode parses a JSON or YAML profile document into values.
func Decode(data []byte, yamlFormat bool) (Values, error) {
	if !yamlFormat {
		var values Values
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse JSON profile: %w", err)
		}
		return values, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}
	values := make(Values, len(doc))
	for k, v := range doc {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML key %s: %w", k, err)
		}
		values[k] = raw
	}
	return values, nil
}

// Encode renders values as a JSON or YAML document.
func Encode(values Values, yamlFormat bool) ([]byte, error) {
	if !yamlFormat {
		return json.MarshalIndent(values, "", "  ")
	}
	doc := make(map[string]any, len(values))
	for k, raw := range values {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode key %s: %w", k, err)
		}
		doc[k] = v
	}
	return yaml.Marshal(doc)
}

func (s *FileStore) read() (Values, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Values{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Values{}, nil
	}
	return Decode(data, IsYAML(s.path))
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, keys ...string) (Values, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make(Values, len(keys))
	for _, k := range keys {
		if raw, ok := all[k]; ok && types.IsProfileKey(k) {
			out[k] = raw
		}
	}
	return out, nil
}

// Set implements Store. The document is rewritten through a temporary file
// in the same directory and renamed into place.
func (s *FileStore) Set(_ context.Context, values Values) error {
	if err := values.CheckKeys(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	for k, raw := range values {
		all[k] = raw
	}
	data, err := Encode(all, IsYAML(s.path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".profile-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace profile file: %w", err)
	}
	return nil
}
