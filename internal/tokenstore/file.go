package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/medicare/clinicctl/internal/model"
)

// File keeps the credential pair in a single JSON file, readable only
// by the owning user.
type File struct {
	path string
}

var _ Store = (*File)(nil)

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Save(pair model.TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write tokens: %w", err)
	}
	return nil
}

func (f *File) Load() (model.TokenPair, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.TokenPair{}, nil
		}
		return model.TokenPair{}, fmt.Errorf("failed to read tokens: %w", err)
	}

	var pair model.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return pair, nil
}

func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}
