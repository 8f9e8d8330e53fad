// Package profiles persists keyboard state snapshots as individual JSON
// files under a profiles directory, one file per named profile.
package profiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnsureDir creates the profiles directory if it does not already exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func path(dir, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return "", fmt.Errorf("profiles: invalid name %q", name)
	}
	return filepath.Join(dir, name+".json"), nil
}

// Save writes text (a KeyboardState JSON document) to <dir>/<name>.json.
func Save(dir, name, text string) error {
	p, err := path(dir, name)
	if err != nil {
		return err
	}
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("profiles: save %q: %w", name, err)
	}
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		return fmt.Errorf("profiles: save %q: %w", name, err)
	}
	return nil
}

// Load reads the text of a saved profile.
func Load(dir, name string) (string, error) {
	p, err := path(dir, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("profiles: load %q: %w", name, err)
	}
	return string(data), nil
}

// Delete removes a saved profile. Deleting a profile that does not exist is
// not an error.
func Delete(dir, name string) error {
	p, err := path(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("profiles: delete %q: %w", name, err)
	}
	return nil
}

// List returns the names of all saved profiles, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profiles: list: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
