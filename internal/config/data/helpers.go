package data

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// EnsureDirPath creates dir and its parents, returning dir.
func EnsureDirPath(dir string, perm os.FileMode) (string, error) {
	if err := os.MkdirAll(dir, perm); err != nil {
		return "", fmt.Errorf("create dir %q: %w", dir, err)
	}
	return dir, nil
}

// EnsureFullPath creates the parent directories of path.
func EnsureFullPath(path string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), perm); err != nil {
		return fmt.Errorf("create parent of %q: %w", path, err)
	}
	return nil
}

// SaveYAML writes v to path. The file is replaced atomically so a crash
// never leaves a truncated settings file behind.
func SaveYAML(path string, v any) error {
	if err := EnsureFullPath(path, 0o700); err != nil {
		return err
	}

	var buff bytes.Buffer
	enc := yaml.NewEncoder(&buff)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buff.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %q: %w", path, err)
	}

	return nil
}

// LoadYAML decodes the file at path into v. An empty file leaves v untouched.
func LoadYAML(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}

	return nil
}

// MustLoadYAML is LoadYAML with a distinct error for a missing file.
func MustLoadYAML(path string, v any) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%q does not exist: %w", path, fs.ErrNotExist)
		}
		return fmt.Errorf("stat %q: %w", path, err)
	}

	return LoadYAML(path, v)
}
