package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"journal2ebook/internal/common"
)

// Well-known settings keys.
const (
	KeyLastDir  = "last_dir"
	KeyProfiles = "profiles"
)

// unsetValue marks a key that was written but never configured.
const unsetValue = "None"

// Settings is the key : value file remembering the last directory used
// and the location of the profile file.
type Settings struct {
	path   string
	values map[string]string
}

// LoadSettings reads path. When the file does not exist an empty one is
// created and created is true so the caller can tell the user.
func LoadSettings(path string) (s *Settings, created bool, err error) {
	s = &Settings{path: path, values: make(map[string]string)}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), common.DefaultFilePermissions); err != nil {
			return nil, false, fmt.Errorf("failed to create settings directory: %w", err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return nil, false, fmt.Errorf("failed to create settings file %s: %w", path, err)
		}
		return s, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open settings file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseSettingsLine(scanner.Text())
		if ok {
			s.values[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return s, false, nil
}

// parseSettingsLine splits on the first colon. Spaces are removed from the
// key and the value is trimmed.
func parseSettingsLine(line string) (key, value string, ok bool) {
	if strings.TrimSpace(line) == "" {
		return "", "", false
	}
	key, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key = strings.ReplaceAll(key, " ", "")
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// Path returns the backing file.
func (s *Settings) Path() string {
	return s.path
}

// Get returns the value for key. The literal "None" counts as unset.
func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok || v == unsetValue {
		return "", false
	}
	return v, true
}

// Set stores value under key. It does not write the file.
func (s *Settings) Set(key, value string) {
	s.values[key] = value
}

// Keys returns all keys in sorted order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes every entry as "key : value".
func (s *Settings) Save() error {
	var b strings.Builder
	for _, k := range s.Keys() {
		fmt.Fprintf(&b, "%s : %s\n", k, s.values[k])
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to save settings file %s: %w", s.path, err)
	}
	return nil
}

// LastDir returns the directory a PDF was last opened from.
func (s *Settings) LastDir() string {
	v, _ := s.Get(KeyLastDir)
	return v
}

// ProfilesPath returns the configured profile file, if any.
func (s *Settings) ProfilesPath() (string, bool) {
	return s.Get(KeyProfiles)
}
