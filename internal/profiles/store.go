package profiles

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads every profile in path. A missing file is an empty list.
func Load(path string) ([]Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open profile file %s: %w", path, err)
	}
	defer file.Close()

	var list []Profile
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		p, err := ParseLine(text)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Err: err}
		}
		list = append(list, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	return list, nil
}

// Append adds a single profile line to the end of path, creating it if needed.
func Append(path string, p Profile) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open profile file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(FormatLine(p) + "\n"); err != nil {
		return fmt.Errorf("failed to append profile %q: %w", p.Name, err)
	}
	return nil
}

// Rewrite replaces the contents of path with list.
func Rewrite(path string, list []Profile) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var b strings.Builder
	for _, p := range list {
		b.WriteString(FormatLine(p))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write profile file %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}
	return nil
}

// Store keeps the profile list in memory alongside the file it came from.
// It is not safe for concurrent use.
type Store struct {
	path     string
	profiles []Profile
}

// Open loads the store backed by path.
func Open(path string) (*Store, error) {
	list, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, profiles: list}, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// List returns a copy of all profiles in file order.
func (s *Store) List() []Profile {
	out := make([]Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Names returns the profile names in file order.
func (s *Store) Names() []string {
	names := make([]string, len(s.profiles))
	for i, p := range s.profiles {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of profiles.
func (s *Store) Len() int {
	return len(s.profiles)
}

// Get returns the profile at index i.
func (s *Store) Get(i int) (Profile, error) {
	if i < 0 || i >= len(s.profiles) {
		return Profile{}, fmt.Errorf("%w: index %d", ErrProfileNotFound, i)
	}
	return s.profiles[i], nil
}

// Find returns the first profile called name and its index.
func (s *Store) Find(name string) (Profile, int, error) {
	for i, p := range s.profiles {
		if p.Name == name {
			return p, i, nil
		}
	}
	return Profile{}, -1, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// Add appends p to the file and the in-memory list.
func (s *Store) Add(p Profile) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if _, _, err := s.Find(p.Name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateProfile, p.Name)
	}
	if err := Append(s.path, p); err != nil {
		return err
	}
	s.profiles = append(s.profiles, p)
	return nil
}

// Update overwrites the settings of the profile at index i and rewrites the file.
// The profile keeps its name.
func (s *Store) Update(i int, settings Settings) (Profile, error) {
	if i < 0 || i >= len(s.profiles) {
		return Profile{}, fmt.Errorf("%w: index %d", ErrNoProfileSelected, i)
	}

	updated := make([]Profile, len(s.profiles))
	copy(updated, s.profiles)
	updated[i].Settings = settings

	if err := Rewrite(s.path, updated); err != nil {
		return Profile{}, err
	}
	s.profiles = updated
	return updated[i], nil
}
