package profiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"journal2ebook/internal/margins"
)

// fieldCount is the number of comma-separated fields in a profile line.
const fieldCount = 7

var (
	ErrInvalidName       = errors.New("invalid profile name")
	ErrDuplicateProfile  = errors.New("profile already exists")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNoProfileSelected = errors.New("no profile selected")
)

// Settings are the conversion parameters a profile remembers.
type Settings struct {
	SkipFirst bool            `json:"skip_first" yaml:"skip_first"`
	Columns   bool            `json:"columns" yaml:"columns"`
	Sliders   margins.Sliders `json:"sliders" yaml:"sliders"`
}

// Profile is a named set of settings, typically one per journal.
type Profile struct {
	Name     string `json:"name" yaml:"name"`
	Settings `yaml:",inline"`
}

// ParseError reports a malformed line in a profile file.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("profile line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidateName rejects names that would break the line format.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, ",\r\n") {
		return fmt.Errorf("%w: %q contains a comma or line break", ErrInvalidName, name)
	}
	// ParseLine trims these, so they would not survive a reload
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has leading or trailing spaces", ErrInvalidName, name)
	}
	if strings.HasPrefix(name, "[") || strings.Trim(name, `'"`) != name {
		return fmt.Errorf("%w: %q starts with a bracket or is quoted", ErrInvalidName, name)
	}
	return nil
}

// FormatLine renders p as name,skipFirst,columns,s1,s2,s3,s4.
func FormatLine(p Profile) string {
	fields := []string{
		p.Name,
		formatBool(p.SkipFirst),
		formatBool(p.Columns),
		formatFloat(p.Sliders.Top),
		formatFloat(p.Sliders.Left),
		formatFloat(p.Sliders.Bottom),
		formatFloat(p.Sliders.Right),
	}
	return strings.Join(fields, ",")
}

// ParseLine decodes one profile line. Brackets left over from list-style
// writers are stripped.
func ParseLine(line string) (Profile, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")

	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return Profile{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var p Profile
	var err error
	p.Name = strings.Trim(fields[0], `'"`)
	if p.SkipFirst, err = parseBool(fields[1]); err != nil {
		return Profile{}, fmt.Errorf("skip first: %w", err)
	}
	if p.Columns, err = parseBool(fields[2]); err != nil {
		return Profile{}, fmt.Errorf("columns: %w", err)
	}

	values := make([]float64, 4)
	for i := range values {
		values[i], err = strconv.ParseFloat(fields[3+i], 64)
		if err != nil {
			return Profile{}, fmt.Errorf("slider %d: %w", i+1, err)
		}
	}
	p.Sliders = margins.Sliders{Top: values[0], Left: values[1], Bottom: values[2], Right: values[3]}

	return p, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1", "true", "True":
		return true, nil
	case "0", "false", "False":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag %q", s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
