package profiles

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"journal2ebook/internal/margins"
)

func sampleProfile(name string) Profile {
	return Profile{
		Name: name,
		Settings: Settings{
			SkipFirst: true,
			Columns:   false,
			Sliders:   margins.Sliders{Top: 0.12, Left: 0.05, Bottom: 0.87, Right: 0.95},
		},
	}
}

func TestFormatAndParseLine(t *testing.T) {
	p := sampleProfile("Phys Rev B")

	line := FormatLine(p)
	assert.Equal(t, "Phys Rev B,1,0,0.12,0.05,0.87,0.95", line)

	got, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestParseLine_Variants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Profile
	}{
		{
			name: "python floats",
			line: "Nature,0,1,0.0,0.0,1.0,1.0\n",
			want: Profile{Name: "Nature", Settings: Settings{Columns: true, Sliders: margins.DefaultSliders()}},
		},
		{
			name: "bracketed with spaces",
			line: "[JACS, True, False, 0.1, 0.2, 0.8, 0.9]",
			want: Profile{Name: "JACS", Settings: Settings{SkipFirst: true, Sliders: margins.Sliders{Top: 0.1, Left: 0.2, Bottom: 0.8, Right: 0.9}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	for _, line := range []string{
		"only,three,fields",
		"Name,2,0,0,0,1,1",
		"Name,1,0,abc,0,1,1",
		"a,b,1,0,0,0,1,1",
	} {
		_, err := ParseLine(line)
		assert.Error(t, err, line)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	list, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLoad_ReportsLineNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	require.NoError(t, os.WriteFile(path, []byte("A,0,0,0,0,1,1\n\nbroken line\n"), 0644))

	_, err := Load(path)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
}

func TestAppendThenLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profiles.txt")
	first := sampleProfile("First")
	second := Profile{Name: "Second", Settings: Settings{Columns: true, Sliders: margins.Sliders{Top: 1.0 / 3, Left: 0.999, Bottom: 0, Right: 0.5}}}

	require.NoError(t, Append(path, first))
	require.NoError(t, Append(path, second))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Profile{first, second}, list)
}

func TestAppend_RejectsBadName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")

	err := Append(path, sampleProfile("a,b"))
	assert.ErrorIs(t, err, ErrInvalidName)

	err = Append(path, sampleProfile("  "))
	assert.ErrorIs(t, err, ErrInvalidName)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_AddRejectsNamesChangedByReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Add(sampleProfile("Nature")))
	for _, name := range []string{" Nature", "Nature ", `"Quoted"`, "'Single'", "[Bracket", "Tail'"} {
		err := store.Add(sampleProfile(name))
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}

	require.NoError(t, store.Add(sampleProfile("Nature Physics")))
	require.NoError(t, store.Add(sampleProfile("O'Brien Letters")))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.List(), list)
	assert.Equal(t, []string{"Nature", "Nature Physics", "O'Brien Letters"}, store.Names())
}

func TestStore_AddFindUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	store, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Add(sampleProfile("One")))
	require.NoError(t, store.Add(sampleProfile("Two")))
	assert.Equal(t, []string{"One", "Two"}, store.Names())

	err = store.Add(sampleProfile("One"))
	assert.ErrorIs(t, err, ErrDuplicateProfile)

	_, idx, err := store.Find("Two")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	newSettings := Settings{Columns: true, Sliders: margins.Sliders{Top: 0.3, Left: 0.3, Bottom: 0.7, Right: 0.7}}
	updated, err := store.Update(idx, newSettings)
	require.NoError(t, err)
	assert.Equal(t, "Two", updated.Name)
	assert.Equal(t, newSettings, updated.Settings)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, store.List(), reopened.List())
}

func TestStore_UpdateWithoutSelection(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "profiles.txt"))
	require.NoError(t, err)

	_, err = store.Update(-1, Settings{})
	assert.ErrorIs(t, err, ErrNoProfileSelected)

	_, err = store.Get(0)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, _, err = store.Find("nope")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLoad_ToleratesDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.txt")
	require.NoError(t, os.WriteFile(path, []byte("A,0,0,0,0,1,1\nA,1,1,0.5,0.5,0.5,0.5\n"), 0644))

	store, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	p, idx, err := store.Find("A")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.False(t, p.SkipFirst)
}

func TestExport(t *testing.T) {
	list := []Profile{sampleProfile("One")}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, list, "json"))
	var fromJSON []Profile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, list, fromJSON)

	buf.Reset()
	require.NoError(t, Export(&buf, list, "yaml"))
	assert.Contains(t, buf.String(), "name: One")
	assert.Contains(t, buf.String(), "skip_first: true")
	var fromYAML []Profile
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, list, fromYAML)

	assert.Error(t, Export(&buf, list, "xml"))
}
