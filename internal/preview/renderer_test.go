package preview

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedExecutor fails for binaries listed in failing and writes a PNG
// for everything else.
type scriptedExecutor struct {
	failing map[string]bool
	calls   []string
}

func (s *scriptedExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, name)
	if s.failing[name] {
		return []byte("boom"), errors.New("exit status 1")
	}

	var out string
	switch name {
	case "pdftoppm":
		out = args[len(args)-1] + ".png"
	default:
		for _, a := range args {
			if strings.HasPrefix(a, "-sOutputFile=") {
				out = strings.TrimPrefix(a, "-sOutputFile=")
			}
		}
	}
	return nil, imaging.Save(solid(85, 110), out)
}

func solid(w, h int) image.Image {
	return imaging.New(w, h, color.White)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 10))
	assert.Equal(t, 1, ClampPage(-3, 10))
	assert.Equal(t, 10, ClampPage(11, 10))
	assert.Equal(t, 4, ClampPage(4, 10))
}

func TestResize_KeepsAspect(t *testing.T) {
	img := Resize(solid(850, 1100), 600)

	assert.Equal(t, 600, img.Bounds().Dy())
	assert.InDelta(t, 464, img.Bounds().Dx(), 1)
}

func TestEncode(t *testing.T) {
	p, err := Encode(solid(40, 80))
	require.NoError(t, err)

	assert.Equal(t, 40, p.Width)
	assert.Equal(t, 80, p.Height)
	assert.InDelta(t, 0.5, p.Aspect, 1e-9)
	assert.True(t, strings.HasPrefix(p.DataURL, "data:image/png;base64,"))
}

func TestRender_UsesPdftoppm(t *testing.T) {
	exec := &scriptedExecutor{}
	r := NewRenderer("pdftoppm", "gs", 600, nil)
	r.exec = exec

	p, err := r.Render(context.Background(), "doc.pdf", 3, 5, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"pdftoppm"}, exec.calls)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.PageCount)
	assert.Equal(t, 600, p.Height)
}

func TestRender_FallsBackToGhostscript(t *testing.T) {
	exec := &scriptedExecutor{failing: map[string]bool{"pdftoppm": true}}
	r := NewRenderer("pdftoppm", "gs", 300, nil)
	r.exec = exec

	dir := t.TempDir()
	p, err := r.Render(context.Background(), "doc.pdf", 9, 2, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"pdftoppm", "gs"}, exec.calls)
	assert.Equal(t, 2, p.Page)
	assert.FileExists(t, filepath.Join(dir, "temp-2.png"))
}

func TestRenderPage_AllFail(t *testing.T) {
	exec := &scriptedExecutor{failing: map[string]bool{"pdftoppm": true, "gs": true}}
	r := NewRenderer("pdftoppm", "gs", 600, nil)
	r.exec = exec

	_, err := r.RenderPage(context.Background(), "doc.pdf", 1, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm")
	assert.Contains(t, err.Error(), "ghostscript")
}

func TestRenderPage_NoTools(t *testing.T) {
	r := NewRenderer("", "", 600, nil)

	_, err := r.RenderPage(context.Background(), "doc.pdf", 1, t.TempDir())
	assert.ErrorIs(t, err, ErrNoRenderer)
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"-png", "-r", "100", "-f", "4", "-l", "4", "-singlefile", "in.pdf", "/tmp/x/temp-4"},
		pdftoppmArgs("in.pdf", 4, "/tmp/x/temp-4"))

	gs := ghostscriptArgs("in.pdf", 4, "/tmp/x/temp-4.png")
	assert.Contains(t, gs, "-dFirstPage=4")
	assert.Contains(t, gs, "-dLastPage=4")
	assert.Contains(t, gs, "-sOutputFile=/tmp/x/temp-4.png")
	assert.Equal(t, "in.pdf", gs[len(gs)-1])
}
