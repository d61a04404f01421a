package preview

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// renderDPI is high enough for a 600px preview of a letter page.
const renderDPI = 100

var ErrNoRenderer = errors.New("neither pdftoppm nor ghostscript is available to render previews")

// executor abstracts command execution for testing.
type executor interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

type osExecutor struct{}

func (osExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Preview is a rendered page ready for the frontend.
type Preview struct {
	Page      int     `json:"page"`
	PageCount int     `json:"page_count"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Aspect    float64 `json:"aspect"`
	DataURL   string  `json:"data_url"`
}

// Renderer turns PDF pages into PNG previews.
type Renderer struct {
	pdftoppmPath    string
	ghostscriptPath string
	height          int
	exec            executor
	logger          *slog.Logger
}

// NewRenderer creates a renderer. Either tool path may be empty.
func NewRenderer(pdftoppmPath, ghostscriptPath string, height int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		pdftoppmPath:    pdftoppmPath,
		ghostscriptPath: ghostscriptPath,
		height:          height,
		exec:            osExecutor{},
		logger:          logger,
	}
}

// IsAvailable reports whether any rendering tool is configured.
func (r *Renderer) IsAvailable() bool {
	return r.pdftoppmPath != "" || r.ghostscriptPath != ""
}

// RenderPage renders page (1-based) of pdfPath into dir and returns the PNG path.
// pdftoppm is tried first, then Ghostscript.
func (r *Renderer) RenderPage(ctx context.Context, pdfPath string, page int, dir string) (string, error) {
	if !r.IsAvailable() {
		return "", ErrNoRenderer
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create preview directory: %w", err)
	}

	prefix := filepath.Join(dir, fmt.Sprintf("temp-%d", page))
	pngPath := prefix + ".png"

	var errs []error
	if r.pdftoppmPath != "" {
		args := pdftoppmArgs(pdfPath, page, prefix)
		output, err := r.exec.CombinedOutput(ctx, r.pdftoppmPath, args...)
		if err == nil {
			return pngPath, nil
		}
		r.logger.Warn("pdftoppm failed, trying ghostscript", "page", page, "error", err)
		errs = append(errs, fmt.Errorf("pdftoppm: %v, output: %s", err, strings.TrimSpace(string(output))))
	}

	if r.ghostscriptPath != "" {
		args := ghostscriptArgs(pdfPath, page, pngPath)
		output, err := r.exec.CombinedOutput(ctx, r.ghostscriptPath, args...)
		if err == nil {
			return pngPath, nil
		}
		errs = append(errs, fmt.Errorf("ghostscript: %v, output: %s", err, strings.TrimSpace(string(output))))
	}

	return "", fmt.Errorf("failed to render page %d: %w", page, errors.Join(errs...))
}

// Render renders page and scales it to the configured preview height.
func (r *Renderer) Render(ctx context.Context, pdfPath string, page, pageCount int, dir string) (*Preview, error) {
	page = ClampPage(page, pageCount)

	pngPath, err := r.RenderPage(ctx, pdfPath, page, dir)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Open(pngPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rendered page: %w", err)
	}

	p, err := Encode(Resize(img, r.height))
	if err != nil {
		return nil, err
	}
	p.Page = page
	p.PageCount = pageCount
	return p, nil
}

// Resize scales img to height pixels, keeping its aspect ratio.
func Resize(img image.Image, height int) image.Image {
	if height <= 0 || img.Bounds().Dy() == height {
		return img
	}
	return imaging.Resize(img, 0, height, imaging.Lanczos)
}

// Encode wraps img as a base64 PNG data URL.
func Encode(img image.Image) (*Preview, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	b := img.Bounds()
	p := &Preview{
		Width:   b.Dx(),
		Height:  b.Dy(),
		DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	if b.Dy() > 0 {
		p.Aspect = float64(b.Dx()) / float64(b.Dy())
	}
	return p, nil
}

func pdftoppmArgs(pdfPath string, page int, prefix string) []string {
	n := strconv.Itoa(page)
	return []string{
		"-png",
		"-r", strconv.Itoa(renderDPI),
		"-f", n,
		"-l", n,
		"-singlefile",
		pdfPath,
		prefix,
	}
}

func ghostscriptArgs(pdfPath string, page int, pngPath string) []string {
	n := strconv.Itoa(page)
	return []string{
		"-sDEVICE=png16m",
		"-dSAFER",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		fmt.Sprintf("-r%d", renderDPI),
		"-dFirstPage=" + n,
		"-dLastPage=" + n,
		"-sOutputFile=" + pngPath,
		pdfPath,
	}
}
