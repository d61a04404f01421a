package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"journal2ebook/internal/common"
	"journal2ebook/internal/margins"
)

// executor abstracts command execution for testing.
type executor interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// PageCounter reports how many pages a PDF has.
type PageCounter func(path string) (int, error)

// Converter runs k2pdfopt.
type Converter struct {
	binaryPath string
	countPages PageCounter
	exec       executor
	logger     *slog.Logger
}

// New creates a converter for the k2pdfopt binary at binaryPath.
func New(binaryPath string, countPages PageCounter, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		binaryPath: binaryPath,
		countPages: countPages,
		exec:       osExecutor{},
		logger:     logger,
	}
}

// IsAvailable reports whether a k2pdfopt binary was configured or found.
func (c *Converter) IsAvailable() bool {
	return c.binaryPath != ""
}

// BinaryPath returns the k2pdfopt executable in use.
func (c *Converter) BinaryPath() string {
	return c.binaryPath
}

// Plan turns a request into concrete options: margins in inches, the column
// count and, when the first page is skipped, the page range 2-N.
func (c *Converter) Plan(req Request) (Options, error) {
	if req.Input == "" {
		return Options{}, ErrNoInput
	}
	if err := req.Sliders.Validate(); err != nil {
		return Options{}, err
	}

	page := req.PageSize
	if page.Width <= 0 || page.Height <= 0 {
		page = margins.Letter
	}

	opts := Options{
		Input:   req.Input,
		Output:  req.Output,
		Margins: margins.Compute(req.Sliders, page),
		Columns: common.DefaultColumns,
	}
	if req.Columns {
		opts.Columns = common.ExtraColumns
	}
	if opts.Output == "" {
		opts.Output = DefaultOutputPath(req.Input, req.Format)
	}

	if req.SkipFirst {
		if c.countPages == nil {
			return Options{}, fmt.Errorf("cannot skip first page: page count unavailable")
		}
		n, err := c.countPages(req.Input)
		if err != nil {
			return Options{}, fmt.Errorf("failed to count pages of %s: %w", req.Input, err)
		}
		if n < 2 {
			return Options{}, ErrNothingToConvert
		}
		opts.PageRange = "2-" + strconv.Itoa(n)
	}

	return opts, nil
}

// Args builds the k2pdfopt argument list for opts.
func Args(opts Options) []string {
	args := []string{"-x"}
	if opts.PageRange != "" {
		args = append(args, "-p", opts.PageRange)
	}
	args = append(args,
		"-col", strconv.Itoa(opts.Columns),
		"-ml", formatInches(opts.Margins.Left),
		"-mr", formatInches(opts.Margins.Right),
		"-mt", formatInches(opts.Margins.Top),
		"-mb", formatInches(opts.Margins.Bottom),
		"-ui-",
		"-o", opts.Output,
		opts.Input,
	)
	return args
}

// Convert runs k2pdfopt for opts and checks that the output was written.
func (c *Converter) Convert(ctx context.Context, opts Options) error {
	if !c.IsAvailable() {
		return ErrConverterNotFound
	}
	if opts.Input == "" {
		return ErrNoInput
	}

	args := Args(opts)
	c.logger.Info("Running k2pdfopt", "input", opts.Input, "output", opts.Output, "args", strings.Join(args, " "))

	output, err := c.exec.CombinedOutput(ctx, c.binaryPath, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &RunError{Input: opts.Input, Output: string(output), Err: err}
	}

	if _, err := os.Stat(opts.Output); os.IsNotExist(err) {
		return fmt.Errorf("k2pdfopt did not create output file %s", opts.Output)
	}

	return nil
}

// DefaultOutputPath places the result next to input, named the way k2pdfopt
// names its own output.
func DefaultOutputPath(input, format string) string {
	ext := ".pdf"
	if strings.EqualFold(format, "epub") {
		ext = ".epub"
	}
	return filepath.Join(filepath.Dir(input), common.Stem(input)+"_k2opt"+ext)
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
