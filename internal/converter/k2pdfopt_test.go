package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"journal2ebook/internal/margins"
)

// fakeExecutor records the command line and optionally writes the output file.
type fakeExecutor struct {
	name   string
	args   []string
	output []byte
	err    error
	write  bool
}

func (f *fakeExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	if f.write {
		out := args[len(args)-2]
		if err := os.WriteFile(out, []byte("converted"), 0644); err != nil {
			return nil, err
		}
	}
	return f.output, f.err
}

func pages(n int) PageCounter {
	return func(string) (int, error) { return n, nil }
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name        string
		req         Request
		pageCount   int
		wantColumns int
		wantRange   string
		wantOutput  string
		wantErr     error
	}{
		{
			name:        "defaults",
			req:         Request{Input: "/papers/a.pdf", Sliders: margins.DefaultSliders()},
			wantColumns: 2,
			wantOutput:  "/papers/a_k2opt.pdf",
		},
		{
			name:        "extra columns and skip first",
			req:         Request{Input: "/papers/a.pdf", Output: "/out/a.epub", Columns: true, SkipFirst: true, Sliders: margins.DefaultSliders()},
			pageCount:   12,
			wantColumns: 4,
			wantRange:   "2-12",
			wantOutput:  "/out/a.epub",
		},
		{
			name:        "epub default output",
			req:         Request{Input: "/papers/a.pdf", Format: "epub", Sliders: margins.DefaultSliders()},
			wantColumns: 2,
			wantOutput:  "/papers/a_k2opt.epub",
		},
		{
			name:      "single page with skip first",
			req:       Request{Input: "/papers/a.pdf", SkipFirst: true, Sliders: margins.DefaultSliders()},
			pageCount: 1,
			wantErr:   ErrNothingToConvert,
		},
		{
			name:    "no input",
			req:     Request{Sliders: margins.DefaultSliders()},
			wantErr: ErrNoInput,
		},
		{
			name:    "bad slider",
			req:     Request{Input: "/papers/a.pdf", Sliders: margins.Sliders{Top: 2}},
			wantErr: margins.ErrSliderOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("/usr/bin/k2pdfopt", pages(tt.pageCount), nil)

			opts, err := c.Plan(tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if opts.Columns != tt.wantColumns {
				t.Errorf("Expected %d columns, got %d", tt.wantColumns, opts.Columns)
			}
			if opts.PageRange != tt.wantRange {
				t.Errorf("Expected page range %q, got %q", tt.wantRange, opts.PageRange)
			}
			if opts.Output != tt.wantOutput {
				t.Errorf("Expected output %q, got %q", tt.wantOutput, opts.Output)
			}
		})
	}
}

func TestPlan_ComputesMargins(t *testing.T) {
	c := New("k2pdfopt", nil, nil)
	opts, err := c.Plan(Request{
		Input:   "a.pdf",
		Sliders: margins.Sliders{Top: 0.1, Left: 0.2, Bottom: 0.9, Right: 0.8},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := margins.Compute(margins.Sliders{Top: 0.1, Left: 0.2, Bottom: 0.9, Right: 0.8}, margins.Letter)
	if opts.Margins != want {
		t.Errorf("Expected margins %+v, got %+v", want, opts.Margins)
	}
}

func TestArgs(t *testing.T) {
	opts := Options{
		Input:     "/papers/my paper.pdf",
		Output:    "/out/my paper.epub",
		Margins:   margins.Margins{Left: 0.425, Right: 0, Top: 1.375, Bottom: 0.55},
		Columns:   4,
		PageRange: "2-9",
	}

	expected := []string{
		"-x", "-p", "2-9", "-col", "4",
		"-ml", "0.425", "-mr", "0", "-mt", "1.375", "-mb", "0.55",
		"-ui-", "-o", "/out/my paper.epub", "/papers/my paper.pdf",
	}

	got := Args(opts)
	if len(got) != len(expected) {
		t.Fatalf("Expected %d args, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Arg %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestArgs_NoPageRange(t *testing.T) {
	got := Args(Options{Input: "in.pdf", Output: "out.pdf", Columns: 2})
	for _, a := range got {
		if a == "-p" {
			t.Fatal("Expected no -p flag without a page range")
		}
	}
	if got[1] != "-col" {
		t.Errorf("Expected -col right after -x, got %q", got[1])
	}
}

func TestConvert_NotAvailable(t *testing.T) {
	c := New("", nil, nil)

	err := c.Convert(context.Background(), Options{Input: "in.pdf", Output: "out.pdf"})
	if !errors.Is(err, ErrConverterNotFound) {
		t.Errorf("Expected ErrConverterNotFound, got %v", err)
	}
}

func TestConvert_Success(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeExecutor{write: true}
	c := New("/usr/local/bin/k2pdfopt", nil, nil)
	c.exec = fake

	opts := Options{Input: filepath.Join(dir, "in.pdf"), Output: filepath.Join(dir, "out.pdf"), Columns: 2}
	if err := c.Convert(context.Background(), opts); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if fake.name != "/usr/local/bin/k2pdfopt" {
		t.Errorf("Expected binary path to be used, got %q", fake.name)
	}
	if fake.args[len(fake.args)-1] != opts.Input {
		t.Errorf("Expected input as last argument, got %q", fake.args[len(fake.args)-1])
	}
}

func TestConvert_Failure(t *testing.T) {
	fake := &fakeExecutor{output: []byte("bad margins"), err: errors.New("exit status 1")}
	c := New("k2pdfopt", nil, nil)
	c.exec = fake

	err := c.Convert(context.Background(), Options{Input: "in.pdf", Output: "out.pdf"})

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("Expected RunError, got %v", err)
	}
	if runErr.Output != "bad margins" {
		t.Errorf("Expected converter output to be kept, got %q", runErr.Output)
	}
}

func TestConvert_MissingOutput(t *testing.T) {
	c := New("k2pdfopt", nil, nil)
	c.exec = &fakeExecutor{}

	err := c.Convert(context.Background(), Options{Input: "in.pdf", Output: filepath.Join(t.TempDir(), "never.pdf")})
	if err == nil {
		t.Error("Expected error when no output file is produced")
	}
}

func TestConvert_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New("k2pdfopt", nil, nil)
	c.exec = &fakeExecutor{err: errors.New("signal: killed")}

	err := c.Convert(ctx, Options{Input: "in.pdf", Output: "out.pdf"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
