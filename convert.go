package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"journal2ebook/internal/app/concurrency"
	"journal2ebook/internal/config"
	"journal2ebook/internal/container"
	"journal2ebook/internal/converter"
	"journal2ebook/internal/margins"
	"journal2ebook/internal/preview"
	"journal2ebook/internal/profiles"
)

var convertCmd = newConvertCmd()

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [flags] FILE...",
		Short: "Convert PDFs with k2pdfopt without opening the window",
		Long: `Convert runs k2pdfopt on each FILE with the margins given by the slider
flags or by a saved profile. Explicit slider flags override the profile.
Several files are converted concurrently; each result is written next to
its input as <name>_k2opt.pdf (or .epub with --format epub).

Slider positions are fractions in [0,1]. Top and left grow the margin as
they increase; bottom and right run inverted, so 1 means no margin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}

	f := cmd.Flags()
	f.StringP("profile", "p", "", "apply the named profile")
	f.Bool("skip-first", false, "skip the first page")
	f.Bool("columns", false, "the document has 3 or 4 columns")
	f.Float64("top", 0, "top slider position")
	f.Float64("left", 0, "left slider position")
	f.Float64("bottom", 1, "bottom slider position (1 = no margin)")
	f.Float64("right", 1, "right slider position (1 = no margin)")
	f.StringP("output", "o", "", "output file (only with a single input)")
	f.String("format", "pdf", "output format when --output is not given: pdf or epub")
	f.Bool("dry-run", false, "print the k2pdfopt command lines without running them")

	return cmd
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	output, _ := cmd.Flags().GetString("output")
	if output != "" && len(args) > 1 {
		return errors.New("--output can only be used with a single input file")
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "pdf" && format != "epub" {
		return fmt.Errorf("unknown format %q: use pdf or epub", format)
	}

	settings, profileName, err := resolveSettings(cmd, cfg)
	if err != nil {
		return err
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	newRequest := func(input string) converter.Request {
		req := converter.Request{
			Input:     input,
			Output:    output,
			Format:    format,
			SkipFirst: settings.SkipFirst,
			Columns:   settings.Columns,
			Sliders:   settings.Sliders,
			PageSize:  cfg.PageSize,
		}
		if cfg.DetectPageSize {
			if size, err := preview.FirstPageSize(input); err == nil {
				req.PageSize = size
			} else {
				cfg.Logger.Warn("Failed to read page size, using letter", "file", input, "error", err)
			}
		}
		return req
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		for _, input := range args {
			opts, err := c.GetConverter().Plan(newRequest(input))
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "k2pdfopt", strings.Join(converter.Args(opts), " "))
		}
		return nil
	}

	if !c.GetConverter().IsAvailable() {
		return converter.ErrConverterNotFound
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	conversions := c.GetConversionService()
	pool := concurrency.NewWorkerPool(cfg.MaxWorkers, func(ctx context.Context, item concurrency.WorkItem) (string, error) {
		opts, err := conversions.Convert(ctx, newRequest(item.FilePath), profileName)
		return opts.Output, err
	})
	pool.OnResult(func(done, total int, r concurrency.FileResult) {
		if r.Status == concurrency.StatusCompleted {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s -> %s\n", done, total, r.Input, r.Output)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s: %s\n", done, total, r.Input, r.Error)
		}
	})

	result := pool.ProcessBatch(ctx, args)
	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}

// resolveSettings starts from the named profile, if any, and applies the
// slider and checkbox flags the user set explicitly.
func resolveSettings(cmd *cobra.Command, cfg *config.Config) (profiles.Settings, string, error) {
	settings := profiles.Settings{Sliders: margins.DefaultSliders()}

	name, _ := cmd.Flags().GetString("profile")
	if name != "" {
		store, err := openProfileStore(cfg)
		if err != nil {
			return settings, "", err
		}
		p, _, err := store.Find(name)
		if err != nil {
			return settings, "", err
		}
		settings = p.Settings
	}

	flags := cmd.Flags()
	if flags.Changed("skip-first") {
		settings.SkipFirst, _ = flags.GetBool("skip-first")
	}
	if flags.Changed("columns") {
		settings.Columns, _ = flags.GetBool("columns")
	}
	for flag, field := range map[string]*float64{
		"top":    &settings.Sliders.Top,
		"left":   &settings.Sliders.Left,
		"bottom": &settings.Sliders.Bottom,
		"right":  &settings.Sliders.Right,
	} {
		if flags.Changed(flag) {
			*field, _ = flags.GetFloat64(flag)
		}
	}

	if err := settings.Sliders.Validate(); err != nil {
		return settings, "", err
	}
	return settings, name, nil
}
