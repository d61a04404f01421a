// Package main is the entry point for journal2ebook: a desktop window for
// picking page margins on a PDF, plus headless convert and profile commands.
package main

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"journal2ebook/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

// version is set at build time via ldflags.
var version = "dev"

// rootCmd launches the GUI, optionally opening a PDF.
var rootCmd = &cobra.Command{
	Use:   "journal2ebook [file.pdf]",
	Short: "Crop journal PDFs for ebook readers with k2pdfopt",
	Long: `journal2ebook previews a PDF page, lets you drag four margin sliders to
cut away headers, footers and gutters, and then runs k2pdfopt with the
resulting margins and column count. Settings that work for a journal can
be saved as named profiles and reused.

Without a subcommand the desktop window is opened.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var file string
		if len(args) == 1 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(abs); err != nil {
				return fmt.Errorf("cannot open %s: %w", args[0], err)
			}
			file = abs
		}
		return runGUI(loadConfig(), file)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./journal2ebook.yaml or <user config dir>/journal2ebook/journal2ebook.yaml)")
	flags.String("data-dir", "", "directory for settings, profiles and history")
	flags.String("settings", "", "settings file (default: <data-dir>/journal2ebook.conf)")
	flags.String("k2pdfopt", "", "path to the k2pdfopt executable")
	flags.String("pdftoppm", "", "path to the pdftoppm executable")
	flags.String("ghostscript", "", "path to the Ghostscript executable")
	flags.Int("workers", 0, "maximum concurrent conversions (default: min(CPUs, 4))")
	flags.Int("preview-height", 0, "preview height in pixels (default: 600)")
	flags.Bool("detect-page-size", false, "compute margins against the document's page size instead of US letter")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	for _, name := range []string{"data-dir", "settings", "k2pdfopt", "pdftoppm", "ghostscript", "workers", "preview-height", "detect-page-size", "log-level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journal2ebook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "journal2ebook"))
		}
	}

	viper.SetEnvPrefix("JOURNAL2EBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig builds the runtime configuration from flags, env and config file.
func loadConfig() *config.Config {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(viper.GetString("log-level")),
	}))
	slog.SetDefault(logger)

	return config.New(config.Options{
		AppDataDir:      viper.GetString("data-dir"),
		SettingsPath:    viper.GetString("settings"),
		K2pdfoptPath:    viper.GetString("k2pdfopt"),
		PdftoppmPath:    viper.GetString("pdftoppm"),
		GhostscriptPath: viper.GetString("ghostscript"),
		PreviewHeight:   viper.GetInt("preview-height"),
		DetectPageSize:  viper.GetBool("detect-page-size"),
		MaxWorkers:      viper.GetInt("workers"),
		Logger:          logger,
	})
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
