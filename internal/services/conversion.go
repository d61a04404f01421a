package services

import (
	"context"
	"log/slog"
	"time"

	"journal2ebook/internal/converter"
	"journal2ebook/internal/models"
)

// Runner plans and executes converter runs
type Runner interface {
	Plan(req converter.Request) (converter.Options, error)
	Convert(ctx context.Context, opts converter.Options) error
	IsAvailable() bool
	BinaryPath() string
}

// ConversionService runs conversions and keeps their history
type ConversionService struct {
	runner  Runner
	history *HistoryService
	logger  *slog.Logger
}

// NewConversionService creates a conversion service. history may be nil.
func NewConversionService(runner Runner, history *HistoryService, logger *slog.Logger) *ConversionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversionService{
		runner:  runner,
		history: history,
		logger:  logger,
	}
}

// Runner returns the underlying converter
func (s *ConversionService) Runner() Runner {
	return s.runner
}

// Convert plans req, runs it and records the outcome. Requests that fail
// planning never reach the converter and are not recorded.
func (s *ConversionService) Convert(ctx context.Context, req converter.Request, profile string) (converter.Options, error) {
	opts, err := s.runner.Plan(req)
	if err != nil {
		return converter.Options{}, err
	}

	start := time.Now()
	runErr := s.runner.Convert(ctx, opts)
	elapsed := time.Since(start)

	if runErr != nil {
		s.logger.Error("Conversion failed", "input", opts.Input, "error", runErr)
	} else {
		s.logger.Info("Conversion completed", "input", opts.Input, "output", opts.Output, "duration", elapsed)
	}

	if s.history != nil {
		if _, err := s.history.Record(opts, profile, elapsed, runErr); err != nil {
			s.logger.Warn("Failed to record conversion history", "error", err)
		}
	}

	return opts, runErr
}

// Recent proxies to the history service
func (s *ConversionService) Recent(limit int) ([]models.ConversionRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(limit)
}
