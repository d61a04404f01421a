package concurrency

import (
	"context"
)

// Job statuses
const (
	StatusCompleted = "completed"
	StatusError     = "error"
	StatusCancelled = "cancelled"
)

// WorkItem represents a single file to be processed
type WorkItem struct {
	ID       string
	Index    int
	FilePath string
}

// FileResult represents the outcome of converting a single file
type FileResult struct {
	FileID     string `json:"file_id"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// ProcessorFunc converts one file and returns the output path
type ProcessorFunc func(ctx context.Context, item WorkItem) (string, error)

// BatchResult is the aggregate of a batch run
type BatchResult struct {
	Results   []FileResult `json:"results"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	Failed    int          `json:"failed"`
	Success   bool         `json:"success"`
	Error     string       `json:"error,omitempty"`
}

// WorkerPool runs a processor over many files with bounded concurrency
type WorkerPool struct {
	maxWorkers int
	processor  ProcessorFunc
	onResult   func(done, total int, result FileResult)
}
