package concurrency

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"journal2ebook/internal/common"
)

var ErrNoFiles = errors.New("no files provided")

// NewWorkerPool creates a pool running processor on at most maxWorkers files at once.
// maxWorkers <= 0 picks min(NumCPU, MaxConcurrencyLimit).
func NewWorkerPool(maxWorkers int, processor ProcessorFunc) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = optimalWorkerCount()
	}
	return &WorkerPool{
		maxWorkers: maxWorkers,
		processor:  processor,
	}
}

// OnResult registers a callback invoked after each file finishes.
// It may be called from several goroutines, one at a time.
func (wp *WorkerPool) OnResult(fn func(done, total int, result FileResult)) {
	wp.onResult = fn
}

// ProcessBatch processes files concurrently. Results keep the order of files.
func (wp *WorkerPool) ProcessBatch(ctx context.Context, files []string) BatchResult {
	if len(files) == 0 {
		return BatchResult{Success: false, Error: ErrNoFiles.Error()}
	}

	pool, err := ants.NewPool(wp.maxWorkers)
	if err != nil {
		return BatchResult{Success: false, Error: fmt.Sprintf("failed to create worker pool: %v", err)}
	}
	defer pool.Release()

	total := len(files)
	results := make([]FileResult, total)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	// counting and reporting share the lock so progress never goes backwards
	report := func(i int, r FileResult) {
		mu.Lock()
		defer mu.Unlock()
		results[i] = r
		done++
		if wp.onResult != nil {
			wp.onResult(done, total, r)
		}
	}

	for i, filePath := range files {
		item := WorkItem{ID: common.GenerateUUID(), Index: i, FilePath: filePath}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			report(item.Index, wp.run(ctx, item))
		})
		if err != nil {
			wg.Done()
			report(i, FileResult{FileID: item.ID, Input: filePath, Status: StatusError, Error: err.Error()})
		}
	}

	wg.Wait()

	return aggregate(results)
}

func (wp *WorkerPool) run(ctx context.Context, item WorkItem) FileResult {
	result := FileResult{FileID: item.ID, Input: item.FilePath}

	select {
	case <-ctx.Done():
		result.Status = StatusCancelled
		result.Error = ctx.Err().Error()
		return result
	default:
	}

	start := time.Now()
	output, err := wp.processor(ctx, item)
	result.DurationMS = time.Since(start).Milliseconds()
	result.Output = output

	switch {
	case err == nil:
		result.Status = StatusCompleted
	case errors.Is(err, context.Canceled):
		result.Status = StatusCancelled
		result.Error = err.Error()
	default:
		result.Status = StatusError
		result.Error = err.Error()
	}
	return result
}

func aggregate(results []FileResult) BatchResult {
	batch := BatchResult{Results: results, Total: len(results)}
	for _, r := range results {
		if r.Status == StatusCompleted {
			batch.Completed++
		} else {
			batch.Failed++
		}
	}
	batch.Success = batch.Failed == 0
	if !batch.Success {
		batch.Error = fmt.Sprintf("%d of %d conversions failed", batch.Failed, batch.Total)
	}
	return batch
}

// optimalWorkerCount determines the optimal number of workers
func optimalWorkerCount() int {
	maxConcurrency := runtime.NumCPU()
	if maxConcurrency > common.MaxConcurrencyLimit {
		maxConcurrency = common.MaxConcurrencyLimit
	}
	return maxConcurrency
}
