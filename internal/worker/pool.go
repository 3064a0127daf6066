// Package worker provides a parallel batch-bake worker pool.
package worker

import (
	"context"
	"sync"
	"time"
)

// Baker bakes the shadow for a single source image file.
// This matches the signature of the pipeline-backed baker in internal/cmd.
type Baker interface {
	Bake(ctx context.Context, sourcePath string, force bool) (outputPath string, err error)
}

// Task represents a single source image to bake.
type Task struct {
	SourcePath string
	Force      bool
}

// Result represents the outcome of a bake task.
type Result struct {
	Task       Task
	OutputPath string
	Err        error
	Elapsed    time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Baker      Baker
	OnProgress ProgressFunc
}

// Pool manages parallel shadow baking.
type Pool struct {
	workers    int
	baker      Baker
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		baker:      cfg.Baker,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns results.
// Tasks are processed in parallel by the configured number of workers.
// The function blocks until all tasks complete or the context is cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	// Feed tasks
	go func() {
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				break
			}
		}
		close(taskCh)
	}()

	// Collect results in a separate goroutine
	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		path, err := p.baker.Bake(ctx, task.SourcePath, task.Force)
		elapsed := time.Since(start)

		results <- Result{
			Task:       task,
			OutputPath: path,
			Err:        err,
			Elapsed:    elapsed,
		}
	}
}
