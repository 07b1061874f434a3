package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/UnknownOlympus/cabfare/internal/metrics"
	"github.com/UnknownOlympus/cabfare/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single JSON request line.
const maxLineSize = 1 << 20

// job is one decoded input line; err is set when the line was not valid JSON.
type job struct {
	line int
	req  models.QuoteRequest
	err  error
}

// Run reads one JSON QuoteRequest per line from in, prices them with a pool
// of workers and writes one JSON QuoteResult per line to out. Results are
// written in completion order and carry the request ID. Malformed lines
// produce a result with Error and do not stop the run.
func (qs *QuoteService) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	qs.log.InfoContext(ctx, "Quote service started...", "num_workers", qs.numWorkers)

	grp, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, qs.numWorkers)
	results := make(chan models.QuoteResult, qs.numWorkers)

	grp.Go(func() error {
		defer close(jobs)
		return qs.read(gctx, in, jobs)
	})

	var wgr sync.WaitGroup
	for i := 1; i <= qs.numWorkers; i++ {
		wgr.Add(1)
		grp.Go(func() error {
			defer wgr.Done()
			qs.worker(gctx, i, jobs, results)
			return nil
		})
	}
	grp.Go(func() error {
		wgr.Wait()
		close(results)
		return nil
	})

	grp.Go(func() error {
		return qs.write(out, results)
	})

	if err := grp.Wait(); err != nil {
		return err
	}

	qs.log.InfoContext(ctx, "Quote service stopped.")
	return nil
}

// read decodes input lines into jobs until EOF or cancellation.
func (qs *QuoteService) read(ctx context.Context, in io.Reader, jobs chan<- job) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		next := job{line: line}
		if err := json.Unmarshal(raw, &next.req); err != nil {
			next.err = fmt.Errorf("%w: line %d: %w", ErrInvalidRequest, line, err)
		}

		select {
		case jobs <- next:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read quote requests: %w", err)
	}

	return nil
}

// worker prices jobs until the jobs channel is drained or ctx is cancelled.
func (qs *QuoteService) worker(ctx context.Context, idx int, jobs <-chan job, results chan<- models.QuoteResult) {
	for next := range jobs {
		qs.metrics.ActiveWorkers.Inc()
		qs.log.DebugContext(ctx, "Processing quote", "worker", idx, "line", next.line, "id", next.req.ID)

		var result models.QuoteResult
		if next.err != nil {
			qs.log.ErrorContext(ctx, "Failed to decode quote request", "worker", idx, "error", next.err)
			qs.metrics.QuotesProcessed.WithLabelValues(metrics.StatusInvalid).Inc()
			result = models.QuoteResult{ID: uuid.NewString(), Error: next.err.Error()}
		} else {
			result = qs.Quote(ctx, next.req)
		}

		qs.metrics.ActiveWorkers.Dec()

		select {
		case results <- result:
		case <-ctx.Done():
			return
		}
	}
}

// write encodes every result as a JSON line.
func (qs *QuoteService) write(out io.Writer, results <-chan models.QuoteResult) error {
	encoder := json.NewEncoder(out)
	for result := range results {
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to write quote result: %w", err)
		}
	}

	return nil
}
