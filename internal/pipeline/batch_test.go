package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/corpusscope/internal/model"
)

func jobs(n int) []Job {
	out := make([]Job, n)
	for i := range out {
		out[i] = Job{Key: fmt.Sprintf("word-%d", i), Page: "word", Selection: model.DefaultSelection()}
	}
	return out
}

func headingFactory(step func(ctx context.Context, page *model.Page) error) Factory {
	return func(job Job) (*Pipeline, *model.Page, error) {
		p := New()
		p.AddStep(&mockStep{name: "render", doFunc: step})
		return p, model.NewPage(job.Page, job.Key, job.Selection), nil
	}
}

func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(headingFactory(nil))
		if bp.concurrency != 4 {
			t.Errorf("expected default concurrency 4, got %d", bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(headingFactory(nil), WithConcurrency(2))
		if bp.concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(headingFactory(nil), WithConcurrency(0), WithBatchLogger(nil))
		if bp.concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected default logger when nil is given")
		}
	})
}

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("maintains result order", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(headingFactory(func(_ context.Context, page *model.Page) error {
			page.AddHeading(1, page.Title)
			return nil
		}), WithConcurrency(3))

		in := jobs(8)
		results, err := bp.ProcessBatch(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, r := range results {
			if r.Job.Key != in[i].Key {
				t.Errorf("result %d: key %q, want %q", i, r.Job.Key, in[i].Key)
			}
			if r.Page == nil || r.Page.Blocks[0].Text != in[i].Key {
				t.Errorf("result %d: unexpected page %+v", i, r.Page)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		bp := NewBatchProcessor(headingFactory(func(_ context.Context, _ *model.Page) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return nil
		}), WithConcurrency(2))

		if _, err := bp.ProcessBatch(context.Background(), jobs(6)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("peak concurrency %d exceeds limit 2", peak.Load())
		}
	})

	t.Run("continues after individual render failure", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(headingFactory(func(_ context.Context, page *model.Page) error {
			if page.Title == "word-1" {
				return model.ErrArtifactMissing
			}
			return nil
		}))

		results, err := bp.ProcessBatch(context.Background(), jobs(3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, r := range results {
			failed := r.Err != nil
			if failed != (i == 1) {
				t.Errorf("result %d: err = %v", i, r.Err)
			}
		}
		if !errors.Is(results[1].Err, model.ErrArtifactMissing) {
			t.Errorf("expected ErrArtifactMissing, got %v", results[1].Err)
		}
	})

	t.Run("records factory errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("unknown page")
		bp := NewBatchProcessor(func(Job) (*Pipeline, *model.Page, error) { return nil, nil, boom })

		results, err := bp.ProcessBatch(context.Background(), jobs(2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, r := range results {
			if !errors.Is(r.Err, boom) || r.Page != nil {
				t.Errorf("unexpected result %+v", r)
			}
		}
	})

	t.Run("handles context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(headingFactory(nil), WithConcurrency(1))
		if _, err := bp.ProcessBatch(ctx, jobs(3)); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	t.Run("calls callback for each result", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		seen := make(map[int]string)
		bp := NewBatchProcessor(headingFactory(nil))

		err := bp.ProcessBatchWithCallback(context.Background(), jobs(5), func(r Result, i int) error {
			mu.Lock()
			defer mu.Unlock()
			seen[i] = r.Job.Key
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(seen) != 5 {
			t.Errorf("expected 5 callbacks, got %d", len(seen))
		}
	})

	t.Run("callback error stops the batch", func(t *testing.T) {
		t.Parallel()

		writeErr := errors.New("disk full")
		bp := NewBatchProcessor(headingFactory(nil), WithConcurrency(1))

		var calls atomic.Int32
		err := bp.ProcessBatchWithCallback(context.Background(), jobs(5), func(Result, int) error {
			calls.Add(1)
			return writeErr
		})
		if !errors.Is(err, writeErr) {
			t.Errorf("expected %v, got %v", writeErr, err)
		}
		if calls.Load() >= 5 {
			t.Errorf("expected the batch to stop early, got %d callbacks", calls.Load())
		}
	})
}
