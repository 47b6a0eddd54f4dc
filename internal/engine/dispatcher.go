package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aevon-lab/project-tally/internal/core/rating"
)

// DispatchMode selects how mutation events reach the maintainer.
type DispatchMode string

const (
	// DispatchSync runs maintenance inline: the mutation call does not
	// return until the aggregate is persisted (or maintenance failed).
	DispatchSync DispatchMode = "sync"
	// DispatchAsync queues the event for a worker pool; the mutation call
	// returns as soon as the event is enqueued.
	DispatchAsync DispatchMode = "async"
)

const (
	defaultWorkerCount = 4
	defaultBufferSize  = 256
)

// mutationEvent carries one review change to the maintainer.
type mutationEvent struct {
	itemID string
	op     rating.MutationOp
}

// Dispatcher routes mutation notifications to the Maintainer, either
// inline or through a buffered worker pool. Async mode trades read-your-
// writes on the aggregate for lower mutation latency; per-item ordering
// still holds because the maintainer recomputes from store totals, so
// processing order cannot change the final value.
type Dispatcher struct {
	maintainer *Maintainer
	mode       DispatchMode
	workers    int
	events     chan mutationEvent

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// DispatcherOptions configures event delivery. Zero values fall back to
// sync dispatch with the default pool sizing (relevant only for async).
type DispatcherOptions struct {
	Mode        DispatchMode
	WorkerCount int
	BufferSize  int
}

func (o DispatcherOptions) normalized() DispatcherOptions {
	if o.Mode == "" {
		o.Mode = DispatchSync
	}
	if o.WorkerCount <= 0 {
		o.WorkerCount = defaultWorkerCount
	}
	if o.BufferSize <= 0 {
		o.BufferSize = defaultBufferSize
	}
	return o
}

// NewDispatcher creates a dispatcher over the maintainer.
func NewDispatcher(maintainer *Maintainer, opts DispatcherOptions) (*Dispatcher, error) {
	if maintainer == nil {
		panic("engine: maintainer must not be nil")
	}
	opts = opts.normalized()
	if opts.Mode != DispatchSync && opts.Mode != DispatchAsync {
		return nil, fmt.Errorf("unknown dispatch mode %q", opts.Mode)
	}
	return &Dispatcher{
		maintainer: maintainer,
		mode:       opts.Mode,
		workers:    opts.WorkerCount,
		events:     make(chan mutationEvent, opts.BufferSize),
		done:       make(chan struct{}),
	}, nil
}

// Mode reports the configured dispatch mode.
func (d *Dispatcher) Mode() DispatchMode { return d.mode }

// NotifyMutation delivers one review mutation for the item. In sync mode
// the returned error is the maintenance outcome. In async mode it is nil
// once the event is enqueued; a full queue degrades to inline processing
// rather than dropping the event, since a dropped event would leave the
// aggregate wrong until the reconciler happens to touch the item.
func (d *Dispatcher) NotifyMutation(ctx context.Context, itemID string, op rating.MutationOp) error {
	if d.mode == DispatchSync {
		return d.maintainer.OnChildMutation(ctx, itemID, op)
	}

	select {
	case d.events <- mutationEvent{itemID: itemID, op: op}:
		return nil
	case <-d.done:
		return d.maintainer.OnChildMutation(ctx, itemID, op)
	default:
		slog.Warn("[Dispatcher] Event queue full, processing inline",
			"item_id", itemID,
			"op", op,
		)
		return d.maintainer.OnChildMutation(ctx, itemID, op)
	}
}

// Start runs the worker pool until ctx is canceled, then drains the queue
// so accepted events are never lost on shutdown. Blocks; meant for its own
// goroutine. In sync mode it only waits for cancellation.
func (d *Dispatcher) Start(ctx context.Context) {
	if d.mode == DispatchSync {
		<-ctx.Done()
		return
	}

	d.startOnce.Do(func() {
		var wg sync.WaitGroup
		for i := 0; i < d.workers; i++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				d.runWorker(ctx, worker)
			}(i)
		}

		<-ctx.Done()
		d.stopOnce.Do(func() { close(d.done) })
		wg.Wait()

		slog.Info("[Dispatcher] Worker pool stopped", "pending", len(d.events))
	})
}

func (d *Dispatcher) runWorker(ctx context.Context, worker int) {
	for {
		select {
		case ev := <-d.events:
			d.process(ev)
		case <-ctx.Done():
			// Final drain: the queue was accepted, so finish it. Maintenance
			// runs on a fresh context since the server one is gone.
			for {
				select {
				case ev := <-d.events:
					d.process(ev)
				default:
					slog.Debug("[Dispatcher] Worker drained", "worker", worker)
					return
				}
			}
		}
	}
}

func (d *Dispatcher) process(ev mutationEvent) {
	if err := d.maintainer.OnChildMutation(context.Background(), ev.itemID, ev.op); err != nil {
		// Already marked dirty by the maintainer; the reconciler picks it up.
		slog.Error("[Dispatcher] Async maintenance failed",
			"item_id", ev.itemID,
			"op", ev.op,
			"error", err,
		)
	}
}
