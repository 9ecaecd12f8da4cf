package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vault42/console/internal/api/metrics"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrStopped is reported for items submitted to a dispatcher that is not
// running.
var ErrStopped = errors.New("dispatcher stopped")

type job struct {
	ctx  context.Context
	item domain.BatchItem
	out  *domain.BatchResult
	done func()
}

// Dispatcher runs back-office batches on a fixed set of workers, sharding by
// target so that actions on the same deposit, application or account are
// applied in submission order.
type Dispatcher struct {
	workers []chan job
	exec    ports.ActionExecutor
	log     zerolog.Logger

	// guards the worker channels against sends after close
	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, exec ports.ActionExecutor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		exec:    exec,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

var _ ports.BatchRunner = (*Dispatcher)(nil)

// Start launches the workers. When ctx is cancelled the dispatcher stops
// accepting work and fails whatever is still queued with ErrStopped.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.mu.Lock()
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
		d.mu.Unlock()
	}()
}

// Run submits items and blocks until every one has a result.
func (d *Dispatcher) Run(ctx context.Context, items []domain.BatchItem) []domain.BatchResult {
	results := make([]domain.BatchResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		results[i].BatchItem = item
		wg.Add(1)
		j := job{ctx: ctx, item: item, out: &results[i], done: wg.Done}
		if err := d.enqueue(ctx, j); err != nil {
			d.fail(j, err)
		}
	}
	wg.Wait()
	return results
}

func (d *Dispatcher) enqueue(ctx context.Context, j job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.started || d.closed {
		return ErrStopped
	}
	select {
	case d.workers[d.shardIndex(j.item.Target)] <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a target deterministically to a worker index.
func (d *Dispatcher) shardIndex(target string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(target))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	for j := range ch {
		switch {
		case ctx.Err() != nil:
			d.fail(j, ErrStopped)
		case j.ctx.Err() != nil:
			d.fail(j, j.ctx.Err())
		default:
			d.process(id, j)
		}
	}
}

func (d *Dispatcher) process(id int, j job) {
	res, err := d.exec.Execute(j.ctx, j.item)
	if err != nil {
		d.log.Error().Err(err).
			Str("action", string(j.item.Action)).
			Str("target", j.item.Target).
			Int("worker_id", id).
			Msg("back-office action failed")
		d.fail(j, err)
		return
	}
	j.out.Result = res
	metrics.BatchActionsTotal.WithLabelValues(string(j.item.Action), "ok").Inc()
	j.done()
}

func (d *Dispatcher) fail(j job, err error) {
	j.out.Error = err.Error()
	metrics.BatchActionsTotal.WithLabelValues(string(j.item.Action), "error").Inc()
	j.done()
}
