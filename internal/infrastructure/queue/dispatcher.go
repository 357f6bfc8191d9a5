package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	maxAttempts    = 3
	defaultBackoff = 2 * time.Second
)

// Dispatcher removes drafts left behind by a publish whose inline delete
// failed. Asset names are sharded across workers with consistent hashing so
// repeated jobs for one asset never run concurrently.
type Dispatcher struct {
	workers []chan string
	backoff time.Duration
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		backoff: defaultBackoff,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context, cleaner ports.DraftCleaner) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch, cleaner)
	}
}

// Enqueue hands name to the worker responsible for it. It never blocks:
// when the worker's buffer is full the job is dropped and false returned.
func (d *Dispatcher) Enqueue(name string) bool {
	idx := d.shardIndex(name)
	select {
	case d.workers[idx] <- name:
		metrics.DraftCleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return true
	default:
		metrics.DraftCleanupTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("image", name).Int("worker_id", idx).Msg("draft cleanup queue full, job dropped")
		return false
	}
}

// shardIndex maps an asset name deterministically to a worker index.
func (d *Dispatcher) shardIndex(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string, cleaner ports.DraftCleaner) {
	depth := metrics.DraftCleanupQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.clean(ctx, id, name, cleaner)
		}
	}
}

// clean retries with a linearly growing delay between attempts.
func (d *Dispatcher) clean(ctx context.Context, id int, name string, cleaner ports.DraftCleaner) {
	for attempt := 1; ; attempt++ {
		err := cleaner.RemoveDraft(ctx, name)
		if err == nil {
			metrics.DraftCleanupTotal.WithLabelValues("removed").Inc()
			d.log.Debug().Str("image", name).Int("worker_id", id).Int("attempt", attempt).Msg("draft removed")
			return
		}
		if attempt >= maxAttempts {
			metrics.DraftCleanupTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("image", name).
				Int("worker_id", id).
				Int("attempts", attempt).
				Msg("draft cleanup failed")
			return
		}

		metrics.DraftCleanupTotal.WithLabelValues("retry").Inc()
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * d.backoff):
		}
	}
}
