package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tastecraft/menu-studio/internal/api/metrics"
	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes lifecycle audit events to a fixed set of workers using
// consistent hashing on the menu id, guaranteeing per-menu event ordering
// without blocking the request path.
type Dispatcher struct {
	workers []chan domain.LifecycleEvent
	service ports.LifecycleService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.LifecycleService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LifecycleEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LifecycleEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an event to the worker responsible for its menu. Implements
// ports.LifecycleRecorder; non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(event domain.LifecycleEvent) {
	i := d.shardIndex(event.MenuID)
	d.workers[i] <- event
	metrics.LifecycleQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a menu id deterministically to a worker index.
func (d *Dispatcher) shardIndex(menuID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(menuID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LifecycleEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.LifecycleQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Int64("menu_id", event.MenuID).
					Int("worker_id", id).
					Msg("lifecycle event processing failed")
			}
		}
	}
}
