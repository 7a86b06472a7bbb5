package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/api/metrics"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes attendance punches to a fixed set of workers using
// consistent hashing on the employee id, guaranteeing per-employee punch
// ordering.
type Dispatcher struct {
	workers []chan ports.PunchInput
	service ports.AttendanceService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AttendanceService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PunchInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PunchInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a punch to the worker responsible for its employee.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(punch ports.PunchInput) {
	idx := d.shardIndex(punch.EmployeeID)
	d.workers[idx] <- punch
	metrics.PunchQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple punches preserving per-employee ordering.
func (d *Dispatcher) EnqueueBatch(punches []ports.PunchInput) {
	for _, p := range punches {
		d.Enqueue(p)
	}
}

// shardIndex maps an employee id deterministically to a worker index.
func (d *Dispatcher) shardIndex(employeeID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(employeeID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PunchInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case punch, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, punch); err != nil {
				d.log.Error().Err(err).
					Str("employee_id", punch.EmployeeID).
					Int("worker_id", id).
					Msg("punch processing failed")
			}
			metrics.PunchQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
