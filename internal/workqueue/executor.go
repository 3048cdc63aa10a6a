// Package workqueue provides a lightweight keyed work-queue that guarantees
// FIFO order per key while allowing parallelism across lanes. The wardrobe
// store drives its uploads through a single key so files go to the backend
// strictly one at a time in submission order.
//
// Contract: callers must not invoke Submit concurrently for the same key.
// FIFO ordering relies on that external serialisation.
package workqueue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	apierrors "github.com/styleai/styleai-go/internal/errors"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// Executor runs Jobs on worker goroutines partitioned by a stable hash of the
// key. FIFO ordering is preserved within a lane; jobs with different keys may
// run in parallel.
type Executor struct {
	cfg   Config
	lanes []chan queuedJob // len == cfg.Lanes

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 -> running, 1 -> closed

	wg sync.WaitGroup
}

// NewExecutor constructs the executor and starts its lane workers.
func NewExecutor(cfg Config) *Executor {
	// Apply zero-value defaults.
	if cfg.Lanes <= 0 {
		cfg.Lanes = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = 100 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 10 * time.Second
	}

	e := &Executor{
		cfg:   cfg,
		lanes: make([]chan queuedJob, cfg.Lanes),
		done:  make(chan struct{}),
	}
	for i := 0; i < cfg.Lanes; i++ {
		ch := make(chan queuedJob, cfg.QueueSize)
		e.lanes[i] = ch
		e.wg.Add(1)
		go e.worker(i, ch)
	}
	return e
}

// Submit enqueues job for the lane derived from key.
//
//   - Returns nil on success.
//   - Returns ErrExecutorClosed if the executor is stopped.
//   - Returns a *QueueFullError if the lane is still full after
//     EnqueueTimeout elapses.
//   - Returns ctx.Err() if the caller-provided context is cancelled first.
func (e *Executor) Submit(ctx context.Context, key string, job Job) error {
	// Fast checks to avoid accepting work after Stop().
	if atomic.LoadUint32(&e.closed) == 1 {
		return ErrExecutorClosed
	}
	select {
	case <-e.done:
		return ErrExecutorClosed
	default:
	}

	qj := queuedJob{ctx: ctx, job: job}
	lane := e.laneFor(key)
	ch := e.lanes[lane]

	timer := time.NewTimer(e.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- qj:
		submissionsTotal.WithLabelValues(labelFor(lane)).Inc()
		return nil

	case <-e.done: // Stop() may be called while waiting for space
		return ErrExecutorClosed

	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		queueFullTotal.WithLabelValues(labelFor(lane)).Inc()
		return &QueueFullError{
			Lane:     lane,
			Length:   len(ch),
			Capacity: cap(ch),
		}
	}
}

// Barrier enqueues a no-op job on the lane for key and waits until it runs,
// ensuring all previously submitted jobs for that key have completed.
func (e *Executor) Barrier(ctx context.Context, key string) error {
	done := make(chan struct{})
	j := JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	if err := e.Submit(ctx, key, j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Stop signals every worker to finish draining its current queue, waits for
// them to terminate, and then returns. It is idempotent and safe for
// concurrent use.
func (e *Executor) Stop() {
	if !atomic.CompareAndSwapUint32(&e.closed, 0, 1) {
		return // already closed
	}
	close(e.done)
	e.wg.Wait()
	log.Debug().Msg("workqueue: executor stopped, all lanes drained")
}

// Close lets Executor satisfy io.Closer.
func (e *Executor) Close() error {
	e.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (e *Executor) worker(idx int, ch <-chan queuedJob) {
	defer e.wg.Done()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Int("lane", idx).Msg("workqueue: worker panic")
		}
	}()

	label := labelFor(idx)

	for {
		select {
		case qj := <-ch:
			if qj.job == nil {
				continue
			}

			// Honour caller context so a cancelled job doesn't stall the lane.
			select {
			case <-qj.ctx.Done():
				e.safeHandleError(qj.ctx.Err())
			default:
				e.runWithRetry(label, qj)
			}

			queueDepth.WithLabelValues(label).Set(float64(len(ch)))

		case <-e.done:
			// Drain remaining jobs, preserving FIFO, then exit.
			for {
				select {
				case qj := <-ch:
					if qj.job != nil {
						_ = qj.job.Run(qj.ctx)
					}
				default:
					queueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		}
	}
}

// runWithRetry executes one job, retrying recoverable failures with
// exponential backoff up to MaxAttempts.
func (e *Executor) runWithRetry(label string, qj queuedJob) {
	attempts := 0
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = e.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = e.cfg.MaxInterval
	exp.Reset()

	for {
		start := time.Now()
		err := qj.job.Run(qj.ctx)
		runDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

		if err == nil {
			return
		}

		// Irrecoverable errors fail fast, no retry.
		if apierrors.IsIrrecoverable(err) {
			e.safeHandleError(err)
			return
		}

		if attempts >= e.cfg.MaxAttempts-1 {
			e.safeHandleError(err) // max retries exceeded
			return
		}

		attempts++
		wait := exp.NextBackOff()
		select {
		case <-time.After(wait):
		case <-e.done:
			return
		case <-qj.ctx.Done():
			e.safeHandleError(qj.ctx.Err())
			return
		}
	}
}

func (e *Executor) safeHandleError(err error) {
	if err == nil || e.cfg.ErrorHandler == nil {
		return
	}
	func() {
		// Guard against panics in the user-supplied handler.
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("workqueue: error handler panic")
			}
		}()
		e.cfg.ErrorHandler(err)
	}()
}

func (e *Executor) laneFor(key string) int {
	h := fnv.New32a() // fast and sufficient at our scale
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % e.cfg.Lanes
}
