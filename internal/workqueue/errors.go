package workqueue

import (
	"errors"
	"fmt"
)

// ErrExecutorClosed is returned by Submit after Stop has been called.
var ErrExecutorClosed = errors.New("workqueue: executor closed")

// ErrQueueFull is the target for errors.Is when a lane stayed full past the
// enqueue timeout.
var ErrQueueFull = errors.New("workqueue: queue full")

// QueueFullError carries lane diagnostics alongside ErrQueueFull.
type QueueFullError struct {
	Lane     int
	Length   int
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("workqueue: lane %d full (%d/%d)", e.Lane, e.Length, e.Capacity)
}

// Is lets errors.Is(err, ErrQueueFull) match.
func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
