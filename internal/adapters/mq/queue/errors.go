package queue

import "errors"

// ErrQueueFull signals that a job was rejected because the queue is at
// capacity. Callers surface it as backpressure rather than retrying.
var ErrQueueFull = errors.New("refresh queue is full")
