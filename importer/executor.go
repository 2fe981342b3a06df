package importer

import "golang.org/x/sync/errgroup"

// DefaultConcurrency is the number of imports fetched at once.
const DefaultConcurrency = 16

// Executor runs fetch tasks. *errgroup.Group satisfies it.
type Executor interface {
	// Go schedules f, blocking while the executor is at its limit.
	Go(f func() error)

	// Wait blocks until all scheduled tasks return and reports the first
	// error.
	Wait() error
}

// NewExecutor returns an errgroup bounded to limit concurrent tasks. A
// limit below one uses DefaultConcurrency.
func NewExecutor(limit int) *errgroup.Group {
	if limit < 1 {
		limit = DefaultConcurrency
	}
	g := &errgroup.Group{}
	g.SetLimit(limit)
	return g
}
