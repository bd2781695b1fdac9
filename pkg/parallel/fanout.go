package parallel

import (
	"errors"
	"fmt"
)

// ErrTaskPanic marks a result whose task panicked
var ErrTaskPanic = errors.New("task panicked")

// Result is the outcome of one task run by Map
type Result[R any] struct {
	Value R
	Err   error
}

// Map runs fn over every item on a bounded pool and returns the results in
// item order. A panicking task yields an ErrTaskPanic result instead of
// taking the other tasks down.
func Map[T, R any](workers int, items []T, fn func(int, T) (R, error), opts ...Option) ([]Result[R], error) {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results, nil
	}
	if workers > len(items) {
		workers = len(items)
	}

	pool, err := NewWorkerPool(workers, opts...)
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		i, item := i, item
		pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
				}
			}()
			results[i].Value, results[i].Err = fn(i, item)
		})
	}
	pool.Wait()

	return results, nil
}
