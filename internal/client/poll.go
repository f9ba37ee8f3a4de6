package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// settled reports whether a polled resource reached a terminal state, and the
// error to return with it when that state is a failure.
type settled[T any] func(current *T) (bool, error)

// pollUntil fetches immediately and then once per poll interval until done
// reports a terminal state. On timeout the last fetched value is returned with
// ErrPollTimeout. Cancelling ctx ends the wait with ctx.Err().
func pollUntil[T any](ctx context.Context, r *requester, fetch func(context.Context) (*T, error), done settled[T]) (*T, error) {
	pollCtx, cancel := context.WithTimeout(ctx, r.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	current, err := fetch(pollCtx)
	if err != nil {
		return nil, pollFailure(ctx, pollCtx, err)
	}

	for {
		finished, err := done(current)
		if finished {
			return current, err
		}

		select {
		case <-pollCtx.Done():
			return current, pollFailure(ctx, pollCtx, pollCtx.Err())
		case <-ticker.C:
			next, err := fetch(pollCtx)
			if err != nil {
				return current, pollFailure(ctx, pollCtx, err)
			}

			current = next
		}
	}
}

// pollFailure tells a caller cancellation and an expired wait apart from a
// failed status fetch.
func pollFailure(ctx, pollCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if errors.Is(pollCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", easypost.ErrPollTimeout, pollCtx.Err())
	}

	return fmt.Errorf("getting status: %w", err)
}
