package easypost

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// ErrPaginationStalled is returned when the API keeps reporting more pages but
// serves only empty ones.
var ErrPaginationStalled = errors.New("pagination stalled: repeated empty pages with has_more set")

// ErrMaxPagesReached is returned by FetchAllPages when the page limit is hit while
// the API still reports more pages. The items fetched so far are returned with it.
var ErrMaxPagesReached = errors.New("page limit reached before the last page")

// PaginationIterator walks the items of a list operation page by page.
type PaginationIterator[T Identifiable] struct {
	ctx    context.Context
	fetch  PageFetcher[T]
	params *ListParams

	current    *Collection[T]
	index      int
	emptyPages int
	started    bool
	err        error
}

// NewPaginationIterator creates an iterator starting from params. Fetches happen
// lazily on HasNext or Next.
func NewPaginationIterator[T Identifiable](ctx context.Context, fetch PageFetcher[T], params *ListParams) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:    ctx,
		fetch:  fetch,
		params: params.Clone(),
	}
}

// HasNext reports whether Next would return an item. It may fetch a page.
func (it *PaginationIterator[T]) HasNext() bool {
	return it.advance() == nil
}

// Next returns the next item, or ErrEndOfPagination once exhausted.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	err := it.advance()
	if err != nil {
		return zero, err
	}

	item := it.current.Items[it.index]
	it.index++

	return item, nil
}

// Err returns the last fetch error, excluding ErrEndOfPagination.
func (it *PaginationIterator[T]) Err() error {
	if errors.Is(it.err, ErrEndOfPagination) {
		return nil
	}

	return it.err
}

// All drains the iterator.
func (it *PaginationIterator[T]) All() ([]T, error) {
	items := make([]T, 0)

	for {
		item, err := it.Next()
		if errors.Is(err, ErrEndOfPagination) {
			return items, nil
		}

		if err != nil {
			return items, err
		}

		items = append(items, item)
	}
}

// advance makes the current page hold an unread item, fetching as needed.
func (it *PaginationIterator[T]) advance() error {
	if it.err != nil {
		return it.err
	}

	for it.current == nil || it.index >= len(it.current.Items) {
		params, err := it.nextParams()
		if err != nil {
			it.err = err

			return err
		}

		page, err := it.fetch(it.ctx, params)
		if err != nil {
			it.err = fmt.Errorf("fetching page: %w", err)

			return it.err
		}

		it.started = true
		it.current = page
		it.index = 0

		if len(page.Items) == 0 && page.HasMore {
			it.emptyPages++
			if it.emptyPages >= constants.MaxEmptyPages {
				it.err = ErrPaginationStalled

				return it.err
			}

			continue
		}

		it.emptyPages = 0
	}

	return nil
}

func (it *PaginationIterator[T]) nextParams() (*ListParams, error) {
	if !it.started {
		return it.params, nil
	}

	params, err := it.current.NextPageParams()
	if err != nil {
		return nil, err
	}

	return params, nil
}

// FetchAllPages collects every item up to maxPages pages. A maxPages of zero or
// less uses constants.MaxPages. Stopping at the limit while has_more is still set
// fails with ErrMaxPagesReached.
func FetchAllPages[T Identifiable](ctx context.Context, fetch PageFetcher[T], params *ListParams, maxPages int) ([]T, error) {
	if maxPages <= 0 {
		maxPages = constants.MaxPages
	}

	items := make([]T, 0)
	current := params.Clone()
	emptyPages := 0

	for range maxPages {
		page, err := fetch(ctx, current)
		if err != nil {
			return items, fmt.Errorf("fetching page: %w", err)
		}

		items = append(items, page.Items...)

		if len(page.Items) == 0 && page.HasMore {
			emptyPages++
			if emptyPages >= constants.MaxEmptyPages {
				return items, ErrPaginationStalled
			}
		} else {
			emptyPages = 0
		}

		current, err = page.NextPageParams()
		if errors.Is(err, ErrEndOfPagination) {
			return items, nil
		}

		if err != nil {
			return items, err
		}
	}

	return items, fmt.Errorf("%w: stopped after %d pages", ErrMaxPagesReached, maxPages)
}
