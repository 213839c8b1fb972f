package state

import (
	"context"
	"sync"

	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/api"
	"github.com/Aladdin-Biyabangard/updevic-console-sub000/internal/console/validate"
)

// SearchState is the listing lifecycle of a resource controller.
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchLoading
	SearchLoaded
	SearchFailed
)

// SearchFunc runs a validated search against the backend.
type SearchFunc[S, C any] func(ctx context.Context, criteria C, page validate.Pagination) (api.Page[S], error)

// DetailFunc fetches one record by id.
type DetailFunc[D any] func(ctx context.Context, id string) (D, error)

// Controller is the shared state machine behind every resource screen:
// a searched page of summaries, a detail cache, and per-record action
// tracking. S is the summary row, D the detail record, C the search
// criteria schema.
//
// Responses are gated by a sequence number taken when the search is
// dispatched, so a slow earlier response can never overwrite the result
// of a later one.
type Controller[S, D, C any] struct {
	search        SearchFunc[S, C]
	detail        DetailFunc[D]
	checkCriteria func(*C) error

	mu         sync.Mutex
	seq        uint64
	state      SearchState
	content    []S
	totalPages int
	totalItems int64
	page       int
	err        error
	details    map[string]D
	inFlight   map[string]bool
}

// NewController wires a resource controller. checkCriteria runs before
// every dispatch; a validation failure never reaches the wire.
func NewController[S, D, C any](
	search SearchFunc[S, C],
	detail DetailFunc[D],
	checkCriteria func(*C) error,
) *Controller[S, D, C] {
	return &Controller[S, D, C]{
		search:        search,
		detail:        detail,
		checkCriteria: checkCriteria,
		details:       make(map[string]D),
		inFlight:      make(map[string]bool),
	}
}

// Search validates criteria and pagination, dispatches, and installs the
// response unless a newer search has been issued meanwhile. On failure the
// previous content is kept and the error is retained for display.
func (c *Controller[S, D, C]) Search(ctx context.Context, criteria C, page validate.Pagination) error {
	if err := c.checkCriteria(&criteria); err != nil {
		return err
	}
	if err := page.ValidateAndSanitize(); err != nil {
		return err
	}

	c.mu.Lock()
	c.seq++
	ticket := c.seq
	c.state = SearchLoading
	c.mu.Unlock()

	result, err := c.search(ctx, criteria, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.seq {
		// A newer search owns the screen now; drop this response.
		return nil
	}
	if err != nil {
		c.state = SearchFailed
		c.err = err
		return err
	}
	c.state = SearchLoaded
	c.err = nil
	c.content = result.Content
	c.totalPages = result.TotalPages
	c.totalItems = result.TotalElements
	c.page = result.Number
	return nil
}

// FetchDetail returns the cached record for id, fetching it once. Fetch
// failures are returned and leave the cache untouched.
func (c *Controller[S, D, C]) FetchDetail(ctx context.Context, id string) (D, error) {
	c.mu.Lock()
	if d, ok := c.details[id]; ok {
		c.mu.Unlock()
		return d, nil
	}
	c.mu.Unlock()

	d, err := c.detail(ctx, id)
	if err != nil {
		var zero D
		return zero, err
	}

	c.mu.Lock()
	c.details[id] = d
	c.mu.Unlock()
	return d, nil
}

// InvalidateDetail drops the cached record for id, forcing a refetch.
func (c *Controller[S, D, C]) InvalidateDetail(id string) {
	c.mu.Lock()
	delete(c.details, id)
	c.mu.Unlock()
}

// Mutate runs op against one record with the record's action flag held.
// On success patch rewrites the listed content and the record's detail
// entry is invalidated; on failure the listing is left exactly as it was.
// The flag clears either way.
func (c *Controller[S, D, C]) Mutate(ctx context.Context, id string, op func(ctx context.Context) error, patch func(items []S) []S) error {
	c.mu.Lock()
	if c.inFlight[id] {
		c.mu.Unlock()
		return nil
	}
	c.inFlight[id] = true
	c.mu.Unlock()

	err := op(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
	if err != nil {
		return err
	}
	if patch != nil {
		c.content = patch(c.content)
	}
	delete(c.details, id)
	return nil
}

// ActionInFlight reports whether a mutation for id is in progress.
func (c *Controller[S, D, C]) ActionInFlight(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[id]
}

// Content returns a copy of the listed rows.
func (c *Controller[S, D, C]) Content() []S {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]S, len(c.content))
	copy(out, c.content)
	return out
}

// State returns the listing lifecycle state.
func (c *Controller[S, D, C]) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the retained search error, if any.
func (c *Controller[S, D, C]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Page returns the zero-based current page and the page count.
func (c *Controller[S, D, C]) Page() (current, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.totalPages
}

// TotalItems returns the backend's total element count.
func (c *Controller[S, D, C]) TotalItems() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalItems
}

// HasPrev reports whether an earlier page exists.
func (c *Controller[S, D, C]) HasPrev() bool {
	current, _ := c.Page()
	return current > 0
}

// HasNext reports whether a later page exists.
func (c *Controller[S, D, C]) HasNext() bool {
	current, total := c.Page()
	return current < total-1
}

// PageWindow returns at most five page indices centered on current,
// clamped to the valid range. With twelve pages and current at nine the
// window is [7 8 9 10 11].
func PageWindow(current, totalPages int) []int {
	const width = 5
	if totalPages <= 0 {
		return nil
	}
	n := width
	if totalPages < n {
		n = totalPages
	}
	start := current - width/2
	if start > totalPages-n {
		start = totalPages - n
	}
	if start < 0 {
		start = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
