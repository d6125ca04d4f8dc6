// Package session owns the per-lookup lifecycle state: idle, loading,
// success, error. It mediates calls into the profile client and enforces
// latest-wins semantics when a new lookup starts while an older one is
// still in flight.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/stackslip/stackslip/internal/model"
)

// Client is the slice of the stackex client the controller needs,
// narrowed so tests can substitute a fake.
type Client interface {
	ResolveProfile(ctx context.Context, query string) (*model.ProfileRecord, error)
	FetchTags(ctx context.Context, userID int) model.TagList
}

// Controller owns a SessionState. It is the single writer; any number of
// readers observe it through State(), which returns the whole value, so
// a reader never sees a half-replaced snapshot.
type Controller struct {
	client Client
	codes  *CodeSource

	mu    sync.RWMutex
	gen   uint64 // submission generation; stale generations may not commit
	state model.SessionState
}

// New creates an idle Controller.
func New(client Client, codes *CodeSource) *Controller {
	return &Controller{
		client: client,
		codes:  codes,
		state:  model.SessionState{Phase: model.PhaseIdle},
	}
}

// State returns a copy of the current session state.
func (c *Controller) State() model.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Submit runs one lookup attempt to completion. Input that trims to
// empty is a no-op. The state moves to loading immediately, clearing any
// previous record so stale data is never shown next to a new loading
// indicator. If Submit is called again before an earlier call finishes,
// the earlier call's eventual result is discarded: only the most recent
// submission may write state.
func (c *Controller) Submit(ctx context.Context, rawInput string) {
	query := strings.TrimSpace(rawInput)
	if query == "" {
		return
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = model.SessionState{Phase: model.PhaseLoading}
	c.mu.Unlock()

	record, err := c.client.ResolveProfile(ctx, query)
	if err != nil {
		c.commit(gen, model.SessionState{
			Phase:        model.PhaseError,
			ErrorMessage: err.Error(),
		})
		return
	}

	// Best-effort: FetchTags never fails past its own boundary. A zero
	// identifier means the platform omitted user_id; /users/0/tags can
	// only ever reject, so skip the round trip.
	tags := model.TagList{}
	if record.UserID != 0 {
		tags = c.client.FetchTags(ctx, record.UserID)
	}

	c.commit(gen, model.SessionState{
		Phase:      model.PhaseSuccess,
		Record:     record,
		Tags:       tags,
		CouponCode: c.codes.Coupon(),
		AuthCode:   c.codes.Auth(),
	})
}

// commit writes next only if gen is still the latest submission.
func (c *Controller) commit(gen uint64, next model.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return // superseded by a newer Submit
	}
	c.state = next
}
