// Package listview keeps the last fetched list of one record kind and
// re-fetches it when a submission signals a refresh.
package listview

import (
	"context"
	"errors"
	"slices"
	"sync"

	"fieldrep/internal/model"
	"fieldrep/internal/session"

	"github.com/sirupsen/logrus"
)

// Fetcher is an owner-scoped repository read, e.g. RequestRepository.FetchOrders.
type Fetcher[T any] func(ctx context.Context, ownerID string) ([]T, error)

// View holds one list. Fetches are never cancelled; every Refresh takes a
// sequence number and only the most recently issued fetch may publish, so a
// slow earlier response cannot overwrite a newer one.
type View[T any] struct {
	kind     model.Kind
	fetch    Fetcher[T]
	identity session.Provider
	log      *logrus.Entry

	mu       sync.Mutex
	issued   uint64
	inFlight int
	items    []T
	lastErr  error
	onChange func([]T)
}

func New[T any](kind model.Kind, fetch Fetcher[T], identity session.Provider, log *logrus.Logger) *View[T] {
	return &View[T]{
		kind:     kind,
		fetch:    fetch,
		identity: identity,
		log:      log.WithField("kind", kind),
	}
}

// OnChange registers fn to receive every published list.
func (v *View[T]) OnChange(fn func([]T)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Refresh fetches the current owner's list. A missing identity is logged
// and the view is left untouched. On a fetch error the previous items are
// kept and the error is returned.
func (v *View[T]) Refresh(ctx context.Context) error {
	s, err := v.identity.Current(ctx)
	if err != nil {
		v.log.WithError(err).Warn("listview: refresh skipped")
		return err
	}

	v.mu.Lock()
	v.issued++
	seq := v.issued
	v.inFlight++
	v.mu.Unlock()

	items, err := v.fetch(ctx, s.OwnerID)

	v.mu.Lock()
	v.inFlight--
	if seq != v.issued {
		v.mu.Unlock()
		v.log.WithField("seq", seq).Debug("listview: discarding superseded response")
		return err
	}
	if err != nil {
		v.lastErr = err
		v.mu.Unlock()
		return err
	}
	v.items = items
	v.lastErr = nil
	cb := v.onChange
	v.mu.Unlock()

	if cb != nil {
		cb(slices.Clone(items))
	}
	return nil
}

// Notify implements the submission refresh signal for this view's kind.
func (v *View[T]) Notify(ctx context.Context, kind model.Kind, ownerID string) {
	if kind != v.kind {
		return
	}
	if err := v.Refresh(ctx); err != nil && !errors.Is(err, session.ErrIdentityMissing) {
		v.log.WithError(err).WithField("owner_id", ownerID).Error("listview: refresh after submit failed")
	}
}

func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.items)
}

// Loading reports whether any fetch is outstanding.
func (v *View[T]) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight > 0
}

func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}
