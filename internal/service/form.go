package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"fieldrep/internal/metrics"
	"fieldrep/internal/model"
	"fieldrep/internal/repository"
	"fieldrep/internal/session"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownField   = errors.New("unknown form field")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// Refresher is told when a record was created so list views re-fetch.
type Refresher interface {
	Notify(ctx context.Context, kind model.Kind, ownerID string)
}

// Refreshers fans a notification out to several refreshers.
type Refreshers []Refresher

func (rs Refreshers) Notify(ctx context.Context, kind model.Kind, ownerID string) {
	for _, r := range rs {
		if r != nil {
			r.Notify(ctx, kind, ownerID)
		}
	}
}

// Deps are the collaborators shared by every form.
type Deps struct {
	Repo      repository.RequestRepository
	Catalog   repository.CatalogRepository
	Identity  session.Provider
	Refresher Refresher
	Log       *logrus.Logger
	Now       func() time.Time
}

// formCore holds what every form session shares besides its draft.
type formCore struct {
	kind     model.Kind
	deps     Deps
	log      *logrus.Entry
	inFlight atomic.Bool
}

func newCore(kind model.Kind, deps Deps) formCore {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	return formCore{kind: kind, deps: deps, log: deps.Log.WithField("kind", kind)}
}

// Submitting reports whether a submission is outstanding.
func (c *formCore) Submitting() bool { return c.inFlight.Load() }

// begin claims the in-flight flag; the returned func releases it.
func (c *formCore) begin() (func(), error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		metrics.RecordSubmission(c.kind, metrics.ResultInFlight)
		return nil, ErrSubmitInFlight
	}
	return func() { c.inFlight.Store(false) }, nil
}

func (c *formCore) identity(ctx context.Context) (session.Session, error) {
	s, err := c.deps.Identity.Current(ctx)
	if err != nil {
		// Precondition failure upstream: log it, never surface it on the form.
		c.log.WithError(err).Warn("submit skipped: no authenticated owner")
		metrics.RecordSubmission(c.kind, metrics.ResultIdentityMissing)
		return session.Session{}, err
	}
	return s, nil
}

func (c *formCore) invalid(errs ValidationErrors) error {
	metrics.RecordSubmission(c.kind, metrics.ResultInvalid)
	c.log.WithField("fields", len(errs)).Debug("submit rejected by validation")
	return errs
}

func (c *formCore) create(ctx context.Context, doc model.Document) error {
	meta := doc.Meta()
	if err := c.deps.Repo.Create(ctx, doc); err != nil {
		metrics.RecordSubmission(c.kind, metrics.ResultRemoteError)
		c.log.WithError(err).WithField("owner_id", meta.OwnerID).Error("submit failed")
		return fmt.Errorf("submit %s: %w", c.kind, err)
	}
	metrics.RecordSubmission(c.kind, metrics.ResultCreated)
	c.log.WithFields(logrus.Fields{
		"owner_id":  meta.OwnerID,
		"record_id": meta.ID.String(),
	}).Info("record submitted")
	return nil
}

func (c *formCore) refresh(ctx context.Context, ownerID string) {
	if c.deps.Refresher != nil {
		c.deps.Refresher.Notify(ctx, c.kind, ownerID)
	}
}

// newRecord stamps the fields every submission starts with.
func (c *formCore) newRecord(s session.Session) model.Record {
	return model.Record{
		OwnerID:   s.OwnerID,
		CreatedAt: c.deps.Now(),
		Status:    model.StatusPending,
	}
}
