package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fieldrep/internal/logging"
	"fieldrep/internal/model"
	"fieldrep/internal/repository"
	"fieldrep/internal/session"

	"github.com/shopspring/decimal"
)

var submittedAt = time.Date(2026, 10, 1, 10, 30, 0, 0, time.UTC)

// recordingStore counts creates and can fail or block them.
type recordingStore struct {
	*repository.MemoryStore
	creates atomic.Int32
	fail    error
	entered chan struct{}
	release chan struct{}
}

func newRecordingStore(products ...model.Product) *recordingStore {
	return &recordingStore{MemoryStore: repository.NewMemoryStore(products...)}
}

func (s *recordingStore) Create(ctx context.Context, doc model.Document) error {
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.release
	}
	s.creates.Add(1)
	if s.fail != nil {
		return &repository.RemoteError{Op: "create", Kind: doc.RecordKind(), Err: s.fail}
	}
	return s.MemoryStore.Create(ctx, doc)
}

type refreshCall struct {
	kind    model.Kind
	ownerID string
}

type recordingRefresher struct {
	mu    sync.Mutex
	calls []refreshCall
}

func (r *recordingRefresher) Notify(_ context.Context, kind model.Kind, ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, refreshCall{kind, ownerID})
}

func (r *recordingRefresher) Calls() []refreshCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]refreshCall(nil), r.calls...)
}

func paracetamol() model.Product {
	return model.Product{
		ID:    "P1",
		SKU:   "PCM-500",
		Name:  "Paracetamol 500mg",
		Price: decimal.NewFromInt(100),
		PTS:   decimal.NewFromInt(90),
		PTR:   decimal.NewFromInt(95),
	}
}

func testDeps(store *recordingStore, identity session.Provider, refresher Refresher) Deps {
	return Deps{
		Repo:      store,
		Catalog:   store,
		Identity:  identity,
		Refresher: refresher,
		Log:       logging.Discard(),
		Now:       func() time.Time { return submittedAt },
	}
}

var rep = session.Static{OwnerID: "U1", DisplayName: "Asha Patil", Email: "asha@example.com", Headquarters: "Pune"}
