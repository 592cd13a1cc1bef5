package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"fieldrep/internal/model"

	"github.com/google/uuid"
)

// MemoryStore is an in-process RequestRepository and CatalogRepository.
// It applies the same owner scoping and ordering as the SQL store and is
// used by tests and by the API when no database is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	orders    []model.OrderRequest
	doctors   []model.DoctorEntry
	utilities []model.UtilityRequest
	products  []model.Product
}

func NewMemoryStore(products ...model.Product) *MemoryStore {
	s := &MemoryStore{}
	for _, p := range products {
		if p.ID == "" {
			p.ID = p.SKU
		}
		s.products = append(s.products, p)
	}
	return s
}

func (s *MemoryStore) FetchOrders(ctx context.Context, ownerID string) ([]model.OrderRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := ownedBy(s.orders, ownerID)
	sortByCreatedDesc(out)
	return out, nil
}

func (s *MemoryStore) FetchDoctors(ctx context.Context, ownerID string) ([]model.DoctorEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := ownedBy(s.doctors, ownerID)
	for i := range out {
		out[i].VisualAids = slices.Clone(out[i].VisualAids)
	}
	sortDoctorsByName(out)
	return out, nil
}

func (s *MemoryStore) FetchUtilities(ctx context.Context, ownerID string) ([]model.UtilityRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := ownedBy(s.utilities, ownerID)
	sortByCreatedDesc(out)
	return out, nil
}

func (s *MemoryStore) FindDoctor(ctx context.Context, ownerID string, id uuid.UUID) (*model.DoctorEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.doctors {
		if d.OwnerID == ownerID && d.ID == id {
			d.VisualAids = slices.Clone(d.VisualAids)
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (s *MemoryStore) Create(ctx context.Context, doc model.Document) error {
	meta := doc.Meta()
	if meta.OwnerID == "" {
		return ErrOwnerRequired
	}
	if err := ctx.Err(); err != nil {
		return remoteErr("create", doc.RecordKind(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	meta.ID = uuid.New()
	if meta.Status == "" {
		meta.Status = model.StatusPending
	}
	switch d := doc.(type) {
	case *model.OrderRequest:
		s.orders = append(s.orders, *d)
	case *model.DoctorEntry:
		entry := *d
		entry.VisualAids = slices.Clone(d.VisualAids)
		s.doctors = append(s.doctors, entry)
	case *model.UtilityRequest:
		s.utilities = append(s.utilities, *d)
	}
	return nil
}

// SetStatus stands in for the external approver in tests and dev setups.
func (s *MemoryStore) SetStatus(id uuid.UUID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return true
		}
	}
	for i := range s.doctors {
		if s.doctors[i].ID == id {
			s.doctors[i].Status = status
			return true
		}
	}
	for i := range s.utilities {
		if s.utilities[i].ID == id {
			s.utilities[i].Status = status
			return true
		}
	}
	return false
}

func (s *MemoryStore) Products(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.products)
	slices.SortStableFunc(out, func(a, b model.Product) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *MemoryStore) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *MemoryStore) List(ctx context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	all, _ := s.Products(ctx)
	if search != "" {
		needle := strings.ToLower(search)
		all = slices.DeleteFunc(all, func(p model.Product) bool {
			return !strings.Contains(strings.ToLower(p.Name), needle)
		})
	}
	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []model.Product{}, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func ownedBy[T any, PT interface {
	*T
	model.Document
}](docs []T, ownerID string) []T {
	out := make([]T, 0, len(docs))
	for i := range docs {
		if PT(&docs[i]).Meta().OwnerID == ownerID {
			out = append(out, docs[i])
		}
	}
	return out
}
