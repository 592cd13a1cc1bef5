package repository

import (
	"context"
	"fmt"
	"slices"

	"fieldrep/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type collection struct {
	order string // ORDER BY clause
}

var collections = map[model.Kind]collection{
	model.KindOrder:   {order: "created_at DESC"},
	model.KindDoctor:  {order: "name ASC"},
	model.KindUtility: {order: "created_at DESC"},
}

// OrderingFor returns the ORDER BY clause applied to owner fetches of kind.
func OrderingFor(kind model.Kind) string {
	return collections[kind].order
}

func submitAction(kind model.Kind) string {
	switch kind {
	case model.KindOrder:
		return model.ActionSubmitOrder
	case model.KindDoctor:
		return model.ActionSubmitDoctor
	default:
		return model.ActionSubmitUtility
	}
}

func entityName(doc model.Document) string {
	switch d := doc.(type) {
	case *model.OrderRequest:
		return d.ProductName
	case *model.DoctorEntry:
		return d.Name
	case *model.UtilityRequest:
		return d.Type
	}
	return ""
}

// sortByCreatedDesc and sortByName mirror the SQL orderings for the
// in-memory store.
func sortByCreatedDesc[T any, PT interface {
	*T
	model.Document
}](docs []T) {
	slices.SortStableFunc(docs, func(a, b T) int {
		return PT(&b).Meta().CreatedAt.Compare(PT(&a).Meta().CreatedAt)
	})
}

// sortDoctorsByName compares with an English collator, so case does not
// split the list the way a byte compare would ("apple" before "Zed").
func sortDoctorsByName(docs []model.DoctorEntry) {
	c := collate.New(language.English)
	slices.SortStableFunc(docs, func(a, b model.DoctorEntry) int {
		return c.CompareString(a.Name, b.Name)
	})
}

// FetchForOwner returns the owner's records of kind in the collection's
// order.
func FetchForOwner(ctx context.Context, repo RequestRepository, kind model.Kind, ownerID string) ([]model.Document, error) {
	if _, ok := collections[kind]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	switch kind {
	case model.KindOrder:
		return fetchDocs(repo.FetchOrders(ctx, ownerID))
	case model.KindDoctor:
		return fetchDocs(repo.FetchDoctors(ctx, ownerID))
	default:
		return fetchDocs(repo.FetchUtilities(ctx, ownerID))
	}
}

func fetchDocs[T any, PT interface {
	*T
	model.Document
}](records []T, err error) ([]model.Document, error) {
	if err != nil {
		return nil, err
	}
	out := make([]model.Document, len(records))
	for i := range records {
		out[i] = PT(&records[i])
	}
	return out, nil
}
