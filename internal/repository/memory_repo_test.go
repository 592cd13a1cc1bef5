package repository

import (
	"context"
	"testing"
	"time"

	"fieldrep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(owner string, created time.Time) *model.OrderRequest {
	o := &model.OrderRequest{Type: model.OrderTypeRegular, Quantity: 1}
	o.OwnerID = owner
	o.CreatedAt = created
	o.Priority = model.PriorityLow
	return o
}

func TestMemoryStore_FetchOrdersDescendingByCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// inserted out of order on purpose
	for _, offset := range []int{2, 0, 3, 1} {
		require.NoError(t, store.Create(ctx, order("U1", base.Add(time.Duration(offset)*time.Hour))))
	}
	require.NoError(t, store.Create(ctx, order("U2", base.Add(10*time.Hour))))

	orders, err := store.FetchOrders(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, orders, 4)
	for i := 1; i < len(orders); i++ {
		assert.True(t, orders[i-1].CreatedAt.After(orders[i].CreatedAt), "orders must be strictly descending")
	}
	for _, o := range orders {
		assert.Equal(t, "U1", o.OwnerID)
		assert.NotEqual(t, uuid.Nil, o.ID)
		assert.Equal(t, model.StatusPending, o.Status)
	}
}

func TestMemoryStore_FetchDoctorsAscendingByName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, name := range []string{"Mehta", "Agarwal", "Kulkarni"} {
		d := &model.DoctorEntry{Name: name, Type: model.DoctorTypeChemist}
		d.OwnerID = "U1"
		d.CreatedAt = time.Now()
		require.NoError(t, store.Create(ctx, d))
	}

	doctors, err := store.FetchDoctors(ctx, "U1")
	require.NoError(t, err)
	names := make([]string, 0, len(doctors))
	for _, d := range doctors {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Agarwal", "Kulkarni", "Mehta"}, names)

	none, err := store.FetchDoctors(ctx, "U2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_DoctorNamesIgnoreCase(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, name := range []string{"Zed Pharma", "apple medicos", "Bharat Chemists"} {
		d := &model.DoctorEntry{Name: name, Type: model.DoctorTypeChemist}
		d.OwnerID = "U1"
		require.NoError(t, store.Create(ctx, d))
	}

	doctors, err := store.FetchDoctors(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, doctors, 3)
	assert.Equal(t, "apple medicos", doctors[0].Name)
	assert.Equal(t, "Bharat Chemists", doctors[1].Name)
	assert.Equal(t, "Zed Pharma", doctors[2].Name)
}

func TestMemoryStore_VisualAidsKeepOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	d := &model.DoctorEntry{Name: "Rao", Type: model.DoctorTypeDoctor, VisualAids: []string{"b.png", "a.png", "b.png"}}
	d.OwnerID = "U1"
	require.NoError(t, store.Create(ctx, d))

	got, err := store.FindDoctor(ctx, "U1", d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.png", "a.png", "b.png"}, []string(got.VisualAids))

	_, err = store.FindDoctor(ctx, "U2", d.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestMemoryStore_CreateRequiresOwner(t *testing.T) {
	store := NewMemoryStore()
	err := store.Create(context.Background(), order("", time.Now()))
	assert.ErrorIs(t, err, ErrOwnerRequired)
}

func TestMemoryStore_CreateOnCancelledContextIsRemoteError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewMemoryStore().Create(ctx, order("U1", time.Now()))
	require.Error(t, err)
	assert.True(t, IsRemote(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_SetStatusIsVisibleOnFetch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	o := order("U1", time.Now())
	require.NoError(t, store.Create(ctx, o))
	require.True(t, store.SetStatus(o.ID, model.StatusApproved))

	orders, err := store.FetchOrders(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, orders[0].Status)
}

func TestMemoryStore_ListProducts(t *testing.T) {
	store := NewMemoryStore(
		model.Product{SKU: "A", Name: "Zincovit"},
		model.Product{SKU: "B", Name: "Azithral"},
		model.Product{SKU: "C", Name: "Zerodol"},
	)
	products, total, err := store.List(context.Background(), 1, 2, "z")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, products, 2)
	assert.Equal(t, "Azithral", products[0].Name)

	products, _, err = store.List(context.Background(), 3, 2, "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFetchForOwner_DispatchesOnKind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, order("U1", base)))
	require.NoError(t, store.Create(ctx, order("U1", base.Add(time.Minute))))

	u := &model.UtilityRequest{Type: model.UtilityTypeSamples, Description: "Starter packs", Location: "Thane"}
	u.OwnerID = "U1"
	u.CreatedAt = base
	require.NoError(t, store.Create(ctx, u))

	docs, err := FetchForOwner(ctx, store, model.KindOrder, "U1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.True(t, docs[0].Meta().CreatedAt.After(docs[1].Meta().CreatedAt))
	for _, d := range docs {
		assert.Equal(t, model.KindOrder, d.RecordKind())
	}

	docs, err = FetchForOwner(ctx, store, model.KindUtility, "U1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, u.ID, docs[0].Meta().ID)

	_, err = FetchForOwner(ctx, store, model.Kind("invoice"), "U1")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
