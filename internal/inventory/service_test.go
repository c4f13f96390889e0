package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/logitrack-app/backend/pkg/db/models"
	pkgerrors "github.com/logitrack-app/backend/pkg/errors"
)

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	cases := []struct {
		name  string
		input CreateItemInput
	}{
		{"missing name", CreateItemInput{Quantity: 5}},
		{"negative quantity", CreateItemInput{Name: "Pallet Jack", Quantity: -1}},
		{"negative price", CreateItemInput{Name: "Pallet Jack", Price: decimal.NewFromInt(-10)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
		})
	}
}

func TestServiceDeleteRefusesReservedItem(t *testing.T) {
	repo := newStubRepo()
	repo.items[1] = &models.InventoryItem{ID: 1, Name: "Forklift", Quantity: 5}
	repo.reservations[1] = 2

	svc, err := NewService(repo)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Contains(t, repo.items, uint(1))
}

func TestServiceDeleteUnreservedItem(t *testing.T) {
	repo := newStubRepo()
	repo.items[4] = &models.InventoryItem{ID: 4, Name: "Hand Truck", Quantity: 20}

	svc, err := NewService(repo)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.NotContains(t, repo.items, uint(4))
}

func TestServiceGetMissingItem(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceUpdateReplacesFields(t *testing.T) {
	repo := newStubRepo()
	repo.items[2] = &models.InventoryItem{ID: 2, Name: "Forklift", Quantity: 5, Location: "Dock 2"}

	svc, err := NewService(repo)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 2, UpdateItemInput{
		Name:     "Forklift (electric)",
		Quantity: 7,
		Price:    decimal.NewFromInt(21000),
		Location: "Dock 3",
	})
	require.NoError(t, err)
	assert.Equal(t, "Forklift (electric)", updated.Name)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, "Dock 3", updated.Location)
}

func TestServiceCreateBatchValidatesEveryItem(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.CreateBatch(context.Background(), []CreateItemInput{
		{Name: "Pallet Jack", Quantity: 12},
		{Name: "", Quantity: 3},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.CreateBatch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

type stubRepo struct {
	items        map[uint]*models.InventoryItem
	reservations map[uint]int64
	nextID       uint
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		items:        map[uint]*models.InventoryItem{},
		reservations: map[uint]int64{},
		nextID:       100,
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) List(ctx context.Context) ([]models.InventoryItem, error) {
	out := make([]models.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	if item, ok := s.items[id]; ok {
		copy := *item
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.InventoryItem, error) {
	out := make([]models.InventoryItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubRepo) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	s.nextID++
	item.ID = s.nextID
	s.items[item.ID] = item
	return item, nil
}

func (s *stubRepo) CreateBatch(ctx context.Context, items []models.InventoryItem) ([]models.InventoryItem, error) {
	for i := range items {
		s.nextID++
		items[i].ID = s.nextID
		stored := items[i]
		s.items[stored.ID] = &stored
	}
	return items, nil
}

func (s *stubRepo) Update(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	s.items[item.ID] = item
	return item, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uint) error {
	delete(s.items, id)
	return nil
}

func (s *stubRepo) CountReservations(ctx context.Context, itemID uint) (int64, error) {
	return s.reservations[itemID], nil
}
