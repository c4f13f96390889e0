package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/logitrack-app/backend/pkg/db/models"
	pkgerrors "github.com/logitrack-app/backend/pkg/errors"
)

// Service defines the administrative inventory operations. Stock movements
// driven by order activity go through the order engine, not through here.
type Service interface {
	List(ctx context.Context) ([]ItemDTO, error)
	Get(ctx context.Context, id uint) (*ItemDTO, error)
	Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	CreateBatch(ctx context.Context, inputs []CreateItemInput) ([]ItemDTO, error)
	Update(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService builds an inventory service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	return FromModels(items), nil
}

func (s *service) Get(ctx context.Context, id uint) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	if err := validateItemFields(input.Name, input.Quantity, input.Price.IsNegative()); err != nil {
		return nil, err
	}
	item, err := s.repo.Create(ctx, input.ToModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory item")
	}
	return FromModel(item), nil
}

func (s *service) CreateBatch(ctx context.Context, inputs []CreateItemInput) ([]ItemDTO, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	for i, input := range inputs {
		if err := validateItemFields(input.Name, input.Quantity, input.Price.IsNegative()); err != nil {
			typed := pkgerrors.As(err)
			return nil, pkgerrors.Newf(typed.Code(), "item %d: %s", i, typed.Message())
		}
	}

	batch := make([]models.InventoryItem, 0, len(inputs))
	for _, input := range inputs {
		batch = append(batch, *input.ToModel())
	}

	created, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory items")
	}
	return FromModels(created), nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error) {
	if err := validateItemFields(input.Name, input.Quantity, input.Price.IsNegative()); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Quantity = input.Quantity
	item.Price = input.Price
	item.Location = input.Location

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	reservations, err := s.repo.CountReservations(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count reservations")
	}
	if reservations > 0 {
		return pkgerrors.Newf(pkgerrors.CodeConflict,
			"inventory item %d has %d active reservation(s)", id, reservations)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory item")
	}
	return nil
}

func validateItemFields(name string, quantity int, negativePrice bool) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if negativePrice {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}
