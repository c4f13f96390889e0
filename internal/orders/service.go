package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/logitrack-app/backend/internal/inventory"
	"github.com/logitrack-app/backend/pkg/db"
	"github.com/logitrack-app/backend/pkg/db/models"
	pkgerrors "github.com/logitrack-app/backend/pkg/errors"
	"github.com/logitrack-app/backend/pkg/logger"
	"github.com/logitrack-app/backend/pkg/metrics"
)

// Service is the order/inventory reconciliation engine. Every mutation keeps
// the central invariant: an item's quantity-on-hand equals its baseline minus
// the sum of all active reservations referencing it.
type Service interface {
	List(ctx context.Context) ([]OrderDTO, error)
	Get(ctx context.Context, id uint) (*OrderDTO, error)
	Insert(ctx context.Context, input InsertOrderInput) (*OrderDTO, error)
	InsertBatch(ctx context.Context, inputs []InsertOrderInput) ([]OrderDTO, error)
	Update(ctx context.Context, input UpdateOrderInput) (*OrderDTO, error)
	Remove(ctx context.Context, id uint) error
}

// ServiceParams bundles the dependencies required to build the engine.
type ServiceParams struct {
	Repo      Repository
	Inventory inventory.Repository
	Tx        txRunner
	Stock     stockAdjuster
	Cache     cacheStore
	CacheTTL  time.Duration
	Metrics   *metrics.EngineMetrics
	Logger    *logger.Logger
}

type service struct {
	repo      Repository
	inventory inventory.Repository
	tx        txRunner
	stock     stockAdjuster
	cache     *readCache
	metrics   *metrics.EngineMetrics
	logg      *logger.Logger
}

// NewService builds the reconciliation engine with the provided dependencies.
// Cache, metrics, and logger are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	stock := params.Stock
	if stock == nil {
		stock = NewStockAdjuster()
	}
	return &service{
		repo:      params.Repo,
		inventory: params.Inventory,
		tx:        params.Tx,
		stock:     stock,
		cache:     newReadCache(params.Cache, params.CacheTTL, params.Logger),
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

func (s *service) List(ctx context.Context) ([]OrderDTO, error) {
	if cached, ok := s.cache.getList(ctx); ok {
		return cached, nil
	}

	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	dtos := FromModels(orders)
	s.cache.setList(ctx, dtos)
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uint) (*OrderDTO, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if cached, ok := s.cache.getDetail(ctx, id); ok {
		return cached, nil
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	dto := FromModel(order)
	s.cache.setDetail(ctx, dto)
	return dto, nil
}

func (s *service) Insert(ctx context.Context, input InsertOrderInput) (*OrderDTO, error) {
	started := time.Now()
	dto, err := s.insert(ctx, input)
	s.record("insert", started, err)
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, dto.ID)
	return dto, nil
}

func (s *service) insert(ctx context.Context, input InsertOrderInput) (*OrderDTO, error) {
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	requested, err := normalizeLines(input.Items)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.DefaultOrderStatus
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invRepo := s.inventory.WithTx(tx)

		if input.ID != 0 {
			exists, err := repo.Exists(ctx, input.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check order identity")
			}
			if exists {
				return pkgerrors.Newf(pkgerrors.CodeConflict, "order %d already exists", input.ID)
			}
		}

		if err := checkAvailability(ctx, invRepo, requested, nil); err != nil {
			return err
		}

		order := &models.Order{
			ID:           input.ID,
			CustomerName: input.CustomerName,
			Status:       status,
		}
		for _, itemID := range sortedItemIDs(requested) {
			order.Items = append(order.Items, models.OrderItem{
				InventoryItemID: itemID,
				OrderedQuantity: requested[itemID],
			})
		}

		if _, err := repo.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Newf(pkgerrors.CodeConflict, "order %d already exists", input.ID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		for _, itemID := range sortedItemIDs(requested) {
			if err := s.stock.Take(ctx, tx, itemID, requested[itemID]); err != nil {
				return err
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, created.ID), "order placed")
	}
	return FromModel(created), nil
}

// InsertBatch applies the insert path per element. Failures are collected and
// returned together while orders that already committed stay committed.
func (s *service) InsertBatch(ctx context.Context, inputs []InsertOrderInput) ([]OrderDTO, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one order is required")
	}

	var errs error
	created := make([]OrderDTO, 0, len(inputs))
	for i, input := range inputs {
		dto, err := s.Insert(ctx, input)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("order %d: %w", i, err))
			continue
		}
		created = append(created, *dto)
	}
	return created, errs
}

func (s *service) Update(ctx context.Context, input UpdateOrderInput) (*OrderDTO, error) {
	started := time.Now()
	dto, err := s.update(ctx, input)
	s.record("update", started, err)
	if err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, dto.ID)
	return dto, nil
}

func (s *service) update(ctx context.Context, input UpdateOrderInput) (*OrderDTO, error) {
	if input.ID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	requested, err := normalizeLines(input.Items)
	if err != nil {
		return nil, err
	}

	var updated *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		invRepo := s.inventory.WithTx(tx)

		existingOrder, err := repo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		existing := make(map[uint]int, len(existingOrder.Items))
		rowByItem := make(map[uint]uint, len(existingOrder.Items))
		for _, item := range existingOrder.Items {
			existing[item.InventoryItemID] += item.OrderedQuantity
			if _, ok := rowByItem[item.InventoryItemID]; !ok {
				rowByItem[item.InventoryItemID] = item.ID
			}
		}

		// Stock checks run against the delta over this order's own
		// reservations, so keeping a line unchanged never double-charges it.
		if err := checkAvailability(ctx, invRepo, requested, existing); err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = existingOrder.Status
		}
		fieldUpdates := map[string]any{
			"customer_name": input.CustomerName,
			"status":        status,
			"last_updated":  time.Now().UTC(),
		}
		if err := repo.UpdateFields(ctx, input.ID, fieldUpdates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order fields")
		}

		diff := diffReservations(existing, requested)

		for _, line := range diff.Added {
			item := models.OrderItem{
				OrderID:         input.ID,
				InventoryItemID: line.ItemID,
				OrderedQuantity: line.Quantity,
			}
			if err := repo.CreateItems(ctx, []models.OrderItem{item}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reservation")
			}
			if err := s.stock.Take(ctx, tx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}

		for _, change := range diff.Changed {
			if err := repo.UpdateItemQuantity(ctx, rowByItem[change.ItemID], change.To); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update reservation")
			}
			switch delta := change.Delta(); {
			case delta > 0:
				if err := s.stock.Take(ctx, tx, change.ItemID, delta); err != nil {
					return err
				}
			case delta < 0:
				if err := s.stock.Return(ctx, tx, change.ItemID, -delta); err != nil {
					return err
				}
			}
		}

		for _, line := range diff.Removed {
			if err := repo.DeleteItem(ctx, input.ID, line.ItemID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove reservation")
			}
			if err := s.stock.Return(ctx, tx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}

		reloaded, err := repo.FindByID(ctx, input.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, updated.ID), "order updated")
	}
	return FromModel(updated), nil
}

func (s *service) Remove(ctx context.Context, id uint) error {
	started := time.Now()
	err := s.remove(ctx, id)
	s.record("remove", started, err)
	if err != nil {
		return err
	}
	s.cache.invalidate(ctx, id)
	return nil
}

func (s *service) remove(ctx context.Context, id uint) error {
	if id == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		reserved := make(map[uint]int, len(order.Items))
		for _, item := range order.Items {
			reserved[item.InventoryItemID] += item.OrderedQuantity
		}

		for _, itemID := range sortedItemIDs(reserved) {
			if err := s.stock.Return(ctx, tx, itemID, reserved[itemID]); err != nil {
				return err
			}
		}

		if err := repo.DeleteOrder(ctx, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, id), "order removed, reservations restored")
	}
	return nil
}

// checkAvailability validates every requested line against live stock before
// any mutation. existing holds this order's current reservations (nil on
// insert); the check runs on the delta so held stock is not double-charged.
func checkAvailability(ctx context.Context, invRepo inventory.Repository, requested, existing map[uint]int) error {
	ids := sortedItemIDs(requested)
	items, err := invRepo.FindByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory items")
	}

	byID := make(map[uint]models.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, itemID := range ids {
		item, ok := byID[itemID]
		if !ok {
			return pkgerrors.Newf(pkgerrors.CodeNotFound,
				"referenced inventory item %d does not exist", itemID)
		}
		need := requested[itemID] - existing[itemID]
		if need > 0 && item.Quantity-need < 0 {
			return pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
				"insufficient stock for %q (item %d): %d remaining", item.Name, itemID, item.Quantity)
		}
	}
	return nil
}

func (s *service) record(op string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveDuration(op, time.Since(started))
	if err != nil {
		s.metrics.IncFailure(op)
		return
	}
	s.metrics.IncSuccess(op)
}
