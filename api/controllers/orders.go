package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/logitrack-app/backend/api/responses"
	"github.com/logitrack-app/backend/api/validators"
	ordersvc "github.com/logitrack-app/backend/internal/orders"
	pkgerrors "github.com/logitrack-app/backend/pkg/errors"
	"github.com/logitrack-app/backend/pkg/logger"
)

// OrdersList returns every order with its reservation lines.
func OrdersList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// OrdersGet returns a single order by id.
func OrdersGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseURLID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrdersInsert places a new order and reserves its stock.
func OrdersInsert(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload ordersvc.InsertOrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Insert(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

type ordersBatchRequest struct {
	Orders []ordersvc.InsertOrderInput `json:"orders" validate:"required,min=1,dive"`
}

type ordersBatchResponse struct {
	Created []ordersvc.OrderDTO `json:"created"`
	Errors  []string            `json:"errors,omitempty"`
}

// OrdersInsertBatch places several orders best-effort. Orders that commit
// stay committed; per-order failures come back in the errors list.
func OrdersInsertBatch(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload ordersBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.InsertBatch(r.Context(), payload.Orders)
		if err != nil && len(created) == 0 {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := ordersBatchResponse{Created: created}
		for _, e := range multierr.Errors(err) {
			result.Errors = append(result.Errors, e.Error())
		}

		status := http.StatusCreated
		if len(result.Errors) > 0 {
			status = http.StatusMultiStatus
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

// OrdersUpdate replaces an order's fields and reconciles its reservations.
func OrdersUpdate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseURLID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ordersUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Update(r.Context(), ordersvc.UpdateOrderInput{
			ID:           id,
			CustomerName: payload.CustomerName,
			Status:       payload.Status,
			Items:        payload.Items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// ordersUpdateRequest mirrors UpdateOrderInput minus the id, which comes
// from the URL.
type ordersUpdateRequest struct {
	CustomerName string                    `json:"customer_name" validate:"required"`
	Status       string                    `json:"status,omitempty"`
	Items        []ordersvc.OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

// OrdersRemove cancels an order and restores its reserved stock.
func OrdersRemove(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseURLID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
