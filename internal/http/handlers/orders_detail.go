package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/queue"
	"github.com/ZainJ5/tipuburger-server/internal/utils"
	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

func (h *Handler) AdminOrderDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "orderId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	o, err := h.Orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		h.Logger.Error("fetch order", zap.Int64("orderId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch order")
		return
	}
	response.Success(w, o)
}

type orderStatusPatch struct {
	Status       string `json:"status"`
	CancelReason string `json:"cancelReason"`
}

// AdminOrderUpdateStatus moves an order along the lifecycle. Reverts and
// transitions out of a terminal state are rejected; cancelling requires a
// reason.
func (h *Handler) AdminOrderUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r, "orderId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	var body orderStatusPatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	next, ok := order.ParseStatus(body.Status)
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status")
		return
	}

	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		h.Logger.Error("fetch order", zap.Int64("orderId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update order")
		return
	}

	reason := strings.TrimSpace(body.CancelReason)
	if err := order.Transition(o.Status, next, reason); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
		return
	}
	if o.Status == next {
		response.Success(w, o)
		return
	}

	if next != order.StatusCancel {
		reason = ""
	}
	if err := h.Orders.UpdateStatus(ctx, id, next, reason); err != nil {
		h.Logger.Error("update order status", zap.Int64("orderId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update order")
		return
	}

	o.Status = next
	o.CancelReason = reason

	eventType := queue.EventOrderStatusUpdated
	if next == order.StatusCancel {
		eventType = queue.EventOrderCancelled
	}
	h.publishOrderEvent(ctx, eventType, o)

	response.Success(w, o)
}

func (h *Handler) AdminOrderDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r, "orderId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		h.Logger.Error("fetch order", zap.Int64("orderId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete order")
		return
	}

	if err := h.Orders.Delete(ctx, id); err != nil {
		h.Logger.Error("delete order", zap.Int64("orderId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete order")
		return
	}

	h.publishOrderEvent(ctx, queue.EventOrderDeleted, o)
	response.Success(w, map[string]any{"deleted": true})
}

// PublicOrderTrack returns one order to its customer. The tracking token
// handed out at checkout is the only credential.
func (h *Handler) PublicOrderTrack(w http.ResponseWriter, r *http.Request) {
	orderNumber := strings.TrimSpace(chi.URLParam(r, "orderNumber"))
	token := strings.TrimSpace(r.URL.Query().Get("token"))

	if !utils.VerifyOrderTrackingToken(h.Config.TrackingTokenSecret, token, orderNumber) {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid tracking token")
		return
	}

	o, err := h.Orders.GetByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		h.Logger.Error("fetch order", zap.String("orderNumber", orderNumber), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch order")
		return
	}
	response.Success(w, o)
}
