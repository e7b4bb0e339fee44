package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/pricing"
	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

// The global discount is a single switch covering the whole menu. It loses
// to any promo code of equal or greater value at pricing time.

func (h *Handler) AdminGlobalDiscountGet(w http.ResponseWriter, r *http.Request) {
	discount, err := h.Promos.GlobalDiscount(r.Context())
	if err != nil {
		h.Logger.Error("load global discount", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch global discount")
		return
	}
	if discount == nil {
		discount = &pricing.GlobalDiscount{}
	}
	response.Success(w, discount)
}

type globalDiscountRequest struct {
	Percentage float64 `json:"percentage"`
	IsActive   bool    `json:"isActive"`
}

func (h *Handler) AdminGlobalDiscountSet(w http.ResponseWriter, r *http.Request) {
	var body globalDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if body.Percentage < 0 || body.Percentage > 100 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Percentage must be between 0 and 100")
		return
	}

	if err := h.Promos.SetGlobalDiscount(r.Context(), body.Percentage, body.IsActive); err != nil {
		h.Logger.Error("set global discount", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update global discount")
		return
	}
	response.Success(w, pricing.GlobalDiscount{Percentage: body.Percentage, IsActive: body.IsActive})
}
