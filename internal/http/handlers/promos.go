package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

func (h *Handler) AdminPromosList(w http.ResponseWriter, r *http.Request) {
	promos, err := h.Promos.List(r.Context())
	if err != nil {
		h.Logger.Error("list promo codes", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch promo codes")
		return
	}
	response.Success(w, promos)
}

type promoRequest struct {
	Code               string  `json:"code"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

func (h *Handler) AdminPromoCreate(w http.ResponseWriter, r *http.Request) {
	var body promoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(body.Code))
	if code == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Promo code is required")
		return
	}
	if body.DiscountPercentage < 1 || body.DiscountPercentage > 100 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Discount percentage must be between 1 and 100")
		return
	}

	created, err := h.Promos.Create(r.Context(), code, body.DiscountPercentage)
	if err != nil {
		h.Logger.Error("create promo code", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create promo code")
		return
	}
	response.Created(w, created)
}

func (h *Handler) AdminPromoDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "promoId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid promo id")
		return
	}
	if err := h.Promos.Delete(r.Context(), id); err != nil {
		h.Logger.Error("delete promo code", zap.Int64("promoId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete promo code")
		return
	}
	response.Success(w, map[string]any{"deleted": true})
}
