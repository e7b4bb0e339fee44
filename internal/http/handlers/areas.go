package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

// PublicDeliveryAreas lists active areas for the checkout area picker.
func (h *Handler) PublicDeliveryAreas(w http.ResponseWriter, r *http.Request) {
	directory, err := h.Areas.ActiveDirectory(r.Context())
	if err != nil {
		h.Logger.Error("list delivery areas", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch delivery areas")
		return
	}
	response.Success(w, directory.All())
}

func (h *Handler) AdminAreasList(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Areas.List(r.Context())
	if err != nil {
		h.Logger.Error("list delivery areas", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch delivery areas")
		return
	}
	response.Success(w, areas)
}

type areaRequest struct {
	Name     string  `json:"name"`
	Fee      float64 `json:"fee"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handler) AdminAreaCreate(w http.ResponseWriter, r *http.Request) {
	var body areaRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.Fee < 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Area name and a non-negative fee are required")
		return
	}

	created, err := h.Areas.Create(r.Context(), name, body.Fee)
	if err != nil {
		h.Logger.Error("create delivery area", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create delivery area")
		return
	}
	response.Created(w, created)
}

func (h *Handler) AdminAreaUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "areaId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid area id")
		return
	}

	var body areaRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.Fee < 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Area name and a non-negative fee are required")
		return
	}
	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	if err := h.Areas.Update(r.Context(), id, name, body.Fee, isActive); err != nil {
		h.Logger.Error("update delivery area", zap.Int64("areaId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update delivery area")
		return
	}
	response.Success(w, map[string]any{"updated": true})
}

func (h *Handler) AdminAreaDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "areaId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid area id")
		return
	}
	if err := h.Areas.Delete(r.Context(), id); err != nil {
		h.Logger.Error("delete delivery area", zap.Int64("areaId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete delivery area")
		return
	}
	response.Success(w, map[string]any{"deleted": true})
}
