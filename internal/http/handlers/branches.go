package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

type branch struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func (h *Handler) PublicBranchesList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(), `
		select id, name, is_active from branches where is_active order by name
	`)
	if err != nil {
		h.Logger.Error("list branches", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch branches")
		return
	}
	defer rows.Close()

	branches := make([]branch, 0)
	for rows.Next() {
		var b branch
		if err := rows.Scan(&b.ID, &b.Name, &b.IsActive); err != nil {
			h.Logger.Error("scan branch", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch branches")
			return
		}
		branches = append(branches, b)
	}
	response.Success(w, branches)
}

type branchRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive"`
}

func (h *Handler) AdminBranchCreate(w http.ResponseWriter, r *http.Request) {
	var body branchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Branch name is required")
		return
	}

	var b branch
	b.Name = name
	b.IsActive = true
	if err := h.DB.QueryRow(r.Context(), `
		insert into branches (name) values ($1) returning id
	`, name).Scan(&b.ID); err != nil {
		h.Logger.Error("create branch", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create branch")
		return
	}
	response.Created(w, b)
}

func (h *Handler) AdminBranchUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "branchId")
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid branch id")
		return
	}

	var body branchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Branch name is required")
		return
	}
	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	tag, err := h.DB.Exec(r.Context(), `
		update branches set name = $1, is_active = $2 where id = $3
	`, name, isActive, id)
	if err != nil {
		h.Logger.Error("update branch", zap.Int64("branchId", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update branch")
		return
	}
	if tag.RowsAffected() == 0 {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Branch not found")
		return
	}
	response.Success(w, map[string]any{"updated": true})
}
