package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func pathID(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func formFloat(r *http.Request, name string) float64 {
	raw := formValue(r, name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func formBool(r *http.Request, name string) bool {
	raw := strings.ToLower(formValue(r, name))
	return raw == "true" || raw == "1" || raw == "yes"
}

func formInt64(r *http.Request, name string) int64 {
	raw := formValue(r, name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
