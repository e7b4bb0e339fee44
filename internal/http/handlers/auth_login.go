package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZainJ5/tipuburger-server/internal/auth"
	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	username := strings.TrimSpace(body.Username)
	if h.Config.AdminPasswordHash == "" {
		response.Error(w, http.StatusServiceUnavailable, "NOT_CONFIGURED", "Admin login is not configured")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.Config.AdminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.Config.AdminPasswordHash), []byte(body.Password))
	if !userOK || passErr != nil {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		return
	}

	expiry := time.Duration(h.Config.JWTExpirySeconds) * time.Second
	token, err := auth.CreateAccessToken(username, auth.RoleAdmin, nil, h.Config.JWTSecret, expiry)
	if err != nil {
		h.Logger.Error("sign access token", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign token")
		return
	}

	response.Success(w, map[string]any{
		"token":     token,
		"expiresIn": h.Config.JWTExpirySeconds,
	})
}
