package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZainJ5/tipuburger-server/internal/config"
)

func TestAdminLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	h := &Handler{
		Logger: zap.NewNop(),
		Config: config.Config{
			AdminUsername:     "admin",
			AdminPasswordHash: string(hashed),
			JWTSecret:         "test-secret",
			JWTExpirySeconds:  3600,
		},
	}

	cases := []struct {
		name     string
		body     string
		expected int
	}{
		{
			name:     "valid credentials",
			body:     `{"username":"admin","password":"open-sesame"}`,
			expected: http.StatusOK,
		},
		{
			name:     "wrong password",
			body:     `{"username":"admin","password":"guess"}`,
			expected: http.StatusUnauthorized,
		},
		{
			name:     "wrong username",
			body:     `{"username":"root","password":"open-sesame"}`,
			expected: http.StatusUnauthorized,
		},
		{
			name:     "plaintext of the hash is not the password",
			body:     `{"username":"admin","password":"` + string(hashed) + `"}`,
			expected: http.StatusUnauthorized,
		},
		{
			name:     "malformed body",
			body:     `{"username":`,
			expected: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.AdminLogin(rec, req)
			if rec.Code != tc.expected {
				t.Fatalf("expected status %d, got %d", tc.expected, rec.Code)
			}
			if tc.expected == http.StatusOK {
				var envelope struct {
					Success bool `json:"success"`
					Data    struct {
						Token string `json:"token"`
					} `json:"data"`
				}
				if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if !envelope.Success || envelope.Data.Token == "" {
					t.Fatalf("expected a signed token, got %+v", envelope)
				}
			}
		})
	}
}

func TestAdminLoginNotConfigured(t *testing.T) {
	h := &Handler{Logger: zap.NewNop(), Config: config.Config{AdminUsername: "admin"}}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"x"}`))
	rec := httptest.NewRecorder()
	h.AdminLogin(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}
