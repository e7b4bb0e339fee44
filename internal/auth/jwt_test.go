package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	branchID := int64(2)

	token, err := CreateAccessToken("admin", RoleAdmin, &branchID, secret, time.Hour)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	claims, err := VerifyAccessToken(token, secret)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Username != "admin" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.BranchID == nil || *claims.BranchID != 2 {
		t.Fatalf("expected branch 2, got %v", claims.BranchID)
	}
}

func TestVerifyAccessTokenRejections(t *testing.T) {
	secret := "test-secret"

	if _, err := VerifyAccessToken("", secret); err == nil {
		t.Fatal("expected empty token to fail")
	}

	token, err := CreateAccessToken("admin", RoleAdmin, nil, secret, time.Hour)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if _, err := VerifyAccessToken(token, "other-secret"); err == nil {
		t.Fatal("expected wrong secret to fail")
	}

	expired, err := CreateAccessToken("admin", RoleAdmin, nil, secret, -time.Minute)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if _, err := VerifyAccessToken(expired, secret); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseBearerToken(t *testing.T) {
	cases := []struct {
		header   string
		expected string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ParseBearerToken(tc.header); got != tc.expected {
			t.Fatalf("ParseBearerToken(%q) = %q, expected %q", tc.header, got, tc.expected)
		}
	}
}
