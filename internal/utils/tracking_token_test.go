package utils

import "testing"

func TestOrderTrackingToken(t *testing.T) {
	secret := "tracking-secret"
	token := CreateOrderTrackingToken(secret, "TB-15")

	if !VerifyOrderTrackingToken(secret, token, "TB-15") {
		t.Fatal("expected token to verify")
	}
	if VerifyOrderTrackingToken(secret, token, "TB-16") {
		t.Fatal("token must be bound to its order number")
	}
	if VerifyOrderTrackingToken("other-secret", token, "TB-15") {
		t.Fatal("token must be bound to the secret")
	}
	if VerifyOrderTrackingToken(secret, token+"x", "TB-15") {
		t.Fatal("tampered token must not verify")
	}
	if VerifyOrderTrackingToken(secret, "", "TB-15") {
		t.Fatal("empty token must not verify")
	}
}
