package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Order-tracking tokens let a customer poll their order without an account:
// an HMAC over the order number, handed out at checkout.

func base64UrlEncode(input []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(input), "=")
}

func base64UrlDecode(input string) ([]byte, error) {
	padded := input
	if m := len(input) % 4; m != 0 {
		padded += strings.Repeat("=", 4-m)
	}
	return base64.URLEncoding.DecodeString(padded)
}

func CreateOrderTrackingToken(secret, orderNumber string) string {
	payloadB64 := base64UrlEncode([]byte(orderNumber))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payloadB64))
	sig := mac.Sum(nil)
	return payloadB64 + "." + base64UrlEncode(sig)
}

func VerifyOrderTrackingToken(secret, token, orderNumber string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return false
	}
	payloadB64 := parts[0]

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payloadB64))
	expected := mac.Sum(nil)

	actual, err := base64UrlDecode(parts[1])
	if err != nil {
		return false
	}
	if !hmac.Equal(actual, expected) {
		return false
	}

	payloadRaw, err := base64UrlDecode(payloadB64)
	if err != nil {
		return false
	}
	return string(payloadRaw) == orderNumber
}
