package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Attribution cookies carry a signed payload so the conversion endpoint can
// trust client-submitted click ids.

func SignPayload(data, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func VerifyPayload(data, signature, key string) bool {
	expected := SignPayload(data, key)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func HashData(data string) string {
	hash := sha256.Sum256([]byte(data))
	return base64.StdEncoding.EncodeToString(hash[:])
}
