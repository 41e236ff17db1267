package helpers

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Redis key builders. Keep prefixes stable; they are shared with running sessions.

func KeySession(uid string) string { return "user:session:" + uid }

func KeyPasswordReset(token string) string { return "pwd:reset:token:" + token }

func KeyEmailVerify(token string) string { return "email:verify:token:" + token }

// KeyGeocode hashes the normalized address so keys stay short.
func KeyGeocode(address string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.Join(strings.Fields(address), " "))))
	return "geo:addr:" + hex.EncodeToString(sum[:])
}

// GenToken returns n random bytes as a URL-safe string.
func GenToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
