package utils

import (
	"crypto/rand"
	"encoding/base64"

	"eventsync-backend/core/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short url-safe identifier (slug suffixes etc).
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateInviteToken returns the opaque per-participant invite token.
func GenerateInviteToken() string {
	token, err := gonanoid.Generate(idAlphabet, constants.InviteTokenLength)
	if err != nil {
		return GenerateRandomString(constants.InviteTokenLength)
	}
	return token
}

// GenerateVerificationCode returns a numeric one-time login code.
func GenerateVerificationCode(length int) string {
	code, err := gonanoid.Generate("0123456789", length)
	if err != nil {
		return GenerateRandomString(length)
	}
	return code
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
