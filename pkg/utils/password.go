package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	keyLength   = 32
	timeCost    = 3
	memoryCost  = 64 * 1024
	parallelism = 2

	argon2Prefix = "$argon2id$"
)

// HashPassword hashes a password using Argon2id
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, timeCost, memoryCost, parallelism, keyLength)

	saltBase64 := base64.RawStdEncoding.EncodeToString(salt)
	hashBase64 := base64.RawStdEncoding.EncodeToString(hash)

	// Format: $argon2id$v=19$m=65536,t=3,p=2$salt$hash
	return argon2Prefix + "v=19$m=65536,t=3,p=2$" + saltBase64 + "$" + hashBase64, nil
}

// IsPasswordHash reports whether a stored password was produced by HashPassword.
func IsPasswordHash(stored string) bool {
	return strings.HasPrefix(stored, argon2Prefix)
}

// VerifyPassword verifies a password against a hash
func VerifyPassword(password, hashedPassword string) (bool, error) {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errors.New("invalid hash format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, timeCost, memoryCost, parallelism, keyLength)
	return subtle.ConstantTimeCompare(computed, hash) == 1, nil
}

// CheckPassword compares a candidate against a stored password that is
// either an Argon2id hash or plain text.
func CheckPassword(password, stored string) bool {
	if IsPasswordHash(stored) {
		ok, err := VerifyPassword(password, stored)
		return err == nil && ok
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}
