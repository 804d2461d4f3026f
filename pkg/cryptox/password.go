// Package cryptox provides password digest primitives: Argon2id for every
// digest written today, and the retired unsalted SHA-256 format that still
// exists in older user rows and is only ever read during login migration.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. These are embedded in every digest string, so
// changing them only affects newly written digests.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

// legacyDigestPattern matches the retired digest format: the SHA-256 of the
// plaintext rendered as exactly 64 hex characters. The shape of the stored
// string is the only discriminator between formats; there is no version
// column.
var legacyDigestPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// DummyDigest is a throwaway digest to verify against when no account matches
// a login attempt, so missing and present accounts cost about the same time.
var DummyDigest = func() string {
	digest, err := HashPassword("dummy-timing-digest")
	if err != nil {
		panic(err)
	}
	return digest
}()

// HashPassword generates a PHC-format Argon2id digest string including salt
// and parameters.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id
// digest. The digest is self-describing, so rows hashed under older cost
// parameters keep verifying after a parameter bump.
func VerifyPassword(password, encodedHash string) error {
	// Parse PHC format: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(encodedHash) {
		if encodedHash[i] == '$' {
			parts = append(parts, encodedHash[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encodedHash[start:])

	// Expected structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	if len(parts) != 6 {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		iters,
		mem,
		par,
		uint32(len(expectedHash)), // #nosec G115 - If this overflows we have bigger problems
	)

	if subtle.ConstantTimeCompare(computed, expectedHash) == 1 {
		return nil
	}
	return errors.New("password does not match")
}

// LegacyHash computes the retired digest format: unsalted SHA-256 of the
// plaintext as lowercase hex. It exists only so logins against pre-migration
// rows can be checked; never write it for new credentials.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// IsLegacyDigest reports whether a stored digest is in the retired
// hex-SHA-256 format.
func IsLegacyDigest(digest string) bool {
	return legacyDigestPattern.MatchString(digest)
}

// VerifyLegacy compares a plaintext against a legacy hex digest. Comparison
// is constant-time over the hex forms.
func VerifyLegacy(password, hexDigest string) bool {
	if !IsLegacyDigest(hexDigest) {
		return false
	}
	computed := LegacyHash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hexDigest)) == 1
}
