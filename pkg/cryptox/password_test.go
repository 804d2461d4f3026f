package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Contains(t, parts[3], "m=", "should contain memory parameter")
			require.Contains(t, parts[3], "t=", "should contain iterations parameter")
			require.Contains(t, parts[3], "p=", "should contain parallelism parameter")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			// A current-format digest must never shape-sniff as legacy.
			require.False(t, IsLegacyDigest(hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	// Hashes differ due to unique salts but both verify the same password.
	require.NotEqual(t, hash1, hash2)
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.wrongPassword, hash)
			require.Error(t, err)
			require.Contains(t, err.Error(), "password does not match")
		})
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"legacy hex digest", LegacyHash("some-password")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must fail closed with an error, never panic.
			err := VerifyPassword("test-password", tt.invalidHash)
			require.Error(t, err)
		})
	}
}

func TestLegacyHash(t *testing.T) {
	// SHA-256("password") - fixed vector so the format can never drift.
	const want = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	require.Equal(t, want, LegacyHash("password"))
	require.True(t, IsLegacyDigest(want))
}

func TestIsLegacyDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
		want   bool
	}{
		{"lowercase hex 64", strings.Repeat("ab", 32), true},
		{"uppercase hex 64", strings.Repeat("AB", 32), true},
		{"mixed case hex 64", strings.Repeat("aB", 32), true},
		{"too short", strings.Repeat("a", 63), false},
		{"too long", strings.Repeat("a", 65), false},
		{"non-hex chars", strings.Repeat("g", 64), false},
		{"phc digest", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsLegacyDigest(tt.digest))
		})
	}
}

func TestVerifyLegacy(t *testing.T) {
	digest := LegacyHash("hunter2")

	require.True(t, VerifyLegacy("hunter2", digest))
	require.False(t, VerifyLegacy("hunter3", digest))
	require.False(t, VerifyLegacy("hunter2", "not-a-digest"))
	require.False(t, VerifyLegacy("hunter2", ""))
}

func TestPasswordWorkflow_EndToEnd(t *testing.T) {
	// A legacy row's digest verifies via the legacy path, and the
	// replacement digest written during migration verifies as argon2id.
	password := "MySecurePassword123!"

	legacy := LegacyHash(password)
	require.True(t, IsLegacyDigest(legacy))
	require.True(t, VerifyLegacy(password, legacy))

	upgraded, err := HashPassword(password)
	require.NoError(t, err)
	require.False(t, IsLegacyDigest(upgraded))
	require.NoError(t, VerifyPassword(password, upgraded))
	require.Error(t, VerifyPassword("WrongPassword", upgraded))
}
