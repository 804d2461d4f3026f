// Package sessiontoken implements the compact signed token format used for
// stateless browser sessions: header.payload.signature, each segment
// base64url-encoded without padding, signed with HMAC-SHA256.
//
// The codec is pure. It never reads the clock or any global configuration;
// callers supply the secret and the current Unix time.
package sessiontoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrMalformedClaims reports claims that violate the codec invariants
	// at encode time. This is a programmer error and must never come from
	// wire input.
	ErrMalformedClaims = errors.New("sessiontoken: claims violate invariants")

	// ErrTokenMalformed reports a structurally invalid token: wrong part
	// count, undecodable base64url, unparsable JSON, or a payload that
	// doesn't match the claims shape.
	ErrTokenMalformed = errors.New("sessiontoken: malformed token")

	// ErrTokenInvalid reports a signature mismatch (tampering or wrong secret).
	ErrTokenInvalid = errors.New("sessiontoken: invalid signature")

	// ErrTokenExpired reports a well-formed, correctly signed token that is
	// past its expiry.
	ErrTokenExpired = errors.New("sessiontoken: token expired")
)

// Claims is the payload carried inside a session token. Field names on the
// wire are fixed; changing them invalidates every outstanding session.
type Claims struct {
	Sub string `json:"userId"` // UUID of the authenticated user
	Iat int64  `json:"iat"`    // issued at, Unix seconds
	Exp int64  `json:"exp"`    // expires at, Unix seconds
}

// Validate checks the structural invariants: Sub is a UUID, both timestamps
// are positive, and Exp is after Iat.
func (c Claims) Validate() error {
	if _, err := uuid.Parse(c.Sub); err != nil {
		return ErrMalformedClaims
	}
	if c.Iat <= 0 || c.Exp <= 0 || c.Exp <= c.Iat {
		return ErrMalformedClaims
	}
	return nil
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Encode signs claims with HMAC-SHA256 under secret and returns the compact
// three-segment token. Claims that fail Validate are rejected with
// ErrMalformedClaims before anything touches the wire.
func Encode(c Claims, secret []byte) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	headerJSON, err := json.Marshal(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON)

	sig := sign([]byte(signingInput), secret)
	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Decode verifies the signature of token under secret, parses the payload,
// and checks expiry against now (Unix seconds). The token is considered
// expired from the instant now reaches Exp; callers wanting clock-skew
// leeway subtract it from now before calling.
//
// Signature verification runs before payload parsing so attacker-controlled
// bytes are never unmarshalled unless the MAC checks out.
func Decode(token string, secret []byte, now int64) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrTokenMalformed
	}
	for _, p := range parts {
		if p == "" {
			return Claims{}, ErrTokenMalformed
		}
	}

	// Compare in the encoded domain so base64 malleability (padding-bit
	// flips that decode to identical bytes) can't smuggle through a
	// modified signature segment. hmac.Equal keeps the comparison
	// constant-time.
	signingInput := parts[0] + "." + parts[1]
	want := base64.RawURLEncoding.EncodeToString(sign([]byte(signingInput), secret))
	if !hmac.Equal([]byte(parts[2]), []byte(want)) {
		return Claims{}, ErrTokenInvalid
	}

	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrTokenMalformed
	}

	var c Claims
	if err := json.Unmarshal(payloadJSON, &c); err != nil {
		return Claims{}, ErrTokenMalformed
	}
	if err := c.Validate(); err != nil {
		return Claims{}, ErrTokenMalformed
	}

	if now >= c.Exp {
		return Claims{}, ErrTokenExpired
	}
	return c, nil
}

func sign(msg, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(msg)
	return mac.Sum(nil)
}
