package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token failure the caller handles the
// same way: signature mismatch, expiry, wrong issuer, garbage input.
var ErrInvalidToken = errors.New("invalid token")

// MemberClaims is the signed payload of a session token. The member id
// travels in the registered subject claim; the role rides alongside so
// access checks never need a member lookup.
type MemberClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// MemberID returns the member the token was issued to.
func (c *MemberClaims) MemberID() string {
	return c.Subject
}

// TokenManager issues and parses session tokens signed with a shared
// HMAC key.
type TokenManager struct {
	key      []byte
	lifetime time.Duration
	issuer   string
}

func NewTokenManager(secret string, lifetime time.Duration, issuer string) *TokenManager {
	return &TokenManager{
		key:      []byte(secret),
		lifetime: lifetime,
		issuer:   issuer,
	}
}

// Issue signs a token for the member. A token without a subject or
// role could never pass an access check, so both are required.
func (m *TokenManager) Issue(memberID, role string) (string, error) {
	if memberID == "" || role == "" {
		return "", ErrInvalidToken
	}

	now := time.Now()
	claims := MemberClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(m.key)
}

// Parse verifies signature, algorithm, issuer, and expiry, and returns
// the claims. All failures collapse into ErrInvalidToken.
func (m *TokenManager) Parse(raw string) (*MemberClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims MemberClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return m.key, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
