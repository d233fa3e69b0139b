// Package auth implements the single-passcode gate. The app has exactly
// one user; unlocking with the passcode yields a short-lived HS256
// session token that protected routes require. There is no account model
// and no role system.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/studybuddy/backend/internal/domain"
)

// PasscodeGate verifies the passcode and manages session tokens.
type PasscodeGate struct {
	passcodeHash []byte
	secret       []byte
	issuer       string
	sessionTTL   time.Duration
}

// NewPasscodeGate creates a gate. passcodeHash is a bcrypt hash of the
// passcode; secret must be at least 32 characters for HS256 security.
func NewPasscodeGate(passcodeHash, secret, issuer string, sessionTTL time.Duration) *PasscodeGate {
	return &PasscodeGate{
		passcodeHash: []byte(passcodeHash),
		secret:       []byte(secret),
		issuer:       issuer,
		sessionTTL:   sessionTTL,
	}
}

// HashPasscode produces a bcrypt hash suitable for the gate's config.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passcode: %w", err)
	}
	return string(hash), nil
}

// Unlock checks the passcode and issues a session token.
// Returns domain.ErrUnauthorized on a wrong passcode.
func (g *PasscodeGate) Unlock(passcode string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(g.passcodeHash, []byte(passcode)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("compare passcode: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "studybuddy",
		Issuer:    g.issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(g.sessionTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Validate parses and validates a session token.
// Returns domain.ErrUnauthorized for anything invalid or expired.
func (g *PasscodeGate) Validate(tokenString string) error {
	if tokenString == "" {
		return domain.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return fmt.Errorf("parse session token: %w", domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return domain.ErrUnauthorized
	}

	if claims.Issuer != g.issuer {
		return domain.ErrUnauthorized
	}

	return nil
}
