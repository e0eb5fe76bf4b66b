package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose tags a token with the single use it was minted for. Tokens of one
// purpose are never accepted where another purpose is required.
type Purpose string

const (
	PurposeSession           Purpose = "session"
	PurposeEmailVerification Purpose = "email-verification"
	PurposePasswordReset     Purpose = "password-reset"
)

// Fixed lifetimes for the single-use token purposes.
const (
	EmailVerificationTTL = 24 * time.Hour
	PasswordResetTTL     = time.Hour
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and expired
	// tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrWrongPurpose is returned when a structurally valid token is
	// presented for a purpose it was not minted for.
	ErrWrongPurpose = errors.New("token purpose mismatch")
)

// Claims is the JWT payload carried by every token this service issues.
type Claims struct {
	UserID  int64   `json:"user_id"`
	Email   string  `json:"email"`
	Role    string  `json:"role"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies purpose-tagged JWTs.
type TokenManager interface {
	Generate(userID int64, email, role string, purpose Purpose) (string, error)
	Validate(tokenString string, want Purpose) (*Claims, error)
}

type jwtManager struct {
	secretKey []byte
	ttls      map[Purpose]time.Duration
}

// NewTokenManager creates a TokenManager signing with HMAC-SHA256.
// sessionTTL controls the lifetime of session tokens; verification and
// reset tokens use fixed lifetimes.
func NewTokenManager(secretKey string, sessionTTL time.Duration) (TokenManager, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	return &jwtManager{
		secretKey: []byte(secretKey),
		ttls: map[Purpose]time.Duration{
			PurposeSession:           sessionTTL,
			PurposeEmailVerification: EmailVerificationTTL,
			PurposePasswordReset:     PasswordResetTTL,
		},
	}, nil
}

func (m *jwtManager) Generate(userID int64, email, role string, purpose Purpose) (string, error) {
	ttl, ok := m.ttls[purpose]
	if !ok {
		return "", fmt.Errorf("unknown token purpose: %q", purpose)
	}
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "movie-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (m *jwtManager) Validate(tokenString string, want Purpose) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	// The signature alone does not authorize a token: a verification link
	// token must never pass as a session credential.
	if claims.Purpose != want {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}
