package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mockstage/interviewd/src/common/errors"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// JWTService handles JWT token generation and validation
type JWTService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	tokens        *TokenStore
}

// JWTConfig holds JWT service configuration
type JWTConfig struct {
	Issuer        string
	TokenDuration time.Duration
}

// DefaultJWTConfig returns default JWT configuration
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		Issuer:        "interviewd",
		TokenDuration: 24 * time.Hour,
	}
}

// SettingsStore persists the signing secret across restarts
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// generateSecretKey generates a random 256-bit secret key
func generateSecretKey() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a default (not recommended for production)
		return "interviewd-default-secret-key-change-me"
	}
	return hex.EncodeToString(bytes)
}

// NewJWTService creates a new JWT service with a persistent secret key
func NewJWTService(cfg JWTConfig, tokens *TokenStore, settings SettingsStore) *JWTService {
	secretKey, err := settings.GetSetting("jwt_secret")
	if err != nil || secretKey == "" {
		secretKey = generateSecretKey()
		settings.SetSetting("jwt_secret", secretKey)
	}

	return &JWTService{
		secretKey:     []byte(secretKey),
		issuer:        cfg.Issuer,
		tokenDuration: cfg.TokenDuration,
		tokens:        tokens,
	}
}

// TokenDuration returns the configured token lifetime
func (s *JWTService) TokenDuration() time.Duration {
	return s.tokenDuration
}

// jwtClaims represents the full JWT claims structure
type jwtClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// GenerateToken generates a new signed token for a user
func (s *JWTService) GenerateToken(user *db.User) (string, error) {
	tokenID := uuid.New().String()
	now := time.Now().UTC()
	expiresAt := now.Add(s.tokenDuration)

	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.DisplayName(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a token string and returns its claims.
// Revoked tokens are rejected even before their expiry.
func (s *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid.WithCause(err)
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, errors.ErrTokenInvalid
	}

	if s.tokens != nil {
		revoked, err := s.tokens.IsRevoked(claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, errors.ErrTokenRevoked
		}
	}

	return &TokenClaims{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Name:    claims.Name,
		TokenID: claims.ID,
	}, nil
}

// RevokeToken revokes a previously issued token by its claims
func (s *JWTService) RevokeToken(claims *TokenClaims) error {
	if s.tokens == nil {
		return nil
	}
	// Keep the revocation record until the token would have expired anyway
	return s.tokens.Revoke(claims.TokenID, claims.UserID, time.Now().UTC().Add(s.tokenDuration))
}
