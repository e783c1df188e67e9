package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avoronkov/stridewell/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidEmail = errors.New("invalid email")
)

// Service issues and verifies collector access tokens.
type Service struct {
	config *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// SignInDev issues a token for the given email without any identity
// provider roundtrip. Only wired up when AUTH_MODE=dev.
func (s *Service) SignInDev(ctx context.Context, email string) (*DevAuthResponse, error) {
	_ = ctx

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	ttl := time.Duration(s.config.JWTTTLMinutes) * time.Minute
	accessToken, err := s.generateJWTWithTTL(email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	return &DevAuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

func (s *Service) generateJWTWithTTL(email string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": email,
		"iss": s.config.JWTIssuer,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// VerifyJWT validates the token signature and returns the subject email.
func (s *Service) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil {
		return "", ErrInvalidToken
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok {
			return "", ErrInvalidToken
		}
		return sub, nil
	}

	return "", ErrInvalidToken
}

// DisplayName derives a human-readable name from an account email.
// "anna.k@example.com" becomes "anna.k"; an empty email stays empty.
func DisplayName(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
