package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qbank/internal/config"
	"qbank/internal/dto"
	"qbank/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	tokenTypeAccess = "access"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService validates access tokens issued by the identity provider.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID, role string, ttl time.Duration) (string, error)
}

type authServiceImpl struct {
	secret []byte
}

func NewAuthService(cfg config.JWTConfig) (AuthService, error) {
	if len(cfg.SecretKey) == 0 {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{secret: []byte(cfg.SecretKey)}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID, role string, ttl time.Duration) (string, error) {
	if role == "" {
		role = RoleUser
	}
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", snippet(tokenString)))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidJWTToken)
	}
	return claims, nil
}

func snippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}
