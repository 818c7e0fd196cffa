package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"image-judge/internal/config"
	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/logger"
	"image-judge/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const anonymousIssuer = "image-judge"

var (
	ErrInvalidJWTToken  = errors.New("invalid jwt token")
	ErrIdentityDisabled = errors.New("anonymous identity is not configured")
)

// AuthService issues and validates anonymous participant identities.
type AuthService interface {
	// Enabled reports whether identities can be issued. Without a signing secret no
	// session can be linked to a user, which disables persistence.
	Enabled() bool
	IssueAnonymous(ctx context.Context) (*dto.AnonymousTokenResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewAuthService creates a new instance of AuthService. A missing secret is not an error:
// the service is returned disabled and a warning is logged.
func NewAuthService(cfg config.JWTConfig) AuthService {
	if cfg.SecretKey == "" {
		logger.Get().Warn("JWT secret key is not configured; anonymous identity and result persistence are disabled")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 30 * 24 * time.Hour
	}
	return &authServiceImpl{cfg: cfg, now: time.Now}
}

func (s *authServiceImpl) Enabled() bool {
	return s.cfg.SecretKey != ""
}

func (s *authServiceImpl) IssueAnonymous(ctx context.Context) (*dto.AnonymousTokenResponse, error) {
	if !s.Enabled() {
		return nil, domain.NewError(domain.CodeIdentityDisabled, "Anonymous identity is not available", ErrIdentityDisabled)
	}

	userID := util.NewULID()
	now := s.now()
	expiresAt := now.Add(s.cfg.AccessTokenTTL)
	claims := dto.AuthClaims{
		UserID:    userID,
		Anonymous: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    anonymousIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return nil, domain.NewInternalError("Failed to sign anonymous token", err)
	}

	logger.Get().Info("Anonymous identity issued", zap.String("userID", userID))
	return &dto.AnonymousTokenResponse{
		UserID:      userID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if !s.Enabled() {
		return nil, ErrIdentityDisabled
	}
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithIssuer(anonymousIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}
