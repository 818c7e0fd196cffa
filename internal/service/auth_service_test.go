package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"image-judge/internal/config"
	"image-judge/internal/domain"
	"image-judge/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecretkeydontuseinproduction32bytes!"

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: time.Hour})
	require.True(t, svc.Enabled())

	resp, err := svc.IssueAnonymous(context.Background())
	require.NoError(t, err)
	assert.True(t, util.IsULID(resp.UserID))
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ValidateJWT(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, resp.UserID, claims.Subject)
	assert.True(t, claims.Anonymous)
}

func TestAuthService_Disabled(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{})
	assert.False(t, svc.Enabled())

	_, err := svc.IssueAnonymous(context.Background())
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeIdentityDisabled, domainErr.Code)

	_, err = svc.ValidateJWT(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrIdentityDisabled)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: time.Hour})
	other := NewAuthService(config.JWTConfig{SecretKey: "another-secret", AccessTokenTTL: time.Hour})

	foreign, err := other.IssueAnonymous(context.Background())
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), foreign.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	_, err = svc.ValidateJWT(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "x", "iss": anonymousIssuer})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_Expired(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: time.Minute}).(*authServiceImpl)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }
	resp, err := svc.IssueAnonymous(context.Background())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateJWT(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
