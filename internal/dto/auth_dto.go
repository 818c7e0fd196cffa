package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims of an anonymous participant token.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Anonymous bool   `json:"anonymous"`
	jwt.RegisteredClaims
}

// AnonymousTokenResponse is returned when an anonymous identity is issued.
// @Description Anonymous participant identity
type AnonymousTokenResponse struct {
	UserID      string    `json:"user_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// IdentityResponse describes the identity carried by a validated token.
// @Description Current participant identity
type IdentityResponse struct {
	UserID    string `json:"user_id"`
	Anonymous bool   `json:"anonymous"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
