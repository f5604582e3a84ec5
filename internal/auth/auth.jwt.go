package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itsatony/airsense/internal/errors"
)

// JWTVerifier verifies and signs HS256 tokens with a shared secret
type JWTVerifier struct {
	secret []byte
}

type tokenClaims struct {
	Claims
	jwt.RegisteredClaims
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Sign issues a token for claims that expires after ttl
func (v *JWTVerifier) Sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", errors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

func (v *JWTVerifier) Verify(r *http.Request) (*Claims, error) {
	raw := BearerToken(r)
	if raw == "" {
		return nil, errors.NewAuthError("no token provided", nil)
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.NewAuthError("invalid token", err)
	}
	if parsed.UserID == "" {
		return nil, errors.NewAuthError("token carries no user", nil)
	}

	claims := parsed.Claims
	return &claims, nil
}
