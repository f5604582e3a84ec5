// Package auth verifies the identity carried by inbound requests and checks rights.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// Right is a permission granted to a user or device token
type Right string

const (
	// RightReadDevice allows reading devices and their data
	RightReadDevice Right = "read-device"
	// RightCreateDevice allows provisioning devices
	RightCreateDevice Right = "create-device"
	// RightCreateDataPoint allows devices to submit readings
	RightCreateDataPoint Right = "create-data-point"
)

// Claims is the verified identity of a request. Devices are users too: a device token
// carries the owning user plus the device id.
type Claims struct {
	UserID   string  `json:"userId"`
	DeviceID string  `json:"deviceId,omitempty"`
	Rights   []Right `json:"rights,omitempty"`
}

// Verifier extracts verified claims from a request
type Verifier interface {
	Verify(r *http.Request) (*Claims, error)
}

// IsEntitled reports whether rights contain required.
func IsEntitled(rights []Right, required Right) bool {
	for _, r := range rights {
		if r == required {
			return true
		}
	}
	return false
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type contextKey string

const claimsKey contextKey = "claims"

// WithClaims stores claims in ctx.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// FromContext returns the claims stored by WithClaims.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}
