package auth

import (
	"net/http"

	"github.com/Nerzal/gocloak/v13"
	"github.com/golang-jwt/jwt/v5"
	"github.com/itsatony/airsense/internal/config"
	"github.com/itsatony/airsense/internal/errors"
)

// KeycloakVerifier validates tokens by introspection against a Keycloak realm
type KeycloakVerifier struct {
	client *gocloak.GoCloak
	config config.KeycloakConfig
}

func NewKeycloakVerifier(cfg config.KeycloakConfig) *KeycloakVerifier {
	return &KeycloakVerifier{
		client: gocloak.NewClient(cfg.URL),
		config: cfg,
	}
}

func (k *KeycloakVerifier) Verify(r *http.Request) (*Claims, error) {
	token := BearerToken(r)
	if token == "" {
		return nil, errors.NewAuthError("no token provided", nil)
	}

	result, err := k.client.RetrospectToken(r.Context(), token, k.config.ClientID, k.config.ClientSecret, k.config.Realm)
	if err != nil || result.Active == nil || !*result.Active {
		return nil, errors.NewAuthError("invalid token", err)
	}

	_, mapClaims, err := k.client.DecodeAccessToken(r.Context(), token, k.config.Realm)
	if err != nil || mapClaims == nil {
		return nil, errors.NewAuthError("failed to decode token", err)
	}

	claims := claimsFromKeycloak(*mapClaims)
	if claims.UserID == "" {
		return nil, errors.NewAuthError("token carries no subject", nil)
	}
	return claims, nil
}

// claimsFromKeycloak maps the subject, the custom device_id claim and the realm roles.
func claimsFromKeycloak(mc jwt.MapClaims) *Claims {
	claims := &Claims{}
	if sub, ok := mc["sub"].(string); ok {
		claims.UserID = sub
	}
	if deviceID, ok := mc["device_id"].(string); ok {
		claims.DeviceID = deviceID
	}
	if access, ok := mc["realm_access"].(map[string]interface{}); ok {
		if roles, ok := access["roles"].([]interface{}); ok {
			for _, role := range roles {
				if name, ok := role.(string); ok {
					claims.Rights = append(claims.Rights, Right(name))
				}
			}
		}
	}
	return claims
}
