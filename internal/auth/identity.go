package auth

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"github.com/innovatech/hr-portal/internal/shared"
)

// Session value keys for the OIDC tokens and the cached userinfo snapshot.
const (
	SessionKeyAccessToken = "access_token"
	SessionKeyIDToken     = "id_token"
	SessionKeyUserInfo    = "userinfo"
)

// Identity reads the authenticated identity out of a browser session,
// verifying the stored access token on demand.
type Identity struct {
	validator *TokenValidator
}

// NewIdentity constructs an Identity helper over the given validator.
func NewIdentity(validator *TokenValidator) *Identity {
	return &Identity{validator: validator}
}

// Claims returns the verdict for the session's access token.
func (i *Identity) Claims(sess *shared.Session) Verdict {
	if i == nil || sess == nil {
		return Verdict{}
	}
	return i.validator.Verify(sess.Get(SessionKeyAccessToken))
}

// Roles returns the realm roles carried by the session's verified token.
// Absent or invalid tokens yield an empty set.
func (i *Identity) Roles(sess *shared.Session) []string {
	verdict := i.Claims(sess)
	if !verdict.Valid {
		return nil
	}
	return realmRoles(verdict.Claims)
}

// DisplayName returns a human label for the session holder, preferring the
// cached userinfo snapshot over token claims.
func (i *Identity) DisplayName(sess *shared.Session) string {
	if sess == nil {
		return ""
	}
	if raw := sess.Get(SessionKeyUserInfo); raw != "" {
		var info struct {
			Name              string `json:"name"`
			PreferredUsername string `json:"preferred_username"`
			Email             string `json:"email"`
		}
		if err := json.Unmarshal([]byte(raw), &info); err == nil {
			switch {
			case info.Name != "":
				return info.Name
			case info.PreferredUsername != "":
				return info.PreferredUsername
			case info.Email != "":
				return info.Email
			}
		}
	}
	verdict := i.Claims(sess)
	if !verdict.Valid {
		return ""
	}
	if name, ok := verdict.Claims["preferred_username"].(string); ok {
		return name
	}
	return ""
}

func realmRoles(claims jwt.MapClaims) []string {
	realm, ok := claims["realm_access"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := realm["roles"].([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, entry := range raw {
		if role, ok := entry.(string); ok {
			roles = append(roles, role)
		}
	}
	return roles
}
