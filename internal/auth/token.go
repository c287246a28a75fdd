package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Verdict is the outcome of verifying a stored access token. Every decode or
// verification failure — expired, bad signature, wrong audience, unknown key
// id — collapses into the invalid verdict; callers treat it as "no session".
type Verdict struct {
	Valid  bool
	Claims jwt.MapClaims
}

// TokenValidator verifies access tokens against the provider's signing keys.
type TokenValidator struct {
	keys     *KeyVerifier
	audience string
}

// NewTokenValidator constructs a TokenValidator. The audience is this
// application's registered client identifier.
func NewTokenValidator(keys *KeyVerifier, audience string) *TokenValidator {
	return &TokenValidator{keys: keys, audience: audience}
}

// Verify decodes and verifies a raw token string. The signature must check out
// under the key named by the token's kid header, the algorithm is restricted
// to RS256, and the audience claim must contain the registered client id.
func (v *TokenValidator) Verify(raw string) Verdict {
	if v == nil || raw == "" {
		return Verdict{}
	}
	token, err := jwt.Parse(raw, v.keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Verdict{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Verdict{}
	}
	return Verdict{Valid: true, Claims: claims}
}

func (v *TokenValidator) keyfunc(token *jwt.Token) (any, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, ErrKeyNotFound
	}
	return v.keys.Key(kid)
}
