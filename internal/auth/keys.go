// Package auth implements the OIDC session guard layer: JWKS key resolution,
// access-token verification, and the route guards built on top of them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// ErrKeyNotFound is returned when no JWKS entry matches a token's key id.
var ErrKeyNotFound = errors.New("no signing key found for kid")

// KeyVerifier holds the identity provider's public signing keys. The set is
// fetched once at startup and never refreshed, so a rotated key keeps failing
// until the process restarts.
type KeyVerifier struct {
	set jwk.Set
}

// FetchKeys retrieves the provider's published key set from the certs endpoint.
func FetchKeys(ctx context.Context, certsURL string, client *http.Client) (*KeyVerifier, error) {
	var opts []jwk.FetchOption
	if client != nil {
		opts = append(opts, jwk.WithHTTPClient(client))
	}
	set, err := jwk.Fetch(ctx, certsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("auth: fetch jwks: %w", err)
	}
	return &KeyVerifier{set: set}, nil
}

// NewKeyVerifier wraps an already parsed key set.
func NewKeyVerifier(set jwk.Set) *KeyVerifier {
	return &KeyVerifier{set: set}
}

// Key resolves a key id to the raw public verification key.
func (v *KeyVerifier) Key(kid string) (any, error) {
	if v == nil || v.set == nil {
		return nil, ErrKeyNotFound
	}
	key, ok := v.set.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, kid)
	}
	var raw any
	if err := key.Raw(&raw); err != nil {
		return nil, fmt.Errorf("auth: materialise key %q: %w", kid, err)
	}
	return raw, nil
}
