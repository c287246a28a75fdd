package auth

import (
	"strings"

	"golang.org/x/oauth2"
)

// Endpoints enumerates the identity provider URLs consumed by the portal.
type Endpoints struct {
	Auth     string
	Token    string
	Logout   string
	UserInfo string
	Certs    string
}

// KeycloakEndpoints derives the realm's openid-connect endpoints from the
// provider base URL.
func KeycloakEndpoints(baseURL, realm string) Endpoints {
	root := strings.TrimRight(baseURL, "/") + "/realms/" + realm + "/protocol/openid-connect"
	return Endpoints{
		Auth:     root + "/auth",
		Token:    root + "/token",
		Logout:   root + "/logout",
		UserInfo: root + "/userinfo",
		Certs:    root + "/certs",
	}
}

// OAuthConfig builds the authorization-code configuration for this client.
func (e Endpoints) OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  e.Auth,
			TokenURL: e.Token,
		},
	}
}
