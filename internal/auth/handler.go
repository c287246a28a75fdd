package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/innovatech/hr-portal/internal/shared"
)

// Handler drives the authorization-code flow: login initiation, the code
// exchange callback, and logout.
type Handler struct {
	logger         *slog.Logger
	endpoints      Endpoints
	oauth          *oauth2.Config
	sessionManager *shared.SessionManager
	clientID       string
	appBaseURL     string
	client         *http.Client
}

// NewHandler constructs a Handler. The provider timeout bounds every call to
// the identity provider; there are no retries.
func NewHandler(logger *slog.Logger, endpoints Endpoints, oauth *oauth2.Config, sessions *shared.SessionManager, clientID, appBaseURL string, providerTimeout time.Duration) *Handler {
	if providerTimeout <= 0 {
		providerTimeout = 5 * time.Second
	}
	return &Handler{
		logger:         logger,
		endpoints:      endpoints,
		oauth:          oauth,
		sessionManager: sessions,
		clientID:       clientID,
		appBaseURL:     strings.TrimRight(appBaseURL, "/"),
		client:         &http.Client{Timeout: providerTimeout},
	}
}

// MountRoutes registers the auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.login)
	r.Get("/oidc/callback", h.callback)
	r.Get("/logout", h.logout)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.oauth.AuthCodeURL(""), http.StatusFound)
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing code", http.StatusBadRequest)
		return
	}

	ctx := context.WithValue(r.Context(), oauth2.HTTPClient, h.client)
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			http.Error(w, "Token error: "+string(retrieveErr.Body), http.StatusBadRequest)
			return
		}
		h.logger.Error("token exchange", slog.Any("error", err))
		http.Error(w, "Token error: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during callback")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	sess.Set(SessionKeyAccessToken, token.AccessToken)
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		sess.Set(SessionKeyIDToken, idToken)
	}

	// Stale or missing profile data is acceptable.
	h.fetchUserInfo(r.Context(), sess, token.AccessToken)

	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Logged in successfully."})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessionManager.Destroy(sess)
	}
	params := url.Values{}
	params.Set("client_id", h.clientID)
	params.Set("post_logout_redirect_uri", h.appBaseURL+"/")
	http.Redirect(w, r, h.endpoints.Logout+"?"+params.Encode(), http.StatusFound)
}

func (h *Handler) fetchUserInfo(ctx context.Context, sess *shared.Session, accessToken string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoints.UserInfo, nil)
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("userinfo fetch", slog.Any("error", err))
		return
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		h.logger.Warn("userinfo fetch", slog.Int("status", resp.StatusCode))
		return
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return
	}
	sess.Set(SessionKeyUserInfo, string(body))
}
