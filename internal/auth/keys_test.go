package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovatech/hr-portal/internal/auth"
)

func TestFetchKeys(t *testing.T) {
	s := newSigner(t)
	set := s.keySet(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(set))
	}))
	defer srv.Close()

	verifier, err := auth.FetchKeys(context.Background(), srv.URL, srv.Client())
	require.NoError(t, err)

	raw, err := verifier.Key(testKeyID)
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestFetchKeysUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := auth.FetchKeys(context.Background(), srv.URL, srv.Client())
	require.Error(t, err)
}

func TestKeyUnknownID(t *testing.T) {
	s := newSigner(t)
	verifier := auth.NewKeyVerifier(s.keySet(t))

	_, err := verifier.Key("no-such-kid")
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrKeyNotFound))
}
