// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
)

func newBootstrapper(t *testing.T, baseURL string) (*Bootstrapper, *cache.Store) {
	t.Helper()
	store, err := cache.OpenPath(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: baseURL})
	return NewBootstrapper(client, store), store
}

// =============================================================================
// RESTORE TESTS
// =============================================================================

func TestRestore_NoStoredSession(t *testing.T) {
	b, _ := newBootstrapper(t, "http://127.0.0.1:1")
	sess := b.Restore(context.Background())
	assert.False(t, sess.Authenticated())
}

func TestRestore_ValidSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/7", r.URL.Path)
		json.NewEncoder(w).Encode(api.UserInfo{
			ID: 7, Username: "alice", Role: "student",
			SubscriptionStatus: "active", XP: 120, Level: 1, StreakCount: 3,
		})
	}))
	defer srv.Close()

	b, store := newBootstrapper(t, srv.URL)
	store.SetSession(7, "alice", "student")

	sess := b.Restore(context.Background())
	require.True(t, sess.Authenticated())
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "active", sess.Subscription)
	assert.Equal(t, 1, sess.Level)

	// Progress mirrors refresh on successful validation.
	xp, level, streak := store.Progress()
	assert.Equal(t, 120, xp)
	assert.Equal(t, 1, level)
	assert.Equal(t, 3, streak)
}

func TestRestore_StaleSessionClearsSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "User not found"})
	}))
	defer srv.Close()

	b, store := newBootstrapper(t, srv.URL)
	store.SetSession(99, "ghost", "student")

	sess := b.Restore(context.Background())
	assert.False(t, sess.Authenticated())

	userID, _, _ := store.Session()
	assert.Zero(t, userID, "stale identity must be cleared from the cache")
}

func TestRestore_NetworkErrorClearsSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	b, store := newBootstrapper(t, srv.URL)
	store.SetSession(7, "alice", "student")

	sess := b.Restore(context.Background())
	assert.False(t, sess.Authenticated())

	userID, _, _ := store.Session()
	assert.Zero(t, userID)
}

// =============================================================================
// LOGIN / SIGN-OUT TESTS
// =============================================================================

func TestLogin_PersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{Message: "Login successful", UserID: 7, Role: "student"})
	}))
	defer srv.Close()

	b, store := newBootstrapper(t, srv.URL)
	sess, err := b.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())

	userID, username, role := store.Session()
	assert.Equal(t, 7, userID)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "student", role)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid username or password"})
	}))
	defer srv.Close()

	b, store := newBootstrapper(t, srv.URL)
	_, err := b.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", err.Error())

	userID, _, _ := store.Session()
	assert.Zero(t, userID, "failed login must not persist an identity")
}

func TestSignOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{UserID: 7, Role: "student"})
	}))
	defer srv.Close()

	b, store := newBootstrapper(t, srv.URL)
	_, err := b.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	store.SetActiveThread(3)

	sess := b.SignOut()
	assert.False(t, sess.Authenticated())
	assert.False(t, b.Current().Authenticated())

	userID, _, _ := store.Session()
	assert.Zero(t, userID)
	assert.Zero(t, store.ActiveThread(), "active thread is session-scoped")
}

// =============================================================================
// HOOK GUARD TESTS
// =============================================================================

func TestAttachOnce(t *testing.T) {
	b, _ := newBootstrapper(t, "http://127.0.0.1:1")
	assert.True(t, b.AttachOnce(), "first attach should succeed")
	assert.False(t, b.AttachOnce(), "second attach must be suppressed")
	assert.False(t, b.AttachOnce())
}
