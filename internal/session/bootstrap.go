// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
)

// =============================================================================
// SESSION
// =============================================================================

// Session identifies the authenticated actor plus the progress counters
// that arrived with validation. The zero value is unauthenticated.
type Session struct {
	UserID       int
	Username     string
	Role         string
	Subscription string

	XP          int
	Level       int
	StreakCount int
}

// Authenticated reports whether the session identifies a user.
func (s Session) Authenticated() bool {
	return s.UserID != 0
}

// =============================================================================
// BOOTSTRAPPER
// =============================================================================

// Bootstrapper reconciles the persistent cache with the server and owns
// the in-memory Session value.
type Bootstrapper struct {
	client *api.Client
	store  *cache.Store

	mu      sync.Mutex
	current Session
	hooked  bool
}

// NewBootstrapper creates a bootstrapper over the given client and cache.
func NewBootstrapper(client *api.Client, store *cache.Store) *Bootstrapper {
	return &Bootstrapper{client: client, store: store}
}

// Current returns the session value.
func (b *Bootstrapper) Current() Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// =============================================================================
// RESTORE
// =============================================================================

// Restore validates a cached identity against the server. A stale or
// invalid identity — or any network failure during the check — clears
// the cached session and yields an unauthenticated Session. Restore
// never returns an error: this is a background check and must not
// block startup with a visible failure.
func (b *Bootstrapper) Restore(ctx context.Context) Session {
	userID, _, _ := b.store.Session()
	if userID == 0 {
		return Session{}
	}

	info, err := b.client.UserInfo(ctx, userID)
	if err != nil {
		b.store.ClearSession()
		b.mu.Lock()
		b.current = Session{}
		b.mu.Unlock()
		return Session{}
	}

	sess := Session{
		UserID:       info.ID,
		Username:     info.Username,
		Role:         info.Role,
		Subscription: info.SubscriptionStatus,
		XP:           info.XP,
		Level:        info.Level,
		StreakCount:  info.StreakCount,
	}
	b.store.SetProgress(info.XP, info.Level, info.StreakCount)

	b.mu.Lock()
	b.current = sess
	b.mu.Unlock()
	return sess
}

// =============================================================================
// LOGIN / REGISTER
// =============================================================================

// Login authenticates and persists the session identity. The error is
// the api.ClientError from the server (wrong credentials arrive as a
// server detail to surface verbatim).
func (b *Bootstrapper) Login(ctx context.Context, username, password string) (Session, error) {
	resp, err := b.client.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	sess := Session{UserID: resp.UserID, Username: username, Role: resp.Role}
	b.store.SetSession(resp.UserID, username, resp.Role)

	b.mu.Lock()
	b.current = sess
	b.mu.Unlock()
	return sess, nil
}

// Register creates an account and persists the session identity. The
// server creates a default "General" thread for every new user.
func (b *Bootstrapper) Register(ctx context.Context, username, password string) (Session, error) {
	out, err := b.client.Register(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	sess := Session{UserID: out.ID, Username: out.Username, Role: out.Role}
	b.store.SetSession(out.ID, out.Username, out.Role)

	b.mu.Lock()
	b.current = sess
	b.mu.Unlock()
	return sess, nil
}

// =============================================================================
// SIGN-OUT
// =============================================================================

// SignOut clears the cached identity and session-scoped state and
// returns the zero Session. Callers reset their own derived view state
// (thread id, counters, displayed history).
func (b *Bootstrapper) SignOut() Session {
	b.store.ClearSession()
	b.mu.Lock()
	b.current = Session{}
	b.mu.Unlock()
	return Session{}
}

// =============================================================================
// ONE-TIME HOOKS
// =============================================================================

// AttachOnce reports true exactly once per process lifetime. Used to
// guard handler attachment (the send shortcut) across repeated logins,
// which would otherwise stack duplicate handlers.
func (b *Bootstrapper) AttachOnce() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hooked {
		return false
	}
	b.hooked = true
	return true
}
