// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"path/filepath"
	"testing"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/cache"
	"github.com/jeranaias/studylab-tui/internal/config"
	"github.com/jeranaias/studylab-tui/internal/session"
	"github.com/jeranaias/studylab-tui/internal/ui/chat"
	"github.com/jeranaias/studylab-tui/internal/ui/goals"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
)

func testApp(t *testing.T) *App {
	t.Helper()
	store, err := cache.OpenPath(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	client := api.NewClient()
	return New(Options{
		Theme:  styles.NewTheme(),
		Config: config.Default(),
		Client: client,
		Store:  store,
		Boot:   session.NewBootstrapper(client, store),
	})
}

func TestRestore_UnauthenticatedStaysOnLogin(t *testing.T) {
	a := testApp(t)
	a.Update(RestoredMsg{})
	if a.view != ViewLogin {
		t.Errorf("view = %v, want ViewLogin", a.view)
	}
}

func TestRestore_AuthenticatedEntersChat(t *testing.T) {
	a := testApp(t)
	a.Update(RestoredMsg{Session: session.Session{UserID: 3, Username: "kim", Role: "student"}})
	if a.view != ViewChat {
		t.Errorf("view = %v, want ViewChat", a.view)
	}
}

func TestSignOut_ReturnsToLogin(t *testing.T) {
	a := testApp(t)
	a.Update(RestoredMsg{Session: session.Session{UserID: 3, Username: "kim", Role: "student"}})

	a.Update(chat.SignOutMsg{})
	if a.view != ViewLogin {
		t.Errorf("view = %v after sign-out, want ViewLogin", a.view)
	}
	if a.boot.Current().Authenticated() {
		t.Error("session still authenticated after sign-out")
	}
}

func TestGoalsNavigation(t *testing.T) {
	a := testApp(t)
	a.Update(RestoredMsg{Session: session.Session{UserID: 3, Username: "kim", Role: "student"}})

	a.Update(chat.ShowGoalsMsg{})
	if a.view != ViewGoals {
		t.Errorf("view = %v, want ViewGoals", a.view)
	}
	a.Update(goals.BackMsg{})
	if a.view != ViewChat {
		t.Errorf("view = %v after back, want ViewChat", a.view)
	}
}

func TestConfigChange_RepointsClient(t *testing.T) {
	a := testApp(t)

	cfg := config.Default()
	cfg.Server.URL = "http://tutor.internal:9000"
	a.Update(ConfigChangedMsg{Config: cfg})

	if got := a.client.BaseURL(); got != "http://tutor.internal:9000" {
		t.Errorf("client base URL = %q after config reload", got)
	}
	if a.cfg != cfg {
		t.Error("config not swapped")
	}
}
