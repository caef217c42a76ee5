// studylab - terminal client for the StudyLab tutoring server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studylab-tui/internal/api"
	"github.com/jeranaias/studylab-tui/internal/app"
	"github.com/jeranaias/studylab-tui/internal/cache"
	"github.com/jeranaias/studylab-tui/internal/cli"
	"github.com/jeranaias/studylab-tui/internal/config"
	"github.com/jeranaias/studylab-tui/internal/histcache"
	"github.com/jeranaias/studylab-tui/internal/session"
	"github.com/jeranaias/studylab-tui/internal/ui/chat"
	"github.com/jeranaias/studylab-tui/internal/ui/styles"
	"github.com/jeranaias/studylab-tui/internal/voice"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async sends (voice transcripts arrive
// on the recognizer's goroutine, not inside Update).
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		if err := cli.HandleAsk(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// =============================================================================
// TUI STARTUP
// =============================================================================

func runTUI(args cli.Args) {
	if !cli.IsTTY() || !cli.IsOutputTTY() {
		fmt.Fprintln(os.Stderr, "studylab requires an interactive terminal (try: studylab ask)")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	if args.URL != "" {
		cfg.Server.URL = args.URL
	}

	// Explicit theme overrides terminal background detection.
	switch cfg.UI.Theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
	theme := styles.NewTheme()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:     cfg.Server.URL,
		Timeout:     cfg.Timeout(),
		ChatTimeout: cfg.ChatTimeout(),
	})

	store, err := cache.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open local state: %v\n", err)
		os.Exit(1)
	}

	// The history mirror is an offline nicety; run without it on error.
	var mirror *histcache.Mirror
	if path, err := histcache.DefaultPath(); err == nil {
		if m, err := histcache.Open(path); err == nil {
			mirror = m
			defer mirror.Close()
		}
	}

	boot := session.NewBootstrapper(client, store)

	voiceCtrl := voice.NewController(voice.CommandFactory(cfg.Voice.Engine), sendTranscript)

	// Live-reload the TUI when the config file changes on disk. Best
	// effort: a missing config dir just disables the watcher.
	var watcher *config.Watcher
	if path, err := config.DefaultPath(); err == nil {
		if w, err := config.Watch(path); err == nil {
			watcher = w
			defer watcher.Close()
		}
	}

	root := app.New(app.Options{
		Theme:   theme,
		Config:  cfg,
		Client:  client,
		Store:   store,
		Mirror:  mirror,
		Boot:    boot,
		Voice:   voiceCtrl,
		Watcher: watcher,
	})

	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running studylab: %v\n", err)
		os.Exit(1)
	}

	voiceCtrl.Disable()
}

// sendTranscript forwards a finalized dictation result into the chat
// view's send path.
func sendTranscript(transcript string) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(chat.VoiceTranscriptMsg{Text: transcript})
	}
}
