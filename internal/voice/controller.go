// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"errors"
	"sync"
)

// =============================================================================
// RECOGNIZER CONTRACT
// =============================================================================

// Recognizer is the event contract of a speech recognition engine
// configured for continuous, final-only results.
type Recognizer interface {
	// Start begins (or resumes) recognition.
	Start() error
	// Stop halts recognition. Implementations may emit a final end
	// event; the controller detaches its end handler first so teardown
	// cannot loop back into a restart.
	Stop()
	// SetHandlers installs the result and end callbacks. Passing nil
	// detaches a handler.
	SetHandlers(onResult func(transcript string), onEnd func())
}

// Factory creates a recognition handle, or reports ErrUnsupported when
// the host environment has no speech capability.
type Factory func() (Recognizer, error)

// ErrUnsupported is returned when no recognition engine is available.
var ErrUnsupported = errors.New("speech recognition is not available on this system")

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the dictation state.
type State int

const (
	Off State = iota
	Listening
)

func (s State) String() string {
	if s == Listening {
		return "listening"
	}
	return "off"
}

// Controller is a two-state machine over a Recognizer. While enabled,
// every finalized utterance is forwarded to the send sink and an
// unexpected end-of-stream restarts the engine immediately.
type Controller struct {
	mu        sync.Mutex
	state     State
	enabled   bool
	newHandle Factory
	rec       Recognizer
	send      func(transcript string)
}

// NewController creates a controller. send receives each finalized
// transcript; it runs on the recognizer's callback goroutine.
func NewController(factory Factory, send func(transcript string)) *Controller {
	return &Controller{newHandle: factory, send: send}
}

// State returns the current dictation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Enabled reports whether dictation is switched on.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Toggle flips dictation on or off. When no engine is available Toggle
// returns ErrUnsupported and the state stays Off; the caller surfaces
// the notice once.
func (c *Controller) Toggle() error {
	if c.Enabled() {
		c.Disable()
		return nil
	}
	return c.Enable()
}

// Enable transitions Off -> Listening.
func (c *Controller) Enable() error {
	c.mu.Lock()
	if c.enabled {
		c.mu.Unlock()
		return nil
	}

	rec, err := c.newHandle()
	if err != nil {
		c.mu.Unlock()
		return ErrUnsupported
	}

	c.rec = rec
	c.enabled = true
	c.state = Listening
	c.mu.Unlock()

	rec.SetHandlers(c.onResult, c.onEnd)
	if err := rec.Start(); err != nil {
		c.mu.Lock()
		c.rec = nil
		c.enabled = false
		c.state = Off
		c.mu.Unlock()
		return err
	}
	return nil
}

// Disable transitions Listening -> Off. The end handler is detached
// before stopping so the engine's final end event cannot trigger an
// auto-restart.
func (c *Controller) Disable() {
	c.mu.Lock()
	rec := c.rec
	c.rec = nil
	c.enabled = false
	c.state = Off
	c.mu.Unlock()

	if rec != nil {
		rec.SetHandlers(nil, nil)
		rec.Stop()
	}
}

// =============================================================================
// ENGINE EVENTS
// =============================================================================

// onResult forwards a finalized transcript to the send sink. No state
// transition: dictation keeps listening.
func (c *Controller) onResult(transcript string) {
	if transcript == "" {
		return
	}
	c.mu.Lock()
	enabled := c.enabled
	send := c.send
	c.mu.Unlock()
	if enabled && send != nil {
		send(transcript)
	}
}

// onEnd handles an unexpected end-of-stream. While still enabled the
// engine restarts immediately; once disabled the event is ignored.
func (c *Controller) onEnd() {
	c.mu.Lock()
	rec := c.rec
	enabled := c.enabled
	c.mu.Unlock()

	if !enabled || rec == nil {
		return
	}
	if err := rec.Start(); err != nil {
		// Engine refused to resume: drop to Off rather than spinning.
		c.Disable()
	}
}
