// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// engine.go - External speech engine adapter.
//
// Wraps a speech-to-text command as a Recognizer. The command is
// expected to capture microphone audio and print one finalized
// transcript per line on stdout (interim results stay internal to the
// engine). When the process exits for any reason the recognizer emits
// its end event, which the controller uses to restart dictation.

package voice

import (
	"bufio"
	"os/exec"
	"strings"
	"sync"
)

// =============================================================================
// ENGINE DISCOVERY
// =============================================================================

// engineCandidates are probed in order when no engine is configured.
var engineCandidates = []string{
	"studylab-stt",
	"vosk-transcriber",
	"whisper-stream",
}

// CommandFactory returns a Factory that launches the named speech
// engine command. An empty name autodetects from the known candidates.
// The factory reports ErrUnsupported when no usable command is on PATH.
func CommandFactory(engine string) Factory {
	return func() (Recognizer, error) {
		candidates := engineCandidates
		if engine != "" {
			candidates = []string{engine}
		}
		for _, name := range candidates {
			if path, err := exec.LookPath(name); err == nil {
				return &commandRecognizer{path: path}, nil
			}
		}
		return nil, ErrUnsupported
	}
}

// =============================================================================
// COMMAND RECOGNIZER
// =============================================================================

// commandRecognizer runs one engine process per Start and scans its
// stdout for finalized transcripts.
type commandRecognizer struct {
	mu       sync.Mutex
	path     string
	cmd      *exec.Cmd
	onResult func(transcript string)
	onEnd    func()
}

func (r *commandRecognizer) SetHandlers(onResult func(transcript string), onEnd func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onResult = onResult
	r.onEnd = onEnd
}

func (r *commandRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return nil
	}

	cmd := exec.Command(r.path)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	r.cmd = cmd

	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			r.mu.Lock()
			emit := r.onResult
			r.mu.Unlock()
			if emit != nil {
				emit(line)
			}
		}
		cmd.Wait()

		r.mu.Lock()
		r.cmd = nil
		end := r.onEnd
		r.mu.Unlock()
		if end != nil {
			end()
		}
	}()
	return nil
}

func (r *commandRecognizer) Stop() {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}
