// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice implements continuous dictation over a speech
// recognition engine. The engine itself is external; this package
// models only its event contract (final transcripts and unexpected
// end-of-stream) and layers an Off/Listening state machine on top that
// keeps the recognizer alive until dictation is explicitly disabled.
package voice
