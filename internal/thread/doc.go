// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package thread owns the active conversation thread and its derived
// context state: the per-thread message counter and the context-overflow
// flag. A generation number guards against out-of-order history responses
// after rapid thread switches.
package thread
