// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the authenticated session: restoring a cached
// identity against the server on startup, explicit login/register, and
// sign-out. The Bootstrapper is the single writer of the Session value;
// views read it and never mutate identity themselves.
package session
