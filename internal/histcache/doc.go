// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package histcache mirrors conversation history into a local SQLite
// database so past threads render instantly while the live fetch is in
// flight and remain readable when the server is unreachable.
//
// The mirror is advisory. The server copy is authoritative and each
// successful history fetch replaces the mirrored rows for that thread.
package histcache
