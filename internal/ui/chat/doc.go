// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view: thread tabs, the exchange
// transcript, the input line, and the send pipeline against the tutoring
// backend.
//
// Every fetch command carries the thread id and generation it was issued
// for. Completions whose thread or generation no longer matches the
// manager are discarded, so a fast thread switch never renders another
// thread's history or reply.
package chat
