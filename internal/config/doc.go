// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads client configuration from ~/.studylab/config.toml
// with environment variable overrides and built-in defaults. A watcher
// picks up edits to the file while the client is running.
package config
