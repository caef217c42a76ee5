// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the studylab tutoring backend.
//
// All requests and responses are JSON. Identity travels in request bodies
// and URL paths; there are no auth headers. Errors are categorized with
// ClientError so callers can distinguish transport failures from
// server-reported application errors.
package api
