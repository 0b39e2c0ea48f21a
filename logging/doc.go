// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging wires zerolog in as the backend for log/slog.

Call sites throughout the server log through slog:

	slog.Error("failed to insert feedback form", "error", err)

At startup main installs the zerolog-backed handler:

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

Format "json" (default) writes one JSON object per line; "console" writes
human-readable colored output for local development.
*/
package logging
