// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey-intake API server.

survey-intake collects signups (users, creators, "not interested"
responses) and feedback questionnaires, stores them relationally and
serves admin-only analytics and data exports behind bearer tokens.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... ADMIN_USERNAME=admin ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -p 8000 -d "file:survey.db?_pragma=foreign_keys(1)" -t sqlite

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL or SQLite connection string
  - JWT_SECRET (--jwt-secret): Token signing secret, at least 32 characters
  - ADMIN_USERNAME: Admin login name
  - ADMIN_PASSWORD (--admin-password): Plain password or bcrypt hash

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): postgres or sqlite (inferred from the URL)
  - JWT_ALGORITHM: HS256, HS384 or HS512 (default: HS256)
  - ACCESS_TOKEN_EXPIRE_MINUTES: Token lifetime (default: 30)
  - CORS_ORIGINS, CORS_MAX_AGE: Allowed origins (default: any)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_DISABLED: Per-IP limit per minute on public POSTs
  - LOG_LEVEL (--log-level), LOG_FORMAT: Logging (default: info, json)

# Architecture

  - handlers: HTTP request handlers (auth, users, feedback, data)
  - router: chi route table, CORS and rate limits
  - middleware: Logging, request IDs, metrics, JSON helpers, admin gate
  - store: Feedback and registration persistence
  - export: Statistics and export bundles
  - validation: Request validation
  - models: Request/response types
  - auth: Tokens and admin credentials
  - metrics: Prometheus collectors
  - logging: zerolog behind slog
  - db: Connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
