// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open connects to PostgreSQL (lib/pq) or SQLite (modernc.org/sqlite):

	conn, err := db.Open(ctx, db.Postgres, cfg.DatabaseURL)

Queries are written once with $N placeholders and passed through Rebind,
which rewrites them to ?N for SQLite:

	conn.QueryRowContext(ctx, conn.Rebind("SELECT ... WHERE id = $1"), id)

Inserts use RETURNING id on both dialects to capture generated identities.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - feedback_forms: One row per feedback submission (optional email, created_at)
  - digital_work_feedback: Ratings and choices (0 or 1 per form)
  - platform_features_opinions: Free-text answers (0 or 1 per form)
  - users: User and creator signups (user_type)
  - not_interested_users: "Not interested" responses

# Relationships

	feedback_forms 1──0..1 digital_work_feedback
	feedback_forms 1──0..1 platform_features_opinions

Child foreign keys use ON DELETE CASCADE and are UNIQUE per form.

# Constraints

Ratings are CHECKed to 1..5, enumerations to their literal values, and
free-text answers to at most 1000 characters, mirroring the validation layer.
*/
package db
