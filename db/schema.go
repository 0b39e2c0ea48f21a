// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, d *DB) error {
	schema := postgresSchema
	if d.Dialect == SQLite {
		schema = sqliteSchema
	}

	_, err := d.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Rating and text bounds are enforced here as well as in validation.
const postgresSchema = `
-- Feedback forms
CREATE TABLE IF NOT EXISTS feedback_forms (
    id SERIAL PRIMARY KEY,
    user_email TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_feedback_forms_created_at ON feedback_forms(created_at);

-- Digital work feedback (0 or 1 per form)
CREATE TABLE IF NOT EXISTS digital_work_feedback (
    id SERIAL PRIMARY KEY,
    feedback_form_id INTEGER NOT NULL UNIQUE REFERENCES feedback_forms(id) ON DELETE CASCADE,
    digital_work_showcase_effectiveness INTEGER CHECK (digital_work_showcase_effectiveness BETWEEN 1 AND 5),
    legal_persons_online_recognition TEXT CHECK (legal_persons_online_recognition IN ('yes', 'no')),
    digital_work_sharing_difficulty INTEGER CHECK (digital_work_sharing_difficulty BETWEEN 1 AND 5),
    regular_blogging TEXT CHECK (regular_blogging IN ('yes', 'no')),
    ai_tools_blogging_frequency TEXT CHECK (ai_tools_blogging_frequency IN ('never', 'rarely', 'sometimes', 'often', 'always')),
    blogging_tools_familiarity INTEGER CHECK (blogging_tools_familiarity BETWEEN 1 AND 5)
);

-- Platform features and opinions (0 or 1 per form)
CREATE TABLE IF NOT EXISTS platform_features_opinions (
    id SERIAL PRIMARY KEY,
    feedback_form_id INTEGER NOT NULL UNIQUE REFERENCES feedback_forms(id) ON DELETE CASCADE,
    core_platform_features TEXT CHECK (char_length(core_platform_features) <= 1000),
    ai_research_opinion TEXT CHECK (char_length(ai_research_opinion) <= 1000),
    ideal_reading_features TEXT CHECK (char_length(ideal_reading_features) <= 1000),
    portfolio_presentation_preference TEXT CHECK (char_length(portfolio_presentation_preference) <= 1000)
);

-- Registered users and creators
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    gender TEXT,
    profession TEXT,
    interest_reason TEXT,
    user_type TEXT NOT NULL CHECK (user_type IN ('user', 'creator')),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (email, user_type)
);

CREATE INDEX IF NOT EXISTS idx_users_user_type ON users(user_type);

-- Not interested responses
CREATE TABLE IF NOT EXISTS not_interested_users (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone_number TEXT NOT NULL,
    gender TEXT,
    profession TEXT,
    not_interested_reason TEXT,
    improvement_suggestions TEXT,
    interest_reason TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS feedback_forms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_email TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_feedback_forms_created_at ON feedback_forms(created_at);

CREATE TABLE IF NOT EXISTS digital_work_feedback (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    feedback_form_id INTEGER NOT NULL UNIQUE REFERENCES feedback_forms(id) ON DELETE CASCADE,
    digital_work_showcase_effectiveness INTEGER CHECK (digital_work_showcase_effectiveness BETWEEN 1 AND 5),
    legal_persons_online_recognition TEXT CHECK (legal_persons_online_recognition IN ('yes', 'no')),
    digital_work_sharing_difficulty INTEGER CHECK (digital_work_sharing_difficulty BETWEEN 1 AND 5),
    regular_blogging TEXT CHECK (regular_blogging IN ('yes', 'no')),
    ai_tools_blogging_frequency TEXT CHECK (ai_tools_blogging_frequency IN ('never', 'rarely', 'sometimes', 'often', 'always')),
    blogging_tools_familiarity INTEGER CHECK (blogging_tools_familiarity BETWEEN 1 AND 5)
);

CREATE TABLE IF NOT EXISTS platform_features_opinions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    feedback_form_id INTEGER NOT NULL UNIQUE REFERENCES feedback_forms(id) ON DELETE CASCADE,
    core_platform_features TEXT CHECK (length(core_platform_features) <= 1000),
    ai_research_opinion TEXT CHECK (length(ai_research_opinion) <= 1000),
    ideal_reading_features TEXT CHECK (length(ideal_reading_features) <= 1000),
    portfolio_presentation_preference TEXT CHECK (length(portfolio_presentation_preference) <= 1000)
);

CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    gender TEXT,
    profession TEXT,
    interest_reason TEXT,
    user_type TEXT NOT NULL CHECK (user_type IN ('user', 'creator')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (email, user_type)
);

CREATE INDEX IF NOT EXISTS idx_users_user_type ON users(user_type);

CREATE TABLE IF NOT EXISTS not_interested_users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone_number TEXT NOT NULL,
    gender TEXT,
    profession TEXT,
    not_interested_reason TEXT,
    improvement_suggestions TEXT,
    interest_reason TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
