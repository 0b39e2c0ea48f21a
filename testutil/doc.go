// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared helpers for package tests.

# Database

SetupTestDB opens a private in-memory SQLite database with the full schema.
Nothing needs to be running:

	d := testutil.SetupTestDB(t)

IgnoreInserts, FailInserts and DropTable install failure conditions so
rollback and degraded-read paths can be exercised.

# Auth

GetTestConfig uses a fixed signing secret and a low-cost bcrypt hash of
TestAdminPassword. AdminToken and UserToken issue tokens for that config.

# HTTP

	req := testutil.MakeRequest("POST", "/api/feedback/submit", body, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	env := testutil.DecodeEnvelope(t, w, &data)
*/
package testutil
