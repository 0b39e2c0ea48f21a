// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin login and bearer-token verification.

# Access Tokens

TokenManager signs and verifies HMAC JWTs (HS256, HS384 or HS512):

	tm, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	raw, claims, err := tm.Issue(username, auth.RoleAdmin)
	claims, err = tm.VerifyToken(raw)

Verification pins the configured algorithm and requires an exp claim.
Tokens are stateless: there is no session store and no revocation list.

# Admin Login

AdminCredentials holds the configured username and a bcrypt hash of the
password. A plaintext password is hashed once at startup; a value that is
already a bcrypt hash is used as-is.

# Request Context

The admin gate stores verified claims with WithClaims; handlers read them
back with ClaimsFromContext.

# IP Hashing

HashIP produces a salted 64-bit fingerprint so rejected requests can be
correlated in logs without recording client addresses.
*/
package auth
