// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing from CLI flags and environment.

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

# Precedence

Configuration is loaded in order (later overrides earlier):

 1. .env file in the working directory (optional)
 2. Environment variables
 3. CLI flags

# Flags and Environment Variables

	Flag             Env Variable                  Required  Default
	-p               PORT                          No        8000
	-d               DATABASE_URL                  Yes       -
	-t               DATABASE_TYPE                 No        inferred from URL
	-jwt-secret      JWT_SECRET                    Yes       -
	-admin-password  ADMIN_PASSWORD                Yes       -
	-log-level       LOG_LEVEL                     No        info
	                 ADMIN_USERNAME                Yes       -
	                 JWT_ALGORITHM                 No        HS256
	                 ACCESS_TOKEN_EXPIRE_MINUTES   No        30
	                 CORS_ORIGINS                  No        none (comma separated)
	                 CORS_MAX_AGE                  No        86400
	                 RATE_LIMIT_REQUESTS           No        60 per minute
	                 RATE_LIMIT_DISABLED           No        false
	                 TRUSTED_PROXIES               No        none (IPs or CIDRs)
	                 IP_HASH_SALT                  No        derived from JWT_SECRET
	                 LOG_FORMAT                    No        json

# Security

Prefer environment variables for secrets over CLI flags, as flags may be
visible in process listings. JWT_SECRET must be at least 32 characters.

X-Forwarded-For and X-Real-IP are honored only when the connecting peer is
listed in TRUSTED_PROXIES. With no proxies configured, clients are keyed on
the socket address.

# Config Struct

	type Config struct {
		Port          int
		DatabaseURL   string
		DatabaseType  string
		JWTSecret     string
		JWTAlgorithm  string
		TokenTTL      time.Duration
		AdminUsername string
		AdminPassword string
		...
	}

The struct is passed by value; nothing mutates it after ParseFlags returns.
*/
package cliparse
