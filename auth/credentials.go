// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials checks the single configured admin login.
type AdminCredentials struct {
	username     string
	passwordHash []byte
}

// NewAdminCredentials accepts either a plaintext password, which is hashed
// here, or an existing bcrypt hash.
func NewAdminCredentials(username, password string) (*AdminCredentials, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin username and password are required")
	}

	hash := []byte(password)
	if _, err := bcrypt.Cost(hash); err != nil {
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	}

	return &AdminCredentials{username: username, passwordHash: hash}, nil
}

// Authenticate returns ErrInvalidCredentials on any mismatch.
func (c *AdminCredentials) Authenticate(username, password string) error {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil

	if !usernameMatch || !passwordMatch {
		return ErrInvalidCredentials
	}
	return nil
}
