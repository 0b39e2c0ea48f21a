// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/survey-intake/db"
	"github.com/danielhkuo/survey-intake/models"
)

// unspecified buckets registrations that left gender or profession empty.
const unspecified = "unspecified"

// RegistrationStore persists user, creator and not-interested signups.
type RegistrationStore struct {
	db  *db.DB
	now func() time.Time
}

func NewRegistrationStore(d *db.DB) *RegistrationStore {
	return &RegistrationStore{db: d, now: func() time.Time { return time.Now().UTC() }}
}

// SaveUser stores a signup as userType (models.UserTypeUser or
// models.UserTypeCreator). The same email may register once per type.
func (s *RegistrationStore) SaveUser(ctx context.Context, reg models.UserRegistration, userType string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO users (name, email, phone_number, gender, profession, interest_reason, user_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`),
		reg.Name, reg.Email, reg.PhoneNumber,
		optString(reg.Gender), optString(reg.Profession), optString(reg.InterestReason),
		userType, s.now(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		slog.Error("failed to save registration", "user_type", userType, "error", err)
		return 0, ErrUnavailable
	}
	return id, nil
}

// SaveCreator stores a creator signup.
func (s *RegistrationStore) SaveCreator(ctx context.Context, reg models.UserRegistration) (int64, error) {
	return s.SaveUser(ctx, reg, models.UserTypeCreator)
}

// SaveNotInterested stores a "not interested" response; one per email.
func (s *RegistrationStore) SaveNotInterested(ctx context.Context, sub models.NotInterestedSubmission) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO not_interested_users (
			name, email, phone_number, gender, profession,
			not_interested_reason, improvement_suggestions, interest_reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`),
		sub.Name, sub.Email, sub.PhoneNumber,
		optString(sub.Gender), optString(sub.Profession),
		optString(sub.NotInterestedReason), optString(sub.ImprovementSuggestions), optString(sub.InterestReason),
		s.now(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		slog.Error("failed to save not-interested response", "error", err)
		return 0, ErrUnavailable
	}
	return id, nil
}

func (s *RegistrationStore) GetAllUsers(ctx context.Context) ([]models.UserRecord, error) {
	return s.getUsers(ctx, models.UserTypeUser)
}

func (s *RegistrationStore) GetAllCreators(ctx context.Context) ([]models.UserRecord, error) {
	return s.getUsers(ctx, models.UserTypeCreator)
}

func (s *RegistrationStore) getUsers(ctx context.Context, userType string) ([]models.UserRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`
		SELECT id, name, email, phone_number, gender, profession, interest_reason, user_type, created_at
		FROM users
		WHERE user_type = $1
		ORDER BY created_at DESC, id DESC
	`), userType)
	if err != nil {
		slog.Error("failed to query users", "user_type", userType, "error", err)
		return []models.UserRecord{}, ErrUnavailable
	}
	defer rows.Close()

	users := []models.UserRecord{}
	for rows.Next() {
		var u models.UserRecord
		var gender, profession, reason sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &gender, &profession, &reason, &u.UserType, &u.CreatedAt); err != nil {
			slog.Error("failed to scan user", "error", err)
			return []models.UserRecord{}, ErrUnavailable
		}
		u.Gender, u.Profession, u.InterestReason = strPtr(gender), strPtr(profession), strPtr(reason)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate users", "error", err)
		return []models.UserRecord{}, ErrUnavailable
	}
	return users, nil
}

func (s *RegistrationStore) GetAllNotInterested(ctx context.Context) ([]models.NotInterestedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone_number, gender, profession,
			not_interested_reason, improvement_suggestions, interest_reason, created_at
		FROM not_interested_users
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		slog.Error("failed to query not-interested responses", "error", err)
		return []models.NotInterestedRecord{}, ErrUnavailable
	}
	defer rows.Close()

	out := []models.NotInterestedRecord{}
	for rows.Next() {
		var n models.NotInterestedRecord
		var gender, profession, reason, suggestions, interest sql.NullString
		if err := rows.Scan(&n.ID, &n.Name, &n.Email, &n.PhoneNumber, &gender, &profession,
			&reason, &suggestions, &interest, &n.CreatedAt); err != nil {
			slog.Error("failed to scan not-interested response", "error", err)
			return []models.NotInterestedRecord{}, ErrUnavailable
		}
		n.Gender, n.Profession = strPtr(gender), strPtr(profession)
		n.NotInterestedReason, n.ImprovementSuggestions, n.InterestReason = strPtr(reason), strPtr(suggestions), strPtr(interest)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate not-interested responses", "error", err)
		return []models.NotInterestedRecord{}, ErrUnavailable
	}
	return out, nil
}

// GetUserAnalytics counts registrations and the gender and profession
// distributions across users and creators.
func (s *RegistrationStore) GetUserAnalytics(ctx context.Context) (models.UserAnalytics, error) {
	result := models.EmptyUserAnalytics()

	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT
			(SELECT COUNT(*) FROM users WHERE user_type = $1),
			(SELECT COUNT(*) FROM users WHERE user_type = $2),
			(SELECT COUNT(*) FROM not_interested_users)
	`), models.UserTypeUser, models.UserTypeCreator).Scan(&result.TotalUsers, &result.TotalCreators, &result.TotalNotInterested)
	if err != nil {
		slog.Error("failed to count registrations", "error", err)
		return models.EmptyUserAnalytics(), ErrUnavailable
	}

	if result.GenderDistribution, err = s.distribution(ctx, "gender"); err != nil {
		slog.Error("failed to compute gender distribution", "error", err)
		return models.EmptyUserAnalytics(), ErrUnavailable
	}
	if result.ProfessionDistribution, err = s.distribution(ctx, "profession"); err != nil {
		slog.Error("failed to compute profession distribution", "error", err)
		return models.EmptyUserAnalytics(), ErrUnavailable
	}

	return result, nil
}

// distribution groups users by a constant column name.
func (s *RegistrationStore) distribution(ctx context.Context, column string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(fmt.Sprintf(`
		SELECT COALESCE(NULLIF(%[1]s, ''), $1), COUNT(*)
		FROM users
		GROUP BY 1
	`, column)), unspecified)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var value string
		var n int
		if err := rows.Scan(&value, &n); err != nil {
			return nil, err
		}
		counts[value] = n
	}
	return counts, rows.Err()
}
