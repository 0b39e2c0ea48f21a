// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/survey-intake/db"
	"github.com/danielhkuo/survey-intake/models"
)

var errNoFormID = errors.New("feedback form insert returned no id")

// FeedbackStore persists feedback forms across the three feedback tables.
type FeedbackStore struct {
	db  *db.DB
	now func() time.Time
}

func NewFeedbackStore(d *db.DB) *FeedbackStore {
	return &FeedbackStore{db: d, now: func() time.Time { return time.Now().UTC() }}
}

// SaveFeedback writes one submission in a single transaction: the form row,
// then a digital work row and a platform opinions row only when any of
// their fields were answered. Any failure rolls back everything and
// returns false.
func (s *FeedbackStore) SaveFeedback(ctx context.Context, sub models.FeedbackSubmission) bool {
	if err := s.saveFeedback(ctx, sub); err != nil {
		slog.Error("failed to save feedback", "error", err)
		return false
	}
	return true
}

func (s *FeedbackStore) saveFeedback(ctx context.Context, sub models.FeedbackSubmission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var formID int64
	err = tx.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO feedback_forms (user_email, created_at)
		VALUES ($1, $2)
		RETURNING id
	`), optString(sub.UserEmail), s.now()).Scan(&formID)
	if errors.Is(err, sql.ErrNoRows) {
		return errNoFormID
	}
	if err != nil {
		return fmt.Errorf("insert feedback form: %w", err)
	}

	if sub.HasDigitalWork() {
		_, err = tx.ExecContext(ctx, s.db.Rebind(`
			INSERT INTO digital_work_feedback (
				feedback_form_id, digital_work_showcase_effectiveness,
				legal_persons_online_recognition, digital_work_sharing_difficulty,
				regular_blogging, ai_tools_blogging_frequency, blogging_tools_familiarity
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`),
			formID,
			optInt(sub.DigitalWorkShowcaseEffectiveness),
			optString(sub.LegalPersonsOnlineRecognition),
			optInt(sub.DigitalWorkSharingDifficulty),
			optString(sub.RegularBlogging),
			optString(sub.AIToolsBloggingFrequency),
			optInt(sub.BloggingToolsFamiliarity),
		)
		if err != nil {
			return fmt.Errorf("insert digital work feedback: %w", err)
		}
	}

	if sub.HasPlatformOpinions() {
		_, err = tx.ExecContext(ctx, s.db.Rebind(`
			INSERT INTO platform_features_opinions (
				feedback_form_id, core_platform_features, ai_research_opinion,
				ideal_reading_features, portfolio_presentation_preference
			) VALUES ($1, $2, $3, $4, $5)
		`),
			formID,
			optString(sub.CorePlatformFeatures),
			optString(sub.AIResearchOpinion),
			optString(sub.IdealReadingFeatures),
			optString(sub.PortfolioPresentationPreference),
		)
		if err != nil {
			return fmt.Errorf("insert platform opinions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit feedback: %w", err)
	}
	return nil
}

// GetAllFeedback returns every form joined with its children, newest first.
func (s *FeedbackStore) GetAllFeedback(ctx context.Context) ([]models.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			f.id, f.user_email, f.created_at,
			d.digital_work_showcase_effectiveness,
			d.legal_persons_online_recognition,
			d.digital_work_sharing_difficulty,
			d.regular_blogging,
			d.ai_tools_blogging_frequency,
			d.blogging_tools_familiarity,
			p.core_platform_features,
			p.ai_research_opinion,
			p.ideal_reading_features,
			p.portfolio_presentation_preference
		FROM feedback_forms f
		LEFT JOIN digital_work_feedback d ON d.feedback_form_id = f.id
		LEFT JOIN platform_features_opinions p ON p.feedback_form_id = f.id
		ORDER BY f.created_at DESC, f.id DESC
	`)
	if err != nil {
		slog.Error("failed to query feedback", "error", err)
		return []models.FeedbackRecord{}, ErrUnavailable
	}
	defer rows.Close()

	records := []models.FeedbackRecord{}
	for rows.Next() {
		var (
			rec                                models.FeedbackRecord
			email                              sql.NullString
			showcase, difficulty, familiarity  sql.NullInt64
			recognition, blogging, aiFrequency sql.NullString
			core, research, reading, portfolio sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &email, &rec.CreatedAt,
			&showcase, &recognition, &difficulty, &blogging, &aiFrequency, &familiarity,
			&core, &research, &reading, &portfolio,
		); err != nil {
			slog.Error("failed to scan feedback", "error", err)
			return []models.FeedbackRecord{}, ErrUnavailable
		}

		rec.UserEmail = strPtr(email)
		rec.DigitalWorkShowcaseEffectiveness = intPtr(showcase)
		rec.LegalPersonsOnlineRecognition = strPtr(recognition)
		rec.DigitalWorkSharingDifficulty = intPtr(difficulty)
		rec.RegularBlogging = strPtr(blogging)
		rec.AIToolsBloggingFrequency = strPtr(aiFrequency)
		rec.BloggingToolsFamiliarity = intPtr(familiarity)
		rec.CorePlatformFeatures = strPtr(core)
		rec.AIResearchOpinion = strPtr(research)
		rec.IdealReadingFeatures = strPtr(reading)
		rec.PortfolioPresentationPreference = strPtr(portfolio)

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate feedback", "error", err)
		return []models.FeedbackRecord{}, ErrUnavailable
	}

	return records, nil
}

// GetFeedbackAnalytics computes averages and categorical counts. On any
// failure it logs and returns the empty result rather than an error.
func (s *FeedbackStore) GetFeedbackAnalytics(ctx context.Context) models.FeedbackAnalytics {
	analytics, err := s.feedbackAnalytics(ctx)
	if err != nil {
		slog.Error("failed to compute feedback analytics", "error", err)
		return models.EmptyFeedbackAnalytics()
	}
	return analytics
}

func (s *FeedbackStore) feedbackAnalytics(ctx context.Context) (models.FeedbackAnalytics, error) {
	result := models.EmptyFeedbackAnalytics()

	var showcase, difficulty, familiarity sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			AVG(digital_work_showcase_effectiveness),
			AVG(digital_work_sharing_difficulty),
			AVG(blogging_tools_familiarity)
		FROM digital_work_feedback
	`).Scan(&showcase, &difficulty, &familiarity)
	if err != nil {
		return result, fmt.Errorf("average ratings: %w", err)
	}
	result.AverageRatings = models.AverageRatings{
		ShowcaseEffectiveness: floatPtr(showcase),
		SharingDifficulty:     floatPtr(difficulty),
		BloggingFamiliarity:   floatPtr(familiarity),
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback_forms`).Scan(&result.TotalFeedback); err != nil {
		return result, fmt.Errorf("count feedback: %w", err)
	}

	if result.RecognitionStats, err = s.countBy(ctx, "legal_persons_online_recognition"); err != nil {
		return result, err
	}
	if result.BloggingStats, err = s.countBy(ctx, "regular_blogging"); err != nil {
		return result, err
	}
	if result.AIToolsStats, err = s.countBy(ctx, "ai_tools_blogging_frequency"); err != nil {
		return result, err
	}

	return result, nil
}

// countBy groups non-null answers of a digital_work_feedback column.
// column is always a constant from this file.
func (s *FeedbackStore) countBy(ctx context.Context, column string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM digital_work_feedback
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
	`, column))
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", column, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var value string
		var n int
		if err := rows.Scan(&value, &n); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		counts[value] = n
	}
	return counts, rows.Err()
}

// GetFeedbackSummary returns totals, the latest submission time and analytics.
func (s *FeedbackStore) GetFeedbackSummary(ctx context.Context) (models.FeedbackSummary, error) {
	summary := models.FeedbackSummary{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM feedback_forms),
			(SELECT COUNT(*) FROM digital_work_feedback),
			(SELECT COUNT(*) FROM platform_features_opinions)
	`).Scan(&summary.TotalFeedback, &summary.WithDigitalWork, &summary.WithPlatformOpinions)
	if err != nil {
		slog.Error("failed to count feedback", "error", err)
		return models.FeedbackSummary{Analytics: models.EmptyFeedbackAnalytics()}, ErrUnavailable
	}

	var latest time.Time
	err = s.db.QueryRowContext(ctx, `
		SELECT created_at FROM feedback_forms
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&latest)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		slog.Error("failed to read latest feedback", "error", err)
		return models.FeedbackSummary{Analytics: models.EmptyFeedbackAnalytics()}, ErrUnavailable
	default:
		latest = latest.UTC()
		summary.LatestSubmissionAt = &latest
	}

	summary.Analytics = s.GetFeedbackAnalytics(ctx)
	return summary, nil
}
