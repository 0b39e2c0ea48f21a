// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"
	"time"

	"github.com/danielhkuo/survey-intake/models"
)

// Scope selects which bundle an export produces.
type Scope string

const (
	ScopeAll           Scope = "all"
	ScopeUsers         Scope = "users"
	ScopeCreators      Scope = "creators"
	ScopeFeedback      Scope = "feedback"
	ScopeNotInterested Scope = "not_interested"
)

// ParseScope accepts the scope names above.
func ParseScope(s string) (Scope, error) {
	switch scope := Scope(s); scope {
	case ScopeAll, ScopeUsers, ScopeCreators, ScopeFeedback, ScopeNotInterested:
		return scope, nil
	default:
		return "", fmt.Errorf("unknown export scope %q", s)
	}
}

// Bundle is one of AllDataBundle, UserDataBundle, CreatorDataBundle,
// FeedbackDataBundle or NotInterestedDataBundle.
type Bundle interface {
	Scope() Scope
	sealed()
}

// Header is common to every bundle.
type Header struct {
	ExportDate time.Time `json:"export_date"`
	// TokenExpiresAt is the exporting token's expiry, for display only
	TokenExpiresAt     *time.Time `json:"token_expires_at,omitempty"`
	DataType           string     `json:"data_type,omitempty"`
	UnavailableSources []string   `json:"unavailable_sources,omitempty"`
}

type CombinedAnalytics struct {
	UserAnalytics     models.UserAnalytics     `json:"user_analytics"`
	FeedbackAnalytics models.FeedbackAnalytics `json:"feedback_analytics"`
}

type AllDataSummary struct {
	TotalUsers         int `json:"total_users"`
	TotalCreators      int `json:"total_creators"`
	TotalNotInterested int `json:"total_not_interested"`
	TotalFeedback      int `json:"total_feedback"`
}

type AllDataBundle struct {
	Header
	Users         []models.UserRecord          `json:"users"`
	Creators      []models.UserRecord          `json:"creators"`
	NotInterested []models.NotInterestedRecord `json:"not_interested"`
	Feedback      []models.FeedbackRecord      `json:"feedback"`
	Analytics     CombinedAnalytics            `json:"analytics"`
	Summary       AllDataSummary               `json:"summary"`
}

// ScopedSummary counts the single collection of a scoped bundle.
type ScopedSummary struct {
	Total           int       `json:"total"`
	ExportTimestamp time.Time `json:"export_timestamp"`
}

type UserDataBundle struct {
	Header
	Users     []models.UserRecord  `json:"users"`
	Analytics models.UserAnalytics `json:"analytics"`
	Summary   ScopedSummary        `json:"summary"`
}

type CreatorDataBundle struct {
	Header
	Creators []models.UserRecord `json:"creators"`
	Summary  ScopedSummary       `json:"summary"`
}

type FeedbackDataBundle struct {
	Header
	Feedback  []models.FeedbackRecord  `json:"feedback"`
	Analytics models.FeedbackAnalytics `json:"analytics"`
	Summary   ScopedSummary            `json:"summary"`
}

type NotInterestedDataBundle struct {
	Header
	NotInterested []models.NotInterestedRecord `json:"not_interested"`
	Summary       ScopedSummary                `json:"summary"`
}

func (AllDataBundle) Scope() Scope           { return ScopeAll }
func (UserDataBundle) Scope() Scope          { return ScopeUsers }
func (CreatorDataBundle) Scope() Scope       { return ScopeCreators }
func (FeedbackDataBundle) Scope() Scope      { return ScopeFeedback }
func (NotInterestedDataBundle) Scope() Scope { return ScopeNotInterested }

func (AllDataBundle) sealed()           {}
func (UserDataBundle) sealed()          {}
func (CreatorDataBundle) sealed()       {}
func (FeedbackDataBundle) sealed()      {}
func (NotInterestedDataBundle) sealed() {}

// Statistics is the counts-plus-analytics view behind /api/data/stats.
type Statistics struct {
	TotalUsers         int                      `json:"total_users"`
	TotalCreators      int                      `json:"total_creators"`
	TotalNotInterested int                      `json:"total_not_interested"`
	TotalFeedback      int                      `json:"total_feedback"`
	UserAnalytics      models.UserAnalytics     `json:"user_analytics"`
	FeedbackAnalytics  models.FeedbackAnalytics `json:"feedback_analytics"`
	UnavailableSources []string                 `json:"unavailable_sources,omitempty"`
}
