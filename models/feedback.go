package models

import "time"

// YesNo is a binary-choice answer.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

// BloggingFrequency is a five-level frequency answer.
type BloggingFrequency string

const (
	FrequencyNever     BloggingFrequency = "never"
	FrequencyRarely    BloggingFrequency = "rarely"
	FrequencySometimes BloggingFrequency = "sometimes"
	FrequencyOften     BloggingFrequency = "often"
	FrequencyAlways    BloggingFrequency = "always"
)

// FeedbackSubmission is one validated feedback questionnaire.
// Every field is optional; nil means the question was not answered.
type FeedbackSubmission struct {
	UserEmail *string `json:"user_email,omitempty" validate:"omitempty,email"`

	// Digital work feedback
	DigitalWorkShowcaseEffectiveness *int               `json:"digital_work_showcase_effectiveness,omitempty" validate:"omitempty,rating"`
	LegalPersonsOnlineRecognition    *YesNo             `json:"legal_persons_online_recognition,omitempty" validate:"omitempty,oneof=yes no"`
	DigitalWorkSharingDifficulty     *int               `json:"digital_work_sharing_difficulty,omitempty" validate:"omitempty,rating"`
	RegularBlogging                  *YesNo             `json:"regular_blogging,omitempty" validate:"omitempty,oneof=yes no"`
	AIToolsBloggingFrequency         *BloggingFrequency `json:"ai_tools_blogging_frequency,omitempty" validate:"omitempty,oneof=never rarely sometimes often always"`
	BloggingToolsFamiliarity         *int               `json:"blogging_tools_familiarity,omitempty" validate:"omitempty,rating"`

	// Platform features and opinions
	CorePlatformFeatures            *string `json:"core_platform_features,omitempty" validate:"omitempty,text"`
	AIResearchOpinion               *string `json:"ai_research_opinion,omitempty" validate:"omitempty,text"`
	IdealReadingFeatures            *string `json:"ideal_reading_features,omitempty" validate:"omitempty,text"`
	PortfolioPresentationPreference *string `json:"portfolio_presentation_preference,omitempty" validate:"omitempty,text"`
}

// HasDigitalWork reports whether any digital work field was answered.
func (s *FeedbackSubmission) HasDigitalWork() bool {
	return s.DigitalWorkShowcaseEffectiveness != nil ||
		s.LegalPersonsOnlineRecognition != nil ||
		s.DigitalWorkSharingDifficulty != nil ||
		s.RegularBlogging != nil ||
		s.AIToolsBloggingFrequency != nil ||
		s.BloggingToolsFamiliarity != nil
}

// HasPlatformOpinions reports whether any free-text field was answered.
func (s *FeedbackSubmission) HasPlatformOpinions() bool {
	return s.CorePlatformFeatures != nil ||
		s.AIResearchOpinion != nil ||
		s.IdealReadingFeatures != nil ||
		s.PortfolioPresentationPreference != nil
}

// FeedbackRecord is one form joined with its optional children.
// Child-owned fields are nil when the child row does not exist.
type FeedbackRecord struct {
	ID        int64     `json:"id"`
	UserEmail *string   `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`

	DigitalWorkShowcaseEffectiveness *int    `json:"digital_work_showcase_effectiveness"`
	LegalPersonsOnlineRecognition    *string `json:"legal_persons_online_recognition"`
	DigitalWorkSharingDifficulty     *int    `json:"digital_work_sharing_difficulty"`
	RegularBlogging                  *string `json:"regular_blogging"`
	AIToolsBloggingFrequency         *string `json:"ai_tools_blogging_frequency"`
	BloggingToolsFamiliarity         *int    `json:"blogging_tools_familiarity"`

	CorePlatformFeatures            *string `json:"core_platform_features"`
	AIResearchOpinion               *string `json:"ai_research_opinion"`
	IdealReadingFeatures            *string `json:"ideal_reading_features"`
	PortfolioPresentationPreference *string `json:"portfolio_presentation_preference"`
}

// AverageRatings holds the mean of each rating column; nil when no rating exists.
type AverageRatings struct {
	ShowcaseEffectiveness *float64 `json:"avg_showcase_effectiveness"`
	SharingDifficulty     *float64 `json:"avg_sharing_difficulty"`
	BloggingFamiliarity   *float64 `json:"avg_blogging_familiarity"`
}

// FeedbackAnalytics is computed on demand and never persisted.
type FeedbackAnalytics struct {
	AverageRatings   AverageRatings `json:"average_ratings"`
	TotalFeedback    int            `json:"total_feedback"`
	RecognitionStats map[string]int `json:"recognition_stats"`
	BloggingStats    map[string]int `json:"blogging_stats"`
	AIToolsStats     map[string]int `json:"ai_tools_stats"`
}

// EmptyFeedbackAnalytics is the zero result with non-nil maps so it encodes as {}.
func EmptyFeedbackAnalytics() FeedbackAnalytics {
	return FeedbackAnalytics{
		RecognitionStats: map[string]int{},
		BloggingStats:    map[string]int{},
		AIToolsStats:     map[string]int{},
	}
}

type FeedbackSummary struct {
	TotalFeedback        int               `json:"total_feedback"`
	WithDigitalWork      int               `json:"with_digital_work"`
	WithPlatformOpinions int               `json:"with_platform_opinions"`
	LatestSubmissionAt   *time.Time        `json:"latest_submission_at"`
	Analytics            FeedbackAnalytics `json:"analytics"`
}
