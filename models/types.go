package models

import "time"

// Response envelope

// BaseResponse wraps every JSON response.
type BaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Auth types

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

type TokenInfo struct {
	Subject   string    `json:"sub"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Registration types

// User type constants
const (
	UserTypeUser    = "user"
	UserTypeCreator = "creator"
)

type UserRegistration struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	PhoneNumber    string  `json:"phone_number" validate:"required,min=7,max=20"`
	Gender         *string `json:"gender,omitempty" validate:"omitempty,max=50"`
	Profession     *string `json:"profession,omitempty" validate:"omitempty,max=100"`
	InterestReason *string `json:"interest_reason,omitempty" validate:"omitempty,text"`
}

type NotInterestedSubmission struct {
	Name                   string  `json:"name" validate:"required,max=100"`
	Email                  string  `json:"email" validate:"required,email"`
	PhoneNumber            string  `json:"phone_number" validate:"required,min=7,max=20"`
	Gender                 *string `json:"gender,omitempty" validate:"omitempty,max=50"`
	Profession             *string `json:"profession,omitempty" validate:"omitempty,max=100"`
	NotInterestedReason    *string `json:"not_interested_reason,omitempty" validate:"omitempty,text"`
	ImprovementSuggestions *string `json:"improvement_suggestions,omitempty" validate:"omitempty,text"`
	InterestReason         *string `json:"interest_reason,omitempty" validate:"omitempty,text"`
}

type UserRecord struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	Gender         *string   `json:"gender"`
	Profession     *string   `json:"profession"`
	InterestReason *string   `json:"interest_reason"`
	UserType       string    `json:"user_type"`
	CreatedAt      time.Time `json:"created_at"`
}

type NotInterestedRecord struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	PhoneNumber            string    `json:"phone_number"`
	Gender                 *string   `json:"gender"`
	Profession             *string   `json:"profession"`
	NotInterestedReason    *string   `json:"not_interested_reason"`
	ImprovementSuggestions *string   `json:"improvement_suggestions"`
	InterestReason         *string   `json:"interest_reason"`
	CreatedAt              time.Time `json:"created_at"`
}

type UserAnalytics struct {
	TotalUsers             int            `json:"total_users"`
	TotalCreators          int            `json:"total_creators"`
	TotalNotInterested     int            `json:"total_not_interested"`
	GenderDistribution     map[string]int `json:"gender_distribution"`
	ProfessionDistribution map[string]int `json:"profession_distribution"`
}

// EmptyUserAnalytics is the zero result with non-nil maps so it encodes as {}.
func EmptyUserAnalytics() UserAnalytics {
	return UserAnalytics{
		GenderDistribution:     map[string]int{},
		ProfessionDistribution: map[string]int{},
	}
}
