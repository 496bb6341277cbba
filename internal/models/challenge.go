package models

import (
	"slices"
	"time"
)

// SubmissionStatus is the review state of a challenge submission.
// The set is open; these are the values the platform itself writes.
type SubmissionStatus = string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionAccepted SubmissionStatus = "accepted"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Challenge represents a time-boxed practical exercise
type Challenge struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Difficulty   string     `json:"difficulty"` // free-form, e.g. "Fácil" | "Médio" | "Difícil"
	Category     string     `json:"category"`
	Tags         []string   `json:"tags"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Participants int        `json:"participants"`
	Icon         string     `json:"icon"`
	PrimaryColor *string    `json:"primaryColor"`
}

// ChallengeInput is the create/update payload for a challenge.
// Participants is server-maintained and cannot be set.
type ChallengeInput struct {
	Title        *string    `json:"title" validate:"required"`
	Description  *string    `json:"description" validate:"required"`
	Difficulty   *string    `json:"difficulty" validate:"required"`
	Category     *string    `json:"category" validate:"required"`
	Tags         []string   `json:"tags"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Icon         *string    `json:"icon" validate:"required"`
	PrimaryColor *string    `json:"primaryColor"`
}

// Apply merges the set fields of in onto c
func (in ChallengeInput) Apply(c *Challenge) {
	setIf(&c.Title, in.Title)
	setIf(&c.Description, in.Description)
	setIf(&c.Difficulty, in.Difficulty)
	setIf(&c.Category, in.Category)
	if in.Tags != nil {
		c.Tags = slices.Clone(in.Tags)
	}
	setIf(&c.StartDate, in.StartDate)
	setOptional(&c.EndDate, in.EndDate)
	setIf(&c.Icon, in.Icon)
	setOptional(&c.PrimaryColor, in.PrimaryColor)
}

// ChallengeSubmission represents one solution sent for a challenge.
// Users may submit to the same challenge any number of times.
type ChallengeSubmission struct {
	ID          int              `json:"id"`
	UserID      int              `json:"userId"`
	ChallengeID int              `json:"challengeId"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Score       *int             `json:"score"`
	Status      SubmissionStatus `json:"status"`
	Solution    string           `json:"solution"`
}

// SubmissionInput is the create payload for a submission
type SubmissionInput struct {
	UserID      *int    `json:"userId" validate:"required"`
	ChallengeID *int    `json:"challengeId" validate:"required"`
	Score       *int    `json:"score"`
	Status      *string `json:"status"`
	Solution    *string `json:"solution" validate:"required"`
}

// SubmissionReview updates the review outcome of a submission
type SubmissionReview struct {
	Status *string `json:"status" validate:"required"`
	Score  *int    `json:"score"`
}
