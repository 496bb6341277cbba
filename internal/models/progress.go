package models

import "time"

// UserProgress tracks how far a user got through one learning path.
// There is at most one record per (UserID, LearningPathID).
type UserProgress struct {
	ID               int       `json:"id"`
	UserID           int       `json:"userId"`
	LearningPathID   int       `json:"learningPathId"`
	CompletedModules int       `json:"completedModules"`
	LastAccessedAt   time.Time `json:"lastAccessedAt"`
	IsCompleted      bool      `json:"isCompleted"`
}

// ProgressInput is the upsert payload for user progress
type ProgressInput struct {
	UserID           *int  `json:"userId" validate:"required"`
	LearningPathID   *int  `json:"learningPathId" validate:"required"`
	CompletedModules *int  `json:"completedModules"`
	IsCompleted      *bool `json:"isCompleted"`
}

// Apply merges the set fields of in onto p. Identity and LastAccessedAt are kept.
func (in ProgressInput) Apply(p *UserProgress) {
	setIf(&p.CompletedModules, in.CompletedModules)
	setIf(&p.IsCompleted, in.IsCompleted)
}
