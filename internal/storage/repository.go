package storage

import (
	"context"
	"errors"

	"github.com/terra-clan/academy-api/internal/models"
)

// Common errors
var (
	ErrUsernameTaken          = errors.New("username already taken")
	ErrEmailTaken             = errors.New("email already registered")
	ErrLeaderboardEntryExists = errors.New("leaderboard entry already exists for user")
)

// Repository defines the interface for platform persistence.
// Lookups return (nil, nil) when the entity does not exist.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Learning paths
	CreateLearningPath(ctx context.Context, in models.LearningPathInput) (*models.LearningPath, error)
	GetLearningPath(ctx context.Context, id int) (*models.LearningPath, error)
	ListLearningPaths(ctx context.Context) ([]*models.LearningPath, error)
	UpdateLearningPath(ctx context.Context, id int, in models.LearningPathInput) (*models.LearningPath, error)
	DeleteLearningPath(ctx context.Context, id int) (bool, error)

	// Modules
	CreateModule(ctx context.Context, in models.ModuleInput) (*models.Module, error)
	GetModule(ctx context.Context, id int) (*models.Module, error)
	ListModulesByLearningPath(ctx context.Context, learningPathID int) ([]*models.Module, error)
	UpdateModule(ctx context.Context, id int, in models.ModuleInput) (*models.Module, error)
	DeleteModule(ctx context.Context, id int) (bool, error)

	// Progress
	UpsertUserProgress(ctx context.Context, in models.ProgressInput) (*models.UserProgress, error)
	GetUserProgress(ctx context.Context, userID, learningPathID int) (*models.UserProgress, error)
	ListUserProgress(ctx context.Context, userID int) ([]*models.UserProgress, error)

	// Challenges
	CreateChallenge(ctx context.Context, in models.ChallengeInput) (*models.Challenge, error)
	GetChallenge(ctx context.Context, id int) (*models.Challenge, error)
	ListChallenges(ctx context.Context) ([]*models.Challenge, error)
	UpdateChallenge(ctx context.Context, id int, in models.ChallengeInput) (*models.Challenge, error)
	DeleteChallenge(ctx context.Context, id int) (bool, error)
	IncrementParticipants(ctx context.Context, id int) error

	// Submissions
	CreateSubmission(ctx context.Context, in models.SubmissionInput) (*models.ChallengeSubmission, error)
	GetSubmission(ctx context.Context, id int) (*models.ChallengeSubmission, error)
	ListSubmissionsByUser(ctx context.Context, userID int) ([]*models.ChallengeSubmission, error)
	ListSubmissionsByChallenge(ctx context.Context, challengeID int) ([]*models.ChallengeSubmission, error)
	UpdateSubmissionStatus(ctx context.Context, id int, status string, score *int) (*models.ChallengeSubmission, error)

	// Leaderboard
	CreateLeaderboardEntry(ctx context.Context, userID int) (*models.LeaderboardEntry, error)
	GetLeaderboardEntry(ctx context.Context, userID int) (*models.LeaderboardEntry, error)
	ListLeaderboard(ctx context.Context, metric models.LeaderboardMetric, limit int) ([]*models.RankedEntry, error)
	ApplyLeaderboardDelta(ctx context.Context, userID int, delta models.PointsDelta) (*models.LeaderboardEntry, error)
	ResetWeeklyPoints(ctx context.Context) (int, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
