// Package academy implements the flows that touch more than one entity:
// registration, login, challenge submission and leaderboard scoring.
package academy

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/terra-clan/academy-api/internal/cache"
	"github.com/terra-clan/academy-api/internal/metrics"
	"github.com/terra-clan/academy-api/internal/models"
	"github.com/terra-clan/academy-api/internal/realtime"
	"github.com/terra-clan/academy-api/internal/storage"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrChallengeNotFound  = errors.New("challenge not found")
)

const leaderboardKeyPrefix = "leaderboard:"

// Publisher receives change notifications
type Publisher interface {
	Publish(evt realtime.Event)
}

type discardPublisher struct{}

func (discardPublisher) Publish(realtime.Event) {}

// Options tunes service behavior
type Options struct {
	// RequireChallenge rejects submissions whose challenge does not exist
	RequireChallenge bool

	// LeaderboardTTL is how long ranked leaderboards stay cached. Zero disables caching.
	LeaderboardTTL time.Duration
}

// Service coordinates repository writes with caching and event fan-out
type Service struct {
	repo   storage.Repository
	cache  cache.Cache
	events Publisher
	opts   Options
}

// NewService creates a service. A nil cache or publisher disables that concern.
func NewService(repo storage.Repository, c cache.Cache, events Publisher, opts Options) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if events == nil {
		events = discardPublisher{}
	}
	return &Service{
		repo:   repo,
		cache:  c,
		events: events,
		opts:   opts,
	}
}

// Register creates a user after checking that the username and email are free,
// then opens an empty leaderboard entry for it.
func (s *Service) Register(ctx context.Context, in models.UserInput) (*models.User, error) {
	existing, err := s.repo.GetUserByUsername(ctx, *in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if existing != nil {
		return nil, storage.ErrUsernameTaken
	}

	existing, err = s.repo.GetUserByEmail(ctx, *in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, storage.ErrEmailTaken
	}

	user, err := s.repo.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.CreateLeaderboardEntry(ctx, user.ID); err != nil {
		if !errors.Is(err, storage.ErrLeaderboardEntryExists) {
			return nil, fmt.Errorf("failed to create leaderboard entry: %w", err)
		}
		slog.Warn("leaderboard entry already present for new user", "user_id", user.ID)
	}

	metrics.Registrations.Inc()
	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	s.leaderboardChanged(ctx, map[string]int{"userId": user.ID})
	return user, nil
}

// Login returns the user whose credentials match. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		metrics.LoginFailures.Inc()
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Submit records a submission and counts one more participant on the
// challenge. Every submission counts, including repeats by the same user.
func (s *Service) Submit(ctx context.Context, in models.SubmissionInput) (*models.ChallengeSubmission, error) {
	challengeID := *in.ChallengeID

	if s.opts.RequireChallenge {
		c, err := s.repo.GetChallenge(ctx, challengeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get challenge: %w", err)
		}
		if c == nil {
			return nil, ErrChallengeNotFound
		}
	}

	if err := s.repo.IncrementParticipants(ctx, challengeID); err != nil {
		return nil, err
	}

	sub, err := s.repo.CreateSubmission(ctx, in)
	if err != nil {
		return nil, err
	}

	metrics.Submissions.Inc()
	s.events.Publish(realtime.Event{Type: realtime.EventSubmissionCreated, Data: sub})
	return sub, nil
}

// ReviewSubmission sets the outcome of a submission. Returns nil when the
// submission does not exist.
func (s *Service) ReviewSubmission(ctx context.Context, id int, review models.SubmissionReview) (*models.ChallengeSubmission, error) {
	return s.repo.UpdateSubmissionStatus(ctx, id, *review.Status, review.Score)
}

// Leaderboard returns entries ranked by metric. Results are served from cache
// when possible; cache failures fall back to the repository.
func (s *Service) Leaderboard(ctx context.Context, metric models.LeaderboardMetric, limit int) ([]*models.RankedEntry, error) {
	if limit < 0 {
		limit = 0
	}
	key := fmt.Sprintf("%s%s:%d", leaderboardKeyPrefix, metric, limit)

	if s.opts.LeaderboardTTL > 0 {
		if cached, ok := s.cachedLeaderboard(ctx, key); ok {
			metrics.CacheHits.Inc()
			return cached, nil
		}
		metrics.CacheMisses.Inc()
	}

	entries, err := s.repo.ListLeaderboard(ctx, metric, limit)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.User == nil {
			slog.Warn("leaderboard entry references missing user", "entry_id", e.ID, "user_id", e.UserID)
		}
	}

	if s.opts.LeaderboardTTL > 0 {
		if payload, err := json.Marshal(entries); err != nil {
			slog.Warn("failed to encode leaderboard for cache", "error", err)
		} else if err := s.cache.Set(ctx, key, payload, s.opts.LeaderboardTTL); err != nil {
			slog.Warn("failed to cache leaderboard", "key", key, "error", err)
		}
	}

	return entries, nil
}

func (s *Service) cachedLeaderboard(ctx context.Context, key string) ([]*models.RankedEntry, bool) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("leaderboard cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entries []*models.RankedEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		slog.Warn("discarding corrupt leaderboard cache entry", "key", key, "error", err)
		return nil, false
	}
	return entries, true
}

// AwardPoints applies delta to the user's leaderboard entry. Returns nil when
// the user has no entry.
func (s *Service) AwardPoints(ctx context.Context, userID int, delta models.PointsDelta) (*models.LeaderboardEntry, error) {
	entry, err := s.repo.ApplyLeaderboardDelta(ctx, userID, delta)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	slog.Info("points awarded",
		"user_id", userID,
		"points", *delta.Points,
		"challenge_completed", delta.ChallengeCompleted,
		"medal", delta.Medal,
	)

	s.leaderboardChanged(ctx, entry)
	return entry, nil
}

// ResetWeeklyPoints zeroes every weekly counter and returns how many entries changed
func (s *Service) ResetWeeklyPoints(ctx context.Context) (int, error) {
	n, err := s.repo.ResetWeeklyPoints(ctx)
	if err != nil {
		return 0, err
	}

	metrics.WeeklyResets.Inc()
	s.invalidateLeaderboard(ctx)
	s.events.Publish(realtime.Event{Type: realtime.EventWeeklyReset, Data: map[string]int{"entries": n}})
	return n, nil
}

func (s *Service) leaderboardChanged(ctx context.Context, data any) {
	s.invalidateLeaderboard(ctx)
	s.events.Publish(realtime.Event{Type: realtime.EventLeaderboardUpdated, Data: data})
}

func (s *Service) invalidateLeaderboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, leaderboardKeyPrefix); err != nil {
		slog.Warn("failed to invalidate leaderboard cache", "error", err)
	}
}
