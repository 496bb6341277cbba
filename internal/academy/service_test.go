package academy

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/terra-clan/academy-api/internal/models"
	"github.com/terra-clan/academy-api/internal/realtime"
	"github.com/terra-clan/academy-api/internal/storage"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// mapCache is an in-process cache.Cache for tests
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *mapCache) Invalidate(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *mapCache) Ping(ctx context.Context) error { return nil }

type recorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (r *recorder) Publish(evt realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestService(t *testing.T, opts Options) (*Service, *storage.MemoryRepository, *mapCache, *recorder) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	c := newMapCache()
	rec := &recorder{}
	return NewService(repo, c, rec, opts), repo, c, rec
}

func registration(username, email string) models.UserInput {
	return models.UserInput{
		Username: strPtr(username),
		Password: strPtr("secret1"),
		Email:    strPtr(email),
		Name:     strPtr("Ana"),
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, rec := newTestService(t, Options{})

	user, err := svc.Register(ctx, registration("ana", "ana@x.pt"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleStudent {
		t.Errorf("expected student role, got %q", user.Role)
	}

	entry, _ := repo.GetLeaderboardEntry(ctx, user.ID)
	if entry == nil || entry.TotalPoints != 0 {
		t.Errorf("expected zeroed leaderboard entry, got %+v", entry)
	}
	if got := rec.types(); len(got) != 1 || got[0] != realtime.EventLeaderboardUpdated {
		t.Errorf("unexpected events: %v", got)
	}

	if _, err := svc.Register(ctx, registration("ana", "other@x.pt")); !errors.Is(err, storage.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Register(ctx, registration("bia", "ana@x.pt")); !errors.Is(err, storage.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t, Options{})

	if _, err := svc.Register(ctx, registration("ana", "ana@x.pt")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "ana", "secret1", nil},
		{"wrong password", "ana", "secret2", ErrInvalidCredentials},
		{"unknown user", "bia", "secret1", ErrInvalidCredentials},
		{"username is case sensitive", "Ana", "secret1", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && user.Username != "ana" {
				t.Errorf("unexpected user: %+v", user)
			}
		})
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	submission := func(challengeID int) models.SubmissionInput {
		return models.SubmissionInput{
			UserID:      intPtr(1),
			ChallengeID: intPtr(challengeID),
			Solution:    strPtr("model.fit(X, y)"),
		}
	}

	t.Run("counts every submission", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t, Options{})
		c, _ := repo.CreateChallenge(ctx, models.ChallengeInput{
			Title: strPtr("t"), Description: strPtr("d"), Difficulty: strPtr("Fácil"),
			Category: strPtr("c"), Icon: strPtr("i"),
		})

		for i := 0; i < 3; i++ {
			if _, err := svc.Submit(ctx, submission(c.ID)); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
		}

		got, _ := repo.GetChallenge(ctx, c.ID)
		if got.Participants != 3 {
			t.Errorf("expected 3 participants, got %d", got.Participants)
		}
	})

	t.Run("unknown challenge accepted by default", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, Options{})
		sub, err := svc.Submit(ctx, submission(404))
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if sub.Status != models.SubmissionPending {
			t.Errorf("expected pending status, got %q", sub.Status)
		}
	})

	t.Run("unknown challenge rejected when required", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t, Options{RequireChallenge: true})
		if _, err := svc.Submit(ctx, submission(404)); !errors.Is(err, ErrChallengeNotFound) {
			t.Errorf("expected ErrChallengeNotFound, got %v", err)
		}
		if subs, _ := repo.ListSubmissionsByChallenge(ctx, 404); len(subs) != 0 {
			t.Errorf("expected no stored submissions, got %d", len(subs))
		}
	})
}

func TestService_LeaderboardCache(t *testing.T) {
	ctx := context.Background()
	svc, _, c, _ := newTestService(t, Options{LeaderboardTTL: time.Minute})

	ana, _ := svc.Register(ctx, registration("ana", "ana@x.pt"))
	bia, _ := svc.Register(ctx, registration("bia", "bia@x.pt"))

	if _, err := svc.AwardPoints(ctx, bia.ID, models.PointsDelta{Points: intPtr(40)}); err != nil {
		t.Fatalf("AwardPoints failed: %v", err)
	}

	first, err := svc.Leaderboard(ctx, models.MetricTotalPoints, 0)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(first) != 2 || first[0].UserID != bia.ID {
		t.Fatalf("unexpected ranking: %+v", first)
	}
	if c.sets != 1 {
		t.Fatalf("expected result to be cached once, got %d sets", c.sets)
	}

	cached, _ := svc.Leaderboard(ctx, models.MetricTotalPoints, 0)
	if c.sets != 1 || len(cached) != 2 || cached[0].User == nil || cached[0].User.Username != "bia" {
		t.Errorf("expected cached ranking, got %+v (sets=%d)", cached, c.sets)
	}

	// Awarding points must invalidate so the next read reflects the change.
	if _, err := svc.AwardPoints(ctx, ana.ID, models.PointsDelta{Points: intPtr(100), Medal: true}); err != nil {
		t.Fatalf("AwardPoints failed: %v", err)
	}
	fresh, _ := svc.Leaderboard(ctx, models.MetricTotalPoints, 0)
	if fresh[0].UserID != ana.ID || fresh[0].Medals != 1 {
		t.Errorf("expected ana first after award, got %+v", fresh[0])
	}
}

func TestService_AwardPointsUnknownUser(t *testing.T) {
	svc, _, _, rec := newTestService(t, Options{})
	entry, err := svc.AwardPoints(context.Background(), 99, models.PointsDelta{Points: intPtr(5)})
	if err != nil || entry != nil {
		t.Errorf("expected nil, nil, got %+v, %v", entry, err)
	}
	if len(rec.types()) != 0 {
		t.Errorf("expected no events, got %v", rec.types())
	}
}

func TestService_ResetWeeklyPoints(t *testing.T) {
	ctx := context.Background()
	svc, _, _, rec := newTestService(t, Options{LeaderboardTTL: time.Minute})

	ana, _ := svc.Register(ctx, registration("ana", "ana@x.pt"))
	svc.AwardPoints(ctx, ana.ID, models.PointsDelta{Points: intPtr(30)})

	weekly, _ := svc.Leaderboard(ctx, models.MetricWeeklyPoints, 0)
	if weekly[0].WeeklyPoints != 30 {
		t.Fatalf("expected 30 weekly points, got %d", weekly[0].WeeklyPoints)
	}

	n, err := svc.ResetWeeklyPoints(ctx)
	if err != nil || n != 1 {
		t.Fatalf("ResetWeeklyPoints = %d, %v", n, err)
	}

	weekly, _ = svc.Leaderboard(ctx, models.MetricWeeklyPoints, 0)
	if weekly[0].WeeklyPoints != 0 || weekly[0].TotalPoints != 30 {
		t.Errorf("unexpected entry after reset: %+v", weekly[0])
	}

	types := rec.types()
	if types[len(types)-1] != realtime.EventWeeklyReset {
		t.Errorf("expected weekly_reset event last, got %v", types)
	}
}
