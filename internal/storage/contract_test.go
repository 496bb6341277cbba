package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/terra-clan/academy-api/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func userInput(username, email string) models.UserInput {
	return models.UserInput{
		Username: strPtr(username),
		Password: strPtr("secret1"),
		Email:    strPtr(email),
		Name:     strPtr(username),
	}
}

func pathInput(title string) models.LearningPathInput {
	return models.LearningPathInput{
		Title:          strPtr(title),
		Description:    strPtr("desc"),
		Level:          strPtr("Para Iniciantes"),
		Category:       strPtr("Mathematics"),
		TotalModules:   intPtr(3),
		EstimatedHours: intPtr(10),
		Icon:           strPtr("fa-square-root-alt"),
	}
}

func challengeInput(title string) models.ChallengeInput {
	return models.ChallengeInput{
		Title:       strPtr(title),
		Description: strPtr("desc"),
		Difficulty:  strPtr("Médio"),
		Category:    strPtr("Machine Learning"),
		Tags:        []string{"Python"},
		Icon:        strPtr("fa-code"),
	}
}

// runRepositoryContract checks behavior every Repository must share.
// newRepo must return an empty repository for each call.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("user create then get", func(t *testing.T) {
		repo := newRepo(t)
		in := userInput("ana", "ana@x.pt")
		in.Institution = strPtr("Universidade do Porto")

		created, err := repo.CreateUser(ctx, in)
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if created.Role != models.RoleStudent {
			t.Errorf("expected default role student, got %q", created.Role)
		}

		got, err := repo.GetUser(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if !got.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("createdAt mismatch: %v vs %v", got.CreatedAt, created.CreatedAt)
		}
		got.CreatedAt = created.CreatedAt
		if !reflect.DeepEqual(got, created) {
			t.Errorf("GetUser = %+v, want %+v", got, created)
		}

		byName, _ := repo.GetUserByUsername(ctx, "ana")
		byEmail, _ := repo.GetUserByEmail(ctx, "ana@x.pt")
		if byName == nil || byEmail == nil || byName.ID != created.ID || byEmail.ID != created.ID {
			t.Errorf("secondary lookups did not resolve user %d", created.ID)
		}

		missing, err := repo.GetUser(ctx, created.ID+100)
		if err != nil || missing != nil {
			t.Errorf("expected nil, nil for missing user, got %v, %v", missing, err)
		}
	})

	t.Run("user uniqueness", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.CreateUser(ctx, userInput("ana", "ana@x.pt")); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if _, err := repo.CreateUser(ctx, userInput("ana", "other@x.pt")); !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
		if _, err := repo.CreateUser(ctx, userInput("bia", "ana@x.pt")); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
		users, _ := repo.ListUsers(ctx)
		if len(users) != 1 {
			t.Errorf("expected 1 user, got %d", len(users))
		}
	})

	t.Run("ids strictly increase and are not reused", func(t *testing.T) {
		repo := newRepo(t)
		a, _ := repo.CreateLearningPath(ctx, pathInput("a"))
		b, _ := repo.CreateLearningPath(ctx, pathInput("b"))
		if b.ID <= a.ID {
			t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
		}

		deleted, err := repo.DeleteLearningPath(ctx, b.ID)
		if err != nil || !deleted {
			t.Fatalf("DeleteLearningPath = %v, %v", deleted, err)
		}
		c, _ := repo.CreateLearningPath(ctx, pathInput("c"))
		if c.ID <= b.ID {
			t.Errorf("id %d reused after delete of %d", c.ID, b.ID)
		}
	})

	t.Run("update merges and delete reports absence", func(t *testing.T) {
		repo := newRepo(t)
		p, _ := repo.CreateLearningPath(ctx, pathInput("Álgebra"))

		updated, err := repo.UpdateLearningPath(ctx, p.ID, models.LearningPathInput{Title: strPtr("Álgebra II")})
		if err != nil {
			t.Fatalf("UpdateLearningPath failed: %v", err)
		}
		if updated.Title != "Álgebra II" || updated.Description != p.Description || updated.TotalModules != p.TotalModules {
			t.Errorf("unexpected merge result: %+v", updated)
		}

		none, err := repo.UpdateLearningPath(ctx, p.ID+100, models.LearningPathInput{Title: strPtr("x")})
		if err != nil || none != nil {
			t.Errorf("expected nil, nil for missing path, got %v, %v", none, err)
		}

		if ok, _ := repo.DeleteLearningPath(ctx, p.ID); !ok {
			t.Error("expected first delete to succeed")
		}
		if ok, _ := repo.DeleteLearningPath(ctx, p.ID); ok {
			t.Error("expected second delete to report false")
		}
		if got, _ := repo.GetLearningPath(ctx, p.ID); got != nil {
			t.Errorf("expected deleted path to be gone, got %+v", got)
		}
	})

	t.Run("modules ordered by order field", func(t *testing.T) {
		repo := newRepo(t)
		for _, order := range []int{3, 1, 2} {
			_, err := repo.CreateModule(ctx, models.ModuleInput{
				LearningPathID:   intPtr(1),
				Title:            strPtr("m"),
				Description:      strPtr("d"),
				Content:          strPtr("<p>c</p>"),
				Order:            intPtr(order),
				EstimatedMinutes: intPtr(30),
			})
			if err != nil {
				t.Fatalf("CreateModule failed: %v", err)
			}
		}

		modules, err := repo.ListModulesByLearningPath(ctx, 1)
		if err != nil {
			t.Fatalf("ListModulesByLearningPath failed: %v", err)
		}
		var orders []int
		for _, m := range modules {
			orders = append(orders, m.Order)
		}
		if !reflect.DeepEqual(orders, []int{1, 2, 3}) {
			t.Errorf("expected orders [1 2 3], got %v", orders)
		}

		other, _ := repo.ListModulesByLearningPath(ctx, 2)
		if len(other) != 0 {
			t.Errorf("expected no modules for path 2, got %d", len(other))
		}
	})

	t.Run("progress upsert keeps one record", func(t *testing.T) {
		repo := newRepo(t)
		first, err := repo.UpsertUserProgress(ctx, models.ProgressInput{
			UserID: intPtr(1), LearningPathID: intPtr(1), CompletedModules: intPtr(2),
		})
		if err != nil {
			t.Fatalf("UpsertUserProgress failed: %v", err)
		}
		if first.IsCompleted {
			t.Error("expected isCompleted to default to false")
		}

		second, err := repo.UpsertUserProgress(ctx, models.ProgressInput{
			UserID: intPtr(1), LearningPathID: intPtr(1), CompletedModules: intPtr(5), IsCompleted: boolPtr(true),
		})
		if err != nil {
			t.Fatalf("UpsertUserProgress failed: %v", err)
		}
		if second.ID != first.ID || second.CompletedModules != 5 || !second.IsCompleted {
			t.Errorf("expected merged record with id %d, got %+v", first.ID, second)
		}
		if !second.LastAccessedAt.Equal(first.LastAccessedAt) {
			t.Errorf("lastAccessedAt changed on update: %v -> %v", first.LastAccessedAt, second.LastAccessedAt)
		}

		all, _ := repo.ListUserProgress(ctx, 1)
		if len(all) != 1 {
			t.Errorf("expected one progress record, got %d", len(all))
		}
		got, _ := repo.GetUserProgress(ctx, 1, 1)
		if got == nil || got.CompletedModules != 5 {
			t.Errorf("GetUserProgress = %+v", got)
		}
		if none, _ := repo.GetUserProgress(ctx, 1, 2); none != nil {
			t.Errorf("expected no progress for path 2, got %+v", none)
		}
	})

	t.Run("participants and submissions", func(t *testing.T) {
		repo := newRepo(t)
		c, err := repo.CreateChallenge(ctx, challengeInput("Classificação"))
		if err != nil {
			t.Fatalf("CreateChallenge failed: %v", err)
		}
		if c.Participants != 0 {
			t.Errorf("expected 0 participants, got %d", c.Participants)
		}

		for i := 0; i < 3; i++ {
			if err := repo.IncrementParticipants(ctx, c.ID); err != nil {
				t.Fatalf("IncrementParticipants failed: %v", err)
			}
			_, err := repo.CreateSubmission(ctx, models.SubmissionInput{
				UserID: intPtr(1), ChallengeID: intPtr(c.ID), Solution: strPtr("print(1)"),
			})
			if err != nil {
				t.Fatalf("CreateSubmission failed: %v", err)
			}
		}
		if err := repo.IncrementParticipants(ctx, c.ID+100); err != nil {
			t.Errorf("expected no error for unknown challenge, got %v", err)
		}

		got, _ := repo.GetChallenge(ctx, c.ID)
		if got.Participants != 3 {
			t.Errorf("expected 3 participants, got %d", got.Participants)
		}

		subs, _ := repo.ListSubmissionsByChallenge(ctx, c.ID)
		if len(subs) != 3 {
			t.Fatalf("expected 3 submissions, got %d", len(subs))
		}
		if subs[0].Status != models.SubmissionPending || subs[0].Score != nil {
			t.Errorf("unexpected submission defaults: %+v", subs[0])
		}

		reviewed, err := repo.UpdateSubmissionStatus(ctx, subs[0].ID, models.SubmissionAccepted, intPtr(90))
		if err != nil {
			t.Fatalf("UpdateSubmissionStatus failed: %v", err)
		}
		if reviewed.Status != models.SubmissionAccepted || reviewed.Score == nil || *reviewed.Score != 90 {
			t.Errorf("unexpected review result: %+v", reviewed)
		}

		byUser, _ := repo.ListSubmissionsByUser(ctx, 1)
		if len(byUser) != 3 {
			t.Errorf("expected 3 submissions for user, got %d", len(byUser))
		}
	})

	t.Run("leaderboard ranking and limit", func(t *testing.T) {
		repo := newRepo(t)
		for i, points := range []int{10, 50, 30} {
			u, err := repo.CreateUser(ctx, userInput(string(rune('a'+i)), string(rune('a'+i))+"@x.pt"))
			if err != nil {
				t.Fatalf("CreateUser failed: %v", err)
			}
			if _, err := repo.CreateLeaderboardEntry(ctx, u.ID); err != nil {
				t.Fatalf("CreateLeaderboardEntry failed: %v", err)
			}
			if _, err := repo.ApplyLeaderboardDelta(ctx, u.ID, models.PointsDelta{Points: intPtr(points)}); err != nil {
				t.Fatalf("ApplyLeaderboardDelta failed: %v", err)
			}
		}

		all, err := repo.ListLeaderboard(ctx, models.MetricTotalPoints, 0)
		if err != nil {
			t.Fatalf("ListLeaderboard failed: %v", err)
		}
		var totals []int
		for _, e := range all {
			totals = append(totals, e.TotalPoints)
			if e.User == nil || e.User.ID != e.UserID {
				t.Errorf("entry %d not joined with its user", e.ID)
			}
		}
		if !reflect.DeepEqual(totals, []int{50, 30, 10}) {
			t.Errorf("expected [50 30 10], got %v", totals)
		}

		top, _ := repo.ListLeaderboard(ctx, models.MetricTotalPoints, 2)
		if len(top) != 2 || top[0].TotalPoints != 50 || top[1].TotalPoints != 30 {
			t.Errorf("unexpected limited leaderboard: %+v", top)
		}
	})

	t.Run("leaderboard delta and weekly reset", func(t *testing.T) {
		repo := newRepo(t)
		u, _ := repo.CreateUser(ctx, userInput("ana", "ana@x.pt"))
		if _, err := repo.CreateLeaderboardEntry(ctx, u.ID); err != nil {
			t.Fatalf("CreateLeaderboardEntry failed: %v", err)
		}
		if _, err := repo.CreateLeaderboardEntry(ctx, u.ID); !errors.Is(err, ErrLeaderboardEntryExists) {
			t.Errorf("expected ErrLeaderboardEntryExists, got %v", err)
		}

		e, err := repo.ApplyLeaderboardDelta(ctx, u.ID, models.PointsDelta{
			Points: intPtr(25), ChallengeCompleted: true, Medal: true,
		})
		if err != nil {
			t.Fatalf("ApplyLeaderboardDelta failed: %v", err)
		}
		if e.TotalPoints != 25 || e.WeeklyPoints != 25 || e.ChallengesCompleted != 1 || e.Medals != 1 {
			t.Errorf("unexpected entry after delta: %+v", e)
		}

		missing, err := repo.ApplyLeaderboardDelta(ctx, u.ID+100, models.PointsDelta{Points: intPtr(1)})
		if err != nil || missing != nil {
			t.Errorf("expected nil, nil for user without entry, got %v, %v", missing, err)
		}

		n, err := repo.ResetWeeklyPoints(ctx)
		if err != nil || n != 1 {
			t.Errorf("ResetWeeklyPoints = %d, %v; want 1, nil", n, err)
		}
		e, _ = repo.GetLeaderboardEntry(ctx, u.ID)
		if e.WeeklyPoints != 0 || e.TotalPoints != 25 {
			t.Errorf("unexpected entry after reset: %+v", e)
		}

		weekly, _ := repo.ListLeaderboard(ctx, models.MetricWeeklyPoints, 0)
		if len(weekly) != 1 || weekly[0].WeeklyPoints != 0 {
			t.Errorf("unexpected weekly leaderboard: %+v", weekly)
		}
	})

	t.Run("leaderboard entry without user", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.CreateLeaderboardEntry(ctx, 999); err != nil {
			t.Fatalf("CreateLeaderboardEntry failed: %v", err)
		}
		ranked, err := repo.ListLeaderboard(ctx, models.MetricTotalPoints, 0)
		if err != nil {
			t.Fatalf("ListLeaderboard failed: %v", err)
		}
		if len(ranked) != 1 || ranked[0].User != nil {
			t.Errorf("expected one entry with nil user, got %+v", ranked)
		}
	})
}
