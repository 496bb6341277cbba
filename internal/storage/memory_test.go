package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/terra-clan/academy-api/internal/models"
)

func TestMemoryRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Repository {
		return NewMemoryRepository()
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	c, _ := repo.CreateChallenge(ctx, challengeInput("Previsão de Séries Temporais"))
	c.Tags[0] = "mutated"
	c.Participants = 42

	got, _ := repo.GetChallenge(ctx, c.ID)
	if got.Tags[0] != "Python" || got.Participants != 0 {
		t.Errorf("stored challenge changed through returned copy: %+v", got)
	}

	in := userInput("ana", "ana@x.pt")
	in.Institution = strPtr("UP")
	u, _ := repo.CreateUser(ctx, in)
	*u.Institution = "mutated"
	*in.Institution = "mutated too"

	stored, _ := repo.GetUser(ctx, u.ID)
	if *stored.Institution != "UP" {
		t.Errorf("stored institution changed: %q", *stored.Institution)
	}
}

func TestMemoryRepository_Clock(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository(WithClock(func() time.Time { return fixed }))

	c, _ := repo.CreateChallenge(ctx, challengeInput("c"))
	if !c.StartDate.Equal(fixed) {
		t.Errorf("expected startDate %v, got %v", fixed, c.StartDate)
	}

	start := fixed.Add(-24 * time.Hour)
	in := challengeInput("d")
	in.StartDate = &start
	d, _ := repo.CreateChallenge(ctx, in)
	if !d.StartDate.Equal(start) {
		t.Errorf("expected explicit startDate %v, got %v", start, d.StartDate)
	}

	p, _ := repo.UpsertUserProgress(ctx, models.ProgressInput{UserID: intPtr(1), LearningPathID: intPtr(2)})
	if !p.LastAccessedAt.Equal(fixed) {
		t.Errorf("expected lastAccessedAt %v, got %v", fixed, p.LastAccessedAt)
	}
}

func TestMemoryRepository_ModuleOrderTiesKeepInsertion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var ids []int
	for _, title := range []string{"first", "second", "third"} {
		m, _ := repo.CreateModule(ctx, models.ModuleInput{
			LearningPathID:   intPtr(1),
			Title:            strPtr(title),
			Description:      strPtr("d"),
			Content:          strPtr("c"),
			Order:            intPtr(1),
			EstimatedMinutes: intPtr(10),
		})
		ids = append(ids, m.ID)
	}

	modules, _ := repo.ListModulesByLearningPath(ctx, 1)
	for i, m := range modules {
		if m.ID != ids[i] {
			t.Errorf("position %d: expected module %d, got %d", i, ids[i], m.ID)
		}
	}
}

func TestMemoryRepository_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every goroutine races for the same username.
			_, err := repo.CreateUser(ctx, userInput("ana", fmt.Sprintf("ana%d@x.pt", i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
		}
	}
	if created != 1 {
		t.Errorf("expected exactly one registration to win, got %d", created)
	}

	users, _ := repo.ListUsers(ctx)
	if len(users) != 1 {
		t.Errorf("expected 1 stored user, got %d", len(users))
	}
}
