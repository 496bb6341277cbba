package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/terra-clan/academy-api/internal/storage"
)

func TestDefault(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	if len(cat.LearningPaths) != 5 {
		t.Errorf("expected 5 learning paths, got %d", len(cat.LearningPaths))
	}
	if len(cat.Challenges) != 3 {
		t.Errorf("expected 3 challenges, got %d", len(cat.Challenges))
	}
	if cat.ModuleCount() != 12 {
		t.Errorf("expected 12 modules, got %d", cat.ModuleCount())
	}

	first := cat.LearningPaths[0]
	if first.Title != "Fundamentos de IA" || first.Level != "Para Iniciantes" {
		t.Errorf("unexpected first path: %+v", first)
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	repo := storage.NewMemoryRepository()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	res, err := Apply(ctx, repo, cat, now)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Skipped || res.LearningPaths != 5 || res.Modules != 12 || res.Challenges != 3 {
		t.Errorf("unexpected result: %+v", res)
	}

	modules, _ := repo.ListModulesByLearningPath(ctx, 1)
	if len(modules) != 3 || modules[0].Title != "Introdução à IA" {
		t.Errorf("unexpected modules for path 1: %+v", modules)
	}

	challenges, _ := repo.ListChallenges(ctx)
	wantEnds := []time.Duration{120 * time.Hour, 72 * time.Hour, 168 * time.Hour}
	for i, c := range challenges {
		if !c.StartDate.Equal(now) {
			t.Errorf("challenge %d: expected start %v, got %v", c.ID, now, c.StartDate)
		}
		if c.EndDate == nil || !c.EndDate.Equal(now.Add(wantEnds[i])) {
			t.Errorf("challenge %d: unexpected end date %v", c.ID, c.EndDate)
		}
		if c.Participants != 0 {
			t.Errorf("challenge %d: expected 0 participants", c.ID)
		}
	}

	again, err := Apply(ctx, repo, cat, now)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if !again.Skipped {
		t.Error("expected second Apply to skip a populated store")
	}
	paths, _ := repo.ListLearningPaths(ctx)
	if len(paths) != 5 {
		t.Errorf("expected 5 paths after second Apply, got %d", len(paths))
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "seed.yaml")
	os.WriteFile(valid, []byte(`
learning_paths:
  - title: Estatística
    icon: fa-chart-bar
    modules:
      - title: Médias
        order: 1
challenges:
  - title: Regressão
    icon: fa-code
`), 0o644)

	cat, err := LoadFromFile(valid)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if len(cat.LearningPaths) != 1 || cat.ModuleCount() != 1 || len(cat.Challenges) != 1 {
		t.Errorf("unexpected catalog: %+v", cat)
	}

	tests := []struct {
		name string
		body string
	}{
		{"path without title", "learning_paths:\n  - icon: fa-x\n"},
		{"bad ends_in", "challenges:\n  - title: c\n    ends_in: tomorrow\n"},
		{"not yaml", "learning_paths: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			os.WriteFile(path, []byte(tt.body), 0o644)
			if _, err := LoadFromFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
