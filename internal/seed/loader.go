// Package seed loads the starter catalog (learning paths, modules and
// challenges) from YAML and writes it into an empty repository.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/academy-api/internal/models"
	"github.com/terra-clan/academy-api/internal/storage"
)

//go:embed seed.yaml
var defaultCatalog []byte

// Catalog is the parsed seed file
type Catalog struct {
	LearningPaths []pathFile      `yaml:"learning_paths"`
	Challenges    []challengeFile `yaml:"challenges"`
}

// Result counts what Apply created
type Result struct {
	LearningPaths int
	Modules       int
	Challenges    int
	Skipped       bool
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFromFile reads a catalog from a YAML file
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, p := range cat.LearningPaths {
		if p.Title == "" {
			return nil, fmt.Errorf("learning path %d: title is required", i)
		}
		if p.Icon == "" {
			return nil, fmt.Errorf("learning path %q: icon is required", p.Title)
		}
		for j, m := range p.Modules {
			if m.Title == "" {
				return nil, fmt.Errorf("learning path %q module %d: title is required", p.Title, j)
			}
		}
	}

	for i, c := range cat.Challenges {
		if c.Title == "" {
			return nil, fmt.Errorf("challenge %d: title is required", i)
		}
		if c.EndsIn != "" {
			if _, err := time.ParseDuration(c.EndsIn); err != nil {
				return nil, fmt.Errorf("challenge %q: invalid ends_in: %w", c.Title, err)
			}
		}
	}

	return &cat, nil
}

// ModuleCount returns the number of modules across all paths
func (c *Catalog) ModuleCount() int {
	n := 0
	for _, p := range c.LearningPaths {
		n += len(p.Modules)
	}
	return n
}

// Apply writes the catalog into repo unless learning paths already exist.
// Challenge windows start at now.
func Apply(ctx context.Context, repo storage.Repository, cat *Catalog, now time.Time) (Result, error) {
	var res Result

	existing, err := repo.ListLearningPaths(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to check existing catalog: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("catalog already present, skipping seed", "learning_paths", len(existing))
		res.Skipped = true
		return res, nil
	}

	for _, pf := range cat.LearningPaths {
		path, err := repo.CreateLearningPath(ctx, pf.input())
		if err != nil {
			return res, fmt.Errorf("failed to seed learning path %q: %w", pf.Title, err)
		}
		res.LearningPaths++

		for _, mf := range pf.Modules {
			if _, err := repo.CreateModule(ctx, mf.input(path.ID)); err != nil {
				return res, fmt.Errorf("failed to seed module %q: %w", mf.Title, err)
			}
			res.Modules++
		}
	}

	for _, cf := range cat.Challenges {
		if _, err := repo.CreateChallenge(ctx, cf.input(now)); err != nil {
			return res, fmt.Errorf("failed to seed challenge %q: %w", cf.Title, err)
		}
		res.Challenges++
	}

	slog.Info("catalog seeded",
		"learning_paths", res.LearningPaths,
		"modules", res.Modules,
		"challenges", res.Challenges,
	)
	return res, nil
}

// --- YAML file structs ---

type pathFile struct {
	Title          string       `yaml:"title"`
	Description    string       `yaml:"description"`
	ImageURL       string       `yaml:"image_url"`
	Level          string       `yaml:"level"`
	Category       string       `yaml:"category"`
	TotalModules   int          `yaml:"total_modules"`
	EstimatedHours int          `yaml:"estimated_hours"`
	PrimaryColor   string       `yaml:"primary_color"`
	Icon           string       `yaml:"icon"`
	Modules        []moduleFile `yaml:"modules"`
}

func (p pathFile) input() models.LearningPathInput {
	return models.LearningPathInput{
		Title:          &p.Title,
		Description:    &p.Description,
		ImageURL:       optional(p.ImageURL),
		Level:          &p.Level,
		Category:       &p.Category,
		TotalModules:   &p.TotalModules,
		EstimatedHours: &p.EstimatedHours,
		PrimaryColor:   optional(p.PrimaryColor),
		Icon:           &p.Icon,
	}
}

type moduleFile struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	Content          string `yaml:"content"`
	Order            int    `yaml:"order"`
	EstimatedMinutes int    `yaml:"estimated_minutes"`
}

func (m moduleFile) input(pathID int) models.ModuleInput {
	return models.ModuleInput{
		LearningPathID:   &pathID,
		Title:            &m.Title,
		Description:      &m.Description,
		Content:          &m.Content,
		Order:            &m.Order,
		EstimatedMinutes: &m.EstimatedMinutes,
	}
}

type challengeFile struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Difficulty   string   `yaml:"difficulty"`
	Category     string   `yaml:"category"`
	Tags         []string `yaml:"tags"`
	EndsIn       string   `yaml:"ends_in"`
	Icon         string   `yaml:"icon"`
	PrimaryColor string   `yaml:"primary_color"`
}

func (c challengeFile) input(now time.Time) models.ChallengeInput {
	in := models.ChallengeInput{
		Title:        &c.Title,
		Description:  &c.Description,
		Difficulty:   &c.Difficulty,
		Category:     &c.Category,
		Tags:         c.Tags,
		StartDate:    &now,
		Icon:         &c.Icon,
		PrimaryColor: optional(c.PrimaryColor),
	}
	// ends_in was validated by Parse
	if d, err := time.ParseDuration(c.EndsIn); err == nil && c.EndsIn != "" {
		end := now.Add(d)
		in.EndDate = &end
	}
	return in
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
