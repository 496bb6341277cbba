package storage

import (
	"slices"

	"github.com/terra-clan/academy-api/internal/models"
)

// table is an id-keyed collection with a monotonic id counter.
// IDs start at 1 and are never reused, even after delete.
// Callers hold the repository lock.
type table[T any] struct {
	rows   map[int]T
	nextID int
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T), nextID: 1}
}

func (t *table[T]) insert(build func(id int) T) T {
	id := t.nextID
	t.nextID++
	row := build(id)
	t.rows[id] = row
	return row
}

func (t *table[T]) get(id int) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) update(id int, mutate func(*T)) (T, bool) {
	row, ok := t.rows[id]
	if !ok {
		return row, false
	}
	mutate(&row)
	t.rows[id] = row
	return row, true
}

func (t *table[T]) delete(id int) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// filter returns the rows accepted by keep in id order. A nil keep accepts all.
func (t *table[T]) filter(keep func(T) bool) []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func mapRows[T, R any](rows []T, fn func(T) R) []R {
	out := make([]R, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}

func ptrTo[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// The clone helpers detach pointer and slice fields so callers cannot reach
// stored state through a returned entity.

func cloneUser(u models.User) *models.User {
	u.Institution = clonePtr(u.Institution)
	u.AvatarURL = clonePtr(u.AvatarURL)
	return &u
}

func clonePath(p models.LearningPath) *models.LearningPath {
	p.ImageURL = clonePtr(p.ImageURL)
	p.PrimaryColor = clonePtr(p.PrimaryColor)
	return &p
}

func cloneChallenge(c models.Challenge) *models.Challenge {
	c.Tags = slices.Clone(c.Tags)
	c.EndDate = clonePtr(c.EndDate)
	c.PrimaryColor = clonePtr(c.PrimaryColor)
	return &c
}

func cloneSubmission(s models.ChallengeSubmission) *models.ChallengeSubmission {
	s.Score = clonePtr(s.Score)
	return &s
}
