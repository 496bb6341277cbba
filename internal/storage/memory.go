package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/terra-clan/academy-api/internal/models"
)

// MemoryRepository implements Repository with process-local maps.
// State lives for the lifetime of the value; nothing is persisted.
type MemoryRepository struct {
	mu  sync.RWMutex
	now func() time.Time

	users        *table[models.User]
	usersByName  map[string]int
	usersByEmail map[string]int

	paths   *table[models.LearningPath]
	modules *table[models.Module]

	progress       map[progressKey]models.UserProgress
	progressNextID int

	challenges  *table[models.Challenge]
	submissions *table[models.ChallengeSubmission]

	leaderboard *table[models.LeaderboardEntry]
	entryByUser map[int]int
}

// progressKey is the composite identity of a progress record
type progressKey struct {
	userID         int
	learningPathID int
}

// MemoryOption configures a MemoryRepository
type MemoryOption func(*MemoryRepository)

// WithClock overrides the time source used for server-set timestamps
func WithClock(now func() time.Time) MemoryOption {
	return func(r *MemoryRepository) {
		r.now = now
	}
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository(opts ...MemoryOption) *MemoryRepository {
	r := &MemoryRepository{
		now:            time.Now,
		users:          newTable[models.User](),
		usersByName:    make(map[string]int),
		usersByEmail:   make(map[string]int),
		paths:          newTable[models.LearningPath](),
		modules:        newTable[models.Module](),
		progress:       make(map[progressKey]models.UserProgress),
		progressNextID: 1,
		challenges:     newTable[models.Challenge](),
		submissions:    newTable[models.ChallengeSubmission](),
		leaderboard:    newTable[models.LeaderboardEntry](),
		entryByUser:    make(map[int]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ping always succeeds for the in-memory store
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

// --- Users ---

// CreateUser stores a new user. Username and email must be unused.
func (r *MemoryRepository) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, email := deref(in.Username), deref(in.Email)
	if _, taken := r.usersByName[username]; taken {
		return nil, ErrUsernameTaken
	}
	if _, taken := r.usersByEmail[email]; taken {
		return nil, ErrEmailTaken
	}

	role := models.RoleStudent
	if in.Role != nil {
		role = models.Role(*in.Role)
	}

	u := r.users.insert(func(id int) models.User {
		return models.User{
			ID:          id,
			Username:    username,
			Password:    deref(in.Password),
			Email:       email,
			Name:        deref(in.Name),
			Institution: clonePtr(in.Institution),
			Role:        role,
			AvatarURL:   clonePtr(in.AvatarURL),
			CreatedAt:   r.now(),
		}
	})
	r.usersByName[u.Username] = u.ID
	r.usersByEmail[u.Email] = u.ID

	return cloneUser(u), nil
}

// GetUser retrieves a user by ID
func (r *MemoryRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users.get(id)
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// GetUserByUsername retrieves a user by exact username
func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usersByName[username]
	if !ok {
		return nil, nil
	}
	u, _ := r.users.get(id)
	return cloneUser(u), nil
}

// GetUserByEmail retrieves a user by exact email
func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usersByEmail[email]
	if !ok {
		return nil, nil
	}
	u, _ := r.users.get(id)
	return cloneUser(u), nil
}

// ListUsers returns all users in registration order
func (r *MemoryRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mapRows(r.users.filter(nil), cloneUser), nil
}

// --- Learning paths ---

// CreateLearningPath stores a new learning path
func (r *MemoryRepository) CreateLearningPath(ctx context.Context, in models.LearningPathInput) (*models.LearningPath, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.paths.insert(func(id int) models.LearningPath {
		p := models.LearningPath{ID: id}
		in.Apply(&p)
		return p
	})
	return clonePath(p), nil
}

// GetLearningPath retrieves a learning path by ID
func (r *MemoryRepository) GetLearningPath(ctx context.Context, id int) (*models.LearningPath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.paths.get(id)
	if !ok {
		return nil, nil
	}
	return clonePath(p), nil
}

// ListLearningPaths returns all learning paths in creation order
func (r *MemoryRepository) ListLearningPaths(ctx context.Context) ([]*models.LearningPath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mapRows(r.paths.filter(nil), clonePath), nil
}

// UpdateLearningPath merges the set fields of in onto an existing path
func (r *MemoryRepository) UpdateLearningPath(ctx context.Context, id int, in models.LearningPathInput) (*models.LearningPath, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.paths.update(id, in.Apply)
	if !ok {
		return nil, nil
	}
	return clonePath(p), nil
}

// DeleteLearningPath removes a learning path. Its modules are left in place.
func (r *MemoryRepository) DeleteLearningPath(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths.delete(id), nil
}

// --- Modules ---

// CreateModule stores a new module. The learning path is not checked.
func (r *MemoryRepository) CreateModule(ctx context.Context, in models.ModuleInput) (*models.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.modules.insert(func(id int) models.Module {
		m := models.Module{ID: id}
		in.Apply(&m)
		return m
	})
	return &m, nil
}

// GetModule retrieves a module by ID
func (r *MemoryRepository) GetModule(ctx context.Context, id int) (*models.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules.get(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// ListModulesByLearningPath returns the modules of a path ordered by Order.
// Modules sharing an Order value stay in creation order.
func (r *MemoryRepository) ListModulesByLearningPath(ctx context.Context, learningPathID int) ([]*models.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.modules.filter(func(m models.Module) bool {
		return m.LearningPathID == learningPathID
	})
	slices.SortStableFunc(rows, func(a, b models.Module) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return mapRows(rows, ptrTo[models.Module]), nil
}

// UpdateModule merges the set fields of in onto an existing module
func (r *MemoryRepository) UpdateModule(ctx context.Context, id int, in models.ModuleInput) (*models.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules.update(id, in.Apply)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// DeleteModule removes a module
func (r *MemoryRepository) DeleteModule(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.modules.delete(id), nil
}

// --- Progress ---

// UpsertUserProgress creates the record for (userId, learningPathId) or merges
// into the existing one. An existing record keeps its ID and LastAccessedAt.
func (r *MemoryRepository) UpsertUserProgress(ctx context.Context, in models.ProgressInput) (*models.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey{userID: deref(in.UserID), learningPathID: deref(in.LearningPathID)}
	p, ok := r.progress[key]
	if !ok {
		p = models.UserProgress{
			ID:             r.progressNextID,
			UserID:         key.userID,
			LearningPathID: key.learningPathID,
			LastAccessedAt: r.now(),
		}
		r.progressNextID++
	}
	in.Apply(&p)
	r.progress[key] = p

	return &p, nil
}

// GetUserProgress retrieves the progress of one user on one path
func (r *MemoryRepository) GetUserProgress(ctx context.Context, userID, learningPathID int) (*models.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.progress[progressKey{userID: userID, learningPathID: learningPathID}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListUserProgress returns every progress record of a user in creation order
func (r *MemoryRepository) ListUserProgress(ctx context.Context, userID int) ([]*models.UserProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rows []models.UserProgress
	for key, p := range r.progress {
		if key.userID == userID {
			rows = append(rows, p)
		}
	}
	slices.SortFunc(rows, func(a, b models.UserProgress) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return mapRows(rows, ptrTo[models.UserProgress]), nil
}

// --- Challenges ---

// CreateChallenge stores a new challenge with zero participants.
// StartDate defaults to now.
func (r *MemoryRepository) CreateChallenge(ctx context.Context, in models.ChallengeInput) (*models.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.challenges.insert(func(id int) models.Challenge {
		c := models.Challenge{ID: id, StartDate: r.now()}
		in.Apply(&c)
		return c
	})
	return cloneChallenge(c), nil
}

// GetChallenge retrieves a challenge by ID
func (r *MemoryRepository) GetChallenge(ctx context.Context, id int) (*models.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.challenges.get(id)
	if !ok {
		return nil, nil
	}
	return cloneChallenge(c), nil
}

// ListChallenges returns all challenges in creation order
func (r *MemoryRepository) ListChallenges(ctx context.Context) ([]*models.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return mapRows(r.challenges.filter(nil), cloneChallenge), nil
}

// UpdateChallenge merges the set fields of in onto an existing challenge
func (r *MemoryRepository) UpdateChallenge(ctx context.Context, id int, in models.ChallengeInput) (*models.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.challenges.update(id, in.Apply)
	if !ok {
		return nil, nil
	}
	return cloneChallenge(c), nil
}

// DeleteChallenge removes a challenge. Its submissions are left in place.
func (r *MemoryRepository) DeleteChallenge(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.challenges.delete(id), nil
}

// IncrementParticipants adds one participant to a challenge.
// Unknown IDs are ignored.
func (r *MemoryRepository) IncrementParticipants(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.challenges.update(id, func(c *models.Challenge) {
		c.Participants++
	})
	return nil
}

// --- Submissions ---

// CreateSubmission stores a new submission. Status defaults to pending.
func (r *MemoryRepository) CreateSubmission(ctx context.Context, in models.SubmissionInput) (*models.ChallengeSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := models.SubmissionPending
	if in.Status != nil {
		status = *in.Status
	}

	s := r.submissions.insert(func(id int) models.ChallengeSubmission {
		return models.ChallengeSubmission{
			ID:          id,
			UserID:      deref(in.UserID),
			ChallengeID: deref(in.ChallengeID),
			SubmittedAt: r.now(),
			Score:       clonePtr(in.Score),
			Status:      status,
			Solution:    deref(in.Solution),
		}
	})
	return cloneSubmission(s), nil
}

// GetSubmission retrieves a submission by ID
func (r *MemoryRepository) GetSubmission(ctx context.Context, id int) (*models.ChallengeSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.submissions.get(id)
	if !ok {
		return nil, nil
	}
	return cloneSubmission(s), nil
}

// ListSubmissionsByUser returns the submissions sent by a user
func (r *MemoryRepository) ListSubmissionsByUser(ctx context.Context, userID int) ([]*models.ChallengeSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.submissions.filter(func(s models.ChallengeSubmission) bool {
		return s.UserID == userID
	})
	return mapRows(rows, cloneSubmission), nil
}

// ListSubmissionsByChallenge returns the submissions sent for a challenge
func (r *MemoryRepository) ListSubmissionsByChallenge(ctx context.Context, challengeID int) ([]*models.ChallengeSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.submissions.filter(func(s models.ChallengeSubmission) bool {
		return s.ChallengeID == challengeID
	})
	return mapRows(rows, cloneSubmission), nil
}

// UpdateSubmissionStatus sets the status and, when given, the score
func (r *MemoryRepository) UpdateSubmissionStatus(ctx context.Context, id int, status string, score *int) (*models.ChallengeSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.submissions.update(id, func(s *models.ChallengeSubmission) {
		s.Status = status
		if score != nil {
			s.Score = clonePtr(score)
		}
	})
	if !ok {
		return nil, nil
	}
	return cloneSubmission(s), nil
}

// --- Leaderboard ---

// CreateLeaderboardEntry stores a zeroed entry for a user.
// Each user has at most one entry.
func (r *MemoryRepository) CreateLeaderboardEntry(ctx context.Context, userID int) (*models.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entryByUser[userID]; exists {
		return nil, ErrLeaderboardEntryExists
	}
	e := r.leaderboard.insert(func(id int) models.LeaderboardEntry {
		return models.LeaderboardEntry{ID: id, UserID: userID}
	})
	r.entryByUser[userID] = e.ID
	return &e, nil
}

// GetLeaderboardEntry retrieves the entry of a user
func (r *MemoryRepository) GetLeaderboardEntry(ctx context.Context, userID int) (*models.LeaderboardEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.entryByUser[userID]
	if !ok {
		return nil, nil
	}
	e, _ := r.leaderboard.get(id)
	return &e, nil
}

// ListLeaderboard ranks entries by metric, highest first, and joins each with
// its user. Equal scores keep creation order. limit <= 0 returns every entry.
func (r *MemoryRepository) ListLeaderboard(ctx context.Context, metric models.LeaderboardMetric, limit int) ([]*models.RankedEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.leaderboard.filter(nil)
	slices.SortStableFunc(rows, func(a, b models.LeaderboardEntry) int {
		return cmp.Compare(b.Score(metric), a.Score(metric))
	})
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	result := make([]*models.RankedEntry, 0, len(rows))
	for _, e := range rows {
		ranked := &models.RankedEntry{LeaderboardEntry: e}
		if u, ok := r.users.get(e.UserID); ok {
			ranked.User = cloneUser(u)
		}
		result = append(result, ranked)
	}
	return result, nil
}

// ApplyLeaderboardDelta adds points to both total and weekly counters and
// optionally bumps the completion and medal counters. Returns nil when the
// user has no entry; entries are never created here.
func (r *MemoryRepository) ApplyLeaderboardDelta(ctx context.Context, userID int, delta models.PointsDelta) (*models.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.entryByUser[userID]
	if !ok {
		return nil, nil
	}
	e, _ := r.leaderboard.update(id, func(e *models.LeaderboardEntry) {
		points := deref(delta.Points)
		e.TotalPoints += points
		e.WeeklyPoints += points
		if delta.ChallengeCompleted {
			e.ChallengesCompleted++
		}
		if delta.Medal {
			e.Medals++
		}
	})
	return &e, nil
}

// ResetWeeklyPoints zeroes WeeklyPoints on every entry and returns how many
// entries changed
func (r *MemoryRepository) ResetWeeklyPoints(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for id, e := range r.leaderboard.rows {
		if e.WeeklyPoints != 0 {
			e.WeeklyPoints = 0
			r.leaderboard.rows[id] = e
			changed++
		}
	}
	return changed, nil
}
