package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/academy-api/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN         string
	MaxConns    int32
	MinConns    int32
	MaxLifetime time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	} else {
		poolConfig.MaxConns = 25
	}

	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	} else {
		poolConfig.MinConns = 2
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// --- Users ---

const userColumns = `id, username, password, email, name, institution, role, avatar_url, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Name,
		&u.Institution, &role, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

// CreateUser inserts a user. Unique constraint violations map to
// ErrUsernameTaken and ErrEmailTaken.
func (r *PostgresRepository) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	role := string(models.RoleStudent)
	if in.Role != nil {
		role = *in.Role
	}

	query := `
		INSERT INTO users (username, password, email, name, institution, role, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query,
		deref(in.Username),
		deref(in.Password),
		deref(in.Email),
		deref(in.Name),
		in.Institution,
		role,
		in.AvatarURL,
	))
	if err != nil {
		switch uniqueViolation(err) {
		case "users_username_key":
			return nil, ErrUsernameTaken
		case "users_email_key":
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID
func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	return queryOne(ctx, r.pool, scanUser, "get user",
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByUsername retrieves a user by exact username
func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return queryOne(ctx, r.pool, scanUser, "get user by username",
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetUserByEmail retrieves a user by exact email
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return queryOne(ctx, r.pool, scanUser, "get user by email",
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// ListUsers returns all users ordered by ID
func (r *PostgresRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	return queryAll(ctx, r.pool, scanUser, "list users",
		`SELECT `+userColumns+` FROM users ORDER BY id`)
}

// --- Learning paths ---

const pathColumns = `id, title, description, image_url, level, category, total_modules, estimated_hours, primary_color, icon`

func scanPath(row pgx.Row) (*models.LearningPath, error) {
	var p models.LearningPath
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Level,
		&p.Category, &p.TotalModules, &p.EstimatedHours, &p.PrimaryColor, &p.Icon)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateLearningPath inserts a learning path
func (r *PostgresRepository) CreateLearningPath(ctx context.Context, in models.LearningPathInput) (*models.LearningPath, error) {
	query := `
		INSERT INTO learning_paths (title, description, image_url, level, category, total_modules, estimated_hours, primary_color, icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + pathColumns

	p, err := scanPath(r.pool.QueryRow(ctx, query,
		deref(in.Title), deref(in.Description), in.ImageURL, deref(in.Level),
		deref(in.Category), deref(in.TotalModules), deref(in.EstimatedHours),
		in.PrimaryColor, deref(in.Icon),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create learning path: %w", err)
	}
	return p, nil
}

// GetLearningPath retrieves a learning path by ID
func (r *PostgresRepository) GetLearningPath(ctx context.Context, id int) (*models.LearningPath, error) {
	return queryOne(ctx, r.pool, scanPath, "get learning path",
		`SELECT `+pathColumns+` FROM learning_paths WHERE id = $1`, id)
}

// ListLearningPaths returns all learning paths ordered by ID
func (r *PostgresRepository) ListLearningPaths(ctx context.Context) ([]*models.LearningPath, error) {
	return queryAll(ctx, r.pool, scanPath, "list learning paths",
		`SELECT `+pathColumns+` FROM learning_paths ORDER BY id`)
}

// UpdateLearningPath overwrites the columns whose input field is set
func (r *PostgresRepository) UpdateLearningPath(ctx context.Context, id int, in models.LearningPathInput) (*models.LearningPath, error) {
	query := `
		UPDATE learning_paths SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			image_url = COALESCE($4, image_url),
			level = COALESCE($5, level),
			category = COALESCE($6, category),
			total_modules = COALESCE($7, total_modules),
			estimated_hours = COALESCE($8, estimated_hours),
			primary_color = COALESCE($9, primary_color),
			icon = COALESCE($10, icon)
		WHERE id = $1
		RETURNING ` + pathColumns

	return queryOne(ctx, r.pool, scanPath, "update learning path", query, id,
		in.Title, in.Description, in.ImageURL, in.Level, in.Category,
		in.TotalModules, in.EstimatedHours, in.PrimaryColor, in.Icon)
}

// DeleteLearningPath deletes a learning path by ID
func (r *PostgresRepository) DeleteLearningPath(ctx context.Context, id int) (bool, error) {
	return r.deleteByID(ctx, "learning_paths", id)
}

// --- Modules ---

const moduleColumns = `id, learning_path_id, title, description, content, "order", estimated_minutes`

func scanModule(row pgx.Row) (*models.Module, error) {
	var m models.Module
	err := row.Scan(&m.ID, &m.LearningPathID, &m.Title, &m.Description,
		&m.Content, &m.Order, &m.EstimatedMinutes)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateModule inserts a module
func (r *PostgresRepository) CreateModule(ctx context.Context, in models.ModuleInput) (*models.Module, error) {
	query := `
		INSERT INTO modules (learning_path_id, title, description, content, "order", estimated_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + moduleColumns

	m, err := scanModule(r.pool.QueryRow(ctx, query,
		deref(in.LearningPathID), deref(in.Title), deref(in.Description),
		deref(in.Content), deref(in.Order), deref(in.EstimatedMinutes),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}
	return m, nil
}

// GetModule retrieves a module by ID
func (r *PostgresRepository) GetModule(ctx context.Context, id int) (*models.Module, error) {
	return queryOne(ctx, r.pool, scanModule, "get module",
		`SELECT `+moduleColumns+` FROM modules WHERE id = $1`, id)
}

// ListModulesByLearningPath returns the modules of a path ordered by "order", then ID
func (r *PostgresRepository) ListModulesByLearningPath(ctx context.Context, learningPathID int) ([]*models.Module, error) {
	return queryAll(ctx, r.pool, scanModule, "list modules",
		`SELECT `+moduleColumns+` FROM modules WHERE learning_path_id = $1 ORDER BY "order", id`,
		learningPathID)
}

// UpdateModule overwrites the columns whose input field is set
func (r *PostgresRepository) UpdateModule(ctx context.Context, id int, in models.ModuleInput) (*models.Module, error) {
	query := `
		UPDATE modules SET
			learning_path_id = COALESCE($2, learning_path_id),
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			content = COALESCE($5, content),
			"order" = COALESCE($6, "order"),
			estimated_minutes = COALESCE($7, estimated_minutes)
		WHERE id = $1
		RETURNING ` + moduleColumns

	return queryOne(ctx, r.pool, scanModule, "update module", query, id,
		in.LearningPathID, in.Title, in.Description, in.Content, in.Order, in.EstimatedMinutes)
}

// DeleteModule deletes a module by ID
func (r *PostgresRepository) DeleteModule(ctx context.Context, id int) (bool, error) {
	return r.deleteByID(ctx, "modules", id)
}

// --- Progress ---

const progressColumns = `id, user_id, learning_path_id, completed_modules, last_accessed_at, is_completed`

func scanProgress(row pgx.Row) (*models.UserProgress, error) {
	var p models.UserProgress
	err := row.Scan(&p.ID, &p.UserID, &p.LearningPathID, &p.CompletedModules,
		&p.LastAccessedAt, &p.IsCompleted)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertUserProgress inserts or merges the record for (user, path) in one statement
func (r *PostgresRepository) UpsertUserProgress(ctx context.Context, in models.ProgressInput) (*models.UserProgress, error) {
	query := `
		INSERT INTO user_progress (user_id, learning_path_id, completed_modules, is_completed)
		VALUES ($1, $2, COALESCE($3::integer, 0), COALESCE($4::boolean, FALSE))
		ON CONFLICT (user_id, learning_path_id) DO UPDATE SET
			completed_modules = COALESCE($3::integer, user_progress.completed_modules),
			is_completed = COALESCE($4::boolean, user_progress.is_completed)
		RETURNING ` + progressColumns

	p, err := scanProgress(r.pool.QueryRow(ctx, query,
		deref(in.UserID), deref(in.LearningPathID), in.CompletedModules, in.IsCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user progress: %w", err)
	}
	return p, nil
}

// GetUserProgress retrieves the progress of one user on one path
func (r *PostgresRepository) GetUserProgress(ctx context.Context, userID, learningPathID int) (*models.UserProgress, error) {
	return queryOne(ctx, r.pool, scanProgress, "get user progress",
		`SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1 AND learning_path_id = $2`,
		userID, learningPathID)
}

// ListUserProgress returns every progress record of a user ordered by ID
func (r *PostgresRepository) ListUserProgress(ctx context.Context, userID int) ([]*models.UserProgress, error) {
	return queryAll(ctx, r.pool, scanProgress, "list user progress",
		`SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1 ORDER BY id`, userID)
}

// --- Challenges ---

const challengeColumns = `id, title, description, difficulty, category, tags, start_date, end_date, participants, icon, primary_color`

func scanChallenge(row pgx.Row) (*models.Challenge, error) {
	var c models.Challenge
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.Category,
		&c.Tags, &c.StartDate, &c.EndDate, &c.Participants, &c.Icon, &c.PrimaryColor)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateChallenge inserts a challenge with zero participants
func (r *PostgresRepository) CreateChallenge(ctx context.Context, in models.ChallengeInput) (*models.Challenge, error) {
	query := `
		INSERT INTO challenges (title, description, difficulty, category, tags, start_date, end_date, icon, primary_color)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, NOW()), $7, $8, $9)
		RETURNING ` + challengeColumns

	c, err := scanChallenge(r.pool.QueryRow(ctx, query,
		deref(in.Title), deref(in.Description), deref(in.Difficulty), deref(in.Category),
		in.Tags, in.StartDate, in.EndDate, deref(in.Icon), in.PrimaryColor,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return c, nil
}

// GetChallenge retrieves a challenge by ID
func (r *PostgresRepository) GetChallenge(ctx context.Context, id int) (*models.Challenge, error) {
	return queryOne(ctx, r.pool, scanChallenge, "get challenge",
		`SELECT `+challengeColumns+` FROM challenges WHERE id = $1`, id)
}

// ListChallenges returns all challenges ordered by ID
func (r *PostgresRepository) ListChallenges(ctx context.Context) ([]*models.Challenge, error) {
	return queryAll(ctx, r.pool, scanChallenge, "list challenges",
		`SELECT `+challengeColumns+` FROM challenges ORDER BY id`)
}

// UpdateChallenge overwrites the columns whose input field is set
func (r *PostgresRepository) UpdateChallenge(ctx context.Context, id int, in models.ChallengeInput) (*models.Challenge, error) {
	query := `
		UPDATE challenges SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			difficulty = COALESCE($4, difficulty),
			category = COALESCE($5, category),
			tags = COALESCE($6, tags),
			start_date = COALESCE($7, start_date),
			end_date = COALESCE($8, end_date),
			icon = COALESCE($9, icon),
			primary_color = COALESCE($10, primary_color)
		WHERE id = $1
		RETURNING ` + challengeColumns

	return queryOne(ctx, r.pool, scanChallenge, "update challenge", query, id,
		in.Title, in.Description, in.Difficulty, in.Category, in.Tags,
		in.StartDate, in.EndDate, in.Icon, in.PrimaryColor)
}

// DeleteChallenge deletes a challenge by ID
func (r *PostgresRepository) DeleteChallenge(ctx context.Context, id int) (bool, error) {
	return r.deleteByID(ctx, "challenges", id)
}

// IncrementParticipants adds one participant. Unknown IDs update nothing.
func (r *PostgresRepository) IncrementParticipants(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE challenges SET participants = participants + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment participants: %w", err)
	}
	return nil
}

// --- Submissions ---

const submissionColumns = `id, user_id, challenge_id, submitted_at, score, status, solution`

func scanSubmission(row pgx.Row) (*models.ChallengeSubmission, error) {
	var s models.ChallengeSubmission
	err := row.Scan(&s.ID, &s.UserID, &s.ChallengeID, &s.SubmittedAt,
		&s.Score, &s.Status, &s.Solution)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSubmission inserts a submission, pending unless a status is given
func (r *PostgresRepository) CreateSubmission(ctx context.Context, in models.SubmissionInput) (*models.ChallengeSubmission, error) {
	query := `
		INSERT INTO challenge_submissions (user_id, challenge_id, score, status, solution)
		VALUES ($1, $2, $3, COALESCE($4::text, 'pending'), $5)
		RETURNING ` + submissionColumns

	s, err := scanSubmission(r.pool.QueryRow(ctx, query,
		deref(in.UserID), deref(in.ChallengeID), in.Score, in.Status, deref(in.Solution)))
	if err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return s, nil
}

// GetSubmission retrieves a submission by ID
func (r *PostgresRepository) GetSubmission(ctx context.Context, id int) (*models.ChallengeSubmission, error) {
	return queryOne(ctx, r.pool, scanSubmission, "get submission",
		`SELECT `+submissionColumns+` FROM challenge_submissions WHERE id = $1`, id)
}

// ListSubmissionsByUser returns the submissions of a user ordered by ID
func (r *PostgresRepository) ListSubmissionsByUser(ctx context.Context, userID int) ([]*models.ChallengeSubmission, error) {
	return queryAll(ctx, r.pool, scanSubmission, "list submissions by user",
		`SELECT `+submissionColumns+` FROM challenge_submissions WHERE user_id = $1 ORDER BY id`, userID)
}

// ListSubmissionsByChallenge returns the submissions for a challenge ordered by ID
func (r *PostgresRepository) ListSubmissionsByChallenge(ctx context.Context, challengeID int) ([]*models.ChallengeSubmission, error) {
	return queryAll(ctx, r.pool, scanSubmission, "list submissions by challenge",
		`SELECT `+submissionColumns+` FROM challenge_submissions WHERE challenge_id = $1 ORDER BY id`, challengeID)
}

// UpdateSubmissionStatus sets the status and, when given, the score
func (r *PostgresRepository) UpdateSubmissionStatus(ctx context.Context, id int, status string, score *int) (*models.ChallengeSubmission, error) {
	query := `
		UPDATE challenge_submissions SET status = $2, score = COALESCE($3, score)
		WHERE id = $1
		RETURNING ` + submissionColumns

	return queryOne(ctx, r.pool, scanSubmission, "update submission", query, id, status, score)
}

// --- Leaderboard ---

const entryColumns = `id, user_id, total_points, challenges_completed, medals, weekly_points`

func scanEntry(row pgx.Row) (*models.LeaderboardEntry, error) {
	var e models.LeaderboardEntry
	err := row.Scan(&e.ID, &e.UserID, &e.TotalPoints, &e.ChallengesCompleted, &e.Medals, &e.WeeklyPoints)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateLeaderboardEntry inserts a zeroed entry for a user
func (r *PostgresRepository) CreateLeaderboardEntry(ctx context.Context, userID int) (*models.LeaderboardEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx,
		`INSERT INTO leaderboard (user_id) VALUES ($1) RETURNING `+entryColumns, userID))
	if err != nil {
		if uniqueViolation(err) == "leaderboard_user_key" {
			return nil, ErrLeaderboardEntryExists
		}
		return nil, fmt.Errorf("failed to create leaderboard entry: %w", err)
	}
	return e, nil
}

// GetLeaderboardEntry retrieves the entry of a user
func (r *PostgresRepository) GetLeaderboardEntry(ctx context.Context, userID int) (*models.LeaderboardEntry, error) {
	return queryOne(ctx, r.pool, scanEntry, "get leaderboard entry",
		`SELECT `+entryColumns+` FROM leaderboard WHERE user_id = $1`, userID)
}

// ListLeaderboard ranks entries by metric and joins each with its user.
// A NULL limit is LIMIT ALL in PostgreSQL.
func (r *PostgresRepository) ListLeaderboard(ctx context.Context, metric models.LeaderboardMetric, limit int) ([]*models.RankedEntry, error) {
	orderBy := "l.total_points"
	if metric == models.MetricWeeklyPoints {
		orderBy = "l.weekly_points"
	}

	var limitArg *int
	if limit > 0 {
		limitArg = &limit
	}

	query := `
		SELECT l.id, l.user_id, l.total_points, l.challenges_completed, l.medals, l.weekly_points,
			u.id, u.username, u.password, u.email, u.name, u.institution, u.role, u.avatar_url, u.created_at
		FROM leaderboard l
		LEFT JOIN users u ON u.id = l.user_id
		ORDER BY ` + orderBy + ` DESC, l.id
		LIMIT $1`

	return queryAll(ctx, r.pool, scanRanked, "list leaderboard", query, limitArg)
}

func scanRanked(row pgx.Row) (*models.RankedEntry, error) {
	var e models.RankedEntry
	var (
		userID                                *int
		username, password, email, name, role *string
		institution, avatarURL                *string
		createdAt                             *time.Time
	)
	err := row.Scan(&e.ID, &e.UserID, &e.TotalPoints, &e.ChallengesCompleted, &e.Medals, &e.WeeklyPoints,
		&userID, &username, &password, &email, &name, &institution, &role, &avatarURL, &createdAt)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		e.User = &models.User{
			ID:          *userID,
			Username:    deref(username),
			Password:    deref(password),
			Email:       deref(email),
			Name:        deref(name),
			Institution: institution,
			Role:        models.Role(deref(role)),
			AvatarURL:   avatarURL,
			CreatedAt:   deref(createdAt),
		}
	}
	return &e, nil
}

// ApplyLeaderboardDelta adds points to total and weekly counters in one update
func (r *PostgresRepository) ApplyLeaderboardDelta(ctx context.Context, userID int, delta models.PointsDelta) (*models.LeaderboardEntry, error) {
	query := `
		UPDATE leaderboard SET
			total_points = total_points + $2,
			weekly_points = weekly_points + $2,
			challenges_completed = challenges_completed + $3,
			medals = medals + $4
		WHERE user_id = $1
		RETURNING ` + entryColumns

	return queryOne(ctx, r.pool, scanEntry, "apply leaderboard delta", query,
		userID, deref(delta.Points), boolToInt(delta.ChallengeCompleted), boolToInt(delta.Medal))
}

// ResetWeeklyPoints zeroes weekly points and returns the number of changed rows
func (r *PostgresRepository) ResetWeeklyPoints(ctx context.Context) (int, error) {
	result, err := r.pool.Exec(ctx, `UPDATE leaderboard SET weekly_points = 0 WHERE weekly_points <> 0`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset weekly points: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// Helper functions

// deleteByID removes one row from a fixed table name
func (r *PostgresRepository) deleteByID(ctx context.Context, table string, id int) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return result.RowsAffected() > 0, nil
}

func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, scan func(pgx.Row) (*T, error), op, query string, args ...any) (*T, error) {
	v, err := scan(pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return v, nil
}

func queryAll[T any](ctx context.Context, pool *pgxpool.Pool, scan func(pgx.Row) (*T, error), op, query string, args ...any) ([]*T, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*T, error) {
		return scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return out, nil
}

// uniqueViolation returns the violated constraint name, or "" for other errors
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
