// Package client is a Go SDK for the academy API.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/terra-clan/academy-api/internal/models"
)

// Client is a Go SDK for the academy API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new academy API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FieldError is one rejected field of a request payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int          `json:"-"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors"`
	RequestID  string       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Accounts

// Register creates an account. The server also opens its leaderboard entry.
func (c *Client) Register(ctx context.Context, in models.UserInput) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodPost, "/api/users", in)
}

// Login checks credentials and returns the account
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodPost, "/api/login", models.LoginRequest{
		Username: username,
		Password: password,
	})
}

// GetUser retrieves a user by ID
func (c *Client) GetUser(ctx context.Context, id int) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodGet, "/api/users/"+strconv.Itoa(id), nil)
}

// Catalog

// ListLearningPaths retrieves every learning path
func (c *Client) ListLearningPaths(ctx context.Context) ([]*models.LearningPath, error) {
	return list[models.LearningPath](ctx, c, "/api/learning-paths")
}

// GetLearningPath retrieves a learning path by ID
func (c *Client) GetLearningPath(ctx context.Context, id int) (*models.LearningPath, error) {
	return call[models.LearningPath](ctx, c, http.MethodGet, "/api/learning-paths/"+strconv.Itoa(id), nil)
}

// CreateLearningPath creates a learning path
func (c *Client) CreateLearningPath(ctx context.Context, in models.LearningPathInput) (*models.LearningPath, error) {
	return call[models.LearningPath](ctx, c, http.MethodPost, "/api/learning-paths", in)
}

// UpdateLearningPath changes the set fields of a learning path
func (c *Client) UpdateLearningPath(ctx context.Context, id int, in models.LearningPathInput) (*models.LearningPath, error) {
	return call[models.LearningPath](ctx, c, http.MethodPut, "/api/learning-paths/"+strconv.Itoa(id), in)
}

// DeleteLearningPath removes a learning path
func (c *Client) DeleteLearningPath(ctx context.Context, id int) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/api/learning-paths/"+strconv.Itoa(id), nil)
	return err
}

// ListModules retrieves a path's modules in order
func (c *Client) ListModules(ctx context.Context, learningPathID int) ([]*models.Module, error) {
	return list[models.Module](ctx, c, fmt.Sprintf("/api/learning-paths/%d/modules", learningPathID))
}

// GetModule retrieves a module by ID
func (c *Client) GetModule(ctx context.Context, id int) (*models.Module, error) {
	return call[models.Module](ctx, c, http.MethodGet, "/api/modules/"+strconv.Itoa(id), nil)
}

// CreateModule creates a module
func (c *Client) CreateModule(ctx context.Context, in models.ModuleInput) (*models.Module, error) {
	return call[models.Module](ctx, c, http.MethodPost, "/api/modules", in)
}

// Progress

// SaveProgress creates or overwrites the user's progress on a path
func (c *Client) SaveProgress(ctx context.Context, in models.ProgressInput) (*models.UserProgress, error) {
	return call[models.UserProgress](ctx, c, http.MethodPost, "/api/user-progress", in)
}

// GetProgress retrieves the user's progress on one path
func (c *Client) GetProgress(ctx context.Context, userID, learningPathID int) (*models.UserProgress, error) {
	return call[models.UserProgress](ctx, c, http.MethodGet, fmt.Sprintf("/api/users/%d/progress/%d", userID, learningPathID), nil)
}

// ListProgress retrieves the user's progress on every path
func (c *Client) ListProgress(ctx context.Context, userID int) ([]*models.UserProgress, error) {
	return list[models.UserProgress](ctx, c, fmt.Sprintf("/api/users/%d/progress", userID))
}

// Challenges

// ListChallenges retrieves every challenge
func (c *Client) ListChallenges(ctx context.Context) ([]*models.Challenge, error) {
	return list[models.Challenge](ctx, c, "/api/challenges")
}

// GetChallenge retrieves a challenge by ID
func (c *Client) GetChallenge(ctx context.Context, id int) (*models.Challenge, error) {
	return call[models.Challenge](ctx, c, http.MethodGet, "/api/challenges/"+strconv.Itoa(id), nil)
}

// CreateChallenge creates a challenge
func (c *Client) CreateChallenge(ctx context.Context, in models.ChallengeInput) (*models.Challenge, error) {
	return call[models.Challenge](ctx, c, http.MethodPost, "/api/challenges", in)
}

// Submit sends a solution to a challenge
func (c *Client) Submit(ctx context.Context, in models.SubmissionInput) (*models.ChallengeSubmission, error) {
	return call[models.ChallengeSubmission](ctx, c, http.MethodPost, "/api/challenge-submissions", in)
}

// ReviewSubmission sets the outcome of a submission
func (c *Client) ReviewSubmission(ctx context.Context, id int, review models.SubmissionReview) (*models.ChallengeSubmission, error) {
	return call[models.ChallengeSubmission](ctx, c, http.MethodPatch, "/api/challenge-submissions/"+strconv.Itoa(id), review)
}

// ListUserSubmissions retrieves every submission sent by a user
func (c *Client) ListUserSubmissions(ctx context.Context, userID int) ([]*models.ChallengeSubmission, error) {
	return list[models.ChallengeSubmission](ctx, c, fmt.Sprintf("/api/users/%d/submissions", userID))
}

// Leaderboard

// Leaderboard retrieves entries ranked by total points. limit <= 0 returns all.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]*models.RankedEntry, error) {
	return list[models.RankedEntry](ctx, c, withLimit("/api/leaderboard", limit))
}

// WeeklyLeaderboard retrieves entries ranked by weekly points. limit <= 0 returns all.
func (c *Client) WeeklyLeaderboard(ctx context.Context, limit int) ([]*models.RankedEntry, error) {
	return list[models.RankedEntry](ctx, c, withLimit("/api/leaderboard/weekly", limit))
}

// AwardPoints applies a points delta to a user's leaderboard entry
func (c *Client) AwardPoints(ctx context.Context, userID int, delta models.PointsDelta) (*models.LeaderboardEntry, error) {
	return call[models.LeaderboardEntry](ctx, c, http.MethodPost, fmt.Sprintf("/api/leaderboard/%d/points", userID), delta)
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

func withLimit(path string, limit int) string {
	if limit <= 0 {
		return path
	}
	return path + "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
}

func call[T any](ctx context.Context, c *Client, method, path string, in any) (*T, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(resp, out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return out, nil
}

func list[T any](ctx context.Context, c *Client, path string) ([]*T, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out []*T
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return out, nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}
		return nil, apiErr
	}

	return respBody, nil
}
