package models

// LeaderboardMetric selects the counter a leaderboard is ranked by
type LeaderboardMetric string

const (
	MetricTotalPoints  LeaderboardMetric = "totalPoints"
	MetricWeeklyPoints LeaderboardMetric = "weeklyPoints"
)

// Valid reports whether m is a known ranking metric
func (m LeaderboardMetric) Valid() bool {
	return m == MetricTotalPoints || m == MetricWeeklyPoints
}

// LeaderboardEntry holds the gamification counters of one user
type LeaderboardEntry struct {
	ID                  int `json:"id"`
	UserID              int `json:"userId"`
	TotalPoints         int `json:"totalPoints"`
	ChallengesCompleted int `json:"challengesCompleted"`
	Medals              int `json:"medals"`
	WeeklyPoints        int `json:"weeklyPoints"`
}

// Score returns the counter selected by m
func (e *LeaderboardEntry) Score(m LeaderboardMetric) int {
	if m == MetricWeeklyPoints {
		return e.WeeklyPoints
	}
	return e.TotalPoints
}

// RankedEntry is a leaderboard entry joined with its user for display.
// User is nil when the referenced account no longer resolves.
type RankedEntry struct {
	LeaderboardEntry
	User *User `json:"user"`
}

// PointsDelta describes an award applied to a leaderboard entry
type PointsDelta struct {
	Points             *int `json:"points" validate:"required"`
	ChallengeCompleted bool `json:"challengeCompleted"`
	Medal              bool `json:"medal"`
}
