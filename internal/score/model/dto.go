package model

import "time"

// GiveRequest credits points to a user. EventTime defaults to now.
type GiveRequest struct {
	UserID    string     `json:"user_id"    binding:"required"`
	Points    int64      `json:"points"`
	EventTime *time.Time `json:"event_time"`
}

// TakeRequest debits points from every existing row of a user.
type TakeRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Points int64  `json:"points"`
}

// ResetRequest zeroes totals. An empty TimeSpan resets both spans.
type ResetRequest struct {
	TimeSpan string `json:"time_span"`
}

// ScoreResponse is the total of one user for one span.
type ScoreResponse struct {
	UserID   string   `json:"user_id"`
	TimeSpan TimeSpan `json:"time_span"`
	Points   int64    `json:"points"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
}

// LeaderboardResponse lists the top users of a span.
type LeaderboardResponse struct {
	TimeSpan TimeSpan           `json:"time_span"`
	Entries  []LeaderboardEntry `json:"entries"`
}
