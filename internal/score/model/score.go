// Package model defines score ledger entities.
package model

import (
	"time"

	userModel "github.com/festy23/contribution_points/internal/user/model"
)

// TimeSpan is the aggregation horizon of a Score row.
type TimeSpan string

const (
	// AllTime accumulates every award.
	AllTime TimeSpan = "all_time"
	// Weekly accumulates awards whose event time lies in the trailing seven days.
	Weekly TimeSpan = "weekly"
)

// WeeklyWindow is the length of the rolling weekly horizon.
const WeeklyWindow = 7 * 24 * time.Hour

// TimeSpans lists every span in a stable order.
func TimeSpans() []TimeSpan {
	return []TimeSpan{AllTime, Weekly}
}

// Valid reports whether s is a known span.
func (s TimeSpan) Valid() bool {
	return s == AllTime || s == Weekly
}

// ParseTimeSpan converts a query value into a TimeSpan.
func ParseTimeSpan(v string) (TimeSpan, error) {
	s := TimeSpan(v)
	if !s.Valid() {
		return "", ErrInvalidTimeSpan
	}
	return s, nil
}

// Score is the running total of one user for one span.
// At most one row exists per (user_id, time_span), and the user must exist.
type Score struct {
	ID        uint64    `gorm:"primaryKey;column:id"                                                               json:"-"`
	UserID    string    `gorm:"column:user_id;type:varchar(255);not null;uniqueIndex:uq_scores_user_span,priority:1" json:"user_id"`
	TimeSpan  TimeSpan  `gorm:"column:time_span;type:varchar(16);not null;uniqueIndex:uq_scores_user_span,priority:2" json:"time_span"`
	Points    int64     `gorm:"column:points;not null;default:0"                                                   json:"points"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                                                         json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"                                                         json:"updated_at"`

	User *userModel.User `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (Score) TableName() string {
	return "scores"
}
