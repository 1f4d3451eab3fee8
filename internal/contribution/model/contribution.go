// Package model defines contribution entities, request shapes and errors.
package model

import "time"

// Contribution is a merged pull request credited to its author.
// (BaseRepoFullName, Number) is unique.
type Contribution struct {
	ID                   string    `gorm:"primaryKey;column:id;type:varchar(36)"                                        json:"id"`
	UserID               string    `gorm:"column:user_id;type:varchar(255);not null;index:idx_contributions_user_id"    json:"user_id"`
	BaseRepoFullName     string    `gorm:"column:base_repo_full_name;type:varchar(255);not null;uniqueIndex:uq_contributions_repo_number,priority:1" json:"base_repo_full_name"`
	Number               int       `gorm:"column:number;not null;uniqueIndex:uq_contributions_repo_number,priority:2"    json:"number"`
	Body                 string    `gorm:"column:body;not null"                                                          json:"body"`
	NumberOfComments     int       `gorm:"column:number_of_comments;not null"                                            json:"number_of_comments"`
	NumberOfCommits      int       `gorm:"column:number_of_commits;not null"                                             json:"number_of_commits"`
	NumberOfAdditions    int       `gorm:"column:number_of_additions;not null"                                           json:"number_of_additions"`
	NumberOfDeletions    int       `gorm:"column:number_of_deletions;not null"                                           json:"number_of_deletions"`
	NumberOfChangedFiles int       `gorm:"column:number_of_changed_files;not null"                                       json:"number_of_changed_files"`
	Points               int       `gorm:"column:points;not null"                                                        json:"points"`
	MergedAt             time.Time `gorm:"column:merged_at;not null"                                                     json:"merged_at"`
	CreatedAt            time.Time `gorm:"column:created_at;not null"                                                    json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at;not null"                                                    json:"-"`

	Pairings []Pairing `gorm:"foreignKey:ContributionID;constraint:OnDelete:CASCADE" json:"pairings"`
	Reviews  []Review  `gorm:"foreignKey:ContributionID;constraint:OnDelete:CASCADE" json:"reviews"`
}

// TableName specifies the table name for GORM.
func (Contribution) TableName() string {
	return "contributions"
}

// Pairing records one collaborator of a contribution. The author always has one.
type Pairing struct {
	ID             uint64    `gorm:"primaryKey;column:id"                                                         json:"-"`
	ContributionID string    `gorm:"column:contribution_id;type:varchar(36);not null;index:idx_pairings_contribution_id" json:"-"`
	UserID         string    `gorm:"column:user_id;type:varchar(255);not null;index:idx_pairings_user_id"           json:"user_id"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"                                                   json:"-"`
}

// TableName specifies the table name for GORM.
func (Pairing) TableName() string {
	return "pairings"
}

// Review records one review comment. UserID is nil when the commenter is unknown.
type Review struct {
	ID             uint64    `gorm:"primaryKey;column:id"                                                        json:"-"`
	ContributionID string    `gorm:"column:contribution_id;type:varchar(36);not null;index:idx_reviews_contribution_id" json:"-"`
	UserID         *string   `gorm:"column:user_id;type:varchar(255)"                                            json:"user_id"`
	Body           string    `gorm:"column:body;not null"                                                        json:"body"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"                                                  json:"-"`
}

// TableName specifies the table name for GORM.
func (Review) TableName() string {
	return "reviews"
}

// ReviewComment is a comment fetched from the code host.
type ReviewComment struct {
	Author    string
	Body      string
	CreatedAt time.Time
}

// CollaboratorIDs returns the user ids of every pairing in insertion order.
func (c *Contribution) CollaboratorIDs() []string {
	ids := make([]string, 0, len(c.Pairings))
	for _, p := range c.Pairings {
		ids = append(ids, p.UserID)
	}
	return ids
}
