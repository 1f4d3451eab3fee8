// Package model provides data transfer objects for statistics module.
package model

// ContributorStatistics summarises one user's activity.
type ContributorStatistics struct {
	UserID         string `gorm:"column:user_id"         json:"user_id"`
	Nickname       string `gorm:"column:nickname"        json:"nickname"`
	Contributions  int    `gorm:"column:contributions"   json:"contributions"`
	Pairings       int    `gorm:"column:pairings"        json:"pairings"`
	ReviewsGiven   int    `gorm:"column:reviews_given"   json:"reviews_given"`
	PointsAuthored int64  `gorm:"column:points_authored" json:"points_authored"`
}

// ContributorsStatisticsResponse represents response for contributors statistics.
type ContributorsStatisticsResponse struct {
	Contributors []ContributorStatistics `json:"contributors"`
	Total        int                     `json:"total"`
}

// PointsBucket counts contributions classified with the same points.
type PointsBucket struct {
	Points int `gorm:"column:points" json:"points"`
	Count  int `gorm:"column:count"  json:"count"`
}

// ContributionStatistics represents aggregate statistics for contributions.
type ContributionStatistics struct {
	TotalContributions      int            `json:"total_contributions"`
	TotalPoints             int64          `json:"total_points"`
	TotalReviews            int            `json:"total_reviews"`
	UnreviewedContributions int            `json:"unreviewed_contributions"`
	AverageReviews          float64        `json:"average_reviews_per_contribution"`
	PointsDistribution      []PointsBucket `json:"points_distribution"`
}

// ContributionStatisticsResponse represents response for contribution statistics.
type ContributionStatisticsResponse struct {
	Statistics ContributionStatistics `json:"statistics"`
}
