package model

import "time"

// Account is the code host account of a pull request author.
type Account struct {
	Login string `json:"login"`
}

// Repo identifies a repository by owner/name.
type Repo struct {
	FullName string `json:"full_name"`
}

// Branch is the base branch of a pull request.
type Branch struct {
	Repo *Repo `json:"repo"`
}

// CreateContributionRequest has the shape of a GitHub pull request document, so
// a webhook payload's "pull_request" object can be posted as is. Pointers tell
// missing fields from zero values.
type CreateContributionRequest struct {
	Number       *int       `json:"number"`
	Body         *string    `json:"body"`
	Merged       *bool      `json:"merged"`
	MergedAt     *time.Time `json:"merged_at"`
	User         *Account   `json:"user"`
	Base         *Branch    `json:"base"`
	Comments     *int       `json:"comments"`
	Commits      *int       `json:"commits"`
	Additions    *int       `json:"additions"`
	Deletions    *int       `json:"deletions"`
	ChangedFiles *int       `json:"changed_files"`
}

// AuthorLogin returns user.login or "".
func (r *CreateContributionRequest) AuthorLogin() string {
	if r.User == nil {
		return ""
	}
	return r.User.Login
}

// RepoFullName returns base.repo.full_name or "".
func (r *CreateContributionRequest) RepoFullName() string {
	if r.Base == nil || r.Base.Repo == nil {
		return ""
	}
	return r.Base.Repo.FullName
}

// ContributionResponse is returned after ingestion.
type ContributionResponse struct {
	Contribution Contribution `json:"contribution"`
	Points       int          `json:"points"`
	// Awarded lists the users credited by the ledger when awarding was requested.
	Awarded []string `json:"awarded,omitempty"`
}

// DeleteContributionRequest identifies a contribution to delete.
type DeleteContributionRequest struct {
	ID string `json:"id" binding:"required"`
}
