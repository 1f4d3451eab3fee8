package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// GitHubConfig holds configuration of the GitHub REST client used to fetch review comments.
type GitHubConfig struct {
	// Token is a personal access token; empty means unauthenticated requests.
	Token string
	// APIURL overrides the API base URL (GitHub Enterprise or tests).
	APIURL string
	// Timeout bounds a single comment fetch including pagination.
	Timeout time.Duration
	// PerPage is the page size requested from the API (max 100).
	PerPage int
	// MaxAttempts is the number of attempts made for transient failures.
	MaxAttempts int
}

// LoadGitHubConfigFromEnv loads GitHub configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	return GitHubConfig{
		Token:       GetEnv("GITHUB_TOKEN", ""),
		APIURL:      GetEnv("GITHUB_API_URL", ""),
		Timeout:     GetEnvDuration("GITHUB_TIMEOUT", 20*time.Second),
		PerPage:     GetEnvInt("GITHUB_PER_PAGE", 100),
		MaxAttempts: GetEnvInt("GITHUB_MAX_ATTEMPTS", 3),
	}
}

// Validate validates GitHub configuration.
func (c GitHubConfig) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("GITHUB_TIMEOUT must be greater than 0")
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return fmt.Errorf("GITHUB_PER_PAGE must be between 1 and 100, got %d", c.PerPage)
	}
	if c.MaxAttempts <= 0 {
		return errors.New("GITHUB_MAX_ATTEMPTS must be greater than 0")
	}
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid GITHUB_API_URL: %q", c.APIURL)
		}
	}
	return nil
}
