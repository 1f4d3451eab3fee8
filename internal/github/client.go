// Package github fetches pull request review comments from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	appConfig "github.com/festy23/contribution_points/internal/config"
	"github.com/festy23/contribution_points/internal/contribution/model"
	"github.com/festy23/contribution_points/pkg/retry"
)

// Client fetches review comments. It is safe for concurrent use.
type Client struct {
	gh     *github.Client
	cfg    appConfig.GitHubConfig
	retry  retry.Config
	logger *zap.SugaredLogger
}

// New builds a client from cfg. An empty token makes unauthenticated requests.
func New(cfg appConfig.GitHubConfig, logger *zap.SugaredLogger) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	}

	gh := github.NewClient(httpClient)
	if cfg.APIURL != "" {
		base := cfg.APIURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		gh.BaseURL = u
	}

	retryCfg := retry.HTTPConfig()
	retryCfg.MaxAttempts = cfg.MaxAttempts

	return &Client{gh: gh, cfg: cfg, retry: retryCfg, logger: logger}, nil
}

// FetchReviewComments returns every comment of the pull request, following
// pagination. Transient failures are retried per page.
func (c *Client) FetchReviewComments(
	ctx context.Context,
	repoFullName string,
	number int,
) ([]model.ReviewComment, error) {
	owner, repo, ok := strings.Cut(repoFullName, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid repository name %q", repoFullName)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	c.logger.Debugw("FetchReviewComments called", "repo", repoFullName, "number", number)

	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: c.cfg.PerPage},
	}
	var comments []model.ReviewComment

	for {
		page, err := retry.DoWithResult(ctx, c.retry, func() (*pageResult, error) {
			items, resp, err := c.gh.Issues.ListComments(ctx, owner, repo, number, opts)
			if err != nil {
				return nil, err
			}
			return &pageResult{items: items, next: resp.NextPage}, nil
		})
		if err != nil {
			c.logger.Errorw("FetchReviewComments failed", "repo", repoFullName, "number", number, "error", err)
			return nil, err
		}

		for _, item := range page.items {
			comments = append(comments, model.ReviewComment{
				Author:    item.GetUser().GetLogin(),
				Body:      item.GetBody(),
				CreatedAt: item.GetCreatedAt().Time,
			})
		}

		if page.next == 0 {
			break
		}
		opts.Page = page.next
	}

	c.logger.Debugw("FetchReviewComments completed", "repo", repoFullName, "number", number, "count", len(comments))
	if comments == nil {
		comments = []model.ReviewComment{}
	}
	return comments, nil
}

type pageResult struct {
	items []*github.IssueComment
	next  int
}
