// Package gitmanager talks to git and to the GitHub API on behalf of a pull request.
package gitmanager

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/requestutils"
	"github.com/google/go-github/v75/github"
)

const perPage = 100

// Commit status states.
const (
	StateSuccess = "success"
	StateFailure = "failure"
)

// GitHubClient is scoped to a single pull request.
type GitHubClient struct {
	client *github.Client
	owner  string
	repo   string
	number int
	policy requestutils.PolicyFunc
	logger lumber.Logger
}

// NewGitHubClient returns a client for the pull request described by cfg.
func NewGitHubClient(ctx context.Context, cfg *config.GitHubConfig, policy requestutils.PolicyFunc, logger lumber.Logger) (*GitHubClient, error) {
	client := github.NewClient(requestutils.NewClient(ctx, cfg.Token, global.DefaultHTTPTimeout))
	if cfg.APIURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.APIURL, cfg.APIURL)
		if err != nil {
			return nil, errs.Config(fmt.Sprintf("invalid github api url %s", cfg.APIURL), err)
		}
	}
	return &GitHubClient{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		number: cfg.PullRequest,
		policy: policy,
		logger: logger,
	}, nil
}

// ChangedFiles lists the files added or modified by the pull request, following pagination.
func (g *GitHubClient) ChangedFiles(ctx context.Context) (core.ChangedFileSet, error) {
	changed := core.NewChangedFileSet()
	opts := &github.ListOptions{PerPage: perPage}
	for {
		var files []*github.CommitFile
		var resp *github.Response
		err := g.retry(ctx, "list pull request files", func() (err error) {
			files, resp, err = g.client.PullRequests.ListFiles(ctx, g.owner, g.repo, g.number, opts)
			return err
		})
		if err != nil {
			return nil, errs.Retrieval(fmt.Sprintf("failed to list files of %s/%s#%d", g.owner, g.repo, g.number), err)
		}
		for _, f := range files {
			switch f.GetStatus() {
			case "added", "modified", "renamed", "changed", "copied":
				changed.Add(f.GetFilename())
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	g.logger.Debugf("pull request %s/%s#%d changed %d files", g.owner, g.repo, g.number, len(changed))
	return changed, nil
}

// UpsertComment posts body on the pull request. When sticky, the previous
// comment starting with marker is edited instead.
func (g *GitHubClient) UpsertComment(ctx context.Context, marker, body string, sticky bool) error {
	if sticky {
		id, err := g.findComment(ctx, marker)
		if err != nil {
			return err
		}
		if id != 0 {
			return g.retry(ctx, "edit comment", func() error {
				_, _, err := g.client.Issues.EditComment(ctx, g.owner, g.repo, id, &github.IssueComment{Body: github.Ptr(body)})
				return err
			})
		}
	}
	return g.retry(ctx, "create comment", func() error {
		_, _, err := g.client.Issues.CreateComment(ctx, g.owner, g.repo, g.number, &github.IssueComment{Body: github.Ptr(body)})
		return err
	})
}

func (g *GitHubClient) findComment(ctx context.Context, marker string) (int64, error) {
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		var comments []*github.IssueComment
		var resp *github.Response
		err := g.retry(ctx, "list comments", func() (err error) {
			comments, resp, err = g.client.Issues.ListComments(ctx, g.owner, g.repo, g.number, opts)
			return err
		})
		if err != nil {
			return 0, err
		}
		for _, c := range comments {
			if strings.HasPrefix(c.GetBody(), marker) {
				return c.GetID(), nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return 0, nil
		}
		opts.Page = resp.NextPage
	}
}

// SetStatus sets the covgate commit status on the head of the pull request.
func (g *GitHubClient) SetStatus(ctx context.Context, state, description string) error {
	var pr *github.PullRequest
	err := g.retry(ctx, "get pull request", func() (err error) {
		pr, _, err = g.client.PullRequests.Get(ctx, g.owner, g.repo, g.number)
		return err
	})
	if err != nil {
		return err
	}
	sha := pr.GetHead().GetSHA()
	status := &github.RepoStatus{
		State:       github.Ptr(state),
		Description: github.Ptr(truncate(description, 140)),
		Context:     github.Ptr(global.StatusContext),
	}
	return g.retry(ctx, "create status", func() error {
		_, _, err := g.client.Repositories.CreateStatus(ctx, g.owner, g.repo, sha, status)
		return err
	})
}

func (g *GitHubClient) retry(ctx context.Context, name string, op func() error) error {
	return requestutils.Retry(ctx, g.policy, g.logger, name, retryable, op)
}

// retryable reports whether a GitHub API error is worth another attempt:
// transport failures, 5xx responses and secondary rate limits.
func retryable(err error) bool {
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		return true
	}
	var rate *github.RateLimitError
	if errors.As(err, &rate) {
		return false
	}
	var resp *github.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Response != nil && resp.Response.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
