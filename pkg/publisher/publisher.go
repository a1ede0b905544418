// Package publisher posts coverage summaries and the gate decision.
package publisher

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/LambdaTest/covgate/config"
	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/fileutils"
	"github.com/LambdaTest/covgate/pkg/gitmanager"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/LambdaTest/covgate/pkg/requestutils"
)

const githubMaxRetries = 3

// New returns the Publisher selected by cfg.Publisher.Type. Stdout output goes to out.
func New(ctx context.Context, cfg *config.Config, out io.Writer, logger lumber.Logger) (core.Publisher, error) {
	switch cfg.Publisher.Type {
	case core.PublishStdout:
		return &writerPublisher{out: out, logger: logger}, nil
	case core.PublishFile:
		return &filePublisher{path: cfg.Publisher.OutputFile, logger: logger}, nil
	case core.PublishGitHub:
		client, err := gitmanager.NewGitHubClient(ctx, &cfg.GitHub, requestutils.DefaultPolicy(githubMaxRetries), logger)
		if err != nil {
			return nil, err
		}
		return NewGitHubPublisher(client, cfg.Publisher.Sticky, cfg.Publisher.Status, logger), nil
	default:
		return nil, errs.ErrUnsupportedPublisher
	}
}

type writerPublisher struct {
	out    io.Writer
	logger lumber.Logger
}

func (p *writerPublisher) Publish(ctx context.Context, markdown string) error {
	_, err := io.WriteString(p.out, markdown)
	return err
}

// Signal logs the decision. The exit code carries it for stdout runs.
func (p *writerPublisher) Signal(ctx context.Context, passed bool, description string) error {
	if passed {
		p.logger.Infof("coverage check passed")
		return nil
	}
	p.logger.Errorf("coverage check failed: %s", description)
	return nil
}

type filePublisher struct {
	path   string
	logger lumber.Logger
}

func (p *filePublisher) Publish(ctx context.Context, markdown string) error {
	if err := fileutils.WriteAtomic(p.path, strings.NewReader(markdown)); err != nil {
		return fmt.Errorf("failed to write summary to %s: %w", p.path, err)
	}
	p.logger.Infof("coverage summary written to %s", p.path)
	return nil
}

func (p *filePublisher) Signal(ctx context.Context, passed bool, description string) error {
	if !passed {
		p.logger.Errorf("coverage check failed: %s", description)
	}
	return nil
}

// commenter is the part of the GitHub client the publisher needs.
type commenter interface {
	UpsertComment(ctx context.Context, marker, body string, sticky bool) error
	SetStatus(ctx context.Context, state, description string) error
}

type githubPublisher struct {
	client commenter
	sticky bool
	status bool
	logger lumber.Logger
}

// NewGitHubPublisher returns a Publisher commenting on the pull request and
// optionally setting a commit status.
func NewGitHubPublisher(client commenter, sticky, status bool, logger lumber.Logger) core.Publisher {
	return &githubPublisher{client: client, sticky: sticky, status: status, logger: logger}
}

// Publish posts markdown prefixed with the marker used to find the comment again.
func (p *githubPublisher) Publish(ctx context.Context, markdown string) error {
	return p.client.UpsertComment(ctx, global.CommentMarker, global.CommentMarker+"\n"+markdown, p.sticky)
}

func (p *githubPublisher) Signal(ctx context.Context, passed bool, description string) error {
	if !p.status {
		return nil
	}
	state := gitmanager.StateSuccess
	if !passed {
		state = gitmanager.StateFailure
	}
	return p.client.SetStatus(ctx, state, description)
}
