package requestutils

import (
	"context"
	"net/http"
	"time"

	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
)

// PolicyFunc returns a fresh retry policy for every request.
type PolicyFunc func() backoff.BackOff

// DefaultPolicy retries with exponential backoff for up to maxRetries attempts.
func DefaultPolicy(maxRetries uint64) PolicyFunc {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 500 * time.Millisecond
		b.RandomizationFactor = 0.05
		b.MaxElapsedTime = time.Minute
		return backoff.WithMaxRetries(b, maxRetries)
	}
}

// NoRetry never retries.
func NoRetry() backoff.BackOff {
	return &backoff.StopBackOff{}
}

// NewClient returns an http client with the given timeout that authenticates
// every request with token. An empty token yields an anonymous client.
func NewClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	if token == "" {
		return &http.Client{Timeout: timeout}
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	client.Timeout = timeout
	return client
}

// Retry runs op until it succeeds, the policy gives up or retryable reports false.
func Retry(ctx context.Context, policy PolicyFunc, logger lumber.Logger, name string,
	retryable func(error) bool, op func() error) error {
	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(policy(), ctx), func(err error, wait time.Duration) {
		logger.Warnf("%s failed, retrying in %s, error: %v", name, wait, err)
	})
}
