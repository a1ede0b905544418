package requestutils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LambdaTest/covgate/testutils"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("502 bad gateway")

func fastPolicy(retries uint64) PolicyFunc {
	return func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), retries)
	}
}

func TestRetry(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	retryable := func(err error) bool { return errors.Is(err, errTransient) }

	tests := []struct {
		name      string
		policy    PolicyFunc
		failures  []error
		wantCalls int
		wantErr   error
	}{
		{"succeeds first time", fastPolicy(3), nil, 1, nil},
		{"recovers from transient errors", fastPolicy(3), []error{errTransient, errTransient}, 3, nil},
		{"gives up after max retries", fastPolicy(1), []error{errTransient, errTransient, errTransient}, 2, errTransient},
		{"permanent error is not retried", fastPolicy(3), []error{errors.New("404 not found")}, 1, errors.New("404 not found")},
		{"no retry policy", NoRetry, []error{errTransient}, 1, errTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.policy, logger, "test call", retryable, func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr.Error())
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	logger, err := testutils.GetLogger()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err = Retry(ctx, DefaultPolicy(5), logger, "cancelled call", func(error) bool { return true }, func() error {
		calls++
		return errTransient
	})
	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

func TestNewClient(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"with token", "ghp_secret", "Bearer ghp_secret"},
		{"anonymous", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(context.Background(), tt.token, time.Second)
			assert.Equal(t, time.Second, client.Timeout)
			resp, err := client.Get(server.URL)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, gotAuth)
		})
	}
}
