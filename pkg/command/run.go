package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/logstream"
	"github.com/LambdaTest/covgate/pkg/lumber"
)

type manager struct {
	logger  lumber.Logger
	timeout time.Duration
	secrets map[string]string
}

// NewExecutionManager returns an ExecutionManager that bounds every command by timeout
// and masks secrets in the output it logs.
func NewExecutionManager(timeout time.Duration, secrets map[string]string, logger lumber.Logger) core.ExecutionManager {
	return &manager{
		logger:  logger,
		timeout: timeout,
		secrets: secrets,
	}
}

// LookPath resolves name on $PATH unless override points to an executable.
func (m *manager) LookPath(name, override string) (string, error) {
	candidate := name
	if override != "" {
		candidate = override
	}
	path, err := exec.LookPath(candidate)
	if err != nil {
		m.logger.Debugf("failed to find executable %s, error: %v", candidate, err)
		return "", errs.ToolUnavailable(filepath.Base(candidate), err)
	}
	return path, nil
}

// Output runs the command and returns stdout. Stderr goes to the logger line by line.
func (m *manager) Output(ctx context.Context,
	commandType core.CommandType,
	dir string,
	name string,
	args ...string) ([]byte, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	logWriter := lumber.NewWriter(m.logger, string(commandType))
	defer logWriter.Close()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdout = &stdout
	cmd.Stderr = logstream.NewMasker(logWriter, m.secrets)

	m.logger.Debugf("Executing command of type %s: %s %v", commandType, name, args)
	start := time.Now()
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			m.logger.Errorf("command of type %s timed out after %s", commandType, m.timeout)
			return nil, errs.Retrieval(fmt.Sprintf("%s timed out after %s", commandType, m.timeout), ctx.Err())
		}
		m.logger.Errorf("command of type %s failed with error: %v", commandType, err)
		return nil, errs.Retrieval(fmt.Sprintf("%s exited with an error", commandType), err)
	}
	m.logger.Debugf("command of type %s finished in %s", commandType, time.Since(start))
	return stdout.Bytes(), nil
}
