// Package tmux runs tmux commands for the current server.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cristianoliveira/tmux-alert/internal/logging"
)

// DefaultTimeout is the default timeout for non-interactive tmux commands.
const DefaultTimeout = 5 * time.Second

// binary is the tmux executable. Can be changed for testing.
var binary = "tmux"

// Client runs tmux commands.
type Client interface {
	// Run executes a tmux command and returns stdout and stderr.
	Run(ctx context.Context, args ...string) (string, string, error)
	// Popup runs argv in a popup and blocks until it closes.
	Popup(ctx context.Context, opts PopupOptions, argv []string) error
}

// DefaultClient implements Client using exec.Command to run tmux.
type DefaultClient struct {
	socketName string
	timeout    time.Duration
}

// ClientOption is a functional option for configuring a DefaultClient.
type ClientOption func(*DefaultClient)

// WithSocketName selects a tmux server by socket name (tmux -L).
func WithSocketName(name string) ClientOption {
	return func(c *DefaultClient) {
		c.socketName = name
	}
}

// WithTimeout sets the timeout for tmux command execution.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DefaultClient) {
		c.timeout = timeout
	}
}

// NewDefaultClient creates a new DefaultClient with the given options.
func NewDefaultClient(opts ...ClientOption) *DefaultClient {
	client := &DefaultClient{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// InSession reports whether the process runs inside a tmux client.
func InSession() bool {
	return os.Getenv("TMUX") != ""
}

// Run executes a tmux command bounded by the client timeout.
func (c *DefaultClient) Run(ctx context.Context, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.run(ctx, args...)
}

func (c *DefaultClient) run(ctx context.Context, args ...string) (string, string, error) {
	start := time.Now()
	logger := logging.GetGlobal()

	cmdArgs := []string{}
	if c.socketName != "" {
		cmdArgs = append(cmdArgs, "-L", c.socketName)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, binary, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start)
	if err != nil {
		logger.Error("tmux command failed", "args", args, "duration", duration, "stderr", strings.TrimSpace(stderr.String()), "error", err)
		return stdout.String(), stderr.String(), fmt.Errorf("tmux command %v failed: %w", args, err)
	}
	logger.Debug("tmux command completed", "args", args, "duration", duration)
	return stdout.String(), stderr.String(), nil
}
