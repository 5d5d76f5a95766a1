// Package hooks runs user scripts at alert lifecycle points.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/tmux-alert/internal/config"
	"github.com/cristianoliveira/tmux-alert/internal/logging"
)

// Hook points.
const (
	PreShow     = "pre-show"
	PostResolve = "post-resolve"
)

// Failure modes.
const (
	FailureIgnore = "ignore"
	FailureWarn   = "warn"
	FailureAbort  = "abort"
)

// DefaultTimeout bounds a single hook script.
const DefaultTimeout = 30 * time.Second

// Runner executes hook scripts found under Dir/<hook point>/.
type Runner struct {
	Dir         string
	Enabled     bool
	FailureMode string
	Timeout     time.Duration
	Stderr      io.Writer
	Logger      logging.Logger
}

// FromConfig builds a Runner from the global configuration.
func FromConfig() *Runner {
	return &Runner{
		Dir:         config.Get("hooks_dir", ""),
		Enabled:     config.GetBool("hooks_enabled", true),
		FailureMode: config.Get("hooks_failure_mode", FailureWarn),
		Timeout:     DefaultTimeout,
		Stderr:      os.Stderr,
		Logger:      logging.GetGlobal(),
	}
}

// Run executes every executable script for hookPoint in name order.
//
// env entries are KEY=VALUE pairs added to the script environment along with
// HOOK_POINT and HOOK_TIMESTAMP. A failing script returns an error only in
// abort mode; warn mode reports it on Stderr and continues.
func (r *Runner) Run(ctx context.Context, hookPoint string, env ...string) error {
	if r == nil || !r.Enabled || r.Dir == "" {
		return nil
	}
	scripts, err := r.scripts(hookPoint)
	if err != nil || len(scripts) == 0 {
		return nil
	}

	base := append(os.Environ(),
		"HOOK_POINT="+hookPoint,
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
		"TMUX_ALERT_HOOKS_FAILURE_MODE="+r.failureMode(),
	)
	if exe, err := os.Executable(); err == nil {
		base = append(base, "TMUX_ALERT_BINARY="+exe)
	}
	base = append(base, env...)

	for _, script := range scripts {
		if err := r.runScript(ctx, hookPoint, script, base); err != nil {
			switch r.failureMode() {
			case FailureAbort:
				return err
			case FailureWarn:
				fmt.Fprintf(r.stderr(), "warning: %v\n", err)
			}
		}
	}
	return nil
}

func (r *Runner) scripts(hookPoint string) ([]string, error) {
	dir := filepath.Join(r.Dir, hookPoint)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts, nil
}

func (r *Runner) runScript(ctx context.Context, hookPoint, path string, env []string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, path)
	cmd.Env = env
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	err := cmd.Run()
	duration := time.Since(start)

	name := filepath.Base(path)
	if output.Len() > 0 {
		r.stderr().Write(output.Bytes())
	}
	if err != nil {
		r.logger().Warn("hook failed", "hook_point", hookPoint, "script", name, "duration", duration, "error", err)
		return fmt.Errorf("hook %s/%s failed: %w, output: %s", hookPoint, name, err, strings.TrimSpace(output.String()))
	}
	r.logger().Debug("hook completed", "hook_point", hookPoint, "script", name, "duration", duration)
	return nil
}

func (r *Runner) failureMode() string {
	switch r.FailureMode {
	case FailureIgnore, FailureAbort:
		return r.FailureMode
	default:
		return FailureWarn
	}
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return io.Discard
	}
	return r.Stderr
}

func (r *Runner) logger() logging.Logger {
	if r.Logger == nil {
		return logging.GetGlobal()
	}
	return r.Logger
}
