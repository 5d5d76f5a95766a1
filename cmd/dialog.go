package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cristianoliveira/tmux-alert/internal/alert"
	"github.com/cristianoliveira/tmux-alert/internal/colors"
	"github.com/cristianoliveira/tmux-alert/internal/config"
	"github.com/cristianoliveira/tmux-alert/internal/history"
	"github.com/cristianoliveira/tmux-alert/internal/hooks"
	"github.com/cristianoliveira/tmux-alert/internal/logging"
	"github.com/jonboulle/clockwork"
)

// errNoSelection is returned when the dialog closed without a button being selected.
var errNoSelection = errors.New("alert closed without a selection")

// dialogRequest describes one dialog invocation.
type dialogRequest struct {
	Title            string
	Message          string
	Cancel           string
	Buttons          []string
	Info             bool
	Timeout          int
	TimeoutButton    int
	// HasTimeoutButton is false when the timeout button is left to the default.
	HasTimeoutButton bool
	Countdown        string
	Plain            bool
}

func (r dialogRequest) cancelIndex() int {
	if r.Cancel == "" {
		return -1
	}
	return 0
}

func (r dialogRequest) buttons() []string {
	var titles []string
	if r.Cancel != "" {
		titles = append(titles, r.Cancel)
	}
	return append(titles, r.Buttons...)
}

// newClock is the clock driving countdowns. Can be changed for testing.
var newClock = clockwork.NewRealClock

// runDialog shows req and blocks until it is resolved.
func runDialog(ctx context.Context, in io.Reader, out, ui io.Writer, req dialogRequest) (alert.Resolution, error) {
	logger := logging.GetGlobal()
	runner := hooks.FromConfig()
	runner.Stderr = ui

	if err := runner.Run(ctx, hooks.PreShow, showEnv(req)...); err != nil {
		return alert.Resolution{}, fmt.Errorf("pre-show hook aborted: %w", err)
	}

	fe := newFrontend(in, ui, req)
	manager := alert.NewManager(fe.Presenter(), alert.WithClock(newClock()), alert.WithLogger(logger))
	defer manager.Close()

	session, err := openSession(manager, req)
	if err != nil {
		return alert.Resolution{}, err
	}
	if err := fe.Run(session.Done()); err != nil {
		return alert.Resolution{}, fmt.Errorf("run dialog: %w", err)
	}

	res, ok := session.Result()
	if !ok {
		return alert.Resolution{}, errNoSelection
	}

	recordHistory(ctx, res)
	if err := runner.Run(ctx, hooks.PostResolve, resolveEnv(res)...); err != nil {
		colors.Warning(fmt.Sprintf("post-resolve hook failed: %v", err))
	}

	fmt.Fprintf(out, "%d\t%s\n", res.Index, res.Button)
	return res, nil
}

func openSession(manager *alert.Manager, req dialogRequest) (*alert.Session, error) {
	if req.Info {
		if req.Timeout > 0 {
			s, err := manager.New(req.Title, req.Message, req.Cancel, nil, nil)
			if err != nil {
				return nil, err
			}
			return s, s.ShowWithTimeout(req.Timeout, 0, req.Countdown)
		}
		return manager.ShowInfo(req.Title, req.Message, req.Cancel)
	}

	s, err := manager.New(req.Title, req.Message, req.Cancel, req.Buttons, nil)
	if err != nil {
		return nil, err
	}
	if req.Timeout <= 0 {
		return s, s.Show()
	}
	index := req.TimeoutButton
	if !req.HasTimeoutButton {
		index = defaultTimeoutButton(s)
	}
	return s, s.ShowWithTimeout(req.Timeout, index, req.Countdown)
}

// defaultTimeoutButton is the cancel button when present, else the first one.
func defaultTimeoutButton(s *alert.Session) int {
	if i := s.CancelButtonIndex(); i >= 0 {
		return i
	}
	return 0
}

func showEnv(req dialogRequest) []string {
	return []string{
		"ALERT_TITLE=" + req.Title,
		"ALERT_MESSAGE=" + req.Message,
		"ALERT_BUTTONS=" + strings.Join(req.buttons(), "\n"),
		"ALERT_TIMEOUT=" + strconv.Itoa(req.Timeout),
	}
}

func resolveEnv(res alert.Resolution) []string {
	return []string{
		"ALERT_SESSION_ID=" + res.SessionID,
		"ALERT_TITLE=" + res.Title,
		"ALERT_MESSAGE=" + res.Message,
		"ALERT_BUTTON_INDEX=" + strconv.Itoa(res.Index),
		"ALERT_BUTTON=" + res.Button,
		"ALERT_SOURCE=" + string(res.Source),
	}
}

func historyPath() string {
	return filepath.Join(config.Get("state_dir", ""), history.FileName)
}

func recordHistory(ctx context.Context, res alert.Resolution) {
	if !config.GetBool("history_enabled", true) {
		return
	}
	store, err := history.Open(historyPath())
	if err != nil {
		colors.Warning(fmt.Sprintf("history unavailable: %v", err))
		return
	}
	defer store.Close()

	if err := store.Record(ctx, res); err != nil {
		colors.Warning(fmt.Sprintf("failed to record history: %v", err))
		return
	}
	if _, err := store.Prune(ctx, config.GetInt("history_max_entries", 500)); err != nil {
		logging.GetGlobal().Warn("failed to prune history", "error", err)
	}
}
