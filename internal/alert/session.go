package alert

import (
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/tmux-alert/internal/logging"
	"github.com/google/uuid"
)

// ButtonHandler is called once with the session and the selected button index.
type ButtonHandler func(s *Session, index int)

// Source tells how a session was resolved.
type Source string

const (
	// SourceTap is a button selected by the user.
	SourceTap Source = "tap"
	// SourceTimeout is a button selected by an expired countdown.
	SourceTimeout Source = "timeout"
)

// Resolution describes how a session ended.
type Resolution struct {
	SessionID string
	Title     string
	Message   string
	Index     int
	Button    string
	Source    Source
	At        time.Time
}

// Session is one alert presentation, from show to dismiss.
type Session struct {
	id      string
	manager *Manager
	title   string
	base    string
	table   *ButtonDispatchTable
	logger  logging.Logger

	// Loop-owned.
	dialog  Dialog
	timeout *TimeoutController
	source  Source

	mu         sync.Mutex
	visibility Visibility
	presented  bool
	timed      bool
	closed     bool
	message    string
	result     *Resolution
	done       chan struct{}
}

func newSession(m *Manager, title, message, cancelTitle string, otherTitles []string, handler ButtonHandler) *Session {
	s := &Session{
		id:         uuid.NewString(),
		manager:    m,
		title:      title,
		base:       message,
		message:    message,
		visibility: Hidden,
		done:       make(chan struct{}),
	}
	s.logger = m.logger.With("session_id", s.id)
	s.table = NewButtonDispatchTable(cancelTitle, otherTitles, func(index int) {
		s.record(index)
		if handler != nil {
			handler(s, index)
		}
	})
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Title returns the dialog title.
func (s *Session) Title() string { return s.title }

// Buttons returns the ordered button titles.
func (s *Session) Buttons() []string { return s.table.Titles() }

// CancelButtonIndex returns 0 when the dialog has a cancel button, -1 otherwise.
func (s *Session) CancelButtonIndex() int { return s.table.CancelIndex() }

// FirstOtherButtonIndex returns the index of the first non-cancel button, or -1.
func (s *Session) FirstOtherButtonIndex() int { return s.table.FirstOtherIndex() }

// Message returns the text currently displayed, countdown included.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Visibility returns the presentation state.
func (s *Session) Visibility() Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility
}

// Done is closed once the session is torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Result returns the resolution, if any.
func (s *Session) Result() (Resolution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Resolution{}, false
	}
	return *s.result, true
}

// Show presents the dialog.
func (s *Session) Show() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.presented {
		s.mu.Unlock()
		return ErrAlreadyPresented
	}
	s.presented = true
	s.mu.Unlock()

	if !s.manager.loop.Post(s.present) {
		return ErrSessionClosed
	}
	return nil
}

// ShowWithTimeout presents the dialog, if it is not shown yet, and selects
// buttonIndex automatically after seconds unless a button is tapped first.
//
// format is a countdown template such as "(closing in %lus)". An empty format
// leaves the message untouched. A malformed format is logged and treated as
// empty.
func (s *Session) ShowWithTimeout(seconds, buttonIndex int, format string) error {
	if !s.table.Valid(buttonIndex) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidButtonIndex, buttonIndex, s.table.Len())
	}
	if seconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, seconds)
	}
	if err := ValidateCountdownFormat(format); err != nil {
		s.logger.Warn("ignoring countdown format", "format", format, "error", err)
		format = ""
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.timed {
		s.mu.Unlock()
		return ErrTimeoutActive
	}
	s.timed = true
	needsPresent := !s.presented
	s.presented = true
	s.mu.Unlock()

	if !s.manager.loop.Post(func() {
		if needsPresent {
			s.present()
		}
		s.startTimeout(seconds, buttonIndex, format)
	}) {
		return ErrSessionClosed
	}
	return nil
}

// Tap reports a button selection. It is the inbound event for dialogs and
// can also be used to dismiss the alert programmatically.
func (s *Session) Tap(index int) error {
	if !s.table.Valid(index) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidButtonIndex, index, s.table.Len())
	}
	if s.isClosed() {
		return ErrSessionClosed
	}
	if !s.manager.loop.Post(func() { s.resolve(index, SourceTap) }) {
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) onTap(index int) {
	if err := s.Tap(index); err != nil {
		s.logger.Debug("tap ignored", "index", index, "error", err)
	}
}

func (s *Session) present() {
	if s.isClosed() {
		return
	}
	dialog, err := s.manager.presenter.Create(s.title, s.base, s.table.Titles(), s.onTap)
	if err != nil {
		s.logger.Error("failed to create dialog", "title", s.title, "error", err)
		s.teardown()
		return
	}
	s.dialog = dialog
	if err := dialog.Show(); err != nil {
		s.logger.Error("failed to show dialog", "title", s.title, "error", err)
		s.teardown()
		return
	}
	s.mu.Lock()
	s.visibility = Shown
	s.mu.Unlock()
	s.logger.Debug("alert shown", "title", s.title, "buttons", s.table.Len())
}

func (s *Session) startTimeout(seconds, buttonIndex int, format string) {
	if s.isClosed() {
		return
	}
	s.timeout = NewTimeoutController(s.manager.clock, s.manager.loop, TimeoutConfig{
		Seconds:     seconds,
		ButtonIndex: buttonIndex,
		BaseMessage: s.base,
		Format:      format,
		SetMessage:  s.setMessage,
		Fire: func(index int) {
			s.resolve(index, SourceTimeout)
		},
	})
	if err := s.timeout.Start(); err != nil {
		s.logger.Error("failed to start timeout", "error", err)
		return
	}
	s.logger.Debug("alert timeout started", "seconds", seconds, "index", buttonIndex)
}

func (s *Session) setMessage(text string) {
	if s.isClosed() || s.dialog == nil {
		return
	}
	s.dialog.SetMessage(text)
	s.mu.Lock()
	s.message = text
	s.mu.Unlock()
}

// resolve is the single terminal entry point shared by taps and the countdown.
func (s *Session) resolve(index int, source Source) {
	if s.isClosed() {
		return
	}
	if s.timeout != nil {
		s.timeout.Cancel()
	}
	s.source = source
	if !s.table.Resolve(index) {
		return
	}
	s.teardown()
}

// record runs inside the dispatch table before the user handler.
func (s *Session) record(index int) {
	res := Resolution{
		SessionID: s.id,
		Title:     s.title,
		Message:   s.base,
		Index:     index,
		Button:    s.table.Title(index),
		Source:    s.source,
		At:        s.manager.clock.Now(),
	}
	s.mu.Lock()
	s.result = &res
	s.mu.Unlock()
	s.logger.Info("alert resolved", "title", s.title, "index", index, "button", res.Button, "source", string(s.source))
}

func (s *Session) teardown() {
	if s.timeout != nil {
		s.timeout.Cancel()
	}
	if s.dialog != nil {
		s.dialog.Dismiss()
		s.dialog = nil
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.visibility = Dismissed
	s.mu.Unlock()
	close(s.done)
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
