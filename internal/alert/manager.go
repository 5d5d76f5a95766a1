package alert

import (
	"github.com/cristianoliveira/tmux-alert/internal/logging"
	"github.com/jonboulle/clockwork"
)

// Manager creates alert sessions on a Presenter.
//
// All sessions of a manager share one Loop, so their dialogs, ticks and taps
// are serialized. Sessions never observe each other.
type Manager struct {
	presenter Presenter
	loop      *Loop
	clock     clockwork.Clock
	logger    logging.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock driving countdowns.
func WithClock(clock clockwork.Clock) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(logger logging.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a manager and starts its loop.
func NewManager(presenter Presenter, opts ...Option) *Manager {
	m := &Manager{
		presenter: presenter,
		clock:     clockwork.NewRealClock(),
		logger:    logging.GetGlobal(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.loop = NewLoop()
	return m
}

// Close stops the manager's loop. Pending countdowns stop ticking and
// unresolved sessions stay unresolved.
func (m *Manager) Close() {
	m.loop.Close()
}

// New creates a session without presenting it.
//
// cancelTitle may be empty for dialogs without a cancel button. handler may
// be nil; it is called at most once with the selected button index.
func (m *Manager) New(title, message, cancelTitle string, otherTitles []string, handler ButtonHandler) (*Session, error) {
	if cancelTitle == "" && len(otherTitles) == 0 {
		return nil, ErrNoButtons
	}
	return newSession(m, title, message, cancelTitle, otherTitles, handler), nil
}

// Show creates a session and presents it.
func (m *Manager) Show(title, message, cancelTitle string, otherTitles []string, handler ButtonHandler) (*Session, error) {
	s, err := m.New(title, message, cancelTitle, otherTitles, handler)
	if err != nil {
		return nil, err
	}
	if err := s.Show(); err != nil {
		return nil, err
	}
	return s, nil
}

// ShowOK presents a two-button alert: cancelTitle at index 0 and okTitle at index 1.
func (m *Manager) ShowOK(title, message, cancelTitle, okTitle string, handler ButtonHandler) (*Session, error) {
	var others []string
	if okTitle != "" {
		others = []string{okTitle}
	}
	return m.Show(title, message, cancelTitle, others, handler)
}

// ShowInfo presents an informational alert with a single dismiss button and
// no handler.
func (m *Manager) ShowInfo(title, message, dismissTitle string) (*Session, error) {
	return m.Show(title, message, dismissTitle, nil, nil)
}
