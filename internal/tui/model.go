// Package tui renders alert dialogs with bubbletea.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type dialog struct {
	id       int
	title    string
	message  string
	buttons  []string
	cancel   int
	focus    int
	selected bool
	onTap    func(int)
}

func (d *dialog) firstOther() int {
	if d.cancel == 0 && len(d.buttons) > 1 {
		return 1
	}
	return 0
}

// Model is the bubbletea model hosting at most one dialog at a time.
type Model struct {
	dialog        *dialog
	keys          keyMap
	help          help.Model
	width         int
	height        int
	quitOnDismiss bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// QuitOnDismiss makes the program exit once the dialog is dismissed.
func QuitOnDismiss() ModelOption {
	return func(m *Model) {
		m.quitOnDismiss = true
	}
}

// NewModel creates an empty model.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		keys:  defaultKeyMap(),
		help:  help.New(),
		width: defaultWidth,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case ShowMsg:
		d := &dialog{
			id:      msg.ID,
			title:   msg.Title,
			message: msg.Message,
			buttons: append([]string(nil), msg.Buttons...),
			cancel:  msg.CancelIndex,
			onTap:   msg.OnTap,
		}
		d.focus = d.firstOther()
		m.dialog = d
		return m, nil
	case MessageMsg:
		if m.dialog != nil && m.dialog.id == msg.ID {
			m.dialog.message = msg.Text
		}
		return m, nil
	case DismissMsg:
		if m.dialog == nil || m.dialog.id != msg.ID {
			return m, nil
		}
		m.dialog = nil
		if m.quitOnDismiss {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	if d == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if d.selected {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tap(m.cancelOrFirst())
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		d.focus = (d.focus + 1) % len(d.buttons)
	case key.Matches(msg, m.keys.Prev):
		d.focus = (d.focus - 1 + len(d.buttons)) % len(d.buttons)
	case key.Matches(msg, m.keys.Select):
		m.tap(d.focus)
	case key.Matches(msg, m.keys.Cancel):
		if d.cancel >= 0 {
			m.tap(d.cancel)
		}
	case key.Matches(msg, m.keys.Pick):
		index := int(msg.String()[0] - '1')
		if index < len(d.buttons) {
			d.focus = index
			m.tap(index)
		}
	}
	return m, nil
}

func (m *Model) cancelOrFirst() int {
	if m.dialog.cancel >= 0 {
		return m.dialog.cancel
	}
	return 0
}

// tap reports the selection; the dialog stays on screen until dismissed.
func (m *Model) tap(index int) {
	d := m.dialog
	d.selected = true
	if d.onTap != nil {
		d.onTap(index)
	}
}
