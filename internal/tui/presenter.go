package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-alert/internal/alert"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Presenter creates dialogs hosted by a bubbletea program.
type Presenter struct {
	sender      Sender
	cancelIndex int
	nextID      atomic.Int64
}

// NewPresenter returns a presenter sending to sender. cancelIndex is the
// index of the cancel button in dialogs it creates, or -1 when they have none.
func NewPresenter(sender Sender, cancelIndex int) *Presenter {
	return &Presenter{sender: sender, cancelIndex: cancelIndex}
}

// Create implements alert.Presenter.
func (p *Presenter) Create(title, message string, buttons []string, onTap func(index int)) (alert.Dialog, error) {
	cancel := p.cancelIndex
	if cancel >= len(buttons) {
		cancel = -1
	}
	return &programDialog{
		id:     int(p.nextID.Add(1)),
		sender: p.sender,
		show: ShowMsg{
			Title:       title,
			Message:     message,
			Buttons:     append([]string(nil), buttons...),
			CancelIndex: cancel,
			OnTap:       onTap,
		},
	}, nil
}

type programDialog struct {
	id     int
	sender Sender
	show   ShowMsg
}

func (d *programDialog) Show() error {
	msg := d.show
	msg.ID = d.id
	d.sender.Send(msg)
	return nil
}

func (d *programDialog) SetMessage(text string) {
	d.sender.Send(MessageMsg{ID: d.id, Text: text})
}

func (d *programDialog) Dismiss() {
	d.sender.Send(DismissMsg{ID: d.id})
}
