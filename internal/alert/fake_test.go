package alert

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

type fakeDialog struct {
	mu        sync.Mutex
	title     string
	message   string
	buttons   []string
	messages  []string
	shown     int
	dismissed int
	onTap     func(index int)
}

func (d *fakeDialog) Show() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown++
	return nil
}

func (d *fakeDialog) SetMessage(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, text)
}

func (d *fakeDialog) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dismissed++
}

func (d *fakeDialog) tap(index int) {
	d.onTap(index)
}

func (d *fakeDialog) messageUpdates() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.messages))
	copy(out, d.messages)
	return out
}

func (d *fakeDialog) dismissCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dismissed
}

type fakePresenter struct {
	mu        sync.Mutex
	dialogs   []*fakeDialog
	createErr error
}

func (p *fakePresenter) Create(title, message string, buttons []string, onTap func(index int)) (Dialog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	d := &fakeDialog{title: title, message: message, buttons: buttons, onTap: onTap}
	p.dialogs = append(p.dialogs, d)
	return d, nil
}

func (p *fakePresenter) dialog(t *testing.T, i int) *fakeDialog {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.Greater(t, len(p.dialogs), i, "dialog %d was not created", i)
	return p.dialogs[i]
}

type handlerCall struct {
	session *Session
	index   int
}

type recordingHandler struct {
	mu    sync.Mutex
	calls []handlerCall
}

func (h *recordingHandler) handle(s *Session, index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, handlerCall{session: s, index: index})
}

func (h *recordingHandler) snapshot() []handlerCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]handlerCall, len(h.calls))
	copy(out, h.calls)
	return out
}

func newTestManager(t *testing.T) (*Manager, *fakePresenter, *clockwork.FakeClock) {
	t.Helper()
	presenter := &fakePresenter{}
	clock := clockwork.NewFakeClock()
	m := NewManager(presenter, WithClock(clock))
	t.Cleanup(m.Close)
	return m, presenter, clock
}

// flush waits until every task posted so far has run on the manager loop.
func flush(t *testing.T, m *Manager) {
	t.Helper()
	require.True(t, m.loop.Do(func() {}))
}

// tick waits for the pending countdown timer and advances past it.
func tick(t *testing.T, clock *clockwork.FakeClock) {
	t.Helper()
	waitTimers(t, clock, 1)
	clock.Advance(TickInterval)
}

func waitTimers(t *testing.T, clock *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, n))
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session was not torn down")
	}
}

const (
	timeoutWait  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)
