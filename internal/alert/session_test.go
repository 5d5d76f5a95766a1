package alert

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAndTapInvokesHandlerOnce(t *testing.T) {
	m, presenter, _ := newTestManager(t)
	h := &recordingHandler{}

	s, err := m.Show("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
	require.NoError(t, err)
	flush(t, m)
	require.Equal(t, Shown, s.Visibility())

	d := presenter.dialog(t, 0)
	assert.Equal(t, "Title", d.title)
	assert.Equal(t, "Msg", d.message)
	assert.Equal(t, []string{"Cancel", "OK"}, d.buttons)

	d.tap(1)
	waitDone(t, s)

	calls := h.snapshot()
	require.Len(t, calls, 1)
	assert.Same(t, s, calls[0].session)
	assert.Equal(t, 1, calls[0].index)
	assert.Equal(t, Dismissed, s.Visibility())
	assert.Equal(t, 1, d.dismissCount())

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, "OK", res.Button)
	assert.Equal(t, SourceTap, res.Source)
	assert.Equal(t, s.ID(), res.SessionID)

	require.ErrorIs(t, s.Tap(0), ErrSessionClosed)
}

func TestShowInfoDismissesWithoutHandler(t *testing.T) {
	m, presenter, _ := newTestManager(t)

	s, err := m.ShowInfo("Title", "Msg", "OK")
	require.NoError(t, err)
	flush(t, m)

	d := presenter.dialog(t, 0)
	assert.Equal(t, []string{"OK"}, d.buttons)
	assert.Equal(t, 0, s.CancelButtonIndex())
	assert.Equal(t, -1, s.FirstOtherButtonIndex())

	d.tap(0)
	waitDone(t, s)

	assert.Equal(t, Dismissed, s.Visibility())
	assert.Equal(t, 1, d.dismissCount())
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, "OK", res.Button)
}

func TestShowOKButtonOrder(t *testing.T) {
	m, presenter, _ := newTestManager(t)

	s, err := m.ShowOK("Title", "Msg", "Cancel", "OK", nil)
	require.NoError(t, err)
	flush(t, m)

	assert.Equal(t, []string{"Cancel", "OK"}, presenter.dialog(t, 0).buttons)
	assert.Equal(t, 1, s.FirstOtherButtonIndex())
}

func TestButtonIndicesWithoutCancel(t *testing.T) {
	m, _, _ := newTestManager(t)

	s, err := m.New("Title", "Msg", "", []string{"A", "B"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, s.Buttons())
	assert.Equal(t, -1, s.CancelButtonIndex())
	assert.Equal(t, 0, s.FirstOtherButtonIndex())
	assert.Equal(t, Hidden, s.Visibility())
}

func TestNewRequiresAButton(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.New("Title", "Msg", "", nil, nil)
	require.ErrorIs(t, err, ErrNoButtons)
}

func TestShowWithTimeoutCountsDownAndFires(t *testing.T) {
	m, presenter, clock := newTestManager(t)
	h := &recordingHandler{}

	s, err := m.New("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
	require.NoError(t, err)
	require.NoError(t, s.ShowWithTimeout(3, 0, "%lus left"))

	tick(t, clock)
	tick(t, clock)
	tick(t, clock)
	waitDone(t, s)

	d := presenter.dialog(t, 0)
	assert.Equal(t, []string{"Msg 3s left", "Msg 2s left", "Msg 1s left"}, d.messageUpdates())

	calls := h.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, 0, calls[0].index)
	assert.Same(t, s, calls[0].session)

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, SourceTimeout, res.Source)
	assert.Equal(t, "Cancel", res.Button)
	assert.Equal(t, Dismissed, s.Visibility())
	assert.Equal(t, 1, d.dismissCount())
}

func TestTimeoutUpdatesMessageOncePerSecond(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%ds", n), func(t *testing.T) {
			m, presenter, clock := newTestManager(t)
			h := &recordingHandler{}

			s, err := m.New("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
			require.NoError(t, err)
			require.NoError(t, s.ShowWithTimeout(n, 1, "(%d)"))

			for i := 0; i < n; i++ {
				tick(t, clock)
			}
			waitDone(t, s)

			updates := presenter.dialog(t, 0).messageUpdates()
			require.Len(t, updates, n)
			for i, msg := range updates {
				assert.Equal(t, fmt.Sprintf("Msg (%d)", n-i), msg)
			}
			calls := h.snapshot()
			require.Len(t, calls, 1)
			assert.Equal(t, 1, calls[0].index)
		})
	}
}

func TestTapCancelsCountdown(t *testing.T) {
	const seconds = 4
	for k := 0; k < seconds; k++ {
		t.Run(fmt.Sprintf("after %d ticks", k), func(t *testing.T) {
			m, presenter, clock := newTestManager(t)
			h := &recordingHandler{}

			s, err := m.New("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
			require.NoError(t, err)
			require.NoError(t, s.ShowWithTimeout(seconds, 1, "(%d)"))

			for i := 0; i < k; i++ {
				tick(t, clock)
			}
			waitTimers(t, clock, 1)

			require.NoError(t, s.Tap(0))
			waitDone(t, s)
			waitTimers(t, clock, 0)

			clock.Advance(seconds * TickInterval)
			flush(t, m)

			assert.Len(t, presenter.dialog(t, 0).messageUpdates(), k+1)
			calls := h.snapshot()
			require.Len(t, calls, 1)
			assert.Equal(t, 0, calls[0].index)
			res, ok := s.Result()
			require.True(t, ok)
			assert.Equal(t, SourceTap, res.Source)
		})
	}
}

func TestResolveIsIdempotentUnderRace(t *testing.T) {
	m, _, _ := newTestManager(t)
	h := &recordingHandler{}

	s, err := m.Show("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
	require.NoError(t, err)

	require.True(t, m.loop.Do(func() {
		s.resolve(1, SourceTap)
		s.resolve(0, SourceTimeout)
	}))

	calls := h.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].index)
	res, _ := s.Result()
	assert.Equal(t, SourceTap, res.Source)
}

func TestDoubleTapInvokesHandlerOnce(t *testing.T) {
	m, presenter, _ := newTestManager(t)
	h := &recordingHandler{}

	s, err := m.Show("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
	require.NoError(t, err)
	flush(t, m)

	d := presenter.dialog(t, 0)
	d.tap(1)
	d.tap(0)
	waitDone(t, s)
	flush(t, m)

	calls := h.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].index)
	assert.Equal(t, 1, d.dismissCount())
}

func TestShowWithTimeoutRejectsInvalidArguments(t *testing.T) {
	m, presenter, _ := newTestManager(t)

	s, err := m.New("Title", "Msg", "Cancel", []string{"OK"}, nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		seconds int
		index   int
		want    error
	}{
		{"index past last button", 5, 2, ErrInvalidButtonIndex},
		{"negative index", 5, -1, ErrInvalidButtonIndex},
		{"zero seconds", 0, 0, ErrInvalidTimeout},
		{"negative seconds", -3, 1, ErrInvalidTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, s.ShowWithTimeout(tt.seconds, tt.index, "(%d)"), tt.want)
		})
	}

	flush(t, m)
	assert.Equal(t, Hidden, s.Visibility())
	presenter.mu.Lock()
	assert.Empty(t, presenter.dialogs)
	presenter.mu.Unlock()

	require.ErrorIs(t, s.Tap(7), ErrInvalidButtonIndex)
}

func TestCountdownWithoutTemplateStillFires(t *testing.T) {
	for _, format := range []string{"", "%s left", "%d of %d"} {
		t.Run(fmt.Sprintf("format %q", format), func(t *testing.T) {
			m, presenter, clock := newTestManager(t)
			h := &recordingHandler{}

			s, err := m.New("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
			require.NoError(t, err)
			require.NoError(t, s.ShowWithTimeout(2, 1, format))

			tick(t, clock)
			tick(t, clock)
			waitDone(t, s)

			assert.Empty(t, presenter.dialog(t, 0).messageUpdates())
			assert.Equal(t, "Msg", s.Message())
			calls := h.snapshot()
			require.Len(t, calls, 1)
			assert.Equal(t, 1, calls[0].index)
		})
	}
}

func TestTimeoutOnShownSessionDoesNotRepresent(t *testing.T) {
	m, presenter, clock := newTestManager(t)

	s, err := m.Show("Title", "Msg", "Cancel", []string{"OK"}, nil)
	require.NoError(t, err)
	require.NoError(t, s.ShowWithTimeout(2, 0, "(%d)"))
	waitTimers(t, clock, 1)

	presenter.mu.Lock()
	assert.Len(t, presenter.dialogs, 1)
	presenter.mu.Unlock()
	assert.Equal(t, "Msg (2)", s.Message())

	require.ErrorIs(t, s.ShowWithTimeout(2, 0, "(%d)"), ErrTimeoutActive)
	require.ErrorIs(t, s.Show(), ErrAlreadyPresented)
}

func TestPresenterFailureTearsDownWithoutResolution(t *testing.T) {
	m, presenter, _ := newTestManager(t)
	presenter.createErr = errors.New("no terminal")
	h := &recordingHandler{}

	s, err := m.Show("Title", "Msg", "Cancel", []string{"OK"}, h.handle)
	require.NoError(t, err)
	waitDone(t, s)

	_, ok := s.Result()
	assert.False(t, ok)
	assert.Equal(t, Dismissed, s.Visibility())
	assert.Empty(t, h.snapshot())
	require.ErrorIs(t, s.Tap(0), ErrSessionClosed)
}

func TestHandlerCanPresentAnotherAlert(t *testing.T) {
	m, presenter, _ := newTestManager(t)
	nested := make(chan *Session, 1)

	s, err := m.Show("Title", "Msg", "Cancel", []string{"OK"}, func(_ *Session, index int) {
		next, err := m.ShowInfo("Done", fmt.Sprintf("picked %d", index), "OK")
		if err == nil {
			nested <- next
		}
	})
	require.NoError(t, err)
	flush(t, m)

	presenter.dialog(t, 0).tap(1)
	waitDone(t, s)

	var next *Session
	select {
	case next = <-nested:
	case <-time.After(2 * time.Second):
		t.Fatal("nested alert was not created")
	}
	flush(t, m)
	assert.Equal(t, Shown, next.Visibility())
	assert.Equal(t, "picked 1", presenter.dialog(t, 1).message)
}
