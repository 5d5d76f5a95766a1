package alert

import (
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutRecorder struct {
	mu       sync.Mutex
	messages []string
	fired    []int
}

func (r *timeoutRecorder) setMessage(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
}

func (r *timeoutRecorder) fire(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, index)
}

func newTestController(t *testing.T, seconds int, format string) (*TimeoutController, *Loop, *clockwork.FakeClock, *timeoutRecorder) {
	t.Helper()
	loop := NewLoop()
	t.Cleanup(loop.Close)
	clock := clockwork.NewFakeClock()
	rec := &timeoutRecorder{}
	c := NewTimeoutController(clock, loop, TimeoutConfig{
		Seconds:     seconds,
		ButtonIndex: 2,
		BaseMessage: "Deploy?",
		Format:      format,
		SetMessage:  rec.setMessage,
		Fire:        rec.fire,
	})
	return c, loop, clock, rec
}

func TestTimeoutControllerFiresOnce(t *testing.T) {
	c, loop, clock, rec := newTestController(t, 2, "(%lus)")

	require.True(t, loop.Do(func() { assert.NoError(t, c.Start()) }))
	assert.Equal(t, TimeoutRunning, c.State())

	tick(t, clock)
	tick(t, clock)
	require.Eventually(t, func() bool {
		done := false
		loop.Do(func() { done = c.State() == TimeoutFired })
		return done
	}, timeoutWait, pollInterval)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"Deploy? (2s)", "Deploy? (1s)"}, rec.messages)
	assert.Equal(t, []int{2}, rec.fired)
	assert.Equal(t, 0, c.Remaining())
}

func TestTimeoutControllerCancelStopsTicks(t *testing.T) {
	c, loop, clock, rec := newTestController(t, 3, "(%d)")

	require.True(t, loop.Do(func() { assert.NoError(t, c.Start()) }))
	tick(t, clock)
	waitTimers(t, clock, 1)

	require.True(t, loop.Do(c.Cancel))
	waitTimers(t, clock, 0)
	clock.Advance(5 * TickInterval)
	require.True(t, loop.Do(func() {}))

	assert.Equal(t, TimeoutCancelled, c.State())
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.messages, 2)
	assert.Empty(t, rec.fired)
}

func TestTimeoutControllerQueuedTickAfterCancelIsInert(t *testing.T) {
	c, loop, _, rec := newTestController(t, 1, "(%d)")

	require.True(t, loop.Do(func() {
		assert.NoError(t, c.Start())
		c.Cancel()
		c.tick()
	}))

	assert.Equal(t, TimeoutCancelled, c.State())
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.messages, 1)
	assert.Empty(t, rec.fired)
}

func TestTimeoutControllerStartErrors(t *testing.T) {
	c, loop, _, _ := newTestController(t, 0, "")
	require.True(t, loop.Do(func() {
		assert.ErrorIs(t, c.Start(), ErrInvalidTimeout)
	}))

	c, loop, _, _ = newTestController(t, 2, "")
	require.True(t, loop.Do(func() {
		assert.NoError(t, c.Start())
		assert.ErrorIs(t, c.Start(), ErrTimeoutActive)
		c.Cancel()
		c.Cancel()
		assert.Equal(t, TimeoutCancelled, c.State())
	}))
}

func TestTimeoutStateString(t *testing.T) {
	assert.Equal(t, "idle", TimeoutIdle.String())
	assert.Equal(t, "running", TimeoutRunning.String())
	assert.Equal(t, "fired", TimeoutFired.String())
	assert.Equal(t, "cancelled", TimeoutCancelled.String())
}
