package alert

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// TickInterval is the countdown granularity.
const TickInterval = time.Second

// TimeoutState is the lifecycle state of a TimeoutController.
type TimeoutState int

const (
	TimeoutIdle TimeoutState = iota
	TimeoutRunning
	TimeoutFired
	TimeoutCancelled
)

func (s TimeoutState) String() string {
	switch s {
	case TimeoutIdle:
		return "idle"
	case TimeoutRunning:
		return "running"
	case TimeoutFired:
		return "fired"
	case TimeoutCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TimeoutConfig configures a TimeoutController.
type TimeoutConfig struct {
	// Seconds is the countdown length. Must be greater than zero.
	Seconds int
	// ButtonIndex is the index reported when the countdown expires.
	ButtonIndex int
	// BaseMessage is the message the countdown text is appended to.
	BaseMessage string
	// Format is the countdown template. Empty disables message updates.
	Format string
	// SetMessage receives every rendered message.
	SetMessage func(text string)
	// Fire is called once with ButtonIndex when the countdown expires.
	Fire func(index int)
}

// TimeoutController counts down once per second and fires a synthetic tap
// when it reaches zero.
//
// Every method except the timer callback must run on the owning Loop. Clock
// callbacks only post ticks to the loop, and a tick that runs after Cancel
// sees a terminal state and returns without effect.
type TimeoutController struct {
	clock clockwork.Clock
	loop  *Loop
	cfg   TimeoutConfig

	state     TimeoutState
	remaining int
	timer     clockwork.Timer
}

// NewTimeoutController creates an idle controller.
func NewTimeoutController(clock clockwork.Clock, loop *Loop, cfg TimeoutConfig) *TimeoutController {
	if cfg.SetMessage == nil {
		cfg.SetMessage = func(string) {}
	}
	if cfg.Fire == nil {
		cfg.Fire = func(int) {}
	}
	if ValidateCountdownFormat(cfg.Format) != nil {
		cfg.Format = ""
	}
	return &TimeoutController{
		clock:     clock,
		loop:      loop,
		cfg:       cfg,
		state:     TimeoutIdle,
		remaining: cfg.Seconds,
	}
}

// Start renders the initial countdown and schedules the first tick.
func (c *TimeoutController) Start() error {
	if c.state != TimeoutIdle {
		return ErrTimeoutActive
	}
	if c.cfg.Seconds <= 0 {
		return ErrInvalidTimeout
	}
	c.state = TimeoutRunning
	c.render()
	c.schedule()
	return nil
}

// Cancel stops the countdown. It has no effect once the controller fired.
func (c *TimeoutController) Cancel() {
	if c.state == TimeoutFired || c.state == TimeoutCancelled {
		return
	}
	c.state = TimeoutCancelled
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// State returns the current state.
func (c *TimeoutController) State() TimeoutState {
	return c.state
}

// Remaining returns the seconds left before firing.
func (c *TimeoutController) Remaining() int {
	return c.remaining
}

func (c *TimeoutController) schedule() {
	c.timer = c.clock.AfterFunc(TickInterval, func() {
		c.loop.Post(c.tick)
	})
}

func (c *TimeoutController) tick() {
	if c.state != TimeoutRunning {
		return
	}
	c.remaining--
	if c.remaining > 0 {
		c.render()
		c.schedule()
		return
	}
	c.state = TimeoutFired
	c.timer = nil
	c.cfg.Fire(c.cfg.ButtonIndex)
}

func (c *TimeoutController) render() {
	if c.cfg.Format == "" {
		return
	}
	c.cfg.SetMessage(ComposeMessage(c.cfg.BaseMessage, c.cfg.Format, c.remaining))
}
