// Package controller implements the polling state machine of a node: a
// three-state cycle gated by elapsed time, with an overload check on every
// tick that latches the error state.
package controller

import (
	"time"

	"github.com/sdcc-labs/pollnode/internal/hal"
	"github.com/sdcc-labs/pollnode/internal/model"
	"github.com/sdcc-labs/pollnode/internal/model/messages"
)

// Notifier receives the controller's notifications. The runtime adapts this
// onto MQTT; tests plug in a recorder.
type Notifier interface {
	Notify(evt model.NodeEvent)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(evt model.NodeEvent)

func (f NotifierFunc) Notify(evt model.NodeEvent) { f(evt) }

const (
	defaultAlarmOnFor  hal.Millis = 100
	defaultAlarmOffFor hal.Millis = 100
)

// Config is immutable after construction: a Configure command is applied by
// swapping in a new controller, never by mutating a live one.
type Config struct {
	ZoneID string
	NodeID string

	// Interval is the minimum elapsed time between timer-driven state
	// transitions, in monotonic milliseconds.
	Interval hal.Millis

	// Threshold is the raw reading above which the node latches into the
	// error state.
	Threshold uint16

	// Alarm blink phase durations. Zero values take the defaults.
	AlarmOnFor  hal.Millis
	AlarmOffFor hal.Millis

	// BlockingAlarm selects the faithful busy-wait blink instead of the
	// per-tick phase timer. Only the blink blocks; everything else in
	// Tick stays non-blocking either way.
	BlockingAlarm bool
}

// PollingController owns the current state and the timestamp of the last
// interval-driven transition. It is single-owner: one goroutine calls
// Initialize once and then Tick repeatedly; there is no internal locking.
type PollingController struct {
	cfg      Config
	pin      hal.DigitalPin
	adc      hal.AnalogReader
	notifier Notifier
	sleeper  hal.Sleeper

	state          model.NodeState
	lastTransition hal.Millis
	lastReading    uint16
	alarm          alarm
}

func New(cfg Config, pin hal.DigitalPin, adc hal.AnalogReader, notifier Notifier) *PollingController {
	if cfg.AlarmOnFor == 0 {
		cfg.AlarmOnFor = defaultAlarmOnFor
	}
	if cfg.AlarmOffFor == 0 {
		cfg.AlarmOffFor = defaultAlarmOffFor
	}
	c := &PollingController{
		cfg:      cfg,
		pin:      pin,
		adc:      adc,
		notifier: notifier,
		state:    model.NodeIdle,
	}
	c.alarm = alarm{onFor: cfg.AlarmOnFor, offFor: cfg.AlarmOffFor}
	if cfg.BlockingAlarm {
		c.sleeper = hal.TimeSleeper{}
	}
	return c
}

// SetSleeper overrides the sleeper used by the blocking alarm variant.
func (c *PollingController) SetSleeper(s hal.Sleeper) { c.sleeper = s }

// Initialize puts the output line low and the machine into Idle. Called
// exactly once before any Tick. Cannot fail on the supported HAL.
func (c *PollingController) Initialize() {
	c.pin.Set(false)
	c.state = model.NodeIdle
	c.lastTransition = 0
	c.alarm.active = false
	c.notify(messages.SystemInitialized, 0)
	c.notify(messages.WaitingForInput, 0)
}

// Tick runs one scheduler pass: advance the state machine if the interval
// has elapsed, then always sample the input. The overload check runs last so
// its error override wins within the tick.
func (c *PollingController) Tick(now hal.Millis) {
	if hal.Elapsed(now, c.lastTransition) >= c.cfg.Interval {
		c.lastTransition = now
		c.advanceState(now)
	}
	if c.state == model.NodeError && !c.cfg.BlockingAlarm {
		c.alarm.step(now, c.pin)
	}
	c.sampleAndCheck(now)
}

func (c *PollingController) advanceState(now hal.Millis) {
	switch c.state {
	case model.NodeIdle:
		c.pin.Set(false)
		c.notify(messages.EnteredIdle, 0)
		c.state = model.NodeActive
	case model.NodeActive:
		c.pin.Set(true)
		c.notify(messages.EnteredActive, 0)
		c.state = model.NodeIdle
	case model.NodeError:
		// self-loop; the non-blocking blink is stepped from Tick
		if c.cfg.BlockingAlarm {
			c.blockingBlink()
		}
	}
}

func (c *PollingController) sampleAndCheck(now hal.Millis) {
	r := c.adc.Read()
	c.lastReading = r
	if r <= c.cfg.Threshold {
		return
	}
	if c.state != model.NodeError {
		c.state = model.NodeError
		c.alarm.trigger(now, c.pin)
	}
	// re-emitted on every tick the overload persists: continuous alarm,
	// not edge-triggered
	c.notify(messages.SensorOverloadAlert, r)
}

// Reset clears the error latch. It is the only exit from the error state and
// is never taken by the controller on its own.
func (c *PollingController) Reset(now hal.Millis) {
	c.alarm.reset(c.pin)
	c.state = model.NodeIdle
	c.lastTransition = now
	c.notify(messages.WaitingForInput, 0)
}

func (c *PollingController) State() model.NodeState { return c.state }

func (c *PollingController) LastReading() uint16 { return c.lastReading }

func (c *PollingController) notify(eventType string, reading uint16) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(model.NodeEvent{
		ZoneID:    c.cfg.ZoneID,
		NodeID:    c.cfg.NodeID,
		EventType: eventType,
		Message:   messages.EventMessage(eventType),
		State:     c.state,
		Reading:   reading,
		Timestamp: time.Now().UTC(),
	})
}
