package controller

import "github.com/sdcc-labs/pollnode/internal/hal"

// alarm is the two-phase blink on the output line while the error latch
// holds. The default variant keeps phase + phase-start the same way the
// interval gate does, toggling the line without stalling the tick loop.
type alarm struct {
	onFor  hal.Millis
	offFor hal.Millis

	active     bool
	lit        bool
	phaseStart hal.Millis
}

// trigger lights the line immediately on entering the error state.
func (a *alarm) trigger(now hal.Millis, pin hal.DigitalPin) {
	a.active = true
	a.lit = true
	a.phaseStart = now
	pin.Set(true)
}

// step toggles the line when the current phase has run its duration.
func (a *alarm) step(now hal.Millis, pin hal.DigitalPin) {
	if !a.active {
		return
	}
	phase := a.offFor
	if a.lit {
		phase = a.onFor
	}
	if hal.Elapsed(now, a.phaseStart) >= phase {
		a.lit = !a.lit
		a.phaseStart = now
		pin.Set(a.lit)
	}
}

func (a *alarm) reset(pin hal.DigitalPin) {
	a.active = false
	a.lit = false
	pin.Set(false)
}

// blockingBlink is the faithful variant: on for a fixed short duration, off
// for a fixed short duration, stalling the caller for the whole pattern.
func (c *PollingController) blockingBlink() {
	s := c.sleeper
	if s == nil {
		s = hal.TimeSleeper{}
	}
	c.pin.Set(true)
	s.SleepMillis(c.cfg.AlarmOnFor)
	c.pin.Set(false)
	s.SleepMillis(c.cfg.AlarmOffFor)
}
