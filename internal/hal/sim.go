package hal

import (
	"sync"
	"time"
)

// SimPin records every level written to it. Safe for concurrent use so that
// tests can inspect it while a runtime goroutine drives the controller.
type SimPin struct {
	mu      sync.Mutex
	high    bool
	history []bool
}

func NewSimPin() *SimPin { return &SimPin{} }

func (p *SimPin) Set(high bool) {
	p.mu.Lock()
	p.high = high
	p.history = append(p.history, high)
	p.mu.Unlock()
}

func (p *SimPin) High() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

// History returns a copy of all levels written since creation.
func (p *SimPin) History() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]bool, len(p.history))
	copy(out, p.history)
	return out
}

// SimClock is a manually advanced clock for tests and scripted runs.
type SimClock struct {
	mu  sync.Mutex
	now Millis
}

func NewSimClock(start Millis) *SimClock { return &SimClock{now: start} }

func (c *SimClock) Millis() Millis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Advance(d Millis) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

func (c *SimClock) SetMillis(m Millis) {
	c.mu.Lock()
	c.now = m
	c.mu.Unlock()
}

// WallClock derives wrapping millis from the process monotonic clock.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock { return &WallClock{start: time.Now()} }

func (c *WallClock) Millis() Millis {
	return Millis(time.Since(c.start).Milliseconds())
}

// FixedReader always returns the same ADC value.
type FixedReader uint16

func (r FixedReader) Read() uint16 { return uint16(r) }

// ScriptedReader returns queued values in order, then repeats the last one.
type ScriptedReader struct {
	mu     sync.Mutex
	values []uint16
	idx    int
}

func NewScriptedReader(values ...uint16) *ScriptedReader {
	return &ScriptedReader{values: values}
}

func (r *ScriptedReader) Read() uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.idx]
	if r.idx < len(r.values)-1 {
		r.idx++
	}
	return v
}

// SimSleeper records requested delays instead of sleeping.
type SimSleeper struct {
	mu     sync.Mutex
	Slept  []Millis
	clock  *SimClock
	attach bool
}

// NewSimSleeper returns a sleeper that only records. If clock is non-nil the
// recorded delay is also applied to it, so blocking-alarm tests see time move.
func NewSimSleeper(clock *SimClock) *SimSleeper {
	return &SimSleeper{clock: clock, attach: clock != nil}
}

func (s *SimSleeper) SleepMillis(d Millis) {
	s.mu.Lock()
	s.Slept = append(s.Slept, d)
	s.mu.Unlock()
	if s.attach {
		s.clock.Advance(d)
	}
}

// TimeSleeper blocks on the real clock. This is the faithful busy-wait used
// by the blocking alarm variant.
type TimeSleeper struct{}

func (TimeSleeper) SleepMillis(d Millis) {
	time.Sleep(time.Duration(d) * time.Millisecond)
}
