// Package hal abstracts the hardware collaborators of a polling node.
// The real lines live on a microcontroller; the implementations here let the
// runtime and the tests run without hardware.
package hal

// Millis is a monotonic millisecond count since boot. It is unsigned on
// purpose: elapsed time must be computed as `now - then` so that the value
// stays correct when the counter wraps past 2^32.
type Millis uint32

// Elapsed returns the wraparound-safe distance from then to now.
func Elapsed(now, then Millis) Millis {
	return now - then
}

// DigitalPin is a single binary-state output line.
type DigitalPin interface {
	Set(high bool)
}

// AnalogReader samples a bounded analog input line. Readings are ADC counts
// in [0, MaxReading].
type AnalogReader interface {
	Read() uint16
}

// MaxReading is the upper bound of the ADC range (12-bit converter).
const MaxReading uint16 = 4095

// Clock supplies monotonic wrapping millisecond readings.
type Clock interface {
	Millis() Millis
}

// Sleeper is only used by the blocking alarm variant.
type Sleeper interface {
	SleepMillis(d Millis)
}
