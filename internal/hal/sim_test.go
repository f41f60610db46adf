package hal

import "testing"

func TestElapsed_Wraparound(t *testing.T) {
	cases := []struct {
		now, then, want Millis
	}{
		{1500, 500, 1000},
		{0, 0, 0},
		{0x00000100, 0xFFFFFF00, 0x200}, // counter wrapped between samples
		{0, 0xFFFFFFFF, 1},
	}
	for _, c := range cases {
		if got := Elapsed(c.now, c.then); got != c.want {
			t.Errorf("Elapsed(%#x, %#x) = %d, want %d", c.now, c.then, got, c.want)
		}
	}
}

func TestSimPin_RecordsHistory(t *testing.T) {
	p := NewSimPin()
	p.Set(true)
	p.Set(false)
	p.Set(true)

	if !p.High() {
		t.Error("pin low after final Set(true)")
	}
	want := []bool{true, false, true}
	got := p.History()
	if len(got) != len(want) {
		t.Fatalf("history length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScriptedReader_RepeatsLastValue(t *testing.T) {
	r := NewScriptedReader(10, 20)
	for i, want := range []uint16{10, 20, 20, 20} {
		if got := r.Read(); got != want {
			t.Errorf("read %d = %d, want %d", i, got, want)
		}
	}
}

func TestSimClock_AdvanceWraps(t *testing.T) {
	c := NewSimClock(0xFFFFFFFF)
	c.Advance(2)
	if got := c.Millis(); got != 1 {
		t.Errorf("Millis after wrap = %d, want 1", got)
	}
}
