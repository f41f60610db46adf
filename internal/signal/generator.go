package signal

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sdcc-labs/pollnode/internal/hal"
)

// ====== Tunables ======
const (
	// defaultAmbient: livello di riposo della linea analogica (in [0..1]).
	defaultAmbient = 0.18

	// surgeGainPerMin: quanto velocemente una sorgente in surge satura la linea.
	surgeGainPerMin = 6.0

	// defaultNoise: ampiezza del rumore uniforme applicato ad ogni lettura.
	defaultNoise = 0.01
)

// Generator mantiene lo stato interno della linea analogica simulata e lo
// aggiorna nel tempo: decadimento verso l'ambiente quando è quieta, salita
// rapida durante una finestra di surge. Implements hal.AnalogReader.
type Generator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	last        time.Time
	level       float64 // [0..1]
	ambient     float64
	decayPerMin float64 // es. 0.05 → -5% full scale al minuto
	noise       float64

	surgeUntil time.Time
	surgeCap   float64
}

// NewGenerator crea un generatore con dato tasso di rilassamento per minuto.
// Seed fissato → sequenza deterministica nei test.
func NewGenerator(seed int64, decayPerMin float64) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		level:       defaultAmbient,
		ambient:     defaultAmbient,
		decayPerMin: math.Max(0, decayPerMin),
		noise:       defaultNoise,
	}
}

// SetAmbient overrides the resting level (fraction of full scale).
func (g *Generator) SetAmbient(a float64) {
	g.mu.Lock()
	g.ambient = clamp01(a)
	g.mu.Unlock()
}

// Surge drives the line toward cap (fraction of full scale) for the given
// window. Used to provoke the overload path.
func (g *Generator) Surge(cap float64, d time.Duration) {
	if d <= 0 {
		return
	}
	g.mu.Lock()
	g.surgeCap = clamp01(cap)
	g.surgeUntil = time.Now().Add(d)
	g.mu.Unlock()
}

// Read aggiorna lo stato interno e restituisce la lettura in ADC counts.
func (g *Generator) Read() uint16 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	dtMin := now.Sub(g.last).Minutes()
	if dtMin < 0 {
		dtMin = 0
	}
	g.last = now

	if now.Before(g.surgeUntil) {
		g.level = math.Min(g.surgeCap, g.level+surgeGainPerMin*dtMin)
	} else {
		switch {
		case g.level > g.ambient:
			g.level = math.Max(g.ambient, g.level-g.decayPerMin*dtMin)
		case g.level < g.ambient:
			g.level = math.Min(g.ambient, g.level+g.decayPerMin*dtMin)
		}
	}

	sample := g.level + (g.rng.Float64()*2-1)*g.noise
	return toCounts(clamp01(sample))
}

// Level returns the noise-free internal level, for inspection.
func (g *Generator) Level() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.level
}

// ===== Helpers =====

func toCounts(x float64) uint16 {
	return uint16(math.Round(x * float64(hal.MaxReading)))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
