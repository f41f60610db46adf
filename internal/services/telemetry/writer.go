package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"

	msg "github.com/sdcc-labs/pollnode/internal/model/messages"
)

// Writer è il sink della pipeline: normalizza i CommonEvent in punti Influx,
// li scrive via WriteAPI e tiene lo stato osservato da /healthz e /readyz
// (punti per misura, alert di overload, ultimo ingest, ultimo errore
// asincrono di scrittura).
type Writer struct {
	api api.WriteAPI

	mu         sync.RWMutex
	lastErr    time.Time
	lastIngest time.Time
	signals    int64
	events     int64
	overloads  int64
}

// NewWriter inizializza il writer e attiva il listener degli errori asincroni di Influx.
func NewWriter(w api.WriteAPI) *Writer {
	ww := &Writer{
		api:     w,
		lastErr: time.Now().Add(-24 * time.Hour), // di default "lontano nel tempo"
	}
	go func() {
		for err := range w.Errors() {
			if err != nil {
				ww.mu.Lock()
				ww.lastErr = time.Now()
				ww.mu.Unlock()
				log.Printf("influx write error: %v", err)
			}
		}
	}()
	return ww
}

// Ingest normalizza un evento della pipeline e lo scrive, aggiornando i
// contatori per misura.
func (w *Writer) Ingest(evt CommonEvent) {
	p := EventToPoint(evt)
	w.api.WritePoint(p)

	w.mu.Lock()
	w.lastIngest = time.Now()
	if p.Name() == MeasurementSignal {
		w.signals++
	} else {
		w.events++
	}
	if evt.EventType == msg.SensorOverloadAlert {
		w.overloads++
	}
	w.mu.Unlock()
}

// LastErrorAge ritorna da quanto tempo non si verificano errori di scrittura.
func (w *Writer) LastErrorAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	return time.Since(t)
}

// LastIngestAge ritorna da quanto tempo la pipeline non scrive un punto.
func (w *Writer) LastIngestAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastIngest
	w.mu.RUnlock()
	if t.IsZero() {
		return 99999 * time.Hour
	}
	return time.Since(t)
}

// Counts ritorna i punti scritti per misura e gli alert di overload visti.
func (w *Writer) Counts() (signals, events, overloads int64) {
	if w == nil {
		return 0, 0, 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.signals, w.events, w.overloads
}
