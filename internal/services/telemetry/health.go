package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// ConnStatus è quanto gli handler di salute osservano del client MQTT.
type ConnStatus interface {
	IsConnectionOpen() bool
}

// SubState traccia quante sottoscrizioni della pipeline sono attive rispetto
// a quelle attese dalla configurazione.
type SubState struct {
	mu       sync.Mutex
	expected int
	active   int
}

func NewSubState(expected int) *SubState { return &SubState{expected: expected} }

// MarkSubscribed registra una sottoscrizione andata a buon fine.
func (s *SubState) MarkSubscribed() {
	s.mu.Lock()
	s.active++
	s.mu.Unlock()
}

func (s *SubState) Counts() (active, expected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.expected
}

// Ready: tutti i topic attesi sono sottoscritti.
func (s *SubState) Ready() bool {
	active, expected := s.Counts()
	return expected > 0 && active >= expected
}

type healthHandler struct {
	conn   ConnStatus
	influx influxdb2.Client
	subs   *SubState
	writer *Writer
}

func NewHealthHandler(conn ConnStatus, i influxdb2.Client, subs *SubState, w *Writer) http.Handler {
	return &healthHandler{conn: conn, influx: i, subs: subs, writer: w}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	type status struct {
		Status           string  `json:"status"`
		MQTTConnected    bool    `json:"mqtt_connected"`
		InfluxOK         bool    `json:"influx_ok"`
		TopicsSubscribed int     `json:"topics_subscribed"`
		TopicsExpected   int     `json:"topics_expected"`
		SignalPoints     int64   `json:"signal_points"`
		EventPoints      int64   `json:"event_points"`
		OverloadAlerts   int64   `json:"overload_alerts"`
		LastIngestAgeS   float64 `json:"last_ingest_age_sec"`
		LastWriteErrorS  float64 `json:"last_write_error_age_sec"`
	}
	signals, events, overloads := h.writer.Counts()
	active, expected := h.subs.Counts()
	st := status{
		MQTTConnected:    h.conn != nil && h.conn.IsConnectionOpen(),
		InfluxOK:         h.influx != nil, // esistenza client (check leggero)
		TopicsSubscribed: active,
		TopicsExpected:   expected,
		SignalPoints:     signals,
		EventPoints:      events,
		OverloadAlerts:   overloads,
		LastIngestAgeS:   h.writer.LastIngestAge().Seconds(),
		LastWriteErrorS:  h.writer.LastErrorAge().Seconds(),
	}

	// ok se deps e sottoscrizioni ok e nessun errore recente di scrittura
	switch {
	case st.MQTTConnected && st.InfluxOK && h.subs.Ready() && h.writer.LastErrorAge() > 30*time.Second:
		st.Status = "ok"
	case st.MQTTConnected || st.InfluxOK:
		st.Status = "degraded"
	default:
		st.Status = "down"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

// Handler /readyz: 200 solo se broker, sottoscrizioni e writer sono ok.
type readyHandler struct {
	conn     ConnStatus
	influx   influxdb2.Client
	subs     *SubState
	writer   *Writer
	minError time.Duration
}

func NewReadyHandler(conn ConnStatus, i influxdb2.Client, subs *SubState, w *Writer, minOkErrorAge time.Duration) http.Handler {
	return &readyHandler{conn: conn, influx: i, subs: subs, writer: w, minError: minOkErrorAge}
}

func (h *readyHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	ready := h.conn != nil && h.conn.IsConnectionOpen() &&
		h.influx != nil && h.subs.Ready() &&
		h.writer.LastErrorAge() > h.minError
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	w.Header().Set("Content-Type", "application/json")
	type resp struct {
		Ready bool `json:"ready"`
	}
	_ = json.NewEncoder(w).Encode(resp{Ready: ready})
}
