package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	msg "github.com/sdcc-labs/pollnode/internal/model/messages"
)

type stubConn struct{ open bool }

func (c stubConn) IsConnectionOpen() bool { return c.open }

func TestHealthzReportsPipelineState(t *testing.T) {
	influx := influxdb2.NewClient("http://localhost:8086", "")
	defer influx.Close()

	w := NewWriter(newFakeWriteAPI())
	subs := NewSubState(1)
	subs.MarkSubscribed()

	w.Ingest(CommonEvent{
		EventType: msg.SensorOverloadAlert, SourceService: "node-runtime",
		ZoneID: "z1", NodeID: "n1", Severity: "warning",
		Fields:    map[string]interface{}{"reading": int64(4200)},
		Timestamp: time.Now(),
	})

	h := NewHealthHandler(stubConn{open: true}, influx, subs, w)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var st struct {
		Status           string `json:"status"`
		TopicsSubscribed int    `json:"topics_subscribed"`
		TopicsExpected   int    `json:"topics_expected"`
		EventPoints      int64  `json:"event_points"`
		OverloadAlerts   int64  `json:"overload_alerts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Status != "ok" {
		t.Errorf("status = %s, want ok", st.Status)
	}
	if st.TopicsSubscribed != 1 || st.TopicsExpected != 1 {
		t.Errorf("topics = %d/%d, want 1/1", st.TopicsSubscribed, st.TopicsExpected)
	}
	if st.EventPoints != 1 || st.OverloadAlerts != 1 {
		t.Errorf("event points = %d, overload alerts = %d, want 1 and 1", st.EventPoints, st.OverloadAlerts)
	}
}

func TestHealthzDegradedWhenBrokerDown(t *testing.T) {
	influx := influxdb2.NewClient("http://localhost:8086", "")
	defer influx.Close()

	w := NewWriter(newFakeWriteAPI())
	subs := NewSubState(1)
	subs.MarkSubscribed()

	h := NewHealthHandler(stubConn{open: false}, influx, subs, w)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var st struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Status != "degraded" {
		t.Errorf("status = %s, want degraded", st.Status)
	}
}

func TestReadyzRequiresAllSubscriptions(t *testing.T) {
	influx := influxdb2.NewClient("http://localhost:8086", "")
	defer influx.Close()

	w := NewWriter(newFakeWriteAPI())
	subs := NewSubState(2)

	h := NewReadyHandler(stubConn{open: true}, influx, subs, w, 2*time.Second)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code with missing subscriptions = %d, want 503", rec.Code)
	}

	subs.MarkSubscribed()
	subs.MarkSubscribed()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code with all subscriptions = %d, want 200", rec.Code)
	}
	var resp struct {
		Ready bool `json:"ready"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Ready {
		t.Error("ready = false with healthy pipeline")
	}
}
