package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	msg "github.com/sdcc-labs/pollnode/internal/model/messages"
)

type fakeWriteAPI struct {
	points []*write.Point
	errs   chan error
}

func newFakeWriteAPI() *fakeWriteAPI { return &fakeWriteAPI{errs: make(chan error, 1)} }

func (f *fakeWriteAPI) WriteRecord(string)                             {}
func (f *fakeWriteAPI) WritePoint(p *write.Point)                      { f.points = append(f.points, p) }
func (f *fakeWriteAPI) Flush()                                         {}
func (f *fakeWriteAPI) Errors() <-chan error                           { return f.errs }
func (f *fakeWriteAPI) SetWriteFailedCallback(api.WriteFailedCallback) {}

func TestWriterIngestCountsPerMeasurement(t *testing.T) {
	fw := newFakeWriteAPI()
	w := NewWriter(fw)

	w.Ingest(CommonEvent{
		EventType: "node.reading", SourceService: "node-runtime",
		ZoneID: "z1", NodeID: "n1", Severity: "info",
		Fields:    map[string]interface{}{"raw": int64(1000)},
		Timestamp: time.Now(),
	})
	w.Ingest(CommonEvent{
		EventType: msg.SensorOverloadAlert, SourceService: "node-runtime",
		ZoneID: "z1", NodeID: "n1", Severity: "warning",
		Fields:    map[string]interface{}{"reading": int64(4200)},
		Timestamp: time.Now(),
	})

	if len(fw.points) != 2 {
		t.Fatalf("points written = %d, want 2", len(fw.points))
	}
	if fw.points[0].Name() != MeasurementSignal || fw.points[1].Name() != MeasurementEvent {
		t.Errorf("measurements = %s, %s", fw.points[0].Name(), fw.points[1].Name())
	}
	signals, events, overloads := w.Counts()
	if signals != 1 || events != 1 || overloads != 1 {
		t.Errorf("counts = (%d, %d, %d), want (1, 1, 1)", signals, events, overloads)
	}
	if w.LastIngestAge() > time.Minute {
		t.Errorf("last ingest age = %v after ingest", w.LastIngestAge())
	}
}

func TestWriterFreshHasNoIngestAndNoRecentError(t *testing.T) {
	w := NewWriter(newFakeWriteAPI())

	if w.LastErrorAge() < time.Hour {
		t.Errorf("fresh writer reports recent error: %v", w.LastErrorAge())
	}
	if w.LastIngestAge() < time.Hour {
		t.Errorf("fresh writer reports recent ingest: %v", w.LastIngestAge())
	}
	if s, e, o := w.Counts(); s != 0 || e != 0 || o != 0 {
		t.Errorf("fresh counts = (%d, %d, %d)", s, e, o)
	}
}

func TestWriterTracksAsyncWriteErrors(t *testing.T) {
	fw := newFakeWriteAPI()
	w := NewWriter(fw)

	fw.errs <- errors.New("influx unreachable")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if w.LastErrorAge() < time.Hour {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("async write error not recorded")
}
