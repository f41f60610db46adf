package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sdcc-labs/pollnode/internal/model/entities"
	msg "github.com/sdcc-labs/pollnode/internal/model/messages"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func capture(t *testing.T, topic string, payload interface{}) []CommonEvent {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	var got []CommonEvent
	h := NewMQTTHandler(func(evt CommonEvent) { got = append(got, evt) })
	if err := h.Handle("", fakeMessage{topic: topic, payload: b}); err != nil {
		t.Fatal(err)
	}
	return got
}

func TestHandle_Reading(t *testing.T) {
	got := capture(t, "node/reading/z1/n1", msg.NodeReading{
		ZoneID: "z1", NodeID: "n1", Raw: 1200, Pct: 29, Timestamp: time.Now(),
	})
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	evt := got[0]
	if evt.EventType != "node.reading" || evt.SourceService != "node-runtime" {
		t.Errorf("event = %+v", evt)
	}
	if evt.Fields["raw"] != int64(1200) {
		t.Errorf("raw field = %v", evt.Fields["raw"])
	}
}

func TestHandle_AggregatedReading(t *testing.T) {
	got := capture(t, "node/aggregated/z1/n1", msg.NodeReading{
		ZoneID: "z1", NodeID: "n1", Raw: 800, Pct: 19, Aggregated: true, Timestamp: time.Now(),
	})
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].SourceService != "aggregator" || got[0].Fields["aggregated"] != true {
		t.Errorf("event = %+v", got[0])
	}
}

func TestHandle_OverloadAlertSeverity(t *testing.T) {
	got := capture(t, "event/NodeEvent/z1/n1", msg.NodeEvent{
		ZoneID: "z1", NodeID: "n1",
		EventType: msg.SensorOverloadAlert, Message: msg.EventMessage(msg.SensorOverloadAlert),
		State: entities.NodeError, Reading: 4200, Timestamp: time.Now(),
	})
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	evt := got[0]
	if evt.Severity != "warning" {
		t.Errorf("severity = %s, want warning", evt.Severity)
	}
	if evt.Fields["reading"] != int64(4200) || evt.Fields["state"] != "error" {
		t.Errorf("fields = %+v", evt.Fields)
	}
}

func TestHandle_StateEventSeverityInfo(t *testing.T) {
	got := capture(t, "event/NodeEvent/z1/n1", msg.NodeEvent{
		ZoneID: "z1", NodeID: "n1",
		EventType: msg.EnteredActive, State: entities.NodeIdle, Timestamp: time.Now(),
	})
	if len(got) != 1 || got[0].Severity != "info" {
		t.Errorf("got = %+v, want one info event", got)
	}
}

func TestHandle_CommandResult(t *testing.T) {
	got := capture(t, "event/CommandResult/z1/n1", msg.CommandResultEvent{
		ZoneID: "z1", NodeID: "n1", TicketID: "t-9",
		Action: msg.ActionReset, Status: "FAIL", Reason: "timeout",
		State: entities.NodeError, Timestamp: time.Now(),
	})
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	evt := got[0]
	if evt.EventType != "node.command_result" || evt.Severity != "warning" {
		t.Errorf("event = %+v", evt)
	}
	if evt.Fields["ticket_id"] != "t-9" {
		t.Errorf("fields = %+v", evt.Fields)
	}
}

func TestHandle_IDsFallBackToTopic(t *testing.T) {
	// payload without ids, topic carries them
	got := capture(t, "node/reading/z7/n3", msg.NodeReading{Raw: 10, Timestamp: time.Now()})
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].ZoneID != "z7" || got[0].NodeID != "n3" {
		t.Errorf("ids = %s/%s, want z7/n3", got[0].ZoneID, got[0].NodeID)
	}
}

func TestHandle_UnknownTopicIgnored(t *testing.T) {
	var calls int
	h := NewMQTTHandler(func(CommonEvent) { calls++ })
	if err := h.Handle("", fakeMessage{topic: "something/else", payload: []byte("{}")}); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("sink called %d times for unknown topic", calls)
	}
}
