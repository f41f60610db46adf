package device

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/mux"

	"github.com/sdcc-labs/pollnode/internal/model"
	"github.com/sdcc-labs/pollnode/internal/model/entities"
	"github.com/sdcc-labs/pollnode/internal/model/messages"
	"github.com/sdcc-labs/pollnode/pkg/mqtt"
)

type published struct {
	topic   string
	qos     byte
	payload string
}

type fakePublisher struct {
	mu    sync.Mutex
	topic string
	sink  *[]published
}

func (p *fakePublisher) PublishMessage(payload string) error {
	return p.PublishMessageQos(0, false, payload)
}

func (p *fakePublisher) PublishMessageQos(qos byte, _ bool, payload string) error {
	p.mu.Lock()
	*p.sink = append(*p.sink, published{topic: p.topic, qos: qos, payload: payload})
	p.mu.Unlock()
	return nil
}

func (p *fakePublisher) Close() {}

func testFactory() (PublisherFactory, *[]published) {
	var sink []published
	return func(topic string) mqtt.IPublisher {
		return &fakePublisher{topic: topic, sink: &sink}
	}, &sink
}

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

func testZones() map[string]model.Zone {
	return map[string]model.Zone{
		"z1": {ID: "z1", Nodes: []entities.Node{
			{ZoneID: "z1", ID: "n1", Threshold: 4000, IntervalMs: 1000},
		}},
	}
}

func TestMessageHandler_UpdatesFleetStatus(t *testing.T) {
	svc := NewDeviceService(testZones(), nil)

	rd, _ := json.Marshal(model.NodeReading{ZoneID: "z1", NodeID: "n1", Raw: 1234, Pct: 30})
	if err := svc.MessageHandler("", fakeMessage{topic: "node/reading/z1/n1", payload: rd}); err != nil {
		t.Fatal(err)
	}
	evt, _ := json.Marshal(model.NodeEvent{ZoneID: "z1", NodeID: "n1", EventType: messages.SensorOverloadAlert, State: model.NodeError})
	if err := svc.MessageHandler("", fakeMessage{topic: "event/NodeEvent/z1/n1", payload: evt}); err != nil {
		t.Fatal(err)
	}

	snap := svc.snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot size = %d, want 1", len(snap))
	}
	st := snap[0]
	if st.LastReading != 1234 || st.State != model.NodeError || !st.Online {
		t.Errorf("status = %+v, want reading 1234, state error, online", st)
	}
}

func TestMessageHandler_CommandResultOverridesState(t *testing.T) {
	svc := NewDeviceService(testZones(), nil)

	res, _ := json.Marshal(model.CommandResultEvent{
		ZoneID: "z1", NodeID: "n1", Action: messages.ActionReset, Status: "OK", State: model.NodeIdle,
	})
	if err := svc.MessageHandler("", fakeMessage{topic: "event/CommandResult/z1/n1", payload: res}); err != nil {
		t.Fatal(err)
	}
	if st := svc.snapshot()[0]; st.State != model.NodeIdle {
		t.Errorf("state after result = %s, want idle", st.State)
	}
}

func TestStatusEndpoints(t *testing.T) {
	svc := NewDeviceService(testZones(), nil)
	rd, _ := json.Marshal(model.NodeReading{ZoneID: "z1", NodeID: "n1", Raw: 500, Pct: 12})
	_ = svc.MessageHandler("", fakeMessage{topic: "node/reading/z1/n1", payload: rd})

	r := mux.NewRouter()
	svc.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list []NodeStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].LastReading != 500 {
		t.Errorf("list = %+v", list)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes/z1/n1/status", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("single status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes/z1/ghost/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown node status = %d, want 404", rec.Code)
	}
}

func TestMessageHandler_ForwardsReadingsToLiveness(t *testing.T) {
	var forwarded int
	svc := NewDeviceService(testZones(), func(_ string, _ paho.Message) error {
		forwarded++
		return nil
	})

	rd, _ := json.Marshal(model.NodeReading{ZoneID: "z1", NodeID: "n1", Raw: 10})
	_ = svc.MessageHandler("", fakeMessage{topic: "node/reading/z1/n1", payload: rd})
	evt, _ := json.Marshal(model.NodeEvent{ZoneID: "z1", NodeID: "n1", EventType: messages.EnteredIdle})
	_ = svc.MessageHandler("", fakeMessage{topic: "event/NodeEvent/z1/n1", payload: evt})

	if forwarded != 1 {
		t.Errorf("readings forwarded = %d, want 1 (events must not count)", forwarded)
	}
}
