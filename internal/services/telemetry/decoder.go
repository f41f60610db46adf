package telemetry

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	msg "github.com/sdcc-labs/pollnode/internal/model/messages"
)

type CommonEvent struct {
	EventType     string // node.reading | node.state.* | node.alert.overload | node.command_result
	SourceService string // node-runtime | aggregator | device-service
	ZoneID        string
	NodeID        string
	Severity      string // info|warning|error
	Fields        map[string]interface{}
	Timestamp     time.Time
}

// MQTTHandler trasforma messaggi MQTT in CommonEvent e li passa a sink (Influx).
type MQTTHandler struct{ sink func(CommonEvent) }

func NewMQTTHandler(sink func(CommonEvent)) *MQTTHandler { return &MQTTHandler{sink: sink} }

func (h *MQTTHandler) Handle(_ string, m paho.Message) error {
	topic := m.Topic()
	payload := m.Payload()

	var (
		evt CommonEvent
		err error
	)
	switch {
	case strings.HasPrefix(topic, "node/reading/"):
		evt, err = decodeReading(topic, payload, "node/reading/", "node-runtime")
	case strings.HasPrefix(topic, "node/aggregated/"):
		evt, err = decodeReading(topic, payload, "node/aggregated/", "aggregator")
	case strings.HasPrefix(topic, "event/NodeEvent/"):
		evt, err = decodeNodeEvent(topic, payload)
	case strings.HasPrefix(topic, "event/CommandResult/"):
		evt, err = decodeCommandResult(topic, payload)
	default:
		return nil // ignora altri topic
	}
	if err != nil {
		return err
	}
	if h.sink != nil {
		h.sink(evt)
	}
	return nil
}

func decodeReading(topic string, payload []byte, prefix, source string) (CommonEvent, error) {
	var rd msg.NodeReading
	if err := json.Unmarshal(payload, &rd); err != nil {
		return CommonEvent{}, err
	}
	zoneID, nodeID := pickIDs(topic, rd.ZoneID, rd.NodeID, prefix)
	if zoneID == "" || nodeID == "" {
		return CommonEvent{}, errors.New("reading: missing zone/node")
	}
	return CommonEvent{
		EventType:     "node.reading",
		SourceService: source,
		ZoneID:        zoneID,
		NodeID:        nodeID,
		Severity:      "info",
		Fields: map[string]interface{}{
			"raw":        int64(rd.Raw),
			"pct":        int64(rd.Pct),
			"aggregated": rd.Aggregated,
		},
		Timestamp: rd.Timestamp,
	}, nil
}

func decodeNodeEvent(topic string, payload []byte) (CommonEvent, error) {
	var e msg.NodeEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return CommonEvent{}, err
	}
	zoneID, nodeID := pickIDs(topic, e.ZoneID, e.NodeID, "event/NodeEvent/")
	if zoneID == "" || nodeID == "" {
		return CommonEvent{}, errors.New("nodeEvent: missing zone/node")
	}
	sev := "info"
	if e.EventType == msg.SensorOverloadAlert {
		sev = "warning"
	}
	return CommonEvent{
		EventType:     e.EventType,
		SourceService: "node-runtime",
		ZoneID:        zoneID,
		NodeID:        nodeID,
		Severity:      sev,
		Fields: map[string]interface{}{
			"message": e.Message,
			"state":   string(e.State),
			"reading": int64(e.Reading),
		},
		Timestamp: e.Timestamp,
	}, nil
}

func decodeCommandResult(topic string, payload []byte) (CommonEvent, error) {
	var r msg.CommandResultEvent
	if err := json.Unmarshal(payload, &r); err != nil {
		return CommonEvent{}, err
	}
	zoneID, nodeID := pickIDs(topic, r.ZoneID, r.NodeID, "event/CommandResult/")
	if zoneID == "" || nodeID == "" {
		return CommonEvent{}, errors.New("commandResult: missing zone/node")
	}
	sev := "info"
	if strings.EqualFold(r.Status, "FAIL") {
		sev = "warning"
	}
	return CommonEvent{
		EventType:     "node.command_result",
		SourceService: "device-service",
		ZoneID:        zoneID,
		NodeID:        nodeID,
		Severity:      sev,
		Fields: map[string]interface{}{
			"action":    r.Action,
			"status":    r.Status,
			"reason":    r.Reason,
			"state":     string(r.State),
			"ticket_id": r.TicketID,
		},
		Timestamp: r.Timestamp,
	}, nil
}

// pickIDs usa payload, oppure topic "prefix/{zone}/{node}".
func pickIDs(topic, zoneID, nodeID, prefix string) (string, string) {
	if strings.TrimSpace(zoneID) != "" && strings.TrimSpace(nodeID) != "" {
		return zoneID, nodeID
	}
	suffix := strings.TrimPrefix(topic, prefix)
	parts := strings.Split(suffix, "/")
	if len(parts) >= 2 {
		return parts[0], parts[1]
	}
	return zoneID, nodeID
}
