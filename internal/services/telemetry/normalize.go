package telemetry

import (
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Misure scritte dalla pipeline.
const (
	MeasurementSignal = "node_signal"
	MeasurementEvent  = "node_event"
)

// EventToPoint normalizza CommonEvent in un *write.Point per InfluxDB.
// Le letture vanno nella misura "node_signal", tutto il resto in "node_event".
func EventToPoint(evt CommonEvent) *write.Point {
	// Tag (solo stringhe)
	tags := map[string]string{
		"event_type":     evt.EventType,
		"source_service": evt.SourceService,
		"severity":       evt.Severity,
	}
	if evt.ZoneID != "" {
		tags["zone_id"] = evt.ZoneID
	}
	if evt.NodeID != "" {
		tags["node_id"] = evt.NodeID
	}

	fields := map[string]interface{}{}
	for k, v := range evt.Fields {
		fields[k] = v
	}

	// almeno un field per punto
	if _, ok := fields["count"]; !ok {
		fields["count"] = int64(1)
	}

	measurement := MeasurementEvent
	if evt.EventType == "node.reading" {
		measurement = MeasurementSignal
	}
	return influxdb2.NewPoint(measurement, tags, fields, evt.Timestamp)
}
