package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// Alert esposto al gateway.
type Alert struct {
	ZoneID  string `json:"zone_id,omitempty"`
	NodeID  string `json:"node_id,omitempty"`
	Reading int64  `json:"reading"`
	Time    string `json:"time"` // RFC3339
}

// Reading esposto al gateway.
type Reading struct {
	ZoneID string `json:"zone_id,omitempty"`
	NodeID string `json:"node_id,omitempty"`
	Raw    int64  `json:"raw"`
	Time   string `json:"time"` // RFC3339
}

type queryParams struct {
	Minutes   int
	Limit     int
	TimeoutMS int
}

func parseQuery(r *http.Request, defMin, defLim, defTOms int) queryParams {
	q := r.URL.Query()
	get := func(k string, def, min, max int) int {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				if n < min {
					return min
				}
				if max > 0 && n > max {
					return max
				}
				return n
			}
		}
		return def
	}
	return queryParams{
		Minutes:   get("minutes", defMin, 1, 7*24*60),
		Limit:     get("limit", defLim, 1, 500),
		TimeoutMS: get("timeout_ms", defTOms, 200, 5000),
	}
}

func buildAlertFlux(bucket string, minutes, limit int) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == "node_event" and r.event_type == "node.alert.overload")
  |> filter(fn: (r) => r._field == "reading")
  |> keep(columns: ["_time","_value","zone_id","node_id"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, minutes, limit)
}

func buildReadingFlux(bucket string, minutes, limit int) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == "node_signal")
  |> filter(fn: (r) => r._field == "raw")
  |> keep(columns: ["_time","_value","zone_id","node_id"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, minutes, limit)
}

type fluxRow struct {
	zoneID string
	nodeID string
	value  int64
	ts     time.Time
}

func runFlux(w http.ResponseWriter, r *http.Request, influx influxdb2.Client, org, flux string, timeoutMS, limit int) []fluxRow {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeoutMS)*time.Millisecond)
	defer cancel()

	api := influx.QueryAPI(org)
	res, err := api.Query(ctx, flux)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Error", "influx-query-error")
		_, _ = w.Write([]byte("[]"))
		return nil
	}
	defer func() { _ = res.Close() }()

	out := make([]fluxRow, 0, limit)
	for res.Next() {
		rec := res.Record()

		var value int64
		switch v := rec.Value().(type) {
		case int64:
			value = v
		case float64:
			value = int64(v)
		case int:
			value = int64(v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				value = n
			}
		}

		row := fluxRow{value: value, ts: rec.Time()}
		if v, ok := rec.ValueByKey("zone_id").(string); ok {
			row.zoneID = v
		}
		if v, ok := rec.ValueByKey("node_id").(string); ok {
			row.nodeID = v
		}
		out = append(out, row)
	}
	if res.Err() != nil {
		w.Header().Set("X-Error", "influx-iter-error")
	}
	return out
}

// GET /events/alerts/latest?limit=20[&minutes=1440]
func NewAlertsLatestHandler(influx influxdb2.Client, org, bucket string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := parseQuery(r, 1440, 20, 2000)
		rows := runFlux(w, r, influx, org, buildAlertFlux(bucket, p.Minutes, p.Limit), p.TimeoutMS, p.Limit)
		if rows == nil {
			return
		}
		out := make([]Alert, 0, len(rows))
		for _, row := range rows {
			out = append(out, Alert{
				ZoneID:  row.zoneID,
				NodeID:  row.nodeID,
				Reading: row.value,
				Time:    row.ts.UTC().Format(time.RFC3339),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}

// GET /readings/latest?limit=50[&minutes=60]
func NewReadingsLatestHandler(influx influxdb2.Client, org, bucket string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := parseQuery(r, 60, 50, 2000)
		rows := runFlux(w, r, influx, org, buildReadingFlux(bucket, p.Minutes, p.Limit), p.TimeoutMS, p.Limit)
		if rows == nil {
			return
		}
		out := make([]Reading, 0, len(rows))
		for _, row := range rows {
			out = append(out, Reading{
				ZoneID: row.zoneID,
				NodeID: row.nodeID,
				Raw:    row.value,
				Time:   row.ts.UTC().Format(time.RFC3339),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}
