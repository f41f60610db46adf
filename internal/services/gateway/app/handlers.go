package app

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	pb "github.com/sdcc-labs/pollnode/grpc/gen/go/nodecontrol"
)

func (g *Gateway) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), g.cfg.HTTPTimeout)
	defer cancel()

	type res struct {
		key string
		val any
		err error
	}
	ch := make(chan res, 2)

	// Fetch in parallelo
	go func() {
		var nodes []NodeStatus
		err := g.device.GetJSON(ctx, &nodes)
		ch <- res{"nodes", nodes, err}
	}()
	go func() {
		var alerts []Alert
		err := g.alerts.GetJSON(ctx, &alerts)
		ch <- res{"alerts", alerts, err}
	}()

	data := DashboardData{
		Nodes:  []NodeStatus{},
		Alerts: []Alert{},
		Stats:  map[string]float64{},
	}

	for i := 0; i < 2; i++ {
		rv := <-ch
		switch rv.key {
		case "nodes":
			if ns, ok := rv.val.([]NodeStatus); ok && rv.err == nil {
				data.Nodes = ns
			}
		case "alerts":
			if as, ok := rv.val.([]Alert); ok && rv.err == nil && len(as) > 0 {
				data.Alerts = as
				g.mu.Lock()
				g.lastGoodAlerts = as
				g.mu.Unlock()
			} else {
				// upstream giù o vuoto: servi l'ultima cache valida
				g.mu.Lock()
				data.Alerts = g.lastGoodAlerts
				g.mu.Unlock()
				if data.Alerts == nil {
					data.Alerts = []Alert{}
				}
			}
		}
	}

	// Ordine nodi e statistiche per la UI
	sort.Slice(data.Nodes, func(i, j int) bool {
		if data.Nodes[i].ZoneID != data.Nodes[j].ZoneID {
			return data.Nodes[i].ZoneID < data.Nodes[j].ZoneID
		}
		return data.Nodes[i].NodeID < data.Nodes[j].NodeID
	})
	if n := len(data.Nodes); n > 0 {
		var sum, minv, maxv float64
		minv = math.MaxFloat64
		for _, s := range data.Nodes {
			v := float64(s.LastReading)
			sum += v
			if v < minv {
				minv = v
			}
			if v > maxv {
				maxv = v
			}
		}
		data.Stats["mean"] = math.Round(sum / float64(n))
		data.Stats["min"] = minv
		data.Stats["max"] = maxv
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

type commandResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	TicketID string `json:"ticket_id,omitempty"`
}

// HandleReset inoltra POST /nodes/{zone}/{node}/reset al control plane di zona.
func (g *Gateway) HandleReset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	zone, node := vars["zone"], vars["node"]

	cli, ok := g.router.Get(zone)
	if !ok {
		writeJSON(w, http.StatusNotFound, commandResponse{Message: "no control plane for zone " + zone})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), g.cfg.HTTPTimeout)
	defer cancel()

	resp, err := cli.ResetLatch(ctx, &pb.ResetRequest{ZoneId: zone, NodeId: node})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, commandResponse{Message: "control plane error: " + err.Error()})
		return
	}
	code := http.StatusOK
	if !resp.GetSuccess() {
		code = http.StatusConflict
	}
	writeJSON(w, code, commandResponse{
		Success:  resp.GetSuccess(),
		Message:  resp.GetMessage(),
		TicketID: resp.GetTicketId(),
	})
}

type configureRequest struct {
	Threshold  uint32 `json:"threshold"`
	IntervalMs uint32 `json:"interval_ms"`
}

// HandleConfigure inoltra POST /nodes/{zone}/{node}/configure al control plane.
func (g *Gateway) HandleConfigure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	zone, node := vars["zone"], vars["node"]

	var body configureRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, commandResponse{Message: "invalid body: " + err.Error()})
		return
	}

	cli, ok := g.router.Get(zone)
	if !ok {
		writeJSON(w, http.StatusNotFound, commandResponse{Message: "no control plane for zone " + zone})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), g.cfg.HTTPTimeout)
	defer cancel()

	resp, err := cli.Configure(ctx, &pb.ConfigureRequest{
		ZoneId:     zone,
		NodeId:     node,
		Threshold:  body.Threshold,
		IntervalMs: body.IntervalMs,
	})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, commandResponse{Message: "control plane error: " + err.Error()})
		return
	}
	code := http.StatusOK
	if !resp.GetSuccess() {
		code = http.StatusConflict
	}
	writeJSON(w, code, commandResponse{
		Success:  resp.GetSuccess(),
		Message:  resp.GetMessage(),
		TicketID: resp.GetTicketId(),
	})
}

// Routes registra tutte le rotte del gateway.
func (g *Gateway) Routes(r *mux.Router) {
	r.HandleFunc("/dashboard/data", g.HandleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{zone}/{node}/reset", g.HandleReset).Methods(http.MethodPost)
	r.HandleFunc("/nodes/{zone}/{node}/configure", g.HandleConfigure).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
