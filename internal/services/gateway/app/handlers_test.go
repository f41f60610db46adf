package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc"

	pb "github.com/sdcc-labs/pollnode/grpc/gen/go/nodecontrol"
)

type fakeControlClient struct {
	resetResp *pb.CommandResponse
	confResp  *pb.CommandResponse
	err       error

	lastReset *pb.ResetRequest
	lastConf  *pb.ConfigureRequest
}

func (c *fakeControlClient) ResetLatch(_ context.Context, in *pb.ResetRequest, _ ...grpc.CallOption) (*pb.CommandResponse, error) {
	c.lastReset = in
	return c.resetResp, c.err
}

func (c *fakeControlClient) Configure(_ context.Context, in *pb.ConfigureRequest, _ ...grpc.CallOption) (*pb.CommandResponse, error) {
	c.lastConf = in
	return c.confResp, c.err
}

type fakeRouter struct{ clients map[string]pb.NodeControlServiceClient }

func (r *fakeRouter) Get(zone string) (pb.NodeControlServiceClient, bool) {
	cli, ok := r.clients[zone]
	return cli, ok
}
func (r *fakeRouter) Close() {}

func testGateway(deviceURL, telemetryURL string, router NodeRouter) *Gateway {
	return NewGateway(Config{
		DeviceBaseURL:    deviceURL,
		TelemetryBaseURL: telemetryURL,
		StatusPath:       "/nodes/status",
		AlertsPath:       "/events/alerts/latest",
		HTTPTimeout:      2 * time.Second,
		BreakerFailures:  3,
		BreakerOpenFor:   time.Second,
		BreakerInterval:  time.Minute,
	}, router)
}

func TestHandleDashboard_MergesUpstreams(t *testing.T) {
	device := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]NodeStatus{
			{ZoneID: "z1", NodeID: "n2", State: "active", LastReading: 3000, Online: true},
			{ZoneID: "z1", NodeID: "n1", State: "idle", LastReading: 1000, Online: true},
		})
	}))
	defer device.Close()
	telemetry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]Alert{{ZoneID: "z1", NodeID: "n1", Reading: 4200, Time: "2026-01-01T00:00:00Z"}})
	}))
	defer telemetry.Close()

	gw := testGateway(device.URL, telemetry.URL, &fakeRouter{})

	rec := httptest.NewRecorder()
	gw.HandleDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard/data", nil))

	var data DashboardData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Nodes) != 2 || len(data.Alerts) != 1 {
		t.Fatalf("data = %+v", data)
	}
	// sorted by zone then node
	if data.Nodes[0].NodeID != "n1" {
		t.Errorf("nodes not sorted: %+v", data.Nodes)
	}
	if data.Stats["mean"] != 2000 || data.Stats["min"] != 1000 || data.Stats["max"] != 3000 {
		t.Errorf("stats = %v", data.Stats)
	}
}

func TestHandleDashboard_ServesLastGoodAlertsOnFailure(t *testing.T) {
	device := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]NodeStatus{})
	}))
	defer device.Close()

	healthy := true
	telemetry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]Alert{{NodeID: "n1", Reading: 4100, Time: "2026-01-01T00:00:00Z"}})
	}))
	defer telemetry.Close()

	gw := testGateway(device.URL, telemetry.URL, &fakeRouter{})

	// warm the cache
	rec := httptest.NewRecorder()
	gw.HandleDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard/data", nil))

	// upstream down: the cached alerts still come back
	healthy = false
	rec = httptest.NewRecorder()
	gw.HandleDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard/data", nil))

	var data DashboardData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Alerts) != 1 || data.Alerts[0].Reading != 4100 {
		t.Errorf("alerts = %+v, want cached alert", data.Alerts)
	}
}

func routedRequest(t *testing.T, gw *Gateway, method, url string, body *string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	gw.Routes(r)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, strings.NewReader(*body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleReset_RoutesToZone(t *testing.T) {
	cli := &fakeControlClient{resetResp: &pb.CommandResponse{Success: true, Message: "ok", TicketId: "t-1"}}
	gw := testGateway("", "", &fakeRouter{clients: map[string]pb.NodeControlServiceClient{"z1": cli}})

	rec := routedRequest(t, gw, http.MethodPost, "/nodes/z1/n1/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if cli.lastReset.GetZoneId() != "z1" || cli.lastReset.GetNodeId() != "n1" {
		t.Errorf("request = %+v", cli.lastReset)
	}
	var resp struct {
		Success  bool   `json:"success"`
		TicketID string `json:"ticket_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.TicketID != "t-1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandleReset_UnknownZone(t *testing.T) {
	gw := testGateway("", "", &fakeRouter{})
	rec := routedRequest(t, gw, http.MethodPost, "/nodes/zX/n1/reset", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", rec.Code)
	}
}

func TestHandleConfigure_ForwardsTuning(t *testing.T) {
	cli := &fakeControlClient{confResp: &pb.CommandResponse{Success: true, TicketId: "t-2"}}
	gw := testGateway("", "", &fakeRouter{clients: map[string]pb.NodeControlServiceClient{"z1": cli}})

	body := `{"threshold": 3500, "interval_ms": 750}`
	rec := routedRequest(t, gw, http.MethodPost, "/nodes/z1/n1/configure", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if cli.lastConf.GetThreshold() != 3500 || cli.lastConf.GetIntervalMs() != 750 {
		t.Errorf("request = %+v", cli.lastConf)
	}
}

func TestHandleConfigure_RejectedCommandIsConflict(t *testing.T) {
	cli := &fakeControlClient{confResp: &pb.CommandResponse{Success: false, Message: "node z1/n1 offline"}}
	gw := testGateway("", "", &fakeRouter{clients: map[string]pb.NodeControlServiceClient{"z1": cli}})

	body := `{"threshold": 3500, "interval_ms": 750}`
	rec := routedRequest(t, gw, http.MethodPost, "/nodes/z1/n1/configure", &body)
	if rec.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", rec.Code)
	}
}
