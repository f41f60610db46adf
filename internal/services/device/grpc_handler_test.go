package device

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	pb "github.com/sdcc-labs/pollnode/grpc/gen/go/nodecontrol"
	"github.com/sdcc-labs/pollnode/internal/model"
	"github.com/sdcc-labs/pollnode/internal/model/messages"
)

func liveHandler(t *testing.T) (*GrpcHandler, *[]published) {
	t.Helper()
	factory, sink := testFactory()
	h := NewGrpcHandler(factory, "", testZones())
	h.SetLiveness(time.Minute, 10*time.Millisecond)
	// implicit heartbeat
	if err := h.OnNodeReading("", fakeMessage{topic: "node/reading/z1/n1"}); err != nil {
		t.Fatal(err)
	}
	return h, sink
}

func TestResetLatch_PublishesCommand(t *testing.T) {
	h, sink := liveHandler(t)

	resp, err := h.ResetLatch(context.Background(), &pb.ResetRequest{ZoneId: "z1", NodeId: "n1"})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.GetSuccess() || resp.GetTicketId() == "" {
		t.Fatalf("response = %+v, want success with ticket", resp)
	}

	if len(*sink) != 1 {
		t.Fatalf("published = %d, want 1", len(*sink))
	}
	p := (*sink)[0]
	if p.topic != "event/NodeCommand/z1/n1" {
		t.Errorf("topic = %s", p.topic)
	}
	if p.qos != 1 {
		t.Errorf("qos = %d, want 1", p.qos)
	}
	var cmd model.NodeCommand
	if err := json.Unmarshal([]byte(p.payload), &cmd); err != nil {
		t.Fatal(err)
	}
	if cmd.Action != messages.ActionReset || cmd.TicketID != resp.GetTicketId() {
		t.Errorf("command = %+v", cmd)
	}
}

func TestResetLatch_UnknownNode(t *testing.T) {
	h, sink := liveHandler(t)

	resp, err := h.ResetLatch(context.Background(), &pb.ResetRequest{ZoneId: "z1", NodeId: "ghost"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetSuccess() {
		t.Error("unknown node accepted")
	}
	if len(*sink) != 0 {
		t.Errorf("published = %d, want 0", len(*sink))
	}
}

func TestResetLatch_OfflineNode(t *testing.T) {
	factory, sink := testFactory()
	h := NewGrpcHandler(factory, "", testZones())
	h.SetLiveness(time.Minute, 10*time.Millisecond)
	// no heartbeat stored: node never seen

	resp, err := h.ResetLatch(context.Background(), &pb.ResetRequest{ZoneId: "z1", NodeId: "n1"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetSuccess() || !strings.Contains(resp.GetMessage(), "offline") {
		t.Errorf("response = %+v, want offline failure", resp)
	}
	if len(*sink) != 0 {
		t.Errorf("published = %d, want 0", len(*sink))
	}
}

func TestResetLatch_CancelledRPCStopsGraceWait(t *testing.T) {
	factory, sink := testFactory()
	h := NewGrpcHandler(factory, "", testZones())
	h.SetLiveness(time.Minute, 2*time.Second)
	// no heartbeat stored: node never seen

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	resp, err := h.ResetLatch(ctx, &pb.ResetRequest{ZoneId: "z1", NodeId: "n1"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetSuccess() {
		t.Error("offline node accepted")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled RPC waited %v, want prompt return", elapsed)
	}
	if len(*sink) != 0 {
		t.Errorf("published = %d, want 0", len(*sink))
	}
}

func TestConfigure_ValidatesTuning(t *testing.T) {
	h, sink := liveHandler(t)

	for _, req := range []*pb.ConfigureRequest{
		{ZoneId: "z1", NodeId: "n1", Threshold: 5000, IntervalMs: 1000}, // above full scale
		{ZoneId: "z1", NodeId: "n1", Threshold: 2000, IntervalMs: 0},   // no interval
	} {
		resp, err := h.Configure(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.GetSuccess() {
			t.Errorf("bad tuning %+v accepted", req)
		}
	}
	if len(*sink) != 0 {
		t.Errorf("published = %d, want 0", len(*sink))
	}
}

func TestConfigure_PublishesCommand(t *testing.T) {
	h, sink := liveHandler(t)

	resp, err := h.Configure(context.Background(), &pb.ConfigureRequest{
		ZoneId: "z1", NodeId: "n1", Threshold: 3500, IntervalMs: 750,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.GetSuccess() {
		t.Fatalf("response = %+v", resp)
	}
	if len(*sink) != 1 {
		t.Fatalf("published = %d, want 1", len(*sink))
	}
	var cmd model.NodeCommand
	if err := json.Unmarshal([]byte((*sink)[0].payload), &cmd); err != nil {
		t.Fatal(err)
	}
	if cmd.Action != messages.ActionConfigure || cmd.Threshold != 3500 || cmd.IntervalMs != 750 {
		t.Errorf("command = %+v", cmd)
	}
}
