package device

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	pb "github.com/sdcc-labs/pollnode/grpc/gen/go/nodecontrol"
	"github.com/sdcc-labs/pollnode/internal/hal"
	"github.com/sdcc-labs/pollnode/internal/model"
	"github.com/sdcc-labs/pollnode/internal/model/messages"
	"github.com/sdcc-labs/pollnode/pkg/mqtt"
)

type PublisherFactory func(topic string) mqtt.IPublisher

// GrpcHandler implementa NodeControlService e pubblica i NodeCommand QoS1.
type GrpcHandler struct {
	pb.UnimplementedNodeControlServiceServer

	makePublisher PublisherFactory
	zones         map[string]model.Zone

	// template topic per i comandi
	commandTopicTmpl string // es. "event/NodeCommand/{zone}/{node}"

	// liveness (heartbeat implicito da node/reading)
	nodeLivenessTTL time.Duration
	offlineGrace    time.Duration
	lastSeen        sync.Map // chiave "zone|node" -> time.Time
}

func NewGrpcHandler(factory PublisherFactory, commandTopicTmpl string, zones map[string]model.Zone) *GrpcHandler {
	if strings.TrimSpace(commandTopicTmpl) == "" {
		commandTopicTmpl = "event/NodeCommand/{zone}/{node}"
	}
	return &GrpcHandler{
		makePublisher:    factory,
		zones:            zones,
		commandTopicTmpl: commandTopicTmpl,
		nodeLivenessTTL:  60 * time.Second,
		offlineGrace:     5 * time.Second,
	}
}

// SetLiveness imposta TTL di liveness e finestra di grace (richiamato dal main via ENV).
func (h *GrpcHandler) SetLiveness(ttl, grace time.Duration) {
	if ttl > 0 {
		h.nodeLivenessTTL = ttl
	}
	if grace > 0 {
		h.offlineGrace = grace
	}
}

// ============== RPC: ResetLatch ==============

func (h *GrpcHandler) ResetLatch(ctx context.Context, req *pb.ResetRequest) (*pb.CommandResponse, error) {
	zid, nid := strings.TrimSpace(req.GetZoneId()), strings.TrimSpace(req.GetNodeId())

	if _, ok := h.lookupNode(zid, nid); !ok {
		return &pb.CommandResponse{Success: false, Message: fmt.Sprintf("unknown zone/node %s/%s", zid, nid)}, nil
	}
	if !h.isLive(zid, nid) && !h.waitGraceAlive(ctx, zid, nid, h.offlineGrace) {
		return &pb.CommandResponse{Success: false, Message: fmt.Sprintf("node %s/%s offline", zid, nid)}, nil
	}

	ticket := uuid.New().String()
	cmd := model.NodeCommand{
		ZoneID:    zid,
		NodeID:    nid,
		Action:    messages.ActionReset,
		TicketID:  ticket,
		Timestamp: time.Now().UTC(),
	}
	if err := h.publishCommand(cmd); err != nil {
		return &pb.CommandResponse{Success: false, Message: "publish reset command failed"}, err
	}
	return &pb.CommandResponse{
		Success:  true,
		Message:  fmt.Sprintf("reset dispatched to %s/%s", zid, nid),
		TicketId: ticket,
	}, nil
}

// ============== RPC: Configure ==============

func (h *GrpcHandler) Configure(ctx context.Context, req *pb.ConfigureRequest) (*pb.CommandResponse, error) {
	zid, nid := strings.TrimSpace(req.GetZoneId()), strings.TrimSpace(req.GetNodeId())

	if _, ok := h.lookupNode(zid, nid); !ok {
		return &pb.CommandResponse{Success: false, Message: fmt.Sprintf("unknown zone/node %s/%s", zid, nid)}, nil
	}
	if req.GetThreshold() > uint32(hal.MaxReading) {
		return &pb.CommandResponse{Success: false, Message: fmt.Sprintf("threshold %d out of range 0..%d", req.GetThreshold(), hal.MaxReading)}, nil
	}
	if req.GetIntervalMs() == 0 {
		return &pb.CommandResponse{Success: false, Message: "interval_ms must be positive"}, nil
	}
	if !h.isLive(zid, nid) && !h.waitGraceAlive(ctx, zid, nid, h.offlineGrace) {
		return &pb.CommandResponse{Success: false, Message: fmt.Sprintf("node %s/%s offline", zid, nid)}, nil
	}

	ticket := uuid.New().String()
	cmd := model.NodeCommand{
		ZoneID:     zid,
		NodeID:     nid,
		Action:     messages.ActionConfigure,
		Threshold:  uint16(req.GetThreshold()),
		IntervalMs: req.GetIntervalMs(),
		TicketID:   ticket,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.publishCommand(cmd); err != nil {
		return &pb.CommandResponse{Success: false, Message: "publish configure command failed"}, err
	}
	return &pb.CommandResponse{
		Success:  true,
		Message:  fmt.Sprintf("configure dispatched to %s/%s (threshold=%d interval=%dms)", zid, nid, cmd.Threshold, cmd.IntervalMs),
		TicketId: ticket,
	}, nil
}

// ============== Helpers ==============

// OnNodeReading aggiorna liveness da heartbeat implicito (node/reading/+/+).
func (h *GrpcHandler) OnNodeReading(_ string, m paho.Message) error {
	parts := strings.Split(m.Topic(), "/")
	if len(parts) >= 4 {
		h.lastSeen.Store(parts[2]+"|"+parts[3], time.Now())
	}
	return nil
}

func (h *GrpcHandler) isLive(zoneID, nodeID string) bool {
	if v, ok := h.lastSeen.Load(zoneID + "|" + nodeID); ok {
		return time.Since(v.(time.Time)) < h.nodeLivenessTTL
	}
	return false
}

// waitGraceAlive riprova per la finestra di grace, ma rispetta la
// cancellazione dell'RPC chiamante.
func (h *GrpcHandler) waitGraceAlive(ctx context.Context, zoneID, nodeID string, grace time.Duration) bool {
	deadline := time.NewTimer(grace)
	defer deadline.Stop()
	poll := time.NewTicker(200 * time.Millisecond)
	defer poll.Stop()

	for {
		if h.isLive(zoneID, nodeID) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-poll.C:
		}
	}
}

func (h *GrpcHandler) publishCommand(cmd model.NodeCommand) error {
	topic := strings.NewReplacer("{zone}", cmd.ZoneID, "{node}", cmd.NodeID).Replace(h.commandTopicTmpl)
	payload, _ := json.Marshal(cmd)
	return h.makePublisher(topic).PublishMessageQos(1, false, string(payload))
}

func (h *GrpcHandler) lookupNode(zoneID, nodeID string) (*model.Node, bool) {
	z, ok := h.zones[zoneID]
	if !ok {
		return nil, false
	}
	n := z.GetNode(nodeID)
	return n, n != nil
}
