package device

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/mux"

	"github.com/sdcc-labs/pollnode/internal/model"
)

// NodeStatus is the fleet view of one node, built from its broker traffic.
type NodeStatus struct {
	ZoneID      string          `json:"zone_id"`
	NodeID      string          `json:"node_id"`
	State       model.NodeState `json:"state"`
	LastReading uint16          `json:"last_reading"`
	LastPct     int             `json:"last_pct"`
	LastEvent   string          `json:"last_event,omitempty"`
	LastSeen    time.Time       `json:"last_seen"`
	Online      bool            `json:"online"`
}

// DeviceService consuma letture, eventi e risultati comandi e mantiene lo
// stato corrente della flotta per la REST API.
type DeviceService struct {
	mu     sync.RWMutex
	zones  map[string]model.Zone
	status map[string]*NodeStatus // key zoneID/nodeID

	livenessTTL time.Duration

	// forwarded to the gRPC handler's implicit heartbeat
	onReading func(topic string, m paho.Message) error
}

func NewDeviceService(zones map[string]model.Zone, onReading func(string, paho.Message) error) *DeviceService {
	s := &DeviceService{
		zones:       zones,
		status:      make(map[string]*NodeStatus),
		livenessTTL: 60 * time.Second,
		onReading:   onReading,
	}
	for _, z := range zones {
		for _, n := range z.Nodes {
			s.status[z.ID+"/"+n.ID] = &NodeStatus{ZoneID: z.ID, NodeID: n.ID, State: model.NodeIdle}
		}
	}
	return s
}

func (s *DeviceService) SetLivenessTTL(ttl time.Duration) {
	if ttl > 0 {
		s.livenessTTL = ttl
	}
}

// MessageHandler smista i messaggi in base al prefisso del topic.
func (s *DeviceService) MessageHandler(topic string, m paho.Message) error {
	t := m.Topic()
	switch {
	case strings.HasPrefix(t, "node/reading/"):
		if s.onReading != nil {
			_ = s.onReading(topic, m)
		}
		return s.handleReading(m.Payload())
	case strings.HasPrefix(t, "event/NodeEvent/"):
		return s.handleEvent(m.Payload())
	case strings.HasPrefix(t, "event/CommandResult/"):
		return s.handleResult(m.Payload())
	}
	return nil
}

func (s *DeviceService) handleReading(payload []byte) error {
	var rd model.NodeReading
	if err := json.Unmarshal(payload, &rd); err != nil {
		log.Printf("device: bad reading payload: %v", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensure(rd.ZoneID, rd.NodeID)
	st.LastReading = rd.Raw
	st.LastPct = rd.Pct
	st.LastSeen = time.Now()
	return nil
}

func (s *DeviceService) handleEvent(payload []byte) error {
	var evt model.NodeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		log.Printf("device: bad event payload: %v", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensure(evt.ZoneID, evt.NodeID)
	st.State = evt.State
	st.LastEvent = evt.EventType
	st.LastSeen = time.Now()
	return nil
}

func (s *DeviceService) handleResult(payload []byte) error {
	var res model.CommandResultEvent
	if err := json.Unmarshal(payload, &res); err != nil {
		log.Printf("device: bad command result payload: %v", err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ensure(res.ZoneID, res.NodeID)
	st.State = res.State
	st.LastSeen = time.Now()
	log.Printf("device: command %s on %s/%s -> %s", res.Action, res.ZoneID, res.NodeID, res.Status)
	return nil
}

// ensure: chiamata con il lock preso.
func (s *DeviceService) ensure(zoneID, nodeID string) *NodeStatus {
	key := zoneID + "/" + nodeID
	st, ok := s.status[key]
	if !ok {
		st = &NodeStatus{ZoneID: zoneID, NodeID: nodeID, State: model.NodeIdle}
		s.status[key] = st
	}
	return st
}

func (s *DeviceService) snapshot() []NodeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]NodeStatus, 0, len(s.status))
	now := time.Now()
	for _, st := range s.status {
		cp := *st
		cp.Online = !st.LastSeen.IsZero() && now.Sub(st.LastSeen) < s.livenessTTL
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ZoneID != out[j].ZoneID {
			return out[i].ZoneID < out[j].ZoneID
		}
		return out[i].NodeID < out[j].NodeID
	})
	return out
}

// Routes registra la REST API di stato flotta.
func (s *DeviceService) Routes(r *mux.Router) {
	r.HandleFunc("/nodes/status", s.handleStatusList).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{zone}/{node}/status", s.handleStatusOne).Methods(http.MethodGet)
}

func (s *DeviceService) handleStatusList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *DeviceService) handleStatusOne(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["zone"] + "/" + vars["node"]

	s.mu.RLock()
	st, ok := s.status[key]
	var cp NodeStatus
	if ok {
		cp = *st
		cp.Online = !st.LastSeen.IsZero() && time.Since(st.LastSeen) < s.livenessTTL
	}
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown node " + key})
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
