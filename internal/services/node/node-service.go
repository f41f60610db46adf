package node

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sdcc-labs/pollnode/internal/controller"
	"github.com/sdcc-labs/pollnode/internal/hal"
	"github.com/sdcc-labs/pollnode/internal/model"
	"github.com/sdcc-labs/pollnode/internal/model/messages"
	"github.com/sdcc-labs/pollnode/pkg/dedup"
	"github.com/sdcc-labs/pollnode/pkg/mqtt"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Service drives one PollingController on a real schedule and bridges it to
// the broker: readings and events out, commands in.
type Service struct {
	mu   sync.Mutex
	node *model.Node
	ctrl *controller.PollingController

	pin   hal.DigitalPin
	adc   hal.AnalogReader
	clock hal.Clock

	readingPub mqtt.IPublisher
	eventPub   mqtt.IPublisher
	resultPub  mqtt.IPublisher
	consumer   mqtt.IConsumer
	deduper    *dedup.Deduper

	lastPublish hal.Millis
	published   bool
}

func NewService(n *model.Node, pin hal.DigitalPin, adc hal.AnalogReader, clock hal.Clock,
	readingPub, eventPub, resultPub mqtt.IPublisher, consumer mqtt.IConsumer) *Service {
	s := &Service{
		node:       n,
		pin:        pin,
		adc:        adc,
		clock:      clock,
		readingPub: readingPub,
		eventPub:   eventPub,
		resultPub:  resultPub,
		consumer:   consumer,
		deduper:    dedup.New(2*time.Minute, 10000), // TTL e cap
	}
	s.ctrl = controller.New(s.controllerConfig(), pin, adc, controller.NotifierFunc(s.publishEvent))
	return s
}

func (s *Service) controllerConfig() controller.Config {
	return controller.Config{
		ZoneID:    s.node.ZoneID,
		NodeID:    s.node.ID,
		Interval:  hal.Millis(s.node.IntervalMs),
		Threshold: s.node.Threshold,
	}
}

// Start avvia il nodo: inizializza il controller, riceve i comandi e fa
// girare lo scheduler a passo fisso fino alla cancellazione del contesto.
func (s *Service) Start(ctx context.Context, tickEvery time.Duration) {
	s.consumer.SetHandler(s.handleCommand)
	go s.consumer.ConsumeMessage(ctx)

	s.mu.Lock()
	s.ctrl.Initialize()
	s.mu.Unlock()

	// Il client MQTT condiviso dai publisher è chiuso da chi lo ha creato.
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(tickEvery):
			s.tick()
		}
	}
}

func (s *Service) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Millis()
	s.ctrl.Tick(now)

	observeTick(s.ctrl.State(), s.ctrl.LastReading())

	cadence := hal.Millis(s.node.PublishEveryMs)
	if cadence == 0 {
		cadence = hal.Millis(s.node.IntervalMs)
	}
	if s.published && hal.Elapsed(now, s.lastPublish) < cadence {
		return
	}
	s.lastPublish = now
	s.published = true
	s.publishReading(s.ctrl.LastReading())
}

func (s *Service) publishReading(raw uint16) {
	rd := model.NodeReading{
		ZoneID:    s.node.ZoneID,
		NodeID:    s.node.ID,
		Raw:       raw,
		Pct:       int(raw) * 100 / int(hal.MaxReading),
		Timestamp: time.Now().UTC(),
	}
	payload, _ := json.Marshal(rd)
	if err := s.readingPub.PublishMessage(string(payload)); err != nil {
		log.Printf("node: reading publish error: %v", err)
	}
}

// publishEvent is the controller's Notifier. Overload alerts go out QoS1 so
// the control plane cannot miss them; state chatter stays QoS0.
func (s *Service) publishEvent(evt model.NodeEvent) {
	observeEvent(evt.EventType)

	payload, _ := json.Marshal(evt)
	var err error
	if evt.EventType == messages.SensorOverloadAlert {
		err = s.eventPub.PublishMessageQos(1, false, string(payload))
	} else {
		err = s.eventPub.PublishMessage(string(payload))
	}
	if err != nil {
		log.Printf("node: event publish error: %v", err)
	}
}

func (s *Service) handleCommand(_ string, msg paho.Message) error {
	// Dedup a payload: redelivery QoS1 ha lo stesso payload → stesso hash
	h := sha256.Sum256(msg.Payload())
	if s.deduper != nil && !s.deduper.ShouldProcess(hex.EncodeToString(h[:])) {
		return nil // duplicato → ignora
	}

	var cmd model.NodeCommand
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		return fmt.Errorf("invalid NodeCommand: %w", err)
	}
	if cmd.NodeID != s.node.ID || cmd.ZoneID != s.node.ZoneID {
		// ignore commands addressed to other nodes
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Action {
	case messages.ActionReset:
		s.ctrl.Reset(s.clock.Millis())
		s.publishResult(cmd, "OK", "")
	case messages.ActionConfigure:
		if err := s.applyConfigure(cmd); err != nil {
			s.publishResult(cmd, "FAIL", err.Error())
			return nil
		}
		s.publishResult(cmd, "OK", "")
	default:
		s.publishResult(cmd, "FAIL", fmt.Sprintf("unknown action %q", cmd.Action))
	}
	return nil
}

// applyConfigure swaps in a freshly built controller. Tuning is immutable on
// a live controller, so reconfiguration restarts the state machine.
func (s *Service) applyConfigure(cmd model.NodeCommand) error {
	if cmd.Threshold > hal.MaxReading {
		return fmt.Errorf("threshold %d out of range 0..%d", cmd.Threshold, hal.MaxReading)
	}
	if cmd.IntervalMs == 0 {
		return fmt.Errorf("interval_ms must be positive")
	}
	s.node.Threshold = cmd.Threshold
	s.node.IntervalMs = cmd.IntervalMs
	s.ctrl = controller.New(s.controllerConfig(), s.pin, s.adc, controller.NotifierFunc(s.publishEvent))
	s.ctrl.Initialize()
	return nil
}

func (s *Service) publishResult(cmd model.NodeCommand, status, reason string) {
	res := model.CommandResultEvent{
		ZoneID:    cmd.ZoneID,
		NodeID:    cmd.NodeID,
		TicketID:  cmd.TicketID,
		Action:    cmd.Action,
		Status:    status,
		Reason:    reason,
		State:     s.ctrl.State(),
		Timestamp: time.Now().UTC(),
	}
	payload, _ := json.Marshal(res)
	if err := s.resultPub.PublishMessageQos(1, false, string(payload)); err != nil {
		log.Printf("node: result publish error: %v", err)
	}
}

// State reports the current controller state.
func (s *Service) State() model.NodeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}
