package node

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sdcc-labs/pollnode/internal/model"
	"github.com/sdcc-labs/pollnode/internal/model/messages"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pollnode_ticks_total",
		Help: "Scheduler passes executed by the node runtime.",
	})
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pollnode_state_transitions_total",
		Help: "Timer-driven state transitions, labelled by the state entered.",
	}, []string{"state"})
	overloadAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pollnode_overload_alerts_total",
		Help: "Overload alert notifications emitted.",
	})
	lastReading = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pollnode_last_reading",
		Help: "Most recent raw ADC sample.",
	})
	stateGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pollnode_state",
		Help: "Current controller state (1 for the active one).",
	}, []string{"state"})
)

func observeTick(state model.NodeState, reading uint16) {
	ticksTotal.Inc()
	lastReading.Set(float64(reading))
	for _, st := range []model.NodeState{model.NodeIdle, model.NodeActive, model.NodeError} {
		v := 0.0
		if st == state {
			v = 1.0
		}
		stateGauge.WithLabelValues(string(st)).Set(v)
	}
}

func observeEvent(eventType string) {
	switch eventType {
	case messages.EnteredIdle:
		transitionsTotal.WithLabelValues(string(model.NodeIdle)).Inc()
	case messages.EnteredActive:
		transitionsTotal.WithLabelValues(string(model.NodeActive)).Inc()
	case messages.SensorOverloadAlert:
		overloadAlertsTotal.Inc()
	}
}
