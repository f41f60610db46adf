package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sdcc-labs/pollnode/internal/services/aggregator"
	"github.com/sdcc-labs/pollnode/pkg/mqtt"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	cfg := &mqtt.Config{
		Host:     envStr("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     envStr("MQTT_USER", "guest"),
		Password: envStr("MQTT_PASSWORD", "guest"),
		ClientID: envStr("HOSTNAME", "dataAggregator1"),
	}
	window := time.Duration(envInt("AGGREGATION_WINDOW_S", 60)) * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mqtt.NewConn(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", err)
	}

	// publisher per topic aggregato, cache per nodo
	var mu sync.Mutex
	pubs := make(map[string]mqtt.IPublisher)
	pubFor := func(zoneID, nodeID string) mqtt.IPublisher {
		topic := fmt.Sprintf("node/aggregated/%s/%s", zoneID, nodeID)
		mu.Lock()
		defer mu.Unlock()
		if p, ok := pubs[topic]; ok {
			return p
		}
		p := mqtt.NewPublisher(client, topic)
		pubs[topic] = p
		return p
	}

	consumer := mqtt.NewConsumer(client, "node/reading/#", nil)

	svc := aggregator.NewDataAggregatorService(consumer, pubFor, window)

	log.Println("Data Aggregator service is running...")
	svc.Start(ctx)
}
