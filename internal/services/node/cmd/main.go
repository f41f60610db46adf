// cmd/node/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sdcc-labs/pollnode/internal/hal"
	"github.com/sdcc-labs/pollnode/internal/model/entities"
	"github.com/sdcc-labs/pollnode/internal/services/node"
	"github.com/sdcc-labs/pollnode/internal/signal"
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
	// define flags
	zoneID := flag.String("zone-id", "zone1", "zone identifier")
	nodeID := flag.String("node-id", "node1", "unique node identifier")
	clientID := flag.String("client-id", "nodePublisher1", "MQTT client ID")
	tick := flag.Duration("tick", 100*time.Millisecond, "scheduler pass cadence")
	interval := flag.Uint("interval-ms", 1000, "transition interval in ms")
	threshold := flag.Uint("threshold", 4000, "overload threshold, ADC counts")
	publishEvery := flag.Uint("publish-every-ms", 0, "reading publish cadence, 0 = every interval")
	httpPort := flag.Int("http-port", 2112, "metrics/health HTTP port")
	flag.Parse()

	cfg := &mqtt.Config{
		Host:     envStr("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     envStr("MQTT_USER", "guest"),
		Password: envStr("MQTT_PASSWORD", "guest"),
		ClientID: *clientID,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mqtt.NewConn(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer mqtt.CloseConn(client)

	readingPub := mqtt.NewPublisher(client, fmt.Sprintf("node/reading/%s/%s", *zoneID, *nodeID))
	eventPub := mqtt.NewPublisher(client, fmt.Sprintf("event/NodeEvent/%s/%s", *zoneID, *nodeID))
	resultPub := mqtt.NewPublisher(client, fmt.Sprintf("event/CommandResult/%s/%s", *zoneID, *nodeID))
	consumer := mqtt.NewConsumer(client, fmt.Sprintf("event/NodeCommand/%s/%s", *zoneID, *nodeID), nil)

	n := &entities.Node{
		ZoneID:         *zoneID,
		ID:             *nodeID,
		State:          entities.NodeIdle,
		Threshold:      uint16(*threshold),
		IntervalMs:     uint32(*interval),
		PublishEveryMs: uint32(*publishEvery),
	}

	pin := hal.NewSimPin()
	adc := signal.NewGenerator(time.Now().UnixNano(), 0.05)
	svc := node.NewService(n, pin, adc, hal.NewWallClock(), readingPub, eventPub, resultPub, consumer)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(*httpPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("node: HTTP listening on :%d", *httpPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	go svc.Start(ctx, *tick)

	sigCh := make(chan os.Signal, 1)
	ossignal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("node: shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = hs.Shutdown(shCtx)
	cancel()
}
