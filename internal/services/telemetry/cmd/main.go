package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"crypto/sha256"
	"encoding/hex"

	paho "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/sdcc-labs/pollnode/internal/services/telemetry"
	"github.com/sdcc-labs/pollnode/pkg/dedup"
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

// QoS1 prefixes see broker redeliveries, so their payloads get deduplicated.
func isQos1Topic(topic string) bool {
	return strings.HasPrefix(topic, "node/aggregated") ||
		strings.HasPrefix(topic, "event/CommandResult")
}

func main() {
	// === Config ===
	cfg := struct {
		MQTT mqtt.Config

		InfluxURL    string
		InfluxToken  string
		InfluxOrg    string
		InfluxBucket string

		Topics        []string
		BatchSize     int
		FlushInterval time.Duration

		HTTPPort       int
		ReadinessGrace time.Duration
	}{
		MQTT: mqtt.Config{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", "guest"),
			Password: envStr("MQTT_PASSWORD", "guest"),
			ClientID: envStr("HOSTNAME", "telemetry-service"),
		},

		InfluxURL:    envStr("INFLUX_URL", "http://localhost:8086"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    envStr("INFLUX_ORG", "pollnode"),
		InfluxBucket: envStr("INFLUX_BUCKET", "telemetry"),

		Topics: func() []string {
			raw := envStr("TELEMETRY_SUB_TOPICS",
				"node/reading/#,node/aggregated/#,event/NodeEvent/#,event/CommandResult/#")
			parts := strings.Split(raw, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if s := strings.TrimSpace(p); s != "" {
					out = append(out, s)
				}
			}
			return out
		}(),
		BatchSize:     envInt("WRITE_BATCH_SIZE", 10),
		FlushInterval: time.Duration(envInt("WRITE_FLUSH_INTERVAL_MS", 200)) * time.Millisecond,

		HTTPPort:       envInt("HTTP_PORT", 8080),
		ReadinessGrace: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === InfluxDB ===
	opts := influxdb2.DefaultOptions().
		SetBatchSize(uint(cfg.BatchSize)).
		SetFlushInterval(uint(cfg.FlushInterval.Milliseconds()))
	influx := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken, opts)
	defer influx.Close()
	writeAPI := influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket)
	writer := telemetry.NewWriter(writeAPI)
	subs := telemetry.NewSubState(len(cfg.Topics))

	// === MQTT ===
	mqttClient, err := mqtt.NewConn(ctx, &cfg.MQTT)
	if err != nil {
		log.Fatalf("mqtt connection error: %v", err)
	}
	defer mqtt.CloseConn(mqttClient)

	// === HTTP ===
	httpMux := http.NewServeMux()
	httpMux.Handle("/healthz", telemetry.NewHealthHandler(mqttClient, influx, subs, writer))
	httpMux.Handle("/readyz", telemetry.NewReadyHandler(mqttClient, influx, subs, writer, 2*time.Second))
	httpMux.Handle("/events/alerts/latest", telemetry.NewAlertsLatestHandler(influx, cfg.InfluxOrg, cfg.InfluxBucket))
	httpMux.Handle("/readings/latest", telemetry.NewReadingsLatestHandler(influx, cfg.InfluxOrg, cfg.InfluxBucket))

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("telemetry-svc: HTTP listening on :%d", cfg.HTTPPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// === Consumer ===
	h := telemetry.NewMQTTHandler(writer.Ingest)

	// deduper condiviso per i soli topic QoS1
	d := dedup.New(10*time.Minute, 20000)

	for _, topic := range cfg.Topics {
		if strings.TrimSpace(topic) == "" {
			continue
		}
		log.Printf("telemetry-svc: subscribing to %s", topic)

		qos := byte(0)
		if isQos1Topic(topic) {
			qos = 1
		}

		if token := mqttClient.Subscribe(topic, qos, func(_ paho.Client, m paho.Message) {
			if isQos1Topic(m.Topic()) {
				hh := sha256.Sum256(m.Payload())
				if !d.ShouldProcess(hex.EncodeToString(hh[:])) {
					return
				}
			}
			_ = h.Handle("", m)
		}); token.Wait() && token.Error() != nil {
			log.Fatalf("subscribe error on %s: %v", topic, token.Error())
		}
		subs.MarkSubscribed()
	}

	// === Wait for signal ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("telemetry-svc: shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), cfg.ReadinessGrace)
	defer shCancel()
	_ = hs.Shutdown(shCtx)

	// consenti flush
	time.Sleep(cfg.FlushInterval + 100*time.Millisecond)
}
