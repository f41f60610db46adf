package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc"

	pb "github.com/sdcc-labs/pollnode/grpc/gen/go/nodecontrol"
	"github.com/sdcc-labs/pollnode/internal/services/device"
	"github.com/sdcc-labs/pollnode/pkg/mqtt"
)

func mustEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	if def != "" {
		return def
	}
	log.Fatalf("missing required env %s", k)
	return ""
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
	// ---- ENV ----
	host := mustEnv("MQTT_HOST", "localhost")
	port := envInt("MQTT_PORT", 1883)
	user := mustEnv("MQTT_USER", "guest")
	pass := mustEnv("MQTT_PASSWORD", "guest")
	clientID := mustEnv("MQTT_CLIENTID", "device-service")
	grpcPort := mustEnv("GRPC_PORT", "50051")
	httpPort := envInt("HTTP_PORT", 8081)
	fleetPath := mustEnv("NODES_CONFIG_PATH", "/app/config/nodes.yaml")
	cmdTopicTmpl := mustEnv("EVENT_NODECOMMAND_TEMPLATE", "event/NodeCommand/{zone}/{node}")
	livenessTTL := time.Duration(envInt("NODE_LIVENESS_TTL_S", 60)) * time.Second
	offlineGrace := time.Duration(envInt("NODE_OFFLINE_GRACE_S", 5)) * time.Second

	// ---- Fleet ----
	zones, err := device.LoadFleetConfig(fleetPath)
	if err != nil {
		log.Fatalf("fleet config: %v", err)
	}

	// ---- MQTT ----
	cfg := &mqtt.Config{
		Host:     host,
		Port:     port,
		User:     user,
		Password: pass,
		ClientID: clientID,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mqtt.NewConn(ctx, cfg)
	if err != nil {
		log.Fatalf("MQTT connect error: %v", err)
	}

	// factory per creare un publisher col topic calcolato
	publisherFactory := func(topic string) mqtt.IPublisher {
		return mqtt.NewPublisher(client, topic)
	}

	// ---- gRPC server ----
	handler := device.NewGrpcHandler(publisherFactory, cmdTopicTmpl, zones)
	handler.SetLiveness(livenessTTL, offlineGrace)

	addr := ":" + grpcPort
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listen %s: %v", addr, err)
	}
	grpcServer := grpc.NewServer()
	pb.RegisterNodeControlServiceServer(grpcServer, handler)

	go func() {
		log.Printf("device-svc: gRPC on %s, command template '%s'", addr, cmdTopicTmpl)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("gRPC serve error: %v", err)
		}
	}()

	// ---- fleet tracker + REST ----
	svc := device.NewDeviceService(zones, handler.OnNodeReading)
	svc.SetLivenessTTL(livenessTTL)

	consumer := mqtt.NewMultiConsumer(client, []string{
		"node/reading/#",
		"event/NodeEvent/#",
		"event/CommandResult/#",
	}, svc.MessageHandler)
	go consumer.ConsumeMessage(ctx)

	r := mux.NewRouter()
	svc.Routes(r)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(httpPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("device-svc: HTTP listening on :%d", httpPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// ---- graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	<-sigc
	log.Println("device-svc: shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = hs.Shutdown(shCtx)
	grpcServer.GracefulStop()
	cancel()
	time.Sleep(300 * time.Millisecond)
}
