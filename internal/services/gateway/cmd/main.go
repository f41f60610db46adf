package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/sdcc-labs/pollnode/internal/services/gateway/app"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router, err := app.NewNodeRouter(ctx, cfg.NodeGRPCAddrMap)
	if err != nil {
		log.Fatalf("gateway: node router: %v", err)
	}
	defer router.Close()

	gw := app.NewGateway(app.Config{
		DeviceBaseURL:    cfg.DeviceURL,
		TelemetryBaseURL: cfg.TelemetryURL,
		StatusPath:       cfg.StatusPath,
		AlertsPath:       cfg.AlertsPath,
		HTTPTimeout:      time.Duration(cfg.TimeoutMs) * time.Millisecond,
		BreakerFailures:  cfg.CBFails,
		BreakerOpenFor:   time.Duration(cfg.CBOpenMs) * time.Millisecond,
		BreakerInterval:  time.Duration(cfg.CBIntervalMs) * time.Millisecond,
	}, router)

	r := mux.NewRouter()
	gw.Routes(r)

	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.CombinedLoggingHandler(os.Stdout, r),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("gateway listening on :%s", cfg.Port)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Println("gateway: shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = hs.Shutdown(shCtx)
}
