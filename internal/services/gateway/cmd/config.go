package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port      string
	TimeoutMs int

	// Upstream REST
	DeviceURL    string // es. http://device-service:8081
	TelemetryURL string // es. http://telemetry-service:8080
	StatusPath   string
	AlertsPath   string

	// Mappa zona -> control plane gRPC
	NodeGRPCAddrMap string // es. "zone1=device-service:50051"

	// Circuit breaker
	CBFails      int
	CBOpenMs     int
	CBIntervalMs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:      getenv("PORT", "5009"),
		TimeoutMs: getenvInt("TIMEOUT_MS", 3000),

		DeviceURL:    getenv("DEVICE_URL", "http://device-service:8081"),
		TelemetryURL: getenv("TELEMETRY_URL", "http://telemetry-service:8080"),
		StatusPath:   getenv("DEVICE_STATUS_PATH", "/nodes/status"),
		AlertsPath:   getenv("TELEMETRY_ALERTS_PATH", "/events/alerts/latest"),

		NodeGRPCAddrMap: getenv("NODE_GRPC_ADDR_MAP", "zone1=device-service:50051"),

		CBFails:      getenvInt("CB_FAILS", 3),
		CBOpenMs:     getenvInt("CB_OPEN_MS", 10000),
		CBIntervalMs: getenvInt("CB_INTERVAL_MS", 60000),
	}
}
