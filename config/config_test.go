package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	writeConfig(t, "http:\n  addr: \":3001\"\n")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Logging.Service != "relay-service" {
		t.Fatalf("default service mismatch: %q", cfg.Logging.Service)
	}
	if cfg.Logging.Env != "dev" || cfg.Logging.Backend != "std" {
		t.Fatalf("logging defaults mismatch: %+v", cfg.Logging)
	}
	if got := cfg.WS.PingIntervalDur(); got != 15*time.Second {
		t.Fatalf("ping interval default mismatch: %v", got)
	}
	if got := cfg.Relay.TypingTTLDur(); got != 5*time.Second {
		t.Fatalf("typing ttl default mismatch: %v", got)
	}
	if got := cfg.Relay.TypingSweepIntervalDur(); got != time.Second {
		t.Fatalf("sweep interval default mismatch: %v", got)
	}
}

func TestLoadConfig_Full(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":9000"
ws:
  pingInterval: "30s"
  writeTimeout: "2s"
  maxMessageBytes: 4096
relay:
  typingTTL: "7s"
  typingSweepInterval: "500ms"
cors:
  allowedOrigins: ["https://chat.example.com"]
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.HTTP.Addr != ":9000" {
		t.Fatalf("addr mismatch: %q", cfg.HTTP.Addr)
	}
	if got := cfg.WS.PingIntervalDur(); got != 30*time.Second {
		t.Fatalf("ping interval mismatch: %v", got)
	}
	if got := cfg.WS.WriteTimeoutDur(); got != 2*time.Second {
		t.Fatalf("write timeout mismatch: %v", got)
	}
	if got := cfg.Relay.TypingTTLDur(); got != 7*time.Second {
		t.Fatalf("typing ttl mismatch: %v", got)
	}
	if got := cfg.Relay.TypingSweepIntervalDur(); got != 500*time.Millisecond {
		t.Fatalf("sweep interval mismatch: %v", got)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 {
		t.Fatalf("origins mismatch: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadConfig_MissingAddr(t *testing.T) {
	writeConfig(t, "logging:\n  env: dev\n")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing http.addr")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
