package tests

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/qwisky/relay-service/pkg/logger"
)

func TestInit_DevStd_TextOutput(t *testing.T) {
	cfg := logger.Config{
		Service: "relay-test",
		Version: "v0.0.1",
		Env:     logger.EnvDev,
		Backend: logger.BackendStd,
		Level:   slog.LevelDebug,
	}

	out := captureStdOut(func() {
		logger.Init(cfg)
		slog.Info("hello relay")
	})

	if strings.Contains(out, "{") && strings.Contains(out, "}") {
		t.Fatalf("expected text output in dev/std, got JSON: %s", out)
	}
	if !strings.Contains(out, "hello relay") {
		t.Fatalf("message missing: %s", out)
	}
	if !strings.Contains(out, "service=relay-test") {
		t.Fatalf("service attr missing: %s", out)
	}
	if !strings.Contains(out, "env=dev") {
		t.Fatalf("env attr missing: %s", out)
	}
}
