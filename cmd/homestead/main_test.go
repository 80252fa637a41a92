package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/homestead/internal/infrastructure/database"
)

// writeConfig writes a minimal config with MQTT and InfluxDB switched off.
func writeConfig(t *testing.T, dbPath string, port int) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	configContent := fmt.Sprintf(`
database:
  path: %q
  wal_mode: true
  busy_timeout: 5

api:
  host: "127.0.0.1"
  port: %d
  page_size: 10
  timeouts:
    read: 5
    write: 5
    idle: 5

websocket:
  enabled: true

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: discard
`, dbPath, port)

	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(configEnvVar, "")
	if got := resolveConfigPath(""); got != defaultConfigPath {
		t.Errorf("resolveConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	t.Setenv(configEnvVar, "/custom/path/config.yaml")
	if got := resolveConfigPath(""); got != "/custom/path/config.yaml" {
		t.Errorf("env override = %q, want %q", got, "/custom/path/config.yaml")
	}

	if got := resolveConfigPath("/flag.yaml"); got != "/flag.yaml" {
		t.Errorf("flag override = %q, want %q", got, "/flag.yaml")
	}
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	if _, _, err := loadConfig("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("loadConfig() should fail for a missing explicit path")
	}
}

func TestLoadConfig_MissingDefaultFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, path, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty for built-in defaults", path)
	}
	if cfg.API.PageSize != 10 {
		t.Errorf("page size = %d, want 10", cfg.API.PageSize)
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := execute(t, ctx, "--config", "/nonexistent/path/config.yaml", "serve"); err == nil {
		t.Fatal("serve should fail with invalid config path")
	}
}

func TestRun_UnusableDatabasePath(t *testing.T) {
	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	configPath := writeConfig(t, filepath.Join(blocker, "homestead.db"), freePort(t))
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, cfg, configPath); err == nil {
		t.Fatal("run() should fail when the database cannot be created")
	}
}

func TestRun_StartupAndShutdown(t *testing.T) {
	port := freePort(t)
	configPath := writeConfig(t, filepath.Join(t.TempDir(), "homestead.db"), port)
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, configPath) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/health", port)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, getErr := http.Get(url) //nolint:gosec,noctx // test-local URL
		if getErr == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("health status = %d, want %d", resp.StatusCode, http.StatusOK)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never became healthy: %v", getErr)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() = %v, want nil on clean shutdown", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
}

func TestMigrateCommands(t *testing.T) {
	configPath := writeConfig(t, filepath.Join(t.TempDir(), "homestead.db"), 3000)
	ctx := context.Background()

	out, err := execute(t, ctx, "--config", configPath, "migrate", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if strings.Contains(out, "applied") || !strings.Contains(out, "pending") {
		t.Errorf("fresh status output:\n%s", out)
	}

	if _, err := execute(t, ctx, "--config", configPath, "migrate", "up"); err != nil {
		t.Fatalf("up: %v", err)
	}
	out, err = execute(t, ctx, "--config", configPath, "migrate", "status")
	if err != nil {
		t.Fatalf("status after up: %v", err)
	}
	if strings.Contains(out, "pending") {
		t.Errorf("status after up still has pending migrations:\n%s", out)
	}

	if _, err := execute(t, ctx, "--config", configPath, "migrate", "down"); err != nil {
		t.Fatalf("down: %v", err)
	}
	out, err = execute(t, ctx, "--config", configPath, "migrate", "status")
	if err != nil {
		t.Fatalf("status after down: %v", err)
	}
	if strings.Count(out, "pending") != 1 {
		t.Errorf("status after down should have exactly one pending migration:\n%s", out)
	}
}

func TestPrintMigrationStatus(t *testing.T) {
	var buf bytes.Buffer
	applied := []database.MigrationRecord{{Version: "20260301_120000", AppliedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}}
	pending := []database.Migration{{Version: "20260301_120100", Name: "audit_logs"}}

	if err := printMigrationStatus(&buf, applied, pending); err != nil {
		t.Fatalf("printMigrationStatus: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "20260301_120000") || !strings.Contains(lines[1], "applied") {
		t.Errorf("applied row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "audit_logs") || !strings.Contains(lines[2], "pending") {
		t.Errorf("pending row = %q", lines[2])
	}
}
