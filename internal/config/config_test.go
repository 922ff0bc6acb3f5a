package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.Server.Port != DefaultPort || cfg.Server.Host != DefaultHost {
		t.Errorf("address = %s", cfg.Address())
	}
	if cfg.TooltipDelay() != 300*time.Millisecond {
		t.Errorf("delay = %v", cfg.TooltipDelay())
	}
	if cfg.TooltipPosition() != tooltip.PositionTop {
		t.Errorf("position = %v", cfg.TooltipPosition())
	}
	if !cfg.MetricsEnabled() || !cfg.TracingEnabled() {
		t.Error("metrics and tracing default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	if cfg.URL() != "http://localhost:3000" {
		t.Errorf("URL = %s", cfg.URL())
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := writeConfig(t, `{
		"server": {"port": 8080, "metrics": false},
		"tooltip": {"position": "left", "delay": "0s"},
		"publish": {"bucket": "assets"}
	}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Host != DefaultHost {
		t.Errorf("address = %s", cfg.Address())
	}
	if cfg.MetricsEnabled() {
		t.Error("metrics should be disabled")
	}
	if !cfg.TracingEnabled() {
		t.Error("tracing should keep its default")
	}
	if cfg.TooltipPosition() != tooltip.PositionLeft {
		t.Errorf("position = %v", cfg.TooltipPosition())
	}
	if cfg.TooltipDelay() != 0 {
		t.Errorf("explicit zero delay should be kept, got %v", cfg.TooltipDelay())
	}
	if cfg.Publish.Bucket != "assets" || cfg.Publish.Key != DefaultPublishKey || cfg.Publish.Region != DefaultRegion {
		t.Errorf("publish = %+v", cfg.Publish)
	}
	if cfg.Server.ReadTimeout.Std() != 60*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout.Std())
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("path = %s", cfg.Path())
	}
}

func TestLoad_DelayAsMilliseconds(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"tooltip": {"delay": 450}}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TooltipDelay() != 450*time.Millisecond {
		t.Errorf("delay = %v", cfg.TooltipDelay())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad json", `{`, "E101"},
		{"bad duration", `{"tooltip": {"delay": "soon"}}`, "E101"},
		{"bad port", `{"server": {"port": 70000}}`, "E102"},
		{"bad position", `{"tooltip": {"position": "center"}}`, "E103"},
		{"negative delay", `{"tooltip": {"delay": "-1s"}}`, "E104"},
		{"negative timeout", `{"server": {"writeTimeout": "-5s"}}`, "E105"},
		{"negative shutdown timeout", `{"server": {"shutdownTimeout": "-1s"}}`, "E105"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Code(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if errors.Code(err) != "E100" {
		t.Errorf("err = %v, want E100", err)
	}
}

func TestLoadFromWorkingDir_MissingUsesDefaults(t *testing.T) {
	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadFromWorkingDir()
	if err != nil {
		t.Fatalf("LoadFromWorkingDir: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	cfg := New()
	cfg.Tooltip.Position = "right"
	cfg.Server.Port = 4000
	path := filepath.Join(t.TempDir(), ConfigFileName)

	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"delay": "300ms"`) {
		t.Errorf("durations should be written as strings:\n%s", data)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 4000 || loaded.TooltipPosition() != tooltip.PositionRight {
		t.Errorf("loaded = %+v", loaded)
	}
}
