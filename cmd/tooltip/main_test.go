package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/tooltip/internal/config"
	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderTooltip_Hidden(t *testing.T) {
	html, err := renderTooltip(renderOptions{content: "Save", position: "top", id: "save", child: "Go"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, `role="tooltip"`) || !strings.Contains(html, "<button") {
		t.Errorf("hidden render = %s", html)
	}
}

func TestRenderTooltip_Visible(t *testing.T) {
	html, err := renderTooltip(renderOptions{content: "Save", position: "left", id: "save", child: "Go", visible: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`class="tooltip tooltip-left"`, `id="save-label"`, `data-state="visible"`, ">Save<"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in %s", want, html)
		}
	}
}

func TestRenderTooltip_BadPosition(t *testing.T) {
	_, err := renderTooltip(renderOptions{position: "middle"})
	if errors.Code(err) != "E103" {
		t.Fatalf("err = %v, want E103", err)
	}
}

func TestCommands_CSSAndVersion(t *testing.T) {
	out, err := execute(t, "css")
	if err != nil || out != tooltip.Stylesheet() {
		t.Errorf("css: err=%v, output mismatch", err)
	}

	out, err = execute(t, "version", "--short")
	if err != nil || strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, %v", out, err)
	}

	out, err = execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"tooltip " + version, "delay:      300ms", "position:   top (of top, bottom, left, right)", "stylesheet: "} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "render", "--content=Hi", "--position=bottom", "--visible")
	if err != nil || !strings.Contains(out, "tooltip-bottom") {
		t.Errorf("render = %q, %v", out, err)
	}
}

func TestCommands_BadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level=loud", "css")
	if errors.Code(err) != "E402" {
		t.Fatalf("err = %v, want E402", err)
	}
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "init", dir); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Server.Port != config.DefaultPort || cfg.TooltipDelay() != tooltip.DefaultDelay {
		t.Errorf("config = %+v", cfg)
	}

	if _, err := execute(t, "init", dir); errors.Code(err) != "E403" {
		t.Errorf("second init err = %v, want E403", err)
	}
	if _, err := execute(t, "init", dir, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Error(err)
	}
}

func TestServerConfig_FromFile(t *testing.T) {
	cfg := config.New()
	cfg.Server.Port = 8080
	cfg.Tooltip.Position = "right"
	cfg.Server.ShutdownTimeout = config.Duration(3 * time.Second)
	off := false
	cfg.Server.Metrics = &off

	sc := serverConfig(cfg)
	if sc.Address != "localhost:8080" || sc.Position != tooltip.PositionRight {
		t.Errorf("server config = %+v", sc)
	}
	if sc.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown timeout = %v, want 3s", sc.ShutdownTimeout)
	}
	if sc.Registry != nil {
		t.Error("registry set with metrics disabled")
	}
	if len(sc.Tooltip) != 1 {
		t.Errorf("tooltip options = %d, want 1", len(sc.Tooltip))
	}

	cfg.Server.Metrics = nil
	if serverConfig(cfg).Registry == nil {
		t.Error("registry missing with metrics enabled")
	}
}
