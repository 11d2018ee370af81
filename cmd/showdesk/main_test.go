package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/showdesk/internal/config"
	"github.com/1broseidon/showdesk/internal/ipc"
)

type fakeClient struct {
	status  ipc.StatusData
	outcome string
	err     error
	reloads int
	enabled []bool
}

func (f *fakeClient) Toggle() (*ipc.ToggleData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.ToggleData{Outcome: f.outcome, Status: f.status}, nil
}

func (f *fakeClient) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	st := f.status
	return &st, nil
}

func (f *fakeClient) Reload() error {
	f.reloads++
	return f.err
}

func (f *fakeClient) SetEnabled(enabled bool) error {
	f.enabled = append(f.enabled, enabled)
	return f.err
}

func useClient(t *testing.T, c *fakeClient) {
	t.Helper()
	old := newClient
	newClient = func() controlClient { return c }
	t.Cleanup(func() { newClient = old })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestToggleCmd_PrintsOutcome(t *testing.T) {
	useClient(t, &fakeClient{outcome: "minimizing"})

	out, err := execute(t, "toggle")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if strings.TrimSpace(out) != "minimizing" {
		t.Fatalf("output = %q", out)
	}
}

func TestToggleCmd_Quiet(t *testing.T) {
	useClient(t, &fakeClient{outcome: "restoring"})

	out, err := execute(t, "toggle", "-q")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestToggleCmd_DaemonDown(t *testing.T) {
	useClient(t, &fakeClient{err: errors.New("failed to connect to daemon")})

	if _, err := execute(t, "toggle"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestStatusCmd_JSONWhenNotTerminal(t *testing.T) {
	useClient(t, &fakeClient{status: ipc.StatusData{
		DaemonRunning:  true,
		PendingRestore: true,
		PendingCount:   2,
		Tooltip:        "Restore 2 windows",
	}})

	out, err := execute(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var got ipc.StatusData
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.PendingCount != 2 || got.Tooltip != "Restore 2 windows" {
		t.Fatalf("status = %+v", got)
	}
}

func TestWriteStatusText(t *testing.T) {
	var buf bytes.Buffer
	writeStatusText(&buf, &ipc.StatusData{
		DaemonRunning: true,
		Enabled:       true,
		Running:       true,
		Action:        "minimize",
		Scope:         "current-workspace",
	})
	out := buf.String()
	for _, want := range []string{"daemon_running:  true", "running:         minimize", "scope:           current-workspace"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReloadAndEnableCmds(t *testing.T) {
	c := &fakeClient{}
	useClient(t, c)

	if _, err := execute(t, "reload"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := execute(t, "disable"); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, err := execute(t, "enable"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if c.reloads != 1 {
		t.Fatalf("reloads = %d", c.reloads)
	}
	if len(c.enabled) != 2 || c.enabled[0] || !c.enabled[1] {
		t.Fatalf("SetEnabled calls = %v", c.enabled)
	}
}

func TestConfigCmds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("hotkey: Mod4-h\nanimation_delay: 0\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := execute(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "config: ok" {
		t.Fatalf("validate output = %q", out)
	}

	out, err = execute(t, "--config", path, "config", "explain", "hotkey")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.Contains(out, "source: file:"+path+":1:") || !strings.Contains(out, "Mod4-h") {
		t.Fatalf("explain output = %q", out)
	}

	out, err = execute(t, "--config", path, "config", "print")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out, "animation_delay: 0") {
		t.Fatalf("print output = %q", out)
	}
}

func TestConfigValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("animation_delay: 5000\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := execute(t, "--config", path, "config", "validate"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 1}, "file:/a.yaml:3:1"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
