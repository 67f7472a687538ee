package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
)

func TestResolveHostKeyCreatesDir(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "host_key")

	got, err := resolveHostKey(want)
	if err != nil {
		t.Fatalf("resolveHostKey() error = %v", err)
	}
	if got != want {
		t.Errorf("resolveHostKey() = %q, expected %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("key directory was not created: %v", err)
	}
}

func TestSessionModelMenuToViewerAndBack(t *testing.T) {
	cfg := config.Default()
	cfg.Run.AutoRestart = false
	rc := core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 3}

	var m tea.Model = NewSessionModel(cfg, nil, rc, nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.viewer == nil {
		t.Fatal("Enter in the menu should start a visualizer")
	}
	if !sm.viewer.embedded {
		t.Error("viewer started from a session should be embedded")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	sm = m.(SessionModel)
	if sm.viewer != nil {
		t.Error("back should return to the menu")
	}
	if sm.quitting {
		t.Error("back should not end the session")
	}
}

func TestSessionModelDoesNotExportLayouts(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.Default()
	rc := core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}

	var m tea.Model = NewSessionModel(cfg, nil, rc, nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	}

	sm := m.(SessionModel)
	if sm.viewer == nil {
		t.Fatal("Enter in the menu should start a visualizer")
	}
	if sm.viewer.status != "saving layouts is not available over SSH" {
		t.Errorf("status = %q, expected the export to be refused", sm.viewer.status)
	}
	if _, err := os.Stat(filepath.Join(home, ".mazetrace")); !os.IsNotExist(err) {
		t.Errorf("remote ctrl+s touched the server home: %v", err)
	}
}

func TestSSHServerUsesGivenLogger(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "runs.db")
	cfg.Logger = logger

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	defer srv.Shutdown()

	if got := srv.logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("server log level = %v, expected debug", got)
	}
	srv.logger.Debug("hello")
	if out := buf.String(); !strings.Contains(out, "mazetrace-ssh") || !strings.Contains(out, "hello") {
		t.Errorf("server log output = %q, expected prefixed debug line", out)
	}
}
