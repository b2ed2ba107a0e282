package cmd

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kamal-hamza/fetch-tool/internal/core/ports"
)

func TestProgressModelTracksBytes(t *testing.T) {
	m := newProgressModel("ubuntu", func() {})

	updated, cmd := m.Update(downloadProgressMsg{written: 50, total: 200})
	m = updated.(progressModel)

	if cmd != nil {
		t.Error("progress updates should not return a command")
	}
	if m.percent() != 0.25 {
		t.Errorf("expected 25%%, got %v", m.percent())
	}
	if !strings.Contains(m.View(), "ubuntu") {
		t.Error("expected view to name the image")
	}
}

func TestProgressModelUnknownTotal(t *testing.T) {
	m := newProgressModel("arch", func() {})

	updated, _ := m.Update(downloadProgressMsg{written: 10, total: -1})
	m = updated.(progressModel)

	if m.percent() != 0 {
		t.Errorf("expected 0 with unknown total, got %v", m.percent())
	}
	if !strings.Contains(m.View(), "10 B") {
		t.Errorf("expected byte count in view, got %q", m.View())
	}
}

func TestProgressModelQuitsWhenDone(t *testing.T) {
	m := newProgressModel("ubuntu", func() {})

	updated, cmd := m.Update(downloadDoneMsg{result: &ports.DownloadResult{Bytes: 42}})
	m = updated.(progressModel)

	if !m.done {
		t.Error("expected model to be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.written != 42 || m.total != 42 {
		t.Errorf("expected final counts 42/42, got %d/%d", m.written, m.total)
	}
	if strings.Contains(m.View(), "cancel") {
		t.Error("finished view should not offer cancel")
	}
}

func TestProgressModelCancelKey(t *testing.T) {
	canceled := false
	m := newProgressModel("ubuntu", func() { canceled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !canceled {
		t.Error("expected ctrl+c to cancel the download")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}
