package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/kamal-hamza/fetch-tool/internal/core/ports"
	"github.com/kamal-hamza/fetch-tool/pkg/ui"
)

// progressInterval throttles how often byte counts reach the view
const progressInterval = 100 * time.Millisecond

// downloadFunc performs a download, reporting through progress when non-nil
type downloadFunc func(ctx context.Context, progress ports.ProgressFunc) (*ports.DownloadResult, error)

// downloadRunner runs a download while showing its progress on out
type downloadRunner func(ctx context.Context, out io.Writer, name string, run downloadFunc) (*ports.DownloadResult, error)

type downloadProgressMsg struct {
	written int64
	total   int64
}

type downloadDoneMsg struct {
	result *ports.DownloadResult
	err    error
}

type progressModel struct {
	name    string
	bar     progress.Model
	written int64
	total   int64
	done    bool
	err     error
	cancel  context.CancelFunc
}

func newProgressModel(name string, cancel context.CancelFunc) progressModel {
	return progressModel{
		name:   name,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total:  -1,
		cancel: cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-30, 10), 60)
		return m, nil

	case downloadProgressMsg:
		m.written = msg.written
		m.total = msg.total
		return m, nil

	case downloadDoneMsg:
		m.done = true
		m.err = msg.err
		if msg.result != nil {
			m.written = msg.result.Bytes
			if m.total < 0 {
				m.total = msg.result.Bytes
			}
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m progressModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.written)/float64(m.total), 1)
}

func (m progressModel) View() string {
	var b strings.Builder

	b.WriteString(ui.FormatDownload(m.name))
	b.WriteString("\n")

	if m.total > 0 {
		b.WriteString(m.bar.ViewAs(m.percent()))
		b.WriteString("  ")
	}
	b.WriteString(ui.FormatMuted(ui.FormatTransfer(m.written, m.total)))
	b.WriteString("\n")

	if !m.done {
		b.WriteString(ui.FormatMuted("q / ctrl+c to cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

// runWithProgress drives run in a goroutine while a Bubble Tea program
// renders its progress. Quitting the program cancels the download.
func runWithProgress(ctx context.Context, out io.Writer, name string, run downloadFunc) (*ports.DownloadResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(name, cancel), tea.WithOutput(out))

	doneCh := make(chan downloadDoneMsg, 1)
	go func() {
		var last time.Time
		res, err := run(ctx, func(written, total int64) {
			now := time.Now()
			if written != total && now.Sub(last) < progressInterval {
				return
			}
			last = now
			p.Send(downloadProgressMsg{written: written, total: total})
		})
		done := downloadDoneMsg{result: res, err: err}
		doneCh <- done
		p.Send(done)
	}()

	_, runErr := p.Run()
	// The program may have exited first (user quit, terminal error)
	cancel()
	done := <-doneCh

	if done.err != nil {
		if errors.Is(done.err, context.Canceled) {
			return nil, errors.New("download canceled")
		}
		return nil, done.err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("progress view: %w", runErr)
	}
	return done.result, nil
}

// isTerminal reports whether w is a terminal file descriptor
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
