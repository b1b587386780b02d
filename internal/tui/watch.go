// Package tui provides the live watch view. It is a thin consumer: it
// only ever reads published snapshots and asks the poller for rescans.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rub1cc/barcc/internal/cli"
	"github.com/rub1cc/barcc/internal/model"
	"github.com/rub1cc/barcc/internal/pipeline"
)

// SnapshotMsg delivers a freshly published snapshot.
type SnapshotMsg struct {
	Snapshot *model.Snapshot
}

type tickMsg time.Time

// App is the root Bubble Tea model for `barcc watch`.
type App struct {
	poller       *pipeline.Poller
	includeCache bool

	snap  *model.Snapshot
	spin  spinner.Model
	width int
}

// NewApp returns the watch view reading from the given poller.
func NewApp(poller *pipeline.Poller, includeCache bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	return App{
		poller:       poller,
		includeCache: includeCache,
		spin:         sp,
	}
}

// Init starts the spinner and the snapshot listener.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.waitForSnapshot(), tickEvery())
}

func (a App) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{Snapshot: <-a.poller.Updates()}
	}
}

// tickEvery redraws the "updated ago" line even when nothing changes.
func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "r":
			a.poller.Request()
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case SnapshotMsg:
		a.snap = msg.Snapshot
		return a, a.waitForSnapshot()

	case tickMsg:
		return a, tickEvery()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	return a, nil
}

// View renders the dashboard.
func (a App) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cli.RenderTitle("CLAUDE CODE USAGE — LIVE"))
	b.WriteString("\n\n")

	if a.snap == nil {
		b.WriteString("  " + a.spin.View() + " Scanning session logs...\n")
		return b.String()
	}

	snap := a.snap
	today := snap.Today
	b.WriteString(cli.RenderStat("Today", fmt.Sprintf("%s  %s tokens  %d messages  %d sessions",
		cli.RenderCost(cli.FormatCost(today.Cost)),
		cli.RenderTokens(cli.FormatTokens(today.Tokens.Display(a.includeCache))),
		today.Messages,
		today.Sessions,
	)))
	b.WriteString("\n")
	b.WriteString(cli.RenderStat("All time", fmt.Sprintf("%s  %s tokens  %d messages",
		cli.RenderCost(cli.FormatCost(snap.Totals.Cost)),
		cli.RenderTokens(cli.FormatTokens(snap.Totals.Tokens.Display(a.includeCache))),
		snap.Totals.Messages,
	)))
	b.WriteString("\n\n")

	b.WriteString(cli.RenderMuted("  Last 7 days"))
	b.WriteString("\n")
	b.WriteString(cli.RenderCostBar(snap.Last7Days, 30))
	b.WriteString("\n")

	for i, m := range snap.Models {
		if i >= 5 {
			b.WriteString(cli.RenderMuted(fmt.Sprintf("  ... and %d more models\n", len(snap.Models)-i)))
			break
		}
		b.WriteString(fmt.Sprintf("  %-12s %8s  %s\n",
			m.DisplayName,
			cli.FormatTokens(m.Tokens.Display(a.includeCache)),
			cli.RenderCost(cli.FormatCost(m.Cost)),
		))
	}

	b.WriteString("\n")
	b.WriteString(cli.RenderMuted(fmt.Sprintf("  Updated %s  ·  r rescan  ·  q quit",
		cli.FormatAgo(snap.UpdatedAt, time.Now()))))
	b.WriteString("\n")
	return b.String()
}
