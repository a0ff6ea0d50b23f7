package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// Styles follow the original highlight scheme: write regions red, denied
// regions green, context regions cyan, read regions unstyled.
var (
	styleWrite   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleNone    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleContext = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleGutter  = lipgloss.NewStyle().Faint(true)
	styleHeader  = lipgloss.NewStyle().Bold(true)
)

// pageThreshold is the line count above which the TUI switches from plain
// printing to an interactive scrollable view.
const pageThreshold = 40

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// Start applies the mode options. In list mode every report prints plain;
// the interactive viewport is reserved for single-file view mode.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	config := StartConfig{}
	for _, option := range options {
		option(&config)
	}

	t.mode = config.mode

	return ctx.Err()
}

// Close finalizes the UI.
func (t *TUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (the program's Run handles this).
func (t *TUI) Wait(_ context.Context) {}

// DisplayReport renders the file with per-line permission coloring. Short
// files print directly; longer ones open a scrollable viewport (tab cycles
// actors, q quits).
func (t *TUI) DisplayReport(ctx context.Context, report *m.FileReport, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		t.cmd.Printf("inspection error: %v\n", err)
		return err
	}

	model := newTimelineModel(report)

	if t.mode == ModeList || len(report.Lines) <= pageThreshold {
		t.cmd.Print(model.header() + model.renderBody() + model.legend())
		t.DisplayDiagnostics(ctx, report.Diagnostics)

		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayFileList prints the summary table; pagination adds nothing here.
func (t *TUI) DisplayFileList(ctx context.Context, reports []*m.FileReport, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		t.cmd.Printf("listing error: %v\n", err)
		return err
	}

	t.cmd.Printf("\n%s", renderFileListTable(reports))

	return nil
}

// DisplayPermission prints a single permission query result.
func (t *TUI) DisplayPermission(ctx context.Context, actor m.ActorKey, line int, p m.Permission) {
	if ctx.Err() != nil {
		return
	}

	t.cmd.Printf("%s @ line %d: %s\n", actor, line, p)
}

// DisplayDiagnostics prints the non-fatal findings.
func (t *TUI) DisplayDiagnostics(ctx context.Context, diags []m.Diagnostic) {
	if ctx.Err() != nil || len(diags) == 0 {
		return
	}

	t.cmd.Printf("\n")
	for _, d := range diags {
		if d.Line > 0 {
			t.cmd.Printf("%s: line %d: %s\n", d.Kind, d.Line, d.Detail)
		} else {
			t.cmd.Printf("%s: %s\n", d.Kind, d.Detail)
		}
	}
}

// timelineModel is the Bubble Tea model behind DisplayReport.
type timelineModel struct {
	report   *m.FileReport
	actors   []m.ActorKey
	actorIdx int

	viewport viewport.Model
	ready    bool
}

func newTimelineModel(report *m.FileReport) *timelineModel {
	return &timelineModel{
		report: report,
		actors: report.Timeline.Actors(),
	}
}

// Init implements tea.Model.
func (tm *timelineModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (tm *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(tm.header()) + lipgloss.Height(tm.legend())
		if !tm.ready {
			tm.viewport = viewport.New(msg.Width, msg.Height-chrome)
			tm.ready = true
		} else {
			tm.viewport.Width = msg.Width
			tm.viewport.Height = msg.Height - chrome
		}

		tm.viewport.SetContent(tm.renderBody())

		return tm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return tm, tea.Quit
		case "tab":
			if len(tm.actors) > 0 {
				tm.actorIdx = (tm.actorIdx + 1) % len(tm.actors)
				tm.viewport.SetContent(tm.renderBody())
			}

			return tm, nil
		}
	}

	var cmd tea.Cmd
	tm.viewport, cmd = tm.viewport.Update(msg)

	return tm, cmd
}

// View implements tea.Model.
func (tm *timelineModel) View() string {
	if !tm.ready {
		return "loading..."
	}

	return tm.header() + tm.viewport.View() + "\n" + tm.legend()
}

func (tm *timelineModel) currentActor() (m.ActorKey, bool) {
	if len(tm.actors) == 0 {
		return m.ActorKey{}, false
	}

	return tm.actors[tm.actorIdx], true
}

func (tm *timelineModel) header() string {
	actor := "(no guarded actors)"
	if a, ok := tm.currentActor(); ok {
		actor = a.String()
	}

	return styleHeader.Render(fmt.Sprintf("%s - actor: %s", tm.report.File.Path, actor)) + "\n"
}

// renderBody colors every line according to the current actor's effective
// permission.
func (tm *timelineModel) renderBody() string {
	var b strings.Builder

	actor, hasActor := tm.currentActor()
	width := len(fmt.Sprintf("%d", len(tm.report.Lines)))

	for i, line := range tm.report.Lines {
		lineNo := i + 1
		gutter := styleGutter.Render(fmt.Sprintf("%*d ", width, lineNo))

		rendered := line
		if hasActor {
			rendered = permissionStyle(tm.report.Timeline.PermissionAt(actor, lineNo)).Render(line)
		}

		b.WriteString(gutter + rendered + "\n")
	}

	return b.String()
}

func (tm *timelineModel) legend() string {
	return styleGutter.Render("tab: next actor • q: quit • ") +
		styleWrite.Render("write") + " " +
		styleNone.Render("none") + " " +
		styleContext.Render("context") + " read\n"
}

func permissionStyle(p m.Permission) lipgloss.Style {
	switch p {
	case m.PermissionWrite:
		return styleWrite
	case m.PermissionNone:
		return styleNone
	case m.PermissionContext:
		return styleContext
	default:
		return lipgloss.NewStyle()
	}
}
