package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"guardscope.dev/pkg/guardscope/internal/domain"
	m "guardscope.dev/pkg/guardscope/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayReport prints the guarded ranges of one file, per actor.
func (s *SimpleUI) DisplayReport(ctx context.Context, report *m.FileReport, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("inspection error: %v\n", err)
		return err
	}

	s.printf("%s (%s)\n", report.File.Path, report.File.Language)
	s.printf("\n%s", renderRangesTable(report))
	s.DisplayDiagnostics(ctx, report.Diagnostics)

	return nil
}

// DisplayFileList prints one row per file with tag and diagnostic counts.
func (s *SimpleUI) DisplayFileList(ctx context.Context, reports []*m.FileReport, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("listing error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderFileListTable(reports))

	return nil
}

// DisplayPermission prints a single permission query result.
func (s *SimpleUI) DisplayPermission(ctx context.Context, actor m.ActorKey, line int, p m.Permission) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s @ line %d: %s\n", actor, line, p)
}

// DisplayDiagnostics prints the non-fatal findings, one per line.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, diags []m.Diagnostic) {
	if ctx.Err() != nil || len(diags) == 0 {
		return
	}

	s.printf("\n")
	for _, d := range diags {
		if d.Line > 0 {
			s.printf("%s: line %d: %s\n", d.Kind, d.Line, d.Detail)
		} else {
			s.printf("%s: %s\n", d.Kind, d.Detail)
		}
	}
}

func renderRangesTable(report *m.FileReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Actor", "Permission", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	rangeCount := 0

	for _, actor := range report.Timeline.Actors() {
		for r := range domain.RangesFor(report.Timeline, actor) {
			table.Append([]string{
				actor.String(),
				string(r.Permission),
				formatLineRange(r.StartLine, r.EndLine),
			})

			rangeCount++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Actors %d", len(report.Timeline.Actors())),
		fmt.Sprintf("Ranges %d", rangeCount),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func renderFileListTable(reports []*m.FileReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Tags", "Diagnostics"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	totalTags := 0

	for _, report := range reports {
		if len(report.Tags) == 0 {
			continue
		}

		table.Append([]string{
			string(report.File.Path),
			fmt.Sprintf("%d", len(report.Tags)),
			fmt.Sprintf("%d", len(report.Diagnostics)),
		})

		totalTags += len(report.Tags)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(reports)),
		fmt.Sprintf("%d", totalTags),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func formatLineRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("%d", start)
	}

	return fmt.Sprintf("%d-%d", start, end)
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
