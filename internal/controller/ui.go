// Package controller provides output adapters for displaying guard
// resolution results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeView StartMode = iota
	ModeList
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithViewMode sets the UI to single-file timeline view mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithListMode sets the UI to multi-file listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// UI is the interface commands talk to for displaying results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for the UI to finish (user closes it)

	// DisplayReport renders one file's resolved timeline (or the error that
	// prevented producing it).
	DisplayReport(ctx context.Context, report *m.FileReport, err error) error

	// DisplayFileList renders the per-file tag summary for many files.
	DisplayFileList(ctx context.Context, reports []*m.FileReport, err error) error

	// DisplayPermission renders a single permission query result.
	DisplayPermission(ctx context.Context, actor m.ActorKey, line int, p m.Permission)

	// DisplayDiagnostics renders the non-fatal findings of a pass.
	DisplayDiagnostics(ctx context.Context, diags []m.Diagnostic)
}

// NewUI picks the TUI when stdout is a terminal, SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}
