package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"guardscope.dev/pkg/guardscope/internal/domain"
	m "guardscope.dev/pkg/guardscope/internal/model"
)

var checkActorFlag string
var checkLineFlag int

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check one actor's permission at a specific line",
		Long: `Resolve a file's guard tags and report the effective permission for a
single actor at a single line. Exits non-zero when the permission is "none",
so the command can gate automated edits:

  guardscope check main.go --actor ai --line 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := parseActor(checkActorFlag)
			if err != nil {
				return err
			}

			if checkLineFlag < 1 {
				return fmt.Errorf("invalid line %d (lines are 1-based)", checkLineFlag)
			}

			report, err := workflow.Inspect(cmd.Context(), m.Path(args[0]))
			if err != nil {
				return err
			}

			out := selectUI(cmd)

			if err := out.Start(cmd.Context()); err != nil {
				return err
			}
			defer out.Close(cmd.Context())

			permission := domain.PermissionAt(report.Timeline, actor, checkLineFlag)
			out.DisplayPermission(cmd.Context(), actor, checkLineFlag, permission)
			out.DisplayDiagnostics(cmd.Context(), report.Diagnostics)

			if permission == m.PermissionNone {
				cmd.SilenceUsage = true

				return fmt.Errorf("%s has no access to %s:%d", actor, args[0], checkLineFlag)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&checkActorFlag, "actor", "a", "", "actor to check, e.g. ai or human[team-a]")
	cmd.Flags().IntVarP(&checkLineFlag, "line", "l", 0, "1-based line number to check")
	cobra.CheckErr(cmd.MarkFlagRequired("actor"))
	cobra.CheckErr(cmd.MarkFlagRequired("line"))

	return cmd
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}
