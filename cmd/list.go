package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"guardscope.dev/pkg/guardscope/internal/controller"
)

var parallelFlag int

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path ...]",
		Short: "List files carrying guard tags",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"./..."}
			}

			out := selectUI(cmd)

			if err := out.Start(cmd.Context(), controller.WithListMode()); err != nil {
				return err
			}
			defer out.Close(cmd.Context())

			reports, err := workflow.InspectAll(cmd.Context(), parsePaths(args), viper.GetInt(parallelKey))
			if err := out.DisplayFileList(cmd.Context(), reports, err); err != nil {
				return err
			}

			out.Wait(cmd.Context())

			return nil
		},
	}

	cmd.Flags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelKey), "number of files to process in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(newListCmd())
}
