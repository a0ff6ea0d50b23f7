package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a guardscope.yaml with the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(target)
			if err != nil {
				var exists viper.ConfigFileAlreadyExistsError
				if errors.As(err, &exists) || errors.Is(err, os.ErrExist) {
					cmd.Printf("Config file already exists: %s\n", target)

					return nil
				}

				return err
			}

			cmd.Printf("Wrote %s\n", target)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}
