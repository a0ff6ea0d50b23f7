// Package cmd provides the root command and CLI setup for guardscope.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"guardscope.dev/pkg/guardscope/internal/adapter"
	"guardscope.dev/pkg/guardscope/internal/controller"
	"guardscope.dev/pkg/guardscope/internal/domain"
	m "guardscope.dev/pkg/guardscope/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var scopeConfig adapter.ScopeConfigAdapter
var scopeResolver domain.ScopeResolver
var workflow domain.Workflow
var ui controller.UI

// scopesFileFlag points at a custom language-scopes resource.
var scopesFileFlag string

// noTUIFlag forces plain output even on a terminal.
var noTUIFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	scopeConfig = adapter.NewLocalScopeConfigAdapter(m.Path(viper.GetString(scopesConfigKey)))
	scopeResolver = domain.NewScopeResolver(scopeConfig)
	workflow = domain.NewWorkflow(fsAdapter, scopeResolver, adapter.NewLocalGoSyntaxAdapter())
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const rootLongDescription = `Guardscope resolves @guard annotations in source files into an
authoritative per-line, per-actor permission timeline: which regions an AI
agent, a human role, or a named team may read, write, or not access at all.

` + pathPatternsHelp

const listLongDescription = `List source files carrying guard tags, with tag and diagnostic counts.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guardscope",
		Short: "Guard tag permission resolver",
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			// A custom scope resource replaces the embedded defaults; tests
			// that stub the workflow never touch this flag.
			if cmd.Flags().Changed(scopesFlagName) {
				scopeConfig = adapter.NewLocalScopeConfigAdapter(m.Path(viper.GetString(scopesConfigKey)))
				scopeResolver = domain.NewScopeResolver(scopeConfig)
				workflow = domain.NewWorkflow(fsAdapter, scopeResolver, adapter.NewLocalGoSyntaxAdapter())
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&scopesFileFlag, scopesFlagName, "s",
			viper.GetString(scopesConfigKey),
			"path to a language-scopes YAML resource (default: embedded)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(scopesFlagName), scopesConfigKey)

	cmd.PersistentFlags().BoolVar(&noTUIFlag, noTUIFlagName, viper.GetBool(noTUIConfigKey), "disable the interactive terminal UI")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noTUIFlagName), noTUIConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// parseActor turns "ai" or "human[team-a]" into an ActorKey.
func parseActor(arg string) (m.ActorKey, error) {
	open := strings.Index(arg, "[")
	if open < 0 {
		if arg == "" {
			return m.ActorKey{}, fmt.Errorf("empty actor")
		}

		return m.ActorKey{Kind: arg}, nil
	}

	if !strings.HasSuffix(arg, "]") || open == 0 {
		return m.ActorKey{}, fmt.Errorf("malformed actor %q (want kind or kind[identifier])", arg)
	}

	identifier := arg[open+1 : len(arg)-1]
	if identifier == "" {
		return m.ActorKey{}, fmt.Errorf("malformed actor %q (empty identifier)", arg)
	}

	return m.ActorKey{Kind: arg[:open], Identifier: identifier}, nil
}

// selectUI honors --no-tui for commands that would otherwise open the
// interactive view.
func selectUI(cmd *cobra.Command) controller.UI {
	if viper.GetBool(noTUIConfigKey) {
		return controller.NewSimpleUI(cmd)
	}

	return ui
}
