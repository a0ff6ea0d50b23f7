package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"guardscope.dev/pkg/guardscope/internal/domain"
	m "guardscope.dev/pkg/guardscope/internal/model"
)

var exportOutputFlag string

// exportDocument is the YAML shape written by the export command.
type exportDocument struct {
	File        string             `yaml:"file"`
	Language    string             `yaml:"language"`
	Lines       int                `yaml:"lines"`
	Tags        []exportTag        `yaml:"tags"`
	Actors      []exportActor      `yaml:"actors"`
	Diagnostics []exportDiagnostic `yaml:"diagnostics,omitempty"`
}

type exportTag struct {
	Line       int    `yaml:"line"`
	Actor      string `yaml:"actor"`
	Permission string `yaml:"permission"`
	Scope      string `yaml:"scope"`
	Anchor     string `yaml:"anchor"`
	Raw        string `yaml:"raw"`
}

type exportActor struct {
	Actor  string        `yaml:"actor"`
	Ranges []exportRange `yaml:"ranges"`
}

type exportRange struct {
	Permission string `yaml:"permission"`
	StartLine  int    `yaml:"start_line"`
	EndLine    int    `yaml:"end_line"`
}

type exportDiagnostic struct {
	Kind   string `yaml:"kind"`
	Line   int    `yaml:"line,omitempty"`
	Detail string `yaml:"detail"`
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a file's resolved timeline as YAML",
		Long: `Resolve a file's guard tags and write the tags, the per-actor guarded
ranges and any diagnostics as a YAML document, suitable for consumption by
editor integrations and CI gates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := workflow.Inspect(cmd.Context(), m.Path(args[0]))
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if exportOutputFlag != "" {
				f, createErr := os.Create(exportOutputFlag)
				if createErr != nil {
					return createErr
				}
				defer f.Close()
				out = f
			}

			return writeExport(out, report)
		},
	}

	cmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func writeExport(w io.Writer, report *m.FileReport) error {
	doc := exportDocument{
		File:     string(report.File.Path),
		Language: report.File.Language,
		Lines:    len(report.Lines),
		Tags:     make([]exportTag, 0, len(report.Tags)),
	}

	for _, tag := range report.Tags {
		doc.Tags = append(doc.Tags, exportTag{
			Line:       tag.Line,
			Actor:      tag.Actor.String(),
			Permission: string(tag.Permission),
			Scope:      formatScope(tag.Scope),
			Anchor:     string(tag.Anchor),
			Raw:        tag.Raw,
		})
	}

	for _, actor := range report.Timeline.Actors() {
		entry := exportActor{Actor: actor.String()}
		for run := range domain.RangesFor(report.Timeline, actor) {
			entry.Ranges = append(entry.Ranges, exportRange{
				Permission: string(run.Permission),
				StartLine:  run.StartLine,
				EndLine:    run.EndLine,
			})
		}

		doc.Actors = append(doc.Actors, entry)
	}

	for _, diag := range report.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, exportDiagnostic{
			Kind:   string(diag.Kind),
			Line:   diag.Line,
			Detail: diag.Detail,
		})
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	return encoder.Encode(doc)
}

func formatScope(scope m.ScopeSpec) string {
	switch scope.Kind {
	case m.ScopeLineCount:
		return fmt.Sprintf("%s:%d", scope.Kind, scope.Count)
	case m.ScopeSemantic:
		return string(scope.Kind) + ":" + scope.Name
	default:
		return string(scope.Kind)
	}
}

func init() {
	rootCmd.AddCommand(newExportCmd())
}
