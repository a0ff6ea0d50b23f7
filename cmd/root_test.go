package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// stubWorkflow lets command tests intercept workflow calls without touching
// the file system.
type stubWorkflow struct {
	inspect    func(ctx context.Context, path m.Path) (*m.FileReport, error)
	inspectAll func(ctx context.Context, roots []m.Path, threads int) ([]*m.FileReport, error)
}

func (s *stubWorkflow) Inspect(ctx context.Context, path m.Path) (*m.FileReport, error) {
	return s.inspect(ctx, path)
}

func (s *stubWorkflow) InspectAll(ctx context.Context, roots []m.Path, threads int) ([]*m.FileReport, error) {
	return s.inspectAll(ctx, roots, threads)
}

// swapWorkflow replaces the package-level workflow for the duration of a test.
func swapWorkflow(t *testing.T, stub *stubWorkflow) {
	t.Helper()

	original := workflow
	workflow = stub
	t.Cleanup(func() { workflow = original })
}

// sampleReport builds a small resolved report: ai writes lines 1-2, reads 4-5.
func sampleReport(path m.Path) *m.FileReport {
	ai := m.ActorKey{Kind: "ai"}
	timeline := m.NewTimeline(6)
	timeline.Set(ai, 1, m.PermissionWrite)
	timeline.Set(ai, 2, m.PermissionWrite)
	timeline.Set(ai, 4, m.PermissionRead)
	timeline.Set(ai, 5, m.PermissionRead)

	return &m.FileReport{
		File:  m.File{Path: path, Language: "python"},
		Lines: []string{"# @guard:ai:w", "a = 1", "", "# @guard:ai:r.2", "b = 2", "c = 3"},
		Tags: []m.GuardTag{
			{
				Line:       1,
				Actor:      ai,
				Permission: m.PermissionWrite,
				Scope:      m.ScopeSpec{Kind: m.ScopeUnbounded},
				Anchor:     m.AnchorStandalone,
				Raw:        "@guard:ai:w",
			},
			{
				Line:       4,
				Actor:      ai,
				Permission: m.PermissionRead,
				Scope:      m.ScopeSpec{Kind: m.ScopeLineCount, Count: 2},
				Anchor:     m.AnchorStandalone,
				Raw:        "@guard:ai:r.2",
			},
		},
		Timeline: timeline,
	}
}

func TestParseActor_KindOnly(t *testing.T) {
	actor, err := parseActor("ai")
	require.NoError(t, err)
	assert.Equal(t, m.ActorKey{Kind: "ai"}, actor)
}

func TestParseActor_KindWithIdentifier(t *testing.T) {
	actor, err := parseActor("human[team-a]")
	require.NoError(t, err)
	assert.Equal(t, m.ActorKey{Kind: "human", Identifier: "team-a"}, actor)
}

func TestParseActor_Malformed(t *testing.T) {
	cases := []string{"", "[team-a]", "human[team-a", "human[]"}
	for _, input := range cases {
		_, err := parseActor(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParsePaths(t *testing.T) {
	paths := parsePaths([]string{"./...", "cmd"})
	assert.Equal(t, []m.Path{"./...", "cmd"}, paths)
}

func TestRootCmd_ShowsHelpWithoutSubcommand(t *testing.T) {
	cmd := newRootCmd()
	configureRootFlags(cmd)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "guardscope")
}
