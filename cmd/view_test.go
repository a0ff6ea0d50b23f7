package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

func TestViewCmd_RendersTimeline(t *testing.T) {
	var inspected m.Path
	swapWorkflow(t, &stubWorkflow{
		inspect: func(_ context.Context, path m.Path) (*m.FileReport, error) {
			inspected = path

			return sampleReport(path), nil
		},
	})

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newViewCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view", "--no-tui", "example.py"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, m.Path("example.py"), inspected)
	assert.Contains(t, out.String(), "example.py")
	assert.Contains(t, out.String(), "write")
	assert.Contains(t, out.String(), "read")
}

func TestViewCmd_PropagatesInspectError(t *testing.T) {
	swapWorkflow(t, &stubWorkflow{
		inspect: func(_ context.Context, path m.Path) (*m.FileReport, error) {
			return nil, errors.New("no such file")
		},
	})

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newViewCmd())

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view", "--no-tui", "missing.py"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such file")
}

func TestViewCmd_RequiresExactlyOneArg(t *testing.T) {
	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newViewCmd())

	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view"})

	err := cmd.Execute()
	require.Error(t, err)
}
