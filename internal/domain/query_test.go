package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

func TestQuery_PermissionAtOutOfRange(t *testing.T) {
	tl := m.NewTimeline(3)

	assert.Equal(t, m.PermissionDefault, PermissionAt(tl, aiKey, 0))
	assert.Equal(t, m.PermissionDefault, PermissionAt(tl, aiKey, 4))
	assert.Equal(t, m.PermissionDefault, PermissionAt(tl, aiKey, 2))
}

func TestQuery_RangesForCollapsesRuns(t *testing.T) {
	b := NewTimelineBuilder()

	tl := b.Build(8, []ResolvedTag{
		unboundedAt(1, m.PermissionWrite),
		lineCountAt(3, 2, m.PermissionRead, m.AnchorStandalone),
	})

	var ranges []m.GuardedRange
	for r := range RangesFor(tl, aiKey) {
		ranges = append(ranges, r)
	}

	require.Len(t, ranges, 3)
	assert.Equal(t, m.GuardedRange{Permission: m.PermissionWrite, StartLine: 1, EndLine: 2}, ranges[0])
	assert.Equal(t, m.GuardedRange{Permission: m.PermissionRead, StartLine: 3, EndLine: 5}, ranges[1])
	assert.Equal(t, m.GuardedRange{Permission: m.PermissionWrite, StartLine: 6, EndLine: 8}, ranges[2])
}

func TestQuery_RangesForSkipsUnguardedGaps(t *testing.T) {
	b := NewTimelineBuilder()

	tl := b.Build(10, []ResolvedTag{
		semanticAt(2, m.PermissionNone, LineSpan{Start: 2, End: 4}),
		semanticAt(7, m.PermissionRead, LineSpan{Start: 7, End: 8}),
	})

	var ranges []m.GuardedRange
	for r := range RangesFor(tl, aiKey) {
		ranges = append(ranges, r)
	}

	require.Len(t, ranges, 2)
	assert.Equal(t, m.GuardedRange{Permission: m.PermissionNone, StartLine: 2, EndLine: 4}, ranges[0])
	assert.Equal(t, m.GuardedRange{Permission: m.PermissionRead, StartLine: 7, EndLine: 8}, ranges[1])
}

func TestQuery_RangesForIsRestartable(t *testing.T) {
	b := NewTimelineBuilder()

	tl := b.Build(4, []ResolvedTag{unboundedAt(2, m.PermissionWrite)})
	seq := RangesFor(tl, aiKey)

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	assert.Equal(t, count(), count())
}

func TestQuery_RangesForEmptyActor(t *testing.T) {
	tl := m.NewTimeline(5)

	for range RangesFor(tl, m.ActorKey{Kind: "nobody"}) {
		t.Fatal("no ranges expected for an actor with no tags")
	}
}
