package domain

import (
	"iter"

	m "guardscope.dev/pkg/guardscope/internal/model"
	"guardscope.dev/pkg/guardscope/pkg/runlength"
)

// The query façade is the read-only surface consumers see once a timeline is
// complete. It never mutates the timeline.

// PermissionAt is the effective permission for actor at line; lines no tag
// governs report m.PermissionDefault.
func PermissionAt(t *m.Timeline, actor m.ActorKey, line int) m.Permission {
	return t.PermissionAt(actor, line)
}

// RangesFor enumerates the guarded ranges for one actor by run-length
// collapsing the per-line permission function. The sequence is lazy and
// restartable; unguarded gaps are skipped.
func RangesFor(t *m.Timeline, actor m.ActorKey) iter.Seq[m.GuardedRange] {
	runs := runlength.Collapse(t.LineCount(), func(line int) m.Permission {
		return t.PermissionAt(actor, line)
	})

	return func(yield func(m.GuardedRange) bool) {
		for run := range runs {
			if run.Value == m.PermissionDefault {
				continue
			}

			if !yield(m.GuardedRange{Permission: run.Value, StartLine: run.Start, EndLine: run.End}) {
				return
			}
		}
	}
}
