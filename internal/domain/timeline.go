package domain

import (
	m "guardscope.dev/pkg/guardscope/internal/model"
)

// ResolvedTag pairs a scanned tag with its located span. Span is non-nil
// only for semantic scopes the locator resolved; a semantic tag whose span
// could not be resolved arrives with a nil Span and is treated as unbounded.
type ResolvedTag struct {
	Tag  m.GuardTag
	Span *LineSpan
}

// TimelineBuilder replays the ordered tag sequence and produces the
// definitive per-line, per-actor permission state for a file.
type TimelineBuilder interface {
	Build(lineCount int, tags []ResolvedTag) *m.Timeline
}

type timelineBuilder struct{}

// NewTimelineBuilder constructs the production TimelineBuilder.
func NewTimelineBuilder() TimelineBuilder {
	return &timelineBuilder{}
}

// pendingRegion is a region scheduled to open at a particular line for a
// particular actor.
type pendingRegion struct {
	actor      m.ActorKey
	permission m.Permission
	start      int
	end        int // 0 = unbounded
}

// Build runs a single left-to-right pass. State is partitioned by ActorKey:
// each actor has its own current-region reference and tags for different
// actors never interact. Every new region snapshots whatever was active for
// its actor when it opens (the restoresTo link), so a bounded region nested
// inside an unbounded one reverts to the outer region, not to default, when
// its extent elapses. Blank lines are governed like any other line; they
// never reset state and always count toward line-count extents.
func (b *timelineBuilder) Build(lineCount int, tags []ResolvedTag) *m.Timeline {
	timeline := m.NewTimeline(lineCount)

	opens := make(map[int][]pendingRegion)
	actors := make(map[m.ActorKey]*m.Region)

	for _, rt := range tags {
		pending, ok := b.schedule(rt, lineCount)
		if !ok {
			continue
		}

		opens[pending.start] = append(opens[pending.start], pending)
		if _, seen := actors[pending.actor]; !seen {
			actors[pending.actor] = nil
		}
	}

	for line := 1; line <= lineCount; line++ {
		// Pop every region whose extent has elapsed, following restoresTo
		// links; a restored region may itself already be stale.
		for actor, region := range actors {
			for region != nil && !region.Open(line) {
				region = region.RestoresTo
			}
			actors[actor] = region
		}

		for _, pending := range opens[line] {
			actors[pending.actor] = &m.Region{
				Permission: pending.permission,
				StartLine:  pending.start,
				EndLine:    pending.end,
				RestoresTo: actors[pending.actor],
			}
		}

		for actor, region := range actors {
			if region != nil {
				timeline.Set(actor, line, region.Permission)
			}
		}
	}

	return timeline
}

// schedule computes where a tag's region opens and closes. Line-count
// regions open on the tag line; a standalone count governs the n lines below
// the declaration line while an inline count starts counting on the tag's
// own line, since that line carries governed code. Ends are clamped to the
// file's last line.
func (b *timelineBuilder) schedule(rt ResolvedTag, lineCount int) (pendingRegion, bool) {
	tag := rt.Tag

	pending := pendingRegion{
		actor:      tag.Actor,
		permission: tag.Permission,
		start:      tag.Line,
	}

	switch tag.Scope.Kind {
	case m.ScopeLineCount:
		if tag.Anchor == m.AnchorInline {
			pending.end = tag.Line + tag.Scope.Count - 1
		} else {
			pending.end = tag.Line + tag.Scope.Count
		}

	case m.ScopeSemantic:
		if rt.Span != nil {
			pending.start = rt.Span.Start
			pending.end = rt.Span.End
		}
		// nil span: degraded to unbounded, end stays 0.

	case m.ScopeUnbounded:
	}

	if pending.end > lineCount {
		pending.end = lineCount
	}

	if pending.start > lineCount {
		return pendingRegion{}, false
	}

	return pending, true
}
