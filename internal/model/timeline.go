package model

import "sort"

// Region is one active governance interval for one actor. EndLine 0 means
// unbounded (until the next tag for the same actor or EOF). RestoresTo links
// to the region that was active when this one began; the links form an
// implicit per-actor stack, which is what makes a bounded region nested
// inside an unbounded one revert to the outer region, not to default.
type Region struct {
	Permission Permission
	StartLine  int
	EndLine    int
	RestoresTo *Region
}

// Open reports whether the region still governs the given line.
func (r *Region) Open(line int) bool {
	return r.EndLine == 0 || line <= r.EndLine
}

// Timeline is the resolved per-line, per-actor permission state for one
// file. It is complete for the whole file or not produced at all; partial
// timelines are never published.
type Timeline struct {
	lineCount int
	actors    map[ActorKey][]Permission
}

// NewTimeline allocates a timeline for a file of lineCount lines.
func NewTimeline(lineCount int) *Timeline {
	return &Timeline{
		lineCount: lineCount,
		actors:    make(map[ActorKey][]Permission),
	}
}

// LineCount is the number of lines in the underlying file.
func (t *Timeline) LineCount() int {
	return t.lineCount
}

// Set records the permission for one actor at one line (1-based).
func (t *Timeline) Set(actor ActorKey, line int, p Permission) {
	if line < 1 || line > t.lineCount {
		return
	}

	perLine, ok := t.actors[actor]
	if !ok {
		perLine = make([]Permission, t.lineCount)
		for i := range perLine {
			perLine[i] = PermissionDefault
		}
		t.actors[actor] = perLine
	}

	perLine[line-1] = p
}

// PermissionAt is the effective permission for actor at line. Lines outside
// the file and actors never seen report PermissionDefault.
func (t *Timeline) PermissionAt(actor ActorKey, line int) Permission {
	if line < 1 || line > t.lineCount {
		return PermissionDefault
	}

	perLine, ok := t.actors[actor]
	if !ok {
		return PermissionDefault
	}

	return perLine[line-1]
}

// Actors lists every actor the file declares guards for, sorted for stable
// output.
func (t *Timeline) Actors() []ActorKey {
	keys := make([]ActorKey, 0, len(t.actors))
	for k := range t.actors {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}

		return keys[i].Identifier < keys[j].Identifier
	})

	return keys
}

// GuardedRange is one run-length-collapsed interval of a timeline.
type GuardedRange struct {
	Permission Permission
	StartLine  int
	EndLine    int
}
