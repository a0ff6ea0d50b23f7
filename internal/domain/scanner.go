package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// Scanner extracts guard tag occurrences from the raw lines of a file.
type Scanner interface {
	// Scan returns the tags in file order plus diagnostics for occurrences
	// that looked like tags but could not be parsed. A malformed tag never
	// aborts the scan.
	Scan(lines []string, style CommentStyle) ([]m.GuardTag, []m.Diagnostic)
}

type scanner struct{}

// NewScanner constructs the production Scanner.
func NewScanner() Scanner {
	return &scanner{}
}

// tagPattern matches one @guard occurrence:
// @guard:<kind>[identifier]:<permission>[.<scope>]
var tagPattern = regexp.MustCompile(
	`@guard:([A-Za-z0-9_-]+)(?:\[([^\[\]\s]+)\])?:([A-Za-z]+)(?:\.([A-Za-z0-9_-]+))?`,
)

const tagMarker = "@guard:"

func (s *scanner) Scan(lines []string, style CommentStyle) ([]m.GuardTag, []m.Diagnostic) {
	var tags []m.GuardTag
	var diags []m.Diagnostic

	for i, line := range lines {
		lineNo := i + 1
		matched := make(map[int]bool)

		for _, idx := range tagPattern.FindAllStringSubmatchIndex(line, -1) {
			matched[idx[0]] = true

			raw := line[idx[0]:idx[1]]
			groups := tagPattern.FindStringSubmatch(raw)

			tag, err := s.parseTag(lineNo, raw, groups)
			if err != nil {
				diags = append(diags, m.Diagnostic{
					Kind:   m.DiagMalformedTag,
					Line:   lineNo,
					Detail: fmt.Sprintf("%v: %q", err, raw),
				})

				continue
			}

			tag.Anchor = s.anchorFor(line, idx[0], style)
			tags = append(tags, tag)
		}

		// Occurrences of the marker that the grammar did not accept at all.
		for _, pos := range markerPositions(line) {
			if matched[pos] {
				continue
			}

			diags = append(diags, m.Diagnostic{
				Kind:   m.DiagMalformedTag,
				Line:   lineNo,
				Detail: fmt.Sprintf("unparseable guard tag: %q", excerpt(line, pos)),
			})
		}
	}

	return tags, diags
}

func (s *scanner) parseTag(lineNo int, raw string, groups []string) (m.GuardTag, error) {
	perm, err := parsePermission(groups[3])
	if err != nil {
		return m.GuardTag{}, err
	}

	scope, err := parseScope(groups[4])
	if err != nil {
		return m.GuardTag{}, err
	}

	return m.GuardTag{
		Line:       lineNo,
		Actor:      m.ActorKey{Kind: groups[1], Identifier: groups[2]},
		Permission: perm,
		Scope:      scope,
		Raw:        raw,
	}, nil
}

// parsePermission accepts the single-letter tokens plus the long forms the
// tag corpus uses interchangeably.
func parsePermission(token string) (m.Permission, error) {
	switch token {
	case "r", "read":
		return m.PermissionRead, nil
	case "w", "write":
		return m.PermissionWrite, nil
	case "n", "none":
		return m.PermissionNone, nil
	case "context":
		return m.PermissionContext, nil
	}

	return "", fmt.Errorf("unknown permission %q", token)
}

func parseScope(suffix string) (m.ScopeSpec, error) {
	if suffix == "" {
		return m.ScopeSpec{Kind: m.ScopeUnbounded}, nil
	}

	if isAllDigits(suffix) {
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 1 {
			return m.ScopeSpec{}, fmt.Errorf("invalid line count %q", suffix)
		}

		return m.ScopeSpec{Kind: m.ScopeLineCount, Count: n}, nil
	}

	return m.ScopeSpec{Kind: m.ScopeSemantic, Name: suffix}, nil
}

// anchorFor classifies a tag as inline iff non-whitespace code precedes the
// comment the tag lives in.
func (s *scanner) anchorFor(line string, tagIdx int, style CommentStyle) m.Anchor {
	marker, markerIdx := style.commentPrefix(line)

	before := line
	if marker != "" && markerIdx <= tagIdx {
		before = line[:markerIdx]
	} else {
		before = line[:tagIdx]
	}

	if strings.TrimSpace(before) == "" {
		return m.AnchorStandalone
	}

	return m.AnchorInline
}

func markerPositions(line string) []int {
	var out []int

	for off := 0; ; {
		idx := strings.Index(line[off:], tagMarker)
		if idx < 0 {
			return out
		}

		out = append(out, off+idx)
		off += idx + len(tagMarker)
	}
}

func excerpt(line string, pos int) string {
	const max = 40

	rest := line[pos:]
	if len(rest) > max {
		return rest[:max] + "..."
	}

	return rest
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}
