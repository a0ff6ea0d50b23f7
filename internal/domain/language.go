package domain

import (
	"path/filepath"
	"strings"

	m "guardscope.dev/pkg/guardscope/internal/model"
)

// CommentStyle describes how a language writes comments and doc blocks.
// The scanner uses it to tell tag anchors apart and the locator uses it to
// bound context regions.
type CommentStyle struct {
	LinePrefixes []string
	BlockStart   string
	BlockEnd     string
	DocDelims    []string
}

// language couples an identifier with its comment style.
type language struct {
	id    string
	style CommentStyle
}

var cStyle = CommentStyle{
	LinePrefixes: []string{"//"},
	BlockStart:   "/*",
	BlockEnd:     "*/",
	DocDelims:    []string{"`"},
}

var hashStyle = CommentStyle{
	LinePrefixes: []string{"#"},
	DocDelims:    []string{`"""`, "'''"},
}

// languagesByExt maps file extensions to language descriptors. Unknown
// extensions fall back to a permissive default so bare tag scanning still
// works everywhere.
var languagesByExt = map[string]language{
	".go":   {id: "go", style: cStyle},
	".js":   {id: "javascript", style: cStyle},
	".jsx":  {id: "javascript", style: cStyle},
	".ts":   {id: "typescript", style: cStyle},
	".tsx":  {id: "typescript", style: cStyle},
	".java": {id: "java", style: cStyle},
	".c":    {id: "c", style: cStyle},
	".h":    {id: "c", style: cStyle},
	".cpp":  {id: "cpp", style: cStyle},
	".rs":   {id: "rust", style: cStyle},
	".py":   {id: "python", style: hashStyle},
	".rb":   {id: "ruby", style: hashStyle},
	".sh":   {id: "shell", style: hashStyle},
	".yaml": {id: "yaml", style: hashStyle},
	".yml":  {id: "yaml", style: hashStyle},
}

var defaultLanguage = language{
	id: "plaintext",
	style: CommentStyle{
		LinePrefixes: []string{"#", "//", "--", ";"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
	},
}

// DetectLanguage resolves a path to its language id and comment style.
func DetectLanguage(path m.Path) (string, CommentStyle) {
	ext := strings.ToLower(filepath.Ext(string(path)))
	if lang, ok := languagesByExt[ext]; ok {
		return lang.id, lang.style
	}

	return defaultLanguage.id, defaultLanguage.style
}

// commentPrefix returns the line-comment marker that opens the comment at or
// before column, or "" when the line has none. It scans left to right so a
// marker inside a trailing comment does not shadow an earlier one.
func (cs CommentStyle) commentPrefix(line string) (string, int) {
	best := -1
	marker := ""

	for _, p := range cs.LinePrefixes {
		if idx := strings.Index(line, p); idx >= 0 && (best == -1 || idx < best) {
			best = idx
			marker = p
		}
	}

	if cs.BlockStart != "" {
		if idx := strings.Index(line, cs.BlockStart); idx >= 0 && (best == -1 || idx < best) {
			best = idx
			marker = cs.BlockStart
		}
	}

	return marker, best
}

// isCommentLine reports whether the trimmed line is nothing but a comment
// opened by the given marker.
func (cs CommentStyle) isCommentLine(line, marker string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	return strings.HasPrefix(trimmed, marker)
}

// docDelimiter returns the doc-block delimiter the trimmed line starts with,
// or "".
func (cs CommentStyle) docDelimiter(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, d := range cs.DocDelims {
		if strings.HasPrefix(trimmed, d) {
			return d
		}
	}

	return ""
}
