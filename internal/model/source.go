package model

// Path represents a file system path.
type Path string

// File represents a source file queued for guard resolution.
type File struct {
	Path     Path
	Language string
}

// FileReport is the complete outcome of one file-processing pass: the
// resolved timeline plus everything a consumer needs to display or export
// it. Reports are recomputed fresh per pass; nothing here persists.
type FileReport struct {
	File        File
	Lines       []string
	Tags        []GuardTag
	Timeline    *Timeline
	Diagnostics []Diagnostic
}
