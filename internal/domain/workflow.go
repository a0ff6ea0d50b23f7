package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"guardscope.dev/pkg/guardscope/internal/adapter"
	m "guardscope.dev/pkg/guardscope/internal/model"
)

// Workflow drives the full file-processing pass: scan tags, resolve spans,
// build the timeline. Files are independent; only the scope resolver cache
// is shared between them.
type Workflow interface {
	// Inspect processes a single file. The only fatal condition is an
	// unreadable file; every tag-level problem degrades into diagnostics on
	// the returned report.
	Inspect(ctx context.Context, path m.Path) (*m.FileReport, error)

	// InspectAll walks the given roots (Go-style "./..." patterns descend
	// recursively) and processes every recognized source file, up to
	// `threads` files in parallel. Unreadable files are logged and skipped.
	InspectAll(ctx context.Context, roots []m.Path, threads int) ([]*m.FileReport, error)
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	resolver ScopeResolver
	scanner  Scanner
	locator  SpanLocator
	builder  TimelineBuilder
	syntax   map[string]adapter.SyntaxTreeAdapter
}

// NewWorkflow constructs a Workflow. Syntax adapters are optional per
// language; semantic tags for languages without one degrade to unbounded.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	resolver ScopeResolver,
	syntaxAdapters ...adapter.SyntaxTreeAdapter,
) Workflow {
	syntax := make(map[string]adapter.SyntaxTreeAdapter, len(syntaxAdapters))
	for _, sa := range syntaxAdapters {
		syntax[sa.Language()] = sa
	}

	return &workflow{
		fs:       fs,
		resolver: resolver,
		scanner:  NewScanner(),
		locator:  NewSpanLocator(),
		builder:  NewTimelineBuilder(),
		syntax:   syntax,
	}
}

func (w *workflow) Inspect(ctx context.Context, path m.Path) (*m.FileReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := w.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	langID, style := DetectLanguage(path)
	lines := splitLines(data)

	tags, diags := w.scanner.Scan(lines, style)

	resolvedTags, locateDiags := w.resolveSpans(path, langID, style, lines, tags, data)
	diags = append(diags, locateDiags...)

	timeline := w.builder.Build(len(lines), resolvedTags)

	return &m.FileReport{
		File:        m.File{Path: path, Language: langID},
		Lines:       lines,
		Tags:        tags,
		Timeline:    timeline,
		Diagnostics: diags,
	}, nil
}

// resolveSpans locates the concrete line range of every semantic tag. The
// syntax tree is produced at most once per file and only when some tag
// actually needs it.
func (w *workflow) resolveSpans(
	path m.Path,
	langID string,
	style CommentStyle,
	lines []string,
	tags []m.GuardTag,
	src []byte,
) ([]ResolvedTag, []m.Diagnostic) {
	resolvedTags := make([]ResolvedTag, 0, len(tags))
	var diags []m.Diagnostic

	var scopes m.ScopeMapping
	var root *m.SyntaxNode
	treeReady := false

	for _, tag := range tags {
		rt := ResolvedTag{Tag: tag}

		if tag.Scope.Kind == m.ScopeSemantic {
			if scopes == nil {
				var scopeDiags []m.Diagnostic
				scopes, scopeDiags = w.resolver.Resolve(langID)
				diags = append(diags, scopeDiags...)
			}

			if !treeReady && tag.Scope.Name != contextScopeName {
				root = w.parseTree(path, langID, src)
				treeReady = true
			}

			span, ok := w.locator.Locate(tag, scopes, root, lines, style)
			if ok {
				rt.Span = &span
			} else {
				diags = append(diags, m.Diagnostic{
					Kind:   m.DiagUnresolvedScope,
					Line:   tag.Line,
					Detail: fmt.Sprintf("scope %q did not match any construct; treating as unbounded", tag.Scope.Name),
				})
			}
		}

		resolvedTags = append(resolvedTags, rt)
	}

	return resolvedTags, diags
}

// parseTree asks the injected syntax adapter for this language, if any. A
// missing adapter or a parse failure both mean "no tree": downstream
// semantic tags degrade instead of failing the file.
func (w *workflow) parseTree(path m.Path, langID string, src []byte) *m.SyntaxNode {
	sa, ok := w.syntax[langID]
	if !ok {
		return nil
	}

	root, err := sa.Parse(string(path), src)
	if err != nil {
		slog.Debug("syntax tree unavailable", "path", path, "language", langID, "error", err)
		return nil
	}

	return root
}

func (w *workflow) InspectAll(ctx context.Context, roots []m.Path, threads int) ([]*m.FileReport, error) {
	if threads < 1 {
		threads = 1
	}

	files, err := w.collectFiles(roots)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	reports := make([]*m.FileReport, 0, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, path := range files {
		group.Go(func() error {
			report, err := w.Inspect(groupCtx, path)
			if err != nil {
				if groupCtx.Err() != nil {
					return err
				}

				slog.Warn("skipping file", "path", path, "error", err)
				return nil
			}

			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].File.Path < reports[j].File.Path
	})

	return reports, nil
}

// collectFiles expands root arguments into the list of source files to
// process. A trailing /... descends recursively, matching the Go toolchain's
// package patterns.
func (w *workflow) collectFiles(roots []m.Path) ([]m.Path, error) {
	if len(roots) == 0 {
		roots = []m.Path{"./..."}
	}

	var files []m.Path
	seen := make(map[m.Path]bool)

	for _, root := range roots {
		recursive := false
		rootPath := string(root)

		if strings.HasSuffix(rootPath, "/...") {
			recursive = true
			rootPath = strings.TrimSuffix(rootPath, "/...")
			if rootPath == "" {
				rootPath = "."
			}
		}

		info, err := w.fs.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", root, err)
		}

		if !info.IsDir() {
			if !seen[m.Path(rootPath)] {
				seen[m.Path(rootPath)] = true
				files = append(files, m.Path(rootPath))
			}

			continue
		}

		err = w.fs.Walk(m.Path(rootPath), recursive, func(path string, _ os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !isSourceFile(path) {
				return nil
			}

			if !seen[m.Path(path)] {
				seen[m.Path(path)] = true
				files = append(files, m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, nil
}

// isSourceFile reports whether the path has an extension the language
// registry knows. Anything else (binaries, lock files) is skipped during
// walks; explicit file arguments bypass this filter.
func isSourceFile(path string) bool {
	_, ok := languagesByExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// splitLines breaks raw file bytes into 1-based addressable lines. A
// trailing newline does not produce a phantom empty final line.
func splitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
