package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Local is a filesystem-backed Workspace for CLI and daemon use, where
// there is no live editor to ask. The active document, if any, is set
// explicitly by the caller (e.g. from a --file flag or tool argument).
type Local struct {
	root       string
	activeDoc  *Document
	maxDocSize int64
}

// maxDocumentSize caps active document capture. Documents are captured
// whole below this limit; input-side token budgeting is a known gap.
const maxDocumentSize = 4 * 1024 * 1024 // 4MB

// NewLocal creates a Local workspace rooted at root. If root is empty,
// the root is discovered from the current directory: the enclosing git
// repository's top level if there is one, otherwise the current
// directory itself. ok reports whether a root could be established.
func NewLocal(root string) (*Local, bool) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return &Local{maxDocSize: maxDocumentSize}, false
		}
		root = discoverRoot(cwd)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return &Local{maxDocSize: maxDocumentSize}, false
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return &Local{maxDocSize: maxDocumentSize}, false
	}

	return &Local{root: abs, maxDocSize: maxDocumentSize}, true
}

// discoverRoot walks up from dir to the enclosing git worktree root,
// falling back to dir itself.
func discoverRoot(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return dir
	}
	wt, err := repo.Worktree()
	if err != nil {
		return dir
	}
	return wt.Filesystem.Root()
}

// SetActiveDocument registers path as the active document. The file is
// read when the document is requested, not now.
func (l *Local) SetActiveDocument(path string) error {
	if path == "" {
		l.activeDoc = nil
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving document path: %w", err)
	}
	l.activeDoc = &Document{Path: abs, Language: LanguageForPath(abs)}
	return nil
}

// Root implements Workspace.
func (l *Local) Root() (string, bool) {
	return l.root, l.root != ""
}

// ActiveDocument implements Workspace. The registered document is read
// from disk on every call so the snapshot reflects current content.
func (l *Local) ActiveDocument() (*Document, bool) {
	if l.activeDoc == nil {
		return nil, false
	}
	info, err := os.Stat(l.activeDoc.Path)
	if err != nil || info.Size() > l.maxDocSize {
		return nil, false
	}
	content, err := os.ReadFile(l.activeDoc.Path)
	if err != nil {
		return nil, false
	}
	return &Document{
		Path:     l.activeDoc.Path,
		Content:  string(content),
		Language: l.activeDoc.Language,
	}, true
}

// ListDirs implements Workspace.
func (l *Local) ListDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// ReadFile implements Workspace.
func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// languageByExt maps file extensions to editor language identifiers.
var languageByExt = map[string]string{
	".go":   "go",
	".ts":   "typescript",
	".tsx":  "typescriptreact",
	".js":   "javascript",
	".jsx":  "javascriptreact",
	".py":   "python",
	".rs":   "rust",
	".rb":   "ruby",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cs":   "csharp",
	".sh":   "shellscript",
	".sql":  "sql",
	".html": "html",
	".css":  "css",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".md":   "markdown",
}

// LanguageForPath infers an editor language identifier from a file
// extension, defaulting to plaintext.
func LanguageForPath(path string) string {
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "plaintext"
}

var _ Workspace = (*Local)(nil)
