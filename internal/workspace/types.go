package workspace

// Snapshot is the bounded workspace context fed into prompt construction.
//
// Every field is optional. An absent field means the corresponding gather
// option was disabled, the data source was missing, or reading it failed.
type Snapshot struct {
	// Root is the absolute workspace root path, empty if no workspace
	// is open.
	Root string `json:"workspace_root,omitempty"`

	// ActiveFile is the currently open document, captured whole.
	ActiveFile *Document `json:"active_file,omitempty"`

	// Structure lists the names of top-level directories under Root in
	// listing order. No recursion.
	Structure []string `json:"workspace_structure,omitempty"`

	// TechStack is a single label inferred from the dependency manifest.
	TechStack string `json:"tech_stack,omitempty"`

	// Dependencies holds the manifest's dependency maps verbatim.
	Dependencies *Dependencies `json:"dependencies,omitempty"`
}

// Document is a point-in-time copy of an open editor document.
type Document struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// Dependencies mirrors the dependencies and devDependencies maps of a
// package.json manifest, name to version string.
type Dependencies struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Names returns all dependency names, regular dependencies first, then
// dev dependencies, each group in sorted order for determinism.
func (d *Dependencies) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Dependencies)+len(d.DevDependencies))
	names = append(names, sortedKeys(d.Dependencies)...)
	names = append(names, sortedKeys(d.DevDependencies)...)
	return names
}

// Options selects which Snapshot fields to gather. The workspace root is
// always captured when a workspace is open.
type Options struct {
	IncludeActiveFile   bool `json:"include_active_file,omitempty"`
	IncludeStructure    bool `json:"include_structure,omitempty"`
	IncludeDependencies bool `json:"include_dependencies,omitempty"`
}

// Workspace is the collaborator that exposes the editor / filesystem
// surface the gatherer reads from.
type Workspace interface {
	// Root returns the primary workspace root, ok=false if none is open.
	Root() (string, bool)

	// ActiveDocument returns a snapshot of the active editor document,
	// ok=false if there is none.
	ActiveDocument() (*Document, bool)

	// ListDirs returns the names of the immediate child directories of
	// path, in the order the underlying listing yields them.
	ListDirs(path string) ([]string, error)

	// ReadFile returns the text content of the file at path.
	ReadFile(path string) ([]byte, error)
}
