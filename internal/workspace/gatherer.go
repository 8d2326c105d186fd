package workspace

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// manifestName is the only dependency manifest the gatherer understands.
const manifestName = "package.json"

// Gatherer assembles workspace Snapshots.
type Gatherer struct {
	ws     Workspace
	logger *zap.Logger
}

// NewGatherer creates a Gatherer reading from the given workspace
// collaborator. logger may be nil.
func NewGatherer(ws Workspace, logger *zap.Logger) *Gatherer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gatherer{ws: ws, logger: logger}
}

// Gather builds a Snapshot according to opts.
//
// The task string is accepted for future context filtering but does not
// currently influence what is gathered. Gather never fails; see the
// package documentation for the degradation contract.
func (g *Gatherer) Gather(ctx context.Context, task string, opts Options) Snapshot {
	var snap Snapshot

	root, hasRoot := g.ws.Root()
	if hasRoot {
		snap.Root = root
	}

	// The active document does not require an open workspace.
	if opts.IncludeActiveFile {
		if doc, ok := g.ws.ActiveDocument(); ok {
			snap.ActiveFile = doc
		}
	}

	if hasRoot && opts.IncludeStructure {
		dirs, err := g.ws.ListDirs(root)
		if err != nil {
			g.logger.Debug("workspace structure listing failed", zap.Error(err))
			dirs = []string{}
		}
		snap.Structure = dirs
	}

	if hasRoot && opts.IncludeDependencies {
		if deps, ok := g.readManifest(root); ok {
			snap.Dependencies = deps
			snap.TechStack = detectTechStack(deps)
		}
	}

	return snap
}

// manifest is the subset of package.json the gatherer reads.
type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// readManifest reads and parses package.json at the workspace root.
// ok=false on any read or parse failure.
func (g *Gatherer) readManifest(root string) (*Dependencies, bool) {
	content, err := g.ws.ReadFile(filepath.Join(root, manifestName))
	if err != nil {
		g.logger.Debug("manifest read failed", zap.Error(err))
		return nil, false
	}

	var m manifest
	if err := json.Unmarshal(content, &m); err != nil {
		g.logger.Debug("manifest parse failed", zap.Error(err))
		return nil, false
	}

	deps := &Dependencies{
		Dependencies:    m.Dependencies,
		DevDependencies: m.DevDependencies,
	}
	if deps.Dependencies == nil {
		deps.Dependencies = map[string]string{}
	}
	if deps.DevDependencies == nil {
		deps.DevDependencies = map[string]string{}
	}
	return deps, true
}

// sortedKeys returns map keys in sorted order. Go maps have no stable
// iteration order, and the prompt builder needs a deterministic one.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
