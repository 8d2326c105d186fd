package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

func TestBuild_TaskOnly(t *testing.T) {
	out := Build("add retry logic", workspace.Snapshot{})
	assert.Equal(t, "Task: add retry logic", out)
}

func TestBuild_Deterministic(t *testing.T) {
	snap := workspace.Snapshot{
		ActiveFile: &workspace.Document{Path: "/w/a.go", Content: "package a\n", Language: "go"},
		TechStack:  "React",
		Dependencies: &workspace.Dependencies{
			Dependencies:    map[string]string{"react": "18", "axios": "1", "zod": "3"},
			DevDependencies: map[string]string{"vitest": "1"},
		},
	}

	first := Build("task", snap)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Build("task", snap))
	}
}

func TestBuild_ActiveFileOnly(t *testing.T) {
	snap := workspace.Snapshot{
		ActiveFile: &workspace.Document{
			Path:     "/w/src/app.ts",
			Content:  "export const x = 1;\n",
			Language: "typescript",
		},
	}

	out := Build("rename x", snap)

	assert.True(t, strings.HasPrefix(out, "Task: rename x\n\n"))
	assert.Contains(t, out, "Active File: /w/src/app.ts")
	assert.Contains(t, out, "Language: typescript")
	assert.Contains(t, out, "--- File Content ---\nexport const x = 1;\n--- End File ---")
	assert.NotContains(t, out, "Tech Stack:")
	assert.NotContains(t, out, "Dependencies:")
}

func TestBuild_SectionOrder(t *testing.T) {
	snap := workspace.Snapshot{
		ActiveFile: &workspace.Document{Path: "/w/a.go", Content: "x\n", Language: "go"},
		TechStack:  "React",
		Dependencies: &workspace.Dependencies{
			Dependencies: map[string]string{"react": "18"},
		},
	}

	out := Build("t", snap)

	taskIdx := strings.Index(out, "Task: ")
	fileIdx := strings.Index(out, "Active File: ")
	stackIdx := strings.Index(out, "Tech Stack: ")
	depsIdx := strings.Index(out, "Dependencies: ")

	require.True(t, taskIdx >= 0 && fileIdx > taskIdx && stackIdx > fileIdx && depsIdx > stackIdx,
		"sections out of order: %s", out)
}

func TestBuild_StructureNotRendered(t *testing.T) {
	snap := workspace.Snapshot{
		Root:      "/w",
		Structure: []string{"cmd", "internal", "docs"},
	}

	out := Build("t", snap)

	assert.NotContains(t, out, "cmd")
	assert.NotContains(t, out, "internal")
}

func TestBuild_DependencyTruncation(t *testing.T) {
	deps := map[string]string{}
	for i := 0; i < 11; i++ {
		deps[fmt.Sprintf("dep-%02d", i)] = "1.0.0"
	}
	snap := workspace.Snapshot{
		Dependencies: &workspace.Dependencies{Dependencies: deps},
	}

	out := Build("t", snap)

	want := "Dependencies: dep-00, dep-01, dep-02, dep-03, dep-04, dep-05, dep-06, dep-07, dep-08, dep-09..."
	assert.Contains(t, out, want)
	assert.NotContains(t, out, "dep-10")

	// Versions never appear.
	assert.NotContains(t, out, "1.0.0")
}

func TestBuild_DependencyNoTruncationAtTen(t *testing.T) {
	deps := map[string]string{}
	for i := 0; i < 10; i++ {
		deps[fmt.Sprintf("dep-%02d", i)] = "1.0.0"
	}
	snap := workspace.Snapshot{
		Dependencies: &workspace.Dependencies{Dependencies: deps},
	}

	out := Build("t", snap)

	assert.Contains(t, out, "dep-09")
	assert.NotContains(t, out, "...")
}

func TestSystem_MandatesJSONShape(t *testing.T) {
	assert.Contains(t, System, `"steps"`)
	assert.Contains(t, System, `"description"`)
	assert.Contains(t, System, `"files"`)
}
