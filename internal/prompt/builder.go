// Package prompt renders plan-generation prompts.
//
// Build is a pure function: identical inputs produce byte-identical
// output. Sections appear in a fixed order and absent context fields
// contribute nothing, not even placeholder text.
//
// The workspace structure field of a snapshot is deliberately not
// rendered. The upstream design fed directory listings into the context
// but never into the prompt; the asymmetry is preserved rather than
// silently fixed.
package prompt

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

// maxDependencyNames bounds the dependency list rendered into the
// prompt; the overflow is marked with an ellipsis.
const maxDependencyNames = 10

// System is the fixed planning-assistant instruction sent as the system
// message of every completion request. The JSON shape it mandates is
// advisory for the model; the normalizer handles any deviation.
const System = `You are a senior software engineer who breaks coding tasks into concrete, reviewable implementation plans.

Respond with JSON only, shaped as:
{"title": string, "summary": string, "steps": [{"description": string, "files": [string], "notes": string}]}

Each step must be a single actionable change. List the files a step touches as workspace-relative paths. Do not include prose outside the JSON object.`

// Build renders the user prompt for task against the given workspace
// snapshot.
//
// Section order is fixed: task header, active file block, tech stack
// line, dependencies line. Sections are separated by one blank line.
func Build(task string, snap workspace.Snapshot) string {
	var sections []string

	sections = append(sections, "Task: "+task)

	if snap.ActiveFile != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "Active File: %s\n", snap.ActiveFile.Path)
		fmt.Fprintf(&b, "Language: %s\n", snap.ActiveFile.Language)
		b.WriteString("--- File Content ---\n")
		b.WriteString(snap.ActiveFile.Content)
		if !strings.HasSuffix(snap.ActiveFile.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("--- End File ---")
		sections = append(sections, b.String())
	}

	if snap.TechStack != "" {
		sections = append(sections, "Tech Stack: "+snap.TechStack)
	}

	if names := snap.Dependencies.Names(); len(names) > 0 {
		line := "Dependencies: "
		if len(names) > maxDependencyNames {
			line += strings.Join(names[:maxDependencyNames], ", ") + "..."
		} else {
			line += strings.Join(names, ", ")
		}
		sections = append(sections, line)
	}

	return strings.Join(sections, "\n\n")
}
