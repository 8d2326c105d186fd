package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Normalize converts a raw completion payload into a typed Plan.
//
// It is a total function: any input shape, including nil, yields a
// well-formed Plan. Steps come from the object-shaped elements of a
// top-level "steps" array; everything else in the payload is ignored.
// The step order field is the zero-based iteration index, never a value
// from the payload.
func Normalize(task string, raw any) *Plan {
	plan := &Plan{
		ID:        uuid.New().String(),
		Task:      task,
		Steps:     []Step{},
		CreatedAt: time.Now().UTC(),
		Status:    StatusDraft,
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return plan
	}
	rawSteps, ok := obj["steps"].([]any)
	if !ok {
		return plan
	}

	for _, el := range rawSteps {
		stepObj, ok := el.(map[string]any)
		if !ok {
			// Non-object elements produce no step and do not break
			// iteration.
			continue
		}

		idx := len(plan.Steps)
		step := Step{
			ID:          uuid.New().String(),
			Description: stepDescription(stepObj, idx),
			Files:       stepFiles(stepObj),
			Order:       idx,
		}
		plan.Steps = append(plan.Steps, step)
	}

	if len(plan.Steps) > 0 {
		plan.Status = StatusActive
	}
	return plan
}

// NewFailed builds the terminal plan returned when an upstream stage
// fails: empty steps, the task verbatim, status failed.
func NewFailed(task string) *Plan {
	return &Plan{
		ID:        uuid.New().String(),
		Task:      task,
		Steps:     []Step{},
		CreatedAt: time.Now().UTC(),
		Status:    StatusFailed,
	}
}

// stepDescription stringifies the element's description, defaulting to
// "Step {n}" (1-based) when the field is absent, null, or empty.
func stepDescription(stepObj map[string]any, idx int) string {
	v, ok := stepObj["description"]
	if !ok || v == nil {
		return fmt.Sprintf("Step %d", idx+1)
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if s == "" {
		return fmt.Sprintf("Step %d", idx+1)
	}
	return s
}

// stepFiles extracts the element's files list if it is array-shaped,
// else an empty list. String entries pass through; other scalar entries
// are stringified; null entries are dropped.
func stepFiles(stepObj map[string]any) []string {
	arr, ok := stepObj["files"].([]any)
	if !ok {
		return []string{}
	}
	files := make([]string, 0, len(arr))
	for _, f := range arr {
		if f == nil {
			continue
		}
		if s, ok := f.(string); ok {
			files = append(files, s)
			continue
		}
		files = append(files, fmt.Sprint(f))
	}
	return files
}
