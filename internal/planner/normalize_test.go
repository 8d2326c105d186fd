package planner

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fromJSON parses a JSON literal into the untyped tree shape the
// completion client hands to the normalizer.
func fromJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestNormalize_TotalFunction(t *testing.T) {
	inputs := []any{
		nil,
		"just text",
		float64(42),
		true,
		fromJSON(t, `[1,2,3]`),
		fromJSON(t, `{}`),
		fromJSON(t, `{"steps": "not an array"}`),
		fromJSON(t, `{"steps": 7}`),
		fromJSON(t, `{"raw": "unparseable model output"}`),
	}

	for i, raw := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			plan := Normalize("the task", raw)
			require.NotNil(t, plan)
			assert.NotEmpty(t, plan.ID)
			assert.Equal(t, "the task", plan.Task)
			assert.Empty(t, plan.Steps)
			assert.Equal(t, StatusDraft, plan.Status)
			assert.False(t, plan.CreatedAt.IsZero())
		})
	}
}

func TestNormalize_StatusDerivation(t *testing.T) {
	draft := Normalize("t", fromJSON(t, `{"steps": []}`))
	assert.Equal(t, StatusDraft, draft.Status)

	active := Normalize("t", fromJSON(t, `{"steps": [{"description": "x"}]}`))
	assert.Equal(t, StatusActive, active.Status)
}

func TestNormalize_OrderAndDescriptionDefaults(t *testing.T) {
	plan := Normalize("t", fromJSON(t, `{"steps": [{}, {}, {}]}`))

	require.Len(t, plan.Steps, 3)
	for i, step := range plan.Steps {
		assert.Equal(t, i, step.Order)
		assert.Equal(t, fmt.Sprintf("Step %d", i+1), step.Description)
		assert.Empty(t, step.Files)
		assert.NotEmpty(t, step.ID)
		assert.Nil(t, step.Completed)
	}

	// Step ids are unique.
	assert.NotEqual(t, plan.Steps[0].ID, plan.Steps[1].ID)
}

func TestNormalize_SkipsNonObjectElements(t *testing.T) {
	plan := Normalize("t", fromJSON(t, `{
		"steps": [
			{"description": "first"},
			"a string",
			42,
			null,
			[1, 2],
			{"description": "second"}
		]
	}`))

	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "first", plan.Steps[0].Description)
	assert.Equal(t, "second", plan.Steps[1].Description)
	// Order reflects produced steps, not source positions.
	assert.Equal(t, 0, plan.Steps[0].Order)
	assert.Equal(t, 1, plan.Steps[1].Order)
	assert.Equal(t, StatusActive, plan.Status)
}

func TestNormalize_Fields(t *testing.T) {
	plan := Normalize("add auth", fromJSON(t, `{
		"title": "Auth plan",
		"steps": [
			{"description": "add middleware", "files": ["src/auth.ts", "src/app.ts"], "notes": "ignored"},
			{"description": 123, "files": "not-an-array"},
			{"description": null, "files": [null, "ok.go", 7]}
		]
	}`))

	require.Len(t, plan.Steps, 3)

	assert.Equal(t, "add middleware", plan.Steps[0].Description)
	assert.Equal(t, []string{"src/auth.ts", "src/app.ts"}, plan.Steps[0].Files)

	// Non-string description is stringified; non-array files degrade.
	assert.Equal(t, "123", plan.Steps[1].Description)
	assert.Empty(t, plan.Steps[1].Files)

	// Null description falls back; null file entries are dropped.
	assert.Equal(t, "Step 3", plan.Steps[2].Description)
	assert.Equal(t, []string{"ok.go", "7"}, plan.Steps[2].Files)
}

func TestNormalize_TaskVerbatim(t *testing.T) {
	task := "  weird   task\nwith newline  "
	plan := Normalize(task, nil)
	assert.Equal(t, task, plan.Task)
}

func TestNewFailed(t *testing.T) {
	plan := NewFailed("doomed task")

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, "doomed task", plan.Task)
	assert.Empty(t, plan.Steps)
	assert.Equal(t, StatusFailed, plan.Status)
	assert.False(t, plan.CreatedAt.IsZero())
}
