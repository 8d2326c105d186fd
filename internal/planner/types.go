package planner

import "time"

// Status is a plan's lifecycle state.
type Status string

const (
	// StatusDraft is the initial state after normalization.
	StatusDraft Status = "draft"

	// StatusActive means normalization produced at least one step.
	StatusActive Status = "active"

	// StatusCompleted is reached only through external action (marking
	// steps done); the pipeline never sets it.
	StatusCompleted Status = "completed"

	// StatusFailed is terminal: an upstream stage failed. Failed plans
	// always have empty steps.
	StatusFailed Status = "failed"
)

// Plan is the normalized output of the pipeline: an ordered list of
// steps for a task. A Plan is a value owned by the caller once
// returned; the pipeline keeps no reference and never mutates it
// afterwards.
type Plan struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Steps     []Step    `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
}

// Step is a single unit of work within a plan.
type Step struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
	Order       int      `json:"order"`

	// Completed is set by history/UI consumers, never by the pipeline.
	Completed *bool `json:"completed,omitempty"`
}
