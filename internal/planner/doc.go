// Package planner turns free-text task descriptions into typed,
// reviewable implementation plans.
//
// The Service sequences the four pipeline stages per request: gather a
// workspace snapshot, build the prompt, request a completion, normalize
// the reply. Stages run strictly sequentially; concurrent GeneratePlan
// calls proceed independently with no queueing, deduplication, or
// mutual exclusion.
//
// Normalization treats the model's reply as an untyped tree and probes
// it defensively: every shape mismatch degrades to explicit defaults and
// the result is always a fully-typed Plan.
package planner
