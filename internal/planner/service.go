package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/plannerd/internal/completion"
	"github.com/fyrsmithlabs/plannerd/internal/metrics"
	"github.com/fyrsmithlabs/plannerd/internal/prompt"
	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

// Gatherer produces workspace snapshots. It never fails; see the
// workspace package for the degradation contract.
type Gatherer interface {
	Gather(ctx context.Context, task string, opts workspace.Options) workspace.Snapshot
}

// Completer requests chat completions with classified failures.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (any, error)
}

// Service orchestrates the plan generation pipeline.
type Service struct {
	gatherer Gatherer
	client   Completer
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewService creates the orchestrator. logger and m may be nil.
func NewService(gatherer Gatherer, client Completer, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gatherer: gatherer,
		client:   client,
		logger:   logger,
		metrics:  m,
	}
}

// GeneratePlan runs the pipeline for task: gather snapshot, build
// prompt, request completion, normalize.
//
// The returned Plan is always non-nil. On success it is the normalized
// plan and the error is nil. On failure it is a terminal failed plan
// (fresh id, task verbatim, empty steps) and the classified error is
// returned alongside it. Plan and error are produced at a single point,
// so the two failure signals cannot diverge.
//
// GeneratePlan assumes the task has been pre-validated by the caller
// (non-empty, minimum length); it does not enforce input policy itself.
func (s *Service) GeneratePlan(ctx context.Context, task string, opts workspace.Options) (*Plan, error) {
	start := time.Now()

	snap := s.gatherer.Gather(ctx, task, opts)
	userPrompt := prompt.Build(task, snap)

	s.logger.Debug("requesting completion",
		zap.Int("prompt_bytes", len(userPrompt)),
		zap.Bool("has_active_file", snap.ActiveFile != nil),
		zap.String("tech_stack", snap.TechStack))

	raw, err := s.client.Complete(ctx, prompt.System, userPrompt)
	if err != nil {
		kind := completion.KindOf(err)
		s.logger.Error("plan generation failed",
			zap.String("kind", string(kind)),
			zap.Error(err))
		s.metrics.ObserveCompletionError(string(kind))
		s.metrics.ObservePlan(string(StatusFailed), time.Since(start))
		return NewFailed(task), err
	}

	plan := Normalize(task, raw)

	s.logger.Info("plan generated",
		zap.String("plan_id", plan.ID),
		zap.String("status", string(plan.Status)),
		zap.Int("steps", len(plan.Steps)),
		zap.Duration("duration", time.Since(start)))
	s.metrics.ObservePlan(string(plan.Status), time.Since(start))

	return plan, nil
}
