package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/plannerd/internal/completion"
	"github.com/fyrsmithlabs/plannerd/internal/planner"
	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

// ===== GENERATE PLAN =====

type generatePlanInput struct {
	Task                string `json:"task" jsonschema:"required,Free-text description of the coding task to plan"`
	ActiveFile          string `json:"active_file,omitempty" jsonschema:"Path of the file currently open in the editor; its full content is added to the prompt"`
	IncludeStructure    bool   `json:"include_structure,omitempty" jsonschema:"Capture top-level workspace directory names"`
	IncludeDependencies bool   `json:"include_dependencies,omitempty" jsonschema:"Read package.json and infer the tech stack"`
	NoSave              bool   `json:"no_save,omitempty" jsonschema:"Skip recording the plan in history"`
}

type generatePlanOutput struct {
	Plan      *planner.Plan `json:"plan" jsonschema:"The generated plan; status failed means generation did not succeed"`
	ErrorKind string        `json:"error_kind,omitempty" jsonschema:"Classified failure kind when the plan status is failed"`
	Error     string        `json:"error,omitempty" jsonschema:"Human-readable failure message when the plan status is failed"`
}

// ===== PLAN HISTORY =====

type planHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum plans to return (default: all retained)"`
}

type planHistoryOutput struct {
	Key   string          `json:"key" jsonschema:"History key the plans are grouped under (workspace root)"`
	Plans []*planner.Plan `json:"plans" jsonschema:"Plans for this workspace, newest first"`
	Count int             `json:"count" jsonschema:"Number of plans returned"`
}

// ===== WORKSPACE CONTEXT =====

type workspaceContextInput struct {
	ActiveFile          string `json:"active_file,omitempty" jsonschema:"Path of the file currently open in the editor"`
	IncludeStructure    bool   `json:"include_structure,omitempty" jsonschema:"Capture top-level workspace directory names"`
	IncludeDependencies bool   `json:"include_dependencies,omitempty" jsonschema:"Read package.json and infer the tech stack"`
}

type workspaceContextOutput struct {
	Snapshot workspace.Snapshot `json:"snapshot" jsonschema:"The workspace snapshot that plan generation would use"`
}

func (s *Server) registerTools() {
	// generate_plan
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "generate_plan",
		Description: "Generate a structured implementation plan for a coding task, using workspace context. Returns an ordered list of steps with the files each step touches. A plan with status 'failed' carries the classified error alongside.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args generatePlanInput) (*mcp.CallToolResult, generatePlanOutput, error) {
		if args.Task == "" {
			return nil, generatePlanOutput{}, fmt.Errorf("task is required")
		}

		start := time.Now()
		if err := s.local.SetActiveDocument(args.ActiveFile); err != nil {
			return nil, generatePlanOutput{}, fmt.Errorf("invalid active_file: %w", err)
		}

		opts := workspace.Options{
			IncludeActiveFile:   args.ActiveFile != "",
			IncludeStructure:    args.IncludeStructure,
			IncludeDependencies: args.IncludeDependencies,
		}

		plan, genErr := s.plannerSvc.GeneratePlan(ctx, args.Task, opts)

		out := generatePlanOutput{Plan: plan}
		if genErr != nil {
			out.Error = genErr.Error()
			out.ErrorKind = string(completion.KindOf(genErr))
		}

		if !args.NoSave {
			if err := s.historySvc.Save(ctx, s.historyKey(), plan); err != nil {
				// History is best-effort; the plan is still the result.
				s.logger.Warn("failed to save plan to history", zap.Error(err))
			}
		}

		s.logger.Debug("generate_plan served",
			zap.String("plan_id", plan.ID),
			zap.String("status", string(plan.Status)),
			zap.Duration("duration", time.Since(start)))

		text := fmt.Sprintf("Plan %s (%s): %d steps", plan.ID, plan.Status, len(plan.Steps))
		if genErr != nil {
			text = fmt.Sprintf("Plan generation failed (%s): %s", out.ErrorKind, out.Error)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, out, nil
	})

	// plan_history
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "plan_history",
		Description: "List previously generated plans for the current workspace, newest first.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args planHistoryInput) (*mcp.CallToolResult, planHistoryOutput, error) {
		key := s.historyKey()
		plans, err := s.historySvc.List(ctx, key)
		if err != nil {
			return nil, planHistoryOutput{}, fmt.Errorf("listing plan history: %w", err)
		}
		if args.Limit > 0 && len(plans) > args.Limit {
			plans = plans[:args.Limit]
		}

		out := planHistoryOutput{Key: key, Plans: plans, Count: len(plans)}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{
				Text: fmt.Sprintf("%d plan(s) for %s", out.Count, key),
			}},
		}, out, nil
	})

	// workspace_context
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "workspace_context",
		Description: "Inspect the workspace snapshot that plan generation would feed into the prompt: root, active file, structure, dependencies, tech stack.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args workspaceContextInput) (*mcp.CallToolResult, workspaceContextOutput, error) {
		if err := s.local.SetActiveDocument(args.ActiveFile); err != nil {
			return nil, workspaceContextOutput{}, fmt.Errorf("invalid active_file: %w", err)
		}

		gatherer := workspace.NewGatherer(s.local, s.logger)
		snap := gatherer.Gather(ctx, "", workspace.Options{
			IncludeActiveFile:   args.ActiveFile != "",
			IncludeStructure:    args.IncludeStructure,
			IncludeDependencies: args.IncludeDependencies,
		})

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{
				Text: fmt.Sprintf("Workspace %s (stack: %s)", snap.Root, snap.TechStack),
			}},
		}, workspaceContextOutput{Snapshot: snap}, nil
	})
}
