package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/plannerd/internal/completion"
	"github.com/fyrsmithlabs/plannerd/internal/config"
	"github.com/fyrsmithlabs/plannerd/internal/history"
	"github.com/fyrsmithlabs/plannerd/internal/logging"
	"github.com/fyrsmithlabs/plannerd/internal/planner"
	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

var (
	planActiveFile   string
	planStructure    bool
	planDependencies bool
	planNoSave       bool
)

var planCmd = &cobra.Command{
	Use:   "plan <task>",
	Short: "Generate an implementation plan for a task",
	Long: `Generate a structured implementation plan for a free-text task.

Examples:
  # Plan a task with dependency context
  planctl plan "add rate limiting to the API" --deps

  # Include the file you are working on
  planctl plan "extract this into a middleware" --file src/server.ts

  # Raw JSON output for scripting
  planctl plan "add tests for the parser" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planActiveFile, "file", "", "file to include whole in the prompt")
	planCmd.Flags().BoolVar(&planStructure, "structure", false, "capture top-level directory names")
	planCmd.Flags().BoolVar(&planDependencies, "deps", false, "read package.json and infer the tech stack")
	planCmd.Flags().BoolVar(&planNoSave, "no-save", false, "do not record the plan in history")
}

func runPlan(cmd *cobra.Command, args []string) error {
	task := strings.TrimSpace(strings.Join(args, " "))
	if task == "" {
		return fmt.Errorf("task cannot be empty")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !cfg.IsConfigured() {
		return fmt.Errorf("no provider credential configured; set provider.api_key or PLANNERD_PROVIDER_API_KEY")
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	root := workspaceRoot
	if root == "" {
		root = cfg.Workspace.Root
	}
	local, _ := workspace.NewLocal(root)
	if planActiveFile != "" {
		if err := local.SetActiveDocument(planActiveFile); err != nil {
			return err
		}
	}

	client := completion.NewClient(completion.Config{
		APIKey:    cfg.Provider.APIKey.Value(),
		Endpoint:  cfg.Provider.Endpoint,
		Model:     cfg.Provider.Model,
		MaxTokens: cfg.Provider.MaxTokens,
	},
		completion.WithLogger(logger),
		completion.WithHTTPClient(&http.Client{Timeout: cfg.Provider.Timeout.Duration()}),
	)

	svc := planner.NewService(workspace.NewGatherer(local, logger), client, logger, nil)

	plan, genErr := svc.GeneratePlan(cmd.Context(), task, workspace.Options{
		IncludeActiveFile:   planActiveFile != "",
		IncludeStructure:    planStructure,
		IncludeDependencies: planDependencies,
	})

	if !planNoSave {
		if store, err := history.NewFileStore(cfg.History.Path, cfg.History.MaxPlans, logger); err == nil {
			key := "default"
			if r, ok := local.Root(); ok {
				key = r
			}
			if err := store.Save(cmd.Context(), key, plan); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save plan to history: %v\n", err)
			}
		}
	}

	if outputJSONFlag {
		if err := outputJSON(plan); err != nil {
			return err
		}
	} else {
		printPlan(plan)
	}

	if genErr != nil {
		return fmt.Errorf("plan generation failed (%s): %w", completion.KindOf(genErr), genErr)
	}
	return nil
}

// printPlan renders a plan as a human-readable checklist.
func printPlan(plan *planner.Plan) {
	fmt.Printf("Plan %s [%s]\n", plan.ID, plan.Status)
	fmt.Printf("Task: %s\n", plan.Task)
	if len(plan.Steps) == 0 {
		fmt.Println("(no steps)")
		return
	}
	fmt.Println()
	for _, step := range plan.Steps {
		fmt.Printf("  %2d. %s\n", step.Order+1, step.Description)
		for _, f := range step.Files {
			fmt.Printf("      - %s\n", f)
		}
	}
}
