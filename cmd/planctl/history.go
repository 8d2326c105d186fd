package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/plannerd/internal/config"
	"github.com/fyrsmithlabs/plannerd/internal/history"
	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review plans generated for this workspace",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans for the current workspace, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all plans for the current workspace",
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 0, "maximum plans to show (0 = all retained)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// openHistory loads config and opens the store, returning the history
// key for the current workspace.
func openHistory() (history.Store, string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", err
	}

	root := workspaceRoot
	if root == "" {
		root = cfg.Workspace.Root
	}
	key := "default"
	if local, ok := workspace.NewLocal(root); ok {
		if r, ok := local.Root(); ok {
			key = r
		}
	}

	store, err := history.NewFileStore(cfg.History.Path, cfg.History.MaxPlans, nil)
	if err != nil {
		return nil, "", err
	}
	return store, key, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, key, err := openHistory()
	if err != nil {
		return err
	}

	plans, err := store.List(cmd.Context(), key)
	if err != nil {
		return err
	}
	if historyLimit > 0 && len(plans) > historyLimit {
		plans = plans[:historyLimit]
	}

	if outputJSONFlag {
		return outputJSON(plans)
	}

	if len(plans) == 0 {
		fmt.Printf("No plans recorded for %s\n", key)
		return nil
	}
	fmt.Printf("%d plan(s) for %s\n\n", len(plans), key)
	for _, p := range plans {
		fmt.Printf("  %s  %-9s %2d steps  %s  %s\n",
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.Status,
			len(p.Steps),
			p.ID[:8],
			truncate(p.Task, 60))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, key, err := openHistory()
	if err != nil {
		return err
	}
	if err := store.Clear(cmd.Context(), key); err != nil {
		return err
	}
	fmt.Printf("Cleared plan history for %s\n", key)
	return nil
}
