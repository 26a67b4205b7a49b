package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cascade/internal/core/domain"
)

var (
	planSnapshot snapshotFlags
	planJSON     bool
)

var planCmd = &cobra.Command{
	Use:   "plan [content-id]",
	Short: "Show what a cleanup would remove",
	Long: `Resolves the cleanup plan for a content ID without removing anything.

Dependent records are discovered against the configured store, so the
output reflects its current state.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planSnapshot.register(planCmd)
	planCmd.Flags().BoolVar(&planJSON, "json", false, "output the plan as JSON")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if cleanupService == nil {
		return notConfigured("cleanup service")
	}

	snapshot, err := planSnapshot.build(cmd.InOrStdin())
	if err != nil {
		return err
	}

	entity, err := domain.EntityFromSnapshot(args[0], snapshot)
	if err != nil {
		return err
	}

	plan, err := cleanupService.Plan(cmd.Context(), entity)
	if err != nil {
		return fmt.Errorf("failed to plan cleanup: %w", err)
	}

	if planJSON {
		return outputJSON(cmd, newPlanReport(plan))
	}
	printPlan(cmd, plan)
	return nil
}
