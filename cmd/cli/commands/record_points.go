package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// RecordPointsCmd creates the recordPoints command
func RecordPointsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordPoints [run_id]",
		Short: "Fold a run's points into employee balances (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) > 0 {
				runID = args[0]
			}
			syncSheet, _ := cmd.Flags().GetBool("sync-sheet")

			app.Logger.Debug("recordPoints command",
				zap.String("run_id", runID),
				zap.Bool("sync_sheet", syncSheet))

			var directory services.DirectoryPointsClient
			if syncSheet {
				sheets, err := app.EnsureSheets()
				if err != nil {
					return err
				}
				directory = sheets
			}

			result, err := services.RecordPoints(app.Ctx, app.Database, directory, app.Cfg, app.Logger, runID, syncSheet)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Points recorded!\n\n")
			fmt.Printf("Run ID: %s\n\n", result.RunID)

			for _, updated := range result.Updated {
				line := fmt.Sprintf("  ✓ %-24s %3d → %3d", updated.Name, updated.PreviousPoints, updated.NewPoints)
				if updated.Rounded {
					line += " (rounded)"
				}
				if updated.LastHolidayWorked != "" {
					line += fmt.Sprintf("  last holiday %s", updated.LastHolidayWorked)
				}
				fmt.Println(line)
			}
			fmt.Println()

			if len(result.SkippedUnknown) > 0 {
				fmt.Printf("⚠️  Not in the imported directory, skipped:\n")
				for _, name := range result.SkippedUnknown {
					fmt.Printf("  ✗ %s\n", name)
				}
				fmt.Println()
			}

			if result.SheetSynced {
				fmt.Println("Directory sheet updated.")
				if len(result.MissingFromSheet) > 0 {
					fmt.Printf("⚠️  Not found in the sheet:\n")
					for _, name := range result.MissingFromSheet {
						fmt.Printf("  ✗ %s\n", name)
					}
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Bool("sync-sheet", false, "Also write the new balances back to the directory sheet")

	return cmd
}
