package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// SolveRosterCmd creates the solveRoster command
func SolveRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solveRoster <start_date> <end_date>",
		Short: "Solve a roster for the given period and save the run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("solveRoster command",
				zap.String("start_date", args[0]),
				zap.String("end_date", args[1]),
				zap.Bool("dry_run", dryRun))

			result, err := services.SolveRoster(app.Ctx, app.Database, app.Cfg, app.Logger, services.SolveRosterOptions{
				StartDate: args[0],
				EndDate:   args[1],
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}

			if !result.Solved {
				fmt.Printf("\n✗ No roster could be produced (%s)\n\n", result.Status)
				for _, reason := range result.Errors {
					fmt.Printf("  ✗ %s\n", reason)
				}
				fmt.Println()
				return fmt.Errorf("roster for %s - %s is unsolvable", result.PeriodStart, result.PeriodEnd)
			}

			// Display results
			fmt.Printf("\n✓ Roster solved!\n\n")
			fmt.Printf("Period: %s - %s\n", result.PeriodStart, result.PeriodEnd)
			fmt.Printf("Scheme: %s\n", result.Scheme)
			fmt.Printf("Status: %s\n", result.Status)
			fmt.Printf("Spread: %.1f points\n\n", result.Spread)

			fmt.Printf("Assignments:\n")
			for _, row := range result.Rows {
				fmt.Printf("  %s  %-9s  %-12s  %s\n",
					row.Date.Format(model.DateLayout), row.DayName, row.Shift, row.Employee)
			}
			fmt.Println()

			fmt.Printf("Points summary:\n")
			for _, line := range result.Summary {
				fmt.Printf("  %-24s %4d + %5.1f = %5.1f\n",
					line.Employee, line.StartingPoints, line.PointsEarned, line.TotalPoints)
			}
			fmt.Println()

			if result.Persisted {
				fmt.Printf("Run ID: %s\n", result.RunID)
			} else {
				fmt.Println("Dry run - nothing was saved.")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Solve and display the roster without saving the run")

	return cmd
}
