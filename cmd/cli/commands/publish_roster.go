package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// PublishRosterCmd creates the publishRoster command
func PublishRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishRoster [run_id]",
		Short: "Publish a solved roster to the roster spreadsheet (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) > 0 {
				runID = args[0]
			}

			app.Logger.Debug("publishRoster command", zap.String("run_id", runID))

			sheets, err := app.EnsureSheets()
			if err != nil {
				return err
			}

			result, err := services.PublishRoster(app.Ctx, app.Database, sheets, app.Cfg, app.Logger, runID)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Roster published!\n\n")
			fmt.Printf("Run ID:      %s\n", result.RunID)
			fmt.Printf("Tab:         %s\n", result.TabTitle)
			fmt.Printf("Assignments: %d\n\n", result.Rows)

			return nil
		},
	}
}
