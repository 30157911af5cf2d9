package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ImportEmployeesCmd creates the importEmployees command
func ImportEmployeesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importEmployees",
		Short: "Import the employee directory from the configured sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.EnsureSheets()
			if err != nil {
				return err
			}

			result, err := services.ImportEmployees(app.Ctx, app.Database, sheets, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Employee directory imported!\n\n")
			fmt.Printf("Employees saved: %d\n", result.Imported)

			if len(result.Warnings) > 0 {
				fmt.Printf("\n⚠️  %d rows needed attention:\n", len(result.Warnings))
				for _, warning := range result.Warnings {
					fmt.Printf("  ✗ %s\n", warning)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
