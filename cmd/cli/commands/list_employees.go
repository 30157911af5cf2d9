package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ListEmployeesCmd creates the listEmployees command
func ListEmployeesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEmployees",
		Short: "List imported employees with points and holiday immunity status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := services.ListEmployees(app.Ctx, app.Database, app.Logger, time.Now(), app.Cfg.ImmunityYears)
			if err != nil {
				return err
			}

			if len(statuses) == 0 {
				fmt.Println("\nNo employees imported yet - run importEmployees first.")
				return nil
			}

			// ANSI color codes
			const (
				colorReset  = "\033[0m"
				colorYellow = "\033[33m"
			)

			// Calculate the name column width
			maxNameLen := 10
			for _, status := range statuses {
				if len(status.Name) > maxNameLen {
					maxNameLen = len(status.Name)
				}
			}
			nameColWidth := maxNameLen + 2

			fmt.Printf("\nEmployees (%d)\n\n", len(statuses))
			fmt.Printf("%-*s%-14s%-14s%8s%11s%6s  %s\n",
				nameColWidth, "Name", "Team", "Role", "Points", "Blackouts", "Bids", "Holidays")
			fmt.Println(strings.Repeat("-", nameColWidth+53+len("Holidays")))

			for _, status := range statuses {
				holidays := status.HolidayStatus
				if holidays != "Available" {
					holidays = colorYellow + holidays + colorReset
				}
				fmt.Printf("%-*s%-14s%-14s%8d%11d%6d  %s\n",
					nameColWidth, status.Name, status.Team, status.Role,
					status.YTDPoints, status.Blackouts, status.HolidayBids, holidays)
			}
			fmt.Println()

			return nil
		},
	}
}
