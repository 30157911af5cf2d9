package sheetsclient

import (
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

const tabTitleLayout = "Mon Jan 02 2006"

// PublishedRoster is the sheet-ready form of a stored roster run.
type PublishedRoster struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Rows        []PublishedRow
	Summary     []PublishedSummary
}

// PublishedRow is a single assignment line in a published roster tab.
type PublishedRow struct {
	Date     time.Time
	Shift    string
	Employee string
}

// PublishedSummary is a per-employee points line in a published roster tab.
type PublishedSummary struct {
	Employee       string
	StartingPoints int
	PointsEarned   float64
	TotalPoints    float64
}

// PublishRoster writes a roster run to its own tab in the roster
// spreadsheet, named after the period it covers. Publishing the same period
// again overwrites the tab. It returns the tab title.
func (c *Client) PublishRoster(cfg *config.Config, published *PublishedRoster) (string, error) {
	title := tabTitle(published.PeriodStart, published.PeriodEnd)

	exists, err := c.SheetExists(cfg.RosterSheetID, title)
	if err != nil {
		return "", err
	}

	if exists {
		if err := c.ClearValues(cfg.RosterSheetID, title); err != nil {
			return "", err
		}
	} else {
		if _, err := c.CreateSheet(cfg.RosterSheetID, title); err != nil {
			return "", err
		}
	}

	values := buildRosterValues(published)
	if err := c.UpdateValues(cfg.RosterSheetID, fmt.Sprintf("%s!A1", title), values); err != nil {
		return "", err
	}

	return title, nil
}

func tabTitle(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format(tabTitleLayout), end.Format(tabTitleLayout))
}

// buildRosterValues lays the tab out as an assignments block followed by a
// per-employee points block.
func buildRosterValues(published *PublishedRoster) [][]interface{} {
	values := [][]interface{}{
		{"Date", "Day", "Shift", "Employee"},
	}

	for _, row := range published.Rows {
		values = append(values, []interface{}{
			row.Date.Format(model.DateLayout),
			row.Date.Weekday().String(),
			row.Shift,
			row.Employee,
		})
	}

	values = append(values, []interface{}{})
	values = append(values, []interface{}{"Employee", "Starting Points", "Points Earned", "Total Points"})

	for _, summary := range published.Summary {
		values = append(values, []interface{}{
			summary.Employee,
			summary.StartingPoints,
			summary.PointsEarned,
			summary.TotalPoints,
		})
	}

	return values
}
