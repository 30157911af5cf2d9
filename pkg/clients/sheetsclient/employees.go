package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// employeeFields are the required header columns of the directory tab.
var employeeFields = []string{
	"Name",
	"Team",
	"Role",
	"YTD Points",
	"Blackout Dates",
	"Holiday Bids",
	"Last Holiday Worked",
}

// FetchEmployees reads the employee directory tab and parses it into domain
// employees. Rows that cannot be used are skipped and reported as warnings
// rather than failing the whole fetch.
func (c *Client) FetchEmployees(cfg *config.Config) ([]model.Employee, []string, error) {
	values, err := c.GetValues(cfg.DirectorySheetID, cfg.EmployeesTab)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch employee directory: %w", err)
	}

	return parseEmployees(values)
}

func parseEmployees(values [][]interface{}) ([]model.Employee, []string, error) {
	if len(values) == 0 {
		return nil, nil, fmt.Errorf("no data found in employee directory")
	}

	fieldIndex := make(map[string]int)
	for i, cell := range values[0] {
		if name, ok := cell.(string); ok {
			fieldIndex[strings.TrimSpace(name)] = i
		}
	}

	for _, field := range employeeFields {
		if _, ok := fieldIndex[field]; !ok {
			return nil, nil, fmt.Errorf("missing required field in header: %s", field)
		}
	}

	var employees []model.Employee
	var warnings []string
	seen := make(map[string]bool)

	for i, row := range values[1:] {
		rowNum := i + 2 // 1-based sheet row, after the header

		getField := func(field string) string {
			idx, ok := fieldIndex[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return cellString(row[idx])
		}

		name := getField("Name")
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing name, skipped", rowNum))
			continue
		}

		team := getField("Team")
		if team == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: %s has no team, skipped", rowNum, name))
			continue
		}

		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("row %d: duplicate employee %s, keeping the first entry", rowNum, name))
			continue
		}
		seen[name] = true

		role, known := parseRole(getField("Role"))
		if !known {
			warnings = append(warnings, fmt.Sprintf("row %d: unknown role %q for %s, defaulting to %s", rowNum, getField("Role"), name, model.RoleStandard))
		}

		ytdPoints := 0
		if raw := getField("YTD Points"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				warnings = append(warnings, fmt.Sprintf("row %d: invalid YTD points %q for %s, using 0", rowNum, raw, name))
			} else {
				ytdPoints = parsed
			}
		}

		blackouts, dateWarnings := parseDateSet(getField("Blackout Dates"), name, rowNum, "blackout")
		warnings = append(warnings, dateWarnings...)

		holidayBids, dateWarnings := parseDateSet(getField("Holiday Bids"), name, rowNum, "holiday bid")
		warnings = append(warnings, dateWarnings...)

		var lastHolidayWorked *time.Time
		if raw := getField("Last Holiday Worked"); raw != "" {
			day, err := model.ParseDay(raw)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("row %d: invalid last holiday worked %q for %s, ignoring", rowNum, raw, name))
			} else {
				lastHolidayWorked = &day
			}
		}

		employees = append(employees, model.Employee{
			Name:              name,
			Team:              team,
			Role:              role,
			YTDPoints:         ytdPoints,
			Blackouts:         blackouts,
			HolidayBids:       holidayBids,
			LastHolidayWorked: lastHolidayWorked,
		})
	}

	return employees, warnings, nil
}

// parseRole maps a directory cell to a roster role. An empty cell means
// standard; anything unrecognised also falls back to standard, with known
// reporting false so the caller can warn.
func parseRole(raw string) (model.Role, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)

	switch normalized {
	case "", "standard":
		return model.RoleStandard, true
	case "no-evening":
		return model.RoleNoEvening, true
	case "weekend-only":
		return model.RoleWeekendOnly, true
	default:
		return model.RoleStandard, false
	}
}

func parseDateSet(raw, name string, rowNum int, kind string) (model.DateSet, []string) {
	if raw == "" {
		return nil, nil
	}

	set := model.NewDateSet()
	var warnings []string
	for _, token := range splitDates(raw) {
		day, err := model.ParseDay(token)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: invalid %s date %q for %s, ignoring", rowNum, kind, token, name))
			continue
		}
		set.Add(day)
	}

	if len(set) == 0 {
		return nil, warnings
	}
	return set, warnings
}

// splitDates breaks a multi-date cell on commas, semicolons and newlines.
func splitDates(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	var out []string
	for _, token := range tokens {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// PointsUpdate is a per-employee write-back of rostered points to the
// directory tab.
type PointsUpdate struct {
	Name              string
	YTDPoints         int
	LastHolidayWorked string // YYYY-MM-DD, empty leaves the cell untouched
}

// UpdateDirectoryPoints writes updated point balances back into the employee
// directory tab, matching rows by name. It returns the names that had no
// matching row.
func (c *Client) UpdateDirectoryPoints(cfg *config.Config, updates []PointsUpdate) ([]string, error) {
	if len(updates) == 0 {
		return nil, nil
	}

	values, err := c.GetValues(cfg.DirectorySheetID, cfg.EmployeesTab)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee directory: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no data found in employee directory")
	}

	fieldIndex := make(map[string]int)
	for i, cell := range values[0] {
		if name, ok := cell.(string); ok {
			fieldIndex[strings.TrimSpace(name)] = i
		}
	}

	for _, field := range []string{"Name", "YTD Points", "Last Holiday Worked"} {
		if _, ok := fieldIndex[field]; !ok {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
	}

	nameIdx := fieldIndex["Name"]
	pointsIdx := fieldIndex["YTD Points"]
	lastHolidayIdx := fieldIndex["Last Holiday Worked"]

	byName := make(map[string]PointsUpdate, len(updates))
	for _, update := range updates {
		byName[update.Name] = update
	}

	var data []*sheets.ValueRange
	matched := make(map[string]bool, len(updates))

	for i, row := range values[1:] {
		rowNum := i + 2
		if nameIdx >= len(row) {
			continue
		}
		name := cellString(row[nameIdx])
		update, ok := byName[name]
		if !ok || matched[name] {
			continue
		}
		matched[name] = true

		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", cfg.EmployeesTab, columnLetter(pointsIdx), rowNum),
			Values: [][]interface{}{{update.YTDPoints}},
		})
		if update.LastHolidayWorked != "" {
			data = append(data, &sheets.ValueRange{
				Range:  fmt.Sprintf("%s!%s%d", cfg.EmployeesTab, columnLetter(lastHolidayIdx), rowNum),
				Values: [][]interface{}{{update.LastHolidayWorked}},
			})
		}
	}

	if err := c.BatchUpdateValues(cfg.DirectorySheetID, data); err != nil {
		return nil, err
	}

	var missing []string
	for _, update := range updates {
		if !matched[update.Name] {
			missing = append(missing, update.Name)
		}
	}
	return missing, nil
}

// columnLetter converts a zero-based column index to its A1 letter form.
func columnLetter(index int) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}
