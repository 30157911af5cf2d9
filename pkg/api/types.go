package api

import (
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
)

// SolveRequest is the payload for a stateless roster solve. Everything the
// solver needs rides in the request; nothing is read from storage.
type SolveRequest struct {
	StartDate     string            `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate       string            `json:"end_date" binding:"required,datetime=2006-01-02"`
	Scheme        string            `json:"scheme" binding:"required,oneof=split full-day"`
	Holidays      []string          `json:"holidays" binding:"omitempty,dive,datetime=2006-01-02"`
	ImmunityYears int               `json:"immunity_years" binding:"omitempty,min=1"`
	BudgetSeconds int               `json:"budget_seconds" binding:"omitempty,min=1"`
	Employees     []EmployeePayload `json:"employees" binding:"required,min=1,dive"`
}

// EmployeePayload is one rosterable employee in a solve request.
type EmployeePayload struct {
	Name              string   `json:"name" binding:"required"`
	Team              string   `json:"team"`
	Role              string   `json:"role" binding:"omitempty,oneof=Standard No-Evening Weekend-Only"`
	YTDPoints         int      `json:"ytd_points" binding:"omitempty,min=0"`
	Blackouts         []string `json:"blackouts" binding:"omitempty,dive,datetime=2006-01-02"`
	HolidayBids       []string `json:"holiday_bids" binding:"omitempty,dive,datetime=2006-01-02"`
	LastHolidayWorked string   `json:"last_holiday_worked" binding:"omitempty,datetime=2006-01-02"`
}

// SolveResponse is the solved roster.
type SolveResponse struct {
	Solved       bool             `json:"solved"`
	Status       string           `json:"status"`
	PointsSpread float64          `json:"points_spread"`
	Roster       []RosterRowBody  `json:"roster"`
	Summary      []SummaryRowBody `json:"summary"`
}

// RosterRowBody is one assignment in a solve response.
type RosterRowBody struct {
	Date     string `json:"date"`
	Day      string `json:"day"`
	Shift    string `json:"shift"`
	Employee string `json:"employee"`
}

// SummaryRowBody is one employee's points movement in a solve response.
type SummaryRowBody struct {
	Employee       string  `json:"employee"`
	StartingPoints int     `json:"starting_points"`
	PointsEarned   float64 `json:"points_earned"`
	TotalPoints    float64 `json:"total_points"`
}

// UnsolvableResponse reports why no roster could be produced.
type UnsolvableResponse struct {
	Solved bool     `json:"solved"`
	Status string   `json:"status"`
	Errors []string `json:"errors"`
}

// toInput converts a validated request into solver input.
func (r *SolveRequest) toInput() (roster.Input, error) {
	start, err := model.ParseDay(r.StartDate)
	if err != nil {
		return roster.Input{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := model.ParseDay(r.EndDate)
	if err != nil {
		return roster.Input{}, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return roster.Input{}, fmt.Errorf("end date %s is before start date %s", r.EndDate, r.StartDate)
	}

	holidays := make([]time.Time, 0, len(r.Holidays))
	for _, raw := range r.Holidays {
		day, err := model.ParseDay(raw)
		if err != nil {
			return roster.Input{}, fmt.Errorf("invalid holiday date %q: %w", raw, err)
		}
		holidays = append(holidays, day)
	}

	employees := make([]model.Employee, 0, len(r.Employees))
	for _, payload := range r.Employees {
		emp, err := payload.toEmployee()
		if err != nil {
			return roster.Input{}, err
		}
		employees = append(employees, emp)
	}

	return roster.Input{
		Employees:     employees,
		Dates:         calendar.Days(start, end),
		Holidays:      holidays,
		Scheme:        model.Scheme(r.Scheme),
		ImmunityYears: r.ImmunityYears,
		SolveBudget:   time.Duration(r.BudgetSeconds) * time.Second,
	}, nil
}

func (p *EmployeePayload) toEmployee() (model.Employee, error) {
	role := model.RoleStandard
	if p.Role != "" {
		role = model.Role(p.Role)
	}

	blackouts, err := parseDates(p.Blackouts)
	if err != nil {
		return model.Employee{}, fmt.Errorf("employee %s has invalid blackout date: %w", p.Name, err)
	}
	holidayBids, err := parseDates(p.HolidayBids)
	if err != nil {
		return model.Employee{}, fmt.Errorf("employee %s has invalid holiday bid date: %w", p.Name, err)
	}

	var lastHolidayWorked *time.Time
	if p.LastHolidayWorked != "" {
		day, err := model.ParseDay(p.LastHolidayWorked)
		if err != nil {
			return model.Employee{}, fmt.Errorf("employee %s has invalid last holiday worked date: %w", p.Name, err)
		}
		lastHolidayWorked = &day
	}

	return model.Employee{
		Name:              p.Name,
		Team:              p.Team,
		Role:              role,
		YTDPoints:         p.YTDPoints,
		Blackouts:         blackouts,
		HolidayBids:       holidayBids,
		LastHolidayWorked: lastHolidayWorked,
	}, nil
}

func parseDates(raw []string) (model.DateSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	set := model.NewDateSet()
	for _, s := range raw {
		day, err := model.ParseDay(s)
		if err != nil {
			return nil, err
		}
		set.Add(day)
	}
	return set, nil
}

// solveResponse flattens a solved result into its wire form.
func solveResponse(res *roster.Result) SolveResponse {
	rows := make([]RosterRowBody, len(res.Rows))
	for i, row := range res.Rows {
		rows[i] = RosterRowBody{
			Date:     row.Date.Format(model.DateLayout),
			Day:      row.DayName,
			Shift:    string(row.Shift),
			Employee: row.Employee,
		}
	}

	summary := make([]SummaryRowBody, len(res.Summary))
	for i, s := range res.Summary {
		summary[i] = SummaryRowBody{
			Employee:       s.Employee,
			StartingPoints: s.StartingPoints,
			PointsEarned:   s.PointsEarned,
			TotalPoints:    s.TotalPoints,
		}
	}

	return SolveResponse{
		Solved:       true,
		Status:       res.Status.String(),
		PointsSpread: res.Spread,
		Roster:       rows,
		Summary:      summary,
	}
}
