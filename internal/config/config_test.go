package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DirectorySheetID:   "sheet123",
		EmployeesTab:       "Employees",
		RosterSheetID:      "roster456",
		ShiftScheme:        "split",
		ImmunityYears:      2,
		SolveBudgetSeconds: 10,
		ServerAddr:         ":8080",
		HolidayDates:       []string{"2026-01-01", "2026-12-25"},
		HolidayRules: []HolidayRule{
			{
				Name:  "Christmas",
				RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25",
			},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DirectorySheetID: "sheet123",
		EmployeesTab:     "Employees",
		RosterSheetID:    "roster456",
		ShiftScheme:      "full-day",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		DirectorySheetID: "sheet123",
		EmployeesTab:     "Employees",
		// Missing RosterSheetID
		ShiftScheme: "split",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownScheme(t *testing.T) {
	cfg := &Config{
		DirectorySheetID: "sheet123",
		EmployeesTab:     "Employees",
		RosterSheetID:    "roster456",
		ShiftScheme:      "nights-only",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidHolidayDate(t *testing.T) {
	cfg := &Config{
		DirectorySheetID: "sheet123",
		EmployeesTab:     "Employees",
		RosterSheetID:    "roster456",
		ShiftScheme:      "split",
		HolidayDates:     []string{"25/12/2026"},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		DirectorySheetID: "sheet123",
		EmployeesTab:     "Employees",
		RosterSheetID:    "roster456",
		ShiftScheme:      "split",
		HolidayRules: []HolidayRule{
			{RRule: "INVALID_RRULE_SYNTAX"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_EmptyRRule(t *testing.T) {
	cfg := &Config{
		DirectorySheetID: "sheet123",
		EmployeesTab:     "Employees",
		RosterSheetID:    "roster456",
		ShiftScheme:      "split",
		HolidayRules: []HolidayRule{
			{Name: "Mystery Day", RRule: ""},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NegativeImmunityYears(t *testing.T) {
	cfg := &Config{
		DirectorySheetID: "sheet123",
		EmployeesTab:     "Employees",
		RosterSheetID:    "roster456",
		ShiftScheme:      "split",
		ImmunityYears:    -1,
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
directorySheetID: "sheet123"
employeesTab: "Employees"
rosterSheetID: "roster456"
shiftScheme: "split"
immunityYears: 2
solveBudgetSeconds: 15
serverAddr: ":9090"
holidayDates:
  - "2026-01-01"
holidayRules:
  - name: "Christmas"
    rrule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"
  - name: "Boxing Day"
    rrule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=26"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "sheet123", cfg.DirectorySheetID)
	assert.Equal(t, "Employees", cfg.EmployeesTab)
	assert.Equal(t, "roster456", cfg.RosterSheetID)
	assert.Equal(t, "split", cfg.ShiftScheme)
	assert.Equal(t, 2, cfg.ImmunityYears)
	assert.Equal(t, 15, cfg.SolveBudgetSeconds)
	assert.Equal(t, ":9090", cfg.ServerAddr)

	require.Len(t, cfg.HolidayDates, 1)
	assert.Equal(t, "2026-01-01", cfg.HolidayDates[0])
	require.Len(t, cfg.HolidayRules, 2)
	assert.Equal(t, "Christmas", cfg.HolidayRules[0].Name)
	assert.Equal(t, "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=26", cfg.HolidayRules[1].RRule)
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimalConfig := `
directorySheetID: "sheet123"
employeesTab: "Employees"
rosterSheetID: "roster456"
shiftScheme: "full-day"
`

	err := os.WriteFile(configPath, []byte(minimalConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "full-day", cfg.ShiftScheme)
	assert.Zero(t, cfg.ImmunityYears)
	assert.Zero(t, cfg.SolveBudgetSeconds)
	assert.Empty(t, cfg.ServerAddr)
	assert.Empty(t, cfg.HolidayDates)
	assert.Empty(t, cfg.HolidayRules)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
directorySheetID: "sheet123"
employeesTab: "Employees"
# Missing rosterSheetID
shiftScheme: "split"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	invalidConfig := `
directorySheetID: "sheet123"
employeesTab: "Employees"
rosterSheetID: "roster456"
shiftScheme: "split"
holidayRules:
  - rrule: "INVALID_RRULE_SYNTAX"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
directorySheetID: "sheet123"
  invalid indentation
rosterSheetID: "roster456"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
