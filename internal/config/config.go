package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// HolidayRule defines a recurring public holiday as an RFC 5545 recurrence
// rule, e.g. FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25.
type HolidayRule struct {
	Name  string `yaml:"name,omitempty"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DirectorySheetID string `yaml:"directorySheetID" validate:"required"`
	EmployeesTab     string `yaml:"employeesTab" validate:"required"`
	RosterSheetID    string `yaml:"rosterSheetID" validate:"required"`
	ShiftScheme      string `yaml:"shiftScheme" validate:"required,oneof=split full-day"`
	// ImmunityYears overrides the default two-year holiday immunity window.
	ImmunityYears      int    `yaml:"immunityYears,omitempty" validate:"omitempty,min=1"`
	SolveBudgetSeconds int    `yaml:"solveBudgetSeconds,omitempty" validate:"omitempty,min=1"`
	ServerAddr         string `yaml:"serverAddr,omitempty"`
	// HolidayDates lists one-off public holidays as YYYY-MM-DD;
	// HolidayRules adds recurring ones.
	HolidayDates []string      `yaml:"holidayDates,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
	HolidayRules []HolidayRule `yaml:"holidayRules,omitempty" validate:"omitempty,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from duty_roster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for a named environment, e.g.
// duty_roster_config.test.yaml. An empty env falls back to the plain file name.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each recurring holiday
	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := "duty_roster_config.yaml"
	if env != "" {
		configFileName = fmt.Sprintf("duty_roster_config.%s.yaml", env)
	}

	return findFile(configFileName)
}
