package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyWorkdayHours = "workday.hours"
	KeyRoundingStep = "workday.rounding_step"
	KeyReportPrefix = "report.prefix"
	KeyEmployees    = "employees"
	KeyActivities   = "activities"
)

type Config struct {
	Workday    WorkdayConfig `mapstructure:"workday" validate:"required"`
	Report     ReportConfig  `mapstructure:"report"`
	Employees  []string      `mapstructure:"employees"`
	Activities []string      `mapstructure:"activities"`
}

type WorkdayConfig struct {
	// Hours is the nominal length of a full working day.
	Hours float64 `mapstructure:"hours" validate:"required,gt=0,lte=24"`
	// RoundingStep is the granularity computed day fractions snap to.
	RoundingStep float64 `mapstructure:"rounding_step" validate:"required,gt=0,lte=1"`
}

type ReportConfig struct {
	Prefix string `mapstructure:"prefix"`
}

var defaultActivities = []string{
	"Aufmaß",
	"Absteckung",
	"Absteckdaten",
	"Bestandsplan",
	"Sonstiges",
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# sitelog configuration
workday:
  hours: 8.0
  rounding_step: 0.05

report:
  prefix: "monthly_report"

# Names offered as suggestions when logging entries.
employees: []

activities:
  - "Aufmaß"
  - "Absteckung"
  - "Absteckdaten"
  - "Bestandsplan"
  - "Sonstiges"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateSuggestionLists(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyWorkdayHours, 8.0)
	v.SetDefault(KeyRoundingStep, 0.05)
	v.SetDefault(KeyReportPrefix, "monthly_report")
	v.SetDefault(KeyEmployees, []string{})
	v.SetDefault(KeyActivities, defaultActivities)
}

func validateSuggestionLists(cfg *Config) error {
	for i, employee := range cfg.Employees {
		if strings.TrimSpace(employee) == "" {
			return fmt.Errorf("validation failed: employees[%d] must not be blank", i)
		}
	}
	seen := make(map[string]struct{}, len(cfg.Activities))
	for i, activity := range cfg.Activities {
		name := strings.TrimSpace(activity)
		if name == "" {
			return fmt.Errorf("validation failed: activities[%d] must not be blank", i)
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate activity %q", name)
		}
		seen[key] = struct{}{}
	}
	return nil
}
