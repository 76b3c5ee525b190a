package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces all environment variables read by Load.
const envPrefix = "EXCEL"

// Config represents the complete application configuration
type Config struct {
	Workbook WorkbookConfig `yaml:"workbook" envconfig:"WORKBOOK"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// WorkbookConfig contains workbook loading configuration
type WorkbookConfig struct {
	File      string `yaml:"file" envconfig:"FILE"`
	Sheet     string `yaml:"sheet" envconfig:"SHEET" validate:"required,sheetname"`
	HeaderRow bool   `yaml:"header_row" envconfig:"HEADER_ROW"`
	Output    string `yaml:"output" envconfig:"OUTPUT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// structValidator validates configuration structs using validate tags
var structValidator = newValidator()

// newValidator builds the validator with custom rules registered
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("sheetname", isValidSheetName)

	// Use YAML tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// isValidSheetName enforces the worksheet naming rules: 1 to 31
// characters, none of : \ / ? * [ ]
func isValidSheetName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 31 {
		return false
	}
	return !strings.ContainsAny(name, `:\/?*[]`)
}

// Load loads configuration from defaults, an optional YAML config file
// and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is like Load but reads the given config file. An empty path
// skips the file layer.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables override file values
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	return nil
}

// Validate checks the configuration values against the validate tags.
// An empty log file path falls back to the default before validation.
func (c *Config) Validate() error {
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/excel-client.log"
	}

	if err := structValidator.Struct(c); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, formatValidationError(fieldErr))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}

	return nil
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	tag := err.Tag()
	param := err.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Replace(param, " ", ", ", -1))
	case "sheetname":
		return fmt.Sprintf("%s must be a valid worksheet name", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

// findConfigFile returns the path to the config file
func findConfigFile() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Workbook: WorkbookConfig{
			Sheet:     "Sheet1",
			HeaderRow: true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/excel-client.log",
		},
	}
}
