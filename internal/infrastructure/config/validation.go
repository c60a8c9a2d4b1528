package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the config struct rules
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(validateDatabaseSource, Config{})

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				strings.TrimPrefix(e.Namespace(), "Config."),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// validateDatabaseSource requires a usable connection when the catalog is
// read from the database
func validateDatabaseSource(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.Catalog.Source != CatalogSourceDatabase {
		return
	}
	if cfg.Database.Type == DatabaseSQLite && cfg.Database.Path == "" {
		sl.ReportError(cfg.Database.Path, "Database.Path", "Path", "required_for_database_catalog", "")
	}
	if cfg.Database.Type == DatabasePostgres && cfg.Database.URL == "" && cfg.Database.Host == "" {
		sl.ReportError(cfg.Database.Host, "Database.Host", "Host", "required_for_database_catalog", "")
	}
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
