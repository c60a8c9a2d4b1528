package config

// LoggingConfig configures the zap logger behind logging.New. Logs never go
// to stdout by default so command output stays machine readable.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// text is zap's console encoder; json is one object per line
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	IncludeCaller     bool `mapstructure:"include_caller"`
	IncludeStacktrace bool `mapstructure:"include_stacktrace"`
}
