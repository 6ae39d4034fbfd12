package config

// Config represents the complete configuration structure
type Config struct {
	KSP     KSPConfig     `mapstructure:"ksp"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// KSPConfig holds the platform API connection details
type KSPConfig struct {
	URL       string `mapstructure:"url"`
	APIKey    string `mapstructure:"api_key"`
	VerifySSL bool   `mapstructure:"verify_ssl"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
