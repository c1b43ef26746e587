package log

// Config controls the slog default logger set up at startup.
type Config struct {
	Level     int  `mapstructure:"level"`
	AddSource bool `mapstructure:"add_source"`
}
