package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains all persistence-related configuration settings.
type StorageConfig struct {
	// Driver selects the storage backend: sqlite for local single-user
	// deployments, postgres for hosted ones.
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`

	// DSN is the driver-specific data source name: a file path for
	// sqlite, a connection URL for postgres.
	DSN string `mapstructure:"dsn" validate:"required"`
}

// AuthConfig contains profile session token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}
