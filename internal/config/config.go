package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Import   ImportConfig   `mapstructure:"import"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowedOrigins lists origins allowed by the CORS middleware. "*" allows any origin.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"required,min=1"`
}

// Storage drivers understood by the server.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// StorageConfig selects the record store backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory file postgres"`
	// FilePath is the JSON snapshot used by the file driver.
	FilePath string `mapstructure:"file_path"`
	// Seed loads the demo employees and managers into an empty store on startup.
	Seed bool `mapstructure:"seed"`
}

// DatabaseConfig contains all database-related configuration settings.
// Only consulted by the postgres driver.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// ImportConfig bounds spreadsheet uploads.
type ImportConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
}
