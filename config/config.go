package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Vault     VaultConfig
	Anthropic AnthropicConfig
	Drive     DriveConfig
	App       AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Path string
}

type VaultConfig struct {
	// Root is the directory under which all project skeletons are created.
	Root string
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type DriveConfig struct {
	CredentialsPath string
	TokenPath       string
	SharedDriveID   string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "pmtool.db"),
		},
		Vault: VaultConfig{
			Root: getEnv("VAULT_ROOT", ""),
		},
		Anthropic: AnthropicConfig{
			APIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			Model:   getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
			BaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		},
		Drive: DriveConfig{
			CredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", "credentials.json"),
			TokenPath:       getEnv("GOOGLE_TOKEN_PATH", "token.json"),
			SharedDriveID:   getEnv("GOOGLE_SHARED_DRIVE_ID", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required")
	}

	if c.Vault.Root == "" {
		return fmt.Errorf("VAULT_ROOT is required")
	}

	// Code generation is mandatory for project creation, so a missing key is
	// fatal at startup. Drive credentials are not: their absence only disables
	// the remote provisioner.
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}

	return nil
}

// DriveEnabled reports whether the remote folder provisioner can run at all.
// The OAuth client secrets file must exist; the cached token may not yet.
func (c *Config) DriveEnabled() bool {
	if c.Drive.CredentialsPath == "" {
		return false
	}
	_, err := os.Stat(c.Drive.CredentialsPath)
	return err == nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
