// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// ProvisionerConfig points at the external season-provisioning backend. The
// composer only ever issues the one season-creation request against it.
type ProvisionerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout for provisioning calls.
func (c ProvisionerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WizardConfig controls the in-memory wizard session store.
type WizardConfig struct {
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
	SweepCron         string `yaml:"sweep_cron"`
}

// SessionTTL returns how long an idle wizard session survives.
func (c WizardConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

type EmailConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Region     string `yaml:"region"`
	Sender     string `yaml:"sender"`
	AdminEmail string `yaml:"admin_email"`
	// Credentials come from the environment only.
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		// Bcrypt hash of the admin API token. Loaded from environment.
		AdminTokenHash string `yaml:"-"`
	} `yaml:"app"`

	Database    DatabaseConfig    `yaml:"database"`
	Provisioner ProvisionerConfig `yaml:"provisioner"`
	Wizard      WizardConfig      `yaml:"wizard"`
	Email       EmailConfig       `yaml:"email"`

	Features struct {
		EnableDebug bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.App.AdminTokenHash = os.Getenv("ADMIN_TOKEN_HASH")
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Provisioner.TimeoutSeconds == 0 {
		cfg.Provisioner.TimeoutSeconds = 30
	}
	if cfg.Wizard.SessionTTLMinutes == 0 {
		cfg.Wizard.SessionTTLMinutes = 120
	}
	if cfg.Wizard.SweepCron == "" {
		cfg.Wizard.SweepCron = "*/10 * * * *"
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required for sqlite")
	}
	if c.Provisioner.BaseURL == "" {
		return fmt.Errorf("provisioner base_url is required")
	}
	if c.Email.Enabled {
		if c.Email.Region == "" || c.Email.Sender == "" || c.Email.AdminEmail == "" {
			return fmt.Errorf("email region, sender, and admin_email are required when email is enabled")
		}
		if c.Email.AccessKeyID == "" || c.Email.SecretAccessKey == "" {
			return fmt.Errorf("email credentials are required when email is enabled")
		}
	}
	return nil
}
