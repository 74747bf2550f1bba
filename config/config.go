package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dockflow-backend/internal/yard"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Yard       YardConfig       `yaml:"yard"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Seed       SeedConfig       `yaml:"seed"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// YardConfig holds the receiving-yard parameters: dock capacity, the
// staleness thresholds, and the timezone used for report formatting.
type YardConfig struct {
	TotalDocks               int    `yaml:"total_docks"`
	StagingWarningMinutes    int    `yaml:"staging_warning_minutes"`
	StagingCriticalMinutes   int    `yaml:"staging_critical_minutes"`
	UnloadingOvertimeMinutes int    `yaml:"unloading_overtime_minutes"`
	Timezone                 string `yaml:"timezone"`
}

// PushConfig holds the VAPID keys for web push notifications. Leaving the
// keys empty disables the dock-availability notifier.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// SeedConfig is reference data applied once when the store is empty.
type SeedConfig struct {
	Suppliers []SeedSupplier `yaml:"suppliers"`
	Shifts    []SeedShift    `yaml:"shifts"`
}

// SeedSupplier seeds one supplier row.
type SeedSupplier struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// SeedShift seeds one shift row.
type SeedShift struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

// Thresholds converts the configured minutes into yard thresholds.
func (y YardConfig) Thresholds() yard.Thresholds {
	return yard.Thresholds{
		StagingWarning:    time.Duration(y.StagingWarningMinutes) * time.Minute,
		StagingCritical:   time.Duration(y.StagingCriticalMinutes) * time.Minute,
		UnloadingOvertime: time.Duration(y.UnloadingOvertimeMinutes) * time.Minute,
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (y YardConfig) Location() *time.Location {
	if y.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(y.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q, using UTC: %v", y.Timezone, err)
		return time.UTC
	}
	return loc
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 30
	}

	if cfg.Yard.TotalDocks <= 0 {
		cfg.Yard.TotalDocks = yard.DefaultTotalDocks
	}
	if cfg.Yard.StagingWarningMinutes <= 0 {
		cfg.Yard.StagingWarningMinutes = 120
	}
	if cfg.Yard.StagingCriticalMinutes <= 0 {
		cfg.Yard.StagingCriticalMinutes = 240
	}
	if cfg.Yard.UnloadingOvertimeMinutes <= 0 {
		cfg.Yard.UnloadingOvertimeMinutes = 120
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if len(cfg.Seed.Shifts) == 0 {
		cfg.Seed.Shifts = []SeedShift{
			{ID: "shift1", Name: "Morning Shift", StartTime: "06:00", EndTime: "14:00"},
			{ID: "shift2", Name: "Afternoon Shift", StartTime: "14:00", EndTime: "22:00"},
			{ID: "shift3", Name: "Night Shift", StartTime: "22:00", EndTime: "06:00"},
		}
	}
}
