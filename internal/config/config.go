package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	SMTP struct {
		Host     string   `yaml:"host"`
		Port     int      `yaml:"port"`
		Username string   `yaml:"username"`
		Password string   `yaml:"password"`
		From     string   `yaml:"from"`
		To       []string `yaml:"to"`
	} `yaml:"smtp"`
	Report struct {
		File  string   `yaml:"file"`  // local HTML copy of the report, empty disables
		Order []string `yaml:"order"` // indicator ids in display order
	} `yaml:"report"`
	Schedule struct {
		Cron string `yaml:"cron"` // only used by serve mode
	} `yaml:"schedule"`
	Thresholds map[string]ThresholdOverride `yaml:"thresholds"`
	Proxy      string                       `yaml:"proxy"`
}

// ThresholdOverride adjusts the built-in threshold pair for one indicator.
type ThresholdOverride struct {
	Warning  *float64 `yaml:"warning"`
	Critical *float64 `yaml:"critical"`
}

// Load reads config from a YAML file (a missing file is fine), loads .env if
// present, then applies environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// Credentials typically live in .env rather than the YAML file.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("MAIL_TO"); v != "" {
		cfg.SMTP.To = nil
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				cfg.SMTP.To = append(cfg.SMTP.To, addr)
			}
		}
	}
	if v := os.Getenv("REPORT_FILE"); v != "" {
		cfg.Report.File = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if len(cfg.SMTP.To) == 0 && cfg.SMTP.From != "" {
		cfg.SMTP.To = []string{cfg.SMTP.From}
	}
	if len(cfg.Report.Order) == 0 {
		cfg.Report.Order = DefaultOrder()
	}
	if cfg.Schedule.Cron == "" {
		// 09:00 on the 1st of Jan, Apr, Jul, Oct
		cfg.Schedule.Cron = "0 0 9 1 1,4,7,10 *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required")
	}
	if c.SMTP.Username == "" {
		return fmt.Errorf("smtp.username is required")
	}
	if c.SMTP.Password == "" {
		return fmt.Errorf("smtp.password is required")
	}
	if c.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required")
	}
	if len(c.SMTP.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	defs := Defaults()
	for _, id := range c.Report.Order {
		if _, ok := defs[id]; !ok {
			return fmt.Errorf("report.order: unknown indicator %q", id)
		}
	}
	for id := range c.Thresholds {
		if _, ok := defs[id]; !ok {
			return fmt.Errorf("thresholds: unknown indicator %q", id)
		}
	}
	return nil
}

// Indicators returns the indicator table with any YAML threshold overrides
// applied.
func (c *Config) Indicators() map[string]Indicator {
	defs := Defaults()
	for id, ov := range c.Thresholds {
		ind, ok := defs[id]
		if !ok {
			continue
		}
		if ov.Warning != nil {
			ind.Warning = *ov.Warning
		}
		if ov.Critical != nil {
			ind.Critical = *ov.Critical
		}
		defs[id] = ind
	}
	return defs
}
