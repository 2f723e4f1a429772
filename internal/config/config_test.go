package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every variable Load reads, restoring after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
		"MAIL_FROM", "MAIL_TO", "REPORT_FILE", "CRON_SCHEDULE", "HTTPS_PROXY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("port = %d, want 587", cfg.SMTP.Port)
	}
	if cfg.Schedule.Cron != "0 0 9 1 1,4,7,10 *" {
		t.Errorf("cron = %q", cfg.Schedule.Cron)
	}
	if len(cfg.Report.Order) != len(DefaultOrder()) {
		t.Errorf("order length = %d", len(cfg.Report.Order))
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
smtp:
  host: smtp.example.com
  username: file-user
  password: file-pass
report:
  file: /tmp/report.html
`)
	t.Setenv("SMTP_USERNAME", "env-user")
	t.Setenv("MAIL_TO", "a@example.com, b@example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SMTP.Host != "smtp.example.com" {
		t.Errorf("host = %q", cfg.SMTP.Host)
	}
	if cfg.SMTP.Username != "env-user" {
		t.Errorf("username = %q, env should win over the file", cfg.SMTP.Username)
	}
	if cfg.SMTP.From != "env-user" {
		t.Errorf("from = %q, want the username fallback", cfg.SMTP.From)
	}
	if len(cfg.SMTP.To) != 2 || cfg.SMTP.To[1] != "b@example.com" {
		t.Errorf("to = %v", cfg.SMTP.To)
	}
	if cfg.Report.File != "/tmp/report.html" {
		t.Errorf("report file = %q", cfg.Report.File)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.SMTP.Host = "smtp.example.com"
		c.SMTP.Username = "u"
		c.SMTP.Password = "p"
		c.SMTP.From = "u@example.com"
		c.SMTP.To = []string{"u@example.com"}
		return c
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	c := base()
	c.SMTP.Password = ""
	if err := c.Validate(); err == nil {
		t.Error("missing password accepted")
	}

	c = base()
	c.Report.Order = []string{"usd_reserve_share", "no_such_indicator"}
	if err := c.Validate(); err == nil {
		t.Error("unknown indicator in order accepted")
	}

	c = base()
	c.Thresholds = map[string]ThresholdOverride{"bogus": {}}
	if err := c.Validate(); err == nil {
		t.Error("threshold override for unknown indicator accepted")
	}
}

func TestIndicators_ThresholdOverrides(t *testing.T) {
	warning, critical := 60.0, 45.0
	c := &Config{
		Thresholds: map[string]ThresholdOverride{
			"usd_reserve_share": {Warning: &warning, Critical: &critical},
			"dxy":               {Warning: &warning},
		},
	}
	table := c.Indicators()

	usd := table["usd_reserve_share"]
	if usd.Warning != 60.0 || usd.Critical != 45.0 {
		t.Errorf("usd thresholds = %g/%g", usd.Warning, usd.Critical)
	}
	dxy := table["dxy"]
	if dxy.Warning != 60.0 {
		t.Errorf("dxy warning = %g", dxy.Warning)
	}
	if dxy.Critical != 80.0 {
		t.Errorf("dxy critical = %g, partial override must keep the default", dxy.Critical)
	}
	// untouched indicators keep their defaults
	if table["china_treasury"].Warning != 700.0 {
		t.Errorf("china warning = %g", table["china_treasury"].Warning)
	}
}

func TestDefaults_TableIsACopy(t *testing.T) {
	a := Defaults()
	ind := a["dxy"]
	ind.Warning = 1
	a["dxy"] = ind
	if Defaults()["dxy"].Warning != 90.0 {
		t.Error("Defaults must return a fresh table each call")
	}
}

func TestDefaultOrder_CoversTable(t *testing.T) {
	defs := Defaults()
	order := DefaultOrder()
	if len(order) != len(defs) {
		t.Fatalf("order has %d entries, table has %d", len(order), len(defs))
	}
	for _, id := range order {
		ind, ok := defs[id]
		if !ok {
			t.Errorf("order references unknown indicator %q", id)
			continue
		}
		if ind.ID != id {
			t.Errorf("indicator %q carries ID %q", id, ind.ID)
		}
		if !ind.Informational && ind.Direction == "" {
			t.Errorf("indicator %q has no direction", id)
		}
	}
}
