// Package config handles configuration for the roster server: defaults,
// environment overlay, and command-line flags, applied in that order.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config holds runtime settings for the roster server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: sqlite DSN for the bun persistence layer.
//   - SigningSecret: HMAC secret for signing JWTs (HS256). Do not ship the
//     development default.
//   - TokenTTLHours: validity window for issued tokens.
//   - SuperAdminEmail / SuperAdminPassword: the root identity seeded at
//     startup when no account with that email exists yet.
type Config struct {
	ListenAddr         string
	DatabaseDSN        string
	SigningSecret      string
	TokenTTLHours      int
	SuperAdminEmail    string
	SuperAdminPassword string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":3000"
	c.DatabaseDSN = "file:roster.db?cache=shared&mode=rwc"
	c.SigningSecret = "dev-signing-secret"
	c.TokenTTLHours = 24
	c.SuperAdminEmail = "root@localhost"
	c.SuperAdminPassword = "changeme-now"
}

// Load builds a Config by applying defaults, then overlaying environment
// variables and finally command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ROSTER_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("ROSTER_DATABASE_DSN"); v != "" {
		c.DatabaseDSN = v
	}
	if v := os.Getenv("ROSTER_JWT_SECRET"); v != "" {
		c.SigningSecret = v
	}
	if v := os.Getenv("ROSTER_JWT_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROSTER_JWT_TTL_HOURS %q: %w", v, err)
		}
		c.TokenTTLHours = hours
	}
	if v := os.Getenv("ROSTER_SUPERADMIN_EMAIL"); v != "" {
		c.SuperAdminEmail = v
	}
	if v := os.Getenv("ROSTER_SUPERADMIN_PASSWORD"); v != "" {
		c.SuperAdminPassword = v
	}
	return nil
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("roster-server", flag.ContinueOnError)

	fs.StringVar(&c.ListenAddr, "a", c.ListenAddr, "HTTP listen address")
	fs.StringVar(&c.DatabaseDSN, "d", c.DatabaseDSN, "sqlite database DSN")
	fs.StringVar(&c.SigningSecret, "s", c.SigningSecret, "JWT signing secret")
	fs.IntVar(&c.TokenTTLHours, "t", c.TokenTTLHours, "token time-to-live in hours")
	fs.StringVar(&c.SuperAdminEmail, "u", c.SuperAdminEmail, "bootstrap superAdmin email")
	fs.StringVar(&c.SuperAdminPassword, "p", c.SuperAdminPassword, "bootstrap superAdmin password")

	return fs.Parse(args)
}
