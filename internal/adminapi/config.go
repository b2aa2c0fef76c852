package adminapi

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultSessionCookie = "mundo_admin_session"
	defaultSessionTTL    = 12 * time.Hour
	defaultSessionIssuer = "mundo-mitico"
)

// Config aggregates runtime settings for the admin panel API.
type Config struct {
	AllowedOrigins    []string
	AdminIDs          []string
	SessionSigningKey string
	SessionIssuer     string
	SessionCookieName string
	SessionTTL        time.Duration
	BackupDir         string
}

// Validate ensures the configuration contains sane values.
func (cfg *Config) Validate() error {
	if len(cfg.AdminIDs) == 0 {
		return fmt.Errorf("admin allowlist is required")
	}
	if strings.TrimSpace(cfg.SessionSigningKey) == "" {
		return fmt.Errorf("session signing key is required")
	}
	if strings.TrimSpace(cfg.SessionIssuer) == "" {
		cfg.SessionIssuer = defaultSessionIssuer
	}
	if strings.TrimSpace(cfg.SessionCookieName) == "" {
		cfg.SessionCookieName = defaultSessionCookie
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	return nil
}

// IsAdmin reports whether an identity is on the static allowlist.
func (cfg *Config) IsAdmin(adminID string) bool {
	for _, allowed := range cfg.AdminIDs {
		if allowed == adminID {
			return true
		}
	}
	return false
}

// ParseAllowedOrigins splits comma-delimited origins into a slice.
func ParseAllowedOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}
