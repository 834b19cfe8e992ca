package app

import "errors"

// Audience values for the simulated request.
const (
	AudienceAdmin  = "admin"
	AudiencePublic = "public"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ExtensionsPath string // directory scanned for extension manifests
	HostVersion    string // version the simulated host reports
	Audience       string // request context: "admin" or "public"
	BaseURL        string // public URL prefix for extension assets
	ExtraHook      string // optional extra hook to wire at plug time

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.HostVersion == "" {
		return nil, errors.New("HostVersion is a required configuration field and cannot be empty")
	}
	if cfg.Audience != AudienceAdmin && cfg.Audience != AudiencePublic {
		return nil, errors.New("Audience must be 'admin' or 'public'")
	}
	return &cfg, nil
}
