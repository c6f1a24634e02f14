package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowOrigins is a comma separated CORS origin list.
	AllowOrigins string `mapstructure:"allow_origins" default:"*"`
}

// Origins returns the configured CORS origins, trimmed, defaulting to "*".
func (c Config) Origins() string {
	parts := strings.Split(c.AllowOrigins, ",")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "*"
	}
	return strings.Join(kept, ",")
}
