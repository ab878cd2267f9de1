// internal/workers/candidate/normalize-profile/config.go
package normalizeprofile

import "time"

type Config struct {
	Timeout time.Duration
}

// LoadConfig leaves room for the enhancement call, which is bounded at 15s.
func LoadConfig() *Config {
	return &Config{
		Timeout: 20 * time.Second,
	}
}
