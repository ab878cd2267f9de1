// internal/workers/candidate/compute-activity-metrics/config.go
package computeactivitymetrics

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
