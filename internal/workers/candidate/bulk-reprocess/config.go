// internal/workers/candidate/bulk-reprocess/config.go
package bulkreprocess

import "time"

type Config struct {
	Timeout   time.Duration
	PoolLimit int
	// ResumeBackoff delays the retry of a job that ran out of time, so the
	// next activation picks up from the checkpoint.
	ResumeBackoff time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       time.Hour,
		PoolLimit:     5000,
		ResumeBackoff: 30 * time.Second,
	}
}
