// internal/workers/candidate/search-candidates/config.go
package searchcandidates

import "time"

type Config struct {
	Timeout    time.Duration
	PoolLimit  int
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		PoolLimit:  5000,
		MaxResults: 50,
	}
}
