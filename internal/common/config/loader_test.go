// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
camunda:
  broker_address: ${TEST_ZEEBE_ADDRESS}
database:
  postgres:
    host: localhost
    database: candidates
    user: worker
  redis:
    address: localhost:6379
workers:
  search-candidates:
    enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")
	t.Setenv("ENHANCEMENT_API_KEY", "")

	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "semantic-tags", cfg.Database.Elasticsearch.TagIndex)
	assert.Equal(t, ProviderNone, cfg.APIs.Enhancement.Provider)
	assert.Equal(t, 12*time.Second, GetDuration(cfg.APIs.Enhancement.Timeout))
	assert.Equal(t, 100, cfg.Matching.BulkInterval)
	assert.Empty(t, cfg.Matching.KnowledgeBasePath)
	assert.Equal(t, 8080, cfg.Server.Port)

	assert.False(t, IsWorkerEnabled(cfg, "search-candidates"))
	assert.True(t, IsWorkerEnabled(cfg, "normalize-profile"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "search-candidates").Timeout)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown").MaxJobsActive)
}

func TestLoadFromFile_Validation(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")
	t.Setenv("ENHANCEMENT_API_KEY", "")
	t.Setenv("REVIEW_TOPIC_ARN", "")

	tests := []struct {
		name    string
		extra   string
		wantErr string
	}{
		{"unknown provider", "apis:\n  enhancement:\n    provider: magic\n", "apis.enhancement.provider"},
		{"http without url", "apis:\n  enhancement:\n    provider: http\n", "base_url"},
		{"gemini without key", "apis:\n  enhancement:\n    provider: gemini\n", "api_key"},
		{"sns without topic", "notifications:\n  sns:\n    enabled: true\n", "topic_arn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, minimalYAML+tt.extra))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingBroker(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "")
	_, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camunda.broker_address")
}

func TestLoadFromFile_EnvSecretOverride(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")
	t.Setenv("ENHANCEMENT_API_KEY", "secret")

	cfg, err := LoadFromFile(writeConfig(t, minimalYAML+"apis:\n  enhancement:\n    provider: gemini\n"))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIs.Enhancement.APIKey)
}

func TestLoadFromFile_ExpandsAddressList(t *testing.T) {
	t.Setenv("TEST_ES_URL", "http://es:9200")
	t.Setenv("TEST_ES_MISSING", "")

	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: zeebe:26500
database:
  postgres:
    host: localhost
    database: candidates
    user: worker
  redis:
    address: localhost:6379
  elasticsearch:
    addresses:
      - ${TEST_ES_URL}
      - ${TEST_ES_MISSING}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://es:9200"}, cfg.Database.Elasticsearch.Addresses)
}
