package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── parseEnv ─────────────────────────────────────────────────────────────────

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("ADAPTER_BASE_URL", "http://api.example.test")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "45s")
	t.Setenv("STORAGE_DB_DSN", "/tmp/codechat-test.db")
	t.Setenv("WORKERS_REFRESH_INTERVAL", "2m")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "http://api.example.test", cfg.Adapter.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/codechat-test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Workers.RefreshInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "not-a-duration")

	var cfg StructuredConfig
	assert.Error(t, parseEnv(&cfg))
}

// ── parseJSON ────────────────────────────────────────────────────────────────

func TestParseJSON_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"adapter": {"base_url": "http://json.example.test", "request_timeout": "20s"},
		"storage": {"db": {"dsn": "json.db"}},
		"server": {"address": "localhost:9000", "token_secret": "s3cret", "token_ttl": "12h"},
		"workers": {"refresh_interval": "90s"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "http://json.example.test", cfg.Adapter.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9000", cfg.Server.Address)
	assert.Equal(t, 12*time.Hour, cfg.Server.TokenTTL)
	assert.Equal(t, 90*time.Second, cfg.Workers.RefreshInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/definitely/not/here.json")
	assert.Error(t, err)
}

// ── Duration ─────────────────────────────────────────────────────────────────

func TestDuration_UnmarshalString(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
	assert.Equal(t, 90*time.Minute, time.Duration(d))
}

func TestDuration_UnmarshalNumber(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))
}

func TestDuration_UnmarshalInvalid(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}

// ── builder precedence ───────────────────────────────────────────────────────

func TestBuilder_EarlierSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://first.test"}},
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://second.test", RequestTimeout: 10 * time.Second}},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "http://first.test", cfg.Adapter.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
}

func TestBuilder_DefaultsFillGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Adapter.BaseURL)
	assert.Equal(t, "codechat.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Minute, cfg.Workers.RefreshInterval)
}

// ── validation ───────────────────────────────────────────────────────────────

func TestClientConfig_Validate(t *testing.T) {
	valid := ClientConfig{
		Adapter: ClientAdapter{BaseURL: "http://localhost:8000", RequestTimeout: time.Second},
		Storage: ClientStorage{DB: ClientDB{DSN: ":memory:"}},
		Workers: ClientWorkers{RefreshInterval: time.Minute},
	}
	assert.NoError(t, valid.validate())

	noURL := valid
	noURL.Adapter.BaseURL = ""
	assert.ErrorIs(t, noURL.validate(), ErrInvalidAdapterConfigs)

	noDSN := valid
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, noDSN.validate(), ErrInvalidStorageConfigs)

	noInterval := valid
	noInterval.Workers.RefreshInterval = 0
	assert.ErrorIs(t, noInterval.validate(), ErrInvalidWorkerConfigs)
}

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{Address: "localhost:8000", TokenSecret: "x", TokenTTL: time.Hour}
	assert.NoError(t, valid.validate())

	noSecret := valid
	noSecret.TokenSecret = ""
	assert.ErrorIs(t, noSecret.validate(), ErrInvalidServerConfigs)
}
