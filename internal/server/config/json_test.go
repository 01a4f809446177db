package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	data := `{
		"endpoint_addr_http": ":7070",
		"database_dsn": "postgres://u:p@db:5432/auth",
		"secret_key": "json-secret",
		"token_validity_duration": "45m",
		"bcrypt_cost": 8
	}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"app", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":7070")
	assert.Equal(t, c.DatabaseDSN, "postgres://u:p@db:5432/auth")
	assert.Equal(t, c.SecretKey, "json-secret")
	assert.Equal(t, c.TokenValidityDuration, 45*time.Minute)
	assert.Equal(t, c.BcryptCost, 8)
}

func TestParseJson_NoFileFlag_LeavesDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"app"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.SecretKey, "secretKey")
}

func TestParseJson_PartialFile_KeepsRest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	if err := os.WriteFile(path, []byte(`{"secret_key": "only-this"}`), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"app", "-config", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.SecretKey, "only-this")
	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.TokenValidityDuration, 2*time.Hour)
}
