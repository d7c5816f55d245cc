package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: app
  password: secret
  name: documents
minio:
  endpoint: minio.internal:9000
  accessKey: ak
  secretKey: sk
  bucketName: documents
monitor:
  intervalSeconds: 30
  containers: [invoices, contracts]
  extensions: [".pdf", ".docx"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Monitor.IntervalSeconds)
	assert.Equal(t, []string{"invoices", "contracts"}, cfg.Monitor.Containers)
	assert.Equal(t, []string{".pdf", ".docx"}, cfg.Monitor.Extensions)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
minio:
  endpoint: localhost:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 60, cfg.Monitor.IntervalSeconds)
	assert.Equal(t, 3600, cfg.Monitor.CriticalIntervalSeconds)
	assert.Equal(t, 5, cfg.Monitor.ReviewLeadDays)
	assert.Equal(t, []string{".pdf"}, cfg.Monitor.Extensions)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDSNHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Driver = "mysql"
	cfg.Database.Host = "db"
	cfg.Database.Port = 3306
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "documents"

	assert.Equal(t, "app:pw@tcp(db:3306)/documents?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
	assert.Contains(t, cfg.PostgresDSN(), "host=db port=3306")
	assert.Contains(t, cfg.PostgresDSN(), "dbname=documents")
}
