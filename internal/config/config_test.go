package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadDefaults 缺省项由默认值填充
func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8, cfg.Parser.Concurrent)
	assert.Equal(t, int64(16*1024*1024), cfg.Parser.MaxFileSize)
	assert.Equal(t, []string{".txt", ".log"}, cfg.Parser.AllowedExtensions)
	assert.Equal(t, time.Hour, cfg.Parser.CacheTTL)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.False(t, cfg.Ingest.Enabled)
	assert.Equal(t, 500, cfg.Ingest.DebounceMS)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
}

// TestLoadOverrides 配置文件覆盖默认值
func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
parser:
  concurrent: 16
  allowed_extensions: [".cap"]
ingest:
  enabled: true
  dir: "/tmp/inbox"
cache:
  redis:
    host: "127.0.0.1"
    db: 3
storage:
  backend: "minio"
  minio:
    host: "minio.local"
    port: 9000
    bucket: "captures"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Parser.Concurrent)
	assert.Equal(t, []string{".cap"}, cfg.Parser.AllowedExtensions)
	assert.True(t, cfg.Ingest.Enabled)
	assert.Equal(t, "/tmp/inbox", cfg.Ingest.Dir)
	assert.Equal(t, "127.0.0.1", cfg.Cache.Redis.Host)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)
	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.Equal(t, "minio.local", cfg.Storage.Minio.Host)
}

// TestLoadLegacyBackendKey 兼容旧键 storage.storage_backend
func TestLoadLegacyBackendKey(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: ""
  storage_backend: "minio"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "minio", cfg.Storage.Backend)
}

// TestValidate 非法配置被拒绝
func TestValidate(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: "ftp"
`)
	_, err := Load(path)
	assert.Error(t, err)

	path = writeConfig(t, `
parser:
  concurrent: 0
`)
	_, err = Load(path)
	assert.Error(t, err)
}

// TestReloadSnapshotIsolation 重载写入新快照，旧快照不被改写
func TestReloadSnapshotIsolation(t *testing.T) {
	first, err := Load(writeConfig(t, `
server:
  port: 9090
`))
	require.NoError(t, err)

	second, err := Load(writeConfig(t, `
server:
  port: 9091
ingest:
  enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, first.Server.Port, "旧快照不应随重载变化")
	assert.False(t, first.Ingest.Enabled)
	assert.Equal(t, 9091, second.Server.Port)
	assert.Same(t, second, Get(), "Get 应返回最近一次加载的快照")
}

// TestAllowedExtension 后缀匹配忽略大小写
func TestAllowedExtension(t *testing.T) {
	cfg := &Config{}
	cfg.Parser.AllowedExtensions = []string{".txt", ".LOG"}

	assert.True(t, cfg.AllowedExtension(".txt"))
	assert.True(t, cfg.AllowedExtension(".TXT"))
	assert.True(t, cfg.AllowedExtension(".log"))
	assert.False(t, cfg.AllowedExtension(".cap"))
	assert.False(t, cfg.AllowedExtension(""))
}
