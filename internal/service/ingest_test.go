package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netparserpro/netparserpro/internal/database"
	"github.com/netparserpro/netparserpro/internal/model"
)

// TestIngestAccepts 仅接受配置后缀的文件
func TestIngestAccepts(t *testing.T) {
	cfg := setupTestEnv(t)
	svc := NewIngestService(cfg, newTestService(cfg))

	assert.True(t, svc.accepts("/inbox/edge-01.txt"))
	assert.True(t, svc.accepts("/inbox/edge-01.LOG"))
	assert.False(t, svc.accepts("/inbox/edge-01.pcap"))
	assert.False(t, svc.accepts("/inbox/noext"))
}

// TestIngestSweepExisting 启动时处理滞留文件并在解析后移除
func TestIngestSweepExisting(t *testing.T) {
	cfg := setupTestEnv(t)
	cfg.Ingest.Dir = filepath.Join(t.TempDir(), "inbox")
	require.NoError(t, os.MkdirAll(cfg.Ingest.Dir, 0o755))

	target := filepath.Join(cfg.Ingest.Dir, "sweep-edge.txt")
	require.NoError(t, os.WriteFile(target, []byte(arubaCapture), 0o644))

	svc := NewIngestService(cfg, newTestService(cfg))
	require.NoError(t, svc.Start())
	defer svc.Stop()

	// 去抖后文件被解析入库并从收件目录移除
	require.Eventually(t, func() bool {
		var count int64
		if err := database.GetDB().Model(&model.ParseResult{}).
			Where("filename = ? AND source = ?", "sweep-edge.txt", "ingest").
			Count(&count).Error; err != nil {
			return false
		}
		if count == 0 {
			return false
		}
		_, err := os.Stat(target)
		return os.IsNotExist(err)
	}, 5*time.Second, 50*time.Millisecond, "滞留文件未被解析")
}

// TestIngestWatchNewFile 新落盘文件被自动解析
func TestIngestWatchNewFile(t *testing.T) {
	cfg := setupTestEnv(t)
	cfg.Ingest.Dir = filepath.Join(t.TempDir(), "inbox")

	svc := NewIngestService(cfg, newTestService(cfg))
	require.NoError(t, svc.Start())
	defer svc.Stop()

	target := filepath.Join(cfg.Ingest.Dir, "watch-edge.txt")
	require.NoError(t, os.WriteFile(target, []byte(arubaCapture), 0o644))

	require.Eventually(t, func() bool {
		var count int64
		err := database.GetDB().Model(&model.ParseResult{}).
			Where("filename = ? AND source = ?", "watch-edge.txt", "ingest").
			Count(&count).Error
		return err == nil && count > 0
	}, 5*time.Second, 50*time.Millisecond, "新文件未被解析")
}
