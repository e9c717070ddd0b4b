package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netparserpro/netparserpro/internal/parser"
)

// TestSummaryLine 单文件概要包含平台与 CPU/内存汇总
func TestSummaryLine(t *testing.T) {
	doc := &parser.Document{
		Platform: parser.PlatformArubaAOSCX,
		Filename: "edge-01.txt",
		CPUMemory: parser.CPUMemory{
			CPUMax:             "7",
			CPUAvg:             "7",
			MemoryUsagePercent: "42",
		},
	}

	line := summaryLine("captures/edge-01.txt", doc)
	assert.Contains(t, line, "captures/edge-01.txt")
	assert.Contains(t, line, "aruba_aoscx")
	assert.Contains(t, line, "cpu_max=7")
	assert.Contains(t, line, "cpu_avg=7")
	assert.Contains(t, line, "memory_usage_percent=42")
}

// TestSummaryLineNA 无法计算时展示 N/A 占位
func TestSummaryLineNA(t *testing.T) {
	doc := &parser.Document{Platform: parser.PlatformUnknown, CPUMemory: parser.NewCPUMemory()}
	line := summaryLine("x.txt", doc)
	assert.Contains(t, line, "cpu_max=N/A")
	assert.Contains(t, line, "memory_usage_percent=N/A")
}

// TestParseExts 后缀列表解析：去空格、小写、补点
func TestParseExts(t *testing.T) {
	exts := parseExts(" .TXT, log ,,cfg")
	assert.True(t, exts[".txt"])
	assert.True(t, exts[".log"])
	assert.True(t, exts[".cfg"])
	assert.False(t, exts[".cap"])
}

// TestCollectFiles 目录模式只收集匹配后缀的文件
func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pcap"), []byte("x"), 0o644))

	files, err := collectFiles(dir, map[string]bool{".txt": true})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.txt", filepath.Base(files[0]))
}
