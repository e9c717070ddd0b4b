package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitLevels 级别解析与非法级别回退
func TestInitLevels(t *testing.T) {
	require.NoError(t, Init(Config{Level: "debug", Format: "text", Output: "console"}))
	assert.Equal(t, logrus.DebugLevel, GetLogger().Level)

	require.NoError(t, Init(Config{Level: "not-a-level", Format: "json", Output: "console"}))
	assert.Equal(t, logrus.InfoLevel, GetLogger().Level, "非法级别应回退到 info")
}

// TestInitFileOutput 文件输出自动创建日志目录
func TestInitFileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "parser.log")
	require.NoError(t, Init(Config{Level: "info", Format: "text", Output: "file", FilePath: path}))

	Info("file output smoke")
	_, err := os.Stat(filepath.Dir(path))
	assert.NoError(t, err, "日志目录应已创建")
}

// TestParseOutputLines 头尾行提取
func TestParseOutputLines(t *testing.T) {
	out := "l1\nl2\nl3\nl4\nl5\nl6\nl7"
	lines := ParseOutputLines(out, 2)
	assert.Equal(t, []string{"l1", "l2"}, lines.HeadLines)
	assert.Equal(t, []string{"l6", "l7"}, lines.TailLines)

	// 总行数不超过上限时头尾相同
	short := ParseOutputLines("a\r\nb", 5)
	assert.Equal(t, []string{"a", "b"}, short.HeadLines)
	assert.Equal(t, short.HeadLines, short.TailLines)
}

// TestFormatOutputLines 头尾相同时只展示一次
func TestFormatOutputLines(t *testing.T) {
	same := OutputLines{HeadLines: []string{"a", "b"}, TailLines: []string{"a", "b"}}
	formatted := FormatOutputLines(same)
	assert.Contains(t, formatted, "head-lines")
	assert.NotContains(t, formatted, "tail-lines")

	diff := OutputLines{HeadLines: []string{"a"}, TailLines: []string{"z"}}
	assert.True(t, strings.Contains(FormatOutputLines(diff), "tail-lines"))
}

// TestDebugCaptureOutput 非 debug 级别直接跳过，debug 级别正常记录
func TestDebugCaptureOutput(t *testing.T) {
	require.NoError(t, Init(Config{Level: "info", Format: "text", Output: "console"}))
	DebugCaptureOutput("core-01.txt", "line1\nline2", 3)

	require.NoError(t, Init(Config{Level: "debug", Format: "text", Output: "console"}))
	DebugCaptureOutput("core-01.txt", "line1\nline2", 3)
	DebugCaptureOutput("empty.txt", "", 3)
}
