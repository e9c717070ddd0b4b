package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleCapture = `switch-01# show version
Cisco IOS Software, Catalyst L3 Switch Software
switch-01 uptime is 1 year, 2 weeks
switch-01# show inventory
NAME: "Switch 1", DESCR: "C9300-48P"
PID: C9300-48P         , VID: V03  , SN: FCW1111A
switch-01# show processes cpu history
 100
  90   #
`

// TestCommandSection 命令段从回显行之后开始，到下一条命令回显为止
func TestCommandSection(t *testing.T) {
	section := CommandSection(sampleCapture, "show version")
	assert.Contains(t, section, "Cisco IOS Software")
	assert.Contains(t, section, "uptime is")
	assert.NotContains(t, section, "NAME:", "不应包含下一条命令的输出")

	inv := CommandSection(sampleCapture, "show inventory")
	assert.Contains(t, inv, `NAME: "Switch 1"`)
	assert.NotContains(t, inv, "uptime")
}

// TestCommandSectionLastCommand 最后一条命令的段延伸到文本结尾
func TestCommandSectionLastCommand(t *testing.T) {
	section := CommandSection(sampleCapture, "show processes cpu history")
	assert.Contains(t, section, " 90   #")
}

// TestCommandSectionChartLinesNotEcho 含 # 的图表行不会被误判为命令回显
func TestCommandSectionChartLinesNotEcho(t *testing.T) {
	assert.False(t, commandEchoRegex.MatchString("  90   #  ##"))
	assert.True(t, commandEchoRegex.MatchString("switch-01# show version"))
	assert.True(t, commandEchoRegex.MatchString("<sw1> display version"))
	assert.True(t, commandEchoRegex.MatchString("[sw1] display cpu-usage"))
}

// TestCommandSectionMissing 找不到回显返回空串
func TestCommandSectionMissing(t *testing.T) {
	assert.Equal(t, "", CommandSection(sampleCapture, "show system resources"))
	assert.Equal(t, "", CommandSection("", "show version"))
}
