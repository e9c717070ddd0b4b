package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"

	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/aruba_aoscx"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/cisco_ios"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_vrp"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_yunshan"
)

// TestEngineUnknownTemplate 未注册的模板按错误返回
func TestEngineUnknownTemplate(t *testing.T) {
	engine := extract.NewEngine()
	_, err := engine.Extract(parser.PlatformCiscoIOS, "show foo", "show_foo", "text")
	assert.Error(t, err)
}

// TestEngineCiscoShowVersion serial/hardware 作为列表字段输出
func TestEngineCiscoShowVersion(t *testing.T) {
	capture := `switch-01# show version
Cisco IOS Software, Catalyst L3 Switch Software (CAT9K_IOSXE), Version 17.06.04, RELEASE SOFTWARE
switch-01 uptime is 1 year, 2 weeks, 3 days
Processor board ID FCW2222B0AA
Model Number                       : C9300-48P
System Serial Number               : FCW2222B0AA
Configuration register is 0x102
switch-01# show inventory
`
	engine := extract.NewEngine()
	table, err := engine.Extract(parser.PlatformCiscoIOS, "show version", "show_version", capture)
	require.NoError(t, err)
	require.Len(t, table, 1)

	rec := table[0]
	assert.Equal(t, "17.06.04", rec["version"])
	assert.Equal(t, "switch-01", rec["hostname"])
	assert.Equal(t, "0x102", rec["config_register"])
	// 同一序列号出现两次，去重留给装配器统一处理
	assert.Equal(t, []interface{}{"FCW2222B0AA", "FCW2222B0AA"}, rec["serial"])
	assert.Equal(t, []interface{}{"C9300-48P"}, rec["hardware"])
}

// TestEngineArubaShowSystem cpu 与 memory_usage_percent 原样提取
func TestEngineArubaShowSystem(t *testing.T) {
	capture := `edge-01# show system
Hostname           : edge-01
Product Name       : JL658A 6300M
Chassis Serial Nbr : SG1234567
Up Time            : 3 months, 2 weeks
CPU Util (%)       : 7
Memory Usage (%)   : 42
`
	engine := extract.NewEngine()
	table, err := engine.Extract(parser.PlatformArubaAOSCX, "show system", "show_system", capture)
	require.NoError(t, err)
	require.Len(t, table, 1)

	rec := table[0]
	assert.Equal(t, "edge-01", rec["hostname"])
	assert.Equal(t, "SG1234567", rec["serial_number"])
	assert.Equal(t, "7", rec["cpu"])
	assert.Equal(t, "42", rec["memory_usage_percent"])
}

// TestEngineHuaweiVRPMemory VRP 模板输出 total_memory/used_memory 键
func TestEngineHuaweiVRPMemory(t *testing.T) {
	capture := `<core-01> display memory usage
Memory utilization statistics at 2024-01-01 10:00:00
System Total Memory Is: 1000 bytes
Total Memory Used Is: 250 bytes
Memory Using Percentage Is: 25%
`
	engine := extract.NewEngine()
	table, err := engine.Extract(parser.PlatformHuaweiVRP, "display memory usage", "display_memory_usage", capture)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "1000", table[0]["total_memory"])
	assert.Equal(t, "250", table[0]["used_memory"])
}

// TestEngineHuaweiYunShanCPU YunShan 模板输出 cpu_usage 键（与 VRP 命名不同）
func TestEngineHuaweiYunShanCPU(t *testing.T) {
	capture := `<leaf-01> display cpu-usage
CPU Usage : 18%
`
	engine := extract.NewEngine()
	table, err := engine.Extract(parser.PlatformHuaweiYunShan, "display cpu-usage", "display_cpu_usage", capture)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "18", table[0]["cpu_usage"])
}

// TestEngineEndToEnd 引擎接到装配器上跑通 Aruba 场景
func TestEngineEndToEnd(t *testing.T) {
	capture := `edge-01# show system
ArubaOS-CX Version : FL.10.08.1010
Hostname           : edge-01
CPU Util (%)       : 7
Memory Usage (%)   : 42
`
	p := parser.New(extract.NewEngine())
	doc := p.ParseCapture(capture, "edge-01.log")

	assert.Equal(t, parser.PlatformArubaAOSCX, doc.Platform)
	assert.Equal(t, "7", doc.CPUMemory.CPUMax)
	assert.Equal(t, "7", doc.CPUMemory.CPUAvg)
	assert.Equal(t, "42", doc.CPUMemory.MemoryUsagePercent)
}
