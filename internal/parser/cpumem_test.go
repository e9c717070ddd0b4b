package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildCiscoCPUHistory 构造 'show processes cpu history' 的 60 分钟窗口片段。
// rowTens/rowOnes 为柱状图末尾两行数字栅格（含 4 列左边距），
// axisRows 为末尾 10 行纵轴刻度（平均值的 # 标记落在其中）
func buildCiscoCPUHistory(rowTens, rowOnes string, axisRows []string) string {
	var b strings.Builder
	b.WriteString("switch# show processes cpu history\n")
	b.WriteString("      CPU% per minute (last 60 minutes)\n")
	b.WriteString("     * = maximum CPU%   # = average CPU%\n")
	b.WriteString("\n")
	b.WriteString(rowTens + "\n")
	b.WriteString(rowOnes + "\n")
	for _, row := range axisRows {
		b.WriteString(row + "\n")
	}
	b.WriteString("   0....5....1....1....2....2....3....3....4....4....5....5....\n")
	b.WriteString("             0    5    0    5    0    5    0    5    0    5\n")
	b.WriteString("               CPU% per hour (last 72 hours)\n")
	return b.String()
}

var defaultAxisRows = []string{"100", " 90", " 80", " 70", " 60", " 50", " 40", " 30", " 20   #  #", " 10   ## ##"}

// TestExtractCiscoCPUTwoRowReconstruction 两行栅格逐列拼接还原两位数值
func TestExtractCiscoCPUTwoRowReconstruction(t *testing.T) {
	// 四个时间桶：15、23、9、31。第一行是十位，第二行是个位
	text := buildCiscoCPUHistory("    12 3", "    5391", defaultAxisRows)
	cpuMax, cpuAvg := extractCiscoCPUUsage(text)
	assert.Equal(t, "31", cpuMax, "应取重建数值中的最大值")
	assert.Equal(t, "20", cpuAvg, "# 标记最先出现在 20 刻度行")
}

// TestExtractCiscoCPUSingleRow 整图低于 10% 时第一行为空白，仅用个位行
func TestExtractCiscoCPUSingleRow(t *testing.T) {
	axis := []string{"100", " 90", " 80", " 70", " 60", " 50", " 40", " 30", " 20", " 10"}
	text := buildCiscoCPUHistory("    ", "    5391", axis)
	cpuMax, cpuAvg := extractCiscoCPUUsage(text)
	assert.Equal(t, "9", cpuMax)
	// 刻度行里没有 # 标记，平均值落到最小显示刻度
	assert.Equal(t, "1", cpuAvg)
}

// TestExtractCiscoCPUAvgFloor 重建的平均值小于 10 一律报 "1"，大于等于 10 原样输出
func TestExtractCiscoCPUAvgFloor(t *testing.T) {
	axisLow := []string{"100", " 90", " 80", " 70", " 60", " 50", " 40", " 30", " 20", "  5 #"}
	text := buildCiscoCPUHistory("    12 3", "    5391", axisLow)
	_, cpuAvg := extractCiscoCPUUsage(text)
	assert.Equal(t, "1", cpuAvg, "平均值 5 < 10 应压到 1")

	axisTen := []string{"100", " 90", " 80", " 70", " 60", " 50", " 40", " 30", " 20", " 10 #"}
	text = buildCiscoCPUHistory("    12 3", "    5391", axisTen)
	_, cpuAvg = extractCiscoCPUUsage(text)
	assert.Equal(t, "10", cpuAvg, "平均值恰为 10 应原样输出")
}

// TestExtractCiscoCPUWindowMissing 60 分钟窗口缺失时给出可区分的失败描述，
// 而不是 N/A
func TestExtractCiscoCPUWindowMissing(t *testing.T) {
	cpuMax, cpuAvg := extractCiscoCPUUsage("Cisco IOS Software\nswitch# show version\nno history here")
	assert.Equal(t, "Cannot find max CPU (regex failed)", cpuMax)
	assert.Equal(t, "Cannot find average CPU (regex failed)", cpuAvg)
}

// TestExtractCiscoCPUNoNumeric 栅格行里没有任何数字时明确报无数值
func TestExtractCiscoCPUNoNumeric(t *testing.T) {
	text := buildCiscoCPUHistory("        ", "        ", defaultAxisRows)
	cpuMax, _ := extractCiscoCPUUsage(text)
	assert.Equal(t, "No numeric CPU max found", cpuMax)
}

// TestCiscoMemoryPercent 内存百分比 = round(used/total*100, 2)
func TestCiscoMemoryPercent(t *testing.T) {
	assert.Equal(t, 25.0, ciscoMemoryPercent(Record{"memory_total": "1000", "memory_used": "250"}))
	assert.Equal(t, 33.33, ciscoMemoryPercent(Record{"memory_total": "3", "memory_used": "1"}))
	// total 为 0 或缺失时为 0，绝不出现除零
	assert.Equal(t, 0, ciscoMemoryPercent(Record{"memory_total": "0", "memory_used": "250"}))
	assert.Equal(t, 0, ciscoMemoryPercent(Record{"memory_used": "250"}))
	// 字段不可转换时为 N/A
	assert.Equal(t, "N/A", ciscoMemoryPercent(Record{"memory_total": "lots", "memory_used": "250"}))
}

// TestApplyCiscoIOSEnrichment 计算出的内存百分比同时回写首条记录
func TestApplyCiscoIOSEnrichment(t *testing.T) {
	doc := &Document{
		Platform:  PlatformCiscoIOS,
		Tables:    map[string]Table{"show processes memory sorted": {{"memory_total": "1000", "memory_used": "250"}}},
		CPUMemory: NewCPUMemory(),
	}
	applyCiscoIOS(doc, "no history window")
	assert.Equal(t, 25.0, doc.CPUMemory.MemoryUsagePercent)
	assert.Equal(t, 25.0, doc.Tables["show processes memory sorted"][0]["memory_usage_percent"])
	assert.Equal(t, "Cannot find max CPU (regex failed)", doc.CPUMemory.CPUMax)
}

// TestApplyCiscoNXOS 两个 CPU 字段取 'show system resources' 的同一个值
func TestApplyCiscoNXOS(t *testing.T) {
	doc := &Document{
		Platform:  PlatformCiscoNXOS,
		Tables:    map[string]Table{"show system resources": {{"cpu_usage_percent": "12", "memory_usage_percent": "48"}}},
		CPUMemory: NewCPUMemory(),
	}
	applyCiscoNXOS(doc)
	assert.Equal(t, "12", doc.CPUMemory.CPUMax)
	assert.Equal(t, "12", doc.CPUMemory.CPUAvg)
	assert.Equal(t, "48", doc.CPUMemory.MemoryUsagePercent)
}

// TestApplyArubaAOSCX 纯数字值被接受，cpu_max 与 cpu_avg 取同一个值
func TestApplyArubaAOSCX(t *testing.T) {
	doc := &Document{
		Platform:  PlatformArubaAOSCX,
		Tables:    map[string]Table{"show system": {{"cpu": "7", "memory_usage_percent": "42"}}},
		CPUMemory: NewCPUMemory(),
	}
	applyArubaAOSCX(doc)
	assert.Equal(t, "7", doc.CPUMemory.CPUMax)
	assert.Equal(t, "7", doc.CPUMemory.CPUAvg)
	assert.Equal(t, "42", doc.CPUMemory.MemoryUsagePercent)
	// 结果回写首条记录
	assert.Equal(t, "7", doc.Tables["show system"][0]["cpu_max"])
}

// TestApplyArubaAOSCXRejectsNonDigits 带单位后缀或占位文本的值不被接受
func TestApplyArubaAOSCXRejectsNonDigits(t *testing.T) {
	doc := &Document{
		Platform:  PlatformArubaAOSCX,
		Tables:    map[string]Table{"show system": {{"cpu": "7%", "memory_usage_percent": "unknown"}}},
		CPUMemory: NewCPUMemory(),
	}
	applyArubaAOSCX(doc)
	assert.Equal(t, "N/A", doc.CPUMemory.CPUMax)
	assert.Equal(t, "N/A", doc.CPUMemory.MemoryUsagePercent)
}

// TestHuaweiCPUFallbackOrder 字段探测顺序：cpu_usage_rate → cpu_usage_average → cpu_usage，
// 取第一个可解析的值后停止
func TestHuaweiCPUFallbackOrder(t *testing.T) {
	assert.Equal(t, "12", huaweiCPUValue(Record{"cpu_usage_rate": "12.4", "cpu_usage": "99"}))
	assert.Equal(t, "33", huaweiCPUValue(Record{"cpu_usage_average": "33", "cpu_usage": "99"}))
	assert.Equal(t, "99", huaweiCPUValue(Record{"cpu_usage": "99"}))
	// 靠前字段不可解析时继续向后探测
	assert.Equal(t, "99", huaweiCPUValue(Record{"cpu_usage_rate": "12%", "cpu_usage": "99"}))
	assert.Equal(t, "N/A", huaweiCPUValue(Record{"other": "1"}))
}

// TestHuaweiMemoryPercent total_memory/used_memory 优先，
// 兼容 memory_total/memory_used，仅在 total > 0 时计算
func TestHuaweiMemoryPercent(t *testing.T) {
	assert.Equal(t, 25.0, huaweiMemoryPercent(Record{"total_memory": "1000", "used_memory": "250"}))
	assert.Equal(t, 50.0, huaweiMemoryPercent(Record{"memory_total": "200", "memory_used": "100"}))
	assert.Equal(t, "N/A", huaweiMemoryPercent(Record{"total_memory": "0", "used_memory": "250"}))
	assert.Equal(t, "N/A", huaweiMemoryPercent(Record{"total_memory": "abc", "used_memory": "250"}))
}

// TestApplyHuaweiEnrichment 汇总结果回写 cpu/内存两张表的首条记录
func TestApplyHuaweiEnrichment(t *testing.T) {
	doc := &Document{
		Platform: PlatformHuaweiVRP,
		Tables: map[string]Table{
			"display cpu-usage":    {{"cpu_usage_rate": "18.6"}},
			"display memory usage": {{"total_memory": "4000", "used_memory": "1000"}},
		},
		CPUMemory: NewCPUMemory(),
	}
	applyHuawei(doc)
	assert.Equal(t, "18", doc.CPUMemory.CPUAvg)
	assert.Equal(t, "N/A", doc.CPUMemory.CPUMax, "华为平台没有独立的 max 读数")
	assert.Equal(t, 25.0, doc.CPUMemory.MemoryUsagePercent)
	assert.Equal(t, "18", doc.Tables["display cpu-usage"][0]["cpu_avg"])
	assert.Equal(t, 25.0, doc.Tables["display memory usage"][0]["memory_usage_percent"])
}
