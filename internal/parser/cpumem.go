package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/netparserpro/netparserpro/pkg/logger"
)

// Cisco IOS 'show processes cpu history' 的 60 分钟窗口界标
const (
	ciscoCPUStartMarker = "last 60 minutes"
	ciscoCPUEndMarker   = "last 72 hours"
)

var (
	ciscoCPUWindowRegex = regexp.MustCompile(`(?s)` + ciscoCPUStartMarker + `(.*?)` + ciscoCPUEndMarker)
	nonDigitRegex       = regexp.MustCompile(`[^0-9]`)
)

// applyCPUMemory 按平台分支填充 CPU/内存汇总并回写相关表的首条记录。
// 任何分支内部失败只降级对应字段，绝不向外抛出
func (p *Parser) applyCPUMemory(doc *Document, text string) {
	switch doc.Platform {
	case PlatformCiscoIOS:
		applyCiscoIOS(doc, text)
	case PlatformCiscoNXOS:
		applyCiscoNXOS(doc)
	case PlatformArubaAOSCX:
		applyArubaAOSCX(doc)
	case PlatformHuaweiVRP, PlatformHuaweiYunShan:
		applyHuawei(doc)
	default:
		// unknown 等平台保持全 N/A 默认值
	}
}

// applyCiscoIOS CPU 走原始文本的历史图表重建，内存走
// 'show processes memory sorted' 表的首条记录
func applyCiscoIOS(doc *Document, text string) {
	cpuMax, cpuAvg := extractCiscoCPUUsage(text)
	doc.CPUMemory.CPUMax = cpuMax
	doc.CPUMemory.CPUAvg = cpuAvg

	table := doc.Tables["show processes memory sorted"]
	if len(table) == 0 || len(table[0]) == 0 {
		return
	}
	percent := ciscoMemoryPercent(table[0])
	doc.CPUMemory.MemoryUsagePercent = percent
	// 计算结果同时回写首条记录（富化，而不仅仅是汇总）
	table[0]["memory_usage_percent"] = percent
}

// extractCiscoCPUUsage 从 'show processes cpu history' 的 60 分钟窗口重建
// CPU 数值。窗口末尾两行是 ASCII 柱状图的两层数字栅格，逐列拼接两个字符
// 得到每个时间桶的两位利用率；整图低于 10% 时第一层为空白，只剩个位数字
func extractCiscoCPUUsage(text string) (cpuMax, cpuAvg interface{}) {
	m := ciscoCPUWindowRegex.FindStringSubmatch(text)
	if m == nil {
		// 窗口缺失与"无数据"是不同的失败形态，保留可区分的描述串
		return "Cannot find max CPU (regex failed)", "Cannot find average CPU (regex failed)"
	}
	window := m[1]
	body := tailAfterSplitN(window, 2)

	cpuMax = extractCiscoCPUMax(body)
	cpuAvg = extractCiscoCPUAvg(body)
	return cpuMax, cpuAvg
}

func extractCiscoCPUMax(body string) interface{} {
	section := headBeforeLastN(body, 13)
	lines := splitLines(section)
	if len(lines) < 2 {
		return "No numeric CPU max found"
	}
	firstRow := []rune(lines[len(lines)-2])
	secondRow := []rune(lines[len(lines)-1])
	if len(firstRow) > 4 {
		firstRow = firstRow[4:]
	} else {
		firstRow = nil
	}
	if len(secondRow) > 4 {
		secondRow = secondRow[4:]
	} else {
		secondRow = nil
	}

	var values []string
	switch {
	case len(firstRow) == 0 && len(secondRow) > 0:
		for _, c := range secondRow {
			if s := strings.TrimSpace(string(c)); s != "" {
				values = append(values, s)
			}
		}
	case len(firstRow) > 0 && len(secondRow) > 0:
		n := len(firstRow)
		if len(secondRow) < n {
			n = len(secondRow)
		}
		for i := 0; i < n; i++ {
			values = append(values, strings.TrimSpace(string(firstRow[i])+string(secondRow[i])))
		}
	}

	maxVal := -1
	for _, v := range values {
		if v == "" || !isDigits(v) {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn("Error converting Cisco CPU max value to int", "value", v)
			return "Error parsing CPU max"
		}
		if n > maxVal {
			maxVal = n
		}
	}
	if maxVal < 0 {
		return "No numeric CPU max found"
	}
	return strconv.Itoa(maxVal)
}

func extractCiscoCPUAvg(body string) interface{} {
	avgLines := splitLines(headBeforeLastN(body, 3))
	if len(avgLines) > 10 {
		avgLines = avgLines[len(avgLines)-10:]
	}
	var avgLine string
	found := false
	for _, ln := range avgLines {
		if strings.Contains(ln, "#") {
			avgLine = ln
			found = true
			break
		}
	}
	if !found {
		return "1"
	}
	extracted := nonDigitRegex.ReplaceAllString(avgLine, "")
	n, err := strconv.Atoi(extracted)
	if err != nil {
		logger.Warn("Error converting Cisco average CPU value to int", "value", extracted)
		return "Error parsing average CPU"
	}
	if n < 10 {
		// 个位数平均值压到图表的最小显示刻度
		return "1"
	}
	return strconv.Itoa(n)
}

// ciscoMemoryPercent 按 memory_used/memory_total 计算利用率百分比，
// 保留两位小数；total 为 0 或缺失时为 0，字段不可转换时为 "N/A"
func ciscoMemoryPercent(rec Record) interface{} {
	total, err := toInt(rec["memory_total"])
	if err != nil {
		logger.Error("Error calculating Cisco memory usage", "error", err, "data", fmt.Sprintf("%v", rec))
		return "N/A"
	}
	used, err := toInt(rec["memory_used"])
	if err != nil {
		logger.Error("Error calculating Cisco memory usage", "error", err, "data", fmt.Sprintf("%v", rec))
		return "N/A"
	}
	if total == 0 {
		return 0
	}
	return round2(float64(used) / float64(total) * 100)
}

// applyCiscoNXOS CPU 与内存都直接取自 'show system resources' 的首条记录，
// 该平台没有独立的 max/avg 区分，两个 CPU 字段取同一个值
func applyCiscoNXOS(doc *Document) {
	table := doc.Tables["show system resources"]
	if len(table) == 0 || len(table[0]) == 0 {
		return
	}
	rec := table[0]
	if v, ok := rec["cpu_usage_percent"]; ok {
		doc.CPUMemory.CPUMax = v
		doc.CPUMemory.CPUAvg = v
	}
	if v, ok := rec["memory_usage_percent"]; ok {
		doc.CPUMemory.MemoryUsagePercent = v
	}
}

// applyArubaAOSCX CPU 与内存都取自 'show system' 的首条记录；
// 值必须是纯数字才接受，防止单位后缀或占位文本混入
func applyArubaAOSCX(doc *Document) {
	table := doc.Tables["show system"]
	if len(table) == 0 || len(table[0]) == 0 {
		return
	}
	rec := table[0]
	result := map[string]interface{}{
		"cpu_max":              "N/A",
		"cpu_avg":              "N/A",
		"memory_usage_percent": "N/A",
	}
	if v, ok := rec["cpu"]; ok {
		s := strings.TrimSpace(asString(v))
		if isDigits(s) {
			result["cpu_max"] = s
			result["cpu_avg"] = s
		}
	}
	if v, ok := rec["memory_usage_percent"]; ok {
		s := strings.TrimSpace(asString(v))
		if isDigits(s) {
			result["memory_usage_percent"] = s
		}
	}
	doc.CPUMemory.CPUMax = result["cpu_max"]
	doc.CPUMemory.CPUAvg = result["cpu_avg"]
	doc.CPUMemory.MemoryUsagePercent = result["memory_usage_percent"]
	for k, v := range result {
		rec[k] = v
	}
}

// huaweiCPUKeys 'display cpu-usage' 字段名的兼容探测顺序（最具体的在前），
// 不同版本的模板字段命名存在漂移，保持该顺序不变
var huaweiCPUKeys = []string{"cpu_usage_rate", "cpu_usage_average", "cpu_usage"}

// applyHuawei VRP 与 YunShan 逻辑一致：CPU 取 'display cpu-usage' 首条记录，
// 内存取 'display memory usage' 首条记录并计算百分比
func applyHuawei(doc *Document) {
	if table := doc.Tables["display cpu-usage"]; len(table) > 0 && len(table[0]) > 0 {
		rec := table[0]
		cpuAvg := huaweiCPUValue(rec)
		doc.CPUMemory.CPUAvg = cpuAvg
		rec["cpu_avg"] = cpuAvg
	}
	if table := doc.Tables["display memory usage"]; len(table) > 0 && len(table[0]) > 0 {
		rec := table[0]
		percent := huaweiMemoryPercent(rec)
		doc.CPUMemory.MemoryUsagePercent = percent
		rec["memory_usage_percent"] = percent
	}
}

// huaweiCPUValue 按兼容顺序探测 CPU 字段，取第一个可解析为数字的值并截断为整数
func huaweiCPUValue(rec Record) interface{} {
	for _, key := range huaweiCPUKeys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		s := asString(v)
		if !isDigits(strings.Replace(s, ".", "", 1)) {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		return strconv.Itoa(int(f))
	}
	return "N/A"
}

// huaweiMemoryPercent total_memory/used_memory 优先，兼容 memory_total/memory_used；
// 仅在 total > 0 时计算
func huaweiMemoryPercent(rec Record) interface{} {
	total, err := toIntWithFallback(rec, "total_memory", "memory_total")
	if err != nil {
		logger.Warn("Error processing Huawei memory data", "error", err, "data", fmt.Sprintf("%v", rec))
		return "N/A"
	}
	used, err := toIntWithFallback(rec, "used_memory", "memory_used")
	if err != nil {
		logger.Warn("Error processing Huawei memory data", "error", err, "data", fmt.Sprintf("%v", rec))
		return "N/A"
	}
	if total <= 0 {
		return "N/A"
	}
	return round2(float64(used) / float64(total) * 100)
}

// --- 通用小工具 ---

// tailAfterSplitN 取按前 n-1 个换行切分后的最后一段
func tailAfterSplitN(s string, n int) string {
	parts := strings.SplitN(s, "\n", n+1)
	return parts[len(parts)-1]
}

// headBeforeLastN 去掉末尾最多 n 个换行分段，返回剩余头部
func headBeforeLastN(s string, n int) string {
	idx := len(s)
	for i := 0; i < n; i++ {
		j := strings.LastIndex(s[:idx], "\n")
		if j < 0 {
			break
		}
		idx = j
	}
	return s[:idx]
}

// splitLines 按换行切分，忽略末尾换行产生的空段
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toInt 把引擎产出的标量转换为整数；缺失（nil）按 0 处理
func toInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func toIntWithFallback(rec Record, key, fallback string) (int, error) {
	if v, ok := rec[key]; ok {
		return toInt(v)
	}
	return toInt(rec[fallback])
}
