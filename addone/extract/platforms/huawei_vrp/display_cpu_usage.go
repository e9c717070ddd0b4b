package huawei_vrp

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	cpuUsageRateRegex = regexp.MustCompile(`(?i)CPU Usage\s*:\s*([\d.]+)%`)
	cpuUsageMaxRegex  = regexp.MustCompile(`(?i)Max\s*:\s*([\d.]+)%`)
)

// 仅处理 display cpu-usage 回显。VRP 模板输出 cpu_usage_rate 字段，
// 汇总层按兼容顺序探测
func parseDisplayCPUUsage(raw string) parser.Table {
	section := extract.CommandSection(raw, "display cpu-usage")
	if section == "" {
		return nil
	}
	rate := extract.FirstMatch(cpuUsageRateRegex, section)
	if rate == "" {
		return nil
	}
	rec := parser.Record{"cpu_usage_rate": rate}
	if max := extract.FirstMatch(cpuUsageMaxRegex, section); max != "" {
		rec["cpu_usage_max"] = max
	}
	return parser.Table{rec}
}
