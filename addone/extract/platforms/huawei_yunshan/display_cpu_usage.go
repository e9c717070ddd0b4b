package huawei_yunshan

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var cpuUsageRegex = regexp.MustCompile(`(?i)CPU\s+[Uu]tilization\s*(?:for five seconds)?\s*:?\s*([\d.]+)%|CPU Usage\s*:\s*([\d.]+)%`)

// 仅处理 display cpu-usage 回显。YunShan 模板输出 cpu_usage 字段，
// 与 VRP 的 cpu_usage_rate 命名不同，汇总层靠兼容顺序抹平差异
func parseDisplayCPUUsage(raw string) parser.Table {
	section := extract.CommandSection(raw, "display cpu-usage")
	if section == "" {
		return nil
	}
	m := cpuUsageRegex.FindStringSubmatch(section)
	if m == nil {
		return nil
	}
	value := m[1]
	if value == "" {
		value = m[2]
	}
	return parser.Table{{"cpu_usage": value}}
}
