package cisco_ios

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

// cpuUtilizationRegex 图表前的利用率读数行（部分机型会在 history 输出前回显）
var cpuUtilizationRegex = regexp.MustCompile(`CPU utilization for five seconds:\s*(\d+)%(?:/(\d+)%)?;\s*one minute:\s*(\d+)%;\s*five minutes:\s*(\d+)%`)

// 仅处理 show processes cpu history 回显的数值读数行。
// 60 分钟图表本身由汇总层直接在原始文本上重建，不走模板
func parseShowProcessesCPUHistory(raw string) parser.Table {
	section := extract.CommandSection(raw, "show processes cpu history")
	if section == "" {
		return nil
	}
	m := cpuUtilizationRegex.FindStringSubmatch(section)
	if m == nil {
		return nil
	}
	return parser.Table{{
		"cpu_5_sec": m[1],
		"cpu_1_min": m[3],
		"cpu_5_min": m[4],
	}}
}
