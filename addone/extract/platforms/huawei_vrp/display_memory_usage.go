package huawei_vrp

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	totalMemoryRegex   = regexp.MustCompile(`(?i)System Total Memory Is\s*:\s*(\d+)`)
	usedMemoryRegex    = regexp.MustCompile(`(?i)Total Memory Used Is\s*:\s*(\d+)`)
	memoryPercentRegex = regexp.MustCompile(`(?i)Memory Using Percentage Is\s*:\s*(\d+)%`)
)

// 仅处理 display memory usage 回显。VRP 模板输出 total_memory/used_memory 字段
func parseDisplayMemoryUsage(raw string) parser.Table {
	section := extract.CommandSection(raw, "display memory usage")
	if section == "" {
		return nil
	}
	rec := parser.Record{}
	if v := extract.FirstMatch(totalMemoryRegex, section); v != "" {
		rec["total_memory"] = v
	}
	if v := extract.FirstMatch(usedMemoryRegex, section); v != "" {
		rec["used_memory"] = v
	}
	if v := extract.FirstMatch(memoryPercentRegex, section); v != "" {
		rec["memory_using_percentage"] = v
	}
	if len(rec) == 0 {
		return nil
	}
	return parser.Table{rec}
}
