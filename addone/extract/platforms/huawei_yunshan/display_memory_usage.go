package huawei_yunshan

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	memoryTotalRegex = regexp.MustCompile(`(?i)(?:System )?Total Memory(?: Is)?\s*:\s*(\d+)`)
	memoryUsedRegex  = regexp.MustCompile(`(?i)(?:Total )?Memory Used(?: Is)?\s*:\s*(\d+)`)
)

// 仅处理 display memory usage 回显。YunShan 模板输出 memory_total/memory_used，
// 汇总层按兼容键名读取
func parseDisplayMemoryUsage(raw string) parser.Table {
	section := extract.CommandSection(raw, "display memory usage")
	if section == "" {
		return nil
	}
	rec := parser.Record{}
	if v := extract.FirstMatch(memoryTotalRegex, section); v != "" {
		rec["memory_total"] = v
	}
	if v := extract.FirstMatch(memoryUsedRegex, section); v != "" {
		rec["memory_used"] = v
	}
	if len(rec) == 0 {
		return nil
	}
	return parser.Table{rec}
}
