package huawei_yunshan

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	yunshanVersionRegex = regexp.MustCompile(`Huawei YunShan OS\s*(?:Software,)?\s*Version\s+([^\s(]+)(?:\s*\(([^)]+)\))?`)
	yunshanModelRegex   = regexp.MustCompile(`(?m)^(?:HUAWEI\s+)?(\S+)\s+uptime is\s+(.+)$`)
)

// 仅处理 display version 回显
func parseDisplayVersion(raw string) parser.Table {
	section := extract.CommandSection(raw, "display version")
	if section == "" {
		return nil
	}
	rec := parser.Record{}
	if m := yunshanVersionRegex.FindStringSubmatch(section); m != nil {
		rec["version"] = m[1]
		rec["software"] = m[2]
	}
	if m := yunshanModelRegex.FindStringSubmatch(section); m != nil {
		rec["model"] = m[1]
		rec["uptime"] = m[2]
	}
	if len(rec) == 0 {
		return nil
	}
	return parser.Table{rec}
}
