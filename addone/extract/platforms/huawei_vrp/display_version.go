package huawei_vrp

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	vrpVersionRegex = regexp.MustCompile(`VRP \(R\) [Ss]oftware, Version\s+([^\s(]+)(?:\s*\(([^)]+)\))?`)
	modelRegex      = regexp.MustCompile(`(?m)^(?:HUAWEI\s+)?(\S+)\s+(?:Routing Switch\s+)?uptime is\s+(.+)$`)
)

// 仅处理 display version 回显
func parseDisplayVersion(raw string) parser.Table {
	section := extract.CommandSection(raw, "display version")
	if section == "" {
		return nil
	}
	rec := parser.Record{}
	if m := vrpVersionRegex.FindStringSubmatch(section); m != nil {
		rec["version"] = m[1]
		rec["software"] = m[2]
	}
	if m := modelRegex.FindStringSubmatch(section); m != nil {
		rec["model"] = m[1]
		rec["uptime"] = m[2]
	}
	if len(rec) == 0 {
		return nil
	}
	return parser.Table{rec}
}
