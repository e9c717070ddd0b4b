package huawei_yunshan

import (
	"regexp"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var deviceRowRegex = regexp.MustCompile(`^\s*(\d+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s*$`)

// 仅处理 display device 回显
func parseDisplayDevice(raw string) parser.Table {
	section := extract.CommandSection(raw, "display device")
	if section == "" {
		return nil
	}
	var table parser.Table
	for _, ln := range strings.Split(section, "\n") {
		m := deviceRowRegex.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		table = append(table, parser.Record{
			"slot":     m[1],
			"sub":      m[2],
			"type":     m[3],
			"online":   m[4],
			"power":    m[5],
			"register": m[6],
			"status":   m[7],
			"role":     m[8],
		})
	}
	return table
}
