package cisco_ios

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

// inventoryEntryRegex NAME/DESCR 行加随后的 PID/VID/SN 行构成一条资产记录
var inventoryEntryRegex = regexp.MustCompile(`(?m)^NAME:\s*"([^"]*)",\s*DESCR:\s*"([^"]*)"\s*\nPID:\s*(\S*)\s*,\s*VID:\s*(\S*)\s*,\s*SN:\s*(\S*)`)

// 仅处理 show inventory 回显
func parseShowInventory(raw string) parser.Table {
	section := extract.CommandSection(raw, "show inventory")
	if section == "" {
		return nil
	}

	var table parser.Table
	for _, m := range inventoryEntryRegex.FindAllStringSubmatch(section, -1) {
		table = append(table, parser.Record{
			"name":  m[1],
			"descr": m[2],
			"pid":   m[3],
			"vid":   m[4],
			"sn":    m[5],
		})
	}
	return table
}
