package aruba_aoscx

import (
	"regexp"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

// inventoryRowRegex 表格行：名称、产品号、序列号、描述
var inventoryRowRegex = regexp.MustCompile(`^(\S+(?: \d+)?)\s{2,}(\S+)\s{2,}(\S+)\s{2,}(.+?)\s*$`)

// 仅处理 show inventory 回显（表格布局）
func parseShowInventory(raw string) parser.Table {
	section := extract.CommandSection(raw, "show inventory")
	if section == "" {
		return nil
	}

	var table parser.Table
	inBody := false
	for _, ln := range strings.Split(section, "\n") {
		if strings.HasPrefix(strings.TrimSpace(ln), "---") {
			inBody = true
			continue
		}
		if !inBody {
			continue
		}
		if m := inventoryRowRegex.FindStringSubmatch(ln); m != nil {
			table = append(table, parser.Record{
				"name":           m[1],
				"product_number": m[2],
				"serial_number":  m[3],
				"description":    m[4],
			})
		}
	}
	return table
}
