package aruba_aoscx

import (
	"regexp"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	interfaceHeadRegex = regexp.MustCompile(`^Interface (\S+) is (\S+)`)
	linkStateRegex     = regexp.MustCompile(`Link state:\s*(\S+)`)
	arubaMacRegex      = regexp.MustCompile(`MAC Address:\s*(\S+)`)
	arubaMTURegex      = regexp.MustCompile(`MTU (\d+)`)
	arubaSpeedRegex    = regexp.MustCompile(`Speed\s*:?\s*(\S+)`)
)

// 仅处理 show interface 回显
func parseShowInterface(raw string) parser.Table {
	section := extract.CommandSection(raw, "show interface")
	if section == "" {
		return nil
	}

	var table parser.Table
	var current parser.Record
	var block strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		body := block.String()
		if v := extract.FirstMatch(linkStateRegex, body); v != "" {
			current["link_status"] = v
		}
		current["mac_address"] = extract.FirstMatch(arubaMacRegex, body)
		current["mtu"] = extract.FirstMatch(arubaMTURegex, body)
		current["speed"] = extract.FirstMatch(arubaSpeedRegex, body)
		table = append(table, current)
		current = nil
		block.Reset()
	}

	for _, ln := range strings.Split(section, "\n") {
		if m := interfaceHeadRegex.FindStringSubmatch(ln); m != nil {
			flush()
			current = parser.Record{
				"interface":   m[1],
				"link_status": m[2],
			}
			continue
		}
		if current != nil {
			block.WriteString(ln)
			block.WriteString("\n")
		}
	}
	flush()
	return table
}
