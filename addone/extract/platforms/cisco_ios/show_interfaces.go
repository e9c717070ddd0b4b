package cisco_ios

import (
	"regexp"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	interfaceHeadRegex = regexp.MustCompile(`^(\S+) is (up|down|administratively down), line protocol is (\S+)`)
	hardwareTypeRegex  = regexp.MustCompile(`Hardware is ([^,\n]+)`)
	macAddressRegex    = regexp.MustCompile(`address is (\S+?)\b`)
	mtuRegex           = regexp.MustCompile(`MTU (\d+) bytes`)
	bandwidthRegex     = regexp.MustCompile(`BW (\d+ [KMG]bit)`)
	speedRegex         = regexp.MustCompile(`(?i)(\d+Mb/s|\d+Gb/s|Auto-speed)`)
)

// 仅处理 show interfaces 回显：每个接口块以接口状态行开头
func parseShowInterfaces(raw string) parser.Table {
	section := extract.CommandSection(raw, "show interfaces")
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
		current["hardware_type"] = extract.FirstMatch(hardwareTypeRegex, body)
		current["mac_address"] = extract.FirstMatch(macAddressRegex, body)
		current["mtu"] = extract.FirstMatch(mtuRegex, body)
		current["bandwidth"] = extract.FirstMatch(bandwidthRegex, body)
		current["speed"] = extract.FirstMatch(speedRegex, body)
		table = append(table, current)
		current = nil
		block.Reset()
	}

	for _, ln := range strings.Split(section, "\n") {
		if m := interfaceHeadRegex.FindStringSubmatch(ln); m != nil {
			flush()
			current = parser.Record{
				"interface":       m[1],
				"link_status":     m[2],
				"protocol_status": m[3],
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
