package huawei_yunshan

import (
	"regexp"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	interfaceStateRegex = regexp.MustCompile(`^(\S+) current state\s*:\s*(\S+(?: DOWN)?)`)
	protocolStateRegex  = regexp.MustCompile(`Line protocol current state\s*:\s*(\S+)`)
	bandwidthRegex      = regexp.MustCompile(`Current BW\s*:\s*(\S+)`)
	hwAddressRegex      = regexp.MustCompile(`Hardware address is\s+(\S+)`)
)

// 仅处理 display interface 回显
func parseDisplayInterface(raw string) parser.Table {
	section := extract.CommandSection(raw, "display interface")
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
		current["protocol_status"] = extract.FirstMatch(protocolStateRegex, body)
		current["bandwidth"] = extract.FirstMatch(bandwidthRegex, body)
		current["mac_address"] = extract.FirstMatch(hwAddressRegex, body)
		table = append(table, current)
		current = nil
		block.Reset()
	}

	for _, ln := range strings.Split(section, "\n") {
		if m := interfaceStateRegex.FindStringSubmatch(ln); m != nil && !strings.HasPrefix(ln, " ") {
			flush()
			current = parser.Record{
				"interface":   m[1],
				"link_status": strings.ToLower(m[2]),
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
