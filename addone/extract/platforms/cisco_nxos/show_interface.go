package cisco_nxos

import (
	"regexp"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	interfaceHeadRegex = regexp.MustCompile(`^(\S+) is (up|down)(?:\s*\((.*)\))?`)
	hardwareLineRegex  = regexp.MustCompile(`Hardware:\s*([^,\n]+)`)
	nxosMacRegex       = regexp.MustCompile(`address:\s*(\S+)`)
	nxosMTURegex       = regexp.MustCompile(`MTU (\d+) bytes`)
	nxosSpeedRegex     = regexp.MustCompile(`(?i)duplex,\s*([^,\n]+)`)
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
		current["hardware_type"] = extract.FirstMatch(hardwareLineRegex, body)
		current["mac_address"] = extract.FirstMatch(nxosMacRegex, body)
		current["mtu"] = extract.FirstMatch(nxosMTURegex, body)
		current["speed"] = extract.FirstMatch(nxosSpeedRegex, body)
		table = append(table, current)
		current = nil
		block.Reset()
	}

	for _, ln := range strings.Split(section, "\n") {
		if m := interfaceHeadRegex.FindStringSubmatch(ln); m != nil && !strings.HasPrefix(ln, " ") {
			flush()
			current = parser.Record{
				"interface":   m[1],
				"link_status": m[2],
				"reason":      m[3],
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
