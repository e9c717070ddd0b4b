package cisco_ios

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	versionRegex   = regexp.MustCompile(`Cisco IOS.*Software.*Version\s+([^,\s]+)`)
	hostnameRegex  = regexp.MustCompile(`(?m)^(\S+)\s+uptime is\s+(.+)$`)
	serialRegex    = regexp.MustCompile(`(?im)^(?:System [Ss]erial [Nn]umber\s*:\s*|Processor board ID\s+)(\S+)`)
	hardwareRegex  = regexp.MustCompile(`(?im)^(?:Model [Nn]umber\s*:\s*(\S+)|cisco\s+(\S+)\s+\(.*\)\s+processor)`)
	configRegRegex = regexp.MustCompile(`Configuration register is\s+(\S+)`)
)

// 仅处理 show version 回显。serial 与 hardware 是列表字段：
// 堆叠设备的每个成员各占一行
func parseShowVersion(raw string) parser.Table {
	section := extract.CommandSection(raw, "show version")
	if section == "" {
		return nil
	}

	rec := parser.Record{
		"version":         extract.FirstMatch(versionRegex, section),
		"config_register": extract.FirstMatch(configRegRegex, section),
	}
	if m := hostnameRegex.FindStringSubmatch(section); len(m) > 2 {
		rec["hostname"] = m[1]
		rec["uptime"] = m[2]
	}

	serials := extract.AllMatches(serialRegex, section)
	if serials == nil {
		serials = []interface{}{}
	}
	rec["serial"] = serials

	hardware := []interface{}{}
	for _, m := range hardwareRegex.FindAllStringSubmatch(section, -1) {
		switch {
		case m[1] != "":
			hardware = append(hardware, m[1])
		case m[2] != "":
			hardware = append(hardware, m[2])
		}
	}
	rec["hardware"] = hardware

	return parser.Table{rec}
}
