package cisco_nxos

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	nxosVersionRegex  = regexp.MustCompile(`(?i)(?:NXOS|system):\s+version\s+(\S+)`)
	deviceNameRegex   = regexp.MustCompile(`(?i)Device name:\s+(\S+)`)
	chassisRegex      = regexp.MustCompile(`(?i)cisco\s+(Nexus\S*\s*\S+)\s+Chassis`)
	processorIDRegex  = regexp.MustCompile(`(?i)Processor Board ID\s+(\S+)`)
	nxosUptimeRegex   = regexp.MustCompile(`(?i)Kernel uptime is\s+(.+)`)
	bootImageRegex    = regexp.MustCompile(`(?i)NXOS image file is:\s+(\S+)`)
)

// 仅处理 show version 回显
func parseShowVersion(raw string) parser.Table {
	section := extract.CommandSection(raw, "show version")
	if section == "" {
		return nil
	}
	serials := extract.AllMatches(processorIDRegex, section)
	if serials == nil {
		serials = []interface{}{}
	}
	return parser.Table{{
		"version":    extract.FirstMatch(nxosVersionRegex, section),
		"hostname":   extract.FirstMatch(deviceNameRegex, section),
		"platform":   extract.FirstMatch(chassisRegex, section),
		"uptime":     extract.FirstMatch(nxosUptimeRegex, section),
		"boot_image": extract.FirstMatch(bootImageRegex, section),
		"serial":     serials,
	}}
}
