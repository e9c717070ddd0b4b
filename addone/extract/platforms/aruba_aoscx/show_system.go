package aruba_aoscx

import (
	"regexp"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	sysHostnameRegex = regexp.MustCompile(`(?im)^Hostname\s*:\s*(\S+)`)
	productNameRegex = regexp.MustCompile(`(?im)^Product Name\s*:\s*(.+)$`)
	chassisSnRegex   = regexp.MustCompile(`(?im)^Chassis Serial Nbr\s*:\s*(\S+)`)
	sysVersionRegex  = regexp.MustCompile(`(?im)^ArubaOS-CX Version\s*:\s*(\S+)`)
	cpuUtilRegex     = regexp.MustCompile(`(?im)^CPU Util(?:ization)?\s*\(%\)\s*:\s*(\S+)`)
	memUsageRegex    = regexp.MustCompile(`(?im)^Memory Usage\s*\(%\)\s*:\s*(\S+)`)
	sysUptimeRegex   = regexp.MustCompile(`(?im)^Up Time\s*:\s*(.+)$`)
)

// 仅处理 show system 回显。cpu 与 memory_usage_percent 供汇总层读取，
// 值原样保留，是否纯数字由汇总层把关
func parseShowSystem(raw string) parser.Table {
	section := extract.CommandSection(raw, "show system")
	if section == "" {
		return nil
	}
	return parser.Table{{
		"hostname":             extract.FirstMatch(sysHostnameRegex, section),
		"product_name":         extract.FirstMatch(productNameRegex, section),
		"serial_number":        extract.FirstMatch(chassisSnRegex, section),
		"version":              extract.FirstMatch(sysVersionRegex, section),
		"uptime":               extract.FirstMatch(sysUptimeRegex, section),
		"cpu":                  extract.FirstMatch(cpuUtilRegex, section),
		"memory_usage_percent": extract.FirstMatch(memUsageRegex, section),
	}}
}
