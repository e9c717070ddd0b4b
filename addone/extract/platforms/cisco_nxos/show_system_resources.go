package cisco_nxos

import (
	"math"
	"regexp"
	"strconv"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	cpuStatesRegex   = regexp.MustCompile(`CPU states\s*:\s*([\d.]+)%\s*user,\s*([\d.]+)%\s*kernel,\s*([\d.]+)%\s*idle`)
	memoryUsageRegex = regexp.MustCompile(`Memory usage:\s*(\d+)K?\s+total,\s*(\d+)K?\s+used,\s*(\d+)K?\s+free`)
	loadAvgRegex     = regexp.MustCompile(`load average:\s*([\d.]+),\s*([\d.]+),\s*([\d.]+)`)
)

// 仅处理 show system resources 回显。该平台把利用率直接算成百分比字段，
// 汇总层原样读取首条记录
func parseShowSystemResources(raw string) parser.Table {
	section := extract.CommandSection(raw, "show system resources")
	if section == "" {
		return nil
	}

	rec := parser.Record{}
	if m := cpuStatesRegex.FindStringSubmatch(section); m != nil {
		rec["cpu_state_user"] = m[1]
		rec["cpu_state_kernel"] = m[2]
		rec["cpu_state_idle"] = m[3]
		if idle, err := strconv.ParseFloat(m[3], 64); err == nil {
			rec["cpu_usage_percent"] = round2(100 - idle)
		}
	}
	if m := memoryUsageRegex.FindStringSubmatch(section); m != nil {
		rec["memory_total"] = m[1]
		rec["memory_used"] = m[2]
		rec["memory_free"] = m[3]
		total, terr := strconv.ParseFloat(m[1], 64)
		used, uerr := strconv.ParseFloat(m[2], 64)
		if terr == nil && uerr == nil && total > 0 {
			rec["memory_usage_percent"] = round2(used / total * 100)
		}
	}
	if m := loadAvgRegex.FindStringSubmatch(section); m != nil {
		rec["load_avg_1min"] = m[1]
		rec["load_avg_5min"] = m[2]
		rec["load_avg_15min"] = m[3]
	}
	if len(rec) == 0 {
		return nil
	}
	return parser.Table{rec}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
