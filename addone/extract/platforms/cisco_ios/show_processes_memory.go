package cisco_ios

import (
	"regexp"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
)

var (
	memoryPoolRegex    = regexp.MustCompile(`Processor Pool Total:\s*(\d+)\s+Used:\s*(\d+)\s+Free:\s*(\d+)`)
	memoryProcessRegex = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(.+?)\s*$`)
)

// 仅处理 show processes memory sorted 回显。总量字段随每条进程记录携带，
// 首条记录即为内存汇总的数据来源
func parseShowProcessesMemorySorted(raw string) parser.Table {
	section := extract.CommandSection(raw, "show processes memory sorted")
	if section == "" {
		return nil
	}

	pool := memoryPoolRegex.FindStringSubmatch(section)
	if pool == nil {
		return nil
	}
	total, used, free := pool[1], pool[2], pool[3]

	var table parser.Table
	for _, ln := range strings.Split(section, "\n") {
		m := memoryProcessRegex.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		table = append(table, parser.Record{
			"memory_total": total,
			"memory_used":  used,
			"memory_free":  free,
			"pid":          m[1],
			"tty":          m[2],
			"allocated":    m[3],
			"freed":        m[4],
			"holding":      m[5],
			"process":      m[8],
		})
	}
	if table == nil {
		// 进程行缺失时仍然给出一条汇总记录，内存百分比计算只依赖总量字段
		table = parser.Table{{
			"memory_total": total,
			"memory_used":  used,
			"memory_free":  free,
		}}
	}
	return table
}
