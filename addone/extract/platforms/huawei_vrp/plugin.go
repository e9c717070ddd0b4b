package huawei_vrp

import (
	"github.com/netparserpro/netparserpro/addone/extract"
)

func init() {
	extract.Register("huawei_vrp", "display_version", parseDisplayVersion)
	extract.Register("huawei_vrp", "display_interface", parseDisplayInterface)
	extract.Register("huawei_vrp", "display_cpu_usage", parseDisplayCPUUsage)
	extract.Register("huawei_vrp", "display_memory_usage", parseDisplayMemoryUsage)
	extract.Register("huawei_vrp", "display_device", parseDisplayDevice)
}
