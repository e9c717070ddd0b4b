package huawei_yunshan

import (
	"github.com/netparserpro/netparserpro/addone/extract"
)

func init() {
	extract.Register("huawei_yunshan", "display_version", parseDisplayVersion)
	extract.Register("huawei_yunshan", "display_interface", parseDisplayInterface)
	extract.Register("huawei_yunshan", "display_cpu_usage", parseDisplayCPUUsage)
	extract.Register("huawei_yunshan", "display_memory_usage", parseDisplayMemoryUsage)
	extract.Register("huawei_yunshan", "display_device", parseDisplayDevice)
}
