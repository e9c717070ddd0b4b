package cisco_ios

import (
	"github.com/netparserpro/netparserpro/addone/extract"
)

func init() {
	extract.Register("cisco_ios", "show_version", parseShowVersion)
	extract.Register("cisco_ios", "show_inventory", parseShowInventory)
	extract.Register("cisco_ios", "show_interfaces", parseShowInterfaces)
	extract.Register("cisco_ios", "show_processes_memory_sorted", parseShowProcessesMemorySorted)
	extract.Register("cisco_ios", "show_processes_cpu_history", parseShowProcessesCPUHistory)
}
