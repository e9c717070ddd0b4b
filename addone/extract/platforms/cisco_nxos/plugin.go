package cisco_nxos

import (
	"github.com/netparserpro/netparserpro/addone/extract"
)

func init() {
	extract.Register("cisco_nxos", "show_version", parseShowVersion)
	extract.Register("cisco_nxos", "show_inventory", parseShowInventory)
	extract.Register("cisco_nxos", "show_interface", parseShowInterface)
	extract.Register("cisco_nxos", "show_system_resources", parseShowSystemResources)
}
