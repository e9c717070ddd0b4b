package aruba_aoscx

import (
	"github.com/netparserpro/netparserpro/addone/extract"
)

func init() {
	extract.Register("aruba_aoscx", "show_system", parseShowSystem)
	extract.Register("aruba_aoscx", "show_inventory", parseShowInventory)
	extract.Register("aruba_aoscx", "show_interface", parseShowInterface)
}
