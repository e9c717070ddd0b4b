package main

// 引入提取平台插件，触发各平台的 init() 完成模板注册
import (
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/aruba_aoscx"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/cisco_ios"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/cisco_nxos"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_vrp"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_yunshan"
)
