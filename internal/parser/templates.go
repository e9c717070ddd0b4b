package parser

// TemplateRef 命令与解析模板的对应关系
type TemplateRef struct {
	Command    string
	TemplateID string
}

// commandTemplates 各平台的命令模板表（静态配置，进程启动后只读）。
// 未配置的命令不会出现在解析结果中
var commandTemplates = map[Platform][]TemplateRef{
	PlatformCiscoIOS: {
		{"show version", "show_version"},
		{"show inventory", "show_inventory"},
		{"show interfaces", "show_interfaces"},
		{"show processes memory sorted", "show_processes_memory_sorted"},
		{"show processes cpu history", "show_processes_cpu_history"},
	},
	PlatformCiscoNXOS: {
		{"show version", "show_version"},
		{"show inventory", "show_inventory"},
		{"show interface", "show_interface"},
		{"show system resources", "show_system_resources"},
	},
	PlatformArubaAOSCX: {
		{"show system", "show_system"},
		{"show inventory", "show_inventory"},
		{"show interface", "show_interface"},
	},
	PlatformHuaweiVRP: {
		{"display version", "display_version"},
		{"display interface", "display_interface"},
		{"display cpu-usage", "display_cpu_usage"},
		{"display memory usage", "display_memory_usage"},
		{"display device", "display_device"},
	},
	PlatformHuaweiYunShan: {
		{"display version", "display_version"},
		{"display interface", "display_interface"},
		{"display cpu-usage", "display_cpu_usage"},
		{"display memory usage", "display_memory_usage"},
		{"display device", "display_device"},
	},
}

// TemplatesFor 返回指定平台配置的命令模板列表（unknown 平台为空）
func TemplatesFor(platform Platform) []TemplateRef {
	return commandTemplates[platform]
}
