package parser

// Engine 结构化文本引擎接口：把一条命令的原始回显解析为记录列表。
// 单条命令失败只影响该命令的表，调用方负责降级为空表
type Engine interface {
	Extract(platform Platform, command, templateID, raw string) (Table, error)
}
