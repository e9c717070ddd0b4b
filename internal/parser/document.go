package parser

import (
	"encoding/json"
)

// Record 一条结构化记录：字段名到标量值（或嵌套列表）的扁平映射
type Record map[string]interface{}

// Table 一条命令的结构化输出（有序，首条记录对版本类表有特殊意义）
type Table []Record

// CalculatedKey 文档中存放 CPU/内存汇总的保留键
const CalculatedKey = "Calculated_CPU_Memory"

// CPUMemory CPU/内存利用率汇总。三个字段始终存在：
// 值为数字、"N/A" 或一条简短的失败描述
type CPUMemory struct {
	CPUMax             interface{} `json:"cpu_max"`
	CPUAvg             interface{} `json:"cpu_avg"`
	MemoryUsagePercent interface{} `json:"memory_usage_percent"`
}

// NewCPUMemory 返回全 "N/A" 的默认汇总
func NewCPUMemory() CPUMemory {
	return CPUMemory{CPUMax: "N/A", CPUAvg: "N/A", MemoryUsagePercent: "N/A"}
}

// Document 单个抓取文件的完整解析结果
type Document struct {
	Platform  Platform
	Filename  string
	Tables    map[string]Table
	CPUMemory CPUMemory
	// ErrorMessage 非空时表示该平台没有配置任何模板，
	// 输出中 tables 仅包含一个 Error 键
	ErrorMessage string
}

// Data 按输出契约组装 tables 映射：各命令表加保留的汇总键，
// 或没有模板时的单键 Error 形态
func (d *Document) Data() map[string]interface{} {
	if d.ErrorMessage != "" {
		return map[string]interface{}{"Error": d.ErrorMessage}
	}
	out := make(map[string]interface{}, len(d.Tables)+1)
	for command, table := range d.Tables {
		out[command] = table
	}
	out[CalculatedKey] = d.CPUMemory
	return out
}

// MarshalJSON 输出下游消费的文档形态
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"platform": string(d.Platform),
		"filename": d.Filename,
		"tables":   d.Data(),
	})
}
