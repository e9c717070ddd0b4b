package model

import "time"

// ParseResult 单个抓取文件的解析结果
type ParseResult struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Filename string `json:"filename" gorm:"type:varchar(255);not null;index"`
	Platform string `json:"platform" gorm:"type:varchar(32);not null;index"`
	// Document 装配后的完整文档（JSON 文本）
	Document string `json:"document" gorm:"type:text"`
	// ContentHash 原始抓取文本的 SHA-256，十六进制
	ContentHash string `json:"content_hash" gorm:"type:varchar(64);index"`
	// CPUMax/CPUAvg/MemoryUsagePercent 摘要列，便于报表查询（文本，含 N/A 与错误串）
	CPUMax             string `json:"cpu_max" gorm:"type:varchar(64)"`
	CPUAvg             string `json:"cpu_avg" gorm:"type:varchar(64)"`
	MemoryUsagePercent string `json:"memory_usage_percent" gorm:"type:varchar(64)"`
	// ErrorMessage 平台无模板等装配错误（为空表示解析成功）
	ErrorMessage string `json:"error_message" gorm:"type:text"`
	// Source 来源：upload | ingest | cli
	Source    string    `json:"source" gorm:"type:varchar(16);default:'upload'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ParseResult) TableName() string {
	return "parse_results"
}
