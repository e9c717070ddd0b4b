package extract

import (
	"github.com/netparserpro/netparserpro/internal/parser"
)

// TemplateFunc 模板函数：把整份抓取文本解析为某条命令的记录列表。
// 找不到对应命令段时返回空
type TemplateFunc func(raw string) parser.Table
