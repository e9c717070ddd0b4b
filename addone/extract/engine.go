package extract

import (
	"fmt"

	"github.com/netparserpro/netparserpro/internal/parser"
)

// Engine 基于模板注册表的结构化文本引擎，实现 parser.Engine。
// 模板未注册按错误返回，由装配器降级为空表
type Engine struct{}

// NewEngine 创建引擎实例
func NewEngine() *Engine {
	return &Engine{}
}

// Extract 查找并执行对应平台与模板的解析函数
func (e *Engine) Extract(platform parser.Platform, command, templateID, raw string) (parser.Table, error) {
	fn := Lookup(string(platform), templateID)
	if fn == nil {
		return nil, fmt.Errorf("no template %q registered for platform %q", templateID, platform)
	}
	return fn(raw), nil
}
