package parser

import (
	"fmt"

	"github.com/netparserpro/netparserpro/pkg/logger"
)

// Parser 文档装配器：串起平台检测、结构化提取、CPU/内存汇总与去重。
// 无跨调用共享状态，单个实例可被并发使用
type Parser struct {
	engine Engine
}

// New 创建装配器，engine 为结构化文本引擎实现
func New(engine Engine) *Parser {
	return &Parser{engine: engine}
}

// ParseCapture 解析一份抓取文本，返回完整文档。对任意输入都不报错：
// 所有失败形态都落在返回的文档结构里
func (p *Parser) ParseCapture(text, filename string) (doc *Document) {
	doc = &Document{
		Filename:  filename,
		Platform:  PlatformUnknown,
		Tables:    make(map[string]Table),
		CPUMemory: NewCPUMemory(),
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Capture parse recovered from panic", "filename", filename, "panic", fmt.Sprintf("%v", r))
			if doc.ErrorMessage == "" && len(doc.Tables) == 0 {
				doc.ErrorMessage = fmt.Sprintf("No templates configured for %s", doc.Platform)
			}
		}
	}()

	doc.Platform = Detect(text)

	refs := TemplatesFor(doc.Platform)
	if len(refs) == 0 {
		logger.Warn("No templates found for detected platform", "platform", doc.Platform, "filename", filename)
		doc.ErrorMessage = fmt.Sprintf("No templates configured for %s", doc.Platform)
		return doc
	}

	for _, ref := range refs {
		table, err := p.extract(doc.Platform, ref, text)
		if err != nil {
			// 单条命令失败只降级该命令的表，不影响其余命令
			logger.Warn("Failed to parse command", "command", ref.Command, "platform", doc.Platform, "error", err)
			table = Table{}
		}
		if table == nil {
			table = Table{}
		}
		doc.Tables[ref.Command] = table
	}

	p.applyCPUMemory(doc, text)
	Dedupe(doc.Tables)
	return doc
}

// extract 调用引擎并把 panic 也收敛为该命令自己的错误
func (p *Parser) extract(platform Platform, ref TemplateRef, text string) (table Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = fmt.Errorf("engine panicked on %s: %v", ref.TemplateID, r)
		}
	}()
	return p.engine.Extract(platform, ref.Command, ref.TemplateID, text)
}
