package extract

import "sync"

var (
	registryMu sync.RWMutex
	registry   = map[string]TemplateFunc{}
)

func templateKey(platform, templateID string) string {
	return platform + "/" + templateID
}

// Register 注册模板函数，由各平台包的 init() 调用
func Register(platform, templateID string, fn TemplateFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[templateKey(platform, templateID)] = fn
}

// Lookup 获取指定平台与模板的解析函数，未注册返回 nil
func Lookup(platform, templateID string) TemplateFunc {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[templateKey(platform, templateID)]
}
