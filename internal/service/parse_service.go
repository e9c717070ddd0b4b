package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/netparserpro/netparserpro/internal/config"
	"github.com/netparserpro/netparserpro/internal/database"
	"github.com/netparserpro/netparserpro/internal/model"
	"github.com/netparserpro/netparserpro/internal/parser"
	"github.com/netparserpro/netparserpro/pkg/cache"
	"github.com/netparserpro/netparserpro/pkg/logger"
)

// ParseService 抓取文件解析服务：并发解析、缓存、入库与归档
type ParseService struct {
	cfg     *config.Config
	parser  *parser.Parser
	storage StorageWriter

	// workers 并发槽位，容量为 parser.concurrent
	workers chan struct{}

	mu      sync.Mutex
	running bool
	stats   ParseStats
}

// ParseStats 服务运行统计
type ParseStats struct {
	Parsed    int64 `json:"parsed"`
	Failed    int64 `json:"failed"`
	CacheHits int64 `json:"cache_hits"`
}

// BatchItem 批量解析的单个输入
type BatchItem struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Source   string `json:"source"`
}

// BatchResult 批量解析的单个结果
type BatchResult struct {
	Filename string             `json:"filename"`
	Result   *model.ParseResult `json:"result,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// NewParseService 创建解析服务
func NewParseService(cfg *config.Config, p *parser.Parser, storage StorageWriter) *ParseService {
	concurrent := cfg.Parser.Concurrent
	if concurrent <= 0 {
		concurrent = 8
	}
	return &ParseService{
		cfg:     cfg,
		parser:  p,
		storage: storage,
		workers: make(chan struct{}, concurrent),
	}
}

// Start 启动解析服务
func (s *ParseService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("parse service already running")
	}
	s.running = true
	logger.Info("Parse service started", "concurrent", cap(s.workers))
	return nil
}

// Stop 停止解析服务，等待在途任务释放槽位
func (s *ParseService) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	// 占满全部槽位即代表在途任务已结束
	for i := 0; i < cap(s.workers); i++ {
		s.workers <- struct{}{}
	}
	for i := 0; i < cap(s.workers); i++ {
		<-s.workers
	}
	logger.Info("Parse service stopped")
	return nil
}

// cacheKey 按抓取内容哈希生成缓存键
func cacheKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "capture:parse:" + hex.EncodeToString(sum[:])
}

// ParseOne 解析单个抓取文本，命中缓存时直接返回缓存的文档
func (s *ParseService) ParseOne(ctx context.Context, filename, content string) (map[string]interface{}, bool, error) {
	key := cacheKey(content)

	if cache.Enabled() {
		if raw, ok, err := cache.GetString(ctx, key); err == nil && ok {
			var payload map[string]interface{}
			if uerr := json.Unmarshal([]byte(raw), &payload); uerr == nil {
				s.mu.Lock()
				s.stats.CacheHits++
				s.mu.Unlock()
				return payload, true, nil
			}
			// 缓存内容损坏则作废，重新解析
			_ = cache.Del(ctx, key)
		} else if err != nil {
			logger.Warn("Cache lookup failed", "error", err)
		}
	}

	doc := s.parser.ParseCapture(content, filename)
	payload := map[string]interface{}{
		"platform": string(doc.Platform),
		"filename": doc.Filename,
		"data":     doc.Data(),
	}

	if cache.Enabled() {
		if data, err := json.Marshal(payload); err == nil {
			if serr := cache.SetString(ctx, key, string(data), s.cfg.Parser.CacheTTL); serr != nil {
				logger.Warn("Cache store failed", "error", serr)
			}
		}
	}

	s.mu.Lock()
	s.stats.Parsed++
	s.mu.Unlock()
	return payload, false, nil
}

// ParseAndStore 解析并持久化：写入数据库摘要、归档原始抓取与解析文档
func (s *ParseService) ParseAndStore(ctx context.Context, filename, content, source string) (*model.ParseResult, error) {
	logger.DebugCaptureOutput(filename, content, 5)
	doc := s.parser.ParseCapture(content, filename)

	docJSON, err := json.Marshal(map[string]interface{}{
		"platform": string(doc.Platform),
		"filename": doc.Filename,
		"data":     doc.Data(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	sum := sha256.Sum256([]byte(content))
	result := &model.ParseResult{
		ID:                 uuid.New().String(),
		Filename:           filename,
		Platform:           string(doc.Platform),
		Document:           string(docJSON),
		ContentHash:        hex.EncodeToString(sum[:]),
		CPUMax:             fmt.Sprint(doc.CPUMemory.CPUMax),
		CPUAvg:             fmt.Sprint(doc.CPUMemory.CPUAvg),
		MemoryUsagePercent: fmt.Sprint(doc.CPUMemory.MemoryUsagePercent),
		ErrorMessage:       doc.ErrorMessage,
		Source:             source,
	}

	if err := database.WithRetry(func(tx *gorm.DB) error {
		return tx.Create(result).Error
	}, 3, 50*time.Millisecond); err != nil {
		s.mu.Lock()
		s.stats.Failed++
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to save parse result: %w", err)
	}

	// 归档失败不阻断解析流程，仅告警
	date := time.Now().Format("20060102")
	if _, werr := s.storage.Write(ctx, StorageMeta{
		ResultID:     result.ID,
		Platform:     result.Platform,
		Filename:     filename,
		Kind:         "raw",
		DateYYYYMMDD: date,
	}, content, ""); werr != nil {
		logger.Warn("Raw capture archive failed", "result_id", result.ID, "error", werr)
	}
	if _, werr := s.storage.Write(ctx, StorageMeta{
		ResultID:     result.ID,
		Platform:     result.Platform,
		Filename:     filename,
		Kind:         "parsed",
		DateYYYYMMDD: date,
	}, string(docJSON), "application/json"); werr != nil {
		logger.Warn("Parsed document archive failed", "result_id", result.ID, "error", werr)
	}

	s.mu.Lock()
	s.stats.Parsed++
	s.mu.Unlock()

	logger.Info("Capture parsed",
		"result_id", result.ID,
		"filename", filename,
		"platform", result.Platform,
		"source", source)
	return result, nil
}

// ParseBatch 并发解析一批抓取文件，单个失败不影响其余
func (s *ParseService) ParseBatch(ctx context.Context, items []BatchItem) []BatchResult {
	results := make([]BatchResult, len(items))
	var wg sync.WaitGroup

	for i := range items {
		wg.Add(1)
		go func(idx int, item BatchItem) {
			defer wg.Done()
			// 占用并发槽位
			s.workers <- struct{}{}
			defer func() { <-s.workers }()

			defer func() {
				if r := recover(); r != nil {
					logger.Error("Panic while parsing capture", "filename", item.Filename, "panic", r)
					results[idx] = BatchResult{Filename: item.Filename, Error: fmt.Sprintf("panic: %v", r)}
				}
			}()

			source := item.Source
			if source == "" {
				source = "upload"
			}
			res, err := s.ParseAndStore(ctx, item.Filename, item.Content, source)
			if err != nil {
				results[idx] = BatchResult{Filename: item.Filename, Error: err.Error()}
				return
			}
			results[idx] = BatchResult{Filename: item.Filename, Result: res}
		}(i, items[i])
	}

	wg.Wait()
	return results
}

// GetStats 获取服务统计
func (s *ParseService) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]interface{}{
		"running":    s.running,
		"concurrent": cap(s.workers),
		"in_flight":  len(s.workers),
		"parsed":     s.stats.Parsed,
		"failed":     s.stats.Failed,
		"cache_hits": s.stats.CacheHits,
	}
}
