package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/netparserpro/netparserpro/internal/config"
	"github.com/netparserpro/netparserpro/internal/util"
	"github.com/netparserpro/netparserpro/pkg/logger"
)

// IngestService 监听收件目录，自动解析落盘的抓取文件
type IngestService struct {
	cfg   *config.Config
	parse *ParseService

	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewIngestService 创建收件目录监听服务
func NewIngestService(cfg *config.Config, parse *ParseService) *IngestService {
	return &IngestService{
		cfg:     cfg,
		parse:   parse,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}
}

// Start 启动监听。目录不存在时自动创建
func (s *IngestService) Start() error {
	dir := strings.TrimSpace(s.cfg.Ingest.Dir)
	if dir == "" {
		dir = "./data/inbox"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	go s.loop()
	logger.Info("Ingest watcher started", "dir", dir)

	// 启动时处理目录中已有的滞留文件
	go s.sweepExisting(dir)
	return nil
}

// Stop 停止监听
func (s *IngestService) Stop() error {
	close(s.stop)
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	<-s.done

	s.mu.Lock()
	for _, t := range s.pending {
		t.Stop()
	}
	s.pending = make(map[string]*time.Timer)
	s.mu.Unlock()

	logger.Info("Ingest watcher stopped")
	return nil
}

func (s *IngestService) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !s.accepts(event.Name) {
				continue
			}
			// 去抖：等待文件写入完成后再解析
			s.schedule(event.Name)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Ingest watcher error", "error", err)
		}
	}
}

// accepts 按配置后缀过滤文件
func (s *IngestService) accepts(path string) bool {
	return s.cfg.AllowedExtension(filepath.Ext(path))
}

// schedule 为文件注册去抖定时器；重复事件重置计时
func (s *IngestService) schedule(path string) {
	debounce := time.Duration(s.cfg.Ingest.DebounceMS) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.pending[path]; ok {
		t.Reset(debounce)
		return
	}
	s.pending[path] = time.AfterFunc(debounce, func() {
		s.mu.Lock()
		delete(s.pending, path)
		s.mu.Unlock()
		s.ingestFile(path)
	})
}

// sweepExisting 处理启动前已落盘的文件
func (s *IngestService) sweepExisting(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Ingest sweep failed", "dir", dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if s.accepts(path) {
			s.schedule(path)
		}
	}
}

// ingestFile 读取、解码并解析单个文件，成功后移除源文件
func (s *IngestService) ingestFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Ingest read failed", "file", path, "error", err)
		return
	}
	if max := s.cfg.Parser.MaxFileSize; max > 0 && int64(len(data)) > max {
		logger.Warn("Ingest file exceeds size limit", "file", path, "size", len(data))
		return
	}

	// 抓取文件可能带 GBK 等本地编码，统一转为 UTF-8
	content := util.EnsureUTF8Bytes(data)
	filename := filepath.Base(path)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := s.parse.ParseAndStore(ctx, filename, content, "ingest"); err != nil {
		logger.Error("Ingest parse failed", "file", path, "error", err)
		return
	}

	if err := os.Remove(path); err != nil {
		logger.Warn("Ingest cleanup failed", "file", path, "error", err)
	}
}
