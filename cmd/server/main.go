package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/api/router"
	"github.com/netparserpro/netparserpro/internal/config"
	"github.com/netparserpro/netparserpro/internal/database"
	"github.com/netparserpro/netparserpro/internal/parser"
	"github.com/netparserpro/netparserpro/internal/service"
	"github.com/netparserpro/netparserpro/pkg/cache"
	"github.com/netparserpro/netparserpro/pkg/logger"
)

func main() {
	// 加载配置
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting Net Parser Pro Server", "version", "1.0.0")
	logger.Info("Parser concurrency", "workers", cfg.Parser.Concurrent)

	// 初始化数据库
	if err := database.InitSQLite(cfg.Database.SQLite); err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()

	// 初始化缓存（Host 为空时自动跳过）
	if err := cache.InitRedis(cfg.Cache.Redis); err != nil {
		logger.Warn("Redis cache unavailable, continuing without cache", "error", err)
	}
	defer cache.Close()

	// 创建解析服务
	p := parser.New(extract.NewEngine())
	parseService := service.NewParseService(cfg, p, service.NewStorageWriter(cfg))
	if err := parseService.Start(); err != nil {
		logger.Fatal("Failed to start parse service", "error", err)
	}
	defer parseService.Stop()

	// 收件目录自动解析（可选）。热重载会动态启停，用锁保护共享的实例
	var (
		ingestMu sync.Mutex
		ingest   *service.IngestService
	)
	if cfg.Ingest.Enabled {
		ingest = service.NewIngestService(cfg, parseService)
		if err := ingest.Start(); err != nil {
			logger.Warn("Ingest watcher failed to start", "error", err)
			ingest = nil
		}
	}
	defer func() {
		ingestMu.Lock()
		defer ingestMu.Unlock()
		if ingest != nil {
			_ = ingest.Stop()
		}
	}()

	// 设置路由
	r := router.SetupRouter(cfg, parseService)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	// 启动服务器
	go func() {
		logger.Info("Server starting", "port", cfg.Server.Port, "mode", cfg.Server.Mode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// 配置文件监听与热更新
	go func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			logger.Warn("Config watch init failed", "error", err)
			return
		}
		defer watcher.Close()
		path := "configs/config.yaml"
		if err := watcher.Add(path); err != nil {
			logger.Warn("Config watch add failed", "error", err)
			return
		}
		var debounce *time.Timer
		debounceInterval := 300 * time.Millisecond
		trigger := func() {
			// Load 写入新的全局快照；启动时拿到的 cfg 保持只读，
			// 正在处理请求的各组件不受并发写影响
			newCfg, err := config.Load(path)
			if err != nil {
				logger.Warn("Config reload failed", "error", err)
				return
			}
			// 刷新日志配置
			_ = logger.Init(logger.Config{
				Level:      newCfg.Log.Level,
				Format:     newCfg.Log.Format,
				Output:     newCfg.Log.Output,
				FilePath:   newCfg.Log.FilePath,
				MaxSize:    newCfg.Log.MaxSize,
				MaxBackups: newCfg.Log.MaxBackups,
				MaxAge:     newCfg.Log.MaxAge,
				Compress:   newCfg.Log.Compress,
			})
			logger.Info("Config reloaded")
			// 收件目录开关变化时动态启停
			ingestMu.Lock()
			defer ingestMu.Unlock()
			if newCfg.Ingest.Enabled && ingest == nil {
				ingest = service.NewIngestService(newCfg, parseService)
				if err := ingest.Start(); err != nil {
					logger.Warn("Ingest watcher failed to start on config reload", "error", err)
					ingest = nil
				} else {
					logger.Info("Ingest watcher started by config reload")
				}
			} else if !newCfg.Ingest.Enabled && ingest != nil {
				_ = ingest.Stop()
				ingest = nil
				logger.Info("Ingest watcher stopped by config reload")
			}
		}
		for {
			select {
			case ev := <-watcher.Events:
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					if debounce != nil {
						debounce.Stop()
					}
					debounce = time.AfterFunc(debounceInterval, trigger)
				}
			case err := <-watcher.Errors:
				logger.Warn("Config watch error", "error", err)
			}
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")

	// 优雅关闭服务器
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	} else {
		logger.Info("Server shutdown complete")
	}
}
