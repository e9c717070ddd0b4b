package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/netparserpro/netparserpro/api/handler"
	"github.com/netparserpro/netparserpro/internal/config"
	"github.com/netparserpro/netparserpro/internal/service"
	"github.com/netparserpro/netparserpro/pkg/logger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, parseService *service.ParseService) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由引擎
	r := gin.New()

	// 添加中间件
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())

	// 创建处理器
	captureHandler := handler.NewCaptureHandler(cfg, parseService)
	reportHandler := handler.NewReportHandler()

	// 根路径
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Net Parser Pro",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// 健康检查
	r.GET("/health", captureHandler.Health)

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", captureHandler.Health)

		// 抓取文件解析路由
		captures := v1.Group("/captures")
		{
			captures.POST("/upload", captureHandler.Upload)
			captures.POST("/parse", captureHandler.Parse)
			captures.GET("", captureHandler.List)
			captures.GET("/stats", captureHandler.Stats)
			captures.GET("/download", captureHandler.DownloadAll)
			captures.GET("/:id", captureHandler.Get)
			captures.GET("/:id/download", captureHandler.Download)
			captures.DELETE("/:id", captureHandler.Delete)
		}

		// 汇总报表路由
		reports := v1.Group("/reports")
		{
			reports.GET("/summary", reportHandler.Summary)
			reports.GET("/cpu-memory", reportHandler.CPUMemory)
			reports.GET("/inventory", reportHandler.Inventory)
			reports.GET("/interfaces", reportHandler.Interfaces)
		}
	}

	// 404处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "NOT_FOUND",
			"message": "接口不存在",
			"path":    c.Request.URL.Path,
		})
	})

	return r
}

// CORSMiddleware 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware 请求ID中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// LoggingMiddleware 日志中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 记录请求开始时间
		start := time.Now()

		// 处理请求
		c.Next()

		// 计算处理时间
		duration := time.Since(start)

		requestID := c.GetString("request_id")
		method := c.Request.Method
		path := c.Request.URL.Path
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"duration", duration,
			"client_ip", clientIP,
		)

		// 如果是错误状态码，记录错误日志
		if statusCode >= 400 {
			logger.Error("HTTP Error",
				"request_id", requestID,
				"method", method,
				"path", path,
				"status", statusCode,
				"duration", duration,
				"client_ip", clientIP,
			)
		}
	}
}

// generateRequestID 生成请求ID
func generateRequestID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
