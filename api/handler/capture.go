package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/netparserpro/netparserpro/internal/config"
	"github.com/netparserpro/netparserpro/internal/database"
	"github.com/netparserpro/netparserpro/internal/model"
	"github.com/netparserpro/netparserpro/internal/service"
	"github.com/netparserpro/netparserpro/internal/util"
	"github.com/netparserpro/netparserpro/pkg/cache"
	"github.com/netparserpro/netparserpro/pkg/logger"
)

// CaptureHandler 抓取文件处理器
type CaptureHandler struct {
	cfg   *config.Config
	parse *service.ParseService
}

// NewCaptureHandler 创建抓取文件处理器
func NewCaptureHandler(cfg *config.Config, parse *service.ParseService) *CaptureHandler {
	return &CaptureHandler{cfg: cfg, parse: parse}
}

// ParseRequest 直接提交文本的解析请求
type ParseRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content" binding:"required"`
	// Persist 为 true 时入库并归档，否则仅返回解析文档
	Persist bool `json:"persist"`
}

// Upload 上传抓取文件并解析
// @Summary 上传抓取文件
// @Description 上传一个或多个 CLI 抓取文件并解析入库
// @Tags capture
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} SuccessResponse "解析完成"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/v1/captures/upload [post]
func (h *CaptureHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_FORM",
			Message: "上传表单无效: " + err.Error(),
		})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "NO_FILES",
			Message: "未提供抓取文件",
		})
		return
	}

	var items []service.BatchItem
	for _, fh := range files {
		ext := filepath.Ext(fh.Filename)
		if !h.cfg.AllowedExtension(ext) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "UNSUPPORTED_EXTENSION",
				Message: "不支持的文件类型: " + fh.Filename,
			})
			return
		}
		if max := h.cfg.Parser.MaxFileSize; max > 0 && fh.Size > max {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "FILE_TOO_LARGE",
				Message: "文件超过大小限制: " + fh.Filename,
			})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    "READ_FAILED",
				Message: "读取上传文件失败: " + err.Error(),
			})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    "READ_FAILED",
				Message: "读取上传文件失败: " + err.Error(),
			})
			return
		}

		items = append(items, service.BatchItem{
			Filename: filepath.Base(fh.Filename),
			Content:  util.EnsureUTF8Bytes(data),
			Source:   "upload",
		})
	}

	results := h.parse.ParseBatch(c.Request.Context(), items)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	logger.Info("Capture upload processed", "total", len(results), "failed", failed)

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "解析完成",
		Data: gin.H{
			"total":   len(results),
			"failed":  failed,
			"results": results,
		},
	})
}

// Parse 解析提交的抓取文本
// @Summary 解析抓取文本
// @Description 直接提交抓取文本进行解析，可选持久化
// @Tags capture
// @Accept json
// @Produce json
// @Router /api/v1/captures/parse [post]
func (h *CaptureHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_PARAMS",
			Message: "解析参数无效: " + err.Error(),
		})
		return
	}

	if req.Persist {
		result, err := h.parse.ParseAndStore(c.Request.Context(), req.Filename, req.Content, "upload")
		if err != nil {
			logger.Error("Parse and store failed", "filename", req.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    "PARSE_FAILED",
				Message: "解析失败: " + err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, SuccessResponse{
			Code:    "SUCCESS",
			Message: "解析完成",
			Data:    result,
		})
		return
	}

	payload, cached, err := h.parse.ParseOne(c.Request.Context(), req.Filename, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "PARSE_FAILED",
			Message: "解析失败: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "解析完成",
		Data: gin.H{
			"cached":   cached,
			"document": payload,
		},
	})
}

// List 分页查询解析结果
// @Summary 查询解析结果列表
// @Tags capture
// @Produce json
// @Router /api/v1/captures [get]
func (h *CaptureHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	db := database.GetDB()
	query := db.Model(&model.ParseResult{})

	if platform := strings.TrimSpace(c.Query("platform")); platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if filename := strings.TrimSpace(c.Query("filename")); filename != "" {
		query = query.Where("filename LIKE ?", "%"+filename+"%")
	}
	if source := strings.TrimSpace(c.Query("source")); source != "" {
		query = query.Where("source = ?", source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询解析结果失败: " + err.Error(),
		})
		return
	}

	var results []model.ParseResult
	// 列表不返回完整文档，避免响应过大
	if err := query.Omit("document").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询解析结果失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "查询成功",
		Data: gin.H{
			"total":     total,
			"page":      page,
			"page_size": pageSize,
			"results":   results,
		},
	})
}

// Get 获取单个解析结果（含完整文档）
// @Summary 获取解析结果详情
// @Tags capture
// @Produce json
// @Router /api/v1/captures/{id} [get]
func (h *CaptureHandler) Get(c *gin.Context) {
	id := c.Param("id")
	db := database.GetDB()

	var result model.ParseResult
	if err := db.Where("id = ?", id).First(&result).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "解析结果不存在: " + id,
		})
		return
	}

	var document interface{}
	if result.Document != "" {
		if err := json.Unmarshal([]byte(result.Document), &document); err != nil {
			logger.Warn("Stored document unmarshal failed", "result_id", id, "error", err)
		}
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "查询成功",
		Data: gin.H{
			"result":   result,
			"document": document,
		},
	})
}

// Delete 删除解析结果
// @Summary 删除解析结果
// @Tags capture
// @Produce json
// @Router /api/v1/captures/{id} [delete]
func (h *CaptureHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	db := database.GetDB()

	res := db.Where("id = ?", id).Delete(&model.ParseResult{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "DELETE_FAILED",
			Message: "删除解析结果失败: " + res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "解析结果不存在: " + id,
		})
		return
	}

	logger.Info("Parse result deleted", "result_id", id)
	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "删除成功",
	})
}

// Download 下载解析文档（原始 JSON 附件）
// @Summary 下载解析文档
// @Tags capture
// @Produce json
// @Router /api/v1/captures/{id}/download [get]
func (h *CaptureHandler) Download(c *gin.Context) {
	id := c.Param("id")
	db := database.GetDB()

	var result model.ParseResult
	if err := db.Where("id = ?", id).First(&result).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "解析结果不存在: " + id,
		})
		return
	}

	filename := strings.TrimSuffix(result.Filename, filepath.Ext(result.Filename)) + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", []byte(result.Document))
}

// DownloadAll 聚合下载全部解析文档（parsed_output.json）
// @Summary 聚合下载解析文档
// @Tags capture
// @Produce json
// @Router /api/v1/captures/download [get]
func (h *CaptureHandler) DownloadAll(c *gin.Context) {
	db := database.GetDB()

	query := db.Model(&model.ParseResult{})
	if platform := strings.TrimSpace(c.Query("platform")); platform != "" {
		query = query.Where("platform = ?", platform)
	}

	var results []model.ParseResult
	if err := query.Order("created_at ASC").Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询解析结果失败: " + err.Error(),
		})
		return
	}

	docs := make([]interface{}, 0, len(results))
	for i := range results {
		var doc interface{}
		if err := json.Unmarshal([]byte(results[i].Document), &doc); err != nil {
			logger.Warn("Stored document unmarshal failed", "result_id", results[i].ID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "ENCODE_FAILED",
			Message: "聚合文档编码失败: " + err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="parsed_output.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Stats 服务统计
// @Summary 解析服务统计
// @Tags capture
// @Produce json
// @Router /api/v1/captures/stats [get]
func (h *CaptureHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "查询成功",
		Data: gin.H{
			"parser":   h.parse.GetStats(),
			"database": database.GetStats(),
			"cache":    cache.GetStats(c.Request.Context()),
		},
	})
}

// Health 健康检查
// @Summary 健康检查
// @Tags system
// @Produce json
// @Router /health [get]
func (h *CaptureHandler) Health(c *gin.Context) {
	status := "ok"
	components := gin.H{}

	if err := database.Health(); err != nil {
		status = "degraded"
		components["database"] = err.Error()
	} else {
		components["database"] = "ok"
	}

	if cache.Enabled() {
		if err := cache.Health(c.Request.Context()); err != nil {
			status = "degraded"
			components["cache"] = err.Error()
		} else {
			components["cache"] = "ok"
		}
	} else {
		components["cache"] = "disabled"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":     status,
		"components": components,
	})
}
