package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/netparserpro/netparserpro/internal/database"
	"github.com/netparserpro/netparserpro/internal/model"
	"github.com/netparserpro/netparserpro/pkg/logger"
)

// ReportHandler 汇总报表处理器
type ReportHandler struct{}

// NewReportHandler 创建报表处理器
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// 文档中的表以命令原文为键，报表按平台选取对应命令的表

// versionTables 各平台承载序列号/硬件信息的命令
var versionTables = map[string]string{
	"cisco_ios":      "show version",
	"cisco_nxos":     "show version",
	"aruba_aoscx":    "show system",
	"huawei_vrp":     "display version",
	"huawei_yunshan": "display version",
}

// inventoryTables 各平台的部件清单命令
var inventoryTables = map[string]string{
	"cisco_ios":      "show inventory",
	"cisco_nxos":     "show inventory",
	"aruba_aoscx":    "show inventory",
	"huawei_vrp":     "display device",
	"huawei_yunshan": "display device",
}

// interfaceTables 各平台的接口状态命令
var interfaceTables = map[string]string{
	"cisco_ios":      "show interfaces",
	"cisco_nxos":     "show interface",
	"aruba_aoscx":    "show interface",
	"huawei_vrp":     "display interface",
	"huawei_yunshan": "display interface",
}

// Summary 平台分布与成功率汇总
// @Summary 解析汇总报表
// @Tags report
// @Produce json
// @Router /api/v1/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	db := database.GetDB()

	var total int64
	if err := db.Model(&model.ParseResult{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询汇总失败: " + err.Error(),
		})
		return
	}

	type platformCount struct {
		Platform string `json:"platform"`
		Count    int64  `json:"count"`
	}
	var byPlatform []platformCount
	if err := db.Model(&model.ParseResult{}).
		Select("platform, count(*) as count").
		Group("platform").
		Order("count DESC").
		Scan(&byPlatform).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询汇总失败: " + err.Error(),
		})
		return
	}

	var failed int64
	if err := db.Model(&model.ParseResult{}).
		Where("error_message <> ''").
		Count(&failed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询汇总失败: " + err.Error(),
		})
		return
	}

	// 每个文件的版本表首条记录，用于设备概览
	results, ok := loadResults(c)
	if !ok {
		return
	}
	type summaryRow struct {
		ID       string                 `json:"id"`
		Filename string                 `json:"filename"`
		Platform string                 `json:"platform"`
		Version  map[string]interface{} `json:"version,omitempty"`
	}
	rows := make([]summaryRow, 0, len(results))
	for i := range results {
		r := &results[i]
		row := summaryRow{ID: r.ID, Filename: r.Filename, Platform: r.Platform}
		if tables := documentTables(r); tables != nil {
			if vt, ok := versionTables[r.Platform]; ok {
				if recs := tableRecords(tables, vt); len(recs) > 0 {
					row.Version = recs[0]
				}
			}
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "查询成功",
		Data: gin.H{
			"total":       total,
			"failed":      failed,
			"by_platform": byPlatform,
			"rows":        rows,
		},
	})
}

// CPUMemory CPU与内存摘要报表（来自持久化的摘要列）
// @Summary CPU/内存报表
// @Tags report
// @Produce json
// @Router /api/v1/reports/cpu-memory [get]
func (h *ReportHandler) CPUMemory(c *gin.Context) {
	db := database.GetDB()

	query := db.Model(&model.ParseResult{}).Where("error_message = ''")
	if platform := strings.TrimSpace(c.Query("platform")); platform != "" {
		query = query.Where("platform = ?", platform)
	}

	var rows []model.ParseResult
	if err := query.Select("id, filename, platform, cpu_max, cpu_avg, memory_usage_percent, created_at").
		Order("created_at DESC").
		Limit(500).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询报表失败: " + err.Error(),
		})
		return
	}

	type cpuMemRow struct {
		ID                 string `json:"id"`
		Filename           string `json:"filename"`
		Platform           string `json:"platform"`
		CPUMax             string `json:"cpu_max"`
		CPUAvg             string `json:"cpu_avg"`
		MemoryUsagePercent string `json:"memory_usage_percent"`
	}
	out := make([]cpuMemRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, cpuMemRow{
			ID:                 r.ID,
			Filename:           r.Filename,
			Platform:           r.Platform,
			CPUMax:             r.CPUMax,
			CPUAvg:             r.CPUAvg,
			MemoryUsagePercent: r.MemoryUsagePercent,
		})
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "查询成功",
		Data:    gin.H{"rows": out},
	})
}

// documentTables 从持久化文档中取出表集合
func documentTables(result *model.ParseResult) map[string]interface{} {
	if result.Document == "" {
		return nil
	}
	var doc struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal([]byte(result.Document), &doc); err != nil {
		logger.Warn("Stored document unmarshal failed", "result_id", result.ID, "error", err)
		return nil
	}
	return doc.Data
}

// tableRecords 以记录列表形式返回指定表
func tableRecords(tables map[string]interface{}, name string) []map[string]interface{} {
	raw, ok := tables[name].([]interface{})
	if !ok {
		return nil
	}
	records := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if rec, ok := item.(map[string]interface{}); ok {
			records = append(records, rec)
		}
	}
	return records
}

// loadResults 报表共用的结果查询（platform/hostname 过滤，限量）。
// 抓取文件按主机名命名，hostname 参数按文件名子串匹配
func loadResults(c *gin.Context) ([]model.ParseResult, bool) {
	db := database.GetDB()
	query := db.Model(&model.ParseResult{}).Where("error_message = ''")
	if platform := strings.TrimSpace(c.Query("platform")); platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if hostname := strings.TrimSpace(c.Query("hostname")); hostname != "" {
		query = query.Where("filename LIKE ?", "%"+hostname+"%")
	}

	var results []model.ParseResult
	if err := query.Order("created_at DESC").Limit(200).Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "QUERY_FAILED",
			Message: "查询报表失败: " + err.Error(),
		})
		return nil, false
	}
	return results, true
}

// Inventory 设备部件与序列号清单报表
// @Summary 资产清单报表
// @Tags report
// @Produce json
// @Router /api/v1/reports/inventory [get]
func (h *ReportHandler) Inventory(c *gin.Context) {
	results, ok := loadResults(c)
	if !ok {
		return
	}

	type inventoryRow struct {
		ID       string                   `json:"id"`
		Filename string                   `json:"filename"`
		Platform string                   `json:"platform"`
		Serial   interface{}              `json:"serial,omitempty"`
		Hardware interface{}              `json:"hardware,omitempty"`
		Parts    []map[string]interface{} `json:"parts,omitempty"`
	}

	rows := make([]inventoryRow, 0, len(results))
	for i := range results {
		r := &results[i]
		tables := documentTables(r)
		if tables == nil {
			continue
		}

		row := inventoryRow{ID: r.ID, Filename: r.Filename, Platform: r.Platform}
		if vt, ok := versionTables[r.Platform]; ok {
			for _, rec := range tableRecords(tables, vt) {
				for key, value := range rec {
					switch strings.ToLower(key) {
					case "serial", "serial_number":
						row.Serial = value
					case "hardware":
						row.Hardware = value
					}
				}
			}
		}
		if it, ok := inventoryTables[r.Platform]; ok {
			row.Parts = tableRecords(tables, it)
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "查询成功",
		Data:    gin.H{"rows": rows},
	})
}

// Interfaces 接口状态统计报表
// @Summary 接口状态报表
// @Tags report
// @Produce json
// @Router /api/v1/reports/interfaces [get]
func (h *ReportHandler) Interfaces(c *gin.Context) {
	results, ok := loadResults(c)
	if !ok {
		return
	}

	type interfaceRow struct {
		ID          string                   `json:"id"`
		Filename    string                   `json:"filename"`
		Platform    string                   `json:"platform"`
		Total       int                      `json:"total"`
		Up          int                      `json:"up"`
		Down        int                      `json:"down"`
		AdminDown   int                      `json:"admin_down"`
		SpeedCounts map[string]int           `json:"speed_counts"`
		Interfaces  []map[string]interface{} `json:"interfaces,omitempty"`
	}
	detail := c.Query("detail") == "true"

	rows := make([]interfaceRow, 0, len(results))
	for i := range results {
		r := &results[i]
		tables := documentTables(r)
		if tables == nil {
			continue
		}
		tname, ok := interfaceTables[r.Platform]
		if !ok {
			continue
		}
		records := tableRecords(tables, tname)
		if len(records) == 0 {
			continue
		}

		row := interfaceRow{
			ID:          r.ID,
			Filename:    r.Filename,
			Platform:    r.Platform,
			Total:       len(records),
			SpeedCounts: make(map[string]int),
		}
		for _, rec := range records {
			status, _ := rec["link_status"].(string)
			switch {
			case strings.EqualFold(status, "up"):
				row.Up++
			case strings.Contains(strings.ToLower(status), "administratively"):
				row.AdminDown++
			default:
				row.Down++
			}
			row.SpeedCounts[speedBucket(rec)]++
		}
		if detail {
			row.Interfaces = records
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Code:    "SUCCESS",
		Message: "查询成功",
		Data:    gin.H{"rows": rows},
	})
}

// speedBucket 接口速率统计桶：优先取 speed，缺失时取 bandwidth，
// 统一小写，两者皆空归入 unknown
func speedBucket(rec map[string]interface{}) string {
	speed, _ := rec["speed"].(string)
	if strings.TrimSpace(speed) == "" {
		speed, _ = rec["bandwidth"].(string)
	}
	speed = strings.ToLower(strings.TrimSpace(speed))
	if speed == "" {
		return "unknown"
	}
	return speed
}
