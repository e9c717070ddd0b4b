package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/api/router"
	"github.com/netparserpro/netparserpro/internal/config"
	"github.com/netparserpro/netparserpro/internal/database"
	"github.com/netparserpro/netparserpro/internal/parser"
	"github.com/netparserpro/netparserpro/internal/service"

	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/aruba_aoscx"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/cisco_ios"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/cisco_nxos"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_vrp"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_yunshan"
)

var (
	apiOnce sync.Once
	apiErr  error
	testAPI *gin.Engine
)

const arubaCapture = `edge-01# show system
ArubaOS-CX Version : FL.10.08.1010
Hostname           : edge-01
Product Name       : JL658A 6300M
Chassis Serial Nbr : SG1234567
CPU Util (%)       : 7
Memory Usage (%)   : 42
edge-01# show interface
Interface 1/1/1 is up
 Speed: 1000Mb/s
Interface 1/1/2 is down
`

// setupAPI 构建完整路由（真实引擎 + 临时 SQLite）
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	apiOnce.Do(func() {
		baseDir, err := os.MkdirTemp("", "capture-handler-test-")
		if err != nil {
			apiErr = err
			return
		}
		if apiErr = database.InitSQLite(config.SQLiteConfig{
			Path:            filepath.Join(baseDir, "test.db"),
			ConnMaxLifetime: time.Hour,
		}); apiErr != nil {
			return
		}

		cfg := &config.Config{}
		cfg.Server.Mode = "release"
		cfg.Parser.Concurrent = 4
		cfg.Parser.AllowedExtensions = []string{".txt", ".log"}
		cfg.Parser.CacheTTL = time.Hour
		cfg.Storage.Backend = "local"
		cfg.Storage.Local.BaseDir = filepath.Join(baseDir, "parsed")
		cfg.Storage.Local.MkdirIfMissing = true

		p := parser.New(extract.NewEngine())
		parseService := service.NewParseService(cfg, p, service.NewStorageWriter(cfg))
		testAPI = router.SetupRouter(cfg, parseService)
	})
	require.NoError(t, apiErr, "测试路由初始化失败")
	return testAPI
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

// TestHealthEndpoint 健康检查返回组件状态
func TestHealthEndpoint(t *testing.T) {
	r := setupAPI(t)
	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
	components, ok := resp["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", components["database"])
	assert.Equal(t, "disabled", components["cache"])
}

// TestParseEndpoint 直接提交文本解析（不持久化）
func TestParseEndpoint(t *testing.T) {
	r := setupAPI(t)
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/captures/parse", map[string]interface{}{
		"filename": "edge-01.txt",
		"content":  arubaCapture,
	})

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	doc := data["document"].(map[string]interface{})
	assert.Equal(t, "aruba_aoscx", doc["platform"])
	assert.Equal(t, "edge-01.txt", doc["filename"])

	tables := doc["data"].(map[string]interface{})
	summary, ok := tables["Calculated_CPU_Memory"].(map[string]interface{})
	require.True(t, ok, "缺少 CPU/内存摘要")
	assert.Equal(t, "7", summary["cpu_max"])
	assert.Equal(t, "42", summary["memory_usage_percent"])
}

// TestParseEndpointValidation 缺少必填参数返回 400
func TestParseEndpointValidation(t *testing.T) {
	r := setupAPI(t)
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/captures/parse", map[string]interface{}{
		"filename": "edge-01.txt",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PARAMS", resp["code"])
}

// TestCaptureLifecycle 持久化、查询、下载与删除
func TestCaptureLifecycle(t *testing.T) {
	r := setupAPI(t)

	// 持久化解析
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/captures/parse", map[string]interface{}{
		"filename": "lifecycle.txt",
		"content":  arubaCapture,
		"persist":  true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	result := resp["data"].(map[string]interface{})
	id, _ := result["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "aruba_aoscx", result["platform"])

	// 详情
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/captures/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 列表
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/captures?platform=aruba_aoscx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].(map[string]interface{})
	assert.GreaterOrEqual(t, list["total"].(float64), float64(1))

	// 下载
	req := httptest.NewRequest(http.MethodGet, "/api/v1/captures/"+id+"/download", nil)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, req)
	require.Equal(t, http.StatusOK, dw.Code)
	assert.Contains(t, dw.Header().Get("Content-Disposition"), "lifecycle.json")

	// 删除后查询返回 404
	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/captures/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/captures/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// TestUploadRejectsExtension 不支持的文件类型被拒绝
func TestUploadRejectsExtension(t *testing.T) {
	r := setupAPI(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "capture.pcap")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("binary"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/captures/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_EXTENSION", resp["code"])
}

// TestUploadAndReports 上传后报表可见
func TestUploadAndReports(t *testing.T) {
	r := setupAPI(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "report-edge.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte(arubaCapture))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/captures/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// 汇总报表
	sw, resp := doJSON(t, r, http.MethodGet, "/api/v1/reports/summary", nil)
	require.Equal(t, http.StatusOK, sw.Code)
	data := resp["data"].(map[string]interface{})
	assert.GreaterOrEqual(t, data["total"].(float64), float64(1))

	// CPU/内存报表含上传的行
	cw, resp := doJSON(t, r, http.MethodGet, "/api/v1/reports/cpu-memory?platform=aruba_aoscx", nil)
	require.Equal(t, http.StatusOK, cw.Code)
	rows := resp["data"].(map[string]interface{})["rows"].([]interface{})
	require.NotEmpty(t, rows)
	found := false
	for _, raw := range rows {
		row := raw.(map[string]interface{})
		if row["filename"] == "report-edge.txt" {
			found = true
			assert.Equal(t, "7", row["cpu_max"])
			assert.Equal(t, "42", row["memory_usage_percent"])
		}
	}
	assert.True(t, found, "报表中找不到上传的抓取")

	// 接口状态报表
	iw, resp := doJSON(t, r, http.MethodGet, "/api/v1/reports/interfaces?platform=aruba_aoscx", nil)
	require.Equal(t, http.StatusOK, iw.Code)
	irows := resp["data"].(map[string]interface{})["rows"].([]interface{})
	require.NotEmpty(t, irows)
	first := irows[0].(map[string]interface{})
	assert.Equal(t, float64(2), first["total"])
	assert.Equal(t, float64(1), first["up"])

	// 速率分布：有 Speed 行的接口计入对应桶，缺失的归入 unknown
	speedCounts := first["speed_counts"].(map[string]interface{})
	assert.Equal(t, float64(1), speedCounts["1000mb/s"])
	assert.Equal(t, float64(1), speedCounts["unknown"])
}
