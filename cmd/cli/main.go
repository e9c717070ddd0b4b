package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/netparserpro/netparserpro/addone/extract"
	"github.com/netparserpro/netparserpro/internal/parser"
	"github.com/netparserpro/netparserpro/internal/util"

	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/aruba_aoscx"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/cisco_ios"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/cisco_nxos"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_vrp"
	_ "github.com/netparserpro/netparserpro/addone/extract/platforms/huawei_yunshan"
)

// 本地批量解析工具：离线解析抓取文件，不依赖服务端
func main() {
	var (
		input  = flag.String("input", "", "抓取文件或目录路径（必填）")
		output = flag.String("output", "parsed_output.json", "解析结果输出文件")
		pretty = flag.Bool("pretty", true, "输出缩进 JSON")
		exts   = flag.String("ext", ".txt,.log", "目录模式下处理的文件后缀，逗号分隔")
	)
	flag.Parse()

	if strings.TrimSpace(*input) == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -input <file|dir> [-output parsed_output.json]")
		os.Exit(2)
	}

	files, err := collectFiles(*input, parseExts(*exts))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list input: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no capture files found")
		os.Exit(1)
	}

	p := parser.New(extract.NewEngine())

	type entry struct {
		Filename string      `json:"filename"`
		Platform string      `json:"platform"`
		Data     interface{} `json:"data"`
	}
	var entries []entry
	failed := 0

	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
			failed++
			continue
		}
		content := util.EnsureUTF8Bytes(raw)
		doc := p.ParseCapture(content, filepath.Base(path))
		entries = append(entries, entry{
			Filename: doc.Filename,
			Platform: string(doc.Platform),
			Data:     doc.Data(),
		})
		fmt.Println(summaryLine(path, doc))
	}

	var data []byte
	if *pretty {
		data, err = json.MarshalIndent(entries, "", "  ")
	} else {
		data, err = json.Marshal(entries)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode results: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *output, err)
		os.Exit(1)
	}

	fmt.Printf("done: %d parsed, %d failed, output %s\n", len(entries), failed, *output)
	if failed > 0 {
		os.Exit(1)
	}
}

// summaryLine 单文件解析结果概要：平台与 CPU/内存汇总
func summaryLine(path string, doc *parser.Document) string {
	cm := doc.CPUMemory
	return fmt.Sprintf("parsed %s -> %s cpu_max=%v cpu_avg=%v memory_usage_percent=%v",
		path, doc.Platform, cm.CPUMax, cm.CPUAvg, cm.MemoryUsagePercent)
}

func parseExts(s string) map[string]bool {
	out := map[string]bool{}
	for _, e := range strings.Split(s, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out[e] = true
	}
	return out
}

func collectFiles(input string, exts map[string]bool) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	var files []string
	err = filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if exts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
