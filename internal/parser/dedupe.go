package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Dedupe 对整个表集合做结构化去重：凡是键名（忽略大小写）为 serial 或
// hardware 且值为列表的字段，替换为保序去重后的列表。引擎在重叠的输出
// 段里可能重复产出同一个硬件槽位或序列号，下游需要干净且顺序稳定的清单。
// 其余键值一律递归下钻。对同一文档重复执行结果不变
func Dedupe(tables map[string]Table) {
	for _, table := range tables {
		for _, rec := range table {
			dedupeRecord(rec)
		}
	}
}

func dedupeRecord(rec Record) {
	for key, value := range rec {
		lower := strings.ToLower(key)
		if lower == "serial" || lower == "hardware" {
			if items, ok := value.([]interface{}); ok {
				rec[key] = dedupeList(items)
				continue
			}
			if items, ok := value.([]string); ok {
				rec[key] = dedupeStrings(items)
				continue
			}
		}
		dedupeValue(value)
	}
}

// dedupeValue 递归下钻嵌套结构，处理深层出现的 serial/hardware 列表
func dedupeValue(value interface{}) {
	switch t := value.(type) {
	case Record:
		dedupeRecord(t)
	case map[string]interface{}:
		dedupeRecord(Record(t))
	case Table:
		for _, rec := range t {
			dedupeRecord(rec)
		}
	case []interface{}:
		for _, item := range t {
			dedupeValue(item)
		}
	}
}

// dedupeList 保序去重：记录型元素按排序后的字段值对比较，标量按原样比较
func dedupeList(items []interface{}) []interface{} {
	seen := make(map[string]struct{}, len(items))
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		key := dedupeKey(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// dedupeKey 生成元素的比较键。记录型元素用排序后的 k=v 序列，
// 标量用带类型前缀的字面值，避免记录与标量互相碰撞
func dedupeKey(item interface{}) string {
	var rec map[string]interface{}
	switch t := item.(type) {
	case Record:
		rec = t
	case map[string]interface{}:
		rec = t
	default:
		// 类型参与比较：数字 1 和字符串 "1" 是不同元素
		return fmt.Sprintf("s:%T:%v", item, item)
	}
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("m:")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v;", k, rec[k])
	}
	return b.String()
}
