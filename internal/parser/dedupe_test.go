package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDedupeRecords 记录型元素按字段值对去重，保留首次出现的顺序
func TestDedupeRecords(t *testing.T) {
	tables := map[string]Table{
		"show inventory": {
			{"serial": []interface{}{
				map[string]interface{}{"sn": "A1"},
				map[string]interface{}{"sn": "A1"},
				map[string]interface{}{"sn": "B2"},
			}},
		},
	}
	Dedupe(tables)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"sn": "A1"},
		map[string]interface{}{"sn": "B2"},
	}, tables["show inventory"][0]["serial"])
}

// TestDedupeScalars 标量元素按原样比较去重
func TestDedupeScalars(t *testing.T) {
	tables := map[string]Table{
		"show version": {
			{"hardware": []interface{}{"C9300-48P", "C9300-48P", "C9300-24T"}},
			{"Serial": []interface{}{"FCW1", "FCW2", "FCW1"}},
		},
	}
	Dedupe(tables)
	assert.Equal(t, []interface{}{"C9300-48P", "C9300-24T"}, tables["show version"][0]["hardware"])
	// 键名比较忽略大小写
	assert.Equal(t, []interface{}{"FCW1", "FCW2"}, tables["show version"][1]["Serial"])
}

// TestDedupeNested 深层嵌套结构里的 serial/hardware 列表同样被处理
func TestDedupeNested(t *testing.T) {
	tables := map[string]Table{
		"display device": {
			{"slots": []interface{}{
				map[string]interface{}{
					"serial": []interface{}{"S1", "S1"},
				},
			}},
		},
	}
	Dedupe(tables)
	nested := tables["display device"][0]["slots"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"S1"}, nested["serial"])
}

// TestDedupeLeavesOtherKeys 其他键的列表不做去重
func TestDedupeLeavesOtherKeys(t *testing.T) {
	tables := map[string]Table{
		"show interfaces": {
			{"addresses": []interface{}{"10.0.0.1", "10.0.0.1"}},
		},
	}
	Dedupe(tables)
	assert.Equal(t, []interface{}{"10.0.0.1", "10.0.0.1"}, tables["show interfaces"][0]["addresses"])
}

// TestDedupeIdempotent 重复执行结果不变
func TestDedupeIdempotent(t *testing.T) {
	tables := map[string]Table{
		"show version": {
			{"serial": []interface{}{"A", "B", "A", "C"}},
		},
	}
	Dedupe(tables)
	first := tables["show version"][0]["serial"]
	Dedupe(tables)
	assert.Equal(t, first, tables["show version"][0]["serial"], "去重应是幂等的")
	assert.Equal(t, []interface{}{"A", "B", "C"}, first)
}

// TestDedupeScalarTypes 字面值相同但类型不同的标量不互相折叠
func TestDedupeScalarTypes(t *testing.T) {
	tables := map[string]Table{
		"show version": {
			{"serial": []interface{}{1, "1", 1, "1"}},
		},
	}
	Dedupe(tables)
	assert.Equal(t, []interface{}{1, "1"}, tables["show version"][0]["serial"])
}

// TestDedupeMixedElements 记录与标量字面值相同也不互相碰撞
func TestDedupeMixedElements(t *testing.T) {
	tables := map[string]Table{
		"show inventory": {
			{"serial": []interface{}{
				"sn=A1;",
				map[string]interface{}{"sn": "A1"},
			}},
		},
	}
	Dedupe(tables)
	assert.Len(t, tables["show inventory"][0]["serial"], 2)
}
