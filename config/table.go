// Package config 提供容器的属性层：属性源适配器与合并后的属性表。
package config

import (
	"os"
	"sort"
)

// Source 属性源接口。Load 返回一个扁平的 key→value 映射；
// 读取失败的源不会中断引导，由调用方跳过。
type Source interface {
	// Name 源的标识，用于日志
	Name() string
	// Load 加载全部键值对
	Load() (map[string]string, error)
}

// Table 合并后的属性表：扁平、保序的 key→string 映射。
// 引导完成后只读，可被任意并发读取。
type Table struct {
	keys   []string
	values map[string]string
}

// NewTable 创建空属性表
func NewTable() *Table {
	return &Table{
		values: make(map[string]string),
	}
}

// Merge 合并一批键值对。同键后写者生效，首次出现的顺序保留。
func (t *Table) Merge(data map[string]string) {
	// map 遍历无序，按 key 排序以保证合并结果可复现
	for _, key := range sortedKeys(data) {
		if _, exists := t.values[key]; !exists {
			t.keys = append(t.keys, key)
		}
		t.values[key] = data[key]
	}
}

// Set 写入单个键值对
func (t *Table) Set(key, value string) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// ApplyOverrides 对表中已有的每个键，若存在同名进程环境变量则用其覆盖。
func (t *Table) ApplyOverrides() {
	for _, key := range t.keys {
		if v, ok := os.LookupEnv(key); ok {
			t.values[key] = v
		}
	}
}

// Get 按键取值
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// GetWithDefault 按键取值，缺失时返回默认值
func (t *Table) GetWithDefault(key, defaultValue string) string {
	if v, ok := t.values[key]; ok {
		return v
	}
	return defaultValue
}

// Keys 返回全部键，按首次写入顺序
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len 返回键数量
func (t *Table) Len() int {
	return len(t.keys)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
