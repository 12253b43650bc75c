package scan

import (
	"reflect"
	"sync"
)

// 字段标记对应的结构体 tag
const (
	tagInject   = "inject"
	tagProperty = "prop"
	tagScope    = "scope"
)

// ScopePrototype 字段级 prototype 标记的 tag 值
const ScopePrototype = "prototype"

// FieldDescriptor 一个参与注入的字段的描述符，由 tag 解析得到。
// 引擎只消费描述符，不直接读 tag。
type FieldDescriptor struct {
	// Index 字段在结构体中的下标
	Index int
	// Name 字段名
	Name string
	// Type 字段声明类型
	Type reflect.Type
	// Inject 字段携带注入标记
	Inject bool
	// Qualifier 注入标记携带的限定名（inject tag 的值）
	Qualifier string
	// HasProperty 字段携带属性标记
	HasProperty bool
	// PropertyKey 属性键（prop tag 的值）
	PropertyKey string
	// Scope 原始 scope tag 值（""、"prototype" 或 "singleton"）
	Scope string
}

// Prototype 字段自身是否携带 prototype 标记
func (fd FieldDescriptor) Prototype() bool {
	return fd.Scope == ScopePrototype
}

// Scoped 字段是否携带任一作用域标记（提供者类型的自装配检查用）
func (fd FieldDescriptor) Scoped() bool {
	return fd.Scope != ""
}

// Marked 字段是否参与注入解析（注入标记或属性标记）
func (fd FieldDescriptor) Marked() bool {
	return fd.Inject || fd.HasProperty
}

// 解析结果按类型缓存，注入阶段对同一类型只解析一次 tag
var fieldCache sync.Map // reflect.Type -> []FieldDescriptor

// FieldsOf 返回类型全部声明字段的描述符，按声明顺序。
// 指针类型归一化到基础结构体；非结构体类型返回 nil。
func FieldsOf(t reflect.Type) []FieldDescriptor {
	base := baseType(t)
	if base == nil || base.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := fieldCache.Load(base); ok {
		return cached.([]FieldDescriptor)
	}

	fds := make([]FieldDescriptor, 0, base.NumField())
	for i := 0; i < base.NumField(); i++ {
		f := base.Field(i)
		fd := FieldDescriptor{
			Index: i,
			Name:  f.Name,
			Type:  f.Type,
		}
		if v, ok := f.Tag.Lookup(tagInject); ok {
			fd.Inject = true
			fd.Qualifier = v
		}
		if v, ok := f.Tag.Lookup(tagProperty); ok {
			fd.HasProperty = true
			fd.PropertyKey = v
		}
		if v, ok := f.Tag.Lookup(tagScope); ok {
			fd.Scope = v
		}
		fds = append(fds, fd)
	}

	fieldCache.Store(base, fds)
	return fds
}
