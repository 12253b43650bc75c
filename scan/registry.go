package scan

import (
	"reflect"
	"sync"
)

// Registry 描述符注册表。注册顺序保序，查找按基础类型归一化。
// 注册阶段由各包的 init 或显式调用完成；扫描阶段只读。
type Registry struct {
	mu      sync.RWMutex
	ordered []*TypeDescriptor
	byType  map[reflect.Type]*TypeDescriptor
}

// NewRegistry 创建一个空的注册表（测试中常用，避免共享全局状态）
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*TypeDescriptor),
	}
}

var defaultRegistry = NewRegistry()

// Default 返回进程级默认注册表
func Default() *Registry {
	return defaultRegistry
}

// Reset 清空默认注册表（仅供测试使用）
func Reset() {
	defaultRegistry.Reset()
}

// Reset 清空注册表
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ordered = nil
	r.byType = make(map[reflect.Type]*TypeDescriptor)
}

// Add 注册一条描述符。重复注册同一类型时，后一条描述符在查找中生效，
// 但两条都会出现在扫描结果里（歧义属于解析期问题，注册期不做唯一性约束）。
func (r *Registry) Add(d *TypeDescriptor) {
	if d == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ordered = append(r.ordered, d)
	if d.Type != nil {
		r.byType[baseType(d.Type)] = d
	}
}

func (r *Registry) add(t reflect.Type, marker Marker, opts []Option) {
	d := &TypeDescriptor{Type: t, Marker: marker}
	for _, opt := range opts {
		opt(d)
	}
	r.Add(d)
}

// AddSingleton 为类型附着 singleton 标记
func (r *Registry) AddSingleton(t reflect.Type, opts ...Option) {
	r.add(t, MarkerSingleton, opts)
}

// AddPrototype 为类型附着 prototype 标记
func (r *Registry) AddPrototype(t reflect.Type, opts ...Option) {
	r.add(t, MarkerPrototype, opts)
}

// AddProvider 为类型附着 provider 标记
func (r *Registry) AddProvider(t reflect.Type, opts ...Option) {
	r.add(t, MarkerProvider, opts)
}

// Describe 只为类型附着元数据（初始化方法等），不参与扫描注册。
// 典型用途：提供者产出的 bean 类型需要生命周期钩子。
func (r *Registry) Describe(t reflect.Type, opts ...Option) {
	r.add(t, MarkerNone, opts)
}

// Lookup 按基础类型查找描述符
func (r *Registry) Lookup(t reflect.Type) (*TypeDescriptor, bool) {
	if t == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byType[baseType(t)]
	return d, ok
}

// IsPrototype 判断类型是否在类型级携带 prototype 标记
func (r *Registry) IsPrototype(t reflect.Type) bool {
	d, ok := r.Lookup(t)
	return ok && d.Marker == MarkerPrototype
}

// Singleton 在默认注册表中注册 T 为单例
func Singleton[T any](opts ...Option) {
	defaultRegistry.AddSingleton(TypeOf[T](), opts...)
}

// Prototype 在默认注册表中为 T 附着 prototype 标记
func Prototype[T any](opts ...Option) {
	defaultRegistry.AddPrototype(TypeOf[T](), opts...)
}

// Provider 在默认注册表中注册 T 为提供者
func Provider[T any](opts ...Option) {
	defaultRegistry.AddProvider(TypeOf[T](), opts...)
}

// Describe 在默认注册表中为 T 附着元数据
func Describe[T any](opts ...Option) {
	defaultRegistry.Describe(TypeOf[T](), opts...)
}
