// Package scan 是容器的发现层：类型在此自注册描述符（类似 database/sql 注册驱动的方式），
// 引擎只消费描述符，不直接解读原始类型元数据。
package scan

import (
	"reflect"
)

// Marker 注册标记，声明类型在容器中的角色。
type Marker int

const (
	// MarkerNone 仅携带元数据（如初始化方法），不参与扫描注册
	MarkerNone Marker = iota
	// MarkerProvider 类型是工厂，其声明的方法产出 bean
	MarkerProvider
	// MarkerSingleton 注册一个进程级单例
	MarkerSingleton
	// MarkerPrototype 每次解析产出新实例
	MarkerPrototype
)

func (m Marker) String() string {
	switch m {
	case MarkerProvider:
		return "provider"
	case MarkerSingleton:
		return "singleton"
	case MarkerPrototype:
		return "prototype"
	default:
		return "none"
	}
}

// MethodDescriptor 描述提供者类型上被标记的产出方法。
type MethodDescriptor struct {
	// Method 方法名
	Method string
	// Prototype 方法携带 prototype 标记（提供者不支持，引导时告警跳过）
	Prototype bool
	// Name 显式限定名，缺省时使用方法名
	Name string
}

// TypeDescriptor 一条类型描述符：类型本体加上附着的标记与元数据。
type TypeDescriptor struct {
	// Type 具体类型（指针类型会在查找时归一化为其基础结构体）
	Type reflect.Type
	// Marker 类型级标记
	Marker Marker
	// Name 显式限定名，缺省时使用完全限定类型名
	Name string
	// BeanMethods 提供者的产出方法，按声明顺序
	BeanMethods []MethodDescriptor
	// InitMethods 生命周期初始化方法，按声明顺序
	InitMethods []string
}

// Option 描述符配置项
type Option func(*TypeDescriptor)

// Named 显式限定名，覆盖类型名默认值
func Named(name string) Option {
	return func(d *TypeDescriptor) {
		d.Name = name
	}
}

// OnInit 声明一个生命周期初始化方法，在全部注入完成后按声明顺序调用
func OnInit(method string) Option {
	return func(d *TypeDescriptor) {
		d.InitMethods = append(d.InitMethods, method)
	}
}

// Bean 声明提供者的一个单例产出方法，bean 名默认为方法名
func Bean(method string) Option {
	return func(d *TypeDescriptor) {
		d.BeanMethods = append(d.BeanMethods, MethodDescriptor{Method: method})
	}
}

// BeanNamed 声明提供者的一个单例产出方法，并指定显式 bean 名
func BeanNamed(method, name string) Option {
	return func(d *TypeDescriptor) {
		d.BeanMethods = append(d.BeanMethods, MethodDescriptor{Method: method, Name: name})
	}
}

// PrototypeBean 声明提供者的一个 prototype 产出方法。
// 提供者方法只产出预构建实例，prototype 方法不被支持，引导时会告警并跳过。
func PrototypeBean(method string) Option {
	return func(d *TypeDescriptor) {
		d.BeanMethods = append(d.BeanMethods, MethodDescriptor{Method: method, Prototype: true})
	}
}

// TypeOf 返回 T 的 reflect.Type（接口类型返回接口本身）
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// NamespaceOf 返回 T 所在的命名空间（Go 包路径）
func NamespaceOf[T any]() string {
	return baseType(TypeOf[T]()).PkgPath()
}

// TypeName 返回类型的完全限定名（指针归一化到基础类型）。
// 未命名类型退化为 reflect 的字符串表示。
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	base := baseType(t)
	if base.PkgPath() != "" && base.Name() != "" {
		return base.PkgPath() + "." + base.Name()
	}
	return t.String()
}

// baseType 指针类型归一化为指向的类型
func baseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
