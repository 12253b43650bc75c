// Package ioc 是一个可嵌入的控制反转容器：发现组件描述符、构造实例、
// 装配声明的依赖，并在就绪前执行构造后钩子。使用方拿到的是完整装配好的
// 对象图，无需手工实例化或连接组件。
//
// 类型通过 scan 包注册标记（provider / singleton / prototype），字段通过
// 结构体 tag 声明依赖：
//
//	type Server struct {
//		Repo   *Repository `inject:""`          // 默认单例依赖
//		Cache  *Cache      `inject:"l2-cache"`  // 带限定名
//		Port   int         `prop:"server.port"` // 来自属性表
//		Worker *Worker     `inject:"" scope:"prototype"`
//	}
//
// 引导顺序严格固定：属性解析 → 提供者注册 → 单例注册 → 注入解析 →
// 生命周期初始化。任一失败立即中止启动。
package ioc

import (
	"fmt"
	"reflect"
)

// Resolve 从已启动容器中按类型解析单个 bean。
// 候选规则与注入一致：零候选或多候选都返回错误。
func Resolve[T any](c *Container) (T, error) {
	return ResolveNamed[T](c, "")
}

// ResolveNamed 从已启动容器中按类型和限定名解析单个 bean
func ResolveNamed[T any](c *Container, name string) (T, error) {
	var zero T
	typ := reflect.TypeOf((*T)(nil)).Elem()

	value, err := c.resolveSingleton(typ, name)
	if err != nil {
		return zero, err
	}
	v, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("ioc: resolved value is %T, expected %v", value, typ)
	}
	return v, nil
}

// Prototype 构造 T 的全新实例（泛型便捷形式，语义同 Container.Prototype）
func Prototype[T any](c *Container) (*T, error) {
	instance, err := c.Prototype(reflect.TypeOf((*T)(nil)))
	if err != nil {
		return nil, err
	}
	return instance.(*T), nil
}
