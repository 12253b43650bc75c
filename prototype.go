package ioc

import (
	"reflect"

	"github.com/gocrud/ioc/logging"
	"github.com/gocrud/ioc/scan"
)

// Prototype 构造 typ 的全新实例并解析其注入标记字段。
// 每次调用都返回新对象；实例不注册进目录、不执行生命周期初始化，由调用方独占。
// 只有注入标记字段按默认单例规则解析；属性标记字段在此路径上保持未解析
// （与单例构造路径不对称，按现状保留）。
//
// 启动完成后可并发调用：只读目录，每次分配独立实例。
func (c *Container) Prototype(typ reflect.Type) (any, error) {
	instance, err := c.instantiate(typ)
	if err != nil {
		return nil, err
	}

	structVal := reflect.ValueOf(instance).Elem()
	for _, fd := range scan.FieldsOf(structVal.Type()) {
		if !fd.Inject || fd.HasProperty {
			continue
		}
		if err := c.assignSingleton(structVal, fd); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// assignSingleton 按单例规则解析字段并赋值（prototype 路径专用）
func (c *Container) assignSingleton(structVal reflect.Value, fd scan.FieldDescriptor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("failed to set field",
				logging.F("type", structVal.Type().String()), logging.F("field", fd.Name))
			err = newError(StatusUnexpected, "assigning field %s.%s failed: %v",
				structVal.Type(), fd.Name, r)
		}
	}()

	value, serr := c.resolveSingleton(fd.Type, fd.Qualifier)
	if serr != nil {
		return serr
	}
	setField(structVal.Field(fd.Index), reflect.ValueOf(value))
	return nil
}
