package ioc

import (
	"reflect"
	"unsafe"

	"github.com/gocrud/ioc/logging"
	"github.com/gocrud/ioc/scan"
)

// resolveInjections 对进入本阶段时目录快照中的每条记录，解析其全部标记字段。
// 之后注册的记录不会追溯注入（稳态下不存在这样的路径）。
func (c *Container) resolveInjections() error {
	for _, rec := range c.catalog.snapshot() {
		if err := c.injectFields(rec.Instance()); err != nil {
			return err
		}
	}
	return nil
}

// injectFields 解析单个实例的全部标记字段。
// 非结构体实例（提供者产出的标量、接口值等）没有可注入字段，直接跳过。
func (c *Container) injectFields(instance any) error {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	structVal := rv.Elem()
	for _, fd := range scan.FieldsOf(structVal.Type()) {
		if !fd.Marked() {
			continue
		}
		if err := c.injectField(structVal, fd); err != nil {
			return err
		}
	}
	return nil
}

// injectField 按固定优先级解析并赋值一个字段：
//  1. 属性标记 → 属性解析（字段类型决定转换方式）
//  2. 字段或字段类型携带 prototype 标记 → 构造全新实例
//  3. 默认单例依赖 → 目录候选匹配，限定名取自注入标记
//
// 赋值过程中的未预期错误统一包装为无状态码的通用失败。
func (c *Container) injectField(structVal reflect.Value, fd scan.FieldDescriptor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("failed to set field",
				logging.F("type", structVal.Type().String()), logging.F("field", fd.Name))
			err = newError(StatusUnexpected, "assigning field %s.%s failed: %v",
				structVal.Type(), fd.Name, r)
		}
	}()

	field := structVal.Field(fd.Index)
	switch {
	case fd.HasProperty:
		value, perr := c.resolveProperty(fd)
		if perr != nil {
			return perr
		}
		setField(field, value)
		return nil
	case fd.Prototype() || c.registry.IsPrototype(fd.Type):
		instance, perr := c.Prototype(fd.Type)
		if perr != nil {
			return perr
		}
		setField(field, reflect.ValueOf(instance))
		return nil
	default:
		value, serr := c.resolveSingleton(fd.Type, fd.Qualifier)
		if serr != nil {
			return serr
		}
		setField(field, reflect.ValueOf(value))
		return nil
	}
}

// resolveSingleton 默认的单例依赖解析：目录候选必须恰好一个。
// 歧义必须由调用方提供限定名打破，引擎绝不按注册顺序猜测。
func (c *Container) resolveSingleton(typ reflect.Type, qualifier string) (any, error) {
	candidates := c.catalog.FetchCandidates(typ, qualifier)
	switch len(candidates) {
	case 0:
		c.logger.Error("no bean definitions found",
			logging.F("type", typ.String()), logging.F("name", qualifier))
		return nil, newError(StatusUnableToInjectNamed,
			"no bean definitions found for %s named %q", typ, qualifier)
	case 1:
		return candidates[0].Instance(), nil
	default:
		c.logger.Error("multiple bean definitions found, expected 1",
			logging.F("type", typ.String()), logging.F("candidates", len(candidates)))
		return nil, newError(StatusMultipleDefinitions,
			"multiple bean definitions found for %s, expected 1", typ)
	}
}

// setField 向字段赋值。未导出字段通过其地址临时提升访问权限，仅限本次赋值。
// 指针值赋给值类型字段时自动解引用。
func setField(field reflect.Value, value reflect.Value) {
	if !value.IsValid() {
		value = reflect.Zero(field.Type())
	}
	if !value.Type().AssignableTo(field.Type()) &&
		value.Kind() == reflect.Ptr && value.Elem().Type().AssignableTo(field.Type()) {
		value = value.Elem()
	}
	if field.CanSet() {
		field.Set(value)
		return
	}
	reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Set(value)
}
