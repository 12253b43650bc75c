package ioc

import (
	"reflect"
	"strconv"

	"github.com/gocrud/ioc/logging"
	"github.com/gocrud/ioc/scan"
)

// propertyKind 属性字段支持的转换类型，封闭枚举
type propertyKind int

const (
	propertyText propertyKind = iota
	propertyInteger
	propertyBoolean
	propertyUnsupported
)

// kindOfProperty 将字段声明类型归入封闭的转换类型集合
func kindOfProperty(t reflect.Type) propertyKind {
	if t == nil {
		return propertyUnsupported
	}
	switch t.Kind() {
	case reflect.String:
		return propertyText
	case reflect.Int, reflect.Int32:
		return propertyInteger
	case reflect.Bool:
		return propertyBoolean
	default:
		return propertyUnsupported
	}
}

// resolveProperty 按属性键取值并转换到字段声明类型。
// 文本原样返回；整数按十进制解析（32 位）；布尔按 strconv 规则解析；
// 其余类型不尝试解析，直接报类型错误。
func (c *Container) resolveProperty(fd scan.FieldDescriptor) (reflect.Value, error) {
	raw, ok := c.catalog.GetProperty(fd.PropertyKey)
	if !ok {
		return reflect.Value{}, newError(StatusPropertyNotFound,
			"property %q not found", fd.PropertyKey)
	}

	switch kindOfProperty(fd.Type) {
	case propertyText:
		return reflect.ValueOf(raw).Convert(fd.Type), nil
	case propertyInteger:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return reflect.Value{}, wrapError(StatusPropertyTypeError, err,
				"property %q value %q is not an integer", fd.PropertyKey, raw)
		}
		return reflect.ValueOf(n).Convert(fd.Type), nil
	case propertyBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, wrapError(StatusPropertyTypeError, err,
				"property %q value %q is not a boolean", fd.PropertyKey, raw)
		}
		return reflect.ValueOf(b).Convert(fd.Type), nil
	default:
		c.logger.Error("unable to process property type",
			logging.F("key", fd.PropertyKey), logging.F("type", fd.Type.String()))
		return reflect.Value{}, newError(StatusPropertyTypeError,
			"unsupported property type %s for key %q", fd.Type, fd.PropertyKey)
	}
}
