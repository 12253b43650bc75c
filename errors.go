package ioc

import (
	"errors"
	"fmt"
)

// StatusCode 标识引导失败的原因。
// 所有引擎错误都携带一个状态码，失败即终止引导（fail-fast），引擎内部不做恢复。
type StatusCode int

const (
	// StatusUnexpected 字段赋值等环节出现的未预期错误（无具体状态码）
	StatusUnexpected StatusCode = iota
	// StatusClassNotFound 扫描返回的类型无法解析
	StatusClassNotFound
	// StatusBeanIsInterface 试图实例化接口等非具体类型
	StatusBeanIsInterface
	// StatusBeanInstanceFailed 构造实例失败
	StatusBeanInstanceFailed
	// StatusBeanProviderInjections 提供者类型自身声明了作用域标记字段
	StatusBeanProviderInjections
	// StatusOperationNotSupported 提供者方法带参数、无返回值或不存在
	StatusOperationNotSupported
	// StatusInvocationError 提供者方法调用失败
	StatusInvocationError
	// StatusUnableToInjectNamed 依赖没有任何匹配候选
	StatusUnableToInjectNamed
	// StatusMultipleDefinitions 依赖匹配到多个候选且没有限定名
	StatusMultipleDefinitions
	// StatusPropertyNotFound 必需的属性键不存在
	StatusPropertyNotFound
	// StatusPropertyTypeError 属性值无法转换到字段类型，或字段类型不受支持
	StatusPropertyTypeError
	// StatusBeanInitFailed 生命周期初始化方法执行失败
	StatusBeanInitFailed
)

// String 返回状态码的字符串表示
func (s StatusCode) String() string {
	switch s {
	case StatusClassNotFound:
		return "CLASSNAME_NOT_FOUND"
	case StatusBeanIsInterface:
		return "BEAN_IS_INTERFACE"
	case StatusBeanInstanceFailed:
		return "BEAN_INSTANCE_FAILED"
	case StatusBeanProviderInjections:
		return "BEAN_PROVIDER_INJECTIONS"
	case StatusOperationNotSupported:
		return "OPERATION_NOT_SUPPORTED"
	case StatusInvocationError:
		return "INVOCATION_ERROR"
	case StatusUnableToInjectNamed:
		return "UNABLE_TO_INJECT_NAMED"
	case StatusMultipleDefinitions:
		return "MULTIPLE_DEFINITIONS"
	case StatusPropertyNotFound:
		return "PROPERTY_NOT_FOUND"
	case StatusPropertyTypeError:
		return "PROPERTY_TYPE_ERROR"
	case StatusBeanInitFailed:
		return "BEAN_INIT_FAILED"
	default:
		return "UNEXPECTED"
	}
}

// CoreError 引擎统一的错误类型，携带状态码和可选的底层原因。
type CoreError struct {
	Code    StatusCode
	Message string
	Cause   error
}

func (e *CoreError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "ioc bootstrap failure"
	}
	if e.Cause != nil {
		return fmt.Sprintf("ioc: [%s] %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("ioc: [%s] %s", e.Code, msg)
}

func (e *CoreError) Unwrap() error {
	return e.Cause
}

// newError 构造带状态码的错误
func newError(code StatusCode, format string, args ...any) *CoreError {
	return &CoreError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// wrapError 构造带状态码和底层原因的错误
func wrapError(code StatusCode, cause error, format string, args ...any) *CoreError {
	return &CoreError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsStatus 判断 err 是否为携带指定状态码的引擎错误
func IsStatus(err error, code StatusCode) bool {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
