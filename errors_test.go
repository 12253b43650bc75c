package ioc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gocrud/ioc"
)

func TestCoreErrorCarriesStatus(t *testing.T) {
	base := &ioc.CoreError{Code: ioc.StatusPropertyNotFound, Message: "property missing"}

	if !ioc.IsStatus(base, ioc.StatusPropertyNotFound) {
		t.Fatal("IsStatus must match the carried code")
	}
	if ioc.IsStatus(base, ioc.StatusMultipleDefinitions) {
		t.Fatal("IsStatus must not match other codes")
	}

	// 包装后仍可识别
	wrapped := fmt.Errorf("starting container: %w", base)
	if !ioc.IsStatus(wrapped, ioc.StatusPropertyNotFound) {
		t.Fatal("IsStatus must see through wrapping")
	}
	if ioc.IsStatus(errors.New("plain"), ioc.StatusPropertyNotFound) {
		t.Fatal("plain errors carry no status")
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	cause := errors.New("parse failed")
	err := &ioc.CoreError{Code: ioc.StatusPropertyTypeError, Message: "bad value", Cause: cause}

	if !errors.Is(err, cause) {
		t.Fatal("Unwrap must expose the cause")
	}
}

func TestStatusCodeStrings(t *testing.T) {
	cases := map[ioc.StatusCode]string{
		ioc.StatusClassNotFound:          "CLASSNAME_NOT_FOUND",
		ioc.StatusBeanIsInterface:        "BEAN_IS_INTERFACE",
		ioc.StatusBeanInstanceFailed:     "BEAN_INSTANCE_FAILED",
		ioc.StatusBeanProviderInjections: "BEAN_PROVIDER_INJECTIONS",
		ioc.StatusOperationNotSupported:  "OPERATION_NOT_SUPPORTED",
		ioc.StatusInvocationError:        "INVOCATION_ERROR",
		ioc.StatusUnableToInjectNamed:    "UNABLE_TO_INJECT_NAMED",
		ioc.StatusMultipleDefinitions:    "MULTIPLE_DEFINITIONS",
		ioc.StatusPropertyNotFound:       "PROPERTY_NOT_FOUND",
		ioc.StatusPropertyTypeError:      "PROPERTY_TYPE_ERROR",
		ioc.StatusBeanInitFailed:         "BEAN_INIT_FAILED",
		ioc.StatusUnexpected:             "UNEXPECTED",
	}
	for code, want := range cases {
		if code.String() != want {
			t.Errorf("StatusCode(%d).String() = %q, want %q", code, code.String(), want)
		}
	}
}
