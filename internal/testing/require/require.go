// Package require provides the small, call-site-driven set of test
// assertions used throughout this module, mirroring the shape of the
// teacher's own internal/testing/require: failures call t.Fatal directly
// rather than returning a bool, so a failed assertion stops the test
// immediately instead of the caller having to check it.
package require

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type helper interface {
	Helper()
}

func fail(t testing.TB, format string, args ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	t.Fatalf(format, args...)
}

// Equal fails unless expected and actual are deeply equal, per go-cmp.
func Equal(t testing.TB, expected, actual any, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		fail(t, "not equal (-expected +actual):\n%s%s", diff, extra(msgAndArgs))
	}
}

// NotEqual fails if expected and actual are deeply equal.
func NotEqual(t testing.TB, expected, actual any, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if cmp.Equal(expected, actual) {
		fail(t, "expected values to differ, both were %v%s", expected, extra(msgAndArgs))
	}
}

// True fails unless v is true.
func True(t testing.TB, v bool, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if !v {
		fail(t, "expected true%s", extra(msgAndArgs))
	}
}

// False fails unless v is false.
func False(t testing.TB, v bool, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if v {
		fail(t, "expected false%s", extra(msgAndArgs))
	}
}

// NoError fails unless err is nil.
func NoError(t testing.TB, err error, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if err != nil {
		fail(t, "unexpected error: %v%s", err, extra(msgAndArgs))
	}
}

// Error fails unless err is non-nil.
func Error(t testing.TB, err error, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if err == nil {
		fail(t, "expected an error%s", extra(msgAndArgs))
	}
}

// EqualError fails unless err is non-nil and its message equals expected.
func EqualError(t testing.TB, err error, expected string) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if err == nil {
		fail(t, "expected error %q, got nil", expected)
		return
	}
	if err.Error() != expected {
		fail(t, "expected error %q, got %q", expected, err.Error())
	}
}

// ErrorIs fails unless errors.Is(err, target).
func ErrorIs(t testing.TB, err, target error) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if !errors.Is(err, target) {
		fail(t, "expected error chain %v to contain %v", err, target)
	}
}

// Nil fails unless v is nil (including a nil-valued interface or pointer).
func Nil(t testing.TB, v any, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if !isNil(v) {
		fail(t, "expected nil, got %v%s", v, extra(msgAndArgs))
	}
}

// NotNil fails if v is nil.
func NotNil(t testing.TB, v any, msgAndArgs ...any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if isNil(v) {
		fail(t, "expected non-nil value%s", extra(msgAndArgs))
	}
}

// Len fails unless v has the given length.
func Len(t testing.TB, v any, length int) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	rv := reflect.ValueOf(v)
	if rv.Len() != length {
		fail(t, "expected length %d, got %d", length, rv.Len())
	}
}

// Zero fails unless v is the zero value for its type.
func Zero(t testing.TB, v any) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	if !reflect.ValueOf(v).IsZero() {
		fail(t, "expected zero value, got %v", v)
	}
}

// Panics fails unless fn panics.
func Panics(t testing.TB, fn func()) {
	if h, ok := t.(helper); ok {
		h.Helper()
	}
	defer func() {
		if recover() == nil {
			fail(t, "expected a panic")
		}
	}()
	fn()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func extra(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return ": " + fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf(": %v", msgAndArgs)
}
