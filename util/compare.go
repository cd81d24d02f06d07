// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"math"
	"reflect"
)

// SameValue reports whether a and b are the same value: NaN equals NaN,
// +0 and -0 are different. Numeric types are up converted to float64 and
// compared. Non-comparable values (slices, maps, funcs) compare by
// identity.
func SameValue(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if IsNumericType(a) && IsNumericType(b) {
		fa, _ := ToFloat64(a)
		fb, _ := ToFloat64(b)
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return math.IsNaN(fa) && math.IsNaN(fb)
		}
		if fa == 0 && fb == 0 {
			return math.Signbit(fa) == math.Signbit(fb)
		}
		return fa == fb
	}
	typeA := reflect.TypeOf(a)
	typeB := reflect.TypeOf(b)
	if typeA != typeB {
		return false
	}
	if typeA.Comparable() {
		return a == b
	}
	// for slices, maps, and funcs, compare their pointers
	valA := reflect.ValueOf(a)
	valB := reflect.ValueOf(b)
	switch valA.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return valA.Pointer() == valB.Pointer()
	}
	return false
}

// DepsEqual compares two dependency lists element-wise under SameValue.
func DepsEqual(deps1 []any, deps2 []any) bool {
	if len(deps1) != len(deps2) {
		return false
	}
	for i := range deps1 {
		if !SameValue(deps1[i], deps2[i]) {
			return false
		}
	}
	return true
}

// Helper to check if a value is a numeric type
func IsNumericType(val any) bool {
	switch val.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// Convert various numeric types to float64 for comparison
func ToFloat64(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func ToInt64(val any) (int64, bool) {
	f, ok := ToFloat64(val)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func ToInt(val any) (int, bool) {
	i, ok := ToInt64(val)
	if !ok {
		return 0, false
	}
	return int(i), true
}
