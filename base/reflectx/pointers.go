// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides helpers for setting struct fields
// by reflection, used for configuration structs.
package reflectx

import (
	"reflect"
)

// NonPointerValue returns the value that the given value points to,
// through any number of pointers. The result is not valid for nil pointers.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// StructValue returns the addressable struct value pointed to by obj,
// or false if obj is not a non-nil pointer to a struct.
func StructValue(obj any) (reflect.Value, bool) {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer {
		return rv, false
	}
	sv := NonPointerValue(rv)
	return sv, sv.IsValid() && sv.Kind() == reflect.Struct && sv.CanSet()
}
