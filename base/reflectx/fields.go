// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// WalkFields calls fun for each exported field of the given struct value,
// descending into embedded and nested structs (for which fun is called
// only on their fields). The path is the dotted field name from the top,
// without embedded struct names.
func WalkFields(sv reflect.Value, fun func(path string, field reflect.StructField, fv reflect.Value) error) error {
	return walkFields(sv, "", fun)
}

var durationType = reflect.TypeFor[time.Duration]()

func walkFields(sv reflect.Value, prefix string, fun func(path string, field reflect.StructField, fv reflect.Value) error) error {
	typ := sv.Type()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := sv.Field(i)
		if f.Type.Kind() == reflect.Struct && f.Type != durationType && !hasSetString(fv) {
			sub := prefix + f.Name + "."
			if f.Anonymous {
				sub = prefix
			}
			if err := walkFields(fv, sub, fun); err != nil {
				return err
			}
			continue
		}
		if err := fun(prefix+f.Name, f, fv); err != nil {
			return err
		}
	}
	return nil
}

// FieldByPath returns the field of the given struct value with the given
// path as passed to [WalkFields], matched case-insensitively.
func FieldByPath(sv reflect.Value, path string) (reflect.Value, bool) {
	var found reflect.Value
	WalkFields(sv, func(p string, field reflect.StructField, fv reflect.Value) error {
		if !found.IsValid() && strings.EqualFold(p, path) {
			found = fv
		}
		return nil
	})
	return found, found.IsValid()
}

type stringSetter interface {
	SetString(s string) error
}

func hasSetString(fv reflect.Value) bool {
	if !fv.CanAddr() {
		return false
	}
	_, ok := fv.Addr().Interface().(stringSetter)
	return ok
}

// SetFromString sets the given settable value from its string
// representation. Bools, numbers, strings, durations, slices
// of those (comma separated) and types with a SetString method
// are supported.
func SetFromString(v reflect.Value, s string) error {
	if v.CanAddr() {
		if ss, ok := v.Addr().Interface().(stringSetter); ok {
			return ss.SetString(s)
		}
	}
	if v.Type() == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		var parts []string
		if s != "" {
			parts = strings.Split(s, ",")
		}
		sl := reflect.MakeSlice(v.Type(), len(parts), len(parts))
		for i, p := range parts {
			if err := SetFromString(sl.Index(i), strings.TrimSpace(p)); err != nil {
				return err
			}
		}
		v.Set(sl)
	default:
		return fmt.Errorf("reflectx.SetFromString: unsupported kind %s", v.Kind())
	}
	return nil
}
