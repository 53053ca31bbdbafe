// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"errors"
	"fmt"
	"reflect"
)

// SetFromDefaultTags sets the fields of the given pointer to a struct
// from their `default:` struct tag values, including fields of
// embedded and nested structs. Fields without the tag are not changed.
func SetFromDefaultTags(obj any) error {
	sv, ok := StructValue(obj)
	if !ok {
		return fmt.Errorf("reflectx.SetFromDefaultTags: expected a non-nil pointer to a struct, not %T", obj)
	}
	var errs []error
	WalkFields(sv, func(path string, field reflect.StructField, fv reflect.Value) error {
		def, ok := field.Tag.Lookup("default")
		if !ok {
			return nil
		}
		if err := SetFromString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("field %s default %q: %w", path, def, err))
		}
		return nil
	})
	return errors.Join(errs...)
}
