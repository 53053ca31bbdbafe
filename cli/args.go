// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kestrel3d/kestrel/base/reflectx"
)

// SetFromArgs sets the fields of the given config object from the given
// command line arguments. Flags take the form -name value, -name=value
// or --name; bool flags do not need a value. Names match field names
// case-insensitively, with dots for nested struct fields. The remaining
// positional arguments are returned.
func SetFromArgs(cfg any, args []string) ([]string, error) {
	sv, ok := reflectx.StructValue(cfg)
	if !ok {
		return nil, fmt.Errorf("cli.SetFromArgs: expected a non-nil pointer to a struct, not %T", cfg)
	}
	var pos []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			pos = append(pos, args[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			pos = append(pos, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		val, hasVal := "", false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, val, hasVal = name[:eq], name[eq+1:], true
		}
		fv, ok := reflectx.FieldByPath(sv, name)
		if !ok {
			return pos, fmt.Errorf("cli.SetFromArgs: flag provided but not defined: %q", arg)
		}
		if !hasVal {
			if fv.Kind() == reflect.Bool {
				val = "true"
			} else {
				if i+1 >= len(args) {
					return pos, fmt.Errorf("cli.SetFromArgs: flag %q needs a value", arg)
				}
				i++
				val = args[i]
			}
		}
		if err := reflectx.SetFromString(fv, val); err != nil {
			return pos, fmt.Errorf("cli.SetFromArgs: flag %q: %w", arg, err)
		}
	}
	return pos, nil
}
