// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli loads configuration structs from `default:` struct tags,
// TOML or YAML config files, and command line arguments, in that order.
package cli

import (
	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/kestrel3d/kestrel/base/reflectx"
)

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values. Errors are automatically
// logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	return errors.Log(reflectx.SetFromDefaultTags(cfg))
}
