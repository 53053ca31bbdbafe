// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kestrel3d/kestrel/base/fsx"
	"github.com/kestrel3d/kestrel/base/iox/tomlx"
	"github.com/kestrel3d/kestrel/base/iox/yamlx"
)

// Open reads the given config object from the given file,
// using YAML for .yaml and .yml files and TOML otherwise.
// A leading ~ in the file name is expanded to the home directory.
func Open(cfg any, file string) error {
	file = fsx.ExpandPath(file)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return yamlx.Open(cfg, file)
	default:
		return tomlx.Open(cfg, file)
	}
}

// OpenFiles reads the given config object from each of the given files
// in order, so that later files override earlier ones.
func OpenFiles(cfg any, files ...string) error {
	for _, file := range files {
		if err := Open(cfg, file); err != nil {
			return err
		}
	}
	return nil
}

// openOnPaths reads the config object from every instance of the given
// file found on [Options.IncludePaths]. It returns an error if none exist.
func openOnPaths(opts *Options, cfg any, file string) error {
	files := fsx.FindFilesOnPaths(opts.IncludePaths, file)
	if len(files) == 0 {
		return fmt.Errorf("cli.Open: no files found for %q", file)
	}
	return OpenFiles(cfg, files...)
}
