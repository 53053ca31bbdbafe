// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/kestrel3d/kestrel/base/fsx"
)

// Options are the options for [Config].
type Options struct {

	// DefaultFiles are config files that are opened, if they
	// exist on IncludePaths, before any config file named in args.
	DefaultFiles []string

	// IncludePaths are the directories searched for config files.
	// The current directory is used if it is empty.
	IncludePaths []string
}

// Config sets the given config object from its default tags, then from
// any [Options.DefaultFiles] that exist, then from a config file given
// by a -config flag, and finally from the remaining flags in args.
// It returns the positional arguments left over.
func Config(opts *Options, cfg any, args ...string) ([]string, error) {
	if opts == nil {
		opts = &Options{}
	}
	if len(opts.IncludePaths) == 0 {
		opts.IncludePaths = []string{"."}
	}
	if err := SetFromDefaults(cfg); err != nil {
		return nil, err
	}
	for _, file := range opts.DefaultFiles {
		if err := OpenFiles(cfg, fsx.FindFilesOnPaths(opts.IncludePaths, file)...); err != nil {
			return nil, err
		}
	}
	args, file := configFileArg(args)
	if file != "" {
		if err := errors.Log(openOnPaths(opts, cfg, file)); err != nil {
			return nil, err
		}
	}
	return SetFromArgs(cfg, args)
}

// configFileArg removes a -config or -cfg flag from args,
// returning the remaining args and the named file.
func configFileArg(args []string) ([]string, string) {
	var rest []string
	file := ""
	for i := 0; i < len(args); i++ {
		switch a := args[i]; a {
		case "-config", "--config", "-cfg", "--cfg":
			if i+1 < len(args) {
				file = args[i+1]
				i++
			}
		default:
			if v, ok := cutFlag(a, "config"); ok {
				file = v
			} else if v, ok := cutFlag(a, "cfg"); ok {
				file = v
			} else {
				rest = append(rest, a)
			}
		}
	}
	return rest, file
}

func cutFlag(arg, name string) (string, bool) {
	for _, pre := range []string{"-" + name + "=", "--" + name + "="} {
		if len(arg) > len(pre) && arg[:len(pre)] == pre {
			return arg[len(pre):], true
		}
	}
	return "", false
}
