// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides file system helpers for locating
// config and mesh files.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands a leading ~ in the given path to the
// user's home directory. The path is returned unchanged
// if the home directory cannot be determined.
func ExpandPath(path string) string {
	ep, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return ep
}

// FileExists returns whether the given path names an existing
// regular file, and an error if the file could not be accessed.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FindFilesOnPaths returns all the existing files named file found
// in the given directories, in path order. Paths may start with ~.
// An absolute file is returned directly if it exists.
func FindFilesOnPaths(paths []string, file string) []string {
	file = ExpandPath(file)
	if filepath.IsAbs(file) {
		if ok, _ := FileExists(file); ok {
			return []string{file}
		}
		return nil
	}
	var res []string
	for _, path := range paths {
		fp := filepath.Join(ExpandPath(path), file)
		if ok, _ := FileExists(fp); ok {
			res = append(res, fp)
		}
	}
	return res
}
