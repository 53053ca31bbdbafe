// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx provides functions for loading and saving objects
// in the YAML format.
package yamlx

import (
	"io"
	"os"

	"github.com/kestrel3d/kestrel/base/errors"
	"gopkg.in/yaml.v3"
)

// Open reads the given object from the given filename using YAML encoding.
func Open(v any, filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, fp)
}

// Read reads the given object from the given reader,
// using YAML encoding.
func Read(v any, reader io.Reader) error {
	return errors.Log(yaml.NewDecoder(reader).Decode(v))
}

// ReadBytes reads the given object from the given bytes,
// using YAML encoding.
func ReadBytes(v any, data []byte) error {
	return errors.Log(yaml.Unmarshal(data, v))
}

// Save writes the given object to the given filename using YAML encoding.
func Save(v any, filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Write(v, fp)
}

// Write writes the given object using YAML encoding.
func Write(v any, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	defer enc.Close()
	return errors.Log(enc.Encode(v))
}

// WriteBytes writes the given object, returning bytes of the encoding,
// using YAML encoding.
func WriteBytes(v any) ([]byte, error) {
	return yaml.Marshal(v)
}
