// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides functions for loading and saving objects
// in the TOML format.
package tomlx

import (
	"bytes"
	"io"
	"os"

	"github.com/kestrel3d/kestrel/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// Open reads the given object from the given filename using TOML encoding.
func Open(v any, filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Read(v, fp)
}

// Read reads the given object from the given reader,
// using TOML encoding.
func Read(v any, reader io.Reader) error {
	return errors.Log(toml.NewDecoder(reader).Decode(v))
}

// ReadBytes reads the given object from the given bytes,
// using TOML encoding.
func ReadBytes(v any, data []byte) error {
	return errors.Log(toml.Unmarshal(data, v))
}

// Save writes the given object to the given filename using TOML encoding.
func Save(v any, filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return Write(v, fp)
}

// Write writes the given object using TOML encoding.
func Write(v any, writer io.Writer) error {
	return errors.Log(toml.NewEncoder(writer).Encode(v))
}

// WriteBytes writes the given object, returning bytes of the encoding,
// using TOML encoding.
func WriteBytes(v any) ([]byte, error) {
	var b bytes.Buffer
	err := Write(v, &b)
	return b.Bytes(), err
}
