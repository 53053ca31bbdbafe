// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"github.com/kestrel3d/kestrel/cli"
)

// Params are the parameters of a decomposition.
type Params struct {

	// Clusters is the minimum number of parts to produce.
	Clusters int `default:"1"`

	// Concavity is the maximum concavity accepted in a part.
	Concavity float32 `default:"0.01"`

	// Scale is the uniform scale applied to the mesh before decomposing.
	Scale float32 `default:"1"`
}

// Defaults sets the params to their default values.
func (p *Params) Defaults() {
	cli.SetFromDefaults(p)
}

// OpenParams returns params set to their defaults and then
// overridden by the given TOML or YAML file.
func OpenParams(filename string) (*Params, error) {
	p := &Params{}
	p.Defaults()
	if err := cli.Open(p, filename); err != nil {
		return nil, err
	}
	return p, nil
}
