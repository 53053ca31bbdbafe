// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This package is based extensively on https://github.com/g3n/engine :
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj parses the geometry of the Wavefront OBJ file format (*.obj)
// into [xyz.TriMesh] values, one per object. Materials are not loaded:
// material names are only recorded on faces.
// Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kestrel3d/kestrel/math32"
	"github.com/kestrel3d/kestrel/xyz"
)

// Decoder contains all decoded data from an obj file.
type Decoder struct {
	Objfile  string           // .obj filename (without path)
	Objdir   string           // path to .obj file
	Objects  []Object         // decoded objects
	Matlib   string           // name of the material lib
	Coords   []math32.Vector3 // vertex positions
	Normals  []math32.Vector3 // vertex normals
	UVs      []math32.Vector2 // vertex texture coordinates
	Warnings []string         // warning messages

	line          int     // current line number
	objCurrent    *Object // current object
	matCurrent    string  // current material name
	smoothCurrent bool    // current smooth state
}

// Object contains all information about one decoded object.
type Object struct {
	Name  string // Object name
	Faces []Face // Faces
}

// Face is one polygon of an object, with at least 3 vertices.
// Normals and UVs are -1 for vertices that do not specify them.
type Face struct {
	Vertices []int  // Indices to the face vertices
	UVs      []int  // Indices to the face UV coordinates
	Normals  []int  // Indices to the face normals
	Material string // Material name
	Smooth   bool   // Smooth face
}

const (
	blanks = "\r\n\t "
	noIdx  = -1
)

// Decode decodes obj data from the given reader.
func Decode(r io.Reader) (*Decoder, error) {
	dec := &Decoder{}
	if err := dec.parse(r); err != nil {
		return nil, err
	}
	return dec, nil
}

// Open decodes the given .obj file.
func Open(filename string) (*Decoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("obj.Open %s: %w", filename, err)
	}
	dec.Objdir, dec.Objfile = filepath.Split(filename)
	return dec, nil
}

// TriMeshes returns one split-index [xyz.TriMesh] per object, in
// the order of [Decoder.Objects], with polygons triangulated as fans.
// The meshes share the vertex data of the decoder. An object has
// normals or uvs only if all of its face vertices specify them.
func (dec *Decoder) TriMeshes() ([]*xyz.TriMesh, error) {
	tms := make([]*xyz.TriMesh, len(dec.Objects))
	for oi := range dec.Objects {
		ob := &dec.Objects[oi]
		tm, err := dec.triMesh(ob)
		if err != nil {
			return nil, fmt.Errorf("obj object %q: %w", ob.Name, err)
		}
		tms[oi] = tm
	}
	return tms, nil
}

func (dec *Decoder) triMesh(ob *Object) (*xyz.TriMesh, error) {
	hasFaces := len(ob.Faces) > 0
	hasNorm, hasUV := hasFaces && len(dec.Normals) > 0, hasFaces && len(dec.UVs) > 0
	nfaces := 0
	for _, fc := range ob.Faces {
		nfaces += len(fc.Vertices) - 2
		for i := range fc.Vertices {
			hasNorm = hasNorm && fc.Normals[i] != noIdx
			hasUV = hasUV && fc.UVs[i] != noIdx
		}
	}
	tm := &xyz.TriMesh{Coords: dec.Coords}
	if hasNorm {
		tm.Normals = dec.Normals
	}
	if hasUV {
		tm.UVs = dec.UVs
	}
	split := make([]xyz.SplitFace, 0, nfaces)
	for _, fc := range ob.Faces {
		corner := func(i int) xyz.Corner {
			c := xyz.Corner{Coord: uint32(fc.Vertices[i])}
			if hasNorm {
				c.Normal = uint32(fc.Normals[i])
			}
			if hasUV {
				c.UV = uint32(fc.UVs[i])
			}
			return c
		}
		for i := 1; i+1 < len(fc.Vertices); i++ {
			split = append(split, xyz.SplitFace{corner(0), corner(i), corner(i + 1)})
		}
	}
	tm.Indices.Split = split
	if err := tm.Validate(); err != nil {
		return nil, err
	}
	return tm, nil
}

// SetGroup adds a [xyz.Group] named after the file to the given parent,
// with one [xyz.Solid] per non-empty object, drawing a new mesh added
// to the scene with [xyz.Scene.AddMeshUnique].
func (dec *Decoder) SetGroup(sc *xyz.Scene, parent xyz.Node, dynamic bool) (*xyz.Group, error) {
	tms, err := dec.TriMeshes()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(dec.Objfile, filepath.Ext(dec.Objfile))
	if name == "" {
		name = "obj"
	}
	gp := xyz.NewGroup(parent, name)
	for oi, tm := range tms {
		if tm.NumFaces() == 0 {
			continue
		}
		ms, err := xyz.NewMeshFromTriMesh(tm, dynamic)
		if err != nil {
			return gp, err
		}
		ob := &dec.Objects[oi]
		ms.Name = ob.Name
		sc.AddMeshUnique(ms)
		xyz.NewSolid(gp, ob.Name).SetMesh(ms)
	}
	return gp, nil
}

// parse reads the lines from the given reader and parses them.
func (dec *Decoder) parse(reader io.Reader) error {
	bufin := bufio.NewReader(reader)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line = strings.Trim(line, blanks)
		if perr := dec.parseLine(line); perr != nil {
			return perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	return nil
}

// parseLine parses one obj file line, dispatching to specific parsers.
func (dec *Decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	switch ltype {
	case "mtllib":
		return dec.parseMatlib(fields[1:])
	// groups are treated the same as objects
	case "o", "g":
		return dec.parseObject(fields[1:])
	case "v":
		return dec.parseVertex(fields[1:])
	case "vn":
		return dec.parseNormal(fields[1:])
	case "vt":
		return dec.parseTex(fields[1:])
	case "f":
		return dec.parseFace(fields[1:])
	case "usemtl":
		return dec.parseUsemtl(fields[1:])
	case "s":
		return dec.parseSmooth(fields[1:])
	default:
		dec.appendWarn("field not supported: " + ltype)
	}
	return nil
}

// mtllib <name>
func (dec *Decoder) parseMatlib(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("Material library (mtllib) with no fields")
	}
	dec.Matlib = fields[0]
	return nil
}

// o <name>
func (dec *Decoder) parseObject(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("Object line (o) with no fields")
	}
	dec.Objects = append(dec.Objects, Object{Name: fields[0]})
	dec.objCurrent = &dec.Objects[len(dec.Objects)-1]
	return nil
}

func (dec *Decoder) parseFloats(fields []string, n int, what string) ([3]float32, error) {
	var vals [3]float32
	if len(fields) < n {
		return vals, dec.formatError(fmt.Sprintf("Less than %d values in '%s' line", n, what))
	}
	for i, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return vals, dec.formatError(err.Error())
		}
		vals[i] = float32(val)
	}
	return vals, nil
}

// v <x> <y> <z> [w]
func (dec *Decoder) parseVertex(fields []string) error {
	v, err := dec.parseFloats(fields, 3, "v")
	if err != nil {
		return err
	}
	dec.Coords = append(dec.Coords, math32.Vec3(v[0], v[1], v[2]))
	return nil
}

// vn <x> <y> <z>
func (dec *Decoder) parseNormal(fields []string) error {
	v, err := dec.parseFloats(fields, 3, "vn")
	if err != nil {
		return err
	}
	dec.Normals = append(dec.Normals, math32.Vec3(v[0], v[1], v[2]))
	return nil
}

// vt <u> <v> [w]
func (dec *Decoder) parseTex(fields []string) error {
	v, err := dec.parseFloats(fields, 2, "vt")
	if err != nil {
		return err
	}
	dec.UVs = append(dec.UVs, math32.Vec2(v[0], v[1]))
	return nil
}

// parseIndex parses a 1-based face index, where negative values are
// relative to the last of the n values parsed so far.
func (dec *Decoder) parseIndex(field string, n int, what string) (int, error) {
	val, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	switch {
	case val > 0:
		return int(val - 1), nil
	case val < 0:
		idx := n + int(val)
		if idx < 0 {
			return 0, dec.formatError(fmt.Sprintf("Face %s index %d before first value", what, val))
		}
		return idx, nil
	}
	return 0, dec.formatError(fmt.Sprintf("Face %s index value equal to 0", what))
}

// parseFace parses a face description line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if dec.objCurrent == nil {
		// faces before any g or o line go in a default object
		dec.parseObject([]string{fmt.Sprintf("unnamed%d", dec.line)})
	}
	if len(fields) < 3 {
		return dec.formatError("Face line with less 3 fields")
	}
	face := Face{
		Vertices: make([]int, len(fields)),
		UVs:      make([]int, len(fields)),
		Normals:  make([]int, len(fields)),
		Material: dec.matCurrent,
		Smooth:   dec.smoothCurrent,
	}
	for pos, f := range fields {
		vfields := strings.Split(f, "/")
		var err error
		face.Vertices[pos], err = dec.parseIndex(vfields[0], len(dec.Coords), "vertex")
		if err != nil {
			return err
		}
		face.UVs[pos] = noIdx
		if len(vfields) > 1 && len(vfields[1]) > 0 {
			face.UVs[pos], err = dec.parseIndex(vfields[1], len(dec.UVs), "uv")
			if err != nil {
				return err
			}
		}
		face.Normals[pos] = noIdx
		if len(vfields) > 2 && len(vfields[2]) > 0 {
			face.Normals[pos], err = dec.parseIndex(vfields[2], len(dec.Normals), "normal")
			if err != nil {
				return err
			}
		}
	}
	dec.objCurrent.Faces = append(dec.objCurrent.Faces, face)
	return nil
}

// usemtl <name>
func (dec *Decoder) parseUsemtl(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("Usemtl with no fields")
	}
	dec.matCurrent = fields[0]
	return nil
}

// s <0|1|off|on>
func (dec *Decoder) parseSmooth(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'s' with no fields")
	}
	switch fields[0] {
	case "0", "off":
		dec.smoothCurrent = false
	case "1", "on":
		dec.smoothCurrent = true
	default:
		// smoothing group numbers
		if _, err := strconv.Atoi(fields[0]); err != nil {
			return dec.formatError("'s' with invalid value")
		}
		dec.smoothCurrent = true
	}
	return nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("%s in line:%d", msg, dec.line)
}

func (dec *Decoder) appendWarn(msg string) {
	wline := fmt.Sprintf("obj(%d): %s", dec.line, msg)
	dec.Warnings = append(dec.Warnings, wline)
	slog.Warn(wline)
}
