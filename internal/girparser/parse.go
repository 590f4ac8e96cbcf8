// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package girparser is the "external collaborator" spec §6.2 describes: a
// straightforward consumer of GIR 1.2 XML that populates an [*ir.Module].
// It is kept minimal on purpose (spec §1 scopes the parser out of the
// compiler core) — it recognises the elements and attributes §6.2 lists and
// nothing beyond them; unknown elements under a known container are
// silently skipped, matching encoding/xml's default behavior of ignoring
// fields with no matching struct tag.
package girparser

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GNOME/gi-compile-repository/internal/gierr"
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// Options configures Parse and ParseFile.
type Options struct {
	// IncludeDirs is searched, in order, before GI_GIR_PATH (spec §6.4) for
	// "Name-Version.gir" files named by <include>.
	IncludeDirs []string
}

func (o Options) searchPath() []string {
	dirs := append([]string{}, o.IncludeDirs...)
	if p := os.Getenv("GI_GIR_PATH"); p != "" {
		dirs = append(dirs, filepath.SplitList(p)...)
	}
	return dirs
}

// Parse reads one GIR document from r and converts it into an [*ir.Module],
// resolving its <include> directives against opts' search path. filename is
// used only to label [gierr.InputParseError]s.
func Parse(r io.Reader, filename string, opts Options) (*ir.Module, error) {
	return parse(r, filename, opts, map[string]*ir.Module{})
}

// ParseFile opens path and parses it (the positional INPUT.gir of spec
// §6.3).
func ParseFile(path string, opts Options) (*ir.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &gierr.IOError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path, opts)
}

func parse(r io.Reader, filename string, opts Options, seen map[string]*ir.Module) (*ir.Module, error) {
	var doc girRepository
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, &gierr.InputParseError{File: filename, Column: int(dec.InputOffset()), Err: err}
	}

	ns := doc.Namespace
	m := ir.NewModule(ns.Name, ns.Version, ns.SharedLibrary, ns.CPrefix)
	seen[ns.Name+"-"+ns.Version] = m

	for _, inc := range doc.Includes {
		key := inc.Name + "-" + inc.Version
		if existing, ok := seen[key]; ok {
			m.AddInclude(existing)
			m.Dependencies = append(m.Dependencies, key)
			continue
		}
		incMod, err := resolveInclude(inc, opts, seen)
		if err != nil {
			return nil, err
		}
		m.AddInclude(incMod)
		m.Dependencies = append(m.Dependencies, key)
	}

	c := &converter{m: m}

	for _, a := range ns.Aliases {
		m.Aliases[a.Name] = a.Type.Name
	}

	for i := range ns.Records {
		node, err := c.convertRecord(&ns.Records[i], ir.KindStruct)
		if err != nil {
			return nil, fmt.Errorf("%s: record %s: %w", filename, ns.Records[i].Name, err)
		}
		m.AddEntry(node)
		recordMaps(m, &ns.Records[i])
	}
	for i := range ns.Boxeds {
		node, err := c.convertRecord(&ns.Boxeds[i], ir.KindBoxed)
		if err != nil {
			return nil, fmt.Errorf("%s: boxed %s: %w", filename, ns.Boxeds[i].Name, err)
		}
		m.AddEntry(node)
		recordMaps(m, &ns.Boxeds[i])
	}
	for i := range ns.Unions {
		node, err := c.convertRecord(&ns.Unions[i], ir.KindUnion)
		if err != nil {
			return nil, fmt.Errorf("%s: union %s: %w", filename, ns.Unions[i].Name, err)
		}
		m.AddEntry(node)
		recordMaps(m, &ns.Unions[i])
	}
	for i := range ns.Classes {
		m.AddEntry(c.convertObject(&ns.Classes[i]))
	}
	for i := range ns.Interfaces {
		m.AddEntry(c.convertInterface(&ns.Interfaces[i]))
	}
	for i := range ns.Enums {
		e := ir.NewEnum(m, ns.Enums[i].Name)
		c.fillEnumLike(&e.EnumLike, &ns.Enums[i], typelib.TagInt32)
		m.AddEntry(e)
	}
	for i := range ns.Bitfields {
		f := ir.NewFlags(m, ns.Bitfields[i].Name)
		c.fillEnumLike(&f.EnumLike, &ns.Bitfields[i], typelib.TagUInt32)
		m.AddEntry(f)
	}
	for i := range ns.Functions {
		m.AddEntry(c.convertFunction(&ns.Functions[i]))
	}
	for i := range ns.Callbacks {
		m.AddEntry(c.convertCallback(&ns.Callbacks[i]))
	}
	for i := range ns.Constants {
		m.AddEntry(c.convertConstant(&ns.Constants[i]))
	}

	return m, nil
}

// recordMaps populates the pointer/disguised structure maps that
// Module.IsPointerOrDisguised answers from. Nothing in the compiler
// currently consults them.
func recordMaps(m *ir.Module, gr *girRecord) {
	if boolAttr(gr.Pointer) {
		m.PointerStructures[gr.Name] = true
	}
	if boolAttr(gr.Disguised) {
		m.DisguisedStructures[gr.Name] = true
	}
}

func resolveInclude(inc girInclude, opts Options, seen map[string]*ir.Module) (*ir.Module, error) {
	fname := inc.Name + "-" + inc.Version + ".gir"
	for _, dir := range opts.searchPath() {
		path := filepath.Join(dir, fname)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		return parse(f, path, opts, seen)
	}
	return nil, &gierr.InputParseError{
		File: fname,
		Err:  fmt.Errorf("included namespace %s-%s not found on GI_GIR_PATH or --includedir", inc.Name, inc.Version),
	}
}
