// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

import (
	"gopkg.in/yaml.v3"

	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// yamlParam and yamlEntry are the trimmed, marshal-friendly shadows of
// Param and the top-level Node variants that DumpYAML prints. They exist
// because Node's concrete types carry unexported fields (Base.id,
// Base.name) that yaml.v3 cannot see through reflection.
type yamlParam struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type,omitempty"`
}

type yamlEntry struct {
	Kind   string      `yaml:"kind"`
	Name   string      `yaml:"name"`
	Symbol string      `yaml:"symbol,omitempty"`
	Return *yamlParam  `yaml:"return,omitempty"`
	Params []yamlParam `yaml:"params,omitempty"`
}

type yamlModule struct {
	Namespace     string      `yaml:"namespace"`
	Version       string      `yaml:"version"`
	SharedLibrary string      `yaml:"sharedLibrary,omitempty"`
	Dependencies  []string    `yaml:"dependencies,omitempty"`
	Entries       []yamlEntry `yaml:"entries"`
}

func dumpType(t *Type) *yamlParam {
	if t == nil {
		return nil
	}
	name := t.Tag.String()
	if t.Tag == typelib.TagInterface && t.InterfaceName != "" {
		name = t.InterfaceName
	}
	return &yamlParam{Type: name}
}

func dumpParams(params []*Param) []yamlParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]yamlParam, 0, len(params))
	for _, p := range params {
		typ := ""
		if p.Type != nil {
			typ = p.Type.Tag.String()
		}
		out = append(out, yamlParam{Name: p.Name(), Type: typ})
	}
	return out
}

func dumpEntry(n Node) yamlEntry {
	e := yamlEntry{Kind: n.Kind().String(), Name: n.Name()}
	switch v := n.(type) {
	case *Function:
		e.Symbol = v.Symbol
		e.Params = dumpParams(v.Params)
		if v.Result != nil {
			e.Return = dumpType(v.Result.Type)
		}
	case *Callback:
		e.Symbol = v.Symbol
		e.Params = dumpParams(v.Params)
		if v.Result != nil {
			e.Return = dumpType(v.Result.Type)
		}
	case *XRef:
		e.Symbol = v.Namespace
	}
	return e
}

// DumpYAML renders a structural summary of m for diagnostics: every
// top-level entry's kind, name, and (for callables) signature. It is not
// part of the typelib format and nothing in the builder reads it back; it
// exists for ad-hoc debugging and tests that inspect a parsed module before
// compilation (cmd/dump-typelib does not call it), the way the teacher's debug tooling
// prints intermediate protobuf descriptors.
func DumpYAML(m *Module) ([]byte, error) {
	ym := yamlModule{
		Namespace:     m.Name,
		Version:       m.Version,
		SharedLibrary: m.SharedLibrary,
		Dependencies:  m.Dependencies,
	}
	for _, n := range m.Entries {
		ym.Entries = append(ym.Entries, dumpEntry(n))
	}
	return yaml.Marshal(ym)
}
