// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

import "fmt"

// Module bundles one namespace's worth of top-level entries plus the
// transitive-closure maps inherited from its includes (spec §3.2, §4.2).
type Module struct {
	Name          string
	Version       string
	SharedLibrary string // comma-joined if multiple -l flags named this module
	CPrefix       string

	// Dependencies holds "Name-Version" strings in include order.
	Dependencies []string

	// Entries is the ordered list of top-level nodes. Resolution (§4.6) may
	// append synthetic XRef nodes to it during emission.
	Entries []Node

	IncludeModules []*Module

	Aliases             map[string]string // qualified name -> qualified name
	PointerStructures   map[string]bool
	DisguisedStructures map[string]bool

	idCounter uint32
}

// NewModule constructs an empty module (spec §4.2 new).
func NewModule(name, version, sharedLibrary, cPrefix string) *Module {
	return &Module{
		Name:                name,
		Version:             version,
		SharedLibrary:       sharedLibrary,
		CPrefix:             cPrefix,
		Aliases:             make(map[string]string),
		PointerStructures:   make(map[string]bool),
		DisguisedStructures: make(map[string]bool),
	}
}

func (m *Module) nextID() ID {
	m.idCounter++
	return ID(m.idCounter)
}

// AddEntry appends a top-level node to the module.
func (m *Module) AddEntry(n Node) { m.Entries = append(m.Entries, n) }

// AddInclude prepends included to include_modules and merges its transitive
// maps into m (spec §4.2 add_include). Merging is last-write-wins per key,
// matching the source's "later include overrides earlier" behavior since
// merges happen in include order and a later merge simply overwrites.
func (m *Module) AddInclude(included *Module) {
	m.IncludeModules = append([]*Module{included}, m.IncludeModules...)
	for k, v := range included.Aliases {
		m.Aliases[k] = v
	}
	for k := range included.PointerStructures {
		m.PointerStructures[k] = true
	}
	for k := range included.DisguisedStructures {
		m.DisguisedStructures[k] = true
	}
}

// ResolveAlias follows the alias chain starting at name, stopping at the
// first name with no further alias and guarding against cycles (spec §4.2
// resolve_alias). Callers must exclude basic type names before calling.
func (m *Module) ResolveAlias(name string) string {
	seen := map[string]bool{}
	cur := name
	for {
		if seen[cur] {
			return cur // cycle: give up where we started repeating
		}
		seen[cur] = true
		next, ok := m.Aliases[cur]
		if !ok {
			return cur
		}
		cur = next
	}
}

// IsPointerOrDisguised reports whether qualifiedName is known to be a
// pointer structure, a disguised structure, or both (spec §4.2).
func (m *Module) IsPointerOrDisguised(qualifiedName string) (pointer, disguised bool) {
	return m.PointerStructures[qualifiedName], m.DisguisedStructures[qualifiedName]
}

// FindNamespace depth-first searches m and its includes for a module named
// name (spec §4.2 find_namespace).
func (m *Module) FindNamespace(name string) *Module {
	return findNamespace(m, name, map[*Module]bool{})
}

func findNamespace(m *Module, name string, visited map[*Module]bool) *Module {
	if visited[m] {
		return nil
	}
	visited[m] = true
	if m.Name == name {
		return m
	}
	for _, inc := range m.IncludeModules {
		if found := findNamespace(inc, name, visited); found != nil {
			return found
		}
	}
	return nil
}

// DependencyString joins Dependencies with "|", the format stored at the
// header's dependencies string offset (spec §6.1).
func (m *Module) DependencyString() string {
	s := ""
	for i, d := range m.Dependencies {
		if i > 0 {
			s += "|"
		}
		s += d
	}
	return s
}

// EntryByName returns the single-segment lookup used by find_entry_node
// (spec §4.6) for a bare name: any entry whose Name matches.
func (m *Module) EntryByName(name string) Node {
	for _, e := range m.Entries {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// XRefByNamespaceAndName returns the two-segment lookup: an existing XRef
// entry naming (namespace, name), or nil.
func (m *Module) XRefByNamespaceAndName(namespace, name string) *XRef {
	for _, e := range m.Entries {
		if x, ok := e.(*XRef); ok && x.Namespace == namespace && x.Name() == name {
			return x
		}
	}
	return nil
}

func (m *Module) String() string {
	return fmt.Sprintf("%s-%s", m.Name, m.Version)
}
