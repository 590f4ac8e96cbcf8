// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"strings"

	"github.com/GNOME/gi-compile-repository/internal/gierr"
	"github.com/GNOME/gi-compile-repository/internal/ir"
)

// findEntryNode resolves name to an entry node, synthesizing and appending
// a new XRef if name is a qualified "Namespace.Name" reference with no
// existing XRef for it (spec §4.6). A bare, single-segment name that is not
// present in the module's entries is a fatal [gicompile.ResolutionError].
func (s *state) findEntryNode(name string) (ir.Node, error) {
	if ns, simple, ok := strings.Cut(name, "."); ok {
		if x := s.module.XRefByNamespaceAndName(ns, simple); x != nil {
			return x, nil
		}
		x := ir.NewXRef(s.module, ns, simple)
		s.module.AddEntry(x)
		if len(s.module.Entries) > s.nEntries {
			s.restartNeeded = true
		}
		return x, nil
	}

	if n := s.module.EntryByName(name); n != nil {
		return n, nil
	}
	return nil, &gierr.ResolutionError{Stack: append([]string{}, s.nodeStack...), Name: name}
}

// findEntry returns the 1-based directory index of the entry resolving
// name, or 0 if name could not be resolved to any position (only possible
// transiently mid-attempt, before a restart discards this state).
func (s *state) findEntry(name string) (uint32, error) {
	target, err := s.findEntryNode(name)
	if err != nil {
		return 0, err
	}
	for i, e := range s.module.Entries {
		if e.ID() == target.ID() {
			return uint32(i + 1), nil
		}
	}
	return 0, nil
}

// findMemberIndex returns the 0-based index of the member named name
// within container's member list, or -1 if absent. Used to resolve
// property setter/getter indices and vfunc invoker indices (spec §4.7).
func findMemberIndex(container ir.Container, name string) int {
	for i, m := range container.Members() {
		if m.Name() == name {
			return i
		}
	}
	return -1
}

// findFunctionIndex returns the 0-based index of the named sibling among
// fns, or -1 if absent. Used for Function/VFunc sync/async/finish linkage.
func findFunctionIndex(fns []*ir.Function, name string) int {
	for i, fn := range fns {
		if fn.Name() == name {
			return i
		}
	}
	return -1
}
