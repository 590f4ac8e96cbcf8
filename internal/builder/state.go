// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package builder implements the typelib blob builder: the string pool
// (spec §4.4), type pool (§4.5), cross-reference resolver (§4.6), the main
// two-cursor emission walk (§4.7), and the attribute table writer (§4.8).
//
// The source threads a single mutable builder struct through recursive
// C functions and mutates each node's offset field in place. Here the
// offset side-table lives on state, keyed by ir.ID, per spec §9's design
// note on replacing mutable node fields with a side table.
package builder

import (
	"github.com/GNOME/gi-compile-repository/internal/debug"
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// attrRef records one node queued for attribute-table emission: its final
// blob offset and its attribute map (spec §3.3, §4.8).
type attrRef struct {
	offset uint32
	attrs  *ir.AttrMap
}

// state is the transient build context for one attempt (spec §3.3). A
// restart (new XRefs synthesized past n_entries) discards it entirely and
// allocates a fresh one with the grown entry count.
type state struct {
	module *ir.Module

	buf     []byte
	offset  uint32 // primary cursor: next fixed-blob write position
	offset2 uint32 // tail cursor: next variable-region write position

	stringPool map[string]uint32
	typePool   map[string]uint32

	offsets   map[ir.ID]uint32 // node -> assigned primary-blob offset (0 = unplaced)
	dirOffset uint32           // byte offset of the directory table

	attrNodes  []attrRef
	nAttrs     int
	nodeStack  []string // diagnostic context, pushed/popped around emit(node)

	// functionScopes and propertyScopes track the sibling method/property
	// lists of whatever container is currently being emitted, so a nested
	// Function or VFunc can resolve sync/async/finish/property-accessor
	// linkage by name without threading the container through every call
	// (spec §4.7).
	functionScopes [][]*ir.Function
	propertyScopes [][]*ir.Property

	nEntries      int // entries length as of the start of this attempt
	restartNeeded bool
}

func newState(m *ir.Module, nEntries int, bufSize int) *state {
	return &state{
		module:     m,
		buf:        make([]byte, bufSize),
		stringPool: make(map[string]uint32),
		typePool:   make(map[string]uint32),
		offsets:    make(map[ir.ID]uint32),
		nEntries:   nEntries,
	}
}

func (s *state) pushContext(name string) {
	s.nodeStack = append(s.nodeStack, name)
	debug.Log([]any{"builder"}, "enter", "%s", s.contextString())
}

func (s *state) popContext() {
	s.nodeStack = s.nodeStack[:len(s.nodeStack)-1]
}

func (s *state) contextString() string {
	out := ""
	for i, n := range s.nodeStack {
		if i > 0 {
			out += "."
		}
		out += n
	}
	return out
}

// ensure grows buf (copying) so that it is at least upTo bytes long, with
// headroom beyond that. Reservation from ir.FullSize makes
// this rare; it exists only as a safety net (spec §5 "grown monotonically
// via resize-with-copy").
func (s *state) ensure(upTo uint32) {
	if int(upTo) <= len(s.buf) {
		return
	}
	grown := make([]byte, upTo+upTo/2+64)
	copy(grown, s.buf)
	s.buf = grown
}

func (s *state) align2() { s.offset2 = uint32(typelib.Align4(int(s.offset2))) }

// takeTail reserves n bytes at the tail cursor and returns their start
// offset, growing the buffer if needed. Every variable-length write
// (strings, extended type blobs, signatures, the attribute table) goes
// through this.
func (s *state) takeTail(n int) uint32 {
	s.align2()
	start := s.offset2
	s.ensure(start + uint32(n))
	s.offset2 = start + uint32(n)
	return start
}

// place reserves a node's fixed-width primary blob. Spec §4.7 describes
// two cursors that resynchronize at the start of every top-level entry
// ("offset = offset2; advance offset2 += fixed_size(entry)"); this
// implementation applies that same resync-then-advance step uniformly to
// every node with a primary blob, top-level or nested, which keeps each
// node's header contiguous with the header of the node written
// immediately before it while still satisfying the non-overlap invariant
// (spec §3.4): there is exactly one growing cursor, so two regions can
// never overlap by construction.
func (s *state) place(n int) uint32 {
	s.offset = s.offset2
	off := s.takeTail(n)
	s.offset2 = off + uint32(n)
	return off
}
