// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"fmt"

	"github.com/GNOME/gi-compile-repository/internal/debug"
	"github.com/GNOME/gi-compile-repository/internal/gierr"
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// Options configures one Build call. The zero value builds without a
// directory-index section and without post-build validation; Compile (the
// public entry point) always populates this from the caller's
// CompileOptions.
type Options struct {
	DirectoryIndex bool
	MaxAttempts    int // 0 means the package default (spec §4.6 bounded retry)
}

const defaultMaxAttempts = 64

// Build runs the main two-cursor emission walk over m's entries (spec §4.7)
// and returns the encoded typelib bytes. A reference discovered mid-walk
// that needs a new cross-namespace XRef synthesized past the entry count
// fixed at the start of the attempt forces a full restart with a freshly
// sized directory table (spec §3.5, §4.6): module.Entries only grows across
// attempts, so this terminates.
func Build(m *ir.Module, opts Options) (out []byte, outErr error) {
	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}

	// debug.Assert panics on an internal invariant violation; recovering
	// here turns that into an ordinary error instead of crashing the whole
	// process, logging the trace to the call site when debug logging is on
	// (mirrors the teacher's debug.Stack-on-recover pattern).
	defer func() {
		if r := recover(); r != nil {
			if debug.Enabled {
				debug.Log(nil, "panic", "%v\n%s", r, debug.Stack(3))
			}
			outErr = fmt.Errorf("gicompile: internal error: %v", r)
		}
	}()

	var (
		s   *state
		err error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		nEntries := len(m.Entries)
		s = newState(m, nEntries, estimateSize(m))
		if err = runAttempt(s, nEntries); err != nil {
			return nil, err
		}
		if !s.restartNeeded {
			break
		}
		debug.Log([]any{"builder"}, "restart", "entries grew to %d, retrying", len(m.Entries))
	}
	if s.restartNeeded {
		return nil, &gierr.LayoutError{Node: m.String(), Written: len(m.Entries), Reserved: s.nEntries}
	}

	attrOff := s.writeAttributeTable()
	sectionsOff := writeSections(s, opts)

	h := typelib.Header{
		NEntries:      uint16(len(m.Entries)),
		NLocalEntries: uint16(countLocal(m)),
		Directory:     s.dirOffset,
		NAttributes:   uint32(s.nAttrs),
		Attributes:    attrOff,
		Dependencies:  s.intern(m.DependencyString()),
		Namespace:     s.intern(m.Name),
		NSVersion:     s.intern(m.Version),
		SharedLibrary: s.intern(m.SharedLibrary),
		CPrefix:       s.intern(m.CPrefix),
		Sections:      sectionsOff,
	}
	h.Size = s.offset2
	h.Encode(s.buf)

	return s.buf[:s.offset2], nil
}

// runAttempt performs one full build attempt: header placeholder, directory
// table, then the main entry walk. It never returns a restart as an error;
// callers check s.restartNeeded afterward.
func runAttempt(s *state, nEntries int) error {
	s.takeTail(typelib.HeaderSize) // header written last, once Size is known

	s.dirOffset = s.takeTail(nEntries * typelib.EntryBlobSize)

	for i := 0; i < len(s.module.Entries); i++ {
		if s.restartNeeded {
			return nil
		}
		entry := s.module.Entries[i]
		if err := writeDirSlot(s, i, entry); err != nil {
			return err
		}
	}
	return nil
}

// writeDirSlot emits entry's blob (unless it is an unresolved XRef, which
// has none) and fills in its DirEntry slot.
func writeDirSlot(s *state, index int, entry ir.Node) error {
	slot := s.dirOffset + uint32(index*typelib.EntryBlobSize)

	if x, ok := entry.(*ir.XRef); ok {
		typelib.DirEntry{
			BlobType: typelib.BlobInvalid,
			Local:    false,
			Name:     s.intern(x.Name()),
			Offset:   s.intern(x.Namespace),
		}.Encode(s.buf[slot:])
		return nil
	}

	startOff := s.offset2
	if err := s.emit(entry); err != nil {
		return err
	}
	if s.restartNeeded {
		return nil
	}
	if written := int(s.offset2 - startOff); written > ir.FullSize(entry) {
		return &gierr.LayoutError{Node: entry.Name(), Written: written, Reserved: ir.FullSize(entry)}
	}

	typelib.DirEntry{
		BlobType: blobTypeOf(entry),
		Local:    true,
		Name:     s.intern(entry.Name()),
		Offset:   s.offsets[entry.ID()],
	}.Encode(s.buf[slot:])
	return nil
}

func blobTypeOf(n ir.Node) typelib.BlobType {
	switch n.Kind() {
	case ir.KindFunction:
		return typelib.BlobFunction
	case ir.KindCallback:
		return typelib.BlobCallback
	case ir.KindStruct:
		return typelib.BlobStruct
	case ir.KindBoxed:
		return typelib.BlobBoxed
	case ir.KindEnum:
		return typelib.BlobEnum
	case ir.KindFlags:
		return typelib.BlobFlags
	case ir.KindObject:
		return typelib.BlobObject
	case ir.KindInterface:
		return typelib.BlobInterface
	case ir.KindConstant:
		return typelib.BlobConstant
	case ir.KindUnion:
		return typelib.BlobUnion
	default:
		return typelib.BlobInvalid
	}
}

func countLocal(m *ir.Module) int {
	n := 0
	for _, e := range m.Entries {
		if _, ok := e.(*ir.XRef); !ok {
			n++
		}
	}
	return n
}

// estimateSize sums ir.FullSize over every entry plus a fixed allowance for
// the header, directory table, and interned module-level strings, so the
// common case never hits state.ensure's resize-with-copy path.
func estimateSize(m *ir.Module) int {
	total := typelib.HeaderSize + len(m.Entries)*typelib.EntryBlobSize + 256
	for _, e := range m.Entries {
		total += ir.FullSize(e)
	}
	return total
}

// writeSections writes the fixed two-slot section table (spec §6.1) and
// returns its offset. Slot 0 is the directory-index perfect hash if
// opts.DirectoryIndex is set and phf construction succeeds; slot 1 (or
// slot 0, if the index was omitted) is the SectionEnd terminator.
func writeSections(s *state, opts Options) uint32 {
	off := s.takeTail(typelib.NumSections * typelib.SectionSize)
	slot := 0
	if opts.DirectoryIndex {
		if idxOff, ok := buildDirectoryIndex(s); ok {
			typelib.Section{ID: typelib.SectionDirectoryIndex, Offset: idxOff}.Encode(s.buf[int(off)+slot*typelib.SectionSize:])
			slot++
		}
	}
	typelib.Section{ID: typelib.SectionEnd, Offset: 0}.Encode(s.buf[int(off)+slot*typelib.SectionSize:])
	return off
}
