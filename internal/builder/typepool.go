// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"fmt"
	"strings"

	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// serializeType produces the canonical textual key used to deduplicate
// non-basic type descriptors (spec §4.5).
func (s *state) serializeType(t *ir.Type) string {
	star := ""
	if t.Pointer {
		star = "*"
	}
	switch t.Tag {
	case typelib.TagArray:
		switch t.ArrayKind {
		case typelib.ArrayArray:
			return fmt.Sprintf("GArray%s%s", braced(s.serializeType(t.Elem)), star)
		case typelib.ArrayPtrArray:
			return fmt.Sprintf("GPtrArray%s%s", braced(s.serializeType(t.Elem)), star)
		case typelib.ArrayByteArray:
			return "GByteArray" + star
		default:
			var qualifiers []string
			switch {
			case t.FixedLength >= 0:
				qualifiers = append(qualifiers, fmt.Sprintf("length=%d", t.FixedLength))
			case t.FixedSize >= 0:
				qualifiers = append(qualifiers, fmt.Sprintf("fixed-size=%d", t.FixedSize))
			}
			if t.ZeroTerminated {
				qualifiers = append(qualifiers, "zero-terminated=1")
			}
			q := ""
			if len(qualifiers) > 0 {
				q = "[" + strings.Join(qualifiers, ",") + "]"
			}
			return fmt.Sprintf("%s%s%s", s.serializeType(t.Elem), q, star)
		}
	case typelib.TagGList:
		return fmt.Sprintf("GList%s", braced(s.serializeType(t.Param1)))
	case typelib.TagGSList:
		return fmt.Sprintf("GSList%s", braced(s.serializeType(t.Param1)))
	case typelib.TagGHash:
		return fmt.Sprintf("GHashTable<%s,%s>", s.serializeType(t.Param1), s.serializeType(t.Param2))
	case typelib.TagError:
		if len(t.Domains) == 0 {
			return "GError"
		}
		return fmt.Sprintf("GError<%s>", strings.Join(t.Domains, ","))
	case typelib.TagInterface:
		return s.interfaceKey(t.InterfaceName) + star
	default:
		return t.Tag.String() + star
	}
}

func braced(inner string) string { return "<" + inner + ">" }

// interfaceKey resolves name to "Namespace.Name" if the target lives in
// another namespace, or bare "Name" if it lives in the current module
// (spec §4.5 Interface case).
func (s *state) interfaceKey(name string) string {
	ns, simple, qualified := strings.Cut(name, ".")
	if !qualified {
		return name
	}
	if ns == s.module.Name {
		return simple
	}
	return name
}

// internType allocates (or reuses) the extended tail blob(s) for a
// non-basic type and returns their offset. Basic types never reach here;
// callers branch on t.Basic() before calling.
func (s *state) internType(t *ir.Type) uint32 {
	key := s.serializeType(t)
	if off, ok := s.typePool[key]; ok {
		return off
	}

	var off uint32
	switch t.Tag {
	case typelib.TagInterface:
		off = s.takeTail(typelib.InterfaceTypeBlobSize)
		idx, err := s.findEntry(t.InterfaceName)
		var blob typelib.InterfaceTypeBlob
		if err == nil {
			blob = typelib.InterfaceTypeBlob{DirectoryIndex: uint16(idx)}
		}
		blob.Encode(s.buf[off:])
	case typelib.TagArray:
		off = s.takeTail(typelib.ArrayTypeBlobSize)
		blob := typelib.ArrayTypeBlob{
			Kind:           t.ArrayKind,
			ZeroTerminated: t.ZeroTerminated,
		}
		switch {
		case t.FixedLength >= 0:
			blob.HasLength = true
			blob.LengthOrSize = uint32(t.FixedLength)
		case t.FixedSize >= 0:
			blob.HasSize = true
			blob.LengthOrSize = uint32(t.FixedSize)
		}
		blob.Encode(s.buf[off:])
		elemOff := s.writeTypeSlot(t.Elem)
		_ = elemOff // element SimpleTypeBlob immediately follows in the tail
	case typelib.TagGList, typelib.TagGSList:
		off = s.takeTail(typelib.ParamTypeBlobSize)
		kind := typelib.ParamGList
		if t.Tag == typelib.TagGSList {
			kind = typelib.ParamGSList
		}
		typelib.ParamTypeBlob{Kind: kind, NParams: 1}.Encode(s.buf[off:])
		s.writeTypeSlot(t.Param1)
	case typelib.TagGHash:
		off = s.takeTail(typelib.ParamTypeBlobSize)
		typelib.ParamTypeBlob{Kind: typelib.ParamGHash, NParams: 2}.Encode(s.buf[off:])
		slots := s.takeTail(2 * typelib.SimpleTypeBlobSize)
		s.putSimpleType(slots, t.Param1)
		s.putSimpleType(slots+typelib.SimpleTypeBlobSize, t.Param2)
	case typelib.TagError:
		off = s.takeTail(typelib.ErrorTypeBlobSize)
		typelib.ErrorTypeBlob{NDomains: uint32(len(t.Domains))}.Encode(s.buf[off:])
		slots := s.takeTail(4 * len(t.Domains))
		for i, d := range t.Domains {
			nameOff := s.intern(d)
			typelib.PutU32(s.buf, int(slots)+4*i, nameOff)
		}
	}

	s.typePool[key] = off
	s.recordAttrs(off, t.Attrs())
	return off
}

// writeTypeSlot reserves and writes a trailing SimpleTypeBlob for a
// directly-nested type (array element, list/hash parameter), returning its
// offset.
func (s *state) writeTypeSlot(t *ir.Type) uint32 {
	off := s.takeTail(typelib.SimpleTypeBlobSize)
	s.putSimpleType(off, t)
	return off
}

// putSimpleType writes t's SimpleTypeBlob at buf[off:off+4], interning or
// deduplicating an extended tail blob for non-basic tags.
func (s *state) putSimpleType(off uint32, t *ir.Type) {
	if t.Basic() {
		typelib.SimpleTypeBlob{Tag: t.Tag, Pointer: t.Pointer}.Encode(s.buf[off:])
		return
	}
	extOff := s.internType(t)
	typelib.SimpleTypeBlob{Extended: true, Offset: extOff}.Encode(s.buf[off:])
}
