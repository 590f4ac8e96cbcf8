// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"sort"

	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// recordAttrs queues node's attribute map for the post-walk attribute
// table write if it carries any attributes (spec §4.7's "every emitted
// node: record it in the attribute-bearing list").
func (s *state) recordAttrs(offset uint32, attrs *ir.AttrMap) {
	if attrs.Len() == 0 {
		return
	}
	s.attrNodes = append(s.attrNodes, attrRef{offset: offset, attrs: attrs})
	s.nAttrs += attrs.Len()
}

// writeAttributeTable sorts the attribute-bearing list by final blob
// offset and emits the AttributeBlob table (spec §4.8).
func (s *state) writeAttributeTable() uint32 {
	sort.SliceStable(s.attrNodes, func(i, j int) bool {
		return s.attrNodes[i].offset < s.attrNodes[j].offset
	})

	start := s.takeTail(0) // align to a 4-byte boundary, no bytes consumed yet
	for _, ref := range s.attrNodes {
		ref.attrs.Each(func(key, value string) {
			off := s.takeTail(typelib.AttributeBlobSize)
			typelib.AttributeBlob{
				Offset: ref.offset,
				Name:   s.intern(key),
				Value:  s.intern(value),
			}.Encode(s.buf[off:])
		})
	}
	return start
}
