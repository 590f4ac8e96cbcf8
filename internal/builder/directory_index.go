// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/phf"
)

// buildDirectoryIndex builds a perfect hash over every local entry's name
// and writes it as a tail blob, returning its offset. It returns ok=false
// if construction failed, in which case the caller omits the section
// entirely (spec §4.9). XRef entries are not local; they carry no blob of
// their own and are excluded from the hash the same way n_local_entries
// excludes them from the front of the directory table.
func buildDirectoryIndex(s *state) (uint32, bool) {
	names := make([]string, 0, len(s.module.Entries))
	for _, e := range s.module.Entries {
		if _, ok := e.(*ir.XRef); ok {
			continue
		}
		names = append(names, e.Name())
	}

	table, ok := phf.Build(names)
	if !ok {
		return 0, false
	}
	packed := table.Pack()
	off := s.takeTail(len(packed))
	copy(s.buf[off:], packed)
	return off, true
}
