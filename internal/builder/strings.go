// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import "github.com/GNOME/gi-compile-repository/internal/typelib"

// intern writes s into the tail region and returns its offset, or returns
// the previously recorded offset if s was already interned (spec §4.4). An
// empty string is never interned; callers that allow "no string" use 0.
func (s *state) intern(str string) uint32 {
	if str == "" {
		return 0
	}
	if off, ok := s.stringPool[str]; ok {
		return off
	}
	n := len(str) + 1 // + NUL
	off := s.takeTail(n)
	copy(s.buf[off:], str)
	s.buf[int(off)+len(str)] = 0
	s.align2()
	s.stringPool[str] = off
	return off
}
