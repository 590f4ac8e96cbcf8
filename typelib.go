// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package gicompile

import "github.com/GNOME/gi-compile-repository/internal/validate"

// Typelib is a compiled GObject Introspection typelib: the opaque binary
// output of [Compile], ready to be written to a .typelib file. Its blob
// layouts are the ones defined in internal/typelib, not the byte layouts
// libgirepository reads.
type Typelib struct {
	bytes []byte
}

// Bytes returns the encoded typelib. The returned slice must not be
// modified.
func (t *Typelib) Bytes() []byte { return t.bytes }

// Len returns the encoded size in bytes.
func (t *Typelib) Len() int { return len(t.bytes) }

// Validate re-runs the structural checks of internal/validate. Compile
// already does this unless called with WithValidate(false); Validate lets a
// caller re-check a typelib obtained some other way (e.g. read back from
// disk).
func (t *Typelib) Validate() error { return validate.Validate(t.bytes) }
