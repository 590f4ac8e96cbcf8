// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

import "github.com/GNOME/gi-compile-repository/internal/typelib"

// Type is the variant describing a value's shape (spec §3.1 Type).
type Type struct {
	Base
	Tag     typelib.TypeTag
	Pointer bool

	// Array (Tag == TagArray)
	Elem           *Type
	ZeroTerminated bool
	FixedLength    int // parameter index, -1 if unset
	FixedSize      int // byte count, -1 if unset
	ArrayKind      typelib.ArrayKind

	// GList / GSList (one param) and GHash (two params)
	Param1 *Type
	Param2 *Type

	// Interface: possibly "Namespace.Name"
	InterfaceName string

	// Error: optional list of domain names
	Domains []string
}

func NewType(m *Module, tag typelib.TypeTag) *Type {
	return &Type{Base: newBase(m, ""), Tag: tag, FixedLength: -1, FixedSize: -1}
}

func (t *Type) Kind() Kind { return KindType }

// Basic mirrors TypeTag.Basic: true for every tag except the structural
// ones that allocate an extended tail blob.
func (t *Type) Basic() bool { return t.Tag.Basic() }

// Param is a function/callback/signal/vfunc argument or the synthetic
// result slot (spec §3.1 Param).
type Param struct {
	Base
	Direction       typelib.Direction
	CallerAllocates bool
	Optional        bool
	Nullable        bool
	Retval          bool
	Skip            bool
	Transfer        bool
	ShallowTransfer bool
	Scope           typelib.Scope
	Closure         int // parameter index, -1 if unset
	Destroy         int
	Type            *Type
}

func NewParam(m *Module, name string) *Param {
	return &Param{Base: newBase(m, name), Closure: -1, Destroy: -1}
}

func (p *Param) Kind() Kind { return KindParam }
