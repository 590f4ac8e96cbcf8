// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package ir implements the heterogeneous node tree that a GIR parser
// populates and the typelib builder walks (spec §3.1, §4.1).
//
// The source this is modeled on represents every variant as one C struct
// with a tag field and an embedded union, accessed through unchecked casts.
// Here each variant is its own Go type implementing Node; ID identifies a
// node across the build without requiring the node itself to be mutable,
// so the offset a node is eventually assigned during emission lives in a
// side table owned by the builder (internal/builder), not on the node.
package ir

// ID is an arena index assigned to every node when it is created. It is the
// stable handle used by the builder's offset side-table and by diagnostics,
// standing in for the pointer identity the source relies on.
type ID uint32

// Kind is the variant tag of a Node (spec §3.1).
type Kind int

const (
	KindFunction Kind = iota
	KindCallback
	KindStruct
	KindBoxed
	KindEnum
	KindFlags
	KindObject
	KindInterface
	KindConstant
	KindUnion
	KindParam
	KindType
	KindProperty
	KindSignal
	KindValue
	KindVFunc
	KindField
	KindXRef
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindCallback:
		return "Callback"
	case KindStruct:
		return "Struct"
	case KindBoxed:
		return "Boxed"
	case KindEnum:
		return "Enum"
	case KindFlags:
		return "Flags"
	case KindObject:
		return "Object"
	case KindInterface:
		return "Interface"
	case KindConstant:
		return "Constant"
	case KindUnion:
		return "Union"
	case KindParam:
		return "Param"
	case KindType:
		return "Type"
	case KindProperty:
		return "Property"
	case KindSignal:
		return "Signal"
	case KindValue:
		return "Value"
	case KindVFunc:
		return "VFunc"
	case KindField:
		return "Field"
	case KindXRef:
		return "XRef"
	default:
		return "Invalid"
	}
}

// Node is implemented by every IR variant. can_have_members(node) from
// spec §4.1 is expressed as the separate Container interface below rather
// than a free function, since only five variants satisfy it.
type Node interface {
	ID() ID
	Kind() Kind
	// Name returns the node's name, or "" for unnamed nodes (every Type,
	// and the Param that holds a callable's result).
	Name() string
	Attrs() *AttrMap
	Module() *Module
}

// Base is embedded in every concrete node type and supplies the identity,
// name, owning module, and attribute map common to all variants.
type Base struct {
	id     ID
	name   string
	module *Module
	attrs  AttrMap
}

func newBase(m *Module, name string) Base {
	return Base{id: m.nextID(), name: name, module: m, attrs: AttrMap{}}
}

func (b *Base) ID() ID             { return b.id }
func (b *Base) Name() string       { return b.name }
func (b *Base) Attrs() *AttrMap    { return &b.attrs }
func (b *Base) Module() *Module    { return b.module }

// Container is implemented by the five variants that can own a sorted
// member list (spec §4.1 can_have_members): Object, Interface, Boxed,
// Struct, and Union (members: fields and methods).
type Container interface {
	Node
	Members() []Node
	AddMember(n Node)
}

// CanHaveMembers mirrors spec §4.1's can_have_members predicate.
func CanHaveMembers(n Node) bool {
	switch n.Kind() {
	case KindObject, KindInterface, KindBoxed, KindStruct, KindUnion:
		return true
	default:
		return false
	}
}
