// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

import "github.com/GNOME/gi-compile-repository/internal/typelib"

// Field is a struct/union/object/interface data member (spec §3.1).
type Field struct {
	Base
	Readable     bool
	Writable     bool
	Bits         int // 0 if not a bitfield
	StructOffset int // -1 if unknown

	// Exactly one of Type, EmbeddedCallback is set.
	Type             *Type
	EmbeddedCallback *Callback
}

func NewField(m *Module, name string) *Field { return &Field{Base: newBase(m, name), StructOffset: -1} }

func (f *Field) Kind() Kind { return KindField }

// Property is a GObject property declaration (spec §3.1).
type Property struct {
	Base
	Readable        bool
	Writable        bool
	Construct       bool
	ConstructOnly   bool
	Transfer        bool
	ShallowTransfer bool
	SetterName      string
	GetterName      string
	Type            *Type
}

func NewProperty(m *Module, name string) *Property { return &Property{Base: newBase(m, name)} }

func (p *Property) Kind() Kind { return KindProperty }

// Value is one member of an Enum or Flags (spec §3.1).
type Value struct {
	Base
	Value      int64
	Deprecated bool
}

func NewValue(m *Module, name string) *Value { return &Value{Base: newBase(m, name)} }

func (v *Value) Kind() Kind { return KindValue }

// Constant is a top-level typed literal (spec §3.1).
type Constant struct {
	Base
	Type  *Type
	Value string // textual form, parsed into Type's basic representation at emission
}

func NewConstant(m *Module, name string) *Constant { return &Constant{Base: newBase(m, name)} }

func (c *Constant) Kind() Kind { return KindConstant }

// EnumLike is shared shape for Enum and Flags (spec §3.1).
type EnumLike struct {
	Base
	StorageType typelib.TypeTag
	GTypeName   string
	GTypeInit   string
	ErrorDomain string
	Values      []*Value
	Methods     []*Function
}

// Enum is a GEnum declaration.
type Enum struct{ EnumLike }

func NewEnum(m *Module, name string) *Enum {
	e := &Enum{}
	e.Base = newBase(m, name)
	return e
}

func (e *Enum) Kind() Kind { return KindEnum }

// Flags is a GFlags declaration.
type Flags struct{ EnumLike }

func NewFlags(m *Module, name string) *Flags {
	f := &Flags{}
	f.Base = newBase(m, name)
	return f
}

func (f *Flags) Kind() Kind { return KindFlags }

// RecordLike is the shared shape for Struct, Boxed and Union (spec §3.1).
type RecordLike struct {
	Base
	GTypeName     string
	GTypeInit     string
	Alignment     uint32
	Size          uint32
	CopyFunction  string
	FreeFunction  string
	Disguised     bool
	Opaque        bool
	Pointer       bool
	IsGTypeStruct bool
	Foreign       bool
	members       []Node // Fields and Functions, insertion-sorted by compare()
}

func (r *RecordLike) Members() []Node   { return r.members }
func (r *RecordLike) AddMember(n Node)  { r.members = insertSorted(r.members, n) }

// Struct is a plain GIR record (spec §3.1).
type Struct struct{ RecordLike }

func NewStruct(m *Module, name string) *Struct {
	s := &Struct{}
	s.Base = newBase(m, name)
	return s
}

func (s *Struct) Kind() Kind { return KindStruct }

// Boxed is a glib:boxed record with its own registration functions.
type Boxed struct{ RecordLike }

func NewBoxed(m *Module, name string) *Boxed {
	b := &Boxed{}
	b.Base = newBase(m, name)
	return b
}

func (b *Boxed) Kind() Kind { return KindBoxed }

// Union is a GIR union, optionally discriminated (spec §3.1).
type Union struct {
	RecordLike
	Discriminators      []*Value
	DiscriminatorType   *Type
	DiscriminatorOffset int // -1 if none
}

func NewUnion(m *Module, name string) *Union {
	u := &Union{DiscriminatorOffset: -1}
	u.Base = newBase(m, name)
	return u
}

func (u *Union) Kind() Kind { return KindUnion }

// ClassLike is the shared shape for Object and Interface (spec §3.1).
type ClassLike struct {
	Base
	GTypeName        string
	GTypeInit        string
	GTypeStruct      string
	RefFunction      string
	UnrefFunction    string
	SetValueFunction string
	GetValueFunction string
	Deprecated       bool
	members          []Node // Field, Property, Function, Signal, VFunc, Constant
}

func (c *ClassLike) Members() []Node  { return c.members }
func (c *ClassLike) AddMember(n Node) { c.members = insertSorted(c.members, n) }

// Object is a GObject class (spec §3.1).
type Object struct {
	ClassLike
	ParentName  string // "" if fundamental/root
	Interfaces  []string
	Abstract    bool
	Final       bool
	Fundamental bool
}

func NewObject(m *Module, name string) *Object {
	o := &Object{}
	o.Base = newBase(m, name)
	return o
}

func (o *Object) Kind() Kind { return KindObject }

// Interface is a GType interface (spec §3.1).
type Interface struct {
	ClassLike
	Prerequisites []string
}

func NewInterface(m *Module, name string) *Interface {
	i := &Interface{}
	i.Base = newBase(m, name)
	return i
}

func (i *Interface) Kind() Kind { return KindInterface }

// XRef marks an unresolved cross-module reference (spec §3.1). Name() on
// Base carries the simple name; Namespace carries the qualifying module.
type XRef struct {
	Base
	Namespace string
}

func NewXRef(m *Module, namespace, name string) *XRef {
	return &XRef{Base: newBase(m, name), Namespace: namespace}
}

func (x *XRef) Kind() Kind { return KindXRef }
