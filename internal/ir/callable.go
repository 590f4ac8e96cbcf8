// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

import "github.com/GNOME/gi-compile-repository/internal/typelib"

// Function is a plain function, method, or constructor (spec §3.1).
type Function struct {
	Base
	Symbol        string
	Deprecated    bool
	IsMethod      bool
	IsSetter      bool
	IsGetter      bool
	IsConstructor bool
	WrapsVFunc    bool
	Throws        bool
	IsAsync       bool

	// SyncFunc/AsyncFunc/FinishFunc name the async linkage sibling: if
	// IsAsync, SyncFunc names the blocking counterpart; otherwise AsyncFunc
	// and FinishFunc name the async counterpart and its finish call. Spec
	// §9 open question: the source overloads a single field for this,
	// selected by is_async; this implementation keeps the two directions
	// in separate fields and resolves whichever is_async selects.
	SyncFunc   string
	AsyncFunc  string
	FinishFunc string

	// PropertyName names the property this accessor reads or writes, set
	// only when IsSetter or IsGetter.
	PropertyName string

	Result *Param
	Params []*Param
}

func NewFunction(m *Module, name string) *Function {
	return &Function{Base: newBase(m, name)}
}

func (f *Function) Kind() Kind { return KindFunction }

// Callback is a function-pointer type, either a top-level entry or a
// field's embedded type (spec §3.1).
type Callback struct {
	Base
	Symbol     string
	Deprecated bool
	Throws     bool
	Result     *Param
	Params     []*Param
}

func NewCallback(m *Module, name string) *Callback {
	return &Callback{Base: newBase(m, name)}
}

func (c *Callback) Kind() Kind { return KindCallback }

// Signal is a GObject signal declaration (spec §3.1).
type Signal struct {
	Base
	RunPhase             typelib.RunPhase
	NoRecurse            bool
	Detailed             bool
	Action               bool
	NoHooks              bool
	HasClassClosure      bool
	TrueStopsEmit        bool
	InstanceTransferFull bool
	// ClassClosureIndex names, via the owning type's vfunc member index,
	// which vfunc implements this signal's class closure.
	ClassClosureIndex int
	Result            *Param
	Params            []*Param
}

func NewSignal(m *Module, name string) *Signal {
	return &Signal{Base: newBase(m, name)}
}

func (s *Signal) Kind() Kind { return KindSignal }

// VFunc is a virtual method slot (spec §3.1).
type VFunc struct {
	Base
	InvokerName           string
	MustChainUp           bool
	MustBeImplemented     bool
	MustNotBeImplemented  bool
	IsClassClosure        bool
	Throws                bool
	IsStatic              bool
	StructOffset          int // -1 if unknown; emitted as typelib.UnknownOffset16
	SyncFunc              string
	AsyncFunc             string
	FinishFunc            string
	Result                *Param
	Params                []*Param
}

func NewVFunc(m *Module, name string) *VFunc {
	return &VFunc{Base: newBase(m, name), StructOffset: -1}
}

func (v *VFunc) Kind() Kind { return KindVFunc }
