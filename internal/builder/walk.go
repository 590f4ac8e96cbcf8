// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"fmt"
	"strconv"

	"github.com/GNOME/gi-compile-repository/internal/debug"
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// emit is build_typelib(node) (spec §4.7): it dispatches to the
// per-variant writer, pushing and popping the diagnostic context stack
// around the call so a [gierr.ResolutionError] raised anywhere underneath
// carries the full "Outer.Inner.Name" path (spec §9 "build stack for
// diagnostics").
func (s *state) emit(n ir.Node) error {
	name := n.Name()
	if name == "" {
		name = "<anonymous>"
	}
	s.pushContext(name)
	defer s.popContext()

	before := s.offsets[n.ID()]
	debug.Assert(before == 0, "node %s emitted twice", name)

	var err error
	switch v := n.(type) {
	case *ir.Function:
		err = s.emitFunction(v)
	case *ir.Callback:
		err = s.emitCallback(v)
	case *ir.Struct:
		err = s.emitRecord(v.Kind(), &v.RecordLike, nil, -1, nil)
	case *ir.Boxed:
		err = s.emitRecord(v.Kind(), &v.RecordLike, nil, -1, nil)
	case *ir.Union:
		err = s.emitRecord(v.Kind(), &v.RecordLike, v.Discriminators, v.DiscriminatorOffset, v.DiscriminatorType)
	case *ir.Enum:
		err = s.emitEnumLike(&v.EnumLike)
	case *ir.Flags:
		err = s.emitEnumLike(&v.EnumLike)
	case *ir.Object:
		err = s.emitObject(v)
	case *ir.Interface:
		err = s.emitInterface(v)
	case *ir.Constant:
		err = s.emitConstant(v)
	default:
		return fmt.Errorf("gicompile: %s cannot be a top-level entry", n.Kind())
	}
	return err
}

func (s *state) emitFunction(f *ir.Function) error {
	off := s.place(typelib.FunctionBlobSize)
	s.offsets[f.ID()] = off

	sigOff, err := s.writeSignature(f.Result, f.Params)
	if err != nil {
		return err
	}

	blob := typelib.FunctionBlob{
		Name:          s.intern(f.Name()),
		Symbol:        s.intern(f.Symbol),
		Signature:     sigOff,
		Deprecated:    f.Deprecated,
		IsMethod:      f.IsMethod,
		IsSetter:      f.IsSetter,
		IsGetter:      f.IsGetter,
		IsConstructor: f.IsConstructor,
		WrapsVFunc:    f.WrapsVFunc,
		Throws:        f.Throws,
		IsAsync:       f.IsAsync,
		Index:         s.accessorIndex(f),
		SyncFunc:      typelib.AsyncSentinel,
		AsyncFunc:     typelib.AsyncSentinel,
		FinishFunc:    typelib.AsyncSentinel,
	}
	if f.IsAsync {
		if idx := findFunctionIndex(s.enclosingFunctions(), f.SyncFunc); idx >= 0 {
			blob.SyncFunc = uint16(idx)
		}
	} else {
		if idx := findFunctionIndex(s.enclosingFunctions(), f.AsyncFunc); idx >= 0 {
			blob.AsyncFunc = uint16(idx)
		}
		if idx := findFunctionIndex(s.enclosingFunctions(), f.FinishFunc); idx >= 0 {
			blob.FinishFunc = uint16(idx)
		}
	}
	blob.Encode(s.buf[off:])
	s.recordAttrs(off, f.Attrs())
	if f.Result != nil {
		s.recordAttrs(sigOff, f.Result.Attrs())
	}
	return nil
}

// enclosingFunctions returns the sibling function list of whatever
// container is currently being emitted, used to resolve sync/async/finish
// linkage by name (spec §4.7). It is maintained as a small stack because
// top-level functions have no container.
func (s *state) enclosingFunctions() []*ir.Function {
	if len(s.functionScopes) == 0 {
		return nil
	}
	return s.functionScopes[len(s.functionScopes)-1]
}

// accessorIndex returns the 0-based index of the property f is a setter or
// getter for, within the enclosing container's property list, or
// AccessorSentinel if f is not an accessor or no property matches.
func (s *state) accessorIndex(f *ir.Function) uint16 {
	if !f.IsSetter && !f.IsGetter {
		return typelib.AccessorSentinel
	}
	if len(s.propertyScopes) == 0 {
		return typelib.AccessorSentinel
	}
	for i, p := range s.propertyScopes[len(s.propertyScopes)-1] {
		if p.Name() == f.PropertyName {
			return uint16(i)
		}
	}
	return typelib.AccessorSentinel
}

func (s *state) emitCallback(c *ir.Callback) error {
	off := s.place(typelib.CallbackBlobSize)
	s.offsets[c.ID()] = off

	sigOff, err := s.writeSignature(c.Result, c.Params)
	if err != nil {
		return err
	}

	typelib.CallbackBlob{
		Name:       s.intern(c.Name()),
		Signature:  sigOff,
		Deprecated: c.Deprecated,
		Throws:     c.Throws,
	}.Encode(s.buf[off:])
	s.recordAttrs(off, c.Attrs())
	if c.Result != nil {
		s.recordAttrs(sigOff, c.Result.Attrs())
	}
	return nil
}

// writeSignature emits a SignatureBlob followed by each parameter's
// ArgBlob (spec §4.7 "Function / Callback / Signal / VFunc").
func (s *state) writeSignature(result *ir.Param, params []*ir.Param) (uint32, error) {
	off := s.place(typelib.SignatureBlobSize)

	sig := typelib.SignatureBlob{NArguments: uint16(len(params))}
	if result != nil {
		sig.MayReturnNull = result.Nullable
		sig.CallerOwnsReturn = result.Transfer
		sig.SkipReturn = result.Skip
		if result.Type != nil {
			sig.ReturnType = s.simpleTypeWord(result.Type)
		}
	}
	sig.Encode(s.buf[off:])

	for _, p := range params {
		if err := s.emitParam(p); err != nil {
			return off, err
		}
	}
	return off, nil
}

func (s *state) emitParam(p *ir.Param) error {
	off := s.place(typelib.ArgBlobSize)
	s.offsets[p.ID()] = off

	blob := typelib.ArgBlob{
		Name:            s.intern(p.Name()),
		Direction:       p.Direction,
		CallerAllocates: p.CallerAllocates,
		Optional:        p.Optional,
		Nullable:        p.Nullable,
		Retval:          p.Retval,
		Skip:            p.Skip,
		Transfer:        p.Transfer,
		ShallowTransfer: p.ShallowTransfer,
		Scope:           p.Scope,
		Closure:         closureSlot(p.Closure),
		Destroy:         closureSlot(p.Destroy),
	}
	blob.Encode(s.buf[off:])
	if p.Type != nil {
		s.putSimpleType(off+12, p.Type)
	}
	s.recordAttrs(off, p.Attrs())
	return nil
}

func closureSlot(i int) uint16 {
	if i < 0 {
		return typelib.AsyncSentinel
	}
	return uint16(i)
}

func (s *state) emitField(f *ir.Field, structOffset int) error {
	off := s.place(typelib.FieldBlobSize)
	s.offsets[f.ID()] = off

	so := structOffset
	blob := typelib.FieldBlob{
		Name:         s.intern(f.Name()),
		Readable:     f.Readable,
		Writable:     f.Writable,
		Bits:         uint16(f.Bits),
		StructOffset: typelib.UnknownOffset16,
	}
	if so >= 0 {
		blob.StructOffset = uint16(so)
	}
	if f.EmbeddedCallback != nil {
		blob.HasEmbeddedType = true
		if err := s.emitCallback(f.EmbeddedCallback); err != nil {
			return err
		}
		blob.TypeOrCallback = s.offsets[f.EmbeddedCallback.ID()]
	}
	blob.Encode(s.buf[off:])
	if f.EmbeddedCallback == nil && f.Type != nil {
		word := s.simpleTypeWord(f.Type)
		typelib.PutU32(s.buf, int(off)+10, word)
	}
	s.recordAttrs(off, f.Attrs())
	return nil
}

// simpleTypeWord computes a SimpleTypeBlob's encoded word without writing
// it, for blobs that carry the type word as one of their own fields: the
// signature's return type, a constant's type, a union's discriminator type,
// and FieldBlob, whose type slot is not itself 4-byte aligned.
func (s *state) simpleTypeWord(t *ir.Type) uint32 {
	if t.Basic() {
		return typelib.EncodeSimpleTypeInline(t.Tag, t.Pointer)
	}
	return typelib.EncodeSimpleTypeOffset(s.internType(t))
}

func (s *state) emitProperty(p *ir.Property, container ir.Container) error {
	off := s.place(typelib.PropertyBlobSize)
	s.offsets[p.ID()] = off

	blob := typelib.PropertyBlob{
		Name:            s.intern(p.Name()),
		Readable:        p.Readable,
		Writable:        p.Writable,
		Construct:       p.Construct,
		ConstructOnly:   p.ConstructOnly,
		Transfer:        p.Transfer,
		ShallowTransfer: p.ShallowTransfer,
		SetterIndex:     typelib.AccessorSentinel,
		GetterIndex:     typelib.AccessorSentinel,
	}
	if container != nil {
		if idx := findMemberIndex(container, p.SetterName); idx >= 0 {
			blob.SetterIndex = uint16(idx)
		}
		if idx := findMemberIndex(container, p.GetterName); idx >= 0 {
			blob.GetterIndex = uint16(idx)
		}
	}
	blob.Encode(s.buf[off:])
	if p.Type != nil {
		s.putSimpleType(off+12, p.Type)
	}
	s.recordAttrs(off, p.Attrs())
	return nil
}

func (s *state) emitValue(v *ir.Value) error {
	off := s.place(typelib.ValueBlobSize)
	s.offsets[v.ID()] = off
	typelib.ValueBlob{
		Name:          s.intern(v.Name()),
		Value:         int32(v.Value),
		Deprecated:    v.Deprecated,
		UnsignedValue: v.Value >= 0,
	}.Encode(s.buf[off:])
	s.recordAttrs(off, v.Attrs())
	return nil
}

func (s *state) emitConstant(c *ir.Constant) error {
	off := s.place(typelib.ConstantBlobSize)
	s.offsets[c.ID()] = off

	valOff, valSize := s.writeConstantValue(c)
	typeWord := s.simpleTypeWord(c.Type)

	typelib.ConstantBlob{
		Name:        s.intern(c.Name()),
		Type:        typeWord,
		ValueOffset: valOff,
		ValueSize:   uint32(valSize),
	}.Encode(s.buf[off:])
	s.recordAttrs(off, c.Attrs())
	return nil
}

func (s *state) emitRecord(kind ir.Kind, r *ir.RecordLike, discriminators []*ir.Value, discOffset int, discType *ir.Type) error {
	blobSize := typelib.StructBlobSize
	if kind == ir.KindUnion {
		blobSize = typelib.UnionBlobSize
	}
	off := s.place(blobSize)
	s.offsets[r.ID()] = off

	var fields, methods []ir.Node
	for _, m := range r.Members() {
		if _, ok := m.(*ir.Field); ok {
			fields = append(fields, m)
		} else {
			methods = append(methods, m)
		}
	}

	var fns []*ir.Function
	for _, m := range methods {
		if f, ok := m.(*ir.Function); ok {
			fns = append(fns, f)
		}
	}
	s.functionScopes = append(s.functionScopes, fns)
	defer func() { s.functionScopes = s.functionScopes[:len(s.functionScopes)-1] }()

	for _, m := range fields {
		fld := m.(*ir.Field)
		if err := s.emitField(fld, fld.StructOffset); err != nil {
			return err
		}
	}
	for _, fn := range fns {
		if err := s.emitFunction(fn); err != nil {
			return err
		}
	}

	if kind == ir.KindUnion {
		for _, d := range discriminators {
			if err := s.emitValue(d); err != nil {
				return err
			}
		}
	}

	switch kind {
	case ir.KindUnion:
		var discTypeWord uint32
		if discType != nil {
			discTypeWord = s.simpleTypeWord(discType)
		}
		typelib.UnionBlob{
			Name:                s.intern(memberOwnerName(r)),
			GTypeName:           s.intern(r.GTypeName),
			GTypeInit:           s.intern(r.GTypeInit),
			CopyFunction:        s.intern(r.CopyFunction),
			FreeFunction:        s.intern(r.FreeFunction),
			Size:                r.Size,
			NFields:             uint16(len(fields)),
			NFunctions:          uint16(len(fns)),
			DiscriminatorOffset: int32(discOffset),
			DiscriminatorType:   discTypeWord,
			NDiscriminators:     uint16(len(discriminators)),
			Deprecated:          false,
		}.Encode(s.buf[off:])
	default:
		typelib.StructBlob{
			Name:          s.intern(memberOwnerName(r)),
			GTypeName:     s.intern(r.GTypeName),
			GTypeInit:     s.intern(r.GTypeInit),
			CopyFunction:  s.intern(r.CopyFunction),
			FreeFunction:  s.intern(r.FreeFunction),
			Size:          r.Size,
			Alignment:     uint16(r.Alignment),
			NFields:       uint16(len(fields)),
			NMethods:      uint16(len(fns)),
			Disguised:     r.Disguised,
			Opaque:        r.Opaque,
			IsGTypeStruct: r.IsGTypeStruct,
			Foreign:       r.Foreign,
		}.Encode(s.buf[off:])
	}
	s.recordAttrs(off, r.Attrs())
	return nil
}

// memberOwnerName returns the record's name through the Name method that
// RecordLike gets from its embedded Base. emitRecord uses it because it
// receives only the embedded RecordLike, not the concrete node.
func memberOwnerName(r *ir.RecordLike) string { return r.Name() }

func (s *state) emitEnumLike(e *ir.EnumLike) error {
	off := s.place(typelib.EnumBlobSize)
	s.offsets[e.ID()] = off

	for _, v := range e.Values {
		if err := s.emitValue(v); err != nil {
			return err
		}
	}
	s.functionScopes = append(s.functionScopes, e.Methods)
	for _, fn := range e.Methods {
		if err := s.emitFunction(fn); err != nil {
			return err
		}
	}
	s.functionScopes = s.functionScopes[:len(s.functionScopes)-1]

	typelib.EnumBlob{
		Name:        s.intern(e.Name()),
		GTypeName:   s.intern(e.GTypeName),
		GTypeInit:   s.intern(e.GTypeInit),
		ErrorDomain: s.intern(e.ErrorDomain),
		NValues:     uint16(len(e.Values)),
		NMethods:    uint16(len(e.Methods)),
		StorageType: e.StorageType,
	}.Encode(s.buf[off:])
	s.recordAttrs(off, e.Attrs())
	return nil
}

func (s *state) emitObject(o *ir.Object) error {
	off := s.place(typelib.ObjectBlobSize)
	s.offsets[o.ID()] = off

	// 16-bit interface indices, 4-byte aligned (spec §4.7 Object).
	s.align2()
	ifaceOff := s.takeTail(typelib.Align4(len(o.Interfaces) * 2))
	for i, name := range o.Interfaces {
		idx, err := s.findEntry(name)
		if err != nil {
			return err
		}
		typelib.PutU16(s.buf, int(ifaceOff)+i*2, uint16(idx))
	}

	var fields, props, fns, signals, vfuncs, consts []ir.Node
	for _, m := range o.Members() {
		switch m.(type) {
		case *ir.Field:
			fields = append(fields, m)
		case *ir.Property:
			props = append(props, m)
		case *ir.Function:
			fns = append(fns, m)
		case *ir.Signal:
			signals = append(signals, m)
		case *ir.VFunc:
			vfuncs = append(vfuncs, m)
		case *ir.Constant:
			consts = append(consts, m)
		}
	}

	var fnList []*ir.Function
	for _, m := range fns {
		fnList = append(fnList, m.(*ir.Function))
	}
	var propList []*ir.Property
	for _, m := range props {
		propList = append(propList, m.(*ir.Property))
	}
	s.functionScopes = append(s.functionScopes, fnList)
	s.propertyScopes = append(s.propertyScopes, propList)

	nFieldCallbacks := 0
	for _, m := range fields {
		fld := m.(*ir.Field)
		if fld.EmbeddedCallback != nil {
			nFieldCallbacks++
		}
		if err := s.emitField(fld, fld.StructOffset); err != nil {
			return err
		}
	}
	for _, m := range props {
		if err := s.emitProperty(m.(*ir.Property), o); err != nil {
			return err
		}
	}
	for _, fn := range fnList {
		if err := s.emitFunction(fn); err != nil {
			return err
		}
	}
	for _, m := range signals {
		if err := s.emitSignal(m.(*ir.Signal)); err != nil {
			return err
		}
	}
	for _, m := range vfuncs {
		if err := s.emitVFunc(m.(*ir.VFunc), o); err != nil {
			return err
		}
	}
	for _, m := range consts {
		if err := s.emitConstant(m.(*ir.Constant)); err != nil {
			return err
		}
	}
	s.functionScopes = s.functionScopes[:len(s.functionScopes)-1]
	s.propertyScopes = s.propertyScopes[:len(s.propertyScopes)-1]

	var parentIdx uint32
	if o.ParentName != "" {
		idx, err := s.findEntry(o.ParentName)
		if err != nil {
			return err
		}
		parentIdx = idx
	}

	typelib.ObjectBlob{
		Name:             s.intern(o.Name()),
		GTypeName:        s.intern(o.GTypeName),
		GTypeInit:        s.intern(o.GTypeInit),
		Parent:           uint16(parentIdx),
		GTypeStruct:      s.intern(o.GTypeStruct),
		RefFunction:      s.intern(o.RefFunction),
		UnrefFunction:    s.intern(o.UnrefFunction),
		SetValueFunction: s.intern(o.SetValueFunction),
		GetValueFunction: s.intern(o.GetValueFunction),
		NInterfaces:      uint16(len(o.Interfaces)),
		NFields:          uint16(len(fields)),
		NProperties:      uint16(len(props)),
		NMethods:         uint16(len(fnList)),
		NSignals:         uint16(len(signals)),
		NVFuncs:          uint16(len(vfuncs)),
		NConstants:       uint16(len(consts)),
		NFieldCallbacks:  uint16(nFieldCallbacks),
		Deprecated:       o.Deprecated,
		Abstract:         o.Abstract,
		Fundamental:      o.Fundamental,
		Final:            o.Final,
	}.Encode(s.buf[off:])
	s.recordAttrs(off, o.Attrs())
	return nil
}

func (s *state) emitInterface(i *ir.Interface) error {
	off := s.place(typelib.InterfaceBlobSize)
	s.offsets[i.ID()] = off

	s.align2()
	prereqOff := s.takeTail(typelib.Align4(len(i.Prerequisites) * 2))
	for n, name := range i.Prerequisites {
		idx, err := s.findEntry(name)
		if err != nil {
			return err
		}
		typelib.PutU16(s.buf, int(prereqOff)+n*2, uint16(idx))
	}

	var props, fns, signals, vfuncs, consts []ir.Node
	for _, m := range i.Members() {
		switch m.(type) {
		case *ir.Property:
			props = append(props, m)
		case *ir.Function:
			fns = append(fns, m)
		case *ir.Signal:
			signals = append(signals, m)
		case *ir.VFunc:
			vfuncs = append(vfuncs, m)
		case *ir.Constant:
			consts = append(consts, m)
		}
	}
	var fnList []*ir.Function
	for _, m := range fns {
		fnList = append(fnList, m.(*ir.Function))
	}
	var propList []*ir.Property
	for _, m := range props {
		propList = append(propList, m.(*ir.Property))
	}
	s.functionScopes = append(s.functionScopes, fnList)
	s.propertyScopes = append(s.propertyScopes, propList)

	for _, m := range props {
		if err := s.emitProperty(m.(*ir.Property), i); err != nil {
			return err
		}
	}
	for _, fn := range fnList {
		if err := s.emitFunction(fn); err != nil {
			return err
		}
	}
	for _, m := range signals {
		if err := s.emitSignal(m.(*ir.Signal)); err != nil {
			return err
		}
	}
	for _, m := range vfuncs {
		if err := s.emitVFunc(m.(*ir.VFunc), i); err != nil {
			return err
		}
	}
	for _, m := range consts {
		if err := s.emitConstant(m.(*ir.Constant)); err != nil {
			return err
		}
	}
	s.functionScopes = s.functionScopes[:len(s.functionScopes)-1]
	s.propertyScopes = s.propertyScopes[:len(s.propertyScopes)-1]

	typelib.InterfaceBlob{
		Name:           s.intern(i.Name()),
		GTypeName:      s.intern(i.GTypeName),
		GTypeInit:      s.intern(i.GTypeInit),
		GTypeStruct:    s.intern(i.GTypeStruct),
		NPrerequisites: uint16(len(i.Prerequisites)),
		NProperties:    uint16(len(props)),
		NMethods:       uint16(len(fnList)),
		NSignals:       uint16(len(signals)),
		NVFuncs:        uint16(len(vfuncs)),
		NConstants:     uint16(len(consts)),
		Deprecated:     i.Deprecated,
	}.Encode(s.buf[off:])
	s.recordAttrs(off, i.Attrs())
	return nil
}

func (s *state) emitSignal(sig *ir.Signal) error {
	off := s.place(typelib.SignalBlobSize)
	s.offsets[sig.ID()] = off

	sigOff, err := s.writeSignature(sig.Result, sig.Params)
	if err != nil {
		return err
	}

	typelib.SignalBlob{
		Name:                 s.intern(sig.Name()),
		Signature:            sigOff,
		RunPhase:             sig.RunPhase,
		NoRecurse:            sig.NoRecurse,
		Detailed:             sig.Detailed,
		Action:               sig.Action,
		NoHooks:              sig.NoHooks,
		HasClassClosure:      sig.HasClassClosure,
		TrueStopsEmit:        sig.TrueStopsEmit,
		InstanceTransferFull: sig.InstanceTransferFull,
		ClassClosure:         uint16(sig.ClassClosureIndex),
	}.Encode(s.buf[off:])
	s.recordAttrs(off, sig.Attrs())
	return nil
}

func (s *state) emitVFunc(v *ir.VFunc, container ir.Container) error {
	off := s.place(typelib.VFuncBlobSize)
	s.offsets[v.ID()] = off

	sigOff, err := s.writeSignature(v.Result, v.Params)
	if err != nil {
		return err
	}

	blob := typelib.VFuncBlob{
		Name:                 s.intern(v.Name()),
		Signature:            sigOff,
		Invoker:              typelib.AccessorSentinel,
		MustChainUp:          v.MustChainUp,
		MustBeImplemented:    v.MustBeImplemented,
		MustNotBeImplemented: v.MustNotBeImplemented,
		IsClassClosure:       v.IsClassClosure,
		Throws:               v.Throws,
		IsStatic:             v.IsStatic,
		StructOffset:         typelib.UnknownOffset16,
		SyncFunc:             typelib.AsyncSentinel,
		AsyncFunc:            typelib.AsyncSentinel,
		FinishFunc:           typelib.AsyncSentinel,
	}
	if v.StructOffset >= 0 {
		blob.StructOffset = uint16(v.StructOffset)
	}
	if idx := findMemberIndex(container, v.InvokerName); idx >= 0 {
		blob.Invoker = uint16(idx)
	}
	// VFunc's async linkage mirrors Function's (spec §3.1 VFunc): a vfunc
	// can itself be the sync or async/finish half of a pair, resolved
	// against the same sibling function list used for Function blobs.
	if idx := findFunctionIndex(s.enclosingFunctions(), v.SyncFunc); idx >= 0 {
		blob.SyncFunc = uint16(idx)
	}
	if idx := findFunctionIndex(s.enclosingFunctions(), v.AsyncFunc); idx >= 0 {
		blob.AsyncFunc = uint16(idx)
	}
	if idx := findFunctionIndex(s.enclosingFunctions(), v.FinishFunc); idx >= 0 {
		blob.FinishFunc = uint16(idx)
	}
	blob.Encode(s.buf[off:])
	s.recordAttrs(off, v.Attrs())
	return nil
}

// writeConstantValue reserves and writes a Constant's inline literal in the
// tail region, returning its offset and byte size (spec §4.7 Constant).
func (s *state) writeConstantValue(c *ir.Constant) (uint32, int) {
	if c.Type == nil {
		return 0, 0
	}
	switch c.Type.Tag {
	case typelib.TagUTF8, typelib.TagFilename:
		n := len(c.Value) + 1
		off := s.takeTail(n)
		copy(s.buf[off:], c.Value)
		return off, n
	case typelib.TagFloat:
		off := s.takeTail(4)
		typelib.PutF32(s.buf, int(off), parseFloat32(c.Value))
		return off, 4
	case typelib.TagDouble:
		off := s.takeTail(8)
		typelib.PutF64(s.buf, int(off), parseFloat64(c.Value))
		return off, 8
	case typelib.TagInt64, typelib.TagUInt64:
		off := s.takeTail(8)
		typelib.PutU64(s.buf, int(off), parseUint(c.Value))
		return off, 8
	case typelib.TagBoolean, typelib.TagInt8, typelib.TagUInt8:
		off := s.takeTail(typelib.Align4(1))
		typelib.PutU8(s.buf, int(off), uint8(parseUint(c.Value)))
		return off, 1
	case typelib.TagInt16, typelib.TagUInt16:
		off := s.takeTail(typelib.Align4(2))
		typelib.PutU16(s.buf, int(off), uint16(parseUint(c.Value)))
		return off, 2
	default:
		off := s.takeTail(4)
		typelib.PutU32(s.buf, int(off), uint32(parseUint(c.Value)))
		return off, 4
	}
}

// parseFloat32, parseFloat64 and parseUint convert a Constant's literal
// text (as captured from GIR attribute text) into its binary form. A
// malformed literal encodes as zero: GIR authors are expected to write
// well-formed numeric constants, and a best-effort fallback keeps one bad
// constant from aborting the whole compile.
func parseFloat32(s string) float32 {
	v, _ := strconv.ParseFloat(s, 32)
	return float32(v)
}

func parseFloat64(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseUint(s string) uint64 {
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return v
	}
	v, _ := strconv.ParseInt(s, 0, 64)
	return uint64(v)
}
