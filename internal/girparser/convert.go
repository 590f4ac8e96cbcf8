// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package girparser

import (
	"strconv"
	"strings"

	"github.com/GNOME/gi-compile-repository/internal/debug"
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// converter turns one namespace's unmarshalled XML tree into an *ir.Module.
// It is a thin, mostly stateless pass: the module itself (via NewField,
// NewFunction, ...) is what actually allocates IDs.
type converter struct {
	m *ir.Module
}

func boolAttr(s string) bool { return s == "1" || s == "true" }

func intAttr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func applyAttrs(dst *ir.AttrMap, attrs []girAttribute) {
	for _, a := range attrs {
		dst.Set(a.Name, a.Value)
	}
}

// basicTag maps a GIR basic type name to its TypeTag, or reports ok=false
// if name is not a basic type (i.e. it names an interface, alias, or
// container).
func basicTag(name string) (typelib.TypeTag, bool) {
	switch name {
	case "none":
		return typelib.TagVoid, true
	case "gboolean":
		return typelib.TagBoolean, true
	case "gint8":
		return typelib.TagInt8, true
	case "guint8":
		return typelib.TagUInt8, true
	case "gint16":
		return typelib.TagInt16, true
	case "guint16":
		return typelib.TagUInt16, true
	case "gint", "gint32":
		return typelib.TagInt32, true
	case "guint", "guint32":
		return typelib.TagUInt32, true
	case "glong", "gint64":
		return typelib.TagInt64, true
	case "gulong", "guint64", "gsize":
		return typelib.TagUInt64, true
	case "gfloat":
		return typelib.TagFloat, true
	case "gdouble":
		return typelib.TagDouble, true
	case "GType":
		return typelib.TagGType, true
	case "utf8", "gchar*":
		return typelib.TagUTF8, true
	case "filename":
		return typelib.TagFilename, true
	case "gunichar":
		return typelib.TagUnichar, true
	default:
		return 0, false
	}
}

// convertTypeRef turns a <type>/<array> pair into an *ir.Type. Exactly one
// of ref.Type, ref.Array should be set; a completely empty ref (a GIR
// element that omitted its type, e.g. a deprecated varargs marker) yields a
// void type rather than nil, so callers never have to nil-check.
func (c *converter) convertTypeRef(ref girTypeRef) *ir.Type {
	switch {
	case ref.Array != nil:
		return c.convertArray(ref.Array)
	case ref.Type != nil:
		return c.convertType(ref.Type)
	default:
		return ir.NewType(c.m, typelib.TagVoid)
	}
}

func (c *converter) convertArray(a *girArrayType) *ir.Type {
	t := ir.NewType(c.m, typelib.TagArray)
	t.ZeroTerminated = a.ZeroTerminated == "" || boolAttr(a.ZeroTerminated)
	t.FixedLength = intAttr(a.Length, -1)
	t.FixedSize = intAttr(a.FixedSize, -1)
	switch a.Name {
	case "GLib.Array":
		t.ArrayKind = typelib.ArrayArray
	case "GLib.PtrArray":
		t.ArrayKind = typelib.ArrayPtrArray
	case "GLib.ByteArray":
		t.ArrayKind = typelib.ArrayByteArray
	default:
		t.ArrayKind = typelib.ArrayC
	}
	switch {
	case a.NestedArray != nil:
		t.Elem = c.convertArray(a.NestedArray)
	case a.Elem != nil:
		t.Elem = c.convertType(a.Elem)
	default:
		t.Elem = ir.NewType(c.m, typelib.TagUInt8)
	}
	return t
}

func (c *converter) convertType(gt *girType) *ir.Type {
	name := gt.Name
	switch name {
	case "GLib.List":
		t := ir.NewType(c.m, typelib.TagGList)
		t.Param1 = c.paramOrVoid(gt.Params, 0)
		return t
	case "GLib.SList":
		t := ir.NewType(c.m, typelib.TagGSList)
		t.Param1 = c.paramOrVoid(gt.Params, 0)
		return t
	case "GLib.HashTable":
		t := ir.NewType(c.m, typelib.TagGHash)
		t.Param1 = c.paramOrVoid(gt.Params, 0)
		t.Param2 = c.paramOrVoid(gt.Params, 1)
		return t
	case "GLib.Error":
		t := ir.NewType(c.m, typelib.TagError)
		return t
	}
	if tag, ok := basicTag(name); ok {
		t := ir.NewType(c.m, tag)
		t.Pointer = strings.HasSuffix(gt.CType, "*")
		return t
	}
	t := ir.NewType(c.m, typelib.TagInterface)
	t.InterfaceName = name
	t.Pointer = true
	return t
}

func (c *converter) paramOrVoid(params []girType, i int) *ir.Type {
	if i < len(params) {
		return c.convertType(&params[i])
	}
	return ir.NewType(c.m, typelib.TagVoid)
}

func direction(s string) typelib.Direction {
	switch s {
	case "out":
		return typelib.DirOut
	case "inout":
		return typelib.DirInOut
	default:
		return typelib.DirIn
	}
}

func scope(s string) typelib.Scope {
	switch s {
	case "call":
		return typelib.ScopeCall
	case "async":
		return typelib.ScopeAsync
	case "notified":
		return typelib.ScopeNotified
	case "forever":
		return typelib.ScopeForever
	default:
		return typelib.ScopeInvalid
	}
}

func (c *converter) convertParam(gp *girParam) *ir.Param {
	p := ir.NewParam(c.m, gp.Name)
	p.Direction = direction(gp.Direction)
	p.CallerAllocates = boolAttr(gp.CallerAllocates)
	p.Optional = boolAttr(gp.Optional) || boolAttr(gp.AllowNone)
	p.Nullable = boolAttr(gp.Nullable) || boolAttr(gp.AllowNone)
	p.Transfer = gp.TransferOwnership == "full" || gp.TransferOwnership == "container"
	p.ShallowTransfer = gp.TransferOwnership == "container"
	p.Skip = boolAttr(gp.Skip)
	p.Scope = scope(gp.Scope)
	p.Closure = intAttr(gp.Closure, -1)
	p.Destroy = intAttr(gp.Destroy, -1)
	p.Type = c.convertTypeRef(gp.girTypeRef)
	applyAttrs(p.Attrs(), gp.Attrs)
	return p
}

func (c *converter) convertReturn(rv girReturnValue) *ir.Param {
	p := ir.NewParam(c.m, "")
	p.Retval = true
	p.Nullable = boolAttr(rv.Nullable)
	p.Transfer = rv.TransferOwnership == "full" || rv.TransferOwnership == "container"
	p.ShallowTransfer = rv.TransferOwnership == "container"
	p.Skip = boolAttr(rv.Skip)
	p.Type = c.convertTypeRef(rv.girTypeRef)
	applyAttrs(p.Attrs(), rv.Attrs)
	return p
}

func (c *converter) convertParams(params girParams, rv girReturnValue) (*ir.Param, []*ir.Param) {
	result := c.convertReturn(rv)
	out := make([]*ir.Param, 0, len(params.Params)+1)
	if params.InstanceParam != nil {
		out = append(out, c.convertParam(params.InstanceParam))
	}
	for i := range params.Params {
		out = append(out, c.convertParam(&params.Params[i]))
	}
	return result, out
}

func (c *converter) convertFunction(gf *girFunction) *ir.Function {
	f := ir.NewFunction(c.m, gf.Name)
	f.Symbol = gf.CIdentifier
	f.Deprecated = boolAttr(gf.Deprecated)
	f.IsMethod = gf.isMethod
	f.IsConstructor = gf.isConstructor
	f.Throws = boolAttr(gf.Throws)
	f.IsSetter = gf.SetProperty != ""
	f.IsGetter = gf.GetProperty != ""
	if f.IsSetter {
		f.PropertyName = gf.SetProperty
	} else if f.IsGetter {
		f.PropertyName = gf.GetProperty
	}
	f.IsAsync = gf.AsyncFunc == "" && (gf.SyncFunc != "" || gf.FinishFunc != "")
	f.SyncFunc = gf.SyncFunc
	f.AsyncFunc = gf.AsyncFunc
	f.FinishFunc = gf.FinishFunc
	f.Result, f.Params = c.convertParams(gf.Parameters, gf.ReturnValue)
	applyAttrs(f.Attrs(), gf.Attrs)
	return f
}

func (c *converter) convertCallback(gf *girFunction) *ir.Callback {
	cb := ir.NewCallback(c.m, gf.Name)
	cb.Symbol = gf.CIdentifier
	cb.Deprecated = boolAttr(gf.Deprecated)
	cb.Throws = boolAttr(gf.Throws)
	cb.Result, cb.Params = c.convertParams(gf.Parameters, gf.ReturnValue)
	applyAttrs(cb.Attrs(), gf.Attrs)
	return cb
}

func (c *converter) convertField(gfld *girField) *ir.Field {
	f := ir.NewField(c.m, gfld.Name)
	f.Readable = gfld.Readable == "" || boolAttr(gfld.Readable)
	f.Writable = boolAttr(gfld.Writable)
	f.Bits = intAttr(gfld.Bits, 0)
	if gfld.Callback != nil {
		f.EmbeddedCallback = c.convertCallback(gfld.Callback)
	} else {
		f.Type = c.convertTypeRef(gfld.girTypeRef)
	}
	applyAttrs(f.Attrs(), gfld.Attrs)
	return f
}

func (c *converter) convertProperty(gp *girProperty) *ir.Property {
	p := ir.NewProperty(c.m, gp.Name)
	p.Readable = gp.Readable == "" || boolAttr(gp.Readable)
	p.Writable = boolAttr(gp.Writable)
	p.Construct = boolAttr(gp.Construct)
	p.ConstructOnly = boolAttr(gp.ConstructOnly)
	p.Transfer = gp.TransferOwnership == "full" || gp.TransferOwnership == "container"
	p.ShallowTransfer = gp.TransferOwnership == "container"
	p.SetterName = gp.Setter
	p.GetterName = gp.Getter
	p.Type = c.convertTypeRef(gp.girTypeRef)
	applyAttrs(p.Attrs(), gp.Attrs)
	return p
}

func (c *converter) convertSignal(gs *girSignal) *ir.Signal {
	s := ir.NewSignal(c.m, gs.Name)
	switch gs.When {
	case "last":
		s.RunPhase = typelib.RunLast
	case "cleanup":
		s.RunPhase = typelib.RunCleanup
	default:
		s.RunPhase = typelib.RunFirst
	}
	s.NoRecurse = boolAttr(gs.NoRecurse)
	s.Detailed = boolAttr(gs.Detailed)
	s.Action = boolAttr(gs.Action)
	s.NoHooks = boolAttr(gs.NoHooks)
	s.Result, s.Params = c.convertParams(gs.Parameters, gs.ReturnValue)
	applyAttrs(s.Attrs(), gs.Attrs)
	return s
}

func (c *converter) convertVFunc(gv *girVFunc) *ir.VFunc {
	v := ir.NewVFunc(c.m, gv.Name)
	v.InvokerName = gv.Invoker
	v.MustChainUp = boolAttr(gv.MustChainUp)
	v.MustBeImplemented = boolAttr(gv.MustBeImplemented)
	v.MustNotBeImplemented = boolAttr(gv.MustNotBeImplemented)
	v.Throws = boolAttr(gv.Throws)
	v.Result, v.Params = c.convertParams(gv.Parameters, gv.ReturnValue)
	applyAttrs(v.Attrs(), gv.Attrs)
	return v
}

func (c *converter) convertConstant(gc *girConstant) *ir.Constant {
	k := ir.NewConstant(c.m, gc.Name)
	k.Type = c.convertTypeRef(gc.girTypeRef)
	k.Value = gc.Value
	applyAttrs(k.Attrs(), gc.Attrs)
	return k
}

// convertRecord builds a Struct, Boxed or Union depending on kind, adding
// fields and methods as members in the order the document declares them
// (ir.AddMember re-sorts by (kind, name), matching spec §4.1).
func (c *converter) convertRecord(gr *girRecord, kind ir.Kind) (ir.Node, error) {
	if len(gr.Unions) > 0 {
		// Anonymous unions nested directly inside a record (as opposed to a
		// top-level named <union>) require synthesizing a throwaway nested
		// type name the rest of the pipeline has nowhere to hang; not
		// implemented.
		return nil, debug.Unsupported()
	}

	var base *ir.RecordLike
	var node ir.Node
	switch kind {
	case ir.KindStruct:
		s := ir.NewStruct(c.m, gr.Name)
		base, node = &s.RecordLike, s
	case ir.KindBoxed:
		b := ir.NewBoxed(c.m, gr.Name)
		base, node = &b.RecordLike, b
	case ir.KindUnion:
		u := ir.NewUnion(c.m, gr.Name)
		base, node = &u.RecordLike, u
		if gr.Discriminator != nil {
			u.DiscriminatorType = c.convertTypeRef(gr.Discriminator.girTypeRef)
			u.DiscriminatorOffset = intAttr(gr.Discriminator.Offset, -1)
		}
	}

	base.GTypeName = gr.GTypeName
	base.GTypeInit = gr.GTypeInit
	base.CopyFunction = gr.CopyFunction
	base.FreeFunction = gr.FreeFunction
	base.Disguised = boolAttr(gr.Disguised)
	base.Opaque = boolAttr(gr.Opaque)
	base.Pointer = boolAttr(gr.Pointer)
	base.Foreign = boolAttr(gr.Foreign)
	base.IsGTypeStruct = gr.GTypeStructFor != ""
	applyAttrs(base.Attrs(), gr.Attrs)

	for i := range gr.Fields {
		base.AddMember(c.convertField(&gr.Fields[i]))
	}
	for i := range gr.Constructors {
		gr.Constructors[i].isConstructor = true
		base.AddMember(c.convertFunction(&gr.Constructors[i]))
	}
	for i := range gr.Methods {
		gr.Methods[i].isMethod = true
		base.AddMember(c.convertFunction(&gr.Methods[i]))
	}
	for i := range gr.Functions {
		base.AddMember(c.convertFunction(&gr.Functions[i]))
	}
	return node, nil
}

func (c *converter) convertInterface(gc *girClass) *ir.Interface {
	i := ir.NewInterface(c.m, gc.Name)
	for _, p := range gc.Prerequisites {
		i.Prerequisites = append(i.Prerequisites, p.Name)
	}
	c.fillClassLike(&i.ClassLike, gc)
	return i
}

func (c *converter) convertObject(gc *girClass) *ir.Object {
	o := ir.NewObject(c.m, gc.Name)
	o.ParentName = gc.Parent
	o.Abstract = boolAttr(gc.Abstract)
	o.Final = boolAttr(gc.Final)
	o.Fundamental = boolAttr(gc.Fundamental)
	for _, im := range gc.Implements {
		o.Interfaces = append(o.Interfaces, im.Name)
	}
	c.fillClassLike(&o.ClassLike, gc)
	return o
}

func (c *converter) fillClassLike(base *ir.ClassLike, gc *girClass) {
	base.GTypeName = gc.GTypeName
	base.GTypeInit = gc.GTypeInit
	base.GTypeStruct = gc.GTypeStruct
	base.RefFunction = gc.RefFunc
	base.UnrefFunction = gc.UnrefFunc
	base.SetValueFunction = gc.SetValueFunc
	base.GetValueFunction = gc.GetValueFunc
	base.Deprecated = boolAttr(gc.Deprecated)
	applyAttrs(base.Attrs(), gc.Attrs)

	for i := range gc.Fields {
		base.AddMember(c.convertField(&gc.Fields[i]))
	}
	for i := range gc.Properties {
		base.AddMember(c.convertProperty(&gc.Properties[i]))
	}
	for i := range gc.Constructors {
		gc.Constructors[i].isConstructor = true
		base.AddMember(c.convertFunction(&gc.Constructors[i]))
	}
	for i := range gc.Methods {
		gc.Methods[i].isMethod = true
		base.AddMember(c.convertFunction(&gc.Methods[i]))
	}
	for i := range gc.Functions {
		base.AddMember(c.convertFunction(&gc.Functions[i]))
	}
	for i := range gc.Signals {
		base.AddMember(c.convertSignal(&gc.Signals[i]))
	}
	for i := range gc.VFuncs {
		base.AddMember(c.convertVFunc(&gc.VFuncs[i]))
	}
	for i := range gc.Constants {
		base.AddMember(c.convertConstant(&gc.Constants[i]))
	}
}

// fillEnumLike populates an already-constructed Enum or Flags node's shared
// EnumLike fields. e must come from ir.NewEnum/ir.NewFlags so its Base (and
// therefore its ID) is already set.
func (c *converter) fillEnumLike(e *ir.EnumLike, ge *girEnum, storage typelib.TypeTag) {
	e.StorageType = storage
	e.GTypeName = ge.GTypeName
	e.GTypeInit = ge.GTypeInit
	e.ErrorDomain = ge.ErrorDomain
	for _, m := range ge.Members {
		v := ir.NewValue(c.m, m.Name)
		v.Value = int64(intAttr(m.Value, 0))
		v.Deprecated = boolAttr(m.Deprecated)
		e.Values = append(e.Values, v)
	}
	for i := range ge.Functions {
		e.Methods = append(e.Methods, c.convertFunction(&ge.Functions[i]))
	}
	applyAttrs(e.Attrs(), ge.Attrs)
}
