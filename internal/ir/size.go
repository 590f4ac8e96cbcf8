// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

import "github.com/GNOME/gi-compile-repository/internal/typelib"

// FixedSize returns a node's primary-blob width (spec §4.3 fixed_size).
// XRef, which has no primary blob of its own, returns 0; every Param,
// including a function's result, returns the ArgBlob width.
func FixedSize(n Node) int {
	switch n.(type) {
	case *Function:
		return typelib.FunctionBlobSize
	case *Callback:
		return typelib.CallbackBlobSize
	case *Struct:
		return typelib.StructBlobSize
	case *Boxed:
		return typelib.StructBlobSize // Boxed reuses the Struct blob shape
	case *Enum:
		return typelib.EnumBlobSize
	case *Flags:
		return typelib.EnumBlobSize
	case *Object:
		return typelib.ObjectBlobSize
	case *Interface:
		return typelib.InterfaceBlobSize
	case *Constant:
		return typelib.ConstantBlobSize
	case *Union:
		return typelib.UnionBlobSize
	case *Param:
		return typelib.ArgBlobSize
	case *Type:
		return typelib.SimpleTypeBlobSize
	case *Property:
		return typelib.PropertyBlobSize
	case *Signal:
		return typelib.SignalBlobSize
	case *Value:
		return typelib.ValueBlobSize
	case *VFunc:
		return typelib.VFuncBlobSize
	case *Field:
		return typelib.FieldBlobSize
	case *XRef:
		return 0
	default:
		return 0
	}
}

func stringCost(s string) int {
	if s == "" {
		return 0
	}
	return typelib.Align4(len(s) + 1)
}

func attrsCost(a *AttrMap) int {
	total := a.Len() * typelib.AttributeBlobSize
	a.Each(func(k, v string) {
		total += stringCost(k) + stringCost(v)
	})
	return total
}

// typeTailCost is the extended tail blob cost for a non-basic type; zero
// for basic types, which are encoded entirely inline in a SimpleTypeBlob.
func typeTailCost(t *Type) int {
	if t == nil || t.Basic() {
		return 0
	}
	switch t.Tag {
	case typelib.TagArray:
		return typelib.ArrayTypeBlobSize + typeCost(t.Elem)
	case typelib.TagInterface:
		return typelib.InterfaceTypeBlobSize
	case typelib.TagGList, typelib.TagGSList:
		return typelib.ParamTypeBlobSize + typeCost(t.Param1)
	case typelib.TagGHash:
		return typelib.ParamTypeBlobSize + typeCost(t.Param1) + typeCost(t.Param2)
	case typelib.TagError:
		cost := typelib.ErrorTypeBlobSize
		for _, d := range t.Domains {
			cost += 4 + stringCost(d) // interned offset slot + the string itself
		}
		return cost
	default:
		return 0
	}
}

// typeCost is a Type node's full_size: its own SimpleTypeBlob, any tail
// extension, the interned interface name if it has one, and its attributes.
func typeCost(t *Type) int {
	if t == nil {
		return 0
	}
	return typelib.SimpleTypeBlobSize + typeTailCost(t) + stringCost(t.InterfaceName) + attrsCost(t.Attrs())
}

func paramCost(p *Param) int {
	if p == nil {
		return 0
	}
	return typelib.ArgBlobSize + stringCost(p.Name()) + typeCost(p.Type) + attrsCost(p.Attrs())
}

// signatureCost covers the SignatureBlob, every parameter's ArgBlob, and
// the result's type (the result itself does not own a primary blob, but
// its type and attributes still cost tail space, per spec §4.7).
func signatureCost(result *Param, params []*Param) int {
	cost := typelib.SignatureBlobSize
	if result != nil {
		cost += typeTailCost(result.Type) + attrsCost(result.Attrs())
	}
	for _, p := range params {
		cost += paramCost(p)
	}
	return cost
}

func constantValueCost(c *Constant) int {
	if c.Type == nil {
		return 0
	}
	switch c.Type.Tag {
	case typelib.TagUTF8, typelib.TagFilename:
		return stringCost(c.Value)
	case typelib.TagFloat:
		return 4
	case typelib.TagDouble:
		return 8
	case typelib.TagInt64, typelib.TagUInt64:
		return 8
	case typelib.TagBoolean, typelib.TagInt8, typelib.TagUInt8:
		return typelib.Align4(1)
	case typelib.TagInt16, typelib.TagUInt16:
		return typelib.Align4(2)
	default:
		return 4
	}
}

// FullSize returns a node's fixed size plus, recursively, every embedded
// string, tail child, and attribute (spec §4.3 full_size). It is a
// reservation upper bound: the builder's actual emission may use less,
// never more.
func FullSize(n Node) int {
	base := FixedSize(n) + attrsCost(n.Attrs()) + stringCost(n.Name())
	switch v := n.(type) {
	case *Function:
		return base + stringCost(v.Symbol) + stringCost(v.PropertyName) + signatureCost(v.Result, v.Params)
	case *Callback:
		return base + stringCost(v.Symbol) + signatureCost(v.Result, v.Params)
	case *Signal:
		return base + signatureCost(v.Result, v.Params)
	case *VFunc:
		return base + stringCost(v.InvokerName) + signatureCost(v.Result, v.Params)
	case *Field:
		if v.EmbeddedCallback != nil {
			return base + FullSize(v.EmbeddedCallback)
		}
		return base + typeTailCost(v.Type)
	case *Property:
		return base + stringCost(v.SetterName) + stringCost(v.GetterName) + typeTailCost(v.Type)
	case *Value:
		return base
	case *Constant:
		return base + typeCost(v.Type) + constantValueCost(v)
	case *Type:
		return typeCost(v) // typeCost already includes FixedSize + attrs; Type has no own name
	case *Param:
		return base + typeTailCost(v.Type)
	case *Enum:
		return enumLikeCost(base, &v.EnumLike)
	case *Flags:
		return enumLikeCost(base, &v.EnumLike)
	case *Struct:
		return base + recordLikeCost(&v.RecordLike)
	case *Boxed:
		return base + recordLikeCost(&v.RecordLike)
	case *Union:
		cost := base + recordLikeCost(&v.RecordLike)
		for _, d := range v.Discriminators {
			cost += FullSize(d)
		}
		cost += typeTailCost(v.DiscriminatorType)
		return cost
	case *Object:
		return base + stringCost(v.GTypeName) + stringCost(v.GTypeInit) +
			stringCost(v.ParentName) + stringCost(v.GTypeStruct) +
			stringCost(v.RefFunction) + stringCost(v.UnrefFunction) +
			stringCost(v.SetValueFunction) + stringCost(v.GetValueFunction) +
			typelib.Align4(len(v.Interfaces)*2) + classLikeMembersCost(v.members)
	case *Interface:
		return base + stringCost(v.GTypeName) + stringCost(v.GTypeInit) + stringCost(v.GTypeStruct) +
			typelib.Align4(len(v.Prerequisites)*2) + classLikeMembersCost(v.members)
	case *XRef:
		return stringCost(v.Name()) + stringCost(v.Namespace) // directory entry carries both; no primary blob
	default:
		return base
	}
}

func enumLikeCost(base int, e *EnumLike) int {
	cost := base + stringCost(e.GTypeName) + stringCost(e.GTypeInit) + stringCost(e.ErrorDomain)
	for _, val := range e.Values {
		cost += FullSize(val)
	}
	for _, fn := range e.Methods {
		cost += FullSize(fn)
	}
	return cost
}

func recordLikeCost(r *RecordLike) int {
	cost := stringCost(r.GTypeName) + stringCost(r.GTypeInit) + stringCost(r.CopyFunction) + stringCost(r.FreeFunction)
	for _, m := range r.members {
		cost += FullSize(m)
	}
	return cost
}

func classLikeMembersCost(members []Node) int {
	cost := 0
	for _, m := range members {
		cost += FullSize(m)
	}
	return cost
}
