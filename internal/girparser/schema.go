// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package girparser

import "encoding/xml"

// The structs below mirror the subset of GIR 1.2 spec §6.2 requires the
// parser to recognise. encoding/xml matches attributes and elements by
// local name regardless of namespace prefix, so c:identifier, glib:type-name
// and the like are tagged with their bare local name.

type girAttribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type girRepository struct {
	XMLName   xml.Name      `xml:"repository"`
	Includes  []girInclude  `xml:"include"`
	Namespace girNamespace  `xml:"namespace"`
}

type girInclude struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
}

type girNamespace struct {
	Name          string        `xml:"name,attr"`
	Version       string        `xml:"version,attr"`
	SharedLibrary string        `xml:"shared-library,attr"`
	CPrefix       string        `xml:"identifier-prefixes,attr"`
	Aliases       []girAlias    `xml:"alias"`
	Records       []girRecord   `xml:"record"`
	Boxeds        []girRecord   `xml:"boxed"`
	Unions        []girRecord   `xml:"union"`
	Classes       []girClass    `xml:"class"`
	Interfaces    []girClass    `xml:"interface"`
	Enums         []girEnum     `xml:"enumeration"`
	Bitfields     []girEnum     `xml:"bitfield"`
	Functions     []girFunction `xml:"function"`
	Callbacks     []girFunction `xml:"callback"`
	Constants     []girConstant `xml:"constant"`
}

type girAlias struct {
	Name string  `xml:"name,attr"`
	Type girType `xml:"type"`
}

// girType is a <type> element: either a basic/interface reference (Name
// holds the bare or "Namespace.Name" type name) or, when Params is
// non-empty, a generic container (GList, GSList, GHash) with one or two
// nested <type> parameters.
type girType struct {
	Name   string    `xml:"name,attr"`
	CType  string    `xml:"type,attr"`
	Params []girType `xml:"type"`
}

// girArrayType is an <array> element.
type girArrayType struct {
	ZeroTerminated string        `xml:"zero-terminated,attr"`
	FixedSize      string        `xml:"fixed-size,attr"`
	Length         string        `xml:"length,attr"`
	CType          string        `xml:"type,attr"`
	Name           string        `xml:"name,attr"` // GLib.Array / GLib.PtrArray / GLib.ByteArray
	Elem           *girType      `xml:"type"`
	NestedArray    *girArrayType `xml:"array"`
}

// girTypeRef is embedded wherever GIR allows "exactly one of <type>,
// <array>" (parameters, return values, fields, constants, properties,
// aliases).
type girTypeRef struct {
	Type  *girType      `xml:"type"`
	Array *girArrayType `xml:"array"`
}

type girParam struct {
	girTypeRef
	Name              string         `xml:"name,attr"`
	Direction         string         `xml:"direction,attr"`
	TransferOwnership string         `xml:"transfer-ownership,attr"`
	Nullable          string         `xml:"nullable,attr"`
	Optional          string         `xml:"optional,attr"`
	AllowNone         string         `xml:"allow-none,attr"`
	CallerAllocates   string         `xml:"caller-allocates,attr"`
	Scope             string         `xml:"scope,attr"`
	Closure           string         `xml:"closure,attr"`
	Destroy           string         `xml:"destroy,attr"`
	Skip              string         `xml:"skip,attr"`
	Attrs             []girAttribute `xml:"attribute"`
}

type girReturnValue struct {
	girTypeRef
	Nullable          string         `xml:"nullable,attr"`
	TransferOwnership string         `xml:"transfer-ownership,attr"`
	Skip              string         `xml:"skip,attr"`
	Attrs             []girAttribute `xml:"attribute"`
}

type girParams struct {
	InstanceParam *girParam  `xml:"instance-parameter"`
	Params        []girParam `xml:"parameter"`
}

// girFunction covers <function>, <method>, <constructor> and <callback>;
// all four share the same callable shape (spec §6.2).
type girFunction struct {
	Name            string         `xml:"name,attr"`
	CIdentifier     string         `xml:"identifier,attr"`
	Deprecated      string         `xml:"deprecated,attr"`
	Throws          string         `xml:"throws,attr"`
	Introspectable  string         `xml:"introspectable,attr"`
	ShadowedBy      string         `xml:"shadowed-by,attr"`
	SetProperty     string         `xml:"set-property,attr"`
	GetProperty     string         `xml:"get-property,attr"`
	SyncFunc        string         `xml:"sync-func,attr"`
	AsyncFunc       string         `xml:"async-func,attr"`
	FinishFunc      string         `xml:"finish-func,attr"`
	Parameters      girParams      `xml:"parameters"`
	ReturnValue     girReturnValue `xml:"return-value"`
	Attrs           []girAttribute `xml:"attribute"`

	// set by the caller after unmarshalling, since the same struct serves
	// <constructor>, <method>, and <function>.
	isMethod      bool
	isConstructor bool
}

type girField struct {
	girTypeRef
	Name     string         `xml:"name,attr"`
	Readable string         `xml:"readable,attr"`
	Writable string         `xml:"writable,attr"`
	Bits     string         `xml:"bits,attr"`
	Callback *girFunction   `xml:"callback"`
	Attrs    []girAttribute `xml:"attribute"`
}

type girRecord struct {
	Name          string         `xml:"name,attr"`
	GTypeName     string         `xml:"type-name,attr"`
	GTypeInit     string         `xml:"get-type,attr"`
	Disguised     string         `xml:"disguised,attr"`
	Opaque        string         `xml:"opaque,attr"`
	Pointer       string         `xml:"pointer,attr"`
	Foreign       string         `xml:"foreign,attr"`
	GTypeStructFor string        `xml:"is-gtype-struct-for,attr"`
	CopyFunction  string         `xml:"copy-function,attr"`
	FreeFunction  string         `xml:"free-function,attr"`
	Fields        []girField     `xml:"field"`
	Constructors  []girFunction  `xml:"constructor"`
	Methods       []girFunction  `xml:"method"`
	Functions     []girFunction  `xml:"function"`
	Unions        []girRecord    `xml:"union"` // anonymous nested union; unsupported (see convert.go)
	Discriminator *girDiscriminator `xml:"discriminator"`
	Attrs         []girAttribute `xml:"attribute"`
}

type girDiscriminator struct {
	girTypeRef
	Offset string `xml:"offset,attr"`
}

type girImplements struct {
	Name string `xml:"name,attr"`
}

type girPrerequisite struct {
	Name string `xml:"name,attr"`
}

type girProperty struct {
	girTypeRef
	Name              string         `xml:"name,attr"`
	Readable          string         `xml:"readable,attr"`
	Writable          string         `xml:"writable,attr"`
	Construct         string         `xml:"construct,attr"`
	ConstructOnly     string         `xml:"construct-only,attr"`
	TransferOwnership string         `xml:"transfer-ownership,attr"`
	Setter            string         `xml:"setter,attr"`
	Getter            string         `xml:"getter,attr"`
	Attrs             []girAttribute `xml:"attribute"`
}

type girSignal struct {
	Name        string         `xml:"name,attr"`
	When        string         `xml:"when,attr"`
	NoRecurse   string         `xml:"no-recurse,attr"`
	Detailed    string         `xml:"detailed,attr"`
	Action      string         `xml:"action,attr"`
	NoHooks     string         `xml:"no-hooks,attr"`
	Parameters  girParams      `xml:"parameters"`
	ReturnValue girReturnValue `xml:"return-value"`
	Attrs       []girAttribute `xml:"attribute"`
}

type girVFunc struct {
	Name                 string         `xml:"name,attr"`
	Invoker              string         `xml:"invoker,attr"`
	MustChainUp          string         `xml:"must-chain-up,attr"`
	MustBeImplemented    string         `xml:"must-be-implemented,attr"`
	MustNotBeImplemented string         `xml:"must-not-be-implemented,attr"`
	Throws               string         `xml:"throws,attr"`
	Parameters           girParams      `xml:"parameters"`
	ReturnValue          girReturnValue `xml:"return-value"`
	Attrs                []girAttribute `xml:"attribute"`
}

// girClass covers both <class> and <interface>; the IR split into Object
// and Interface happens in convert.go based on which list the caller
// unmarshalled it from.
type girClass struct {
	Name             string            `xml:"name,attr"`
	GTypeName        string            `xml:"type-name,attr"`
	GTypeInit        string            `xml:"get-type,attr"`
	GTypeStruct      string            `xml:"type-struct,attr"`
	Parent           string            `xml:"parent,attr"`
	Abstract         string            `xml:"abstract,attr"`
	Final            string            `xml:"final,attr"`
	Fundamental      string            `xml:"fundamental,attr"`
	RefFunc          string            `xml:"ref-func,attr"`
	UnrefFunc        string            `xml:"unref-func,attr"`
	SetValueFunc     string            `xml:"set-value-func,attr"`
	GetValueFunc     string            `xml:"get-value-func,attr"`
	Deprecated       string            `xml:"deprecated,attr"`
	Implements       []girImplements   `xml:"implements"`
	Prerequisites    []girPrerequisite `xml:"prerequisite"`
	Fields           []girField        `xml:"field"`
	Properties       []girProperty     `xml:"property"`
	Constructors     []girFunction     `xml:"constructor"`
	Methods          []girFunction     `xml:"method"`
	Functions        []girFunction     `xml:"function"`
	Signals          []girSignal       `xml:"signal"`
	VFuncs           []girVFunc        `xml:"virtual-method"`
	Constants        []girConstant     `xml:"constant"`
	Attrs            []girAttribute    `xml:"attribute"`
}

type girEnum struct {
	Name        string         `xml:"name,attr"`
	GTypeName   string         `xml:"type-name,attr"`
	GTypeInit   string         `xml:"get-type,attr"`
	ErrorDomain string         `xml:"error-domain,attr"`
	Members     []girMember    `xml:"member"`
	Functions   []girFunction  `xml:"function"`
	Attrs       []girAttribute `xml:"attribute"`
}

type girMember struct {
	Name       string `xml:"name,attr"`
	Value      string `xml:"value,attr"`
	Deprecated string `xml:"deprecated,attr"`
}

type girConstant struct {
	girTypeRef
	Name  string         `xml:"name,attr"`
	Value string         `xml:"value,attr"`
	Attrs []girAttribute `xml:"attribute"`
}
