// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package typelib

// BlobType is the value stored in a DirEntry's blob_type field. The numbering
// matches the historical GIIrNodeTypeId enum from girnode-private.h: value 10
// is a deliberate tombstone (formerly ERROR_DOMAIN) and must never be reused
// (spec §9 open question).
type BlobType uint16

const (
	BlobInvalid   BlobType = 0 // also used for XRef entries
	BlobFunction  BlobType = 1
	BlobCallback  BlobType = 2
	BlobStruct    BlobType = 3
	BlobBoxed     BlobType = 4
	BlobEnum      BlobType = 5
	BlobFlags     BlobType = 6
	BlobObject    BlobType = 7
	BlobInterface BlobType = 8
	BlobConstant  BlobType = 9
	blobInvalid0  BlobType = 10 // tombstone: formerly ERROR_DOMAIN, never reuse
	BlobUnion     BlobType = 11
)

// String names a blob type for diagnostics (dump-typelib, error messages).
func (b BlobType) String() string {
	switch b {
	case BlobInvalid:
		return "invalid"
	case BlobFunction:
		return "function"
	case BlobCallback:
		return "callback"
	case BlobStruct:
		return "struct"
	case BlobBoxed:
		return "boxed"
	case BlobEnum:
		return "enum"
	case BlobFlags:
		return "flags"
	case BlobObject:
		return "object"
	case BlobInterface:
		return "interface"
	case BlobConstant:
		return "constant"
	case BlobUnion:
		return "union"
	default:
		return "unknown"
	}
}

// TypeTag enumerates the basic and structural type kinds a [Type] IR node
// may carry (spec §3.1).
type TypeTag byte

const (
	TagVoid TypeTag = iota
	TagBoolean
	TagInt8
	TagUInt8
	TagInt16
	TagUInt16
	TagInt32
	TagUInt32
	TagInt64
	TagUInt64
	TagFloat
	TagDouble
	TagGType
	TagUTF8
	TagFilename
	TagUnichar
	TagArray
	TagInterface
	TagGList
	TagGSList
	TagGHash
	TagError
)

// Basic reports whether tag is a basic (non-structural) type, i.e. one that
// is encoded entirely inline in a SimpleTypeBlob and never enters the type
// pool (spec §4.5).
func (t TypeTag) Basic() bool {
	switch t {
	case TagArray, TagInterface, TagGList, TagGSList, TagGHash, TagError:
		return false
	default:
		return true
	}
}

// String returns the canonical name used when serializing a type
// key (spec §4.5).
func (t TypeTag) String() string {
	switch t {
	case TagVoid:
		return "void"
	case TagBoolean:
		return "boolean"
	case TagInt8:
		return "int8"
	case TagUInt8:
		return "uint8"
	case TagInt16:
		return "int16"
	case TagUInt16:
		return "uint16"
	case TagInt32:
		return "int32"
	case TagUInt32:
		return "uint32"
	case TagInt64:
		return "int64"
	case TagUInt64:
		return "uint64"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagGType:
		return "GType"
	case TagUTF8:
		return "utf8"
	case TagFilename:
		return "filename"
	case TagUnichar:
		return "unichar"
	case TagArray:
		return "array"
	case TagInterface:
		return "interface"
	case TagGList:
		return "glist"
	case TagGSList:
		return "gslist"
	case TagGHash:
		return "ghash"
	case TagError:
		return "gerror"
	default:
		return "invalid"
	}
}

// ArrayKind distinguishes the four array representations spec §3.1 allows.
type ArrayKind byte

const (
	ArrayC ArrayKind = iota
	ArrayArray
	ArrayPtrArray
	ArrayByteArray
)

// Direction is a parameter's direction (spec §3.1).
type Direction byte

const (
	DirIn Direction = iota
	DirOut
	DirInOut
)

// Scope is the lifetime scope of a callback parameter (spec §3.1).
type Scope byte

const (
	ScopeInvalid Scope = iota
	ScopeCall
	ScopeAsync
	ScopeNotified
	ScopeForever
)

// RunPhase is a signal's run phase (spec §3.1).
type RunPhase byte

const (
	RunFirst RunPhase = iota
	RunLast
	RunCleanup
)
