// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package typelib defines the on-disk layout of a compiled GObject
// Introspection typelib: the header, directory table, section table, and
// the fixed-width blob records described in spec §6.1.
//
// All multi-byte fields are little-endian regardless of host byte order, and
// every blob starts on a 4-byte boundary. Values are written with explicit
// byte-order helpers (encoding/binary) rather than by reinterpreting host
// memory, so the format is identical on big- and little-endian hosts.
package typelib

// Magic is the fixed 16-byte file signature every typelib begins with.
var Magic = [16]byte{'G', 'O', 'B', 'J', '\n', 'M', 'E', 'T', 'A', 'D', 'A', 'T', 'A', '\r', '\n', 0x1a}

const (
	MajorVersion = 4
	MinorVersion = 0
)

// Fixed blob widths, part of the on-disk contract (spec §6.1).
const (
	EntryBlobSize       = 12
	FunctionBlobSize    = 24
	CallbackBlobSize    = 12
	SignalBlobSize      = 16
	VFuncBlobSize       = 20
	ArgBlobSize         = 16
	PropertyBlobSize    = 16
	FieldBlobSize       = 16
	ValueBlobSize       = 12
	ConstantBlobSize    = 24
	ErrorDomainBlobSize = 16 // declared, unused by emission (spec §9 open question)
	AttributeBlobSize   = 12
	SignatureBlobSize   = 8
	EnumBlobSize        = 24
	StructBlobSize      = 32
	ObjectBlobSize      = 60
	InterfaceBlobSize   = 40
	UnionBlobSize       = 40

	// HeaderSize is the fixed-width portion of the header, before the
	// interned header strings are accounted for. Spec §6.1 requires at
	// least 116 bytes; the remainder past the last named field is reserved
	// padding for future sections, matching the real format's practice of
	// over-allocating the header for forward compatibility.
	HeaderSize = 120

	// SectionSize is the width of one Section table slot.
	SectionSize = 8
	// NumSections is the fixed number of reserved section slots.
	NumSections = 2
)

// Extended type blobs live only in the tail region and are not part of the
// header's declared size table (spec §6.1 notes that table is not
// exhaustive). Their widths are nonetheless a fixed, documented part of this
// implementation's on-disk contract.
const (
	SimpleTypeBlobSize    = 4
	InterfaceTypeBlobSize = 4
	ArrayTypeBlobSize     = 8 // followed immediately by one SimpleTypeBlob
	ParamTypeBlobSize     = 4 // followed by one or two SimpleTypeBlobs
	ErrorTypeBlobSize     = 4 // followed by a count-prefixed table of interned domain names
)

// Sentinels, spec §6.1.
const (
	AccessorSentinel = 0x3FF
	AsyncSentinel    = 0xFFFF
	UnknownOffset16  = 0xFFFF // struct_offset "unknown" for fields/vfuncs
)

// Section identifiers.
const (
	SectionEnd            = 0
	SectionDirectoryIndex = 1
)
