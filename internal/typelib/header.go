// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package typelib

// Byte offsets of each header field within the first HeaderSize bytes of a
// typelib. This is this implementation's concrete realization of the field
// list in spec §6.1, which specifies field widths and order but not byte
// offsets (those are derived mechanically from the widths).
const (
	hdrMagic          = 0  // 16 bytes
	hdrMajorVersion   = 16 // u8
	hdrMinorVersion   = 17 // u8
	hdrReserved       = 18 // u16
	hdrNEntries       = 20 // u16
	hdrNLocalEntries  = 22 // u16
	hdrDirectory      = 24 // u32
	hdrNAttributes    = 28 // u32
	hdrAttributes     = 32 // u32
	hdrDependencies   = 36 // u32
	hdrSize           = 40 // u32
	hdrNamespace      = 44 // u32
	hdrNSVersion      = 48 // u32
	hdrSharedLibrary  = 52 // u32
	hdrCPrefix        = 56 // u32
	hdrEntryBlob      = 60 // u16
	hdrFunctionBlob   = 62 // u16
	hdrCallbackBlob   = 64 // u16
	hdrSignalBlob     = 66 // u16
	hdrVFuncBlob      = 68 // u16
	hdrArgBlob        = 70 // u16
	hdrPropertyBlob   = 72 // u16
	hdrFieldBlob      = 74 // u16
	hdrValueBlob      = 76 // u16
	hdrConstantBlob   = 78 // u16
	hdrErrDomainBlob  = 80 // u16
	hdrAttributeBlob  = 82 // u16
	hdrSignatureBlob  = 84 // u16
	hdrEnumBlob       = 86 // u16
	hdrStructBlob     = 88 // u16
	hdrObjectBlob     = 90 // u16
	hdrInterfaceBlob  = 92 // u16
	hdrUnionBlob      = 94 // u16
	hdrSections       = 96 // u32
	// 100..HeaderSize reserved padding.
)

// Header is the fixed-width typelib header (spec §6.1).
type Header struct {
	NEntries      uint16
	NLocalEntries uint16
	Directory     uint32 // byte offset of the DirEntry table
	NAttributes   uint32
	Attributes    uint32 // byte offset of the AttributeBlob table
	Dependencies  uint32 // string offset, or 0
	Size          uint32 // total typelib byte length
	Namespace     uint32 // string offset
	NSVersion     uint32 // string offset
	SharedLibrary uint32 // string offset, or 0
	CPrefix       uint32 // string offset, or 0
	Sections      uint32 // byte offset of the section table
}

// Encode writes h into buf[0:HeaderSize]. buf must be at least HeaderSize
// bytes long.
func (h Header) Encode(buf []byte) {
	copy(buf[hdrMagic:], Magic[:])
	PutU8(buf, hdrMajorVersion, MajorVersion)
	PutU8(buf, hdrMinorVersion, MinorVersion)
	PutU16(buf, hdrReserved, 0)
	PutU16(buf, hdrNEntries, h.NEntries)
	PutU16(buf, hdrNLocalEntries, h.NLocalEntries)
	PutU32(buf, hdrDirectory, h.Directory)
	PutU32(buf, hdrNAttributes, h.NAttributes)
	PutU32(buf, hdrAttributes, h.Attributes)
	PutU32(buf, hdrDependencies, h.Dependencies)
	PutU32(buf, hdrSize, h.Size)
	PutU32(buf, hdrNamespace, h.Namespace)
	PutU32(buf, hdrNSVersion, h.NSVersion)
	PutU32(buf, hdrSharedLibrary, h.SharedLibrary)
	PutU32(buf, hdrCPrefix, h.CPrefix)

	PutU16(buf, hdrEntryBlob, EntryBlobSize)
	PutU16(buf, hdrFunctionBlob, FunctionBlobSize)
	PutU16(buf, hdrCallbackBlob, CallbackBlobSize)
	PutU16(buf, hdrSignalBlob, SignalBlobSize)
	PutU16(buf, hdrVFuncBlob, VFuncBlobSize)
	PutU16(buf, hdrArgBlob, ArgBlobSize)
	PutU16(buf, hdrPropertyBlob, PropertyBlobSize)
	PutU16(buf, hdrFieldBlob, FieldBlobSize)
	PutU16(buf, hdrValueBlob, ValueBlobSize)
	PutU16(buf, hdrConstantBlob, ConstantBlobSize)
	PutU16(buf, hdrErrDomainBlob, ErrorDomainBlobSize)
	PutU16(buf, hdrAttributeBlob, AttributeBlobSize)
	PutU16(buf, hdrSignatureBlob, SignatureBlobSize)
	PutU16(buf, hdrEnumBlob, EnumBlobSize)
	PutU16(buf, hdrStructBlob, StructBlobSize)
	PutU16(buf, hdrObjectBlob, ObjectBlobSize)
	PutU16(buf, hdrInterfaceBlob, InterfaceBlobSize)
	PutU16(buf, hdrUnionBlob, UnionBlobSize)

	PutU32(buf, hdrSections, h.Sections)

	for i := hdrSections + 4; i < HeaderSize; i++ {
		buf[i] = 0
	}
}

// DecodeHeader reads a Header from buf[0:HeaderSize]. It does not validate
// the magic or blob sizes; that is the job of internal/validate.
func DecodeHeader(buf []byte) Header {
	return Header{
		NEntries:      GetU16(buf, hdrNEntries),
		NLocalEntries: GetU16(buf, hdrNLocalEntries),
		Directory:     GetU32(buf, hdrDirectory),
		NAttributes:   GetU32(buf, hdrNAttributes),
		Attributes:    GetU32(buf, hdrAttributes),
		Dependencies:  GetU32(buf, hdrDependencies),
		Size:          GetU32(buf, hdrSize),
		Namespace:     GetU32(buf, hdrNamespace),
		NSVersion:     GetU32(buf, hdrNSVersion),
		SharedLibrary: GetU32(buf, hdrSharedLibrary),
		CPrefix:       GetU32(buf, hdrCPrefix),
		Sections:      GetU32(buf, hdrSections),
	}
}

// DirEntry is one slot of the directory table (spec §6.1): 12 bytes.
type DirEntry struct {
	BlobType BlobType
	Local    bool
	Name     uint32 // string offset
	Offset   uint32 // blob offset, or (for an XRef) the namespace string offset
}

func (e DirEntry) Encode(buf []byte) {
	local := uint16(0)
	if e.Local {
		local = 1
	}
	PutU16(buf, 0, uint16(e.BlobType))
	PutU16(buf, 2, local)
	PutU32(buf, 4, e.Name)
	PutU32(buf, 8, e.Offset)
}

func DecodeDirEntry(buf []byte) DirEntry {
	return DirEntry{
		BlobType: BlobType(GetU16(buf, 0)),
		Local:    GetU16(buf, 2) != 0,
		Name:     GetU32(buf, 4),
		Offset:   GetU32(buf, 8),
	}
}

// Section is one slot of the two-slot section table (spec §6.1): 8 bytes.
type Section struct {
	ID     uint32
	Offset uint32
}

func (s Section) Encode(buf []byte) {
	PutU32(buf, 0, s.ID)
	PutU32(buf, 4, s.Offset)
}

func DecodeSection(buf []byte) Section {
	return Section{ID: GetU32(buf, 0), Offset: GetU32(buf, 4)}
}
