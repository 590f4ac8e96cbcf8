// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package typelib

// The structs below are this implementation's concrete realization of the
// per-variant blob payloads spec §3.1/§4.7 describe at the field level. Spec
// §6.1 fixes the *width* of each blob named in the header table; the exact
// bit layout within that width is not enumerated there ("blob layouts are
// not enumerated exhaustively here"), so the packing chosen here is this
// compiler's own internally-consistent contract, written and read nowhere
// except by this package and internal/validate.

// SimpleTypeBlob is the 4-byte inline type descriptor written for every
// Type node (spec §4.7, "Type"). Basic types are encoded entirely inline;
// non-basic types store a 4-byte-aligned tail offset to an extended blob
// (InterfaceTypeBlob, ArrayTypeBlob, ParamTypeBlob, or ErrorTypeBlob).
//
//	bit 0:     1 if this is an offset to an extended blob, 0 if inline
//	bits 1-5:  TypeTag (inline form only)
//	bit 6:     pointer flag (inline form only)
//	bits 2-31: tail offset, implicitly 4-aligned (offset form only)
type SimpleTypeBlob struct {
	Tag       TypeTag
	Pointer   bool
	Extended  bool   // true if Offset designates an extended blob
	Offset    uint32 // valid iff Extended
}

func EncodeSimpleTypeInline(tag TypeTag, pointer bool) uint32 {
	w := uint32(tag) << 1
	if pointer {
		w |= 1 << 6
	}
	return w
}

func EncodeSimpleTypeOffset(offset uint32) uint32 {
	return offset | 1
}

func (b SimpleTypeBlob) Encode(buf []byte) {
	if b.Extended {
		PutU32(buf, 0, EncodeSimpleTypeOffset(b.Offset))
		return
	}
	PutU32(buf, 0, EncodeSimpleTypeInline(b.Tag, b.Pointer))
}

func DecodeSimpleTypeBlob(buf []byte) SimpleTypeBlob {
	w := GetU32(buf, 0)
	if w&1 != 0 {
		return SimpleTypeBlob{Extended: true, Offset: w &^ 1}
	}
	return SimpleTypeBlob{Tag: TypeTag((w >> 1) & 0x1F), Pointer: w&(1<<6) != 0}
}

// InterfaceTypeBlob is the extended type blob for TagInterface.
type InterfaceTypeBlob struct {
	// DirectoryIndex is the 1-based resolved index of the referenced entry
	// (spec §4.6), 0 if not yet resolved.
	DirectoryIndex uint16
}

func (b InterfaceTypeBlob) Encode(buf []byte) {
	PutU16(buf, 0, b.DirectoryIndex)
	PutU16(buf, 2, 0)
}

func DecodeInterfaceTypeBlob(buf []byte) InterfaceTypeBlob {
	return InterfaceTypeBlob{DirectoryIndex: GetU16(buf, 0)}
}

// ArrayTypeBlob is the extended type blob header for TagArray; it is
// followed immediately by one SimpleTypeBlob describing the element type.
type ArrayTypeBlob struct {
	Kind           ArrayKind
	ZeroTerminated bool
	HasLength      bool // LengthOrSize is a parameter index
	HasSize        bool // LengthOrSize is a fixed byte size
	LengthOrSize   uint32
}

func (b ArrayTypeBlob) Encode(buf []byte) {
	PutU8(buf, 0, byte(b.Kind))
	flags := byte(0)
	if b.ZeroTerminated {
		flags |= 1
	}
	if b.HasLength {
		flags |= 2
	}
	if b.HasSize {
		flags |= 4
	}
	PutU8(buf, 1, flags)
	PutU16(buf, 2, 0)
	PutU32(buf, 4, b.LengthOrSize)
}

func DecodeArrayTypeBlob(buf []byte) ArrayTypeBlob {
	flags := GetU8Byte(buf, 1)
	return ArrayTypeBlob{
		Kind:           ArrayKind(GetU8Byte(buf, 0)),
		ZeroTerminated: flags&1 != 0,
		HasLength:      flags&2 != 0,
		HasSize:        flags&4 != 0,
		LengthOrSize:   GetU32(buf, 4),
	}
}

// GetU8Byte is like GetU8 but named to avoid colliding with the u8 value
// receivers above; it exists purely for readability at call sites.
func GetU8Byte(buf []byte, off int) byte { return buf[off] }

// ParamKind distinguishes the parameterized container types.
type ParamKind byte

const (
	ParamGList ParamKind = iota
	ParamGSList
	ParamGArray
	ParamGPtrArray
	ParamGHash
)

// ParamTypeBlob is the extended type blob header for GList/GSList/GArray/
// GPtrArray/GHash; it is followed by NParams SimpleTypeBlobs (1, except 2
// for GHash).
type ParamTypeBlob struct {
	Kind    ParamKind
	NParams uint8
}

func (b ParamTypeBlob) Encode(buf []byte) {
	PutU8(buf, 0, byte(b.Kind))
	PutU8(buf, 1, b.NParams)
	PutU16(buf, 2, 0)
}

func DecodeParamTypeBlob(buf []byte) ParamTypeBlob {
	return ParamTypeBlob{Kind: ParamKind(buf[0]), NParams: buf[1]}
}

// ErrorTypeBlob is the extended type blob header for TagError; it is
// followed by NDomains interned string offsets (u32 each).
type ErrorTypeBlob struct {
	NDomains uint32
}

func (b ErrorTypeBlob) Encode(buf []byte) { PutU32(buf, 0, b.NDomains) }

func DecodeErrorTypeBlob(buf []byte) ErrorTypeBlob { return ErrorTypeBlob{NDomains: GetU32(buf, 0)} }

// FunctionBlob, 24 bytes (spec §3.1 Function/Callback, §6.1).
type FunctionBlob struct {
	Name         uint32
	Symbol       uint32
	Signature    uint32 // offset of SignatureBlob
	Deprecated   bool
	IsMethod     bool
	IsSetter     bool
	IsGetter     bool
	IsConstructor bool
	WrapsVFunc   bool
	Throws       bool
	IsAsync      bool
	Index        uint16 // property index (setter/getter) or 0x3FF
	SyncFunc     uint16 // AsyncSentinel if absent
	AsyncFunc    uint16
	FinishFunc   uint16
}

func (b FunctionBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.Symbol)
	PutU32(buf, 8, b.Signature)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	setBit16(&flags, 1, b.IsMethod)
	setBit16(&flags, 2, b.IsSetter)
	setBit16(&flags, 3, b.IsGetter)
	setBit16(&flags, 4, b.IsConstructor)
	setBit16(&flags, 5, b.WrapsVFunc)
	setBit16(&flags, 6, b.Throws)
	setBit16(&flags, 7, b.IsAsync)
	PutU16(buf, 12, flags)
	PutU16(buf, 14, b.Index)
	PutU16(buf, 16, b.SyncFunc)
	PutU16(buf, 18, b.AsyncFunc)
	PutU16(buf, 20, b.FinishFunc)
	PutU16(buf, 22, 0)
}

// CallbackBlob, 12 bytes.
type CallbackBlob struct {
	Name       uint32
	Signature  uint32
	Deprecated bool
	Throws     bool
}

func (b CallbackBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.Signature)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	setBit16(&flags, 1, b.Throws)
	PutU16(buf, 8, flags)
	PutU16(buf, 10, 0)
}

// SignalBlob, 16 bytes.
type SignalBlob struct {
	Name                 uint32
	Signature            uint32
	RunPhase             RunPhase
	NoRecurse            bool
	Detailed             bool
	Action               bool
	NoHooks              bool
	HasClassClosure      bool
	TrueStopsEmit        bool
	InstanceTransferFull bool
	ClassClosure         uint16
}

func (b SignalBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.Signature)
	flags := uint16(b.RunPhase) & 0x3
	setBit16(&flags, 2, b.NoRecurse)
	setBit16(&flags, 3, b.Detailed)
	setBit16(&flags, 4, b.Action)
	setBit16(&flags, 5, b.NoHooks)
	setBit16(&flags, 6, b.HasClassClosure)
	setBit16(&flags, 7, b.TrueStopsEmit)
	setBit16(&flags, 8, b.InstanceTransferFull)
	PutU16(buf, 8, flags)
	PutU16(buf, 10, b.ClassClosure)
	PutU32(buf, 12, 0)
}

// VFuncBlob, 20 bytes.
type VFuncBlob struct {
	Name                    uint32
	Signature               uint32
	Invoker                 uint16 // 0x3FF if none
	MustChainUp             bool
	MustBeImplemented       bool
	MustNotBeImplemented    bool
	IsClassClosure          bool
	Throws                  bool
	IsStatic                bool
	StructOffset            uint16 // UnknownOffset16 if unknown
	SyncFunc, AsyncFunc     uint16
	FinishFunc              uint16
}

func (b VFuncBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.Signature)
	PutU16(buf, 8, b.Invoker)
	var flags uint16
	setBit16(&flags, 0, b.MustChainUp)
	setBit16(&flags, 1, b.MustBeImplemented)
	setBit16(&flags, 2, b.MustNotBeImplemented)
	setBit16(&flags, 3, b.IsClassClosure)
	setBit16(&flags, 4, b.Throws)
	setBit16(&flags, 5, b.IsStatic)
	PutU16(buf, 10, flags)
	PutU16(buf, 12, b.StructOffset)
	PutU16(buf, 14, b.SyncFunc)
	PutU16(buf, 16, b.AsyncFunc)
	PutU16(buf, 18, b.FinishFunc)
}

// ArgBlob, 16 bytes. The trailing 4 bytes are the argument's SimpleTypeBlob,
// written by the caller via Type emission immediately after this header.
type ArgBlob struct {
	Name             uint32
	Direction        Direction
	CallerAllocates  bool
	Optional         bool
	Nullable         bool
	Retval           bool
	Skip             bool
	Transfer         bool
	ShallowTransfer  bool
	Scope            Scope
	Closure          uint16
	Destroy          uint16
}

func (b ArgBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	flags := uint16(b.Direction) & 0x3
	setBit16(&flags, 2, b.CallerAllocates)
	setBit16(&flags, 3, b.Optional)
	setBit16(&flags, 4, b.Nullable)
	setBit16(&flags, 5, b.Retval)
	setBit16(&flags, 6, b.Skip)
	setBit16(&flags, 7, b.Transfer)
	setBit16(&flags, 8, b.ShallowTransfer)
	flags |= uint16(b.Scope) << 9
	PutU16(buf, 4, flags)
	PutU16(buf, 6, b.Closure)
	PutU16(buf, 8, b.Destroy)
	// buf[12:16] reserved for the trailing SimpleTypeBlob, written by caller.
	PutU32(buf, 12, 0)
}

// PropertyBlob, 16 bytes. Trailing SimpleTypeBlob not included here (written
// separately at buf[12:16] by the caller, as with ArgBlob).
type PropertyBlob struct {
	Name            uint32
	Readable        bool
	Writable        bool
	Construct       bool
	ConstructOnly   bool
	Transfer        bool
	ShallowTransfer bool
	SetterIndex     uint16 // AccessorSentinel if none
	GetterIndex     uint16
}

func (b PropertyBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	var flags uint16
	setBit16(&flags, 0, b.Readable)
	setBit16(&flags, 1, b.Writable)
	setBit16(&flags, 2, b.Construct)
	setBit16(&flags, 3, b.ConstructOnly)
	setBit16(&flags, 4, b.Transfer)
	setBit16(&flags, 5, b.ShallowTransfer)
	PutU16(buf, 4, flags)
	PutU16(buf, 6, b.SetterIndex)
	PutU16(buf, 8, b.GetterIndex)
	PutU32(buf, 12, 0)
}

// FieldBlob, 16 bytes.
type FieldBlob struct {
	Name             uint32
	Readable         bool
	Writable         bool
	HasEmbeddedType  bool
	StructOffset     uint16 // UnknownOffset16 if unknown
	Bits             uint16 // 0 if not a bitfield
	TypeOrCallback   uint32 // SimpleTypeBlob word, or tail offset of embedded CallbackBlob
}

func (b FieldBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	var flags uint16
	setBit16(&flags, 0, b.Readable)
	setBit16(&flags, 1, b.Writable)
	setBit16(&flags, 2, b.HasEmbeddedType)
	PutU16(buf, 4, flags)
	PutU16(buf, 6, b.StructOffset)
	PutU16(buf, 8, b.Bits)
	PutU32(buf, 10, b.TypeOrCallback)
	PutU16(buf, 14, 0)
}

// ValueBlob, 12 bytes.
type ValueBlob struct {
	Name           uint32
	Value          int32
	Deprecated     bool
	UnsignedValue  bool
}

func (b ValueBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutI32(buf, 4, b.Value)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	setBit16(&flags, 1, b.UnsignedValue)
	PutU16(buf, 8, flags)
	PutU16(buf, 10, 0)
}

// ConstantBlob, 24 bytes.
type ConstantBlob struct {
	Name        uint32
	Type        uint32 // SimpleTypeBlob word
	ValueOffset uint32 // tail offset of the inline constant value
	ValueSize   uint32
	Deprecated  bool
}

func (b ConstantBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.Type)
	PutU32(buf, 8, b.ValueOffset)
	PutU32(buf, 12, b.ValueSize)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	PutU16(buf, 16, flags)
	PutU16(buf, 18, 0)
	PutU32(buf, 20, 0)
}

// AttributeBlob, 12 bytes (spec §4.8).
type AttributeBlob struct {
	Offset uint32 // the owning node's blob offset
	Name   uint32 // interned key
	Value  uint32 // interned value
}

func (b AttributeBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Offset)
	PutU32(buf, 4, b.Name)
	PutU32(buf, 8, b.Value)
}

func DecodeAttributeBlob(buf []byte) AttributeBlob {
	return AttributeBlob{Offset: GetU32(buf, 0), Name: GetU32(buf, 4), Value: GetU32(buf, 8)}
}

// SignatureBlob, 8 bytes, followed by NArguments ArgBlobs.
type SignatureBlob struct {
	NArguments        uint16
	MayReturnNull     bool
	CallerOwnsReturn  bool
	SkipReturn        bool
	ReturnType        uint32 // SimpleTypeBlob word
}

func (b SignatureBlob) Encode(buf []byte) {
	PutU16(buf, 0, b.NArguments)
	var flags uint16
	setBit16(&flags, 0, b.MayReturnNull)
	setBit16(&flags, 1, b.CallerOwnsReturn)
	setBit16(&flags, 2, b.SkipReturn)
	PutU16(buf, 2, flags)
	PutU32(buf, 4, b.ReturnType)
}

func DecodeSignatureBlob(buf []byte) SignatureBlob {
	return SignatureBlob{NArguments: GetU16(buf, 0), ReturnType: GetU32(buf, 4)}
}

// EnumBlob, 24 bytes.
type EnumBlob struct {
	Name         uint32
	GTypeName    uint32
	GTypeInit    uint32
	ErrorDomain  uint32
	NValues      uint16
	NMethods     uint16
	StorageType  TypeTag
	Deprecated   bool
}

func (b EnumBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.GTypeName)
	PutU32(buf, 8, b.GTypeInit)
	PutU32(buf, 12, b.ErrorDomain)
	PutU16(buf, 16, b.NValues)
	PutU16(buf, 18, b.NMethods)
	PutU8(buf, 20, byte(b.StorageType))
	var flags byte
	if b.Deprecated {
		flags |= 1
	}
	PutU8(buf, 21, flags)
	PutU16(buf, 22, 0)
}

// StructBlob, 32 bytes.
type StructBlob struct {
	Name          uint32
	GTypeName     uint32
	GTypeInit     uint32
	CopyFunction  uint32
	FreeFunction  uint32
	Size          uint32
	Alignment     uint16
	NFields       uint16
	NMethods      uint16
	Deprecated    bool
	Disguised     bool
	Opaque        bool
	IsGTypeStruct bool
	Foreign       bool
}

func (b StructBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.GTypeName)
	PutU32(buf, 8, b.GTypeInit)
	PutU32(buf, 12, b.CopyFunction)
	PutU32(buf, 16, b.FreeFunction)
	PutU32(buf, 20, b.Size)
	PutU16(buf, 24, b.Alignment)
	PutU16(buf, 26, b.NFields)
	PutU16(buf, 28, b.NMethods)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	setBit16(&flags, 1, b.Disguised)
	setBit16(&flags, 2, b.Opaque)
	setBit16(&flags, 3, b.IsGTypeStruct)
	setBit16(&flags, 4, b.Foreign)
	PutU16(buf, 30, flags)
}

// ObjectBlob, 60 bytes.
type ObjectBlob struct {
	Name              uint32
	GTypeName         uint32
	GTypeInit         uint32
	Parent            uint16 // directory index, 0 if none
	GTypeStruct       uint32
	RefFunction       uint32
	UnrefFunction     uint32
	SetValueFunction  uint32
	GetValueFunction  uint32
	NInterfaces       uint16
	NFields           uint16
	NProperties       uint16
	NMethods          uint16
	NSignals          uint16
	NVFuncs           uint16
	NConstants        uint16
	NFieldCallbacks   uint16
	Deprecated        bool
	Abstract          bool
	Fundamental       bool
	Final             bool
}

func (b ObjectBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.GTypeName)
	PutU32(buf, 8, b.GTypeInit)
	PutU16(buf, 12, b.Parent)
	PutU16(buf, 14, 0)
	PutU32(buf, 16, b.GTypeStruct)
	PutU32(buf, 20, b.RefFunction)
	PutU32(buf, 24, b.UnrefFunction)
	PutU32(buf, 28, b.SetValueFunction)
	PutU32(buf, 32, b.GetValueFunction)
	PutU16(buf, 36, b.NInterfaces)
	PutU16(buf, 38, b.NFields)
	PutU16(buf, 40, b.NProperties)
	PutU16(buf, 42, b.NMethods)
	PutU16(buf, 44, b.NSignals)
	PutU16(buf, 46, b.NVFuncs)
	PutU16(buf, 48, b.NConstants)
	PutU16(buf, 50, b.NFieldCallbacks)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	setBit16(&flags, 1, b.Abstract)
	setBit16(&flags, 2, b.Fundamental)
	setBit16(&flags, 3, b.Final)
	PutU16(buf, 52, flags)
	PutU32(buf, 54, 0)
	PutU16(buf, 58, 0)
}

// InterfaceBlob, 40 bytes.
type InterfaceBlob struct {
	Name            uint32
	GTypeName       uint32
	GTypeInit       uint32
	GTypeStruct     uint32
	NPrerequisites  uint16
	NProperties     uint16
	NMethods        uint16
	NSignals        uint16
	NVFuncs         uint16
	NConstants      uint16
	Deprecated      bool
}

func (b InterfaceBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.GTypeName)
	PutU32(buf, 8, b.GTypeInit)
	PutU32(buf, 12, b.GTypeStruct)
	PutU16(buf, 16, b.NPrerequisites)
	PutU16(buf, 18, b.NProperties)
	PutU16(buf, 20, b.NMethods)
	PutU16(buf, 22, b.NSignals)
	PutU16(buf, 24, b.NVFuncs)
	PutU16(buf, 26, b.NConstants)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	PutU16(buf, 28, flags)
	for i := 30; i < 40; i++ {
		buf[i] = 0
	}
}

// UnionBlob, 40 bytes.
type UnionBlob struct {
	Name                uint32
	GTypeName           uint32
	GTypeInit           uint32
	CopyFunction        uint32
	FreeFunction        uint32
	Size                uint32
	NFields             uint16
	NFunctions          uint16
	DiscriminatorOffset int32 // -1 if none
	DiscriminatorType   uint32 // SimpleTypeBlob word
	NDiscriminators     uint16
	Deprecated          bool
}

func (b UnionBlob) Encode(buf []byte) {
	PutU32(buf, 0, b.Name)
	PutU32(buf, 4, b.GTypeName)
	PutU32(buf, 8, b.GTypeInit)
	PutU32(buf, 12, b.CopyFunction)
	PutU32(buf, 16, b.FreeFunction)
	PutU32(buf, 20, b.Size)
	PutU16(buf, 24, b.NFields)
	PutU16(buf, 26, b.NFunctions)
	PutI32(buf, 28, b.DiscriminatorOffset)
	PutU32(buf, 32, b.DiscriminatorType)
	PutU16(buf, 36, b.NDiscriminators)
	var flags uint16
	setBit16(&flags, 0, b.Deprecated)
	PutU16(buf, 38, flags)
}

func setBit16(w *uint16, i uint, v bool) {
	if v {
		*w |= 1 << i
	}
}
