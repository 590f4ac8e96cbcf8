// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package typelib

import (
	"encoding/binary"
	"math"
)

// The Put* helpers below write little-endian integers at a byte offset
// within buf. Design note §9 ("Little-endian on big-endian hosts") calls for
// exactly this: explicit byte-order helpers rather than reinterpreting host
// memory, so the emitted bytes are identical regardless of host endianness.

func PutU8(buf []byte, off int, v uint8)   { buf[off] = v }
func PutU16(buf []byte, off int, v uint16) { binary.LittleEndian.PutUint16(buf[off:], v) }
func PutU32(buf []byte, off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }
func PutU64(buf []byte, off int, v uint64) { binary.LittleEndian.PutUint64(buf[off:], v) }

func PutI8(buf []byte, off int, v int8)   { buf[off] = uint8(v) }
func PutI16(buf []byte, off int, v int16) { binary.LittleEndian.PutUint16(buf[off:], uint16(v)) }
func PutI32(buf []byte, off int, v int32) { binary.LittleEndian.PutUint32(buf[off:], uint32(v)) }
func PutI64(buf []byte, off int, v int64) { binary.LittleEndian.PutUint64(buf[off:], uint64(v)) }

func PutF32(buf []byte, off int, v float32) { PutU32(buf, off, math.Float32bits(v)) }
func PutF64(buf []byte, off int, v float64) { PutU64(buf, off, math.Float64bits(v)) }

func GetU8(buf []byte, off int) uint8   { return buf[off] }
func GetU16(buf []byte, off int) uint16 { return binary.LittleEndian.Uint16(buf[off:]) }
func GetU32(buf []byte, off int) uint32 { return binary.LittleEndian.Uint32(buf[off:]) }
func GetU64(buf []byte, off int) uint64 { return binary.LittleEndian.Uint64(buf[off:]) }

func GetI32(buf []byte, off int) int32 { return int32(GetU32(buf, off)) }
func GetI64(buf []byte, off int) int64 { return int64(GetU64(buf, off)) }

// PutBit sets or clears bit index i (0 = least-significant) of the byte at
// buf[off].
func PutBit(buf []byte, off int, i uint, v bool) {
	if v {
		buf[off] |= 1 << i
	} else {
		buf[off] &^= 1 << i
	}
}

// Align4 rounds n up to the next multiple of 4.
func Align4(n int) int { return (n + 3) &^ 3 }
