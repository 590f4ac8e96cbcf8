// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package validate performs structural checks on a freshly built typelib
// before it is handed back to the caller: magic and version, declared size
// against actual length, the namespace and version string offsets, the
// directory table's bounds and entry offsets, and the attribute table's
// bounds.
package validate

import (
	"fmt"

	"github.com/GNOME/gi-compile-repository/internal/gierr"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

// Validate checks buf's header, directory table, and attribute table
// bounds, returning the first violation found as a [gierr.ValidationError].
// Directory entry names and the namespace/version strings must be 4-byte
// aligned and in range; a local entry's blob offset is checked for
// alignment only. The header's per-blob size fields, the section table, and
// the other header string offsets (shared library, C prefix, dependencies)
// are not checked.
func Validate(buf []byte) error {
	if len(buf) < typelib.HeaderSize {
		return fail("buffer shorter than the fixed header")
	}
	if string(buf[0:16]) != string(typelib.Magic[:]) {
		return fail("bad magic signature")
	}
	h := typelib.DecodeHeader(buf)
	if buf[16] != typelib.MajorVersion {
		return fail(fmt.Sprintf("unsupported major version %d", buf[16]))
	}
	if int(h.Size) != len(buf) {
		return fail(fmt.Sprintf("declared size %d does not match buffer length %d", h.Size, len(buf)))
	}
	if err := checkOffset(buf, h.Namespace, "namespace"); err != nil {
		return err
	}
	if err := checkOffset(buf, h.NSVersion, "nsversion"); err != nil {
		return err
	}
	if h.Directory%4 != 0 {
		return fail("directory table is not 4-byte aligned")
	}
	dirEnd := int(h.Directory) + int(h.NEntries)*typelib.EntryBlobSize
	if dirEnd > len(buf) {
		return fail("directory table overruns the buffer")
	}
	for i := 0; i < int(h.NEntries); i++ {
		off := int(h.Directory) + i*typelib.EntryBlobSize
		e := typelib.DecodeDirEntry(buf[off:])
		if err := checkOffset(buf, e.Name, "directory entry name"); err != nil {
			return err
		}
		if e.Local && e.Offset%4 != 0 {
			return fail(fmt.Sprintf("entry %d: blob offset %d is not 4-byte aligned", i, e.Offset))
		}
	}
	if h.Attributes != 0 {
		attrEnd := int(h.Attributes) + int(h.NAttributes)*typelib.AttributeBlobSize
		if attrEnd > len(buf) {
			return fail("attribute table overruns the buffer")
		}
	}
	return nil
}

func checkOffset(buf []byte, off uint32, what string) error {
	if off == 0 {
		return nil
	}
	if off%4 != 0 {
		return fail(fmt.Sprintf("%s offset %d is not 4-byte aligned", what, off))
	}
	if int(off) >= len(buf) {
		return fail(fmt.Sprintf("%s offset %d is out of range", what, off))
	}
	return nil
}

func fail(reason string) error { return &gierr.ValidationError{Reason: reason} }
