// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
	"github.com/GNOME/gi-compile-repository/internal/validate"
)

func findDirEntry(t *testing.T, buf []byte, name string) typelib.DirEntry {
	t.Helper()
	h := typelib.DecodeHeader(buf)
	for i := 0; i < int(h.NEntries); i++ {
		off := int(h.Directory) + i*typelib.EntryBlobSize
		e := typelib.DecodeDirEntry(buf[off:])
		if readString(buf, e.Name) == name {
			return e
		}
	}
	t.Fatalf("no directory entry named %q", name)
	return typelib.DirEntry{}
}

func readString(buf []byte, off uint32) string {
	if off == 0 {
		return ""
	}
	end := off
	for end < uint32(len(buf)) && buf[end] != 0 {
		end++
	}
	return string(buf[off:end])
}

// TestEmptyNamespace is seed scenario S1 (spec §8): an empty namespace
// builds to a typelib with no entries and passes validation.
func TestEmptyNamespace(t *testing.T) {
	m := ir.NewModule("Empty", "1.0", "", "")

	buf, err := Build(m, Options{})
	require.NoError(t, err)
	require.NoError(t, validate.Validate(buf))

	h := typelib.DecodeHeader(buf)
	require.Zero(t, h.NEntries)
	require.Zero(t, h.NLocalEntries)
}

// TestOneFunction is seed scenario S2: foo(int) -> bool.
func TestOneFunction(t *testing.T) {
	m := ir.NewModule("Test", "1.0", "", "")

	fn := ir.NewFunction(m, "foo")
	fn.Symbol = "test_foo"
	fn.Result = ir.NewParam(m, "")
	fn.Result.Retval = true
	fn.Result.Type = ir.NewType(m, typelib.TagBoolean)

	arg := ir.NewParam(m, "x")
	arg.Type = ir.NewType(m, typelib.TagInt32)
	fn.Params = []*ir.Param{arg}

	m.AddEntry(fn)

	buf, err := Build(m, Options{})
	require.NoError(t, err)
	require.NoError(t, validate.Validate(buf))

	e := findDirEntry(t, buf, "foo")
	require.Equal(t, typelib.BlobFunction, e.BlobType)
	require.True(t, e.Local)

	sigOff := typelib.GetU32(buf, int(e.Offset)+8)
	nArgs := typelib.GetU16(buf, int(sigOff))
	require.Equal(t, uint16(1), nArgs)

	retType := typelib.DecodeSimpleTypeBlob(buf[sigOff+4:])
	require.Equal(t, typelib.TagBoolean, retType.Tag)

	argOff := sigOff + typelib.SignatureBlobSize
	argType := typelib.DecodeSimpleTypeBlob(buf[argOff+12:])
	require.Equal(t, typelib.TagInt32, argType.Tag)
}

// TestDuplicateTypesDeduplicated is seed scenario S3: two functions each
// taking GList<utf8> share one ParamTypeBlob in the tail.
func TestDuplicateTypesDeduplicated(t *testing.T) {
	m := ir.NewModule("Test", "1.0", "", "")

	newFn := func(name string) *ir.Function {
		fn := ir.NewFunction(m, name)
		fn.Symbol = "test_" + name
		elem := ir.NewType(m, typelib.TagUTF8)
		list := ir.NewType(m, typelib.TagGList)
		list.Param1 = elem
		arg := ir.NewParam(m, "l")
		arg.Type = list
		fn.Params = []*ir.Param{arg}
		return fn
	}

	f1, f2 := newFn("one"), newFn("two")
	m.AddEntry(f1)
	m.AddEntry(f2)

	buf, err := Build(m, Options{})
	require.NoError(t, err)
	require.NoError(t, validate.Validate(buf))

	e1 := findDirEntry(t, buf, "one")
	e2 := findDirEntry(t, buf, "two")

	sig1 := typelib.GetU32(buf, int(e1.Offset)+8)
	sig2 := typelib.GetU32(buf, int(e2.Offset)+8)
	arg1Off := sig1 + typelib.SignatureBlobSize
	arg2Off := sig2 + typelib.SignatureBlobSize

	type1 := typelib.DecodeSimpleTypeBlob(buf[arg1Off+12:])
	type2 := typelib.DecodeSimpleTypeBlob(buf[arg2Off+12:])
	require.True(t, type1.Extended)
	require.True(t, type2.Extended)
	require.Equal(t, type1.Offset, type2.Offset)
}

// TestForwardCrossNamespaceReference is seed scenario S4: a class whose
// parent lives in another namespace, with no pre-existing XRef, forces
// exactly one synthesized XRef entry and one build restart.
func TestForwardCrossNamespaceReference(t *testing.T) {
	m := ir.NewModule("Test", "1.0", "", "")

	obj := ir.NewObject(m, "Widget")
	obj.ParentName = "GObject.Object"
	m.AddEntry(obj)

	buf, err := Build(m, Options{})
	require.NoError(t, err)
	require.NoError(t, validate.Validate(buf))

	h := typelib.DecodeHeader(buf)
	require.Equal(t, int(h.NLocalEntries)+1, int(h.NEntries))

	xref := m.Entries[len(m.Entries)-1]
	x, ok := xref.(*ir.XRef)
	require.True(t, ok, "last entry should be the synthesized XRef")
	require.Equal(t, "GObject", x.Namespace)
	require.Equal(t, "Object", x.Name())

	objEntry := findDirEntry(t, buf, "Widget")
	parent := typelib.GetU16(buf, int(objEntry.Offset)+12)
	require.Equal(t, uint16(len(m.Entries)), parent)
}

// TestAttributeOrdering is seed scenario S5: only the second function
// carries an attribute, so the single AttributeBlob's offset must equal
// that function's blob offset, not the first's.
func TestAttributeOrdering(t *testing.T) {
	m := ir.NewModule("Test", "1.0", "", "")

	f1 := ir.NewFunction(m, "first")
	f1.Symbol = "test_first"
	f2 := ir.NewFunction(m, "second")
	f2.Symbol = "test_second"
	f2.Attrs().Set("Version", "2.0")

	m.AddEntry(f1)
	m.AddEntry(f2)

	buf, err := Build(m, Options{})
	require.NoError(t, err)
	require.NoError(t, validate.Validate(buf))

	h := typelib.DecodeHeader(buf)
	require.Equal(t, uint32(1), h.NAttributes)

	e2 := findDirEntry(t, buf, "second")
	attr := typelib.DecodeAttributeBlob(buf[h.Attributes:])
	require.Equal(t, e2.Offset, attr.Offset)
	require.Equal(t, "Version", readString(buf, attr.Name))
	require.Equal(t, "2.0", readString(buf, attr.Value))
}

// TestPerfectHashDirectoryIndex is seed scenario S6: a namespace with a
// handful of ordinarily-hashable entries gets a DIRECTORY_INDEX section,
// and the typelib still validates either way.
func TestPerfectHashDirectoryIndex(t *testing.T) {
	m := ir.NewModule("Test", "1.0", "", "")
	for _, name := range []string{"alpha", "bravo", "charlie", "delta"} {
		fn := ir.NewFunction(m, name)
		fn.Symbol = "test_" + name
		m.AddEntry(fn)
	}

	buf, err := Build(m, Options{DirectoryIndex: true})
	require.NoError(t, err)
	require.NoError(t, validate.Validate(buf))

	h := typelib.DecodeHeader(buf)
	sec := typelib.DecodeSection(buf[h.Sections:])
	if sec.ID == typelib.SectionDirectoryIndex {
		require.NotZero(t, sec.Offset)
	} else {
		// CHD construction failed for this input; the section is
		// omitted but the file must still be well-formed.
		require.Equal(t, uint32(typelib.SectionEnd), sec.ID)
	}
}
