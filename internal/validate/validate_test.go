// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/gi-compile-repository/internal/builder"
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

func buildSimple(t *testing.T) []byte {
	t.Helper()
	m := ir.NewModule("Test", "1.0", "", "")
	fn := ir.NewFunction(m, "foo")
	fn.Symbol = "test_foo"
	m.AddEntry(fn)
	buf, err := builder.Build(m, builder.Options{})
	require.NoError(t, err)
	return buf
}

func TestValidateAcceptsWellFormedTypelib(t *testing.T) {
	require.NoError(t, Validate(buildSimple(t)))
}

func TestValidateRejectsBadMagic(t *testing.T) {
	buf := buildSimple(t)
	buf[0] ^= 0xFF
	err := Validate(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "magic")
}

func TestValidateRejectsTruncatedBuffer(t *testing.T) {
	err := Validate(make([]byte, 4))
	require.Error(t, err)
}

func TestValidateRejectsSizeMismatch(t *testing.T) {
	buf := buildSimple(t)
	h := typelib.DecodeHeader(buf)
	h.Size = uint32(len(buf)) + 100
	h.Encode(buf)
	err := Validate(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "declared size")
}

func TestValidateRejectsUnalignedDirectory(t *testing.T) {
	buf := buildSimple(t)
	h := typelib.DecodeHeader(buf)
	h.Directory++
	h.Encode(buf)
	err := Validate(buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "aligned")
}
