// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package ir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

func TestFullSizeIncludesOwnName(t *testing.T) {
	m := NewModule("Test", "1.0", "", "")

	short := NewFunction(m, "f")
	short.Symbol = "test_f"
	long := NewFunction(m, "a_much_longer_function_name")
	long.Symbol = "test_f"

	require.Greater(t, FullSize(long), FullSize(short),
		"a longer own name must grow FullSize even when every other field is identical")
}

func TestFullSizeXRefCountsBothNameAndNamespace(t *testing.T) {
	m := NewModule("Test", "1.0", "", "")
	x := NewXRef(m, "GObject", "Object")

	want := stringCost("Object") + stringCost("GObject")
	require.Equal(t, want, FullSize(x))
}

func TestFullSizeFunctionCountsSignature(t *testing.T) {
	m := NewModule("Test", "1.0", "", "")

	fn := NewFunction(m, "foo")
	fn.Symbol = "test_foo"
	fn.Result = NewParam(m, "")
	fn.Result.Retval = true
	fn.Result.Type = NewType(m, typelib.TagBoolean)

	bare := FullSize(fn)

	arg := NewParam(m, "x")
	arg.Type = NewType(m, typelib.TagInt32)
	fn.Params = []*Param{arg}

	require.Greater(t, FullSize(fn), bare, "adding a parameter must grow FullSize")
}
