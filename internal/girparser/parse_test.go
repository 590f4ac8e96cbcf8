// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package girparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
)

const simpleGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <namespace name="Test" version="1.0" shared-library="libtest-1.0.so.0" identifier-prefixes="Test">
    <function name="foo" identifier="test_foo">
      <return-value transfer-ownership="none">
        <type name="gboolean" type="gboolean"/>
      </return-value>
      <parameters>
        <parameter name="x" transfer-ownership="none">
          <type name="gint" type="gint"/>
        </parameter>
      </parameters>
    </function>
  </namespace>
</repository>
`

func TestParseSimpleFunction(t *testing.T) {
	m, err := Parse(strings.NewReader(simpleGIR), "test.gir", Options{})
	require.NoError(t, err)

	require.Equal(t, "Test", m.Name)
	require.Equal(t, "1.0", m.Version)
	require.Equal(t, "libtest-1.0.so.0", m.SharedLibrary)
	require.Len(t, m.Entries, 1)

	fn, ok := m.Entries[0].(*ir.Function)
	require.True(t, ok)
	require.Equal(t, "foo", fn.Name())
	require.Equal(t, "test_foo", fn.Symbol)
	require.NotNil(t, fn.Result)
	require.Equal(t, typelib.TagBoolean, fn.Result.Type.Tag)
	require.Len(t, fn.Params, 1)
	require.Equal(t, typelib.TagInt32, fn.Params[0].Type.Tag)
}

const includingGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <include name="Base" version="1.0"/>
  <namespace name="Derived" version="1.0">
    <class name="Widget" parent="Base.Object"/>
  </namespace>
</repository>
`

const baseGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <namespace name="Base" version="1.0">
    <class name="Object"/>
  </namespace>
</repository>
`

func TestParseResolvesInclude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Base-1.0.gir"), []byte(baseGIR), 0o644))

	m, err := Parse(strings.NewReader(includingGIR), "derived.gir", Options{IncludeDirs: []string{dir}})
	require.NoError(t, err)

	require.Equal(t, []string{"Base-1.0"}, m.Dependencies)
	require.Len(t, m.IncludeModules, 1)
	require.Equal(t, "Base", m.IncludeModules[0].Name)
}

func TestParseMissingIncludeFails(t *testing.T) {
	_, err := Parse(strings.NewReader(includingGIR), "derived.gir", Options{})
	require.Error(t, err)
}
