// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/typelib"
	"github.com/GNOME/gi-compile-repository/internal/validate"
)

// goldenArchive bundles a hand-built IR fixture (as YAML) with a free-form
// description, the same multi-file-per-case layout x/tools/txtar uses for
// its own compiler test data.
var goldenArchive = []byte(`
-- description.txt --
Two functions sharing a namespace, one taking a basic int32 argument and
returning a boolean, the other void-returning and taking no arguments.
Exercises seed scenario S2 from a declarative fixture instead of Go
struct literals.

-- fixture.yaml --
namespace: Golden
version: "1.0"
functions:
  - name: is_ready
    symbol: golden_is_ready
    return: boolean
    args:
      - name: x
        type: int32
  - name: reset
    symbol: golden_reset
`)

type yamlParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlFunction struct {
	Name   string      `yaml:"name"`
	Symbol string      `yaml:"symbol"`
	Return string      `yaml:"return"`
	Args   []yamlParam `yaml:"args"`
}

type yamlFixture struct {
	Namespace string         `yaml:"namespace"`
	Version   string         `yaml:"version"`
	Functions []yamlFunction `yaml:"functions"`
}

var yamlTags = map[string]typelib.TypeTag{
	"boolean": typelib.TagBoolean,
	"int32":   typelib.TagInt32,
	"uint32":  typelib.TagUInt32,
	"utf8":    typelib.TagUTF8,
	"double":  typelib.TagDouble,
}

func buildModuleFromFixture(t *testing.T, f yamlFixture) *ir.Module {
	t.Helper()
	m := ir.NewModule(f.Namespace, f.Version, "", "")
	for _, yf := range f.Functions {
		fn := ir.NewFunction(m, yf.Name)
		fn.Symbol = yf.Symbol
		if yf.Return != "" {
			fn.Result = ir.NewParam(m, "")
			fn.Result.Retval = true
			tag, ok := yamlTags[yf.Return]
			require.True(t, ok, "unknown fixture type %q", yf.Return)
			fn.Result.Type = ir.NewType(m, tag)
		}
		for _, a := range yf.Args {
			p := ir.NewParam(m, a.Name)
			tag, ok := yamlTags[a.Type]
			require.True(t, ok, "unknown fixture type %q", a.Type)
			p.Type = ir.NewType(m, tag)
			fn.Params = append(fn.Params, p)
		}
		m.AddEntry(fn)
	}
	return m
}

// TestGoldenFixtureFromTxtar drives a builder round trip entirely from a
// declarative fixture: the txtar archive above is unpacked, its YAML file
// is decoded into the same shape a hand-authored test case would build with
// Go literals, and the resulting IR is compiled and checked against what
// the fixture describes.
func TestGoldenFixtureFromTxtar(t *testing.T) {
	ar := txtar.Parse(goldenArchive)
	var fixtureData []byte
	for _, f := range ar.Files {
		if f.Name == "fixture.yaml" {
			fixtureData = f.Data
		}
	}
	require.NotNil(t, fixtureData, "fixture.yaml missing from golden archive")

	var fixture yamlFixture
	require.NoError(t, yaml.Unmarshal(fixtureData, &fixture))
	require.Len(t, fixture.Functions, 2)

	m := buildModuleFromFixture(t, fixture)
	buf, err := Build(m, Options{})
	require.NoError(t, err)
	require.NoError(t, validate.Validate(buf))

	h := typelib.DecodeHeader(buf)
	require.Equal(t, uint16(len(fixture.Functions)), h.NEntries)
	require.Equal(t, h.NEntries, h.NLocalEntries)

	for _, yf := range fixture.Functions {
		e := findDirEntry(t, buf, yf.Name)
		require.Equal(t, typelib.BlobFunction, e.BlobType)

		sigOff := typelib.GetU32(buf, int(e.Offset)+8)
		n := typelib.GetU16(buf, int(sigOff))
		require.Equal(t, len(yf.Args), int(n))

		if yf.Return != "" {
			retType := typelib.DecodeSimpleTypeBlob(buf[sigOff+4:])
			require.Equal(t, yamlTags[yf.Return], retType.Tag)
		}
	}
}

// TestModuleYAMLDumpListsFixtureFunctions exercises internal/ir's debug
// YAML dump against the same fixture, wiring yaml.v3 from the ir package
// side too.
func TestModuleYAMLDumpListsFixtureFunctions(t *testing.T) {
	ar := txtar.Parse(goldenArchive)
	var fixtureData []byte
	for _, f := range ar.Files {
		if f.Name == "fixture.yaml" {
			fixtureData = f.Data
		}
	}
	var fixture yamlFixture
	require.NoError(t, yaml.Unmarshal(fixtureData, &fixture))
	m := buildModuleFromFixture(t, fixture)

	out, err := ir.DumpYAML(m)
	require.NoError(t, err)
	require.Contains(t, string(out), "is_ready")
	require.Contains(t, string(out), "golden_reset")
}
