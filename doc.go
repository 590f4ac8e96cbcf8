// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package gicompile compiles a GObject Introspection Repository (GIR) XML
// description of a shared library into a compact, versioned binary
// "typelib" that language bindings can memory-map to discover the types,
// functions, signals, fields, and constants of that library.
//
// Use internal/girparser's Parse to turn GIR XML into an [*ir.Module], then
// [Compile] to emit the typelib. Compile never invokes the target library,
// never inspects its ABI, and never generates bindings; it only transforms
// one IR tree into one byte slice.
//
// # Support status
//
// The builder implements the directory, string pool, type pool, attribute
// table, and optional perfect-hash directory index. Each blob's byte layout
// is the one defined in internal/typelib; it is not the byte layout of the
// GObject Introspection Typelib 1.2 format. The following are out of scope:
//
//   - XML schema validation beyond what the parser needs to build a
//     well-formed IR.
//   - Reading a typelib back; [*Typelib.Validate] only checks structural
//     well-formedness of output this package itself produced.
package gicompile
