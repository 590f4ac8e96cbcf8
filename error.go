// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package gicompile

import "github.com/GNOME/gi-compile-repository/internal/gierr"

// The five error kinds below are the taxonomy a compile can fail with
// (spec §7). Each wraps a plain error so callers can branch with
// [errors.Is]/[errors.As], while Error() prints a GNOME-style context
// line. They are defined in internal/gierr and aliased here so that
// internal packages (the builder, the validator, the parser) can return
// them directly without importing this package.

// InputParseError reports an ill-formed GIR document: unknown version,
// missing required attribute, conflicting include versions, or malformed
// XML. It carries the source location the parser was at.
type InputParseError = gierr.InputParseError

// ResolutionError reports a name referenced by the IR that could not be
// resolved even as a cross-namespace forward reference. It carries the
// stack of enclosing node names, innermost last, e.g.
// "Gtk.Widget.activate: type reference 'Foo' not found".
type ResolutionError = gierr.ResolutionError

// LayoutError reports that a node's emission wrote past its full_size
// reservation (spec §4.3). This is always a compiler bug, never bad input.
type LayoutError = gierr.LayoutError

// ValidationError reports that the emitted buffer failed the post-build
// structural check (internal/validate). The core never writes a partial
// file when this occurs.
type ValidationError = gierr.ValidationError

// IOError reports a failure opening, writing, or atomically renaming the
// output file. Raised only by the command-line driver, never by the core.
type IOError = gierr.IOError
