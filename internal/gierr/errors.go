// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package gierr defines the compiler's error taxonomy (spec §7). It is
// separate from the root package so that internal packages (the builder,
// the validator, the parser) can return these concrete types without
// importing the root package, which itself imports them.
package gierr

import (
	"errors"
	"fmt"
	"strings"
)

// InputParseError reports an ill-formed GIR document.
type InputParseError struct {
	File         string
	Line, Column int
	Err          error
}

func (e *InputParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
}

func (e *InputParseError) Unwrap() error { return e.Err }

// ResolutionError reports a name referenced by the IR that could not be
// resolved even as a cross-namespace forward reference.
type ResolutionError struct {
	Stack []string
	Name  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: type reference %q not found", strings.Join(e.Stack, "."), e.Name)
}

// LayoutError reports that a node's emission wrote past its full_size
// reservation (spec §4.3). Always a compiler bug, never bad input.
type LayoutError struct {
	Node     string
	Written  int
	Reserved int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("internal error: %s wrote %d bytes, reserved only %d", e.Node, e.Written, e.Reserved)
}

// ValidationError reports that the emitted buffer failed the post-build
// structural check.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "typelib validation failed: " + e.Reason }

// IOError reports a failure opening, writing, or atomically renaming the
// output file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// ErrRestart names a discarded build attempt (spec §3.5, §4.7). The
// builder does not return it: a restart is recorded in the builder's own
// state and retried inside Build, so it never reaches a Compile caller.
var ErrRestart = errors.New("gicompile: build restart requested")
