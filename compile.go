// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package gicompile

import (
	"github.com/GNOME/gi-compile-repository/internal/builder"
	"github.com/GNOME/gi-compile-repository/internal/ir"
	"github.com/GNOME/gi-compile-repository/internal/validate"
)

// Compile builds m into a typelib, per spec §4. The include graph, aliases,
// and disguised-structure tables referenced during emission must already be
// attached to m (see internal/girparser for the GIR-to-Module front end);
// Compile only runs the binary emission back end.
func Compile(m *ir.Module, opts ...CompileOption) (*Typelib, error) {
	cfg := newConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	buf, err := builder.Build(m, builder.Options{DirectoryIndex: cfg.directoryIndex})
	if err != nil {
		return nil, err
	}

	if cfg.validate {
		if err := validate.Validate(buf); err != nil {
			return nil, err
		}
	}

	return &Typelib{bytes: buf}, nil
}
