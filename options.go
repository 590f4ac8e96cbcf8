// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package gicompile

// config holds every [CompileOption]-settable knob for one [Compile] call.
type config struct {
	directoryIndex bool
	validate       bool
	includeDirs    []string
}

func newConfig() *config {
	return &config{directoryIndex: true, validate: true}
}

// CompileOption is a configuration setting for [Compile]. Using a struct
// wrapping an unexported closure, rather than a bare function type, keeps
// the option surface extensible without breaking existing call sites.
type CompileOption struct{ apply func(*config) }

// WithDirectoryIndex controls whether a minimal perfect hash directory
// index (spec §4.9) is attempted. It is on by default; construction
// failure silently omits the section regardless of this setting.
func WithDirectoryIndex(enabled bool) CompileOption {
	return CompileOption{func(c *config) { c.directoryIndex = enabled }}
}

// WithValidate controls whether the emitted buffer is passed through the
// structural validator (spec §4.10) before [Compile] returns. It is on by
// default; disabling it is only useful for inspecting deliberately
// malformed output in tests.
func WithValidate(enabled bool) CompileOption {
	return CompileOption{func(c *config) { c.validate = enabled }}
}

// WithIncludeDirs records directories for `<include>`d GIR files. [Compile]
// receives an already-parsed module and does not read this setting;
// include resolution is done by the GIR parser's own options.
func WithIncludeDirs(dirs ...string) CompileOption {
	return CompileOption{func(c *config) { c.includeDirs = append(c.includeDirs, dirs...) }}
}
