// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Command compile-repository turns a GIR XML description of a
// shared-library API into a binary typelib (spec §6.3).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/google/uuid"
	"golang.org/x/term"

	gicompile "github.com/GNOME/gi-compile-repository"
	"github.com/GNOME/gi-compile-repository/internal/debug"
	"github.com/GNOME/gi-compile-repository/internal/gierr"
	"github.com/GNOME/gi-compile-repository/internal/girparser"
)

// version is the driver's own semantic version, printed by --version
// (spec §4 "Supplemented features", modeled on compiler.c's banner).
const version = "0.1.0"

type includeDirs []string

func (d *includeDirs) String() string { return strings.Join(*d, ",") }
func (d *includeDirs) Set(v string) error {
	*d = append(*d, v)
	return nil
}

type sharedLibs []string

func (l *sharedLibs) String() string { return strings.Join(*l, ",") }
func (l *sharedLibs) Set(v string) error {
	*l = append(*l, v)
	return nil
}

var (
	output   = flag.String("o", "-", "output file; '-' means standard output")
	debugF   = flag.Bool("debug", false, "enable internal diagnostic logging")
	verbose  = flag.Bool("verbose", false, "print the effective invocation before compiling")
	showVers = flag.Bool("version", false, "print the version and exit")

	includes includeDirs
	libs     sharedLibs
)

func init() {
	flag.Var(&includes, "includedir", "add DIR to the search path for <include>d GIR files (repeatable)")
	flag.Var(&libs, "l", "shared library name backing this namespace (repeatable)")
	flag.Var(&libs, "shared-library", "alias for -l")
	flag.StringVar(output, "output", "-", "alias for -o")
}

// effectiveInvocation renders the resolved flags as a shell-quoted,
// copy-pasteable command line for --verbose (spec §2 DOMAIN STACK,
// shellescape entry).
func effectiveInvocation(input string) string {
	args := []string{"compile-repository"}
	for _, d := range includes {
		args = append(args, "--includedir", d)
	}
	for _, l := range libs {
		args = append(args, "-l", l)
	}
	args = append(args, "-o", *output, input)
	return shellescape.QuoteCommand(args)
}

func run(input string) error {
	if *debugF {
		debug.SetEnabled(true)
	}

	if *verbose {
		fmt.Fprintln(os.Stderr, "running:", effectiveInvocation(input))
	}

	m, err := girparser.ParseFile(input, girparser.Options{IncludeDirs: includes})
	if err != nil {
		return err
	}

	if len(libs) > 0 {
		m.SharedLibrary = strings.Join(libs, ",")
	}

	tl, err := gicompile.Compile(m)
	if err != nil {
		return err
	}

	if *output == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("compile-repository: refusing to write binary typelib to a terminal; redirect stdout or pass -o")
		}
		_, err := os.Stdout.Write(tl.Bytes())
		return err
	}

	return writeAtomic(*output, tl.Bytes())
}

// writeAtomic writes data to a "path.tmp-<uuid>" scratch file, syncs it, and
// renames it over path (spec §6.3: "the tool writes FILE.tmp then renames
// atomically over FILE"). The uuid suffix (spec §2 DOMAIN STACK, uuid entry)
// keeps two concurrent invocations targeting the same path from colliding
// on the scratch name.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := path + ".tmp-" + uuid.NewString()

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &gierr.IOError{Path: tmp, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return &gierr.IOError{Path: tmp, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return &gierr.IOError{Path: tmp, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &gierr.IOError{Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &gierr.IOError{Path: filepath.Join(dir, filepath.Base(path)), Err: err}
	}
	return nil
}

func main() {
	flag.Parse()

	if *showVers {
		fmt.Println("gi-compile-repository", version)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: compile-repository [--includedir DIR]* [-o FILE] [-l LIB]* [--debug] [--verbose] [--version] INPUT.gir")
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "compile-repository:", err)
		os.Exit(1)
	}
}
