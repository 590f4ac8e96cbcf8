// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Command dump-typelib prints the header fields (including the attribute
// count) and the directory of a compiled typelib, for inspecting the output
// of compile-repository. The attribute blobs themselves are not printed.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/GNOME/gi-compile-repository/internal/typelib"
	"github.com/GNOME/gi-compile-repository/internal/validate"
)

var (
	output   = flag.String("o", "-", "location to dump to; defaults to stdout")
	skipHash = flag.Bool("nohash", false, "omit the blake2b digest line")
	noValidate = flag.Bool("novalidate", false, "skip the structural validation pass")
)

func readString(buf []byte, off uint32) string {
	if off == 0 || int(off) >= len(buf) {
		return ""
	}
	end := off
	for end < uint32(len(buf)) && buf[end] != 0 {
		end++
	}
	return string(buf[off:end])
}

func dumpTypelib(buf []byte, out io.Writer) error {
	if !*noValidate {
		if err := validate.Validate(buf); err != nil {
			return err
		}
	}

	h := typelib.DecodeHeader(buf)

	fmt.Fprintf(out, "namespace:      %s-%s\n", readString(buf, h.Namespace), readString(buf, h.NSVersion))
	if h.SharedLibrary != 0 {
		fmt.Fprintf(out, "shared-library: %s\n", readString(buf, h.SharedLibrary))
	}
	if h.CPrefix != 0 {
		fmt.Fprintf(out, "c-prefix:       %s\n", readString(buf, h.CPrefix))
	}
	if h.Dependencies != 0 {
		fmt.Fprintf(out, "dependencies:   %s\n", readString(buf, h.Dependencies))
	}
	fmt.Fprintf(out, "size:           %d bytes\n", h.Size)
	fmt.Fprintf(out, "entries:        %d (%d local)\n", h.NEntries, h.NLocalEntries)
	fmt.Fprintf(out, "attributes:     %d\n", h.NAttributes)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "directory:")
	for i := 0; i < int(h.NEntries); i++ {
		off := int(h.Directory) + i*typelib.EntryBlobSize
		e := typelib.DecodeDirEntry(buf[off:])
		name := readString(buf, e.Name)
		if e.Local {
			fmt.Fprintf(out, "  [%4d] %-24s %-10s local  @0x%x\n", i, name, e.BlobType, e.Offset)
		} else {
			fmt.Fprintf(out, "  [%4d] %-24s %-10s xref   %s\n", i, name, e.BlobType, readString(buf, e.Offset))
		}
	}

	if !*skipHash {
		sum := blake2b.Sum256(buf)
		fmt.Fprintf(out, "\nblake2b-256:    %x\n", sum)
	}

	return nil
}

// run mirrors the teacher's hyperdump driver shape: parse, transform,
// write, with the output-selection logic isolated at the bottom.
func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *output != "-" {
		out, err = os.Create(*output)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	return dumpTypelib(buf, out)
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dump-typelib [-o FILE] [-nohash] [-novalidate] FILE.typelib")
		os.Exit(1)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
