// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

// Package debug includes diagnostic helpers used by the compiler core: a
// node-context-aware logger, an internal-invariant assertion, and a
// debug-only value container.
package debug

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/timandy/routine"
)

// Enabled gates [Log]'s output. It defaults to on when GI_COMPILER_DEBUG is
// set in the environment, and can be flipped at runtime by the --debug CLI
// flag (spec §6.3) via SetEnabled.
var Enabled = os.Getenv("GI_COMPILER_DEBUG") != ""

// SetEnabled overrides Enabled, used by the CLI driver's --debug flag.
func SetEnabled(v bool) { Enabled = v }

var (
	debugPattern *regexp.Regexp
	nocapture    = flag.Bool("gicompile.nocapture", false, "disables capturing debug logs as test logs")
)

func init() {
	flag.Func("gicompile.filter", "regexp to filter debug logs by", func(s string) (err error) {
		debugPattern, err = regexp.Compile(s)
		return err
	})
}

// Log prints debugging information to stderr when Enabled is true.
//
// context is optional args for fmt.Printf that are printed before
// operation, used to identify the node or build attempt a log line belongs
// to.
func Log(context []any, operation string, format string, args ...any) {
	if !Enabled {
		return
	}

	skip := 1
again:
	pc, file, line, _ := runtime.Caller(skip)

	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	name = name[strings.LastIndex(name, ".")+1:]
	if strings.HasPrefix(name, "log") || strings.Contains(name, "Log") {
		skip++
		goto again
	}

	pkg := fn.Name()
	pkg = strings.TrimPrefix(pkg, "github.com/GNOME/gi-compile-repository/")
	pkg = strings.TrimPrefix(pkg, "internal/")
	if i := strings.Index(pkg, "."); i >= 0 {
		pkg = pkg[:i]
	}

	file = filepath.Base(file)

	buf := new(strings.Builder)

	_, _ = fmt.Fprintf(buf, "%s/%s:%d [g%04d", pkg, file, line, routine.Goid())
	if len(context) >= 1 {
		_, _ = fmt.Fprintf(buf, ", "+context[0].(string), context[1:]...)
	}
	_, _ = fmt.Fprintf(buf, "] %s: ", operation)
	_, _ = fmt.Fprintf(buf, format, args...)

	_, _ = buf.Write([]byte{'\n'})
	_, _ = os.Stderr.WriteString(buf.String())
	_ = os.Stderr.Sync()
}

// Assert panics if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("gicompile: internal assertion failed: "+format, args...))
	}
}

// Value is a value of any type that is only meaningfully populated when
// Enabled is true; callers that populate it unconditionally still pay only
// the Get() indirection cost when disabled.
type Value[T any] struct {
	x T
}

// Get returns a pointer to this value.
func (v *Value[T]) Get() *T { return &v.x }
