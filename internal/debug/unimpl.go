// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package debug

import (
	"fmt"
	"runtime"
	"strings"
)

// Unsupported returns an "unimplemented" error naming the calling function.
func Unsupported() error {
	pc, _, _, _ := runtime.Caller(1)
	return &errUnsupported{pc}
}

// errUnsupported is the error returned by Unsupported.
type errUnsupported struct{ pc uintptr }

func (e *errUnsupported) Error() string {
	name := runtime.FuncForPC(e.pc).Name()
	if name == "" {
		return "gicompile: unsupported operation"
	}

	slash := strings.LastIndexByte(name, '/')
	name = name[slash+1:]
	return fmt.Sprintf("gicompile: %s() is not supported", name)
}
