//go:build !release

// Package assert holds structural checks that are compiled into development builds only.
// Building with the `release` tag turns every check into a no-op.
package assert

import "fmt"

// Enabled reports whether checks are compiled in.
const Enabled = true

func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
