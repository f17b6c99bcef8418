//go:build assert

// The assert package provides assertions that are only compiled in when the
// 'assert' build tag is set. Use them for programming errors that should
// halt instrumented builds, never for user-facing errors.
package assert

import "fmt"

// T panics with the formatted message if check is false
func T(check bool, msgFmt string, args ...any) {

	if check {
		return
	}

	panic(fmt.Sprintf("assert failed: "+msgFmt, args...))
}
