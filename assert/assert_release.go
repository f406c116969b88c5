//go:build release

package assert

const Enabled = false

func T(check bool, msg string, args ...any) {
}
