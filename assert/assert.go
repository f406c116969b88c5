//go:build !release

package assert

import (
	"github.com/bloeys/nscene/logging"
)

// Enabled is true in debug builds. Build with '-tags release' to compile asserts away.
const Enabled = true

func T(check bool, msg string, args ...any) {
	if !check {
		logging.ErrLog.Panicf("Assert failed: "+msg, args...)
	}
}
