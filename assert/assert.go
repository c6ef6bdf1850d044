package assert

import (
	"fmt"

	"github.com/bloeys/ndefer/logging"
)

// T panics with the formatted message when check is false.
// Use it for programmer errors only, runtime failures must be returned as errors.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	formatted := fmt.Sprintf(msg, args...)
	logging.Logger().Error("assert failed", "msg", formatted)
	panic("Assert failed: " + formatted)
}
