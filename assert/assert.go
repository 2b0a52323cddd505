package assert

import "github.com/oomph-ac/locomotion/oerror"

// IsTrue panics with a LocomotionError when ok is false. It is reserved for states the
// simulation can never reach through valid input.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
