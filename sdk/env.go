package sdk

// Env is the opaque handle to the host environment. It is the first
// parameter of every contract function.
type Env uint32

// Clone returns a handle to the same environment.
func (e Env) Clone() Env { return e }
