// Package hostcall executes contract wrappers in-process. It mirrors the
// body emitted by codegen (decode, call with a cloned env, encode) so host
// tests can call contract functions by export name without compiling to wasm.
package hostcall

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"contractgen/internal/contract"
	"contractgen/sdk"
)

var (
	// ErrUnknownExport is returned by Host.Call for unregistered names.
	ErrUnknownExport = errors.New("unknown export")
	// ErrArity is returned when the argument count does not match.
	ErrArity = errors.New("argument count mismatch")
	// ErrSignature is returned when a function does not match its wrapper.
	ErrSignature = errors.New("function does not match wrapper")
	// ErrTrap is returned when a call aborts, for example on malformed input.
	ErrTrap = errors.New("contract trapped")
)

var (
	envType    = reflect.TypeFor[sdk.Env]()
	rawValType = reflect.TypeFor[sdk.RawVal]()
)

type binding struct {
	wrapper contract.Wrapper
	fn      reflect.Value
}

// Host dispatches calls by export name.
type Host struct {
	mu      sync.RWMutex
	exports map[string]binding
}

func NewHost() *Host {
	return &Host{exports: make(map[string]binding)}
}

// Bind registers fn as the original function behind w. fn must take an
// sdk.Env followed by one argument per wrapper parameter and return at most
// one value, matching w.Return.
func (h *Host) Bind(w *contract.Wrapper, fn any) error {
	v := reflect.ValueOf(fn)
	if err := checkShape(w, v); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.exports[w.ExportName]; ok {
		return fmt.Errorf("export %q already bound", w.ExportName)
	}
	h.exports[w.ExportName] = binding{wrapper: *w, fn: v}
	return nil
}

// Exports returns the bound export names in sorted order.
func (h *Host) Exports() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.exports))
	for name := range h.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the export name with raw arguments.
func (h *Host) Call(name string, env sdk.Env, args ...sdk.RawVal) (sdk.RawVal, error) {
	h.mu.RLock()
	b, ok := h.exports[name]
	h.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownExport, name)
	}
	return invoke(&b.wrapper, b.fn, env, args)
}

// Invoke runs w against fn once, without registering it.
func Invoke(w *contract.Wrapper, fn any, env sdk.Env, args ...sdk.RawVal) (sdk.RawVal, error) {
	v := reflect.ValueOf(fn)
	if err := checkShape(w, v); err != nil {
		return 0, err
	}
	return invoke(w, v, env, args)
}

func checkShape(w *contract.Wrapper, fn reflect.Value) error {
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s is bound to %s, not a func", ErrSignature, w.ExportName, fn.Type())
	}
	t := fn.Type()
	if t.IsVariadic() || t.NumIn() != len(w.Params)+1 || t.In(0) != envType {
		return fmt.Errorf("%w: %s has type %s", ErrSignature, w.ExportName, t)
	}
	wantOut := 1
	if w.Return.IsVoid() {
		wantOut = 0
	}
	if t.NumOut() != wantOut {
		return fmt.Errorf("%w: %s returns %d values, want %d", ErrSignature, w.ExportName, t.NumOut(), wantOut)
	}
	return nil
}

func invoke(w *contract.Wrapper, fn reflect.Value, env sdk.Env, args []sdk.RawVal) (res sdk.RawVal, err error) {
	if len(args) != len(w.Params) {
		return 0, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArity, w.ExportName, len(w.Params), len(args))
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrTrap, w.ExportName, r)
		}
	}()

	t := fn.Type()
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, reflect.ValueOf(env.Clone()))
	for i, raw := range args {
		in = append(in, decodeArg(env, raw, t.In(i+1), w.Params[i].Name))
	}

	out := fn.Call(in)
	if w.Return.IsVoid() {
		return sdk.Void, nil
	}
	return sdk.ToRawVal(out[0].Interface(), env), nil
}

func decodeArg(env sdk.Env, raw sdk.RawVal, t reflect.Type, name string) reflect.Value {
	if t == rawValType {
		return reflect.ValueOf(raw)
	}
	ptr := reflect.New(t)
	if err := sdk.Decode(env, raw, ptr.Interface()); err != nil {
		panic(fmt.Errorf("decode %s: %w", name, err))
	}
	return ptr.Elem()
}

// CallExport calls a generated wrapper taken from a contractExports map.
// Such wrappers already decode and encode; this only adapts the arguments.
func CallExport(export any, env sdk.Env, args ...sdk.RawVal) (res sdk.RawVal, err error) {
	v := reflect.ValueOf(export)
	if v.Kind() != reflect.Func {
		return 0, fmt.Errorf("%w: %T is not a func", ErrSignature, export)
	}
	t := v.Type()
	if t.NumIn() != len(args)+1 {
		return 0, fmt.Errorf("%w: wrapper takes %d arguments, got %d", ErrArity, t.NumIn()-1, len(args))
	}
	if t.NumOut() != 1 || t.Out(0) != rawValType {
		return 0, fmt.Errorf("%w: %s is not a wrapper", ErrSignature, t)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTrap, r)
		}
	}()

	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, reflect.ValueOf(env).Convert(t.In(0)))
	for i, raw := range args {
		in = append(in, reflect.ValueOf(raw).Convert(t.In(i+1)))
	}
	return v.Call(in)[0].Interface().(sdk.RawVal), nil
}
