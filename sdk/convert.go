package sdk

import (
	"fmt"
	"math"
	"reflect"
)

// RawValDecoder is implemented by types that decode themselves from a RawVal.
type RawValDecoder interface {
	DecodeRawVal(env Env, raw RawVal) error
}

// RawValEncoder is implemented by types that encode themselves as a RawVal.
type RawValEncoder interface {
	EncodeRawVal(env Env) (RawVal, error)
}

var rawValType = reflect.TypeFor[RawVal]()

// FromRawVal decodes raw into a T.
func FromRawVal[T any](env Env, raw RawVal) (T, error) {
	var v T
	err := Decode(env, raw, &v)
	return v, err
}

// MustFromRawVal is like FromRawVal but panics on failure. Generated
// wrappers use it: malformed input at the ABI edge is a contract violation.
func MustFromRawVal[T any](env Env, raw RawVal) T {
	v, err := FromRawVal[T](env, raw)
	if err != nil {
		panic(fmt.Errorf("sdk: decode %s into %T: %w", raw, v, err))
	}
	return v
}

// ToRawVal encodes v. It panics when T has no conversion.
func ToRawVal[T any](v T, env Env) RawVal {
	raw, err := Encode(v, env)
	if err != nil {
		panic(fmt.Errorf("sdk: encode %T: %w", v, err))
	}
	return raw
}

// Decode stores the value of raw in the value pointed to by dst.
func Decode(env Env, raw RawVal, dst any) error {
	if d, ok := dst.(RawValDecoder); ok {
		return d.DecodeRawVal(env, raw)
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: decode target %T is not a non-nil pointer", ErrUnsupportedType, dst)
	}
	return decodeValue(raw, rv.Elem())
}

func decodeValue(raw RawVal, v reflect.Value) error {
	if v.Type() == rawValType {
		v.SetUint(uint64(raw))
		return nil
	}

	switch v.Kind() {
	case reflect.Uint32:
		if !raw.Is(TagU32) {
			return tagMismatch(raw, TagU32)
		}
		if raw.Body() > math.MaxUint32 {
			return fmt.Errorf("%w: u32 body %d", ErrOutOfRange, raw.Body())
		}
		v.SetUint(raw.Body())
	case reflect.Int32:
		if !raw.Is(TagI32) {
			return tagMismatch(raw, TagI32)
		}
		if raw.Body() > math.MaxUint32 {
			return fmt.Errorf("%w: i32 body %d", ErrOutOfRange, raw.Body())
		}
		v.SetInt(int64(int32(uint32(raw.Body()))))
	case reflect.Bool:
		if !raw.Is(TagStatic) {
			return tagMismatch(raw, TagStatic)
		}
		switch raw.Body() {
		case staticTrue:
			v.SetBool(true)
		case staticFalse:
			v.SetBool(false)
		default:
			return fmt.Errorf("%w: static %d is not a bool", ErrTagMismatch, raw.Body())
		}
	case reflect.Uint64:
		if !raw.IsU63() {
			return fmt.Errorf("%w: %s is not u63", ErrTagMismatch, raw)
		}
		v.SetUint(raw.U63())
	case reflect.Int64:
		if !raw.IsU63() {
			return fmt.Errorf("%w: %s is not u63", ErrTagMismatch, raw)
		}
		v.SetInt(int64(raw.U63()))
	case reflect.String:
		if !raw.Is(TagSymbol) {
			return tagMismatch(raw, TagSymbol)
		}
		s, err := symbolFromBody(raw.Body())
		if err != nil {
			return err
		}
		v.SetString(string(s))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	return nil
}

// Encode converts v into a RawVal. Integer, bool and string kinds are
// supported, including named types over them; strings are encoded as
// symbols.
func Encode(v any, env Env) (RawVal, error) {
	if e, ok := v.(RawValEncoder); ok {
		return e.EncodeRawVal(env)
	}
	if raw, ok := v.(RawVal); ok {
		return raw, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint32:
		return FromU32(uint32(rv.Uint())), nil
	case reflect.Int32:
		return FromI32(int32(rv.Int())), nil
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.Uint64:
		return FromU63(rv.Uint())
	case reflect.Int64:
		if rv.Int() < 0 {
			return 0, fmt.Errorf("%w: negative %d", ErrOutOfRange, rv.Int())
		}
		return FromU63(uint64(rv.Int()))
	case reflect.String:
		return FromSymbol(Symbol(rv.String()))
	}
	return 0, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func tagMismatch(raw RawVal, want Tag) error {
	if raw.IsU63() {
		return fmt.Errorf("%w: want %s, got u63", ErrTagMismatch, want)
	}
	return fmt.Errorf("%w: want %s, got %s", ErrTagMismatch, want, raw.Tag())
}
