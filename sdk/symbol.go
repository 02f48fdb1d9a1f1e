package sdk

import (
	"fmt"
)

// MaxSymbolLen is the longest symbol that fits into a RawVal body.
const MaxSymbolLen = 10

// Symbol is a short identifier of up to MaxSymbolLen characters from
// [_0-9A-Za-z], packed six bits per character.
type Symbol string

// Validate reports whether s can be encoded.
func (s Symbol) Validate() error {
	if len(s) > MaxSymbolLen {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidSymbol, string(s), MaxSymbolLen)
	}
	for i := 0; i < len(s); i++ {
		if symbolCode(s[i]) == 0 {
			return fmt.Errorf("%w: %q has invalid character %q", ErrInvalidSymbol, string(s), s[i])
		}
	}
	return nil
}

func symbolCode(c byte) uint64 {
	switch {
	case c == '_':
		return 1
	case c >= '0' && c <= '9':
		return uint64(c-'0') + 2
	case c >= 'A' && c <= 'Z':
		return uint64(c-'A') + 12
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 38
	}
	return 0
}

func symbolChar(code uint64) (byte, bool) {
	switch {
	case code == 1:
		return '_', true
	case code >= 2 && code <= 11:
		return byte(code-2) + '0', true
	case code >= 12 && code <= 37:
		return byte(code-12) + 'A', true
	case code >= 38 && code <= 63:
		return byte(code-38) + 'a', true
	}
	return 0, false
}

func (s Symbol) body() (uint64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	var body uint64
	for i := 0; i < len(s); i++ {
		body = body<<6 | symbolCode(s[i])
	}
	return body, nil
}

func symbolFromBody(body uint64) (Symbol, error) {
	var buf [MaxSymbolLen]byte
	n := MaxSymbolLen
	for body != 0 {
		if n == 0 {
			return "", fmt.Errorf("%w: body has more than %d characters", ErrInvalidSymbol, MaxSymbolLen)
		}
		c, ok := symbolChar(body & 0x3f)
		if !ok {
			return "", fmt.Errorf("%w: invalid character code %d", ErrInvalidSymbol, body&0x3f)
		}
		n--
		buf[n] = c
		body >>= 6
	}
	return Symbol(buf[n:]), nil
}

// FromSymbol encodes s as a symbol RawVal.
func FromSymbol(s Symbol) (RawVal, error) {
	body, err := s.body()
	if err != nil {
		return 0, err
	}
	return FromTagged(TagSymbol, body), nil
}
