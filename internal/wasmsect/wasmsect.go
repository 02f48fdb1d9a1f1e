// Package wasmsect reads and rewrites custom sections of a WebAssembly
// binary. Sections other than the ones being changed are copied verbatim.
package wasmsect

import (
	"bytes"
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrNotWasm is returned when the input lacks the wasm magic and version.
var ErrNotWasm = errors.New("not a wasm binary")

// ErrMalformed is returned for section headers that run past the input.
var ErrMalformed = errors.New("malformed wasm section")

const customSectionID = 0

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// Section is one top-level section of a module.
type Section struct {
	ID byte
	// Name is set for custom sections only.
	Name string
	// Payload is the section content; for custom sections it excludes the name.
	Payload []byte
	// Offset is the position of the section id byte in the binary.
	Offset int
	// raw is the full section including id and size.
	raw []byte
}

// Parse splits bin into its sections.
func Parse(bin []byte) ([]Section, error) {
	if len(bin) < len(header) || !bytes.Equal(bin[:len(header)], header) {
		return nil, ErrNotWasm
	}

	var sections []Section
	pos := len(header)
	for pos < len(bin) {
		start := pos
		id := bin[pos]
		pos++
		size, n, err := readULEB128(bin[pos:])
		if err != nil {
			return nil, fmt.Errorf("%w: size of section %d at %d: %w", ErrMalformed, id, start, err)
		}
		pos += n
		end := pos + int(size)
		if end > len(bin) {
			return nil, fmt.Errorf("%w: section %d at %d ends past the input", ErrMalformed, id, start)
		}

		s := Section{ID: id, Payload: bin[pos:end], Offset: start, raw: bin[start:end]}
		if id == customSectionID {
			nameLen, m, err := readULEB128(s.Payload)
			if err != nil || m+int(nameLen) > len(s.Payload) {
				return nil, fmt.Errorf("%w: custom section name at %d", ErrMalformed, start)
			}
			s.Name = string(s.Payload[m : m+int(nameLen)])
			s.Payload = s.Payload[m+int(nameLen):]
		}
		sections = append(sections, s)
		pos = end
	}
	return sections, nil
}

// Custom returns the payloads of every custom section called name, in order.
func Custom(bin []byte, name string) ([][]byte, error) {
	sections, err := Parse(bin)
	if err != nil {
		return nil, err
	}
	var out [][]byte
	for _, s := range sections {
		if s.ID == customSectionID && s.Name == name {
			out = append(out, s.Payload)
		}
	}
	return out, nil
}

// Strip returns a copy of bin without custom sections called name.
func Strip(bin []byte, name string) ([]byte, error) {
	sections, err := Parse(bin)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(bin))
	out = append(out, header...)
	for _, s := range sections {
		if s.ID == customSectionID && s.Name == name {
			continue
		}
		out = append(out, s.raw...)
	}
	return out, nil
}

// EncodeCustom encodes a complete custom section.
func EncodeCustom(name string, payload []byte) ([]byte, error) {
	nameLen, err := safecast.Conv[uint32](len(name))
	if err != nil {
		return nil, fmt.Errorf("section name: %w", err)
	}
	body := appendULEB128(nil, nameLen)
	body = append(body, name...)
	body = append(body, payload...)

	size, err := safecast.Conv[uint32](len(body))
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", name, err)
	}
	out := append([]byte{customSectionID}, appendULEB128(nil, size)...)
	return append(out, body...), nil
}

// Replace removes every custom section called name and appends one new
// section per payload, in order.
func Replace(bin []byte, name string, payloads [][]byte) ([]byte, error) {
	out, err := Strip(bin, name)
	if err != nil {
		return nil, err
	}
	for _, p := range payloads {
		sec, err := EncodeCustom(name, p)
		if err != nil {
			return nil, err
		}
		out = append(out, sec...)
	}
	return out, nil
}
