package sdk

import "fmt"

// RawVal is the uniform value passed across the contract boundary.
//
// Bit 0 set marks a 63-bit unsigned payload in bits 1..63. Otherwise bits
// 1..3 hold a Tag and bits 4..63 the body.
type RawVal uint64

// Tag identifies the body layout of a non-U63 RawVal.
type Tag uint8

const (
	TagU32 Tag = iota
	TagI32
	TagStatic
	TagObject
	TagSymbol
	TagBitSet
	TagStatus
	tagReserved
)

var tagNames = [...]string{"u32", "i32", "static", "object", "symbol", "bitset", "status", "reserved"}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

const (
	staticVoid  uint64 = 0
	staticTrue  uint64 = 1
	staticFalse uint64 = 2
)

const (
	tagShift  = 1
	bodyShift = 4
	tagMask   = 0x7
	// MaxU63 is the largest value a U63 RawVal can carry.
	MaxU63 = 1<<63 - 1
	// MaxBody is the largest body of a tagged RawVal.
	MaxBody = 1<<60 - 1
)

// Void is returned by wrappers of functions without a result.
var Void = FromTagged(TagStatic, staticVoid)

var (
	True  = FromTagged(TagStatic, staticTrue)
	False = FromTagged(TagStatic, staticFalse)
)

// FromTagged assembles a RawVal from a tag and a body; body bits above 60
// are dropped.
func FromTagged(tag Tag, body uint64) RawVal {
	return RawVal(body<<bodyShift | uint64(tag&tagMask)<<tagShift)
}

// FromU63 wraps v, which must not exceed MaxU63.
func FromU63(v uint64) (RawVal, error) {
	if v > MaxU63 {
		return 0, fmt.Errorf("%w: %d does not fit in 63 bits", ErrOutOfRange, v)
	}
	return RawVal(v<<1 | 1), nil
}

func FromU32(v uint32) RawVal { return FromTagged(TagU32, uint64(v)) }

func FromI32(v int32) RawVal { return FromTagged(TagI32, uint64(uint32(v))) }

func FromBool(v bool) RawVal {
	if v {
		return True
	}
	return False
}

// IsU63 reports whether v carries a 63-bit payload.
func (v RawVal) IsU63() bool { return v&1 == 1 }

// Tag returns the tag of v; it is meaningless when IsU63 is true.
func (v RawVal) Tag() Tag { return Tag(uint64(v) >> tagShift & tagMask) }

// Body returns the tagged body of v.
func (v RawVal) Body() uint64 { return uint64(v) >> bodyShift }

// U63 returns the payload of a U63 value.
func (v RawVal) U63() uint64 { return uint64(v) >> 1 }

func (v RawVal) Is(tag Tag) bool { return !v.IsU63() && v.Tag() == tag }

// IsVoid reports whether v is the void static.
func (v RawVal) IsVoid() bool { return v == Void }

func (v RawVal) String() string {
	if v.IsU63() {
		return fmt.Sprintf("u63(%d)", v.U63())
	}
	switch v.Tag() {
	case TagStatic:
		switch v.Body() {
		case staticVoid:
			return "void"
		case staticTrue:
			return "true"
		case staticFalse:
			return "false"
		}
	case TagI32:
		return fmt.Sprintf("i32(%d)", int32(uint32(v.Body())))
	case TagSymbol:
		if s, err := symbolFromBody(v.Body()); err == nil {
			return fmt.Sprintf("symbol(%s)", s)
		}
	}
	return fmt.Sprintf("%s(%d)", v.Tag(), v.Body())
}
