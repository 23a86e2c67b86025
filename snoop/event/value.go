// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the static type of a Value.
type Kind uint8

// Value kinds, one per concrete type a traced program can load or produce.
const (
	KindInvalid Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindObject
	KindNull
	KindVoid
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindChar:    "char",
	KindShort:   "short",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindString:  "String",
	KindObject:  "Object",
	KindNull:    "null",
	KindVoid:    "void",
}

// String returns the source-level type name of k.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Integral reports whether values of kind k are stored as integers.
func (k Kind) Integral() bool {
	switch k {
	case KindBoolean, KindByte, KindChar, KindShort, KindInt, KindLong:
		return true
	default:
		return false
	}
}

// Value is a typed literal or produced value. The zero Value is invalid.
//
// Integral kinds keep their bits sign-extended in an int64, floating kinds
// keep the float64 bit pattern, so two scalar Values compare equal with ==
// whenever kind and payload match.
type Value struct {
	kind Kind
	bits uint64
	str  string
	ref  any
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	var bits uint64
	if b {
		bits = 1
	}
	return Value{kind: KindBoolean, bits: bits}
}

// Byte returns a byte value.
func Byte(v int8) Value { return Value{kind: KindByte, bits: uint64(int64(v))} }

// Char returns a UTF-16 code unit value.
func Char(v uint16) Value { return Value{kind: KindChar, bits: uint64(v)} }

// Short returns a short value.
func Short(v int16) Value { return Value{kind: KindShort, bits: uint64(int64(v))} }

// Int returns an int value.
func Int(v int32) Value { return Value{kind: KindInt, bits: uint64(int64(v))} }

// Long returns a long value.
func Long(v int64) Value { return Value{kind: KindLong, bits: uint64(v)} }

// Float returns a float value.
func Float(v float32) Value {
	return Value{kind: KindFloat, bits: math.Float64bits(float64(v))}
}

// Double returns a double value.
func Double(v float64) Value { return Value{kind: KindDouble, bits: math.Float64bits(v)} }

// String returns a string constant value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Object returns a reference value. A nil reference yields Null().
func Object(ref any) Value {
	if ref == nil {
		return Null()
	}
	return Value{kind: KindObject, ref: ref}
}

// Null returns the null reference.
func Null() Value { return Value{kind: KindNull} }

// Void returns the marker produced by a method without a result.
func Void() Value { return Value{kind: KindVoid} }

// Kind returns the static type of v.
func (v Value) Kind() Kind { return v.kind }

// Valid reports whether v was built by one of the constructors.
func (v Value) Valid() bool { return v.kind != KindInvalid }

// Bool returns the boolean payload; any non-zero integral payload is true.
func (v Value) Bool() bool { return v.kind.Integral() && v.bits != 0 }

// Int64 returns the integral payload, sign-extended. Floating kinds are
// truncated toward zero; other kinds return 0.
func (v Value) Int64() int64 {
	switch {
	case v.kind.Integral():
		return int64(v.bits)
	case v.kind == KindFloat || v.kind == KindDouble:
		return int64(math.Float64frombits(v.bits))
	default:
		return 0
	}
}

// Int32 returns the payload narrowed to 32 bits.
func (v Value) Int32() int32 {
	//nolint:gosec // G115: Narrowing mirrors the traced program's l2i.
	return int32(v.Int64())
}

// Float64 returns the floating payload. Integral kinds are converted;
// other kinds return 0.
func (v Value) Float64() float64 {
	switch {
	case v.kind == KindFloat || v.kind == KindDouble:
		return math.Float64frombits(v.bits)
	case v.kind.Integral():
		return float64(int64(v.bits))
	default:
		return 0
	}
}

// Text returns the payload of a string value, or "" for other kinds.
func (v Value) Text() string { return v.str }

// Ref returns the referenced object of an Object value, or nil.
func (v Value) Ref() any { return v.ref }

// String renders v for diagnostics, e.g. "int(3)".
func (v Value) String() string {
	switch v.kind {
	case KindBoolean:
		return "boolean(" + strconv.FormatBool(v.Bool()) + ")"
	case KindByte, KindShort, KindInt, KindLong:
		return v.kind.String() + "(" + strconv.FormatInt(v.Int64(), 10) + ")"
	case KindChar:
		return "char(" + strconv.QuoteRune(rune(v.bits)) + ")"
	case KindFloat:
		return "float(" + strconv.FormatFloat(v.Float64(), 'g', -1, 32) + ")"
	case KindDouble:
		return "double(" + strconv.FormatFloat(v.Float64(), 'g', -1, 64) + ")"
	case KindString:
		return "String(" + strconv.Quote(v.str) + ")"
	case KindObject:
		return fmt.Sprintf("Object(%T)", v.ref)
	case KindNull, KindVoid:
		return v.kind.String()
	default:
		return "invalid"
	}
}

// implicitConstants maps the operand-free constant instructions to the
// value they push.
var implicitConstants = map[Opcode]Value{
	ACONST_NULL: Null(),
	ICONST_M1:   Int(-1),
	ICONST_0:    Int(0),
	ICONST_1:    Int(1),
	ICONST_2:    Int(2),
	ICONST_3:    Int(3),
	ICONST_4:    Int(4),
	ICONST_5:    Int(5),
	LCONST_0:    Long(0),
	LCONST_1:    Long(1),
	FCONST_0:    Float(0),
	FCONST_1:    Float(1),
	FCONST_2:    Float(2),
	DCONST_0:    Double(0),
	DCONST_1:    Double(1),
}

// ImplicitConstant returns the value pushed by an operand-free constant
// instruction such as ICONST_3. It reports false for BIPUSH, SIPUSH, LDC and
// every non-constant opcode.
func ImplicitConstant(op Opcode) (Value, bool) {
	v, ok := implicitConstants[op]
	return v, ok
}
