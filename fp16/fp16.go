// Copyright 2025 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package fp16 converts between 32/64-bit floats and the two 16-bit float
// layouts the server stores: IEEE-754 binary16 (1-5-10) and bfloat16 (1-8-7).
// Packed vectors are always little-endian, two bytes per element.
package fp16

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/vearch/vdbclient/fault"
)

// Variant selects the 16-bit layout.
type Variant int

const (
	Float16 Variant = iota
	BFloat16
)

func (v Variant) String() string {
	switch v {
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

const (
	signMask uint16 = 0x8000
	expMask  uint16 = 0x7C00
	fracMask uint16 = 0x03FF

	f32ExpMask  uint32 = 0x7F800000
	f32FracMask uint32 = 0x007FFFFF

	f64FracBits        = 52
	f64ExpMask  uint64 = 0x7FF
	f64Bias            = 1023
)

// Float16ToFloat32 widens a binary16 bit pattern.
func Float16ToFloat32(h uint16) float32 {
	sign := uint32(h&signMask) << 16
	exp := uint32(h&expMask) >> 10
	frac := uint32(h & fracMask)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		// subnormal
		e := int32(-14)
		m := frac
		for m&0x0400 == 0 {
			m <<= 1
			e--
		}
		m &= 0x03FF
		return math.Float32frombits(sign | uint32(127+e)<<23 | m<<13)
	case 0x1F:
		return math.Float32frombits(sign | f32ExpMask | frac<<13)
	default:
		return math.Float32frombits(sign | uint32(int32(exp)-15+127)<<23 | frac<<13)
	}
}

// Float32ToFloat16 narrows f to binary16, rounding to nearest even.
func Float32ToFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & signMask
	exp := int32((bits & f32ExpMask) >> 23)
	frac := bits & f32FracMask

	if exp == 0xFF {
		if frac == 0 {
			return sign | expMask
		}
		payload := uint16(frac >> 13)
		if payload == 0 {
			payload = 1
		}
		return sign | expMask | ((payload | 0x0200) & fracMask)
	}
	if exp == 0 {
		return sign
	}

	e16 := exp - 127 + 15
	if e16 >= 0x1F {
		return sign | expMask
	}
	if e16 <= 0 {
		if e16 < -10 {
			return sign
		}
		mant := frac | 0x00800000
		shift := uint32(1-e16) + 13
		m := mant >> shift
		rem := mant & (uint32(1)<<shift - 1)
		half := uint32(1) << (shift - 1)
		if rem > half || (rem == half && m&1 == 1) {
			m++
		}
		return sign | uint16(m)
	}

	m := frac >> 13
	rem := frac & 0x1FFF
	if rem > 0x1000 || (rem == 0x1000 && m&1 == 1) {
		m++
		if m == 0x0400 {
			m = 0
			e16++
			if e16 >= 0x1F {
				return sign | expMask
			}
		}
	}
	return sign | uint16(uint32(e16)<<10) | uint16(m)
}

// BFloat16ToFloat32 widens a bfloat16 bit pattern. The conversion is exact.
func BFloat16ToFloat32(b uint16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// Float32ToBFloat16 narrows f to bfloat16, rounding to nearest even.
func Float32ToBFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	if bits&f32ExpMask == f32ExpMask && bits&f32FracMask != 0 {
		// keep NaN quiet so truncation can't turn it into infinity
		return uint16(bits>>16) | 0x0040
	}
	return uint16((bits + 0x7FFF + (bits>>16)&1) >> 16)
}

// narrow64 rounds f to nearest even in a 16-bit layout with fracBits
// mantissa bits and 15-fracBits exponent bits.
func narrow64(f float64, fracBits uint) uint16 {
	bits := math.Float64bits(f)
	expBits := 15 - fracBits
	bias := int64(1)<<(expBits-1) - 1
	maxExp := int64(1)<<expBits - 1
	infBits := uint16(maxExp) << fracBits
	drop := f64FracBits - fracBits

	sign := uint16(bits>>48) & signMask
	exp := int64((bits >> f64FracBits) & f64ExpMask)
	frac := bits & (uint64(1)<<f64FracBits - 1)

	if exp == int64(f64ExpMask) {
		if frac == 0 {
			return sign | infBits
		}
		return sign | infBits | uint16(frac>>drop) | uint16(1)<<(fracBits-1)
	}
	if exp == 0 {
		return sign
	}
	e := exp - f64Bias + bias
	if e >= maxExp {
		return sign | infBits
	}
	shift := drop
	if e <= 0 {
		if e < -int64(fracBits) {
			return sign
		}
		frac |= uint64(1) << f64FracBits
		shift += uint(1 - e)
		e = 0
	}
	m := frac >> shift
	rem := frac & (uint64(1)<<shift - 1)
	half := uint64(1) << (shift - 1)
	if rem > half || (rem == half && m&1 == 1) {
		m++
	}
	// a mantissa carry moves into the exponent field
	out := uint64(e)<<fracBits + m
	if out >= uint64(infBits) {
		return sign | infBits
	}
	return sign | uint16(out)
}

// Float64ToFloat16 narrows f to binary16 with a single rounding step.
func Float64ToFloat16(f float64) uint16 {
	return narrow64(f, 10)
}

// Float64ToBFloat16 narrows f to bfloat16 with a single rounding step.
func Float64ToBFloat16(f float64) uint16 {
	return narrow64(f, 7)
}

// ToBits narrows f to the given layout.
func ToBits(f float32, v Variant) uint16 {
	if v == BFloat16 {
		return Float32ToBFloat16(f)
	}
	return Float32ToFloat16(f)
}

// FromBits widens a bit pattern of the given layout.
func FromBits(h uint16, v Variant) float32 {
	if v == BFloat16 {
		return BFloat16ToFloat32(h)
	}
	return Float16ToFloat32(h)
}

// Encode packs values as 16-bit floats, two little-endian bytes each.
// float64 input is rounded once, not through float32.
func Encode[T constraints.Float](values []T, v Variant) []byte {
	narrow := Float64ToFloat16
	if v == BFloat16 {
		narrow = Float64ToBFloat16
	}
	out := make([]byte, 2*len(values))
	for i, f := range values {
		binary.LittleEndian.PutUint16(out[2*i:], narrow(float64(f)))
	}
	return out
}

// Decode unpacks a little-endian 16-bit float vector. The input length must be even.
func Decode[T constraints.Float](data []byte, v Variant) ([]T, error) {
	if len(data)%2 != 0 {
		return nil, fault.Newf(fault.InvalidArgument, "fp16: %s byte length %d is not a multiple of 2", v, len(data))
	}
	out := make([]T, len(data)/2)
	for i := range out {
		out[i] = T(FromBits(binary.LittleEndian.Uint16(data[2*i:]), v))
	}
	return out, nil
}

// EncodeBits packs raw bit patterns without conversion.
func EncodeBits(bits []uint16) []byte {
	out := make([]byte, 2*len(bits))
	for i, b := range bits {
		binary.LittleEndian.PutUint16(out[2*i:], b)
	}
	return out
}

// DecodeBits unpacks raw bit patterns without conversion.
func DecodeBits(data []byte) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, fault.Newf(fault.InvalidArgument, "fp16: byte length %d is not a multiple of 2", len(data))
	}
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return out, nil
}
