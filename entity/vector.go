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

package entity

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/fp16"
)

type FloatVectorField struct{ vectorColumn[float32] }

func NewFloatVectorField(name string, rows [][]float32) (*FloatVectorField, error) {
	f := &FloatVectorField{vectorColumn[float32]{name: name}}
	return f, f.addAll(rows)
}

func (f *FloatVectorField) Type() DataType { return DataTypeFloatVector }

func (f *FloatVectorField) Accept(v FieldVisitor) error { return v.VisitFloatVector(f) }

// Add appends a vector; it must be non-empty and as wide as the first row.
func (f *FloatVectorField) Add(row []float32) error { return f.add(row) }

func (f *FloatVectorField) Dim() int { return f.width() }

type Int8VectorField struct{ vectorColumn[int8] }

func NewInt8VectorField(name string, rows [][]int8) (*Int8VectorField, error) {
	f := &Int8VectorField{vectorColumn[int8]{name: name}}
	return f, f.addAll(rows)
}

func (f *Int8VectorField) Type() DataType { return DataTypeInt8Vector }

func (f *Int8VectorField) Accept(v FieldVisitor) error { return v.VisitInt8Vector(f) }

func (f *Int8VectorField) Add(row []int8) error { return f.add(row) }

func (f *Int8VectorField) Dim() int { return f.width() }

// BinaryVectorField stores bit-packed rows. Dim is in bits.
type BinaryVectorField struct{ vectorColumn[byte] }

func NewBinaryVectorField(name string, rows [][]byte) (*BinaryVectorField, error) {
	f := &BinaryVectorField{vectorColumn[byte]{name: name}}
	return f, f.addAll(rows)
}

func (f *BinaryVectorField) Type() DataType { return DataTypeBinaryVector }

func (f *BinaryVectorField) Accept(v FieldVisitor) error { return v.VisitBinaryVector(f) }

// Add appends a packed row.
func (f *BinaryVectorField) Add(row []byte) error { return f.add(row) }

// AddBools packs bits least-significant first and appends the row.
func (f *BinaryVectorField) AddBools(bits []bool) error { return f.add(PackBits(bits)) }

func (f *BinaryVectorField) Dim() int { return 8 * f.width() }

// AsBools unpacks every row into Dim booleans.
func (f *BinaryVectorField) AsBools() [][]bool {
	out := make([][]bool, len(f.rows))
	for i, row := range f.rows {
		out[i] = UnpackBits(row, 8*len(row))
	}
	return out
}

// PackBits stores element i at bit i%8 of byte i/8.
func PackBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// UnpackBits is the inverse of PackBits for the first n bits.
func UnpackBits(packed []byte, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = packed[i/8]&(1<<(i%8)) != 0
	}
	return out
}

// halfColumn stores 16-bit float rows as packed little-endian bytes.
type halfColumn struct {
	vectorColumn[byte]
	variant fp16.Variant
}

func (c *halfColumn) addBytes(row []byte) error {
	if len(row)%2 != 0 {
		return fault.Newf(fault.InvalidArgument, "field %s: %s row has odd byte length %d", c.name, c.variant, len(row))
	}
	return c.add(row)
}

func (c *halfColumn) addFloats(row []float32) error {
	if len(row) == 0 {
		return c.add(nil)
	}
	return c.add(fp16.Encode(row, c.variant))
}

func (c *halfColumn) asFloats() ([][]float32, error) {
	out := make([][]float32, len(c.rows))
	for i, row := range c.rows {
		v, err := fp16.Decode[float32](row, c.variant)
		if err != nil {
			return nil, fault.Wrapf(fault.InvalidArgument, err, "field %s row %d", c.name, i)
		}
		out[i] = v
	}
	return out, nil
}

type Float16VectorField struct{ halfColumn }

func NewFloat16VectorField(name string, rows [][]float32) (*Float16VectorField, error) {
	f := &Float16VectorField{halfColumn{vectorColumn: vectorColumn[byte]{name: name}, variant: fp16.Float16}}
	for _, row := range rows {
		if err := f.addFloats(row); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (f *Float16VectorField) Type() DataType { return DataTypeFloat16Vector }

func (f *Float16VectorField) Accept(v FieldVisitor) error { return v.VisitFloat16Vector(f) }

// Add appends a pre-packed row.
func (f *Float16VectorField) Add(row []byte) error { return f.addBytes(row) }

// AddFloat32s narrows and packs a row.
func (f *Float16VectorField) AddFloat32s(row []float32) error { return f.addFloats(row) }

func (f *Float16VectorField) AsFloat32s() ([][]float32, error) { return f.asFloats() }

func (f *Float16VectorField) Dim() int { return f.width() / 2 }

type BFloat16VectorField struct{ halfColumn }

func NewBFloat16VectorField(name string, rows [][]float32) (*BFloat16VectorField, error) {
	f := &BFloat16VectorField{halfColumn{vectorColumn: vectorColumn[byte]{name: name}, variant: fp16.BFloat16}}
	for _, row := range rows {
		if err := f.addFloats(row); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (f *BFloat16VectorField) Type() DataType { return DataTypeBFloat16Vector }

func (f *BFloat16VectorField) Accept(v FieldVisitor) error { return v.VisitBFloat16Vector(f) }

func (f *BFloat16VectorField) Add(row []byte) error { return f.addBytes(row) }

func (f *BFloat16VectorField) AddFloat32s(row []float32) error { return f.addFloats(row) }

func (f *BFloat16VectorField) AsFloat32s() ([][]float32, error) { return f.asFloats() }

func (f *BFloat16VectorField) Dim() int { return f.width() / 2 }

// SparseEmbedding maps dimension index to value.
type SparseEmbedding map[uint32]float32

// Indices returns the populated dimensions in ascending order.
func (s SparseEmbedding) Indices() []uint32 {
	idx := maps.Keys(s)
	slices.Sort(idx)
	return idx
}

// SparseFloatVectorField rows may have any number of entries.
type SparseFloatVectorField struct {
	name string
	rows []SparseEmbedding
}

func NewSparseFloatVectorField(name string, rows []SparseEmbedding) *SparseFloatVectorField {
	return &SparseFloatVectorField{name: name, rows: rows}
}

func (f *SparseFloatVectorField) Name() string { return f.name }

func (f *SparseFloatVectorField) Type() DataType { return DataTypeSparseFloatVector }

func (f *SparseFloatVectorField) Count() int { return len(f.rows) }

func (f *SparseFloatVectorField) Accept(v FieldVisitor) error { return v.VisitSparseFloatVector(f) }

func (f *SparseFloatVectorField) Add(row SparseEmbedding) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *SparseFloatVectorField) Data() []SparseEmbedding { return f.rows }

// Dim is the entry count of the widest row.
func (f *SparseFloatVectorField) Dim() int {
	dim := 0
	for _, row := range f.rows {
		if len(row) > dim {
			dim = len(row)
		}
	}
	return dim
}
