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

// Package entity holds the typed data model of the client: columnar field
// containers, schemas, index and segment descriptors, ids and results.
package entity

import (
	"github.com/vearch/vdbclient/fault"
)

// Field is one named, homogeneously typed column of an insert, upsert or
// query result. Every row added to a field shares the field's type.
type Field interface {
	Name() string
	Type() DataType
	Count() int
	Accept(v FieldVisitor) error
}

// FieldVisitor has one method per concrete field container. Code that must
// handle every kind of field implements it; adding a container breaks every
// implementation until the new method is written.
type FieldVisitor interface {
	VisitBool(f *BoolField) error
	VisitInt8(f *Int8Field) error
	VisitInt16(f *Int16Field) error
	VisitInt32(f *Int32Field) error
	VisitInt64(f *Int64Field) error
	VisitFloat(f *FloatField) error
	VisitDouble(f *DoubleField) error
	VisitVarChar(f *VarCharField) error
	VisitJSON(f *JSONField) error
	VisitArray(f ArrayColumn) error
	VisitFloatVector(f *FloatVectorField) error
	VisitBinaryVector(f *BinaryVectorField) error
	VisitFloat16Vector(f *Float16VectorField) error
	VisitBFloat16Vector(f *BFloat16VectorField) error
	VisitInt8Vector(f *Int8VectorField) error
	VisitSparseFloatVector(f *SparseFloatVectorField) error
	VisitStructArray(f *StructArrayField) error
}

// Nullable is implemented by scalar fields that may carry null rows.
type Nullable interface {
	Nullable() bool
	ValidData() []bool
}

// scalarColumn is the storage shared by scalar fields. valid stays nil until
// the first null row is added or valid data is set explicitly.
type scalarColumn[T any] struct {
	name  string
	data  []T
	valid []bool
}

func (c *scalarColumn[T]) Name() string { return c.name }

func (c *scalarColumn[T]) Count() int { return len(c.data) }

// Data returns the backing rows. Null rows hold the zero value.
func (c *scalarColumn[T]) Data() []T { return c.data }

// Add appends a row. Scalar rows carry no shape constraint.
func (c *scalarColumn[T]) Add(v T) error {
	c.data = append(c.data, v)
	if c.valid != nil {
		c.valid = append(c.valid, true)
	}
	return nil
}

// AddNull appends a null row, making the field nullable.
func (c *scalarColumn[T]) AddNull() {
	if c.valid == nil {
		c.valid = make([]bool, len(c.data), len(c.data)+1)
		for i := range c.valid {
			c.valid[i] = true
		}
	}
	var zero T
	c.data = append(c.data, zero)
	c.valid = append(c.valid, false)
}

func (c *scalarColumn[T]) Nullable() bool { return c.valid != nil }

func (c *scalarColumn[T]) ValidData() []bool { return c.valid }

// SetValidData marks rows as null or present. The mask must cover every row.
func (c *scalarColumn[T]) SetValidData(valid []bool) error {
	if valid != nil && len(valid) != len(c.data) {
		return fault.Newf(fault.InvalidArgument, "field %s: valid data length %d does not match row count %d", c.name, len(valid), len(c.data))
	}
	c.valid = valid
	return nil
}

// IsNull reports whether row i is null.
func (c *scalarColumn[T]) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}

// vectorColumn stores dense rows; all rows must share the first row's width.
type vectorColumn[T any] struct {
	name string
	rows [][]T
}

func (c *vectorColumn[T]) Name() string { return c.name }

func (c *vectorColumn[T]) Count() int { return len(c.rows) }

// Data returns the backing rows.
func (c *vectorColumn[T]) Data() [][]T { return c.rows }

func (c *vectorColumn[T]) add(row []T) error {
	if len(row) == 0 {
		return fault.Newf(fault.VectorIsEmpty, "field %s: vector is empty", c.name)
	}
	if len(c.rows) > 0 && len(c.rows[0]) != len(row) {
		return fault.Newf(fault.DimensionNotEqual, "field %s: vector width %d does not match %d", c.name, len(row), len(c.rows[0]))
	}
	c.rows = append(c.rows, row)
	return nil
}

func (c *vectorColumn[T]) addAll(rows [][]T) error {
	for _, row := range rows {
		if err := c.add(row); err != nil {
			return err
		}
	}
	return nil
}

// width is the element count of the first row, or 0 when empty.
func (c *vectorColumn[T]) width() int {
	if len(c.rows) == 0 {
		return 0
	}
	return len(c.rows[0])
}
