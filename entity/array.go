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
	"fmt"

	"github.com/vearch/vdbclient/fault"
)

// ArrayElement lists the element types an array field can hold.
type ArrayElement interface {
	bool | int8 | int16 | int32 | int64 | float32 | float64 | string
}

// ArrayColumn is the type-erased view of an ArrayField.
type ArrayColumn interface {
	Field
	ElementType() DataType
	// RowField returns row i as a scalar field of the element type.
	RowField(i int) Field
}

// ArrayField holds one variable-length array per row.
type ArrayField[T ArrayElement] struct {
	name     string
	elemType DataType
	rows     [][]T
}

// NewArrayField creates an array column. The element type follows T; string
// arrays are typed VarChar.
func NewArrayField[T ArrayElement](name string, rows [][]T) *ArrayField[T] {
	return &ArrayField[T]{name: name, elemType: elementTypeOf[T](), rows: rows}
}

func elementTypeOf[T ArrayElement]() DataType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return DataTypeBool
	case int8:
		return DataTypeInt8
	case int16:
		return DataTypeInt16
	case int32:
		return DataTypeInt32
	case int64:
		return DataTypeInt64
	case float32:
		return DataTypeFloat
	case float64:
		return DataTypeDouble
	default:
		return DataTypeVarChar
	}
}

func (f *ArrayField[T]) Name() string { return f.name }

func (f *ArrayField[T]) Type() DataType { return DataTypeArray }

func (f *ArrayField[T]) Count() int { return len(f.rows) }

func (f *ArrayField[T]) Accept(v FieldVisitor) error { return v.VisitArray(f) }

func (f *ArrayField[T]) ElementType() DataType { return f.elemType }

func (f *ArrayField[T]) Add(row []T) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *ArrayField[T]) Data() [][]T { return f.rows }

func (f *ArrayField[T]) RowField(i int) Field {
	name := fmt.Sprintf("%s[%d]", f.name, i)
	switch row := any(f.rows[i]).(type) {
	case []bool:
		return NewBoolField(name, row)
	case []int8:
		return NewInt8Field(name, row)
	case []int16:
		return NewInt16Field(name, row)
	case []int32:
		return NewInt32Field(name, row)
	case []int64:
		return NewInt64Field(name, row)
	case []float32:
		return NewFloatField(name, row)
	case []float64:
		return NewDoubleField(name, row)
	case []string:
		return NewVarCharField(name, row)
	}
	return nil
}

// Struct is one element of an array-of-struct row, keyed by sub-field name.
// Values are scalars or []float32 embeddings.
type Struct map[string]any

// StructArrayField holds a list of structs per row. Capacity limits are
// enforced by the server.
type StructArrayField struct {
	name string
	rows [][]Struct
}

func NewStructArrayField(name string, rows [][]Struct) *StructArrayField {
	return &StructArrayField{name: name, rows: rows}
}

func (f *StructArrayField) Name() string { return f.name }

func (f *StructArrayField) Type() DataType { return DataTypeArrayOfStruct }

func (f *StructArrayField) Count() int { return len(f.rows) }

func (f *StructArrayField) Accept(v FieldVisitor) error { return v.VisitStructArray(f) }

func (f *StructArrayField) Data() [][]Struct { return f.rows }

// Add appends a row. Every struct in the row must be non-nil.
func (f *StructArrayField) Add(row []Struct) error {
	for i, s := range row {
		if s == nil {
			return fault.Newf(fault.InvalidArgument, "field %s: struct %d of row %d is nil", f.name, i, len(f.rows))
		}
	}
	f.rows = append(f.rows, row)
	return nil
}
