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

type BoolField struct{ scalarColumn[bool] }

func NewBoolField(name string, data []bool) *BoolField {
	return &BoolField{scalarColumn[bool]{name: name, data: data}}
}

func (f *BoolField) Type() DataType { return DataTypeBool }

func (f *BoolField) Accept(v FieldVisitor) error { return v.VisitBool(f) }

type Int8Field struct{ scalarColumn[int8] }

func NewInt8Field(name string, data []int8) *Int8Field {
	return &Int8Field{scalarColumn[int8]{name: name, data: data}}
}

func (f *Int8Field) Type() DataType { return DataTypeInt8 }

func (f *Int8Field) Accept(v FieldVisitor) error { return v.VisitInt8(f) }

type Int16Field struct{ scalarColumn[int16] }

func NewInt16Field(name string, data []int16) *Int16Field {
	return &Int16Field{scalarColumn[int16]{name: name, data: data}}
}

func (f *Int16Field) Type() DataType { return DataTypeInt16 }

func (f *Int16Field) Accept(v FieldVisitor) error { return v.VisitInt16(f) }

type Int32Field struct{ scalarColumn[int32] }

func NewInt32Field(name string, data []int32) *Int32Field {
	return &Int32Field{scalarColumn[int32]{name: name, data: data}}
}

func (f *Int32Field) Type() DataType { return DataTypeInt32 }

func (f *Int32Field) Accept(v FieldVisitor) error { return v.VisitInt32(f) }

type Int64Field struct{ scalarColumn[int64] }

func NewInt64Field(name string, data []int64) *Int64Field {
	return &Int64Field{scalarColumn[int64]{name: name, data: data}}
}

func (f *Int64Field) Type() DataType { return DataTypeInt64 }

func (f *Int64Field) Accept(v FieldVisitor) error { return v.VisitInt64(f) }

type FloatField struct{ scalarColumn[float32] }

func NewFloatField(name string, data []float32) *FloatField {
	return &FloatField{scalarColumn[float32]{name: name, data: data}}
}

func (f *FloatField) Type() DataType { return DataTypeFloat }

func (f *FloatField) Accept(v FieldVisitor) error { return v.VisitFloat(f) }

type DoubleField struct{ scalarColumn[float64] }

func NewDoubleField(name string, data []float64) *DoubleField {
	return &DoubleField{scalarColumn[float64]{name: name, data: data}}
}

func (f *DoubleField) Type() DataType { return DataTypeDouble }

func (f *DoubleField) Accept(v FieldVisitor) error { return v.VisitDouble(f) }

// VarCharField holds String or VarChar rows; both share one wire column.
type VarCharField struct {
	scalarColumn[string]
	kind DataType
}

func NewVarCharField(name string, data []string) *VarCharField {
	return &VarCharField{scalarColumn: scalarColumn[string]{name: name, data: data}, kind: DataTypeVarChar}
}

func NewStringField(name string, data []string) *VarCharField {
	return &VarCharField{scalarColumn: scalarColumn[string]{name: name, data: data}, kind: DataTypeString}
}

func (f *VarCharField) Type() DataType { return f.kind }

func (f *VarCharField) Accept(v FieldVisitor) error { return v.VisitVarChar(f) }
