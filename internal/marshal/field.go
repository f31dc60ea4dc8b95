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

// Package marshal converts between the typed field containers and the wire
// field data, and between the typed schema and its wire form.
package marshal

import (
	"github.com/pkg/errors"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// ToWire converts a field container into its wire column.
func ToWire(f entity.Field) (*vdbpb.FieldData, error) {
	if f == nil {
		return nil, fault.New(fault.InvalidArgument, "nil field")
	}
	w := &toWire{out: &vdbpb.FieldData{Type: int32(f.Type()), FieldName: f.Name()}}
	if err := f.Accept(w); err != nil {
		return nil, errors.WithMessagef(err, "marshal field %s", f.Name())
	}
	if n, ok := f.(entity.Nullable); ok && n.Nullable() {
		w.out.ValidData = n.ValidData()
	}
	return w.out, nil
}

// FieldsToWire converts every field, stopping at the first failure.
func FieldsToWire(fields []entity.Field) ([]*vdbpb.FieldData, error) {
	out := make([]*vdbpb.FieldData, 0, len(fields))
	for _, f := range fields {
		fd, err := ToWire(f)
		if err != nil {
			return nil, err
		}
		out = append(out, fd)
	}
	return out, nil
}

type toWire struct {
	out *vdbpb.FieldData
}

func (w *toWire) VisitBool(f *entity.BoolField) error {
	w.out.Scalars = &vdbpb.ScalarField{BoolData: &vdbpb.BoolArray{Data: f.Data()}}
	return nil
}

func (w *toWire) VisitInt8(f *entity.Int8Field) error {
	w.out.Scalars = &vdbpb.ScalarField{IntData: &vdbpb.IntArray{Data: widen(f.Data())}}
	return nil
}

func (w *toWire) VisitInt16(f *entity.Int16Field) error {
	w.out.Scalars = &vdbpb.ScalarField{IntData: &vdbpb.IntArray{Data: widen(f.Data())}}
	return nil
}

func (w *toWire) VisitInt32(f *entity.Int32Field) error {
	w.out.Scalars = &vdbpb.ScalarField{IntData: &vdbpb.IntArray{Data: f.Data()}}
	return nil
}

func (w *toWire) VisitInt64(f *entity.Int64Field) error {
	w.out.Scalars = &vdbpb.ScalarField{LongData: &vdbpb.LongArray{Data: f.Data()}}
	return nil
}

func (w *toWire) VisitFloat(f *entity.FloatField) error {
	w.out.Scalars = &vdbpb.ScalarField{FloatData: &vdbpb.FloatArray{Data: f.Data()}}
	return nil
}

func (w *toWire) VisitDouble(f *entity.DoubleField) error {
	w.out.Scalars = &vdbpb.ScalarField{DoubleData: &vdbpb.DoubleArray{Data: f.Data()}}
	return nil
}

func (w *toWire) VisitVarChar(f *entity.VarCharField) error {
	w.out.Scalars = &vdbpb.ScalarField{StringData: &vdbpb.StringArray{Data: f.Data()}}
	return nil
}

func (w *toWire) VisitJSON(f *entity.JSONField) error {
	w.out.Scalars = &vdbpb.ScalarField{JSONData: &vdbpb.JSONArray{Data: f.Data()}}
	w.out.IsDynamic = f.IsDynamic()
	return nil
}

func (w *toWire) VisitArray(f entity.ArrayColumn) error {
	rows := make([]*vdbpb.ScalarField, f.Count())
	for i := range rows {
		fd, err := ToWire(f.RowField(i))
		if err != nil {
			return err
		}
		rows[i] = fd.Scalars
	}
	w.out.Scalars = &vdbpb.ScalarField{ArrayData: &vdbpb.ArrayArray{Data: rows, ElementType: int32(f.ElementType())}}
	return nil
}

func (w *toWire) VisitFloatVector(f *entity.FloatVectorField) error {
	w.out.Vectors = &vdbpb.VectorField{Dim: int64(f.Dim()), FloatVector: &vdbpb.FloatArray{Data: flatten(f.Data())}}
	return nil
}

func (w *toWire) VisitBinaryVector(f *entity.BinaryVectorField) error {
	w.out.Vectors = &vdbpb.VectorField{Dim: int64(f.Dim()), BinaryVector: flatten(f.Data())}
	return nil
}

func (w *toWire) VisitFloat16Vector(f *entity.Float16VectorField) error {
	w.out.Vectors = &vdbpb.VectorField{Dim: int64(f.Dim()), Float16Vector: flatten(f.Data())}
	return nil
}

func (w *toWire) VisitBFloat16Vector(f *entity.BFloat16VectorField) error {
	w.out.Vectors = &vdbpb.VectorField{Dim: int64(f.Dim()), Bfloat16Vector: flatten(f.Data())}
	return nil
}

func (w *toWire) VisitInt8Vector(f *entity.Int8VectorField) error {
	flat := flatten(f.Data())
	data := make([]byte, len(flat))
	for i, v := range flat {
		data[i] = byte(v)
	}
	w.out.Vectors = &vdbpb.VectorField{Dim: int64(f.Dim()), Int8Vector: data}
	return nil
}

func (w *toWire) VisitSparseFloatVector(f *entity.SparseFloatVectorField) error {
	contents := make([][]byte, f.Count())
	for i, row := range f.Data() {
		contents[i] = EncodeSparseRow(row)
	}
	dim := int64(f.Dim())
	w.out.Vectors = &vdbpb.VectorField{Dim: dim, SparseFloatVector: &vdbpb.SparseFloatArray{Contents: contents, Dim: dim}}
	return nil
}

func (w *toWire) VisitStructArray(f *entity.StructArrayField) error {
	sa, err := structArrayToWire(f)
	if err != nil {
		return err
	}
	w.out.StructArrays = sa
	return nil
}

func widen[T int8 | int16](data []T) []int32 {
	out := make([]int32, len(data))
	for i, v := range data {
		out[i] = int32(v)
	}
	return out
}

func narrow[T int8 | int16](data []int32) []T {
	out := make([]T, len(data))
	for i, v := range data {
		out[i] = T(v)
	}
	return out
}

func flatten[T any](rows [][]T) []T {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	out := make([]T, 0, n)
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}

// split cuts flat into rows of width elements, row r at [r*width, (r+1)*width).
func split[T any](flat []T, width int, name string) ([][]T, error) {
	if len(flat) == 0 {
		return nil, nil
	}
	if width <= 0 || len(flat)%width != 0 {
		return nil, fault.Newf(fault.InvalidArgument, "field %s: %d elements cannot be split into rows of %d", name, len(flat), width)
	}
	rows := make([][]T, len(flat)/width)
	for r := range rows {
		rows[r] = flat[r*width : (r+1)*width : (r+1)*width]
	}
	return rows, nil
}

// FromWire rebuilds a field container from its wire column. Type tags
// without a container fail with UnsupportedType.
func FromWire(fd *vdbpb.FieldData) (entity.Field, error) {
	if fd == nil {
		return nil, fault.New(fault.InvalidArgument, "nil field data")
	}
	f, err := fromWire(fd)
	if err != nil {
		return nil, err
	}
	if len(fd.ValidData) > 0 {
		if n, ok := f.(interface{ SetValidData([]bool) error }); ok {
			if err := n.SetValidData(fd.ValidData); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// FieldsFromWire converts every column, stopping at the first failure.
func FieldsFromWire(fds []*vdbpb.FieldData) ([]entity.Field, error) {
	out := make([]entity.Field, 0, len(fds))
	for _, fd := range fds {
		f, err := FromWire(fd)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func fromWire(fd *vdbpb.FieldData) (entity.Field, error) {
	name := fd.FieldName
	dt := entity.DataType(fd.Type)
	if dt.IsScalar() {
		if fd.Scalars == nil {
			return nil, fault.Newf(fault.InvalidArgument, "field %s: %s column carries no scalar data", name, dt)
		}
		return scalarFromWire(name, dt, fd.Scalars, fd.IsDynamic)
	}
	if dt.IsVector() {
		if fd.Vectors == nil {
			return nil, fault.Newf(fault.InvalidArgument, "field %s: %s column carries no vector data", name, dt)
		}
		return vectorFromWire(name, dt, fd.Vectors)
	}
	if dt == entity.DataTypeArrayOfStruct {
		return structArrayFromWire(name, fd.StructArrays)
	}
	return nil, fault.Newf(fault.UnsupportedType, "field %s: unsupported data type %s", name, dt)
}

func missing(name string, dt entity.DataType) error {
	return fault.Newf(fault.InvalidArgument, "field %s: %s column is missing its data", name, dt)
}

func scalarFromWire(name string, dt entity.DataType, sf *vdbpb.ScalarField, dynamic bool) (entity.Field, error) {
	switch dt {
	case entity.DataTypeBool:
		if sf.BoolData == nil {
			return nil, missing(name, dt)
		}
		return entity.NewBoolField(name, sf.BoolData.Data), nil
	case entity.DataTypeInt8:
		if sf.IntData == nil {
			return nil, missing(name, dt)
		}
		return entity.NewInt8Field(name, narrow[int8](sf.IntData.Data)), nil
	case entity.DataTypeInt16:
		if sf.IntData == nil {
			return nil, missing(name, dt)
		}
		return entity.NewInt16Field(name, narrow[int16](sf.IntData.Data)), nil
	case entity.DataTypeInt32:
		if sf.IntData == nil {
			return nil, missing(name, dt)
		}
		return entity.NewInt32Field(name, sf.IntData.Data), nil
	case entity.DataTypeInt64:
		if sf.LongData == nil {
			return nil, missing(name, dt)
		}
		return entity.NewInt64Field(name, sf.LongData.Data), nil
	case entity.DataTypeFloat:
		if sf.FloatData == nil {
			return nil, missing(name, dt)
		}
		return entity.NewFloatField(name, sf.FloatData.Data), nil
	case entity.DataTypeDouble:
		if sf.DoubleData == nil {
			return nil, missing(name, dt)
		}
		return entity.NewDoubleField(name, sf.DoubleData.Data), nil
	case entity.DataTypeString, entity.DataTypeVarChar:
		if sf.StringData == nil {
			return nil, missing(name, dt)
		}
		if dt == entity.DataTypeString {
			return entity.NewStringField(name, sf.StringData.Data), nil
		}
		return entity.NewVarCharField(name, sf.StringData.Data), nil
	case entity.DataTypeJSON:
		if sf.JSONData == nil {
			return nil, missing(name, dt)
		}
		f := entity.NewJSONField(name, sf.JSONData.Data)
		f.SetDynamic(dynamic)
		return f, nil
	case entity.DataTypeArray:
		if sf.ArrayData == nil {
			return nil, missing(name, dt)
		}
		return arrayFromWire(name, sf.ArrayData)
	}
	return nil, fault.Newf(fault.UnsupportedType, "field %s: unsupported scalar type %s", name, dt)
}

func arrayFromWire(name string, aa *vdbpb.ArrayArray) (entity.Field, error) {
	et := entity.DataType(aa.ElementType)
	switch et {
	case entity.DataTypeBool:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]bool, bool) {
			if sf.BoolData == nil {
				return nil, false
			}
			return sf.BoolData.Data, true
		})
	case entity.DataTypeInt8:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]int8, bool) {
			if sf.IntData == nil {
				return nil, false
			}
			return narrow[int8](sf.IntData.Data), true
		})
	case entity.DataTypeInt16:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]int16, bool) {
			if sf.IntData == nil {
				return nil, false
			}
			return narrow[int16](sf.IntData.Data), true
		})
	case entity.DataTypeInt32:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]int32, bool) {
			if sf.IntData == nil {
				return nil, false
			}
			return sf.IntData.Data, true
		})
	case entity.DataTypeInt64:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]int64, bool) {
			if sf.LongData == nil {
				return nil, false
			}
			return sf.LongData.Data, true
		})
	case entity.DataTypeFloat:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]float32, bool) {
			if sf.FloatData == nil {
				return nil, false
			}
			return sf.FloatData.Data, true
		})
	case entity.DataTypeDouble:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]float64, bool) {
			if sf.DoubleData == nil {
				return nil, false
			}
			return sf.DoubleData.Data, true
		})
	case entity.DataTypeString, entity.DataTypeVarChar:
		return arrayRows(name, aa, et, func(sf *vdbpb.ScalarField) ([]string, bool) {
			if sf.StringData == nil {
				return nil, false
			}
			return sf.StringData.Data, true
		})
	}
	return nil, fault.Newf(fault.UnsupportedType, "field %s: unsupported array element type %s", name, et)
}

// arrayRows extracts every row with get. An empty row may arrive without
// its column set; a non-nil row of the wrong column is an error.
func arrayRows[T entity.ArrayElement](name string, aa *vdbpb.ArrayArray, et entity.DataType, get func(*vdbpb.ScalarField) ([]T, bool)) (entity.Field, error) {
	rows := make([][]T, len(aa.Data))
	for i, sf := range aa.Data {
		if sf == nil {
			continue
		}
		row, ok := get(sf)
		if !ok && !emptyScalar(sf) {
			return nil, fault.Newf(fault.InvalidArgument, "field %s: row %d is not an array of %s", name, i, et)
		}
		rows[i] = row
	}
	return entity.NewArrayField(name, rows), nil
}

func emptyScalar(sf *vdbpb.ScalarField) bool {
	return *sf == vdbpb.ScalarField{}
}

func vectorFromWire(name string, dt entity.DataType, vf *vdbpb.VectorField) (entity.Field, error) {
	dim := int(vf.Dim)
	switch dt {
	case entity.DataTypeFloatVector:
		var flat []float32
		if vf.FloatVector != nil {
			flat = vf.FloatVector.Data
		}
		rows, err := split(flat, dim, name)
		if err != nil {
			return nil, err
		}
		return entity.NewFloatVectorField(name, rows)
	case entity.DataTypeBinaryVector:
		if dim%8 != 0 {
			return nil, fault.Newf(fault.InvalidArgument, "field %s: binary dim %d is not a multiple of 8", name, dim)
		}
		rows, err := split(vf.BinaryVector, dim/8, name)
		if err != nil {
			return nil, err
		}
		return entity.NewBinaryVectorField(name, rows)
	case entity.DataTypeFloat16Vector:
		rows, err := split(vf.Float16Vector, 2*dim, name)
		if err != nil {
			return nil, err
		}
		f, err := entity.NewFloat16VectorField(name, nil)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := f.Add(row); err != nil {
				return nil, err
			}
		}
		return f, nil
	case entity.DataTypeBFloat16Vector:
		rows, err := split(vf.Bfloat16Vector, 2*dim, name)
		if err != nil {
			return nil, err
		}
		f, err := entity.NewBFloat16VectorField(name, nil)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := f.Add(row); err != nil {
				return nil, err
			}
		}
		return f, nil
	case entity.DataTypeInt8Vector:
		data := make([]int8, len(vf.Int8Vector))
		for i, b := range vf.Int8Vector {
			data[i] = int8(b)
		}
		rows, err := split(data, dim, name)
		if err != nil {
			return nil, err
		}
		return entity.NewInt8VectorField(name, rows)
	case entity.DataTypeSparseFloatVector:
		f := entity.NewSparseFloatVectorField(name, nil)
		if vf.SparseFloatVector == nil {
			return f, nil
		}
		for i, content := range vf.SparseFloatVector.Contents {
			row, err := DecodeSparseRow(content)
			if err != nil {
				return nil, errors.WithMessagef(err, "field %s row %d", name, i)
			}
			if err := f.Add(row); err != nil {
				return nil, err
			}
		}
		return f, nil
	}
	return nil, fault.Newf(fault.UnsupportedType, "field %s: unsupported vector type %s", name, dt)
}
