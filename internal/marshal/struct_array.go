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

package marshal

import (
	"github.com/spf13/cast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// structArrayToWire turns every sub-field into an array column (or an
// array-of-vector column for []float32 values). Every struct must carry
// every sub-field.
func structArrayToWire(f *entity.StructArrayField) (*vdbpb.StructArrayField, error) {
	keys := make(map[string]any)
	for _, row := range f.Data() {
		for _, s := range row {
			for k, v := range s {
				if _, ok := keys[k]; !ok {
					keys[k] = v
				}
			}
		}
	}
	names := maps.Keys(keys)
	slices.Sort(names)

	out := &vdbpb.StructArrayField{Fields: make([]*vdbpb.FieldData, 0, len(names))}
	for _, name := range names {
		fd, err := subFieldToWire(f, name, keys[name])
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, fd)
	}
	return out, nil
}

func subFieldToWire(f *entity.StructArrayField, name string, sample any) (*vdbpb.FieldData, error) {
	elemType, err := structValueType(sample)
	if err != nil {
		return nil, fault.Wrapf(fault.InvalidArgument, err, "field %s: sub-field %s", f.Name(), name)
	}
	fd := &vdbpb.FieldData{FieldName: name}
	if elemType == entity.DataTypeFloatVector {
		fd.Type = int32(entity.DataTypeArrayOfVector)
		va := &vdbpb.VectorArray{ElementType: int32(elemType)}
		for r, row := range f.Data() {
			vectors := make([][]float32, len(row))
			for i, s := range row {
				v, ok := s[name].([]float32)
				if !ok {
					return nil, fault.Newf(fault.InvalidArgument, "field %s: struct %d of row %d has no vector %s", f.Name(), i, r, name)
				}
				if va.Dim == 0 {
					va.Dim = int64(len(v))
				}
				if int64(len(v)) != va.Dim {
					return nil, fault.Newf(fault.DimensionNotEqual, "field %s: vector %s width %d does not match %d", f.Name(), name, len(v), va.Dim)
				}
				vectors[i] = v
			}
			va.Data = append(va.Data, &vdbpb.VectorField{Dim: va.Dim, FloatVector: &vdbpb.FloatArray{Data: flatten(vectors)}})
		}
		for _, vf := range va.Data {
			vf.Dim = va.Dim
		}
		fd.Vectors = &vdbpb.VectorField{Dim: va.Dim, VectorArray: va}
		return fd, nil
	}

	fd.Type = int32(entity.DataTypeArray)
	aa := &vdbpb.ArrayArray{ElementType: int32(elemType)}
	for r, row := range f.Data() {
		values := make([]any, len(row))
		for i, s := range row {
			v, ok := s[name]
			if !ok {
				return nil, fault.Newf(fault.InvalidArgument, "field %s: struct %d of row %d has no value for %s", f.Name(), i, r, name)
			}
			values[i] = v
		}
		sf, err := scalarColumnOf(elemType, values)
		if err != nil {
			return nil, fault.Wrapf(fault.InvalidArgument, err, "field %s: sub-field %s row %d", f.Name(), name, r)
		}
		aa.Data = append(aa.Data, sf)
	}
	fd.Scalars = &vdbpb.ScalarField{ArrayData: aa}
	return fd, nil
}

func structValueType(v any) (entity.DataType, error) {
	switch v.(type) {
	case bool:
		return entity.DataTypeBool, nil
	case int8:
		return entity.DataTypeInt8, nil
	case int16:
		return entity.DataTypeInt16, nil
	case int32:
		return entity.DataTypeInt32, nil
	case int, int64:
		return entity.DataTypeInt64, nil
	case float32:
		return entity.DataTypeFloat, nil
	case float64:
		return entity.DataTypeDouble, nil
	case string:
		return entity.DataTypeVarChar, nil
	case []float32:
		return entity.DataTypeFloatVector, nil
	}
	return entity.DataTypeNone, fault.Newf(fault.UnsupportedType, "unsupported struct value %T", v)
}

// scalarColumnOf coerces values to the element type.
func scalarColumnOf(et entity.DataType, values []any) (*vdbpb.ScalarField, error) {
	switch et {
	case entity.DataTypeBool:
		data := make([]bool, len(values))
		for i, v := range values {
			b, err := cast.ToBoolE(v)
			if err != nil {
				return nil, err
			}
			data[i] = b
		}
		return &vdbpb.ScalarField{BoolData: &vdbpb.BoolArray{Data: data}}, nil
	case entity.DataTypeInt8, entity.DataTypeInt16, entity.DataTypeInt32:
		data := make([]int32, len(values))
		for i, v := range values {
			n, err := cast.ToInt32E(v)
			if err != nil {
				return nil, err
			}
			data[i] = n
		}
		return &vdbpb.ScalarField{IntData: &vdbpb.IntArray{Data: data}}, nil
	case entity.DataTypeInt64:
		data := make([]int64, len(values))
		for i, v := range values {
			n, err := cast.ToInt64E(v)
			if err != nil {
				return nil, err
			}
			data[i] = n
		}
		return &vdbpb.ScalarField{LongData: &vdbpb.LongArray{Data: data}}, nil
	case entity.DataTypeFloat:
		data := make([]float32, len(values))
		for i, v := range values {
			n, err := cast.ToFloat32E(v)
			if err != nil {
				return nil, err
			}
			data[i] = n
		}
		return &vdbpb.ScalarField{FloatData: &vdbpb.FloatArray{Data: data}}, nil
	case entity.DataTypeDouble:
		data := make([]float64, len(values))
		for i, v := range values {
			n, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, err
			}
			data[i] = n
		}
		return &vdbpb.ScalarField{DoubleData: &vdbpb.DoubleArray{Data: data}}, nil
	case entity.DataTypeVarChar, entity.DataTypeString:
		data := make([]string, len(values))
		for i, v := range values {
			s, err := cast.ToStringE(v)
			if err != nil {
				return nil, err
			}
			data[i] = s
		}
		return &vdbpb.ScalarField{StringData: &vdbpb.StringArray{Data: data}}, nil
	}
	return nil, fault.Newf(fault.UnsupportedType, "unsupported element type %s", et)
}

// scalarValues returns the column of sf as a list of values.
func scalarValues(sf *vdbpb.ScalarField) []any {
	var out []any
	switch {
	case sf == nil:
	case sf.BoolData != nil:
		for _, v := range sf.BoolData.Data {
			out = append(out, v)
		}
	case sf.IntData != nil:
		for _, v := range sf.IntData.Data {
			out = append(out, v)
		}
	case sf.LongData != nil:
		for _, v := range sf.LongData.Data {
			out = append(out, v)
		}
	case sf.FloatData != nil:
		for _, v := range sf.FloatData.Data {
			out = append(out, v)
		}
	case sf.DoubleData != nil:
		for _, v := range sf.DoubleData.Data {
			out = append(out, v)
		}
	case sf.StringData != nil:
		for _, v := range sf.StringData.Data {
			out = append(out, v)
		}
	}
	return out
}

func structArrayFromWire(name string, sa *vdbpb.StructArrayField) (entity.Field, error) {
	f := entity.NewStructArrayField(name, nil)
	if sa == nil || len(sa.Fields) == 0 {
		return f, nil
	}
	n := 0
	for _, sub := range sa.Fields {
		switch {
		case sub.Scalars != nil && sub.Scalars.ArrayData != nil:
			n = max(n, len(sub.Scalars.ArrayData.Data))
		case sub.Vectors != nil && sub.Vectors.VectorArray != nil:
			n = max(n, len(sub.Vectors.VectorArray.Data))
		}
	}
	rows := make([][]entity.Struct, n)
	put := func(r, i int, key string, v any) {
		for len(rows) <= r {
			rows = append(rows, nil)
		}
		for len(rows[r]) <= i {
			rows[r] = append(rows[r], entity.Struct{})
		}
		rows[r][i][key] = v
	}
	for _, sub := range sa.Fields {
		switch entity.DataType(sub.Type) {
		case entity.DataTypeArray:
			if sub.Scalars == nil || sub.Scalars.ArrayData == nil {
				return nil, missing(sub.FieldName, entity.DataTypeArray)
			}
			for r, sf := range sub.Scalars.ArrayData.Data {
				for i, v := range scalarValues(sf) {
					put(r, i, sub.FieldName, v)
				}
			}
		case entity.DataTypeArrayOfVector:
			if sub.Vectors == nil || sub.Vectors.VectorArray == nil {
				return nil, missing(sub.FieldName, entity.DataTypeArrayOfVector)
			}
			va := sub.Vectors.VectorArray
			for r, vf := range va.Data {
				if vf == nil || vf.FloatVector == nil {
					continue
				}
				vectors, err := split(vf.FloatVector.Data, int(va.Dim), sub.FieldName)
				if err != nil {
					return nil, err
				}
				for i, v := range vectors {
					put(r, i, sub.FieldName, v)
				}
			}
		default:
			return nil, fault.Newf(fault.UnsupportedType, "field %s: unsupported struct sub-field type %s", name, entity.DataType(sub.Type))
		}
	}
	for _, row := range rows {
		if row == nil {
			row = []entity.Struct{}
		}
		if err := f.Add(row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
