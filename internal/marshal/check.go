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
	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
)

// isInputField reports whether callers must provide data for f. An auto-id
// primary key is generated by the server on insert but required on upsert.
func isInputField(f *entity.FieldSchema, upsert bool) bool {
	if f.PrimaryKey && f.AutoID {
		return upsert
	}
	return f.Name != entity.DynamicFieldName && !f.IsDynamic
}

func sameType(a, b entity.DataType) bool {
	if a == b {
		return true
	}
	str := func(t entity.DataType) bool { return t == entity.DataTypeString || t == entity.DataTypeVarChar }
	return str(a) && str(b)
}

// CheckInsertInput validates column data against the collection schema.
// DataUnmatchSchema means the cached schema may be stale; callers refresh it
// and check again. Any other code is a caller error.
func CheckInsertInput(schema *entity.CollectionSchema, fields []entity.Field, upsert bool) error {
	if schema == nil {
		return fault.New(fault.InvalidArgument, "collection schema is unknown")
	}
	if len(fields) == 0 {
		return fault.New(fault.InvalidArgument, "no column data provided")
	}

	provided := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f == nil {
			return fault.New(fault.InvalidArgument, "nil field is not allowed")
		}
		if _, dup := provided[f.Name()]; dup {
			return fault.Newf(fault.InvalidArgument, "duplicate data for field %s", f.Name())
		}
		provided[f.Name()] = struct{}{}

		fs := schema.Field(f.Name())
		if fs != nil {
			if !isInputField(fs, upsert) {
				return fault.Newf(fault.DataUnmatchSchema, "no need to provide data for field %s", f.Name())
			}
			if !sameType(f.Type(), fs.DataType) {
				return fault.Newf(fault.DataUnmatchSchema, "field %s: data type %s does not match schema type %s", f.Name(), f.Type(), fs.DataType)
			}
			if ac, ok := f.(entity.ArrayColumn); ok && !sameType(ac.ElementType(), fs.ElementType) {
				return fault.Newf(fault.DataUnmatchSchema, "field %s: element type %s does not match schema element type %s", f.Name(), ac.ElementType(), fs.ElementType)
			}
			if err := CheckDim(f, fs); err != nil {
				return err
			}
			continue
		}
		if f.Name() == entity.DynamicFieldName {
			if f.Type() != entity.DataTypeJSON {
				return fault.Newf(fault.InvalidArgument, "dynamic field %s requires JSON data", f.Name())
			}
			if !schema.EnableDynamicField {
				return fault.Newf(fault.DataUnmatchSchema, "dynamic field is disabled for collection %s", schema.Name)
			}
			continue
		}
		return fault.Newf(fault.DataUnmatchSchema, "%s is not a valid field of collection %s", f.Name(), schema.Name)
	}

	for _, fs := range schema.Fields {
		if _, ok := provided[fs.Name]; ok {
			continue
		}
		if fs.Nullable || fs.DefaultValue != nil {
			continue
		}
		if isInputField(fs, upsert) {
			return fault.Newf(fault.DataUnmatchSchema, "data is missed for field %s", fs.Name)
		}
	}
	_, err := RowCount(fields)
	return err
}

// CheckDim compares the row width of a dense vector column with the schema.
func CheckDim(f entity.Field, fs *entity.FieldSchema) error {
	want := fs.Dim()
	if want <= 0 || f.Count() == 0 {
		return nil
	}
	var got int
	switch v := f.(type) {
	case *entity.FloatVectorField:
		got = v.Dim()
	case *entity.BinaryVectorField:
		got = v.Dim()
	case *entity.Float16VectorField:
		got = v.Dim()
	case *entity.BFloat16VectorField:
		got = v.Dim()
	case *entity.Int8VectorField:
		got = v.Dim()
	default:
		return nil
	}
	if got != want {
		return fault.Newf(fault.DimensionNotEqual, "field %s: vector dim %d does not match schema dim %d", f.Name(), got, want)
	}
	return nil
}

// RowCount returns the shared row count of fields; every field must report
// the same count.
func RowCount(fields []entity.Field) (int, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	n := fields[0].Count()
	for _, f := range fields[1:] {
		if f.Count() != n {
			return 0, fault.Newf(fault.InvalidArgument, "field %s has %d rows, field %s has %d", fields[0].Name(), n, f.Name(), f.Count())
		}
	}
	return n, nil
}
