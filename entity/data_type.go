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

import "fmt"

// DataType is the wire type tag of a field.
type DataType int32

const (
	DataTypeNone              DataType = 0
	DataTypeBool              DataType = 1
	DataTypeInt8              DataType = 2
	DataTypeInt16             DataType = 3
	DataTypeInt32             DataType = 4
	DataTypeInt64             DataType = 5
	DataTypeFloat             DataType = 10
	DataTypeDouble            DataType = 11
	DataTypeString            DataType = 20
	DataTypeVarChar           DataType = 21
	DataTypeArray             DataType = 22
	DataTypeJSON              DataType = 23
	DataTypeBinaryVector      DataType = 100
	DataTypeFloatVector       DataType = 101
	DataTypeFloat16Vector     DataType = 102
	DataTypeBFloat16Vector    DataType = 103
	DataTypeSparseFloatVector DataType = 104
	DataTypeInt8Vector        DataType = 105
	DataTypeArrayOfVector     DataType = 106
	DataTypeArrayOfStruct     DataType = 200
	DataTypeStruct            DataType = 201
)

var dataTypeNames = map[DataType]string{
	DataTypeNone:              "None",
	DataTypeBool:              "Bool",
	DataTypeInt8:              "Int8",
	DataTypeInt16:             "Int16",
	DataTypeInt32:             "Int32",
	DataTypeInt64:             "Int64",
	DataTypeFloat:             "Float",
	DataTypeDouble:            "Double",
	DataTypeString:            "String",
	DataTypeVarChar:           "VarChar",
	DataTypeArray:             "Array",
	DataTypeJSON:              "JSON",
	DataTypeBinaryVector:      "BinaryVector",
	DataTypeFloatVector:       "FloatVector",
	DataTypeFloat16Vector:     "Float16Vector",
	DataTypeBFloat16Vector:    "BFloat16Vector",
	DataTypeSparseFloatVector: "SparseFloatVector",
	DataTypeInt8Vector:        "Int8Vector",
	DataTypeArrayOfVector:     "ArrayOfVector",
	DataTypeArrayOfStruct:     "ArrayOfStruct",
	DataTypeStruct:            "Struct",
}

func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", int32(t))
}

// IsVector reports whether the type is a vector type that can be searched.
func (t DataType) IsVector() bool {
	switch t {
	case DataTypeBinaryVector, DataTypeFloatVector, DataTypeFloat16Vector,
		DataTypeBFloat16Vector, DataTypeSparseFloatVector, DataTypeInt8Vector:
		return true
	}
	return false
}

// IsDenseVector reports whether rows of the type share one dimension.
func (t DataType) IsDenseVector() bool {
	return t.IsVector() && t != DataTypeSparseFloatVector
}

// IsScalar reports whether the type is stored in a scalar wire column.
func (t DataType) IsScalar() bool {
	switch t {
	case DataTypeBool, DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64,
		DataTypeFloat, DataTypeDouble, DataTypeString, DataTypeVarChar, DataTypeArray, DataTypeJSON:
		return true
	}
	return false
}

// ParseDataType resolves a name as printed by String. Matching is exact.
func ParseDataType(name string) (DataType, bool) {
	for t, n := range dataTypeNames {
		if n == name {
			return t, true
		}
	}
	return DataTypeNone, false
}
