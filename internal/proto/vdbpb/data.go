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

package vdbpb

type BoolArray struct {
	Data []bool `json:"data,omitempty"`
}

type IntArray struct {
	Data []int32 `json:"data,omitempty"`
}

type LongArray struct {
	Data []int64 `json:"data,omitempty"`
}

type FloatArray struct {
	Data []float32 `json:"data,omitempty"`
}

type DoubleArray struct {
	Data []float64 `json:"data,omitempty"`
}

type StringArray struct {
	Data []string `json:"data,omitempty"`
}

type BytesArray struct {
	Data [][]byte `json:"data,omitempty"`
}

// ArrayArray holds one scalar array per row.
type ArrayArray struct {
	Data        []*ScalarField `json:"data,omitempty"`
	ElementType int32          `json:"element_type,omitempty"`
}

type JSONArray struct {
	Data [][]byte `json:"data,omitempty"`
}

// ScalarField carries exactly one of its columns.
type ScalarField struct {
	BoolData   *BoolArray   `json:"bool_data,omitempty"`
	IntData    *IntArray    `json:"int_data,omitempty"`
	LongData   *LongArray   `json:"long_data,omitempty"`
	FloatData  *FloatArray  `json:"float_data,omitempty"`
	DoubleData *DoubleArray `json:"double_data,omitempty"`
	StringData *StringArray `json:"string_data,omitempty"`
	BytesData  *BytesArray  `json:"bytes_data,omitempty"`
	ArrayData  *ArrayArray  `json:"array_data,omitempty"`
	JSONData   *JSONArray   `json:"json_data,omitempty"`
}

// SparseFloatArray holds one encoded sparse row per entry. Dim is the widest row.
type SparseFloatArray struct {
	Contents [][]byte `json:"contents,omitempty"`
	Dim      int64    `json:"dim,omitempty"`
}

// VectorArray holds one vector list per row of an array-of-vector column.
type VectorArray struct {
	Dim         int64          `json:"dim,omitempty"`
	Data        []*VectorField `json:"data,omitempty"`
	ElementType int32          `json:"element_type,omitempty"`
}

// VectorField carries a flat vector column; rows are Dim elements wide
// (Dim bits for binary vectors).
type VectorField struct {
	Dim               int64             `json:"dim,omitempty"`
	FloatVector       *FloatArray       `json:"float_vector,omitempty"`
	BinaryVector      []byte            `json:"binary_vector,omitempty"`
	Float16Vector     []byte            `json:"float16_vector,omitempty"`
	Bfloat16Vector    []byte            `json:"bfloat16_vector,omitempty"`
	SparseFloatVector *SparseFloatArray `json:"sparse_float_vector,omitempty"`
	Int8Vector        []byte            `json:"int8_vector,omitempty"`
	VectorArray       *VectorArray      `json:"vector_array,omitempty"`
}

type StructArrayField struct {
	Fields []*FieldData `json:"fields,omitempty"`
}

// FieldData is one column of an insert payload or a result set. Exactly one
// of Scalars, Vectors and StructArrays is set.
type FieldData struct {
	Type         int32             `json:"type,omitempty"`
	FieldName    string            `json:"field_name,omitempty"`
	Scalars      *ScalarField      `json:"scalars,omitempty"`
	Vectors      *VectorField      `json:"vectors,omitempty"`
	StructArrays *StructArrayField `json:"struct_arrays,omitempty"`
	FieldID      int64             `json:"field_id,omitempty"`
	IsDynamic    bool              `json:"is_dynamic,omitempty"`
	ValidData    []bool            `json:"valid_data,omitempty"`
}

// IDs carries primary keys, either integer or string.
type IDs struct {
	IntID *LongArray   `json:"int_id,omitempty"`
	StrID *StringArray `json:"str_id,omitempty"`
}

type SearchResultData struct {
	NumQueries   int64        `json:"num_queries,omitempty"`
	TopK         int64        `json:"top_k,omitempty"`
	FieldsData   []*FieldData `json:"fields_data,omitempty"`
	Scores       []float32    `json:"scores,omitempty"`
	Ids          *IDs         `json:"ids,omitempty"`
	Topks        []int64      `json:"topks,omitempty"`
	OutputFields []string     `json:"output_fields,omitempty"`
}
