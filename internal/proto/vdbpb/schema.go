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

type ValueField struct {
	BoolData   *bool    `json:"bool_data,omitempty"`
	IntData    *int32   `json:"int_data,omitempty"`
	LongData   *int64   `json:"long_data,omitempty"`
	FloatData  *float32 `json:"float_data,omitempty"`
	DoubleData *float64 `json:"double_data,omitempty"`
	StringData *string  `json:"string_data,omitempty"`
	BytesData  []byte   `json:"bytes_data,omitempty"`
}

type FieldSchema struct {
	FieldID         int64           `json:"fieldID,omitempty"`
	Name            string          `json:"name,omitempty"`
	IsPrimaryKey    bool            `json:"is_primary_key,omitempty"`
	Description     string          `json:"description,omitempty"`
	DataType        int32           `json:"data_type,omitempty"`
	TypeParams      []*KeyValuePair `json:"type_params,omitempty"`
	IndexParams     []*KeyValuePair `json:"index_params,omitempty"`
	AutoID          bool            `json:"autoID,omitempty"`
	ElementType     int32           `json:"element_type,omitempty"`
	DefaultValue    *ValueField     `json:"default_value,omitempty"`
	IsDynamic       bool            `json:"is_dynamic,omitempty"`
	IsPartitionKey  bool            `json:"is_partition_key,omitempty"`
	IsClusteringKey bool            `json:"is_clustering_key,omitempty"`
	Nullable        bool            `json:"nullable,omitempty"`
}

type StructArrayFieldSchema struct {
	FieldID     int64           `json:"fieldID,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Fields      []*FieldSchema  `json:"fields,omitempty"`
	TypeParams  []*KeyValuePair `json:"type_params,omitempty"`
}

type CollectionSchema struct {
	Name               string                    `json:"name,omitempty"`
	Description        string                    `json:"description,omitempty"`
	AutoID             bool                      `json:"autoID,omitempty"`
	Fields             []*FieldSchema            `json:"fields,omitempty"`
	EnableDynamicField bool                      `json:"enable_dynamic_field,omitempty"`
	Properties         []*KeyValuePair           `json:"properties,omitempty"`
	DbName             string                    `json:"db_name,omitempty"`
	StructArrayFields  []*StructArrayFieldSchema `json:"struct_array_fields,omitempty"`
}
