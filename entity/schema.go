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
	"github.com/spf13/cast"

	"github.com/vearch/vdbclient/fault"
)

// Type param keys understood by the server.
const (
	TypeParamDim         = "dim"
	TypeParamMaxLength   = "max_length"
	TypeParamMaxCapacity = "max_capacity"

	// DynamicFieldName is the column that carries undeclared keys.
	DynamicFieldName = "$meta"
)

// FieldSchema describes one column of a collection.
type FieldSchema struct {
	Name          string
	Description   string
	DataType      DataType
	ElementType   DataType
	PrimaryKey    bool
	AutoID        bool
	PartitionKey  bool
	ClusteringKey bool
	Nullable      bool
	IsDynamic     bool
	DefaultValue  any
	TypeParams    map[string]string
}

func NewFieldSchema(name string, dataType DataType) *FieldSchema {
	return &FieldSchema{Name: name, DataType: dataType, TypeParams: make(map[string]string)}
}

func (f *FieldSchema) WithDescription(desc string) *FieldSchema {
	f.Description = desc
	return f
}

func (f *FieldSchema) WithPrimaryKey(pk bool) *FieldSchema {
	f.PrimaryKey = pk
	return f
}

func (f *FieldSchema) WithAutoID(autoID bool) *FieldSchema {
	f.AutoID = autoID
	return f
}

func (f *FieldSchema) WithPartitionKey(pk bool) *FieldSchema {
	f.PartitionKey = pk
	return f
}

func (f *FieldSchema) WithNullable(nullable bool) *FieldSchema {
	f.Nullable = nullable
	return f
}

func (f *FieldSchema) WithElementType(t DataType) *FieldSchema {
	f.ElementType = t
	return f
}

func (f *FieldSchema) WithDefaultValue(v any) *FieldSchema {
	f.DefaultValue = v
	return f
}

func (f *FieldSchema) WithTypeParam(key string, value any) *FieldSchema {
	if f.TypeParams == nil {
		f.TypeParams = make(map[string]string)
	}
	f.TypeParams[key] = cast.ToString(value)
	return f
}

func (f *FieldSchema) WithDim(dim int) *FieldSchema {
	return f.WithTypeParam(TypeParamDim, dim)
}

func (f *FieldSchema) WithMaxLength(n int) *FieldSchema {
	return f.WithTypeParam(TypeParamMaxLength, n)
}

func (f *FieldSchema) WithMaxCapacity(n int) *FieldSchema {
	return f.WithTypeParam(TypeParamMaxCapacity, n)
}

// Dim returns the declared vector dimension, or 0 when absent.
func (f *FieldSchema) Dim() int {
	return cast.ToInt(f.TypeParams[TypeParamDim])
}

// StructFieldSchema describes an array-of-struct column.
type StructFieldSchema struct {
	Name        string
	Description string
	Fields      []*FieldSchema
	MaxCapacity int
}

// CollectionSchema describes a collection's columns.
type CollectionSchema struct {
	Name               string
	Description        string
	ShardsNum          int32
	EnableDynamicField bool
	Fields             []*FieldSchema
	StructFields       []*StructFieldSchema
}

func NewCollectionSchema(name string) *CollectionSchema {
	return &CollectionSchema{Name: name}
}

func (s *CollectionSchema) WithDescription(desc string) *CollectionSchema {
	s.Description = desc
	return s
}

func (s *CollectionSchema) WithDynamicField(enable bool) *CollectionSchema {
	s.EnableDynamicField = enable
	return s
}

func (s *CollectionSchema) WithShardsNum(n int32) *CollectionSchema {
	s.ShardsNum = n
	return s
}

func (s *CollectionSchema) WithField(f *FieldSchema) *CollectionSchema {
	s.Fields = append(s.Fields, f)
	return s
}

func (s *CollectionSchema) WithStructField(f *StructFieldSchema) *CollectionSchema {
	s.StructFields = append(s.StructFields, f)
	return s
}

// Field looks up a column by name.
func (s *CollectionSchema) Field(name string) *FieldSchema {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// PrimaryField returns the primary key column.
func (s *CollectionSchema) PrimaryField() *FieldSchema {
	for _, f := range s.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// VectorFields returns the searchable columns in declaration order.
func (s *CollectionSchema) VectorFields() []*FieldSchema {
	var out []*FieldSchema
	for _, f := range s.Fields {
		if f.DataType.IsVector() {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the invariants the server would otherwise reject.
func (s *CollectionSchema) Validate() error {
	if s.Name == "" {
		return fault.New(fault.InvalidArgument, "collection name is empty")
	}
	seen := make(map[string]struct{}, len(s.Fields))
	primaries := 0
	for _, f := range s.Fields {
		if f.Name == "" {
			return fault.Newf(fault.InvalidArgument, "collection %s has a field without name", s.Name)
		}
		if _, ok := seen[f.Name]; ok {
			return fault.Newf(fault.InvalidArgument, "collection %s: duplicate field %s", s.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.PrimaryKey {
			primaries++
			if f.DataType != DataTypeInt64 && f.DataType != DataTypeVarChar {
				return fault.Newf(fault.InvalidArgument, "primary key %s must be Int64 or VarChar, got %s", f.Name, f.DataType)
			}
		}
		if f.DataType.IsDenseVector() && f.Dim() <= 0 {
			return fault.Newf(fault.InvalidArgument, "vector field %s has no dimension", f.Name)
		}
		if f.DataType == DataTypeArray && f.ElementType == DataTypeNone {
			return fault.Newf(fault.InvalidArgument, "array field %s has no element type", f.Name)
		}
	}
	if primaries != 1 {
		return fault.Newf(fault.InvalidArgument, "collection %s must have exactly one primary key, got %d", s.Name, primaries)
	}
	return nil
}
