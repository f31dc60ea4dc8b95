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
	"github.com/bytedance/sonic"
	"github.com/valyala/fastjson"

	"github.com/vearch/vdbclient/fault"
)

// JSONField holds one JSON document per row. A dynamic field carries the
// keys that are not declared in the collection schema.
type JSONField struct {
	scalarColumn[[]byte]
	dynamic bool
}

func NewJSONField(name string, data [][]byte) *JSONField {
	return &JSONField{scalarColumn: scalarColumn[[]byte]{name: name, data: data}}
}

// NewDynamicField creates the column that carries undeclared keys.
func NewDynamicField(name string) *JSONField {
	return &JSONField{scalarColumn: scalarColumn[[]byte]{name: name}, dynamic: true}
}

func (f *JSONField) Type() DataType { return DataTypeJSON }

func (f *JSONField) Accept(v FieldVisitor) error { return v.VisitJSON(f) }

func (f *JSONField) IsDynamic() bool { return f.dynamic }

func (f *JSONField) SetDynamic(dynamic bool) { f.dynamic = dynamic }

// AddBytes appends a row after checking that it is a valid JSON document.
func (f *JSONField) AddBytes(doc []byte) error {
	if err := fastjson.ValidateBytes(doc); err != nil {
		return fault.Wrapf(fault.InvalidArgument, err, "field %s: invalid json row %d", f.name, len(f.data))
	}
	return f.Add(doc)
}

// AddValue encodes v as JSON and appends it.
func (f *JSONField) AddValue(v any) error {
	doc, err := sonic.Marshal(v)
	if err != nil {
		return fault.Wrapf(fault.InvalidArgument, err, "field %s: encode json row %d", f.name, len(f.data))
	}
	return f.Add(doc)
}

// Decode unmarshals row i into out.
func (f *JSONField) Decode(i int, out any) error {
	if err := sonic.Unmarshal(f.data[i], out); err != nil {
		return fault.Wrapf(fault.InvalidArgument, err, "field %s: decode json row %d", f.name, i)
	}
	return nil
}
