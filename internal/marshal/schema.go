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
	"github.com/bytedance/sonic"
	"github.com/spf13/cast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// KVPairs renders params as key/value pairs in key order. Strings pass
// through; maps and slices are encoded as JSON; anything else is formatted.
func KVPairs(params map[string]any) []*vdbpb.KeyValuePair {
	if len(params) == 0 {
		return nil
	}
	keys := maps.Keys(params)
	slices.Sort(keys)
	out := make([]*vdbpb.KeyValuePair, 0, len(keys))
	for _, k := range keys {
		out = append(out, &vdbpb.KeyValuePair{Key: k, Value: ParamString(params[k])})
	}
	return out
}

// StringKVPairs is KVPairs for string maps.
func StringKVPairs(params map[string]string) []*vdbpb.KeyValuePair {
	if len(params) == 0 {
		return nil
	}
	keys := maps.Keys(params)
	slices.Sort(keys)
	out := make([]*vdbpb.KeyValuePair, 0, len(keys))
	for _, k := range keys {
		out = append(out, &vdbpb.KeyValuePair{Key: k, Value: params[k]})
	}
	return out
}

// ParamString formats one param value.
func ParamString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any, map[string]string, []any, []string, []int, []int64, []float32, []float64:
		s, err := sonic.MarshalString(v)
		if err == nil {
			return s
		}
	}
	return cast.ToString(v)
}

// KVMap collects pairs into a map; later keys win.
func KVMap(kvs []*vdbpb.KeyValuePair) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		if kv != nil {
			out[kv.Key] = kv.Value
		}
	}
	return out
}

func FieldSchemaToWire(f *entity.FieldSchema) *vdbpb.FieldSchema {
	return &vdbpb.FieldSchema{
		Name:            f.Name,
		Description:     f.Description,
		DataType:        int32(f.DataType),
		ElementType:     int32(f.ElementType),
		IsPrimaryKey:    f.PrimaryKey,
		AutoID:          f.AutoID,
		IsPartitionKey:  f.PartitionKey,
		IsClusteringKey: f.ClusteringKey,
		Nullable:        f.Nullable,
		IsDynamic:       f.IsDynamic,
		TypeParams:      StringKVPairs(f.TypeParams),
		DefaultValue:    defaultValueToWire(f.DataType, f.DefaultValue),
	}
}

func FieldSchemaFromWire(f *vdbpb.FieldSchema) *entity.FieldSchema {
	dt := entity.DataType(f.DataType)
	return &entity.FieldSchema{
		Name:          f.Name,
		Description:   f.Description,
		DataType:      dt,
		ElementType:   entity.DataType(f.ElementType),
		PrimaryKey:    f.IsPrimaryKey,
		AutoID:        f.AutoID,
		PartitionKey:  f.IsPartitionKey,
		ClusteringKey: f.IsClusteringKey,
		Nullable:      f.Nullable,
		IsDynamic:     f.IsDynamic,
		TypeParams:    KVMap(f.TypeParams),
		DefaultValue:  defaultValueFromWire(f.DefaultValue),
	}
}

func SchemaToWire(s *entity.CollectionSchema) *vdbpb.CollectionSchema {
	out := &vdbpb.CollectionSchema{
		Name:               s.Name,
		Description:        s.Description,
		EnableDynamicField: s.EnableDynamicField,
	}
	for _, f := range s.Fields {
		out.Fields = append(out.Fields, FieldSchemaToWire(f))
		if f.PrimaryKey && f.AutoID {
			out.AutoID = true
		}
	}
	for _, sf := range s.StructFields {
		w := &vdbpb.StructArrayFieldSchema{Name: sf.Name, Description: sf.Description}
		for _, f := range sf.Fields {
			w.Fields = append(w.Fields, FieldSchemaToWire(f))
		}
		if sf.MaxCapacity > 0 {
			w.TypeParams = []*vdbpb.KeyValuePair{{Key: entity.TypeParamMaxCapacity, Value: cast.ToString(sf.MaxCapacity)}}
		}
		out.StructArrayFields = append(out.StructArrayFields, w)
	}
	return out
}

func SchemaFromWire(s *vdbpb.CollectionSchema) *entity.CollectionSchema {
	if s == nil {
		return nil
	}
	out := &entity.CollectionSchema{
		Name:               s.Name,
		Description:        s.Description,
		EnableDynamicField: s.EnableDynamicField,
	}
	for _, f := range s.Fields {
		out.Fields = append(out.Fields, FieldSchemaFromWire(f))
	}
	for _, w := range s.StructArrayFields {
		sf := &entity.StructFieldSchema{Name: w.Name, Description: w.Description}
		for _, f := range w.Fields {
			sf.Fields = append(sf.Fields, FieldSchemaFromWire(f))
		}
		sf.MaxCapacity = cast.ToInt(KVMap(w.TypeParams)[entity.TypeParamMaxCapacity])
		out.StructFields = append(out.StructFields, sf)
	}
	return out
}

func defaultValueToWire(dt entity.DataType, v any) *vdbpb.ValueField {
	if v == nil {
		return nil
	}
	switch dt {
	case entity.DataTypeBool:
		b := cast.ToBool(v)
		return &vdbpb.ValueField{BoolData: &b}
	case entity.DataTypeInt8, entity.DataTypeInt16, entity.DataTypeInt32:
		n := cast.ToInt32(v)
		return &vdbpb.ValueField{IntData: &n}
	case entity.DataTypeInt64:
		n := cast.ToInt64(v)
		return &vdbpb.ValueField{LongData: &n}
	case entity.DataTypeFloat:
		n := cast.ToFloat32(v)
		return &vdbpb.ValueField{FloatData: &n}
	case entity.DataTypeDouble:
		n := cast.ToFloat64(v)
		return &vdbpb.ValueField{DoubleData: &n}
	case entity.DataTypeVarChar, entity.DataTypeString:
		s := cast.ToString(v)
		return &vdbpb.ValueField{StringData: &s}
	case entity.DataTypeJSON:
		b, err := sonic.Marshal(v)
		if err != nil {
			return nil
		}
		return &vdbpb.ValueField{BytesData: b}
	}
	return nil
}

func defaultValueFromWire(v *vdbpb.ValueField) any {
	switch {
	case v == nil:
		return nil
	case v.BoolData != nil:
		return *v.BoolData
	case v.IntData != nil:
		return *v.IntData
	case v.LongData != nil:
		return *v.LongData
	case v.FloatData != nil:
		return *v.FloatData
	case v.DoubleData != nil:
		return *v.DoubleData
	case v.StringData != nil:
		return *v.StringData
	case v.BytesData != nil:
		return v.BytesData
	}
	return nil
}
