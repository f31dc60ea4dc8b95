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

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

func IDsToWire(ids entity.IDArray) *vdbpb.IDs {
	if ids.IsIntegerID() {
		return &vdbpb.IDs{IntID: &vdbpb.LongArray{Data: ids.IntIDs()}}
	}
	return &vdbpb.IDs{StrID: &vdbpb.StringArray{Data: ids.StrIDs()}}
}

// IDsFromWire returns an empty integer array when ids is nil.
func IDsFromWire(ids *vdbpb.IDs) entity.IDArray {
	switch {
	case ids == nil:
		return entity.NewIntIDs(nil)
	case ids.StrID != nil:
		return entity.NewStrIDs(ids.StrID.Data)
	case ids.IntID != nil:
		return entity.NewIntIDs(ids.IntID.Data)
	}
	return entity.NewIntIDs(nil)
}

// PrimaryKeysExpr builds the filter selecting the given primary keys.
func PrimaryKeysExpr(pk string, ids entity.IDArray) (string, error) {
	if ids.Len() == 0 {
		return "", fault.New(fault.InvalidArgument, "primary key list is empty")
	}
	var list string
	var err error
	if ids.IsIntegerID() {
		list, err = sonic.MarshalString(ids.IntIDs())
	} else {
		list, err = sonic.MarshalString(ids.StrIDs())
	}
	if err != nil {
		return "", fault.Wrap(fault.InvalidArgument, "encode primary keys", err)
	}
	return pk + " in " + list, nil
}

// SearchResultsFromWire cuts the flat result columns into one result per
// query using topks.
func SearchResultsFromWire(data *vdbpb.SearchResultData) (entity.SearchResults, error) {
	var out entity.SearchResults
	if data == nil {
		return out, nil
	}
	ids := IDsFromWire(data.Ids)
	offset := 0
	for q, k64 := range data.Topks {
		if k64 < 0 || k64 > int64(ids.Len()-offset) {
			return out, fault.Newf(fault.InvalidArgument, "query %d: topk %d overruns %d results", q, k64, ids.Len())
		}
		k := int(k64)
		end := offset + k
		if end > ids.Len() || (len(data.Scores) > 0 && end > len(data.Scores)) {
			return out, fault.Newf(fault.InvalidArgument, "query %d: topk %d overruns %d results", q, k, ids.Len())
		}
		single := entity.SingleResult{IDs: ids.Slice(offset, end)}
		if len(data.Scores) > 0 {
			single.Scores = data.Scores[offset:end]
		}
		for _, fd := range data.FieldsData {
			sliced, err := sliceFieldData(fd, offset, end)
			if err != nil {
				return out, err
			}
			f, err := FromWire(sliced)
			if err != nil {
				return out, err
			}
			single.Fields = append(single.Fields, f)
		}
		out.Results = append(out.Results, single)
		offset = end
	}
	return out, nil
}

// QueryResultsFromWire converts the output columns of a query.
func QueryResultsFromWire(fds []*vdbpb.FieldData) (entity.QueryResults, error) {
	fields, err := FieldsFromWire(fds)
	if err != nil {
		return entity.QueryResults{}, err
	}
	return entity.QueryResults{Fields: fields}, nil
}

// subSlice returns rows [start, end) of data, width elements per row. The
// first out of range cut is kept in *bad and later cuts are skipped.
func subSlice[T any](bad *bool, data []T, start, end, width int) []T {
	if len(data) == 0 || *bad {
		return data
	}
	if width < 0 || end*width > len(data) {
		*bad = true
		return nil
	}
	return data[start*width : end*width]
}

// sliceFieldData returns rows [start, end) of a wire column.
func sliceFieldData(fd *vdbpb.FieldData, start, end int) (*vdbpb.FieldData, error) {
	if start < 0 || end < start {
		return nil, fault.Newf(fault.InvalidArgument, "field %s: invalid rows [%d, %d)", fd.FieldName, start, end)
	}
	var bad bool
	out := &vdbpb.FieldData{Type: fd.Type, FieldName: fd.FieldName, FieldID: fd.FieldID, IsDynamic: fd.IsDynamic}
	out.ValidData = subSlice(&bad, fd.ValidData, start, end, 1)
	if s := fd.Scalars; s != nil {
		o := &vdbpb.ScalarField{}
		switch {
		case s.BoolData != nil:
			o.BoolData = &vdbpb.BoolArray{Data: subSlice(&bad, s.BoolData.Data, start, end, 1)}
		case s.IntData != nil:
			o.IntData = &vdbpb.IntArray{Data: subSlice(&bad, s.IntData.Data, start, end, 1)}
		case s.LongData != nil:
			o.LongData = &vdbpb.LongArray{Data: subSlice(&bad, s.LongData.Data, start, end, 1)}
		case s.FloatData != nil:
			o.FloatData = &vdbpb.FloatArray{Data: subSlice(&bad, s.FloatData.Data, start, end, 1)}
		case s.DoubleData != nil:
			o.DoubleData = &vdbpb.DoubleArray{Data: subSlice(&bad, s.DoubleData.Data, start, end, 1)}
		case s.StringData != nil:
			o.StringData = &vdbpb.StringArray{Data: subSlice(&bad, s.StringData.Data, start, end, 1)}
		case s.BytesData != nil:
			o.BytesData = &vdbpb.BytesArray{Data: subSlice(&bad, s.BytesData.Data, start, end, 1)}
		case s.JSONData != nil:
			o.JSONData = &vdbpb.JSONArray{Data: subSlice(&bad, s.JSONData.Data, start, end, 1)}
		case s.ArrayData != nil:
			o.ArrayData = &vdbpb.ArrayArray{Data: subSlice(&bad, s.ArrayData.Data, start, end, 1), ElementType: s.ArrayData.ElementType}
		}
		out.Scalars = o
	}
	if v := fd.Vectors; v != nil {
		dim := int(v.Dim)
		o := &vdbpb.VectorField{Dim: v.Dim}
		switch {
		case v.FloatVector != nil:
			o.FloatVector = &vdbpb.FloatArray{Data: subSlice(&bad, v.FloatVector.Data, start, end, dim)}
		case v.BinaryVector != nil:
			o.BinaryVector = subSlice(&bad, v.BinaryVector, start, end, dim/8)
		case v.Float16Vector != nil:
			o.Float16Vector = subSlice(&bad, v.Float16Vector, start, end, 2*dim)
		case v.Bfloat16Vector != nil:
			o.Bfloat16Vector = subSlice(&bad, v.Bfloat16Vector, start, end, 2*dim)
		case v.Int8Vector != nil:
			o.Int8Vector = subSlice(&bad, v.Int8Vector, start, end, dim)
		case v.SparseFloatVector != nil:
			o.SparseFloatVector = &vdbpb.SparseFloatArray{Contents: subSlice(&bad, v.SparseFloatVector.Contents, start, end, 1), Dim: v.SparseFloatVector.Dim}
		case v.VectorArray != nil:
			o.VectorArray = &vdbpb.VectorArray{Dim: v.VectorArray.Dim, Data: subSlice(&bad, v.VectorArray.Data, start, end, 1), ElementType: v.VectorArray.ElementType}
		}
		out.Vectors = o
	}
	if sa := fd.StructArrays; sa != nil {
		o := &vdbpb.StructArrayField{}
		for _, sub := range sa.Fields {
			s, err := sliceFieldData(sub, start, end)
			if err != nil {
				return nil, err
			}
			o.Fields = append(o.Fields, s)
		}
		out.StructArrays = o
	}
	if bad {
		return nil, fault.Newf(fault.InvalidArgument, "field %s: rows [%d, %d) out of range", fd.FieldName, start, end)
	}
	return out, nil
}
