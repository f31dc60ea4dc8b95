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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearch/vdbclient/fault"
)

func TestVectorDimensionInvariant(t *testing.T) {
	f, err := NewFloatVectorField("emb", nil)
	require.NoError(t, err)

	require.NoError(t, f.Add([]float32{1, 2, 3}))
	err = f.Add([]float32{1, 2})
	assert.Equal(t, fault.DimensionNotEqual, fault.CodeOf(err))
	err = f.Add(nil)
	assert.Equal(t, fault.VectorIsEmpty, fault.CodeOf(err))
	assert.Equal(t, 1, f.Count())
	assert.Equal(t, 3, f.Dim())
}

func TestVectorConstructorRejectsRaggedRows(t *testing.T) {
	_, err := NewInt8VectorField("emb", [][]int8{{1, 2}, {3}})
	assert.Equal(t, fault.DimensionNotEqual, fault.CodeOf(err))

	_, err = NewFloat16VectorField("emb", [][]float32{{}})
	assert.Equal(t, fault.VectorIsEmpty, fault.CodeOf(err))
}

func TestScalarAddAlwaysSucceeds(t *testing.T) {
	b := NewBoolField("flag", nil)
	i := NewInt16Field("age", nil)
	s := NewVarCharField("title", nil)
	for n := 0; n < 3; n++ {
		assert.NoError(t, b.Add(n%2 == 0))
		assert.NoError(t, i.Add(int16(n)))
		assert.NoError(t, s.Add(""))
	}
	assert.Equal(t, 3, b.Count())
	assert.Equal(t, DataTypeInt16, i.Type())
	assert.Equal(t, DataTypeVarChar, s.Type())
	assert.Equal(t, DataTypeString, NewStringField("s", nil).Type())
}

func TestBinaryVectorPackScenario(t *testing.T) {
	f, err := NewBinaryVectorField("bin", nil)
	require.NoError(t, err)
	bits := []bool{true, false, true, true, false, false, false, false}
	require.NoError(t, f.AddBools(bits))

	assert.Equal(t, [][]byte{{0x0D}}, f.Data())
	assert.Equal(t, 8, f.Dim())
	assert.Equal(t, [][]bool{bits}, f.AsBools())
}

func TestHalfVectorFields(t *testing.T) {
	f16, err := NewFloat16VectorField("h", [][]float32{{1, -2}})
	require.NoError(t, err)
	assert.Equal(t, 2, f16.Dim())
	assert.Equal(t, []byte{0x00, 0x3C, 0x00, 0xC0}, f16.Data()[0])

	err = f16.Add([]byte{1, 2, 3})
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
	err = f16.Add([]byte{1, 2})
	assert.Equal(t, fault.DimensionNotEqual, fault.CodeOf(err))

	bf, err := NewBFloat16VectorField("b", nil)
	require.NoError(t, err)
	require.NoError(t, bf.AddFloat32s([]float32{0.5, 4}))
	rows, err := bf.AsFloat32s()
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.5, 4}}, rows)
}

func TestNullableScalar(t *testing.T) {
	f := NewInt64Field("price", []int64{1, 2})
	assert.False(t, f.Nullable())

	f.AddNull()
	require.NoError(t, f.Add(4))
	assert.True(t, f.Nullable())
	assert.Equal(t, []int64{1, 2, 0, 4}, f.Data())
	assert.Equal(t, []bool{true, true, false, true}, f.ValidData())
	assert.True(t, f.IsNull(2))

	err := f.SetValidData([]bool{true})
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
}

func TestJSONField(t *testing.T) {
	f := NewJSONField("meta", nil)
	require.NoError(t, f.AddBytes([]byte(`{"a":1}`)))
	require.NoError(t, f.AddValue(map[string]int{"b": 2}))
	err := f.AddBytes([]byte(`{"a":`))
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
	assert.Equal(t, 2, f.Count())

	var out map[string]int
	require.NoError(t, f.Decode(1, &out))
	assert.Equal(t, 2, out["b"])
}

func TestSparseField(t *testing.T) {
	f := NewSparseFloatVectorField("sp", nil)
	require.NoError(t, f.Add(SparseEmbedding{7: 0.5, 1: 0.25}))
	require.NoError(t, f.Add(SparseEmbedding{3: 1}))
	assert.Equal(t, 2, f.Dim())
	assert.Equal(t, []uint32{1, 7}, f.Data()[0].Indices())
}

func TestArrayRowField(t *testing.T) {
	f := NewArrayField("tags", [][]string{{"a", "b"}, {}})
	assert.Equal(t, DataTypeArray, f.Type())
	assert.Equal(t, DataTypeVarChar, f.ElementType())
	row := f.RowField(0)
	assert.Equal(t, 2, row.Count())
	assert.Equal(t, DataTypeInt32, NewArrayField[int32]("n", nil).ElementType())
}

func TestProgress(t *testing.T) {
	assert.True(t, Progress{}.Done())
	p := Progress{Total: 5, Finished: 3}
	assert.False(t, p.Done())
	assert.InDelta(t, 60.0, p.Percent(), 1e-9)
	p.Finished = 5
	assert.True(t, p.Done())

	var seen []Progress
	m := DefaultProgressMonitor().WithProgress(func(p Progress) { seen = append(seen, p) })
	m.Report(p)
	NoWait().Report(p)
	assert.Len(t, seen, 1)
}

func TestIDArray(t *testing.T) {
	ids := NewIntIDs([]int64{1, 2, 3})
	assert.True(t, ids.IsIntegerID())
	assert.Equal(t, []string{"2", "3"}, ids.Slice(1, 3).Strings())
	assert.Equal(t, 2, NewStrIDs([]string{"x", "y"}).Len())
}
