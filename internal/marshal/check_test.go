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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
)

func bookSchema() *entity.CollectionSchema {
	return entity.NewCollectionSchema("book").
		WithField(entity.NewFieldSchema("id", entity.DataTypeInt64).WithPrimaryKey(true).WithAutoID(true)).
		WithField(entity.NewFieldSchema("title", entity.DataTypeVarChar).WithMaxLength(64)).
		WithField(entity.NewFieldSchema("price", entity.DataTypeDouble).WithNullable(true)).
		WithField(entity.NewFieldSchema("emb", entity.DataTypeFloatVector).WithDim(2))
}

func bookFields(t *testing.T, rows int) []entity.Field {
	vectors := make([][]float32, rows)
	titles := make([]string, rows)
	for i := range vectors {
		vectors[i] = []float32{float32(i), 1}
		titles[i] = "t"
	}
	emb, err := entity.NewFloatVectorField("emb", vectors)
	require.NoError(t, err)
	return []entity.Field{entity.NewVarCharField("title", titles), emb}
}

func TestCheckInsertInput(t *testing.T) {
	schema := bookSchema()
	require.NoError(t, CheckInsertInput(schema, bookFields(t, 2), false))

	withID := append(bookFields(t, 2), entity.NewInt64Field("id", []int64{1, 2}))
	assert.Equal(t, fault.DataUnmatchSchema, fault.CodeOf(CheckInsertInput(schema, withID, false)))
	assert.NoError(t, CheckInsertInput(schema, withID, true))

	// upsert needs the auto-id key
	assert.Equal(t, fault.DataUnmatchSchema, fault.CodeOf(CheckInsertInput(schema, bookFields(t, 2), true)))
}

func TestCheckInsertInputMismatch(t *testing.T) {
	schema := bookSchema()
	emb3, err := entity.NewFloatVectorField("emb", [][]float32{{1, 2, 3}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		fields []entity.Field
		code   fault.Code
	}{
		{"unknown field", append(bookFields(t, 1), entity.NewBoolField("extra", []bool{true})), fault.DataUnmatchSchema},
		{"missing field", bookFields(t, 1)[:1], fault.DataUnmatchSchema},
		{"type mismatch", []entity.Field{entity.NewInt64Field("title", []int64{1}), bookFields(t, 1)[1]}, fault.DataUnmatchSchema},
		{"dim mismatch", []entity.Field{entity.NewVarCharField("title", []string{"a"}), emb3}, fault.DimensionNotEqual},
		{"row count", []entity.Field{entity.NewVarCharField("title", []string{"a", "b"}), bookFields(t, 1)[1]}, fault.InvalidArgument},
		{"dynamic disabled", append(bookFields(t, 1), entity.NewDynamicField(entity.DynamicFieldName)), fault.DataUnmatchSchema},
		{"dynamic not json", append(bookFields(t, 1), entity.NewBoolField(entity.DynamicFieldName, []bool{true})), fault.InvalidArgument},
		{"empty", nil, fault.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInsertInput(schema, tt.fields, false)
			assert.Equal(t, tt.code, fault.CodeOf(err), "%v", err)
		})
	}
}

func TestCheckInsertInputDynamic(t *testing.T) {
	schema := bookSchema().WithDynamicField(true)
	dyn := entity.NewDynamicField(entity.DynamicFieldName)
	require.NoError(t, dyn.AddValue(map[string]int{"year": 2001}))
	assert.NoError(t, CheckInsertInput(schema, append(bookFields(t, 1), dyn), false))
}

func TestPrimaryKeysExpr(t *testing.T) {
	expr, err := PrimaryKeysExpr("id", entity.NewIntIDs([]int64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "id in [1,2,3]", expr)

	expr, err = PrimaryKeysExpr("name", entity.NewStrIDs([]string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, `name in ["a","b"]`, expr)

	_, err = PrimaryKeysExpr("id", entity.NewIntIDs(nil))
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
}
