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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodecInsertRequest(t *testing.T) {
	in := &InsertRequest{
		DbName:         "default",
		CollectionName: "book",
		NumRows:        2,
		FieldsData: []*FieldData{
			{
				Type:      5,
				FieldName: "id",
				Scalars:   &ScalarField{LongData: &LongArray{Data: []int64{1, 2}}},
			},
			{
				Type:      101,
				FieldName: "emb",
				Vectors:   &VectorField{Dim: 2, FloatVector: &FloatArray{Data: []float32{0.5, 1, 1.5, 2}}},
			},
			{
				Type:      23,
				FieldName: "meta",
				Scalars:   &ScalarField{JSONData: &JSONArray{Data: [][]byte{[]byte(`{}`), []byte(`{"a":1}`)}}},
				ValidData: []bool{false, true},
			},
		},
	}
	data, err := Codec{}.Marshal(in)
	require.NoError(t, err)

	out := &InsertRequest{}
	require.NoError(t, Codec{}.Unmarshal(data, out))
	assert.Equal(t, in, out)
}

func TestCodecStatus(t *testing.T) {
	data, err := Codec{}.Marshal(&MutationResult{Status: &Status{Code: StatusRateLimit, Reason: "slow down"}})
	require.NoError(t, err)

	out := &MutationResult{}
	require.NoError(t, Codec{}.Unmarshal(data, out))
	assert.False(t, out.GetStatus().OK())
	assert.Equal(t, "slow down", out.GetStatus().Reason)

	var nilStatus *Status
	assert.True(t, nilStatus.OK())
}

func TestCodecGarbage(t *testing.T) {
	err := Codec{}.Unmarshal([]byte{0xc1, 0xc1, 0xc1}, &QueryResults{})
	assert.Error(t, err)
}
