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
	"encoding/binary"
	"math"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
)

const sparsePairSize = 8

// EncodeSparseRow packs a sparse row as (u32 index, f32 value) pairs, little
// endian, in ascending index order.
func EncodeSparseRow(row entity.SparseEmbedding) []byte {
	out := make([]byte, sparsePairSize*len(row))
	for i, idx := range row.Indices() {
		k := i * sparsePairSize
		binary.LittleEndian.PutUint32(out[k:], idx)
		binary.LittleEndian.PutUint32(out[k+4:], math.Float32bits(row[idx]))
	}
	return out
}

// DecodeSparseRow is the inverse of EncodeSparseRow.
func DecodeSparseRow(data []byte) (entity.SparseEmbedding, error) {
	if len(data)%sparsePairSize != 0 {
		return nil, fault.Newf(fault.InvalidArgument, "sparse row length %d is not a multiple of %d", len(data), sparsePairSize)
	}
	row := make(entity.SparseEmbedding, len(data)/sparsePairSize)
	for k := 0; k < len(data); k += sparsePairSize {
		idx := binary.LittleEndian.Uint32(data[k:])
		row[idx] = math.Float32frombits(binary.LittleEndian.Uint32(data[k+4:]))
	}
	return row, nil
}
