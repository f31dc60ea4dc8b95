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

// MetricType names the distance function of a vector index.
type MetricType string

const (
	MetricDefault   MetricType = ""
	MetricL2        MetricType = "L2"
	MetricIP        MetricType = "IP"
	MetricCosine    MetricType = "COSINE"
	MetricHamming   MetricType = "HAMMING"
	MetricJaccard   MetricType = "JACCARD"
	MetricMHJaccard MetricType = "MHJACCARD"
	MetricBM25      MetricType = "BM25"
)

// IsBinary reports whether the metric applies to binary vectors.
func (m MetricType) IsBinary() bool {
	return m == MetricHamming || m == MetricJaccard || m == MetricMHJaccard
}

// IndexType names an index algorithm. The server receives the name as is.
type IndexType string

const (
	IndexFlat           IndexType = "FLAT"
	IndexIvfFlat        IndexType = "IVF_FLAT"
	IndexIvfSQ8         IndexType = "IVF_SQ8"
	IndexIvfPQ          IndexType = "IVF_PQ"
	IndexHNSW           IndexType = "HNSW"
	IndexDiskANN        IndexType = "DISKANN"
	IndexAutoIndex      IndexType = "AUTOINDEX"
	IndexBinFlat        IndexType = "BIN_FLAT"
	IndexBinIvfFlat     IndexType = "BIN_IVF_FLAT"
	IndexSparseInverted IndexType = "SPARSE_INVERTED_INDEX"
	IndexSparseWand     IndexType = "SPARSE_WAND"
	IndexTrie           IndexType = "Trie"
	IndexSTLSort        IndexType = "STL_SORT"
	IndexInverted       IndexType = "INVERTED"
	IndexBitmap         IndexType = "BITMAP"
)

// Index param keys.
const (
	IndexParamIndexType  = "index_type"
	IndexParamMetricType = "metric_type"
	IndexParamParams     = "params"
)

// IndexStateCode is the build state of an index.
type IndexStateCode int32

const (
	IndexStateNone       IndexStateCode = 0
	IndexStateUnissued   IndexStateCode = 1
	IndexStateInProgress IndexStateCode = 2
	IndexStateFinished   IndexStateCode = 3
	IndexStateFailed     IndexStateCode = 4
	IndexStateRetry      IndexStateCode = 5
)

func (c IndexStateCode) String() string {
	switch c {
	case IndexStateNone:
		return "None"
	case IndexStateUnissued:
		return "Unissued"
	case IndexStateInProgress:
		return "InProgress"
	case IndexStateFinished:
		return "Finished"
	case IndexStateFailed:
		return "Failed"
	case IndexStateRetry:
		return "Retry"
	}
	return "Unknown"
}

// IndexState is the build state of one index plus the failure reason.
type IndexState struct {
	Code   IndexStateCode
	Reason string
}

// IndexDesc describes an index on one field.
type IndexDesc struct {
	FieldName  string
	IndexName  string
	IndexID    int64
	IndexType  IndexType
	MetricType MetricType
	Params     map[string]string

	// Filled by DescribeIndex.
	State       IndexStateCode
	FailReason  string
	TotalRows   int64
	IndexedRows int64
	PendingRows int64
}

func NewIndexDesc(fieldName, indexName string, indexType IndexType, metric MetricType) *IndexDesc {
	return &IndexDesc{
		FieldName:  fieldName,
		IndexName:  indexName,
		IndexType:  indexType,
		MetricType: metric,
		Params:     make(map[string]string),
	}
}

func (d *IndexDesc) WithParam(key, value string) *IndexDesc {
	if d.Params == nil {
		d.Params = make(map[string]string)
	}
	d.Params[key] = value
	return d
}

// IndexProgress reports rows indexed so far.
type IndexProgress struct {
	TotalRows   int64
	IndexedRows int64
}
