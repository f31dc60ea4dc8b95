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

type CreateIndexRequest struct {
	DbName         string          `json:"db_name,omitempty"`
	CollectionName string          `json:"collection_name,omitempty"`
	FieldName      string          `json:"field_name,omitempty"`
	ExtraParams    []*KeyValuePair `json:"extra_params,omitempty"`
	IndexName      string          `json:"index_name,omitempty"`
}

// IndexRequest addresses the index of a field, by field or index name.
type IndexRequest struct {
	DbName         string `json:"db_name,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
	FieldName      string `json:"field_name,omitempty"`
	IndexName      string `json:"index_name,omitempty"`
}

type IndexDescription struct {
	IndexName            string          `json:"index_name,omitempty"`
	IndexID              int64           `json:"indexID,omitempty"`
	Params               []*KeyValuePair `json:"params,omitempty"`
	FieldName            string          `json:"field_name,omitempty"`
	IndexedRows          int64           `json:"indexed_rows,omitempty"`
	TotalRows            int64           `json:"total_rows,omitempty"`
	State                int32           `json:"state,omitempty"`
	IndexStateFailReason string          `json:"index_state_fail_reason,omitempty"`
	PendingIndexRows     int64           `json:"pending_index_rows,omitempty"`
}

type DescribeIndexResponse struct {
	Status            *Status             `json:"status,omitempty"`
	IndexDescriptions []*IndexDescription `json:"index_descriptions,omitempty"`
}

func (r *DescribeIndexResponse) GetStatus() *Status { return r.Status }

type GetIndexStateResponse struct {
	Status     *Status `json:"status,omitempty"`
	State      int32   `json:"state,omitempty"`
	FailReason string  `json:"fail_reason,omitempty"`
}

func (r *GetIndexStateResponse) GetStatus() *Status { return r.Status }

type GetIndexBuildProgressResponse struct {
	Status      *Status `json:"status,omitempty"`
	IndexedRows int64   `json:"indexed_rows,omitempty"`
	TotalRows   int64   `json:"total_rows,omitempty"`
}

func (r *GetIndexBuildProgressResponse) GetStatus() *Status { return r.Status }
