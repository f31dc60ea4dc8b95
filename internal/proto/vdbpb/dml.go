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

type InsertRequest struct {
	DbName          string       `json:"db_name,omitempty"`
	CollectionName  string       `json:"collection_name,omitempty"`
	PartitionName   string       `json:"partition_name,omitempty"`
	FieldsData      []*FieldData `json:"fields_data,omitempty"`
	NumRows         uint32       `json:"num_rows,omitempty"`
	SchemaTimestamp uint64       `json:"schema_timestamp,omitempty"`
}

type UpsertRequest = InsertRequest

type DeleteRequest struct {
	DbName         string `json:"db_name,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
	PartitionName  string `json:"partition_name,omitempty"`
	Expr           string `json:"expr,omitempty"`
}

type MutationResult struct {
	Status    *Status  `json:"status,omitempty"`
	IDs       *IDs     `json:"IDs,omitempty"`
	SuccIndex []uint32 `json:"succ_index,omitempty"`
	ErrIndex  []uint32 `json:"err_index,omitempty"`
	InsertCnt int64    `json:"insert_cnt,omitempty"`
	DeleteCnt int64    `json:"delete_cnt,omitempty"`
	UpsertCnt int64    `json:"upsert_cnt,omitempty"`
	Timestamp uint64   `json:"timestamp,omitempty"`
}

func (r *MutationResult) GetStatus() *Status { return r.Status }

// PlaceholderGroup carries the query vectors of a search, one
// FieldData row per query.
type PlaceholderGroup struct {
	Vectors *FieldData `json:"vectors,omitempty"`
}

type SearchRequest struct {
	DbName                string            `json:"db_name,omitempty"`
	CollectionName        string            `json:"collection_name,omitempty"`
	PartitionNames        []string          `json:"partition_names,omitempty"`
	Dsl                   string            `json:"dsl,omitempty"`
	PlaceholderGroup      *PlaceholderGroup `json:"placeholder_group,omitempty"`
	OutputFields          []string          `json:"output_fields,omitempty"`
	SearchParams          []*KeyValuePair   `json:"search_params,omitempty"`
	Nq                    int64             `json:"nq,omitempty"`
	GuaranteeTimestamp    uint64            `json:"guarantee_timestamp,omitempty"`
	ConsistencyLevel      int32             `json:"consistency_level,omitempty"`
	UseDefaultConsistency bool              `json:"use_default_consistency,omitempty"`
}

type SearchResults struct {
	Status         *Status           `json:"status,omitempty"`
	Results        *SearchResultData `json:"results,omitempty"`
	CollectionName string            `json:"collection_name,omitempty"`
}

func (r *SearchResults) GetStatus() *Status { return r.Status }

type QueryRequest struct {
	DbName                string          `json:"db_name,omitempty"`
	CollectionName        string          `json:"collection_name,omitempty"`
	Expr                  string          `json:"expr,omitempty"`
	OutputFields          []string        `json:"output_fields,omitempty"`
	PartitionNames        []string        `json:"partition_names,omitempty"`
	GuaranteeTimestamp    uint64          `json:"guarantee_timestamp,omitempty"`
	QueryParams           []*KeyValuePair `json:"query_params,omitempty"`
	ConsistencyLevel      int32           `json:"consistency_level,omitempty"`
	UseDefaultConsistency bool            `json:"use_default_consistency,omitempty"`
}

type QueryResults struct {
	Status         *Status      `json:"status,omitempty"`
	FieldsData     []*FieldData `json:"fields_data,omitempty"`
	CollectionName string       `json:"collection_name,omitempty"`
	OutputFields   []string     `json:"output_fields,omitempty"`
}

func (r *QueryResults) GetStatus() *Status { return r.Status }
