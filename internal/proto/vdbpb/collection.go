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

type CreateDatabaseRequest struct {
	DbName     string          `json:"db_name,omitempty"`
	Properties []*KeyValuePair `json:"properties,omitempty"`
}

type DropDatabaseRequest struct {
	DbName string `json:"db_name,omitempty"`
}

type ListDatabasesRequest struct{}

type ListDatabasesResponse struct {
	Status      *Status  `json:"status,omitempty"`
	DbNames     []string `json:"db_names,omitempty"`
	CreatedTime []uint64 `json:"created_timestamp,omitempty"`
	DbIDs       []int64  `json:"db_ids,omitempty"`
}

func (r *ListDatabasesResponse) GetStatus() *Status { return r.Status }

type DescribeDatabaseRequest struct {
	DbName string `json:"db_name,omitempty"`
}

type DescribeDatabaseResponse struct {
	Status           *Status         `json:"status,omitempty"`
	DbName           string          `json:"db_name,omitempty"`
	DbID             int64           `json:"dbID,omitempty"`
	CreatedTimestamp uint64          `json:"created_timestamp,omitempty"`
	Properties       []*KeyValuePair `json:"properties,omitempty"`
}

func (r *DescribeDatabaseResponse) GetStatus() *Status { return r.Status }

type CreateCollectionRequest struct {
	DbName           string            `json:"db_name,omitempty"`
	CollectionName   string            `json:"collection_name,omitempty"`
	Schema           *CollectionSchema `json:"schema,omitempty"`
	ShardsNum        int32             `json:"shards_num,omitempty"`
	ConsistencyLevel int32             `json:"consistency_level,omitempty"`
	Properties       []*KeyValuePair   `json:"properties,omitempty"`
	NumPartitions    int64             `json:"num_partitions,omitempty"`
}

// CollectionRequest addresses a single collection. It is shared by the
// drop, has, describe, load, release, stats and flush-less calls.
type CollectionRequest struct {
	DbName         string `json:"db_name,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
}

type LoadCollectionRequest struct {
	DbName         string   `json:"db_name,omitempty"`
	CollectionName string   `json:"collection_name,omitempty"`
	ReplicaNumber  int32    `json:"replica_number,omitempty"`
	ResourceGroups []string `json:"resource_groups,omitempty"`
	Refresh        bool     `json:"refresh,omitempty"`
	LoadFields     []string `json:"load_fields,omitempty"`
}

type BoolResponse struct {
	Status *Status `json:"status,omitempty"`
	Value  bool    `json:"value,omitempty"`
}

func (r *BoolResponse) GetStatus() *Status { return r.Status }

type DescribeCollectionResponse struct {
	Status           *Status           `json:"status,omitempty"`
	Schema           *CollectionSchema `json:"schema,omitempty"`
	CollectionID     int64             `json:"collectionID,omitempty"`
	Aliases          []string          `json:"aliases,omitempty"`
	CreatedTimestamp uint64            `json:"created_timestamp,omitempty"`
	ShardsNum        int32             `json:"shards_num,omitempty"`
	ConsistencyLevel int32             `json:"consistency_level,omitempty"`
	CollectionName   string            `json:"collection_name,omitempty"`
	Properties       []*KeyValuePair   `json:"properties,omitempty"`
	DbName           string            `json:"db_name,omitempty"`
	NumPartitions    int64             `json:"num_partitions,omitempty"`
}

func (r *DescribeCollectionResponse) GetStatus() *Status { return r.Status }

type ShowCollectionsRequest struct {
	DbName          string   `json:"db_name,omitempty"`
	CollectionNames []string `json:"collection_names,omitempty"`
}

type ShowCollectionsResponse struct {
	Status              *Status  `json:"status,omitempty"`
	CollectionNames     []string `json:"collection_names,omitempty"`
	CollectionIds       []int64  `json:"collection_ids,omitempty"`
	CreatedTimestamps   []uint64 `json:"created_timestamps,omitempty"`
	InMemoryPercentages []int64  `json:"inMemory_percentages,omitempty"`
}

func (r *ShowCollectionsResponse) GetStatus() *Status { return r.Status }

type RenameCollectionRequest struct {
	DbName    string `json:"db_name,omitempty"`
	OldName   string `json:"oldName,omitempty"`
	NewName   string `json:"newName,omitempty"`
	NewDBName string `json:"newDBName,omitempty"`
}

type StatisticsResponse struct {
	Status *Status         `json:"status,omitempty"`
	Stats  []*KeyValuePair `json:"stats,omitempty"`
}

func (r *StatisticsResponse) GetStatus() *Status { return r.Status }

type AlterCollectionRequest struct {
	DbName         string          `json:"db_name,omitempty"`
	CollectionName string          `json:"collection_name,omitempty"`
	Properties     []*KeyValuePair `json:"properties,omitempty"`
	DeleteKeys     []string        `json:"delete_keys,omitempty"`
}

type GetLoadStateRequest struct {
	DbName         string   `json:"db_name,omitempty"`
	CollectionName string   `json:"collection_name,omitempty"`
	PartitionNames []string `json:"partition_names,omitempty"`
}

type GetLoadStateResponse struct {
	Status *Status `json:"status,omitempty"`
	State  int32   `json:"state,omitempty"`
}

func (r *GetLoadStateResponse) GetStatus() *Status { return r.Status }

// PartitionRequest addresses one partition of a collection.
type PartitionRequest struct {
	DbName         string `json:"db_name,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
	PartitionName  string `json:"partition_name,omitempty"`
}

type ShowPartitionsRequest struct {
	DbName         string   `json:"db_name,omitempty"`
	CollectionName string   `json:"collection_name,omitempty"`
	PartitionNames []string `json:"partition_names,omitempty"`
}

type ShowPartitionsResponse struct {
	Status              *Status  `json:"status,omitempty"`
	PartitionNames      []string `json:"partition_names,omitempty"`
	PartitionIDs        []int64  `json:"partitionIDs,omitempty"`
	CreatedTimestamps   []uint64 `json:"created_timestamps,omitempty"`
	InMemoryPercentages []int64  `json:"inMemory_percentages,omitempty"`
}

func (r *ShowPartitionsResponse) GetStatus() *Status { return r.Status }

type LoadPartitionsRequest struct {
	DbName         string   `json:"db_name,omitempty"`
	CollectionName string   `json:"collection_name,omitempty"`
	PartitionNames []string `json:"partition_names,omitempty"`
	ReplicaNumber  int32    `json:"replica_number,omitempty"`
	Refresh        bool     `json:"refresh,omitempty"`
}

type ReleasePartitionsRequest struct {
	DbName         string   `json:"db_name,omitempty"`
	CollectionName string   `json:"collection_name,omitempty"`
	PartitionNames []string `json:"partition_names,omitempty"`
}

type AliasRequest struct {
	DbName         string `json:"db_name,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
	Alias          string `json:"alias,omitempty"`
}

type ListAliasesRequest struct {
	DbName         string `json:"db_name,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
}

type ListAliasesResponse struct {
	Status         *Status  `json:"status,omitempty"`
	DbName         string   `json:"db_name,omitempty"`
	CollectionName string   `json:"collection_name,omitempty"`
	Aliases        []string `json:"aliases,omitempty"`
}

func (r *ListAliasesResponse) GetStatus() *Status { return r.Status }

type DescribeAliasResponse struct {
	Status     *Status `json:"status,omitempty"`
	DbName     string  `json:"db_name,omitempty"`
	Alias      string  `json:"alias,omitempty"`
	Collection string  `json:"collection,omitempty"`
}

func (r *DescribeAliasResponse) GetStatus() *Status { return r.Status }
