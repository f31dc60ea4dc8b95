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

type FlushRequest struct {
	DbName          string   `json:"db_name,omitempty"`
	CollectionNames []string `json:"collection_names,omitempty"`
}

type FlushResponse struct {
	Status          *Status            `json:"status,omitempty"`
	DbName          string             `json:"db_name,omitempty"`
	CollSegIDs      map[string][]int64 `json:"coll_segIDs,omitempty"`
	FlushCollSegIDs map[string][]int64 `json:"flush_coll_segIDs,omitempty"`
	CollSealTimes   map[string]int64   `json:"coll_seal_times,omitempty"`
	CollFlushTs     map[string]uint64  `json:"coll_flush_ts,omitempty"`
}

func (r *FlushResponse) GetStatus() *Status { return r.Status }

type GetFlushStateRequest struct {
	DbName         string  `json:"db_name,omitempty"`
	CollectionName string  `json:"collection_name,omitempty"`
	SegmentIDs     []int64 `json:"segmentIDs,omitempty"`
	FlushTs        uint64  `json:"flush_ts,omitempty"`
}

type GetFlushStateResponse struct {
	Status  *Status `json:"status,omitempty"`
	Flushed bool    `json:"flushed,omitempty"`
}

func (r *GetFlushStateResponse) GetStatus() *Status { return r.Status }

type PersistentSegmentInfo struct {
	SegmentID    int64 `json:"segmentID,omitempty"`
	CollectionID int64 `json:"collectionID,omitempty"`
	PartitionID  int64 `json:"partitionID,omitempty"`
	NumRows      int64 `json:"num_rows,omitempty"`
	State        int32 `json:"state,omitempty"`
}

type GetPersistentSegmentInfoResponse struct {
	Status *Status                  `json:"status,omitempty"`
	Infos  []*PersistentSegmentInfo `json:"infos,omitempty"`
}

func (r *GetPersistentSegmentInfoResponse) GetStatus() *Status { return r.Status }

type ManualCompactionRequest struct {
	DbName          string `json:"db_name,omitempty"`
	CollectionName  string `json:"collection_name,omitempty"`
	MajorCompaction bool   `json:"majorCompaction,omitempty"`
}

type ManualCompactionResponse struct {
	Status       *Status `json:"status,omitempty"`
	CompactionID int64   `json:"compactionID,omitempty"`
	PlanCount    int32   `json:"compactionPlanCount,omitempty"`
}

func (r *ManualCompactionResponse) GetStatus() *Status { return r.Status }

type GetCompactionStateRequest struct {
	CompactionID int64 `json:"compactionID,omitempty"`
}

type GetCompactionStateResponse struct {
	Status          *Status `json:"status,omitempty"`
	State           int32   `json:"state,omitempty"`
	ExecutingPlanNo int64   `json:"executingPlanNo,omitempty"`
	TimeoutPlanNo   int64   `json:"timeoutPlanNo,omitempty"`
	CompletedPlanNo int64   `json:"completedPlanNo,omitempty"`
	FailedPlanNo    int64   `json:"failedPlanNo,omitempty"`
}

func (r *GetCompactionStateResponse) GetStatus() *Status { return r.Status }
