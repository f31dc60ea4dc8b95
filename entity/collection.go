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
	"github.com/spf13/cast"
)

// ConsistencyLevel is the read freshness the server guarantees.
type ConsistencyLevel int32

const (
	ConsistencyStrong     ConsistencyLevel = 0
	ConsistencySession    ConsistencyLevel = 1
	ConsistencyBounded    ConsistencyLevel = 2
	ConsistencyEventually ConsistencyLevel = 3
	ConsistencyCustomized ConsistencyLevel = 4
)

// CollectionDesc is the result of DescribeCollection.
type CollectionDesc struct {
	ID               int64
	Schema           *CollectionSchema
	Aliases          []string
	ShardsNum        int32
	ConsistencyLevel ConsistencyLevel
	CreatedTime      uint64
	Properties       map[string]string
	DBName           string
}

// CollectionInfo is one entry of ListCollections.
type CollectionInfo struct {
	Name               string
	ID                 int64
	CreatedTime        uint64
	InMemoryPercentage int64
}

// Loaded reports whether the collection is fully in memory.
func (c CollectionInfo) Loaded() bool {
	return c.InMemoryPercentage >= 100
}

// PartitionInfo is one entry of ListPartitions.
type PartitionInfo struct {
	Name               string
	ID                 int64
	CreatedTime        uint64
	InMemoryPercentage int64
}

func (p PartitionInfo) Loaded() bool {
	return p.InMemoryPercentage >= 100
}

// Stats holds the key/value statistics of a collection or partition.
type Stats map[string]string

const StatRowCount = "row_count"

// RowCount parses the row_count statistic.
func (s Stats) RowCount() int64 {
	return cast.ToInt64(s[StatRowCount])
}

// LoadStateCode is the load state of a collection or partitions.
type LoadStateCode int32

const (
	LoadStateNotExist LoadStateCode = 0
	LoadStateNotLoad  LoadStateCode = 1
	LoadStateLoading  LoadStateCode = 2
	LoadStateLoaded   LoadStateCode = 3
)

func (c LoadStateCode) String() string {
	switch c {
	case LoadStateNotExist:
		return "NotExist"
	case LoadStateNotLoad:
		return "NotLoad"
	case LoadStateLoading:
		return "Loading"
	case LoadStateLoaded:
		return "Loaded"
	}
	return "Unknown"
}

// AliasDesc describes one alias.
type AliasDesc struct {
	Name           string
	CollectionName string
	DBName         string
}

// DatabaseDesc describes one database.
type DatabaseDesc struct {
	Name        string
	ID          int64
	CreatedTime uint64
	Properties  map[string]string
}

// SegmentState is the persistence state of a segment.
type SegmentState int32

const (
	SegmentStateUnknown  SegmentState = 0
	SegmentStateNotExist SegmentState = 1
	SegmentStateGrowing  SegmentState = 2
	SegmentStateSealed   SegmentState = 3
	SegmentStateFlushed  SegmentState = 4
	SegmentStateFlushing SegmentState = 5
	SegmentStateDropped  SegmentState = 6
)

// SegmentInfo describes one persisted segment.
type SegmentInfo struct {
	CollectionID int64
	PartitionID  int64
	SegmentID    int64
	RowCount     int64
	State        SegmentState
}

// CompactionStateCode is the state of a compaction job.
type CompactionStateCode int32

const (
	CompactionStateUnknown   CompactionStateCode = 0
	CompactionStateExecuting CompactionStateCode = 1
	CompactionStateCompleted CompactionStateCode = 2
)

// CompactionState reports the plans of a compaction job.
type CompactionState struct {
	State          CompactionStateCode
	ExecutingPlans int64
	TimeoutPlans   int64
	CompletedPlans int64
	FailedPlans    int64
}
