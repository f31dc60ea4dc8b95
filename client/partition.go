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


package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/marshal"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

func partitionRequest(db, collection, partition string) (*vdbpb.PartitionRequest, error) {
	if err := requireName("collection", collection); err != nil {
		return nil, err
	}
	if err := requireName("partition", partition); err != nil {
		return nil, err
	}
	return &vdbpb.PartitionRequest{DbName: db, CollectionName: collection, PartitionName: partition}, nil
}

func (c *Client) CreatePartition(ctx context.Context, collection, partition string, opts ...CallOption) error {
	db := c.callOptions(opts).db
	_, err := invoke(ctx, c, pipeline.Call[*vdbpb.PartitionRequest, *vdbpb.Status]{
		Method: vdbpb.MethodCreatePartition,
		Build:  func() (*vdbpb.PartitionRequest, error) { return partitionRequest(db, collection, partition) },
	})
	return err
}

func (c *Client) DropPartition(ctx context.Context, collection, partition string, opts ...CallOption) error {
	db := c.callOptions(opts).db
	_, err := invoke(ctx, c, pipeline.Call[*vdbpb.PartitionRequest, *vdbpb.Status]{
		Method: vdbpb.MethodDropPartition,
		Build:  func() (*vdbpb.PartitionRequest, error) { return partitionRequest(db, collection, partition) },
	})
	return err
}

func (c *Client) HasPartition(ctx context.Context, collection, partition string, opts ...CallOption) (bool, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.PartitionRequest, *vdbpb.BoolResponse]{
		Method: vdbpb.MethodHasPartition,
		Build:  func() (*vdbpb.PartitionRequest, error) { return partitionRequest(o.db, collection, partition) },
	})
	if err != nil {
		return false, err
	}
	return resp.Value, nil
}

// ListPartitions lists the partitions of a collection, or only the named
// ones when names are given.
func (c *Client) ListPartitions(ctx context.Context, collection string, names []string, opts ...CallOption) ([]entity.PartitionInfo, error) {
	o := c.callOptions(opts)
	resp, err := c.showPartitions(ctx, o.db, collection, names)
	if err != nil {
		return nil, err
	}
	infos := make([]entity.PartitionInfo, 0, len(resp.PartitionNames))
	for i, name := range resp.PartitionNames {
		info := entity.PartitionInfo{Name: name}
		if i < len(resp.PartitionIDs) {
			info.ID = resp.PartitionIDs[i]
		}
		if i < len(resp.CreatedTimestamps) {
			info.CreatedTime = resp.CreatedTimestamps[i]
		}
		if i < len(resp.InMemoryPercentages) {
			info.InMemoryPercentage = resp.InMemoryPercentages[i]
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (c *Client) showPartitions(ctx context.Context, db, collection string, names []string) (*vdbpb.ShowPartitionsResponse, error) {
	return invoke(ctx, c, pipeline.Call[*vdbpb.ShowPartitionsRequest, *vdbpb.ShowPartitionsResponse]{
		Method:   vdbpb.MethodShowPartitions,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.ShowPartitionsRequest, error) {
			return &vdbpb.ShowPartitionsRequest{DbName: db, CollectionName: collection, PartitionNames: names}, nil
		},
	})
}

func checkPartitionNames(collection string, partitions []string) error {
	if err := requireName("collection", collection); err != nil {
		return err
	}
	if len(partitions) == 0 {
		return fault.New(fault.InvalidArgument, "partition names are empty")
	}
	for _, p := range partitions {
		if err := requireName("partition", p); err != nil {
			return err
		}
	}
	return nil
}

// LoadPartitions loads the partitions and waits until each is fully in
// memory.
func (c *Client) LoadPartitions(ctx context.Context, collection string, partitions []string, replicas int32, opts ...CallOption) error {
	o := c.callOptions(opts)
	m := c.monitorOf(o)
	_, err := invoke(ctx, c, pipeline.Call[*vdbpb.LoadPartitionsRequest, *vdbpb.Status]{
		Method:   vdbpb.MethodLoadPartitions,
		Validate: func() error { return checkPartitionNames(collection, partitions) },
		Build: func() (*vdbpb.LoadPartitionsRequest, error) {
			return &vdbpb.LoadPartitionsRequest{
				DbName:         o.db,
				CollectionName: collection,
				PartitionNames: partitions,
				ReplicaNumber:  replicas,
			}, nil
		},
		Wait: func(ctx context.Context, _ *vdbpb.Status) error {
			what := fmt.Sprintf("load partitions %s of %s", strings.Join(partitions, ","), collection)
			return c.wait(ctx, "load_partitions", what, m, func(ctx context.Context) (entity.Progress, error) {
				resp, err := unary[*vdbpb.ShowPartitionsRequest, vdbpb.ShowPartitionsResponse](ctx, c, vdbpb.MethodShowPartitions,
					&vdbpb.ShowPartitionsRequest{DbName: o.db, CollectionName: collection, PartitionNames: partitions})
				if err != nil {
					return entity.Progress{}, err
				}
				return loadProgress(len(partitions), resp.InMemoryPercentages), nil
			})
		},
	})
	return err
}

func (c *Client) ReleasePartitions(ctx context.Context, collection string, partitions []string, opts ...CallOption) error {
	o := c.callOptions(opts)
	return c.exec(ctx, vdbpb.MethodReleasePartitions, func() error { return checkPartitionNames(collection, partitions) }, &vdbpb.ReleasePartitionsRequest{
		DbName:         o.db,
		CollectionName: collection,
		PartitionNames: partitions,
	})
}

func (c *Client) GetPartitionStats(ctx context.Context, collection, partition string, opts ...CallOption) (entity.Stats, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.PartitionRequest, *vdbpb.StatisticsResponse]{
		Method: vdbpb.MethodGetPartitionStatistics,
		Build:  func() (*vdbpb.PartitionRequest, error) { return partitionRequest(o.db, collection, partition) },
	})
	if err != nil {
		return nil, err
	}
	return entity.Stats(marshal.KVMap(resp.Stats)), nil
}
