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

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/marshal"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// CreateCollectionOption adjusts a CreateCollection request.
type CreateCollectionOption func(*vdbpb.CreateCollectionRequest)

func WithShardsNum(n int32) CreateCollectionOption {
	return func(r *vdbpb.CreateCollectionRequest) { r.ShardsNum = n }
}

func WithConsistencyLevel(level entity.ConsistencyLevel) CreateCollectionOption {
	return func(r *vdbpb.CreateCollectionRequest) { r.ConsistencyLevel = int32(level) }
}

func WithPartitionNum(n int64) CreateCollectionOption {
	return func(r *vdbpb.CreateCollectionRequest) { r.NumPartitions = n }
}

func WithCollectionProperty(key string, value any) CreateCollectionOption {
	return func(r *vdbpb.CreateCollectionRequest) {
		r.Properties = append(r.Properties, &vdbpb.KeyValuePair{Key: key, Value: marshal.ParamString(value)})
	}
}

// WithCreateDB creates the collection in db instead of the current database.
func WithCreateDB(db string) CreateCollectionOption {
	return func(r *vdbpb.CreateCollectionRequest) { r.DbName = db }
}

func (c *Client) CreateCollection(ctx context.Context, schema *entity.CollectionSchema, opts ...CreateCollectionOption) error {
	var req *vdbpb.CreateCollectionRequest
	_, err := invoke(ctx, c, pipeline.Call[*vdbpb.CreateCollectionRequest, *vdbpb.Status]{
		Method: vdbpb.MethodCreateCollection,
		Validate: func() error {
			if schema == nil {
				return fault.New(fault.InvalidArgument, "collection schema is nil")
			}
			return schema.Validate()
		},
		Build: func() (*vdbpb.CreateCollectionRequest, error) {
			req = &vdbpb.CreateCollectionRequest{
				DbName:         c.sess.Database(),
				CollectionName: schema.Name,
				Schema:         marshal.SchemaToWire(schema),
				ShardsNum:      schema.ShardsNum,
			}
			for _, opt := range opts {
				opt(req)
			}
			return req, nil
		},
		Post: func(*vdbpb.Status) error {
			c.cache.removeCollection(req.DbName, req.CollectionName)
			return nil
		},
	})
	return err
}

func (c *Client) HasCollection(ctx context.Context, collection string, opts ...CallOption) (bool, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.CollectionRequest, *vdbpb.BoolResponse]{
		Method:   vdbpb.MethodHasCollection,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.CollectionRequest, error) {
			return &vdbpb.CollectionRequest{DbName: o.db, CollectionName: collection}, nil
		},
	})
	if err != nil {
		return false, err
	}
	return resp.Value, nil
}

func (c *Client) DropCollection(ctx context.Context, collection string, opts ...CallOption) error {
	o := c.callOptions(opts)
	err := c.exec(ctx, vdbpb.MethodDropCollection, func() error { return requireName("collection", collection) }, &vdbpb.CollectionRequest{DbName: o.db, CollectionName: collection})
	c.cache.removeCollection(o.db, collection)
	return err
}

// ListCollections lists the collections of the database, or only the named
// ones when names are given.
func (c *Client) ListCollections(ctx context.Context, names []string, opts ...CallOption) ([]entity.CollectionInfo, error) {
	o := c.callOptions(opts)
	resp, err := c.showCollections(ctx, o.db, names)
	if err != nil {
		return nil, err
	}
	infos := make([]entity.CollectionInfo, 0, len(resp.CollectionNames))
	for i, name := range resp.CollectionNames {
		info := entity.CollectionInfo{Name: name}
		if i < len(resp.CollectionIds) {
			info.ID = resp.CollectionIds[i]
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

func (c *Client) showCollections(ctx context.Context, db string, names []string) (*vdbpb.ShowCollectionsResponse, error) {
	return invoke(ctx, c, pipeline.Call[*vdbpb.ShowCollectionsRequest, *vdbpb.ShowCollectionsResponse]{
		Method: vdbpb.MethodShowCollections,
		Build: func() (*vdbpb.ShowCollectionsRequest, error) {
			return &vdbpb.ShowCollectionsRequest{DbName: db, CollectionNames: names}, nil
		},
	})
}

// DescribeCollection always asks the server and refreshes the cached schema.
func (c *Client) DescribeCollection(ctx context.Context, collection string, opts ...CallOption) (*entity.CollectionDesc, error) {
	return c.describe(ctx, c.callOptions(opts).db, collection, true)
}

// describe returns the collection description, from the cache unless force
// is set.
func (c *Client) describe(ctx context.Context, db, collection string, force bool) (*entity.CollectionDesc, error) {
	return c.cache.CollectionByCache(ctx, db, collection, force, func(ctx context.Context) (*entity.CollectionDesc, error) {
		resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.CollectionRequest, *vdbpb.DescribeCollectionResponse]{
			Method:   vdbpb.MethodDescribeCollection,
			Validate: func() error { return requireName("collection", collection) },
			Build: func() (*vdbpb.CollectionRequest, error) {
				return &vdbpb.CollectionRequest{DbName: db, CollectionName: collection}, nil
			},
		})
		if err != nil {
			return nil, err
		}
		schema := marshal.SchemaFromWire(resp.Schema)
		if schema == nil {
			return nil, fault.Newf(fault.ServerFailed, "collection %s described without schema", collection)
		}
		if schema.Name == "" {
			schema.Name = collection
		}
		return &entity.CollectionDesc{
			ID:               resp.CollectionID,
			Schema:           schema,
			Aliases:          resp.Aliases,
			ShardsNum:        resp.ShardsNum,
			ConsistencyLevel: entity.ConsistencyLevel(resp.ConsistencyLevel),
			CreatedTime:      resp.CreatedTimestamp,
			Properties:       marshal.KVMap(resp.Properties),
			DBName:           resp.DbName,
		}, nil
	})
}

func (c *Client) RenameCollection(ctx context.Context, oldName, newName string, opts ...CallOption) error {
	o := c.callOptions(opts)
	validate := func() error {
		if err := requireName("collection", oldName); err != nil {
			return err
		}
		if err := requireName("new collection", newName); err != nil {
			return err
		}
		return nil
	}
	err := c.exec(ctx, vdbpb.MethodRenameCollection, validate, &vdbpb.RenameCollectionRequest{
		DbName:  o.db,
		OldName: oldName,
		NewName: newName,
	})
	c.cache.removeCollection(o.db, oldName)
	return err
}

func (c *Client) GetCollectionStats(ctx context.Context, collection string, opts ...CallOption) (entity.Stats, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.CollectionRequest, *vdbpb.StatisticsResponse]{
		Method:   vdbpb.MethodGetCollectionStatistics,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.CollectionRequest, error) {
			return &vdbpb.CollectionRequest{DbName: o.db, CollectionName: collection}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return entity.Stats(marshal.KVMap(resp.Stats)), nil
}

// LoadCollection asks the server to load the collection and waits, under the
// call's progress monitor, until it is fully in memory.
func (c *Client) LoadCollection(ctx context.Context, collection string, replicas int32, opts ...CallOption) error {
	o := c.callOptions(opts)
	m := c.monitorOf(o)
	_, err := invoke(ctx, c, pipeline.Call[*vdbpb.LoadCollectionRequest, *vdbpb.Status]{
		Method:   vdbpb.MethodLoadCollection,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.LoadCollectionRequest, error) {
			return &vdbpb.LoadCollectionRequest{DbName: o.db, CollectionName: collection, ReplicaNumber: replicas}, nil
		},
		Wait: func(ctx context.Context, _ *vdbpb.Status) error {
			return c.wait(ctx, "load_collection", fmt.Sprintf("load collection %s", collection), m,
				func(ctx context.Context) (entity.Progress, error) {
					resp, err := unary[*vdbpb.ShowCollectionsRequest, vdbpb.ShowCollectionsResponse](ctx, c, vdbpb.MethodShowCollections,
						&vdbpb.ShowCollectionsRequest{DbName: o.db, CollectionNames: []string{collection}})
					if err != nil {
						return entity.Progress{}, err
					}
					return loadProgress(1, resp.InMemoryPercentages), nil
				})
		},
	})
	return err
}

// loadProgress counts the targets reporting 100 percent or more as finished.
func loadProgress(targets int, percentages []int64) entity.Progress {
	p := entity.Progress{Total: uint64(targets)}
	for i, pct := range percentages {
		if i >= targets {
			break
		}
		if pct >= 100 {
			p.Finished++
		}
	}
	return p
}

func (c *Client) ReleaseCollection(ctx context.Context, collection string, opts ...CallOption) error {
	o := c.callOptions(opts)
	return c.exec(ctx, vdbpb.MethodReleaseCollection, func() error { return requireName("collection", collection) }, &vdbpb.CollectionRequest{DbName: o.db, CollectionName: collection})
}

// GetLoadState reports the load state of a collection, or of the given
// partitions of it.
func (c *Client) GetLoadState(ctx context.Context, collection string, partitions []string, opts ...CallOption) (entity.LoadStateCode, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.GetLoadStateRequest, *vdbpb.GetLoadStateResponse]{
		Method:   vdbpb.MethodGetLoadState,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.GetLoadStateRequest, error) {
			return &vdbpb.GetLoadStateRequest{DbName: o.db, CollectionName: collection, PartitionNames: partitions}, nil
		},
	})
	if err != nil {
		return entity.LoadStateNotExist, err
	}
	return entity.LoadStateCode(resp.State), nil
}

// AlterCollectionProperties sets properties and removes deleteKeys.
func (c *Client) AlterCollectionProperties(ctx context.Context, collection string, properties map[string]string,
	deleteKeys []string, opts ...CallOption) error {
	o := c.callOptions(opts)
	validate := func() error {
		if err := requireName("collection", collection); err != nil {
			return err
		}
		if len(properties) == 0 && len(deleteKeys) == 0 {
			return fault.Newf(fault.InvalidArgument, "nothing to alter on collection %s", collection)
		}
		return nil
	}
	err := c.exec(ctx, vdbpb.MethodAlterCollection, validate, &vdbpb.AlterCollectionRequest{
		DbName:         o.db,
		CollectionName: collection,
		Properties:     marshal.StringKVPairs(properties),
		DeleteKeys:     deleteKeys,
	})
	c.cache.removeCollection(o.db, collection)
	return err
}
