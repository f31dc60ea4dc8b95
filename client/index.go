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

func indexParams(idx *entity.IndexDesc) []*vdbpb.KeyValuePair {
	params := make(map[string]any, 3)
	if idx.IndexType != "" {
		params[entity.IndexParamIndexType] = string(idx.IndexType)
	}
	if idx.MetricType != entity.MetricDefault {
		params[entity.IndexParamMetricType] = string(idx.MetricType)
	}
	if len(idx.Params) > 0 {
		params[entity.IndexParamParams] = idx.Params
	}
	return marshal.KVPairs(params)
}

// CreateIndex builds an index on one field and waits under the call's
// progress monitor until the server finishes it.
func (c *Client) CreateIndex(ctx context.Context, collection string, idx *entity.IndexDesc, opts ...CallOption) error {
	o := c.callOptions(opts)
	m := c.monitorOf(o)
	_, err := invoke(ctx, c, pipeline.Call[*vdbpb.CreateIndexRequest, *vdbpb.Status]{
		Method: vdbpb.MethodCreateIndex,
		Validate: func() error {
			if err := requireName("collection", collection); err != nil {
				return err
			}
			if idx == nil {
				return fault.New(fault.InvalidArgument, "index is nil")
			}
			return requireName("field", idx.FieldName)
		},
		Build: func() (*vdbpb.CreateIndexRequest, error) {
			return &vdbpb.CreateIndexRequest{
				DbName:         o.db,
				CollectionName: collection,
				FieldName:      idx.FieldName,
				IndexName:      idx.IndexName,
				ExtraParams:    indexParams(idx),
			}, nil
		},
		Wait: func(ctx context.Context, _ *vdbpb.Status) error {
			what := fmt.Sprintf("build index on %s.%s", collection, idx.FieldName)
			return c.wait(ctx, "create_index", what, m, func(ctx context.Context) (entity.Progress, error) {
				descs, err := c.describeIndex(ctx, o.db, collection, idx.FieldName, idx.IndexName, unaryDescribeIndex)
				if err != nil {
					return entity.Progress{}, err
				}
				return indexBuildProgress(collection, idx.FieldName, descs)
			})
		},
	})
	return err
}

// indexBuildProgress turns index descriptions into progress. Finished counts
// stay below the total until the server reports the index finished.
func indexBuildProgress(collection, field string, descs []entity.IndexDesc) (entity.Progress, error) {
	var d *entity.IndexDesc
	for i := range descs {
		if descs[i].FieldName == field || field == "" {
			d = &descs[i]
			break
		}
	}
	if d == nil {
		return entity.Progress{Total: 1}, nil
	}
	switch d.State {
	case entity.IndexStateFinished, entity.IndexStateNone:
		total := uint64(max(d.TotalRows, 1))
		return entity.Progress{Total: total, Finished: total}, nil
	case entity.IndexStateFailed:
		return entity.Progress{}, fault.Newf(fault.ServerFailed, "index on %s.%s failed: %s", collection, field, d.FailReason)
	}
	total := uint64(max(d.TotalRows, 1))
	finished := uint64(max(d.IndexedRows, 0))
	if finished >= total {
		finished = total - 1
	}
	return entity.Progress{Total: total, Finished: finished}, nil
}

type describeIndexFunc func(ctx context.Context, c *Client, req *vdbpb.IndexRequest) (*vdbpb.DescribeIndexResponse, error)

func unaryDescribeIndex(ctx context.Context, c *Client, req *vdbpb.IndexRequest) (*vdbpb.DescribeIndexResponse, error) {
	return unary[*vdbpb.IndexRequest, vdbpb.DescribeIndexResponse](ctx, c, vdbpb.MethodDescribeIndex, req)
}

func pipelineDescribeIndex(ctx context.Context, c *Client, req *vdbpb.IndexRequest) (*vdbpb.DescribeIndexResponse, error) {
	return invoke(ctx, c, pipeline.Call[*vdbpb.IndexRequest, *vdbpb.DescribeIndexResponse]{
		Method:   vdbpb.MethodDescribeIndex,
		Validate: func() error { return requireName("collection", req.CollectionName) },
		Build:    func() (*vdbpb.IndexRequest, error) { return req, nil },
	})
}

func (c *Client) describeIndex(ctx context.Context, db, collection, field, name string, send describeIndexFunc) ([]entity.IndexDesc, error) {
	resp, err := send(ctx, c, &vdbpb.IndexRequest{DbName: db, CollectionName: collection, FieldName: field, IndexName: name})
	if err != nil {
		return nil, err
	}
	out := make([]entity.IndexDesc, 0, len(resp.IndexDescriptions))
	for _, d := range resp.IndexDescriptions {
		if d == nil {
			continue
		}
		params := marshal.KVMap(d.Params)
		out = append(out, entity.IndexDesc{
			FieldName:   d.FieldName,
			IndexName:   d.IndexName,
			IndexID:     d.IndexID,
			IndexType:   entity.IndexType(params[entity.IndexParamIndexType]),
			MetricType:  entity.MetricType(params[entity.IndexParamMetricType]),
			Params:      params,
			State:       entity.IndexStateCode(d.State),
			FailReason:  d.IndexStateFailReason,
			TotalRows:   d.TotalRows,
			IndexedRows: d.IndexedRows,
			PendingRows: d.PendingIndexRows,
		})
	}
	return out, nil
}

// DescribeIndex describes the indexes on field, or every index of the
// collection when field is empty.
func (c *Client) DescribeIndex(ctx context.Context, collection, field string, opts ...CallOption) ([]entity.IndexDesc, error) {
	o := c.callOptions(opts)
	return c.describeIndex(ctx, o.db, collection, field, "", pipelineDescribeIndex)
}

// ListIndexes returns the index names of a collection.
func (c *Client) ListIndexes(ctx context.Context, collection string, opts ...CallOption) ([]string, error) {
	descs, err := c.DescribeIndex(ctx, collection, "", opts...)
	if err != nil {
		if fErr, ok := fault.As(err); ok && fErr.LegacyCode == vdbpb.StatusIndexNotExist {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.IndexName)
	}
	return names, nil
}

func (c *Client) GetIndexState(ctx context.Context, collection, field string, opts ...CallOption) (entity.IndexState, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.IndexRequest, *vdbpb.GetIndexStateResponse]{
		Method:   vdbpb.MethodGetIndexState,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.IndexRequest, error) {
			return &vdbpb.IndexRequest{DbName: o.db, CollectionName: collection, FieldName: field}, nil
		},
	})
	if err != nil {
		return entity.IndexState{}, err
	}
	return entity.IndexState{Code: entity.IndexStateCode(resp.State), Reason: resp.FailReason}, nil
}

func (c *Client) GetIndexBuildProgress(ctx context.Context, collection, field string, opts ...CallOption) (entity.IndexProgress, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.IndexRequest, *vdbpb.GetIndexBuildProgressResponse]{
		Method:   vdbpb.MethodGetIndexBuildProgress,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.IndexRequest, error) {
			return &vdbpb.IndexRequest{DbName: o.db, CollectionName: collection, FieldName: field}, nil
		},
	})
	if err != nil {
		return entity.IndexProgress{}, err
	}
	return entity.IndexProgress{TotalRows: resp.TotalRows, IndexedRows: resp.IndexedRows}, nil
}

func (c *Client) DropIndex(ctx context.Context, collection, field, indexName string, opts ...CallOption) error {
	o := c.callOptions(opts)
	validate := func() error {
		if err := requireName("collection", collection); err != nil {
			return err
		}
		if field == "" && indexName == "" {
			return fault.New(fault.InvalidArgument, "field name and index name are both empty")
		}
		return nil
	}
	return c.exec(ctx, vdbpb.MethodDropIndex, validate, &vdbpb.IndexRequest{
		DbName:         o.db,
		CollectionName: collection,
		FieldName:      field,
		IndexName:      indexName,
	})
}
