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

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/marshal"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/pkg/log"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// Insert writes column data into a collection. An empty partition means the
// default partition.
func (c *Client) Insert(ctx context.Context, collection, partition string, fields []entity.Field, opts ...CallOption) (entity.DMLResult, error) {
	return c.mutate(ctx, vdbpb.MethodInsert, collection, partition, fields, false, opts)
}

// Upsert inserts rows or replaces the rows with the same primary keys.
func (c *Client) Upsert(ctx context.Context, collection, partition string, fields []entity.Field, opts ...CallOption) (entity.DMLResult, error) {
	return c.mutate(ctx, vdbpb.MethodUpsert, collection, partition, fields, true, opts)
}

// checkInput validates fields against the cached schema. A mismatch may mean
// the cache is stale, so the schema is fetched again once before giving up.
func (c *Client) checkInput(ctx context.Context, db, collection string, fields []entity.Field, upsert bool) (*entity.CollectionDesc, error) {
	if err := requireName("collection", collection); err != nil {
		return nil, err
	}
	desc, err := c.describe(ctx, db, collection, false)
	if err != nil {
		return nil, err
	}
	err = marshal.CheckInsertInput(desc.Schema, fields, upsert)
	if fault.CodeOf(err) != fault.DataUnmatchSchema {
		return desc, err
	}
	log.Debugf("collection %s: %v, refresh schema", collection, err)
	if desc, err = c.describe(ctx, db, collection, true); err != nil {
		return nil, err
	}
	return desc, marshal.CheckInsertInput(desc.Schema, fields, upsert)
}

func (c *Client) mutate(ctx context.Context, method, collection, partition string, fields []entity.Field,
	upsert bool, opts []CallOption) (entity.DMLResult, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.InsertRequest, *vdbpb.MutationResult]{
		Method: method,
		Validate: func() error {
			_, err := c.checkInput(ctx, o.db, collection, fields, upsert)
			return err
		},
		Build: func() (*vdbpb.InsertRequest, error) {
			rows, err := marshal.RowCount(fields)
			if err != nil {
				return nil, err
			}
			data, err := marshal.FieldsToWire(fields)
			if err != nil {
				return nil, err
			}
			return &vdbpb.InsertRequest{
				DbName:         o.db,
				CollectionName: collection,
				PartitionName:  partition,
				FieldsData:     data,
				NumRows:        uint32(rows),
			}, nil
		},
		Post: func(resp *vdbpb.MutationResult) error {
			c.cache.updateTs(o.db, collection, resp.Timestamp)
			return nil
		},
	})
	if err != nil {
		return entity.DMLResult{}, err
	}
	return dmlResult(resp), nil
}

func dmlResult(resp *vdbpb.MutationResult) entity.DMLResult {
	return entity.DMLResult{
		IDs:         marshal.IDsFromWire(resp.IDs),
		InsertCount: resp.InsertCnt,
		UpsertCount: resp.UpsertCnt,
		DeleteCount: resp.DeleteCnt,
		Timestamp:   resp.Timestamp,
	}
}

// Delete removes the rows matching a filter expression.
func (c *Client) Delete(ctx context.Context, collection, partition, expr string, opts ...CallOption) (entity.DMLResult, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.DeleteRequest, *vdbpb.MutationResult]{
		Method: vdbpb.MethodDelete,
		Validate: func() error {
			if err := requireName("collection", collection); err != nil {
				return err
			}
			if expr == "" {
				return fault.New(fault.InvalidArgument, "delete filter is empty")
			}
			return nil
		},
		Build: func() (*vdbpb.DeleteRequest, error) {
			return &vdbpb.DeleteRequest{DbName: o.db, CollectionName: collection, PartitionName: partition, Expr: expr}, nil
		},
		Post: func(resp *vdbpb.MutationResult) error {
			c.cache.updateTs(o.db, collection, resp.Timestamp)
			return nil
		},
	})
	if err != nil {
		return entity.DMLResult{}, err
	}
	return dmlResult(resp), nil
}

// DeleteByPks removes rows by primary key.
func (c *Client) DeleteByPks(ctx context.Context, collection, partition string, ids entity.IDArray, opts ...CallOption) (entity.DMLResult, error) {
	o := c.callOptions(opts)
	expr, err := c.pkExpr(ctx, o.db, collection, ids)
	if err != nil {
		return entity.DMLResult{}, err
	}
	return c.Delete(ctx, collection, partition, expr, opts...)
}

// pkExpr renders ids as an "in" filter on the collection's primary key.
func (c *Client) pkExpr(ctx context.Context, db, collection string, ids entity.IDArray) (string, error) {
	desc, err := c.describe(ctx, db, collection, false)
	if err != nil {
		return "", err
	}
	pk := desc.Schema.PrimaryField()
	if pk == nil {
		return "", fault.Newf(fault.InvalidArgument, "collection %s has no primary key", collection)
	}
	if ids.Len() > 0 {
		if ids.IsIntegerID() != (pk.DataType == entity.DataTypeInt64) {
			return "", fault.Newf(fault.InvalidArgument, "primary key %s is %s, ids do not match", pk.Name, pk.DataType)
		}
	}
	return marshal.PrimaryKeysExpr(pk.Name, ids)
}
