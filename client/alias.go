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
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

func (c *Client) CreateAlias(ctx context.Context, collection, alias string, opts ...CallOption) error {
	return c.alterAlias(ctx, vdbpb.MethodCreateAlias, collection, alias, opts)
}

// AlterAlias points an existing alias at another collection.
func (c *Client) AlterAlias(ctx context.Context, collection, alias string, opts ...CallOption) error {
	return c.alterAlias(ctx, vdbpb.MethodAlterAlias, collection, alias, opts)
}

func (c *Client) alterAlias(ctx context.Context, method, collection, alias string, opts []CallOption) error {
	o := c.callOptions(opts)
	validate := func() error {
		if err := requireName("collection", collection); err != nil {
			return err
		}
		if err := requireName("alias", alias); err != nil {
			return err
		}
		return nil
	}
	err := c.exec(ctx, method, validate, &vdbpb.AliasRequest{DbName: o.db, CollectionName: collection, Alias: alias})
	// the alias may have been cached under its own name
	c.cache.removeCollection(o.db, alias)
	return err
}

func (c *Client) DropAlias(ctx context.Context, alias string, opts ...CallOption) error {
	o := c.callOptions(opts)
	err := c.exec(ctx, vdbpb.MethodDropAlias, func() error { return requireName("alias", alias) }, &vdbpb.AliasRequest{DbName: o.db, Alias: alias})
	c.cache.removeCollection(o.db, alias)
	return err
}

// ListAliases lists the aliases of collection, or of every collection when
// collection is empty.
func (c *Client) ListAliases(ctx context.Context, collection string, opts ...CallOption) ([]string, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.ListAliasesRequest, *vdbpb.ListAliasesResponse]{
		Method: vdbpb.MethodListAliases,
		Build: func() (*vdbpb.ListAliasesRequest, error) {
			return &vdbpb.ListAliasesRequest{DbName: o.db, CollectionName: collection}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.Aliases, nil
}

func (c *Client) DescribeAlias(ctx context.Context, alias string, opts ...CallOption) (*entity.AliasDesc, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.AliasRequest, *vdbpb.DescribeAliasResponse]{
		Method:   vdbpb.MethodDescribeAlias,
		Validate: func() error { return requireName("alias", alias) },
		Build: func() (*vdbpb.AliasRequest, error) {
			return &vdbpb.AliasRequest{DbName: o.db, Alias: alias}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &entity.AliasDesc{Name: resp.Alias, CollectionName: resp.Collection, DBName: resp.DbName}, nil
}
