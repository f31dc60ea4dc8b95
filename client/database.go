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
	"github.com/vearch/vdbclient/internal/marshal"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

func (c *Client) CreateDatabase(ctx context.Context, db string, properties map[string]string) error {
	return c.exec(ctx, vdbpb.MethodCreateDatabase, func() error { return requireName("database", db) }, &vdbpb.CreateDatabaseRequest{
		DbName:     db,
		Properties: marshal.StringKVPairs(properties),
	})
}

// DropDatabase drops db. Dropping the current database switches the client
// back to the default one.
func (c *Client) DropDatabase(ctx context.Context, db string) error {
	if err := c.exec(ctx, vdbpb.MethodDropDatabase, func() error { return requireName("database", db) }, &vdbpb.DropDatabaseRequest{DbName: db}); err != nil {
		return err
	}
	if c.sess.Database() == db {
		return c.UseDatabase("")
	}
	return nil
}

func (c *Client) ListDatabases(ctx context.Context) ([]entity.DatabaseDesc, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.ListDatabasesRequest, *vdbpb.ListDatabasesResponse]{
		Method: vdbpb.MethodListDatabases,
		Build:  func() (*vdbpb.ListDatabasesRequest, error) { return &vdbpb.ListDatabasesRequest{}, nil },
	})
	if err != nil {
		return nil, err
	}
	dbs := make([]entity.DatabaseDesc, 0, len(resp.DbNames))
	for i, name := range resp.DbNames {
		d := entity.DatabaseDesc{Name: name}
		if i < len(resp.DbIDs) {
			d.ID = resp.DbIDs[i]
		}
		if i < len(resp.CreatedTime) {
			d.CreatedTime = resp.CreatedTime[i]
		}
		dbs = append(dbs, d)
	}
	return dbs, nil
}

func (c *Client) DescribeDatabase(ctx context.Context, db string) (*entity.DatabaseDesc, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.DescribeDatabaseRequest, *vdbpb.DescribeDatabaseResponse]{
		Method:   vdbpb.MethodDescribeDatabase,
		Validate: func() error { return requireName("database", db) },
		Build: func() (*vdbpb.DescribeDatabaseRequest, error) {
			return &vdbpb.DescribeDatabaseRequest{DbName: db}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &entity.DatabaseDesc{
		Name:        resp.DbName,
		ID:          resp.DbID,
		CreatedTime: resp.CreatedTimestamp,
		Properties:  marshal.KVMap(resp.Properties),
	}, nil
}
