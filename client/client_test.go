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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/marshal"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
	"github.com/vearch/vdbclient/internal/session"
	"github.com/vearch/vdbclient/internal/session/sessiontest"
)

func fastRetry() RetryParam {
	return RetryParam{
		MaxRetry:          3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        2 * time.Millisecond,
		BackoffMultiplier: 2,
		RetryOnRateLimit:  true,
	}
}

func fastMonitor() entity.ProgressMonitor {
	return entity.ProgressMonitor{Timeout: 5 * time.Second, Interval: time.Millisecond}
}

func newTestClient(t *testing.T, conn *sessiontest.Conn, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithRetry(fastRetry()), WithDefaultMonitor(fastMonitor())}, opts...)
	c, err := NewWithConn(context.Background(), conn, NewConnectParam("localhost:19530"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func booksSchema() *entity.CollectionSchema {
	return entity.NewCollectionSchema("books").
		WithField(entity.NewFieldSchema("id", entity.DataTypeInt64).WithPrimaryKey(true)).
		WithField(entity.NewFieldSchema("vec", entity.DataTypeFloatVector).WithDim(4)).
		WithField(entity.NewFieldSchema("title", entity.DataTypeVarChar).WithMaxLength(64))
}

func replyDescribe(conn *sessiontest.Conn, schemas ...*entity.CollectionSchema) {
	n := 0
	sessiontest.Handle(conn, vdbpb.MethodDescribeCollection, func(_ context.Context, req *vdbpb.CollectionRequest) (any, error) {
		s := schemas[min(n, len(schemas)-1)]
		n++
		return &vdbpb.DescribeCollectionResponse{
			Status:         sessiontest.Success(),
			Schema:         marshal.SchemaToWire(s),
			CollectionID:   7,
			CollectionName: req.CollectionName,
		}, nil
	})
}

func bookFields(t *testing.T, dim int) []entity.Field {
	t.Helper()
	rows := make([][]float32, 2)
	for i := range rows {
		rows[i] = make([]float32, dim)
		rows[i][0] = float32(i)
	}
	vec, err := entity.NewFloatVectorField("vec", rows)
	require.NoError(t, err)
	return []entity.Field{
		entity.NewInt64Field("id", []int64{1, 2}),
		vec,
		entity.NewVarCharField("title", []string{"a", "b"}),
	}
}

func TestNotConnected(t *testing.T) {
	conn := sessiontest.NewConn()
	c := newTestClient(t, conn)
	require.NoError(t, c.Close())

	_, err := c.ListCollections(context.Background(), nil)
	assert.Equal(t, fault.NotConnected, fault.CodeOf(err))
	assert.Equal(t, fault.NotConnected, fault.CodeOf(c.UseDatabase("books")))
	assert.Equal(t, 0, conn.Count(vdbpb.MethodShowCollections))
}

func TestNotConnectedBeforeArgumentChecks(t *testing.T) {
	conn := sessiontest.NewConn()
	c := newTestClient(t, conn)
	require.NoError(t, c.Close())
	ctx := context.Background()

	assert.Equal(t, fault.NotConnected, fault.CodeOf(c.ReleasePartitions(ctx, "books", nil)))
	assert.Equal(t, fault.NotConnected, fault.CodeOf(c.ReleasePartitions(ctx, "", []string{""})))
	assert.Equal(t, fault.NotConnected, fault.CodeOf(c.LoadPartitions(ctx, "books", nil, 1)))
	assert.Equal(t, fault.NotConnected, fault.CodeOf(c.ReleaseCollection(ctx, "")))
	assert.Equal(t, fault.NotConnected, fault.CodeOf(c.CreatePartition(ctx, "books", "")))
	assert.Equal(t, fault.NotConnected, fault.CodeOf(c.DropIndex(ctx, "books", "", "")))
	_, err := c.DescribeCollection(ctx, "")
	assert.Equal(t, fault.NotConnected, fault.CodeOf(err))
}

func TestArgumentChecksWhenConnected(t *testing.T) {
	conn := sessiontest.NewConn()
	c := newTestClient(t, conn)
	ctx := context.Background()

	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(c.ReleasePartitions(ctx, "books", nil)))
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(c.ReleasePartitions(ctx, "books", []string{""})))
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(c.CreatePartition(ctx, "books", "")))
	_, err := c.DescribeCollection(ctx, "")
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
	assert.Equal(t, 0, conn.Count(vdbpb.MethodReleasePartitions))
	assert.Equal(t, 0, conn.Count(vdbpb.MethodCreatePartition))
	assert.Equal(t, 0, conn.Count(vdbpb.MethodDescribeCollection))
}

func TestHealthAndVersion(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodCheckHealth, &vdbpb.CheckHealthResponse{
		Status:    sessiontest.Success(),
		IsHealthy: false,
		Reasons:   []string{"querynode down"},
	})
	sessiontest.Reply(conn, vdbpb.MethodGetVersion, &vdbpb.GetVersionResponse{Status: sessiontest.Success(), Version: "v2.4.0"})
	c := newTestClient(t, conn)

	healthy, reasons, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.False(t, healthy)
	assert.Equal(t, []string{"querynode down"}, reasons)

	version, err := c.GetServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2.4.0", version)
}

func TestServerFailure(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodHasCollection, &vdbpb.BoolResponse{Status: sessiontest.Failure(100, "collection not found")})
	c := newTestClient(t, conn)

	_, err := c.HasCollection(context.Background(), "books")
	fErr, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.ServerFailed, fErr.Code)
	assert.Equal(t, int32(100), fErr.ServerCode)
	assert.Equal(t, 1, conn.Count(vdbpb.MethodHasCollection))
}

func TestRateLimitedRetried(t *testing.T) {
	conn := sessiontest.NewConn()
	n := 0
	sessiontest.Handle(conn, vdbpb.MethodHasCollection, func(context.Context, *vdbpb.CollectionRequest) (any, error) {
		n++
		if n < 3 {
			return &vdbpb.BoolResponse{Status: sessiontest.Failure(fault.RateLimitCode, "rate limit exceeded")}, nil
		}
		return &vdbpb.BoolResponse{Status: sessiontest.Success(), Value: true}, nil
	})
	c := newTestClient(t, conn)

	has, err := c.HasCollection(context.Background(), "books")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 3, n)
}

func TestTransportFailureNotRetried(t *testing.T) {
	conn := sessiontest.NewConn()
	n := 0
	sessiontest.Handle(conn, vdbpb.MethodHasCollection, func(context.Context, *vdbpb.CollectionRequest) (any, error) {
		n++
		return nil, status.Error(codes.Unavailable, "connection reset")
	})
	c := newTestClient(t, conn)

	_, err := c.HasCollection(context.Background(), "books")
	require.Error(t, err)
	assert.Equal(t, fault.RPCFailed, fault.CodeOf(err))
	assert.Equal(t, 1, n)
}

func TestUseDatabase(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodHasCollection, &vdbpb.BoolResponse{Status: sessiontest.Success()})
	replyDescribe(conn, booksSchema())
	c := newTestClient(t, conn)
	ctx := context.Background()

	_, err := c.DescribeCollection(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, 1, c.cache.size())

	require.NoError(t, c.UseDatabase("archive"))
	assert.Equal(t, "archive", c.CurrentDatabase())
	assert.Equal(t, 0, c.cache.size())

	_, err = c.HasCollection(ctx, "books")
	require.NoError(t, err)
	call, ok := conn.Last(vdbpb.MethodHasCollection)
	require.True(t, ok)
	assert.Equal(t, []string{"archive"}, call.MD.Get(session.HeaderDBName))
	var req vdbpb.CollectionRequest
	require.NoError(t, call.Decode(&req))
	assert.Equal(t, "archive", req.DbName)

	_, err = c.HasCollection(ctx, "books", WithDB("other"))
	require.NoError(t, err)
	call, _ = conn.Last(vdbpb.MethodHasCollection)
	var other vdbpb.CollectionRequest
	require.NoError(t, call.Decode(&other))
	assert.Equal(t, "other", other.DbName)
}

func TestDatabases(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodListDatabases, &vdbpb.ListDatabasesResponse{
		Status:      sessiontest.Success(),
		DbNames:     []string{"default", "books"},
		DbIDs:       []int64{1, 2},
		CreatedTime: []uint64{10},
	})
	sessiontest.Reply(conn, vdbpb.MethodDropDatabase, sessiontest.Success())
	c := newTestClient(t, conn)
	ctx := context.Background()

	dbs, err := c.ListDatabases(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.DatabaseDesc{
		{Name: "default", ID: 1, CreatedTime: 10},
		{Name: "books", ID: 2},
	}, dbs)

	require.NoError(t, c.UseDatabase("books"))
	require.NoError(t, c.DropDatabase(ctx, "books"))
	assert.Equal(t, "", c.CurrentDatabase())

	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(c.CreateDatabase(ctx, "", nil)))
}

func TestListCollections(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodShowCollections, &vdbpb.ShowCollectionsResponse{
		Status:              sessiontest.Success(),
		CollectionNames:     []string{"books", "films"},
		CollectionIds:       []int64{7, 8},
		CreatedTimestamps:   []uint64{100, 200},
		InMemoryPercentages: []int64{100, 30},
	})
	c := newTestClient(t, conn)

	infos, err := c.ListCollections(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.True(t, infos[0].Loaded())
	assert.False(t, infos[1].Loaded())
	assert.Equal(t, int64(8), infos[1].ID)
}

func TestLoadCollectionWaits(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodLoadCollection, sessiontest.Success())
	percentages := []int64{0, 50, 100}
	n := 0
	sessiontest.Handle(conn, vdbpb.MethodShowCollections, func(_ context.Context, req *vdbpb.ShowCollectionsRequest) (any, error) {
		pct := percentages[min(n, len(percentages)-1)]
		n++
		return &vdbpb.ShowCollectionsResponse{
			Status:              sessiontest.Success(),
			CollectionNames:     req.CollectionNames,
			InMemoryPercentages: []int64{pct},
		}, nil
	})
	c := newTestClient(t, conn)

	var reports []entity.Progress
	m := fastMonitor().WithProgress(func(p entity.Progress) { reports = append(reports, p) })
	require.NoError(t, c.LoadCollection(context.Background(), "books", 1, WithMonitor(m)))
	assert.Equal(t, []entity.Progress{{Total: 1, Finished: 0}, {Total: 1, Finished: 0}, {Total: 1, Finished: 1}}, reports)
	assert.Equal(t, 3, conn.Count(vdbpb.MethodShowCollections))
}

func TestLoadCollectionNoWait(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodLoadCollection, sessiontest.Success())
	c := newTestClient(t, conn)

	require.NoError(t, c.LoadCollection(context.Background(), "books", 1, WithMonitor(entity.NoWait())))
	assert.Equal(t, 0, conn.Count(vdbpb.MethodShowCollections))
}

func TestLoadCollectionTimeout(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodLoadCollection, sessiontest.Success())
	sessiontest.Reply(conn, vdbpb.MethodShowCollections, &vdbpb.ShowCollectionsResponse{
		Status:              sessiontest.Success(),
		CollectionNames:     []string{"books"},
		InMemoryPercentages: []int64{10},
	})
	c := newTestClient(t, conn)

	m := entity.ProgressMonitor{Timeout: 30 * time.Millisecond, Interval: 5 * time.Millisecond}
	err := c.LoadCollection(context.Background(), "books", 1, WithMonitor(m))
	assert.Equal(t, fault.Timeout, fault.CodeOf(err))
}

func TestLoadPartitionsWaitsForAll(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodLoadPartitions, sessiontest.Success())
	n := 0
	sessiontest.Handle(conn, vdbpb.MethodShowPartitions, func(_ context.Context, req *vdbpb.ShowPartitionsRequest) (any, error) {
		n++
		pcts := []int64{100, 40}
		if n > 1 {
			pcts = []int64{100, 100}
		}
		return &vdbpb.ShowPartitionsResponse{
			Status:              sessiontest.Success(),
			PartitionNames:      req.PartitionNames,
			InMemoryPercentages: pcts,
		}, nil
	})
	c := newTestClient(t, conn)

	var reports []entity.Progress
	m := fastMonitor().WithProgress(func(p entity.Progress) { reports = append(reports, p) })
	require.NoError(t, c.LoadPartitions(context.Background(), "books", []string{"p1", "p2"}, 1, WithMonitor(m)))
	assert.Equal(t, []entity.Progress{{Total: 2, Finished: 1}, {Total: 2, Finished: 2}}, reports)
	assert.Equal(t, 2, n)

	err := c.LoadPartitions(context.Background(), "books", nil, 1)
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
}

func TestCreateIndexWaits(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodCreateIndex, sessiontest.Success())
	states := []entity.IndexStateCode{entity.IndexStateUnissued, entity.IndexStateInProgress, entity.IndexStateFinished}
	n := 0
	sessiontest.Handle(conn, vdbpb.MethodDescribeIndex, func(_ context.Context, req *vdbpb.IndexRequest) (any, error) {
		st := states[min(n, len(states)-1)]
		n++
		return &vdbpb.DescribeIndexResponse{
			Status: sessiontest.Success(),
			IndexDescriptions: []*vdbpb.IndexDescription{{
				FieldName:   req.FieldName,
				IndexName:   "vec_idx",
				State:       int32(st),
				TotalRows:   10,
				IndexedRows: int64(5 * n),
			}},
		}, nil
	})
	c := newTestClient(t, conn)

	idx := entity.NewIndexDesc("vec", "vec_idx", entity.IndexHNSW, entity.MetricL2).WithParam("M", "16")
	var reports []entity.Progress
	m := fastMonitor().WithProgress(func(p entity.Progress) { reports = append(reports, p) })
	require.NoError(t, c.CreateIndex(context.Background(), "books", idx, WithMonitor(m)))
	assert.Equal(t, []entity.Progress{{Total: 10, Finished: 5}, {Total: 10, Finished: 9}, {Total: 10, Finished: 10}}, reports)

	call, ok := conn.Last(vdbpb.MethodCreateIndex)
	require.True(t, ok)
	var req vdbpb.CreateIndexRequest
	require.NoError(t, call.Decode(&req))
	params := marshal.KVMap(req.ExtraParams)
	assert.Equal(t, "HNSW", params[entity.IndexParamIndexType])
	assert.Equal(t, "L2", params[entity.IndexParamMetricType])
	assert.JSONEq(t, `{"M":"16"}`, params[entity.IndexParamParams])
}

func TestCreateIndexFailure(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodCreateIndex, sessiontest.Success())
	sessiontest.Reply(conn, vdbpb.MethodDescribeIndex, &vdbpb.DescribeIndexResponse{
		Status: sessiontest.Success(),
		IndexDescriptions: []*vdbpb.IndexDescription{{
			FieldName:            "vec",
			State:                int32(entity.IndexStateFailed),
			IndexStateFailReason: "out of memory",
		}},
	})
	c := newTestClient(t, conn)

	err := c.CreateIndex(context.Background(), "books", entity.NewIndexDesc("vec", "", entity.IndexHNSW, entity.MetricL2))
	require.Error(t, err)
	assert.Equal(t, fault.ServerFailed, fault.CodeOf(err))
	assert.Contains(t, err.Error(), "out of memory")
	assert.Equal(t, 1, conn.Count(vdbpb.MethodDescribeIndex))
}

func TestListIndexesMissing(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodDescribeIndex, &vdbpb.DescribeIndexResponse{
		Status: &vdbpb.Status{ErrorCode: vdbpb.StatusIndexNotExist, Reason: "index not found"},
	})
	c := newTestClient(t, conn)

	names, err := c.ListIndexes(context.Background(), "books")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestInsertRefreshesStaleSchema(t *testing.T) {
	stale := entity.NewCollectionSchema("books").
		WithField(entity.NewFieldSchema("id", entity.DataTypeInt64).WithPrimaryKey(true)).
		WithField(entity.NewFieldSchema("vec", entity.DataTypeFloatVector).WithDim(4))
	conn := sessiontest.NewConn()
	replyDescribe(conn, stale, booksSchema())
	sessiontest.Reply(conn, vdbpb.MethodInsert, &vdbpb.MutationResult{
		Status:    sessiontest.Success(),
		IDs:       marshal.IDsToWire(entity.NewIntIDs([]int64{1, 2})),
		InsertCnt: 2,
		Timestamp: 42,
	})
	c := newTestClient(t, conn)

	res, err := c.Insert(context.Background(), "books", "", bookFields(t, 4))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.InsertCount)
	assert.Equal(t, []int64{1, 2}, res.IDs.IntIDs())
	assert.Equal(t, 2, conn.Count(vdbpb.MethodDescribeCollection))

	ts, ok := c.cache.collectionTs("", "books")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), ts)

	call, _ := conn.Last(vdbpb.MethodInsert)
	var req vdbpb.InsertRequest
	require.NoError(t, call.Decode(&req))
	assert.Equal(t, uint32(2), req.NumRows)
	assert.Len(t, req.FieldsData, 3)
}

func TestInsertRejected(t *testing.T) {
	conn := sessiontest.NewConn()
	replyDescribe(conn, booksSchema())
	sessiontest.Reply(conn, vdbpb.MethodInsert, &vdbpb.MutationResult{Status: sessiontest.Success()})
	c := newTestClient(t, conn)
	ctx := context.Background()

	_, err := c.Insert(ctx, "books", "", bookFields(t, 3))
	assert.Equal(t, fault.DimensionNotEqual, fault.CodeOf(err))
	assert.Equal(t, 1, conn.Count(vdbpb.MethodDescribeCollection))

	fields := append(bookFields(t, 4), entity.NewInt64Field("year", []int64{1999, 2001}))
	_, err = c.Insert(ctx, "books", "", fields)
	assert.Equal(t, fault.DataUnmatchSchema, fault.CodeOf(err))
	assert.Equal(t, 2, conn.Count(vdbpb.MethodDescribeCollection))
	assert.Equal(t, 0, conn.Count(vdbpb.MethodInsert))
}

func TestDeleteByPks(t *testing.T) {
	conn := sessiontest.NewConn()
	replyDescribe(conn, booksSchema())
	sessiontest.Reply(conn, vdbpb.MethodDelete, &vdbpb.MutationResult{Status: sessiontest.Success(), DeleteCnt: 3, Timestamp: 9})
	c := newTestClient(t, conn)
	ctx := context.Background()

	res, err := c.DeleteByPks(ctx, "books", "", entity.NewIntIDs([]int64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.DeleteCount)
	call, _ := conn.Last(vdbpb.MethodDelete)
	var req vdbpb.DeleteRequest
	require.NoError(t, call.Decode(&req))
	assert.Equal(t, "id in [1,2,3]", req.Expr)

	_, err = c.DeleteByPks(ctx, "books", "", entity.NewStrIDs([]string{"a"}))
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
	_, err = c.Delete(ctx, "books", "", "")
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))
	assert.Equal(t, 1, conn.Count(vdbpb.MethodDelete))
}

func searchVectors(t *testing.T, dim, nq int) entity.Field {
	t.Helper()
	rows := make([][]float32, nq)
	for i := range rows {
		rows[i] = make([]float32, dim)
	}
	vec, err := entity.NewFloatVectorField("vec", rows)
	require.NoError(t, err)
	return vec
}

func TestSearchSlicesResults(t *testing.T) {
	conn := sessiontest.NewConn()
	replyDescribe(conn, booksSchema())
	idCol, err := marshal.ToWire(entity.NewInt64Field("id", []int64{1, 2, 3}))
	require.NoError(t, err)
	sessiontest.Reply(conn, vdbpb.MethodSearch, &vdbpb.SearchResults{
		Status: sessiontest.Success(),
		Results: &vdbpb.SearchResultData{
			NumQueries: 2,
			TopK:       2,
			Ids:        marshal.IDsToWire(entity.NewIntIDs([]int64{1, 2, 3})),
			Scores:     []float32{0.1, 0.2, 0.3},
			Topks:      []int64{2, 1},
			FieldsData: []*vdbpb.FieldData{idCol},
		},
	})
	sessiontest.Reply(conn, vdbpb.MethodInsert, &vdbpb.MutationResult{Status: sessiontest.Success(), Timestamp: 77})
	c := newTestClient(t, conn)
	ctx := context.Background()

	_, err = c.Insert(ctx, "books", "", bookFields(t, 4))
	require.NoError(t, err)

	opt := NewSearchOption("books", 2, searchVectors(t, 4, 2)).
		WithOutputFields("id").
		WithSearchParam("nprobe", 16).
		WithSearchParam("radius", "0.5")
	res, err := c.Search(ctx, opt)
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, []int64{1, 2}, res.Results[0].IDs.IntIDs())
	assert.Equal(t, []float32{0.1, 0.2}, res.Results[0].Scores)
	assert.Equal(t, []int64{3}, res.Results[1].IDs.IntIDs())
	assert.Equal(t, 1, res.Results[1].GetField("id").Count())

	call, _ := conn.Last(vdbpb.MethodSearch)
	var req vdbpb.SearchRequest
	require.NoError(t, call.Decode(&req))
	assert.Equal(t, int64(2), req.Nq)
	assert.Equal(t, uint64(77), req.GuaranteeTimestamp)
	assert.True(t, req.UseDefaultConsistency)
	params := marshal.KVMap(req.SearchParams)
	assert.Equal(t, "vec", params[paramAnnsField])
	assert.Equal(t, "2", params[paramTopK])
	assert.Equal(t, "-1", params[paramRoundDecimal])
	assert.JSONEq(t, `{"nprobe":"16","radius":0.5}`, params[paramParams])
	require.NotNil(t, req.PlaceholderGroup)
	require.NotNil(t, req.PlaceholderGroup.Vectors)
	assert.Equal(t, "vec", req.PlaceholderGroup.Vectors.FieldName)

	_, err = c.Search(ctx, NewSearchOption("books", 2, searchVectors(t, 4, 1)).WithConsistencyLevel(entity.ConsistencyStrong))
	require.NoError(t, err)
	call, _ = conn.Last(vdbpb.MethodSearch)
	var strong vdbpb.SearchRequest
	require.NoError(t, call.Decode(&strong))
	assert.Equal(t, uint64(0), strong.GuaranteeTimestamp)
	assert.Equal(t, int32(entity.ConsistencyStrong), strong.ConsistencyLevel)
	assert.False(t, strong.UseDefaultConsistency)
}

func TestSearchValidation(t *testing.T) {
	conn := sessiontest.NewConn()
	replyDescribe(conn, booksSchema())
	sessiontest.Reply(conn, vdbpb.MethodSearch, &vdbpb.SearchResults{Status: sessiontest.Success()})
	c := newTestClient(t, conn)
	ctx := context.Background()

	cases := []struct {
		name string
		opt  *SearchOption
		want fault.Code
	}{
		{"no vectors", NewSearchOption("books", 5, nil), fault.VectorIsEmpty},
		{"zero topk", NewSearchOption("books", 0, searchVectors(t, 4, 1)), fault.InvalidArgument},
		{"wrong dim", NewSearchOption("books", 5, searchVectors(t, 3, 1)), fault.DimensionNotEqual},
		{"unknown field", NewSearchOption("books", 5, searchVectors(t, 4, 1)).WithANNSField("nope"), fault.InvalidArgument},
		{"scalar field", NewSearchOption("books", 5, searchVectors(t, 4, 1)).WithANNSField("title"), fault.InvalidArgument},
		{"binary metric", NewSearchOption("books", 5, searchVectors(t, 4, 1)).WithMetricType(entity.MetricHamming), fault.InvalidArgument},
		{"bad radius", NewSearchOption("books", 5, searchVectors(t, 4, 1)).WithSearchParam("radius", "far"), fault.InvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Search(ctx, tc.opt)
			assert.Equal(t, tc.want, fault.CodeOf(err))
		})
	}
	assert.Equal(t, 0, conn.Count(vdbpb.MethodSearch))
}

func TestQueryAndGet(t *testing.T) {
	conn := sessiontest.NewConn()
	replyDescribe(conn, booksSchema())
	title, err := marshal.ToWire(entity.NewVarCharField("title", []string{"dune"}))
	require.NoError(t, err)
	sessiontest.Reply(conn, vdbpb.MethodQuery, &vdbpb.QueryResults{
		Status:     sessiontest.Success(),
		FieldsData: []*vdbpb.FieldData{title},
	})
	c := newTestClient(t, conn)
	ctx := context.Background()

	res, err := c.Get(ctx, "books", entity.NewIntIDs([]int64{5}), []string{"title"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowCount())
	call, _ := conn.Last(vdbpb.MethodQuery)
	var req vdbpb.QueryRequest
	require.NoError(t, call.Decode(&req))
	assert.Equal(t, "id in [5]", req.Expr)
	assert.Equal(t, []string{"title"}, req.OutputFields)

	_, err = c.Query(ctx, NewQueryOption("books"))
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(err))

	_, err = c.Query(ctx, NewQueryOption("books").WithLimit(10).WithOffset(5))
	require.NoError(t, err)
	call, _ = conn.Last(vdbpb.MethodQuery)
	var paged vdbpb.QueryRequest
	require.NoError(t, call.Decode(&paged))
	params := marshal.KVMap(paged.QueryParams)
	assert.Equal(t, "10", params[paramLimit])
	assert.Equal(t, "5", params[paramOffset])
}

func TestFlushTracksSegments(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodFlush, &vdbpb.FlushResponse{
		Status:     sessiontest.Success(),
		CollSegIDs: map[string][]int64{"a": {1, 2, 3}, "b": {4, 5}},
	})
	probes := map[string]int{}
	sessiontest.Handle(conn, vdbpb.MethodGetPersistentSegmentInfo, func(_ context.Context, req *vdbpb.CollectionRequest) (any, error) {
		probes[req.CollectionName]++
		state := int32(entity.SegmentStateFlushed)
		segs := []int64{1, 2, 3}
		if req.CollectionName == "b" {
			segs = []int64{4, 5}
			if probes["b"] == 1 {
				state = int32(entity.SegmentStateSealed)
			}
		}
		resp := &vdbpb.GetPersistentSegmentInfoResponse{Status: sessiontest.Success()}
		for _, id := range segs {
			resp.Infos = append(resp.Infos, &vdbpb.PersistentSegmentInfo{SegmentID: id, State: state})
		}
		return resp, nil
	})
	c := newTestClient(t, conn)

	var reports []entity.Progress
	m := fastMonitor().WithProgress(func(p entity.Progress) { reports = append(reports, p) })
	require.NoError(t, c.Flush(context.Background(), []string{"a", "b"}, WithMonitor(m)))
	assert.Equal(t, []entity.Progress{{Total: 5, Finished: 3}, {Total: 5, Finished: 5}}, reports)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, probes)
}

func TestFlushUsesFlushState(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodFlush, &vdbpb.FlushResponse{
		Status:      sessiontest.Success(),
		CollSegIDs:  map[string][]int64{"a": {3, 1, 2}},
		CollFlushTs: map[string]uint64{"a": 100},
	})
	sessiontest.Reply(conn, vdbpb.MethodGetFlushState, &vdbpb.GetFlushStateResponse{Status: sessiontest.Success(), Flushed: true})
	c := newTestClient(t, conn)

	require.NoError(t, c.Flush(context.Background(), []string{"a"}))
	call, ok := conn.Last(vdbpb.MethodGetFlushState)
	require.True(t, ok)
	var req vdbpb.GetFlushStateRequest
	require.NoError(t, call.Decode(&req))
	assert.Equal(t, []int64{1, 2, 3}, req.SegmentIDs)
	assert.Equal(t, uint64(100), req.FlushTs)
	assert.Equal(t, 0, conn.Count(vdbpb.MethodGetPersistentSegmentInfo))
}

func TestAliases(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodDescribeAlias, &vdbpb.DescribeAliasResponse{
		Status:     sessiontest.Success(),
		Alias:      "novels",
		Collection: "books",
		DbName:     "default",
	})
	sessiontest.Reply(conn, vdbpb.MethodCreateAlias, sessiontest.Success())
	c := newTestClient(t, conn)
	ctx := context.Background()

	require.NoError(t, c.CreateAlias(ctx, "books", "novels"))
	desc, err := c.DescribeAlias(ctx, "novels")
	require.NoError(t, err)
	assert.Equal(t, &entity.AliasDesc{Name: "novels", CollectionName: "books", DBName: "default"}, desc)
	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(c.CreateAlias(ctx, "books", "")))
}

func TestRBAC(t *testing.T) {
	conn := sessiontest.NewConn()
	sessiontest.Reply(conn, vdbpb.MethodCreateCredential, sessiontest.Success())
	sessiontest.Reply(conn, vdbpb.MethodOperatePrivilege, sessiontest.Success())
	sessiontest.Reply(conn, vdbpb.MethodSelectGrant, &vdbpb.SelectGrantResponse{
		Status: sessiontest.Success(),
		Entities: []*vdbpb.GrantEntity{{
			Object:     &vdbpb.ObjectEntity{Name: "Collection"},
			ObjectName: "books",
			Grantor: &vdbpb.GrantorEntity{
				User:      &vdbpb.UserEntity{Name: "root"},
				Privilege: &vdbpb.PrivilegeEntity{Name: "Search"},
			},
			DbName: "default",
		}},
	})
	c := newTestClient(t, conn)
	ctx := context.Background()

	require.NoError(t, c.CreateUser(ctx, "alice", "secret"))
	call, _ := conn.Last(vdbpb.MethodCreateCredential)
	var cred vdbpb.CredentialRequest
	require.NoError(t, call.Decode(&cred))
	assert.Equal(t, encodePassword("secret"), cred.Password)

	require.NoError(t, c.GrantPrivilege(ctx, "reader", "Collection", "books", "Search", WithDB("default")))
	call, _ = conn.Last(vdbpb.MethodOperatePrivilege)
	var op vdbpb.OperatePrivilegeRequest
	require.NoError(t, call.Decode(&op))
	assert.Equal(t, vdbpb.OperateAdd, op.Type)
	assert.Equal(t, "reader", op.Entity.Role.Name)
	assert.Equal(t, "default", op.Entity.DbName)

	role, err := c.DescribeRole(ctx, "reader")
	require.NoError(t, err)
	assert.Equal(t, []entity.GrantItem{{
		ObjectType: "Collection",
		ObjectName: "books",
		RoleName:   "reader",
		Grantor:    "root",
		Privilege:  "Search",
		DBName:     "default",
	}}, role.Grants)

	assert.Equal(t, fault.InvalidArgument, fault.CodeOf(c.RevokePrivilege(ctx, "reader", "", "books", "Search")))
}
