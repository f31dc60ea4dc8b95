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
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/spf13/cast"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/marshal"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// Search and query param keys.
const (
	paramAnnsField     = "anns_field"
	paramTopK          = "topk"
	paramMetricType    = "metric_type"
	paramOffset        = "offset"
	paramLimit         = "limit"
	paramRoundDecimal  = "round_decimal"
	paramIgnoreGrowing = "ignore_growing"
	paramGroupByField  = "group_by_field"
	paramParams        = "params"
	paramRadius        = "radius"
	paramRangeFilter   = "range_filter"
)

// guaranteeTs picks the timestamp reads must observe. Without an explicit
// level the collection default applies and the session's own writes stay
// visible.
func (c *Client) guaranteeTs(db, collection string, level *entity.ConsistencyLevel) uint64 {
	if level == nil || *level == entity.ConsistencySession {
		if ts, ok := c.cache.collectionTs(db, collection); ok {
			return ts
		}
		return 1
	}
	switch *level {
	case entity.ConsistencyStrong:
		return 0
	case entity.ConsistencyBounded:
		return 2
	}
	return 1
}

// SearchOption describes one vector search.
type SearchOption struct {
	collection    string
	partitions    []string
	vectors       entity.Field
	annsField     string
	topK          int
	filter        string
	outputFields  []string
	metric        entity.MetricType
	params        map[string]any
	consistency   *entity.ConsistencyLevel
	offset        int
	roundDecimal  int
	ignoreGrowing bool
	groupBy       string
}

// NewSearchOption searches collection for the topK nearest rows of every row
// in vectors.
func NewSearchOption(collection string, topK int, vectors entity.Field) *SearchOption {
	return &SearchOption{
		collection:   collection,
		topK:         topK,
		vectors:      vectors,
		params:       make(map[string]any),
		roundDecimal: -1,
	}
}

// WithANNSField names the vector field to search; it may be left out when
// the collection has a single vector field.
func (o *SearchOption) WithANNSField(field string) *SearchOption {
	o.annsField = field
	return o
}

func (o *SearchOption) WithFilter(expr string) *SearchOption {
	o.filter = expr
	return o
}

func (o *SearchOption) WithOutputFields(fields ...string) *SearchOption {
	o.outputFields = fields
	return o
}

func (o *SearchOption) WithPartitions(partitions ...string) *SearchOption {
	o.partitions = partitions
	return o
}

func (o *SearchOption) WithMetricType(m entity.MetricType) *SearchOption {
	o.metric = m
	return o
}

// WithSearchParam sets an index specific param such as nprobe, ef, radius
// or range_filter.
func (o *SearchOption) WithSearchParam(key string, value any) *SearchOption {
	o.params[key] = value
	return o
}

func (o *SearchOption) WithConsistencyLevel(level entity.ConsistencyLevel) *SearchOption {
	o.consistency = &level
	return o
}

func (o *SearchOption) WithOffset(offset int) *SearchOption {
	o.offset = offset
	return o
}

func (o *SearchOption) WithRoundDecimal(n int) *SearchOption {
	o.roundDecimal = n
	return o
}

func (o *SearchOption) WithIgnoreGrowing(ignore bool) *SearchOption {
	o.ignoreGrowing = ignore
	return o
}

func (o *SearchOption) WithGroupByField(field string) *SearchOption {
	o.groupBy = field
	return o
}

// annsFieldOf resolves the searched field against the schema.
func annsFieldOf(schema *entity.CollectionSchema, name string) (*entity.FieldSchema, error) {
	if name == "" {
		vfs := schema.VectorFields()
		if len(vfs) != 1 {
			return nil, fault.Newf(fault.InvalidArgument, "collection %s has %d vector fields, anns field is required", schema.Name, len(vfs))
		}
		return vfs[0], nil
	}
	fs := schema.Field(name)
	if fs == nil {
		return nil, fault.Newf(fault.InvalidArgument, "anns field %s does not exist in collection %s", name, schema.Name)
	}
	if !fs.DataType.IsVector() {
		return nil, fault.Newf(fault.InvalidArgument, "anns field %s is %s, not a vector field", name, fs.DataType)
	}
	return fs, nil
}

// checkSearch validates the search against the collection schema.
func checkSearch(schema *entity.CollectionSchema, opt *SearchOption) (*entity.FieldSchema, error) {
	if opt.vectors == nil || opt.vectors.Count() == 0 {
		return nil, fault.New(fault.VectorIsEmpty, "no target vectors to search")
	}
	if opt.topK <= 0 {
		return nil, fault.Newf(fault.InvalidArgument, "topk %d must be positive", opt.topK)
	}
	if opt.offset < 0 {
		return nil, fault.Newf(fault.InvalidArgument, "offset %d must not be negative", opt.offset)
	}
	fs, err := annsFieldOf(schema, opt.annsField)
	if err != nil {
		return nil, err
	}
	vt := opt.vectors.Type()
	// text queries are embedded by the server into sparse vectors
	textSearch := vt == entity.DataTypeVarChar && fs.DataType == entity.DataTypeSparseFloatVector
	if vt != fs.DataType && !textSearch {
		return nil, fault.Newf(fault.InvalidArgument, "target vectors are %s, field %s is %s", vt, fs.Name, fs.DataType)
	}
	if err := marshal.CheckDim(opt.vectors, fs); err != nil {
		return nil, err
	}
	if opt.metric != entity.MetricDefault && opt.metric.IsBinary() != (fs.DataType == entity.DataTypeBinaryVector) {
		return nil, fault.Newf(fault.InvalidArgument, "metric %s does not apply to %s field %s", opt.metric, fs.DataType, fs.Name)
	}
	return fs, nil
}

// searchParams renders the search settings. Extra params are sent one by
// one and again as a JSON object under "params", radius and range_filter
// as numbers.
func searchParams(opt *SearchOption, anns string) ([]*vdbpb.KeyValuePair, error) {
	kvs := []*vdbpb.KeyValuePair{
		{Key: paramAnnsField, Value: anns},
		{Key: paramTopK, Value: strconv.Itoa(opt.topK)},
	}
	if opt.metric != entity.MetricDefault {
		kvs = append(kvs, &vdbpb.KeyValuePair{Key: paramMetricType, Value: string(opt.metric)})
	}
	kvs = append(kvs,
		&vdbpb.KeyValuePair{Key: paramOffset, Value: strconv.Itoa(opt.offset)},
		&vdbpb.KeyValuePair{Key: paramRoundDecimal, Value: strconv.Itoa(opt.roundDecimal)},
		&vdbpb.KeyValuePair{Key: paramIgnoreGrowing, Value: strconv.FormatBool(opt.ignoreGrowing)},
	)
	if opt.groupBy != "" {
		kvs = append(kvs, &vdbpb.KeyValuePair{Key: paramGroupByField, Value: opt.groupBy})
	}

	extra := make(map[string]any, len(opt.params))
	for k, v := range opt.params {
		if k == paramRadius || k == paramRangeFilter {
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, fault.Wrapf(fault.InvalidArgument, err, "search param %s", k)
			}
			extra[k] = f
			continue
		}
		extra[k] = marshal.ParamString(v)
	}
	kvs = append(kvs, marshal.KVPairs(opt.params)...)
	js, err := sonic.MarshalString(extra)
	if err != nil {
		return nil, fault.Wrap(fault.InvalidArgument, "encode search params", err)
	}
	return append(kvs, &vdbpb.KeyValuePair{Key: paramParams, Value: js}), nil
}

// Search runs a vector search and returns one result set per target vector.
func (c *Client) Search(ctx context.Context, opt *SearchOption, opts ...CallOption) (entity.SearchResults, error) {
	o := c.callOptions(opts)
	var anns *entity.FieldSchema
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.SearchRequest, *vdbpb.SearchResults]{
		Method: vdbpb.MethodSearch,
		Validate: func() error {
			if opt == nil {
				return fault.New(fault.InvalidArgument, "search option is nil")
			}
			if err := requireName("collection", opt.collection); err != nil {
				return err
			}
			desc, err := c.describe(ctx, o.db, opt.collection, false)
			if err != nil {
				return err
			}
			anns, err = checkSearch(desc.Schema, opt)
			return err
		},
		Build: func() (*vdbpb.SearchRequest, error) {
			vectors, err := marshal.ToWire(opt.vectors)
			if err != nil {
				return nil, err
			}
			params, err := searchParams(opt, anns.Name)
			if err != nil {
				return nil, err
			}
			req := &vdbpb.SearchRequest{
				DbName:             o.db,
				CollectionName:     opt.collection,
				PartitionNames:     opt.partitions,
				Dsl:                opt.filter,
				PlaceholderGroup:   &vdbpb.PlaceholderGroup{Vectors: vectors},
				OutputFields:       opt.outputFields,
				SearchParams:       params,
				Nq:                 int64(opt.vectors.Count()),
				GuaranteeTimestamp: c.guaranteeTs(o.db, opt.collection, opt.consistency),
			}
			if opt.consistency == nil {
				req.UseDefaultConsistency = true
			} else {
				req.ConsistencyLevel = int32(*opt.consistency)
			}
			return req, nil
		},
	})
	if err != nil {
		return entity.SearchResults{}, err
	}
	return marshal.SearchResultsFromWire(resp.Results)
}

// QueryOption describes a scalar query.
type QueryOption struct {
	collection   string
	filter       string
	outputFields []string
	partitions   []string
	limit        int
	offset       int
	consistency  *entity.ConsistencyLevel
}

func NewQueryOption(collection string) *QueryOption {
	return &QueryOption{collection: collection}
}

func (o *QueryOption) WithFilter(expr string) *QueryOption {
	o.filter = expr
	return o
}

func (o *QueryOption) WithOutputFields(fields ...string) *QueryOption {
	o.outputFields = fields
	return o
}

func (o *QueryOption) WithPartitions(partitions ...string) *QueryOption {
	o.partitions = partitions
	return o
}

func (o *QueryOption) WithLimit(limit int) *QueryOption {
	o.limit = limit
	return o
}

func (o *QueryOption) WithOffset(offset int) *QueryOption {
	o.offset = offset
	return o
}

func (o *QueryOption) WithConsistencyLevel(level entity.ConsistencyLevel) *QueryOption {
	o.consistency = &level
	return o
}

// Query returns the output columns of the rows matching the filter. Either a
// filter or a limit is required.
func (c *Client) Query(ctx context.Context, opt *QueryOption, opts ...CallOption) (entity.QueryResults, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.QueryRequest, *vdbpb.QueryResults]{
		Method: vdbpb.MethodQuery,
		Validate: func() error {
			if opt == nil {
				return fault.New(fault.InvalidArgument, "query option is nil")
			}
			if err := requireName("collection", opt.collection); err != nil {
				return err
			}
			if opt.filter == "" && opt.limit <= 0 {
				return fault.New(fault.InvalidArgument, "query requires a filter or a limit")
			}
			if opt.limit < 0 || opt.offset < 0 {
				return fault.Newf(fault.InvalidArgument, "limit %d and offset %d must not be negative", opt.limit, opt.offset)
			}
			return nil
		},
		Build: func() (*vdbpb.QueryRequest, error) {
			params := map[string]any{}
			if opt.limit > 0 {
				params[paramLimit] = opt.limit
			}
			if opt.offset > 0 {
				params[paramOffset] = opt.offset
			}
			req := &vdbpb.QueryRequest{
				DbName:             o.db,
				CollectionName:     opt.collection,
				Expr:               opt.filter,
				OutputFields:       opt.outputFields,
				PartitionNames:     opt.partitions,
				QueryParams:        marshal.KVPairs(params),
				GuaranteeTimestamp: c.guaranteeTs(o.db, opt.collection, opt.consistency),
			}
			if opt.consistency == nil {
				req.UseDefaultConsistency = true
			} else {
				req.ConsistencyLevel = int32(*opt.consistency)
			}
			return req, nil
		},
	})
	if err != nil {
		return entity.QueryResults{}, err
	}
	return marshal.QueryResultsFromWire(resp.FieldsData)
}

// Get fetches rows by primary key.
func (c *Client) Get(ctx context.Context, collection string, ids entity.IDArray, outputFields []string, opts ...CallOption) (entity.QueryResults, error) {
	o := c.callOptions(opts)
	expr, err := c.pkExpr(ctx, o.db, collection, ids)
	if err != nil {
		return entity.QueryResults{}, err
	}
	return c.Query(ctx, NewQueryOption(collection).WithFilter(expr).WithOutputFields(outputFields...), opts...)
}
