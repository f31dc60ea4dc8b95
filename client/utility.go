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

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/pkg/log"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// flushTracker follows the sealed segments of a flush until every one of
// them is persisted.
type flushTracker struct {
	db      string
	total   uint64
	pending map[string]map[int64]struct{}
	flushTs map[string]uint64
}

func newFlushTracker(db string, resp *vdbpb.FlushResponse) *flushTracker {
	t := &flushTracker{
		db:      db,
		pending: make(map[string]map[int64]struct{}, len(resp.CollSegIDs)),
		flushTs: resp.CollFlushTs,
	}
	for coll, segs := range resp.CollSegIDs {
		set := make(map[int64]struct{}, len(segs))
		for _, id := range segs {
			set[id] = struct{}{}
		}
		t.total += uint64(len(set))
		if len(set) > 0 {
			t.pending[coll] = set
		}
	}
	return t
}

func (t *flushTracker) progress() entity.Progress {
	var left uint64
	for _, set := range t.pending {
		left += uint64(len(set))
	}
	return entity.Progress{Total: t.total, Finished: t.total - left}
}

// probe asks the server about every collection that still has pending
// segments.
func (t *flushTracker) probe(ctx context.Context, c *Client) (entity.Progress, error) {
	colls := maps.Keys(t.pending)
	slices.Sort(colls)
	for _, coll := range colls {
		segs := t.pending[coll]
		if ts, ok := t.flushTs[coll]; ok {
			ids := maps.Keys(segs)
			slices.Sort(ids)
			resp, err := unary[*vdbpb.GetFlushStateRequest, vdbpb.GetFlushStateResponse](ctx, c, vdbpb.MethodGetFlushState,
				&vdbpb.GetFlushStateRequest{DbName: t.db, CollectionName: coll, SegmentIDs: ids, FlushTs: ts})
			if err != nil {
				return entity.Progress{}, err
			}
			if resp.Flushed {
				delete(t.pending, coll)
			}
			continue
		}
		resp, err := unary[*vdbpb.CollectionRequest, vdbpb.GetPersistentSegmentInfoResponse](ctx, c, vdbpb.MethodGetPersistentSegmentInfo,
			&vdbpb.CollectionRequest{DbName: t.db, CollectionName: coll})
		if err != nil {
			return entity.Progress{}, err
		}
		for _, info := range resp.Infos {
			if info != nil && entity.SegmentState(info.State) == entity.SegmentStateFlushed {
				delete(segs, info.SegmentID)
			}
		}
		if len(segs) == 0 {
			delete(t.pending, coll)
		}
	}
	p := t.progress()
	log.Debugf("flush progress %d/%d segments", p.Finished, p.Total)
	return p, nil
}

// Flush seals the growing segments of the collections and waits under the
// call's progress monitor until they are persisted.
func (c *Client) Flush(ctx context.Context, collections []string, opts ...CallOption) error {
	o := c.callOptions(opts)
	m := c.monitorOf(o)
	_, err := invoke(ctx, c, pipeline.Call[*vdbpb.FlushRequest, *vdbpb.FlushResponse]{
		Method: vdbpb.MethodFlush,
		Validate: func() error {
			if len(collections) == 0 {
				return fault.New(fault.InvalidArgument, "no collection to flush")
			}
			for _, coll := range collections {
				if err := requireName("collection", coll); err != nil {
					return err
				}
			}
			return nil
		},
		Build: func() (*vdbpb.FlushRequest, error) {
			return &vdbpb.FlushRequest{DbName: o.db, CollectionNames: collections}, nil
		},
		Wait: func(ctx context.Context, resp *vdbpb.FlushResponse) error {
			t := newFlushTracker(o.db, resp)
			what := fmt.Sprintf("flush %s", strings.Join(collections, ","))
			return c.wait(ctx, "flush", what, m, func(ctx context.Context) (entity.Progress, error) {
				return t.probe(ctx, c)
			})
		},
	})
	return err
}

// GetFlushState reports whether the segments are persisted up to flushTs.
func (c *Client) GetFlushState(ctx context.Context, collection string, segmentIDs []int64, flushTs uint64, opts ...CallOption) (bool, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.GetFlushStateRequest, *vdbpb.GetFlushStateResponse]{
		Method:   vdbpb.MethodGetFlushState,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.GetFlushStateRequest, error) {
			return &vdbpb.GetFlushStateRequest{DbName: o.db, CollectionName: collection, SegmentIDs: segmentIDs, FlushTs: flushTs}, nil
		},
	})
	if err != nil {
		return false, err
	}
	return resp.Flushed, nil
}

func (c *Client) GetPersistentSegmentInfo(ctx context.Context, collection string, opts ...CallOption) ([]entity.SegmentInfo, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.CollectionRequest, *vdbpb.GetPersistentSegmentInfoResponse]{
		Method:   vdbpb.MethodGetPersistentSegmentInfo,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.CollectionRequest, error) {
			return &vdbpb.CollectionRequest{DbName: o.db, CollectionName: collection}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	infos := make([]entity.SegmentInfo, 0, len(resp.Infos))
	for _, info := range resp.Infos {
		if info == nil {
			continue
		}
		infos = append(infos, entity.SegmentInfo{
			CollectionID: info.CollectionID,
			PartitionID:  info.PartitionID,
			SegmentID:    info.SegmentID,
			RowCount:     info.NumRows,
			State:        entity.SegmentState(info.State),
		})
	}
	return infos, nil
}

// Compact starts a compaction job and returns its id.
func (c *Client) Compact(ctx context.Context, collection string, major bool, opts ...CallOption) (int64, error) {
	o := c.callOptions(opts)
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.ManualCompactionRequest, *vdbpb.ManualCompactionResponse]{
		Method:   vdbpb.MethodManualCompaction,
		Validate: func() error { return requireName("collection", collection) },
		Build: func() (*vdbpb.ManualCompactionRequest, error) {
			return &vdbpb.ManualCompactionRequest{DbName: o.db, CollectionName: collection, MajorCompaction: major}, nil
		},
	})
	if err != nil {
		return 0, err
	}
	return resp.CompactionID, nil
}

func (c *Client) GetCompactionState(ctx context.Context, compactionID int64) (entity.CompactionState, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.GetCompactionStateRequest, *vdbpb.GetCompactionStateResponse]{
		Method: vdbpb.MethodGetCompactionState,
		Build: func() (*vdbpb.GetCompactionStateRequest, error) {
			return &vdbpb.GetCompactionStateRequest{CompactionID: compactionID}, nil
		},
	})
	if err != nil {
		return entity.CompactionState{}, err
	}
	return entity.CompactionState{
		State:          entity.CompactionStateCode(resp.State),
		ExecutingPlans: resp.ExecutingPlanNo,
		TimeoutPlans:   resp.TimeoutPlanNo,
		CompletedPlans: resp.CompletedPlanNo,
		FailedPlans:    resp.FailedPlanNo,
	}, nil
}
