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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
)

func TestLoadProgress(t *testing.T) {
	assert.Equal(t, entity.Progress{Total: 1}, loadProgress(1, nil))
	assert.Equal(t, entity.Progress{Total: 2, Finished: 1}, loadProgress(2, []int64{100, 30}))
	assert.Equal(t, entity.Progress{Total: 2}, loadProgress(2, []int64{99, 99}))
	assert.Equal(t, entity.Progress{Total: 1, Finished: 1}, loadProgress(1, []int64{120, 50}))
	assert.Equal(t, entity.Progress{Total: 3, Finished: 2}, loadProgress(3, []int64{100, 100}))
	assert.True(t, loadProgress(2, []int64{100, 100}).Done())
	assert.False(t, loadProgress(2, []int64{100}).Done())
}

func TestIndexBuildProgress(t *testing.T) {
	cases := []struct {
		name string
		desc entity.IndexDesc
		want entity.Progress
	}{
		{"finished", entity.IndexDesc{FieldName: "vec", State: entity.IndexStateFinished, TotalRows: 8, IndexedRows: 8}, entity.Progress{Total: 8, Finished: 8}},
		{"no rows", entity.IndexDesc{FieldName: "vec", State: entity.IndexStateNone}, entity.Progress{Total: 1, Finished: 1}},
		{"in progress", entity.IndexDesc{FieldName: "vec", State: entity.IndexStateInProgress, TotalRows: 8, IndexedRows: 3}, entity.Progress{Total: 8, Finished: 3}},
		{"all rows but not finished", entity.IndexDesc{FieldName: "vec", State: entity.IndexStateRetry, TotalRows: 8, IndexedRows: 8}, entity.Progress{Total: 8, Finished: 7}},
		{"empty collection", entity.IndexDesc{FieldName: "vec", State: entity.IndexStateUnissued}, entity.Progress{Total: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := indexBuildProgress("books", "vec", []entity.IndexDesc{tc.desc})
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	got, err := indexBuildProgress("books", "vec", nil)
	assert.NoError(t, err)
	assert.False(t, got.Done())

	_, err = indexBuildProgress("books", "vec", []entity.IndexDesc{{FieldName: "vec", State: entity.IndexStateFailed}})
	assert.Equal(t, fault.ServerFailed, fault.CodeOf(err))
}

func TestGuaranteeTs(t *testing.T) {
	c := &Client{cache: newClientCache(0)}
	level := func(l entity.ConsistencyLevel) *entity.ConsistencyLevel { return &l }

	assert.Equal(t, uint64(1), c.guaranteeTs("", "books", nil))
	assert.Equal(t, uint64(1), c.guaranteeTs("", "books", level(entity.ConsistencySession)))

	c.cache.updateTs("", "books", 99)
	assert.Equal(t, uint64(99), c.guaranteeTs("", "books", nil))
	assert.Equal(t, uint64(99), c.guaranteeTs("", "books", level(entity.ConsistencySession)))
	assert.Equal(t, uint64(0), c.guaranteeTs("", "books", level(entity.ConsistencyStrong)))
	assert.Equal(t, uint64(2), c.guaranteeTs("", "books", level(entity.ConsistencyBounded)))
	assert.Equal(t, uint64(1), c.guaranteeTs("", "books", level(entity.ConsistencyEventually)))
	assert.Equal(t, uint64(1), c.guaranteeTs("db2", "books", nil))
}
