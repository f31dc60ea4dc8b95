// Copyright 2019 The Vearch Authors.
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
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/internal/pkg/log"
)

func cacheCollectionKey(db, collection string) string {
	return db + "/" + collection
}

// clientCache keeps collection descriptions so DML and search can be
// validated locally.
type clientCache struct {
	collections *cache.Cache

	// last write timestamp per collection, for session consistency
	gtsLock sync.Mutex
	gts     map[string]uint64
}

func newClientCache(ttl time.Duration) *clientCache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := 2 * ttl
	if ttl == cache.NoExpiration {
		cleanup = 0
	}
	return &clientCache{
		collections: cache.New(ttl, cleanup),
		gts:         make(map[string]uint64),
	}
}

// CollectionByCache returns the cached description or loads it with reload.
// A forced reload skips the cache.
func (cliCache *clientCache) CollectionByCache(ctx context.Context, db, collection string, force bool,
	reload func(ctx context.Context) (*entity.CollectionDesc, error)) (*entity.CollectionDesc, error) {
	key := cacheCollectionKey(db, collection)
	if !force {
		if get, found := cliCache.collections.Get(key); found {
			return get.(*entity.CollectionDesc), nil
		}
	}

	log.Debugf("to reload db:[%s] collection:[%s]", db, collection)
	desc, err := reload(ctx)
	if err != nil {
		return nil, err
	}
	cliCache.collections.SetDefault(key, desc)
	return desc, nil
}

func (cliCache *clientCache) removeCollection(db, collection string) {
	cliCache.collections.Delete(cacheCollectionKey(db, collection))
}

func (cliCache *clientCache) purge() {
	cliCache.collections.Flush()
	cliCache.gtsLock.Lock()
	cliCache.gts = make(map[string]uint64)
	cliCache.gtsLock.Unlock()
}

func (cliCache *clientCache) size() int {
	return cliCache.collections.ItemCount()
}

// updateTs records the newest write timestamp of a collection.
func (cliCache *clientCache) updateTs(db, collection string, ts uint64) {
	if ts == 0 {
		return
	}
	key := cacheCollectionKey(db, collection)
	cliCache.gtsLock.Lock()
	defer cliCache.gtsLock.Unlock()
	if ts > cliCache.gts[key] {
		cliCache.gts[key] = ts
	}
}

func (cliCache *clientCache) collectionTs(db, collection string) (uint64, bool) {
	cliCache.gtsLock.Lock()
	defer cliCache.gtsLock.Unlock()
	ts, ok := cliCache.gts[cacheCollectionKey(db, collection)]
	return ts, ok
}
