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


package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/vearch/vdbclient/fault"
)

func TestShortMethod(t *testing.T) {
	assert.Equal(t, "Insert", ShortMethod("/vdb.proto.VectorDBService/Insert"))
	assert.Equal(t, "Insert", ShortMethod("Insert"))
}

func TestRecordRPC(t *testing.T) {
	m := NewRecorder()
	before := testutil.ToFloat64(rpcTotal.WithLabelValues("Search", "OK"))
	m.RecordRPC("/vdb.proto.VectorDBService/Search", nil, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(rpcTotal.WithLabelValues("Search", "OK")))

	timeouts := testutil.ToFloat64(timeoutTotal.WithLabelValues("Query"))
	m.RecordRPC("/vdb.proto.VectorDBService/Query", fault.New(fault.Timeout, "deadline"), time.Second)
	assert.Equal(t, timeouts+1, testutil.ToFloat64(timeoutTotal.WithLabelValues("Query")))
}

func TestRecordRetryAndWait(t *testing.T) {
	m := NewRecorder()
	before := testutil.ToFloat64(retryTotal.WithLabelValues("Insert"))
	m.RecordRetry("/vdb.proto.VectorDBService/Insert")
	assert.Equal(t, before+1, testutil.ToFloat64(retryTotal.WithLabelValues("Insert")))

	timeouts := testutil.ToFloat64(timeoutTotal.WithLabelValues("flush"))
	m.RecordWait("flush", fault.New(fault.Timeout, "wait"), time.Second)
	assert.Equal(t, timeouts+1, testutil.ToFloat64(timeoutTotal.WithLabelValues("flush")))
}

func TestBegin(t *testing.T) {
	m := NewRecorder()
	before := testutil.ToFloat64(inflightRPCs)
	done := m.Begin()
	assert.Equal(t, before+1, testutil.ToFloat64(inflightRPCs))
	done()
	assert.Equal(t, before, testutil.ToFloat64(inflightRPCs))
}
