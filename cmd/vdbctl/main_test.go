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

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	saved := []string{cfgFile, address, database, logLevel}
	t.Cleanup(func() {
		cfgFile, address, database, logLevel = saved[0], saved[1], saved[2], saved[3]
	})
	cfgFile, address, database, logLevel = "", "", "", ""
}

func TestLoadConfigPrecedence(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "client.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
address = "file:19530"
db_name = "from_file"
username = "root"
password = "secret"

[log]
level = "warn"
`), 0o644))

	t.Setenv("VDB_ADDRESS", "env:19530")
	cfgFile = path
	address = ""
	database = "from_flag"

	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "env:19530", c.Server.Address)
	assert.Equal(t, "from_flag", c.Server.DBName)
	assert.Equal(t, "warn", c.Log.Level)

	address = "flag:19530"
	logLevel = "debug"
	c, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "flag:19530", c.Server.Address)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadConfigMissingFile(t *testing.T) {
	resetFlags(t)
	cfgFile = filepath.Join(t.TempDir(), "absent.toml")
	_, err := loadConfig()
	require.Error(t, err)
}

func TestConnectParam(t *testing.T) {
	c := config.Default()
	c.Server.Address = "db.example:443"
	c.Server.Username = "root"
	c.Server.Password = "secret"
	c.Server.DBName = "books"
	c.Server.TLS = true
	c.Server.ServerName = "db.example"
	c.Server.RpcTimeout = 1500
	c.Limits.MaxRPS = 50
	c.Limits.Burst = 5

	p := connectParam(c)
	assert.Equal(t, "db.example:443", p.Address)
	assert.Equal(t, "root", p.Username)
	assert.Equal(t, "secret", p.Password)
	assert.Empty(t, p.Token)
	assert.Equal(t, "books", p.DBName)
	assert.True(t, p.TLS)
	assert.Equal(t, "db.example", p.ServerName)
	assert.Equal(t, 1500*time.Millisecond, p.RPCTimeout)
	assert.Equal(t, 10*time.Second, p.ConnectTimeout)
	assert.Equal(t, 50.0, p.MaxRPS)
	assert.Equal(t, 5, p.Burst)

	c.Server.Token = "tok"
	p = connectParam(c)
	assert.Equal(t, "tok", p.Token)
	assert.Empty(t, p.Username)
}

func TestRetryParam(t *testing.T) {
	c := config.Default()
	c.Retry.MaxRetry = 3
	c.Retry.InitialBackoff = 20
	c.Retry.MaxBackoff = 400
	c.Retry.BackoffMultiple = 2
	c.Retry.RetryOnRateLimit = false

	p := retryParam(c)
	assert.Equal(t, 3, p.MaxRetry)
	assert.Equal(t, 20*time.Millisecond, p.InitialBackoff)
	assert.Equal(t, 400*time.Millisecond, p.MaxBackoff)
	assert.Equal(t, 2.0, p.BackoffMultiplier)
	assert.False(t, p.RetryOnRateLimit)
}

func TestBuildIndexDesc(t *testing.T) {
	saved := []any{indexName, indexType, metricType, indexParams}
	t.Cleanup(func() {
		indexName, indexType, metricType = saved[0].(string), saved[1].(string), saved[2].(string)
		indexParams, _ = saved[3].([]string)
	})

	indexName, indexType, metricType = "vec_idx", "hnsw", "cosine"
	indexParams = []string{"M=16", " efConstruction = 200 "}
	idx, err := buildIndexDesc("vec")
	require.NoError(t, err)
	assert.Equal(t, "vec", idx.FieldName)
	assert.Equal(t, "vec_idx", idx.IndexName)
	assert.Equal(t, entity.IndexHNSW, idx.IndexType)
	assert.Equal(t, entity.MetricCosine, idx.MetricType)
	assert.Equal(t, map[string]string{"M": "16", "efConstruction": "200"}, idx.Params)

	indexParams = []string{"nlist"}
	_, err = buildIndexDesc("vec")
	require.Error(t, err)
}

func TestFieldLine(t *testing.T) {
	pk := entity.NewFieldSchema("id", entity.DataTypeInt64).WithPrimaryKey(true).WithAutoID(true)
	assert.Equal(t, fmt.Sprintf("%-24s Int64 [primary,auto_id]", "id"), fieldLine(pk))

	vec := entity.NewFieldSchema("vec", entity.DataTypeFloatVector).WithDim(8)
	assert.Equal(t, fmt.Sprintf("%-24s FloatVector dim=8", "vec"), fieldLine(vec))
}

func TestWaitBar(t *testing.T) {
	var buf bytes.Buffer
	b := newWaitBar(&buf, "loading")
	b.report(entity.Progress{Total: 10, Finished: 5})
	require.NotNil(t, b.bar)
	assert.Equal(t, int64(10), b.bar.State().Max)
	assert.Equal(t, int64(5), b.bar.State().CurrentNum)

	b.report(entity.Progress{Total: 20, Finished: 10})
	assert.Equal(t, int64(20), b.bar.State().Max)
	assert.Equal(t, int64(10), b.bar.State().CurrentNum)

	b.report(entity.Progress{Total: 20, Finished: 20})
	assert.Equal(t, int64(20), b.bar.State().CurrentNum)
	b.finish()
	assert.NotEmpty(t, buf.String())
}

func TestMonitorNoWait(t *testing.T) {
	saved := noWait
	t.Cleanup(func() { noWait = saved })
	noWait = true
	m, done := monitor("flushing")
	defer done()
	assert.Zero(t, m.Timeout)
	assert.Nil(t, m.OnProgress)
}
