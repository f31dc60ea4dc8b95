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


// Package client is the public API of the vector database client.
package client

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/vearch/vdbclient/entity"
	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/config"
	"github.com/vearch/vdbclient/internal/pipeline"
	"github.com/vearch/vdbclient/internal/pkg/log"
	"github.com/vearch/vdbclient/internal/pkg/metrics"
	"github.com/vearch/vdbclient/internal/poll"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
	"github.com/vearch/vdbclient/internal/session"
)

// Client talks to one server. It is safe for concurrent use; calls are
// independent and nothing is rolled back when a later call fails.
type Client struct {
	sess    *session.Session
	cache   *clientCache
	monitor entity.ProgressMonitor
	metrics *metrics.Recorder
}

// New dials the server described by param and performs the handshake.
func New(ctx context.Context, param ConnectParam, opts ...Option) (*Client, error) {
	o := applyOptions(opts)
	sess, err := session.Dial(ctx, param.sessionConfig(o.retry, config.GetBuildVersion()), o.dialOpts...)
	if err != nil {
		return nil, err
	}
	return newClient(sess, o), nil
}

// NewWithConn runs the handshake over an existing channel. Closing the
// client leaves conn open.
func NewWithConn(ctx context.Context, conn grpc.ClientConnInterface, param ConnectParam, opts ...Option) (*Client, error) {
	o := applyOptions(opts)
	sess := session.New(conn, param.sessionConfig(o.retry, config.GetBuildVersion()))
	if err := sess.Connect(ctx); err != nil {
		return nil, err
	}
	return newClient(sess, o), nil
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		log.Regist(o.logger)
	}
	return o
}

func newClient(sess *session.Session, o options) *Client {
	return &Client{
		sess:    sess,
		cache:   newClientCache(o.cacheTTL),
		monitor: o.monitor,
		metrics: metrics.NewRecorder(),
	}
}

func (c *Client) Close() error {
	c.cache.purge()
	return c.sess.Close()
}

// UseDatabase switches the database later calls default to. An empty name
// selects the server's default database.
func (c *Client) UseDatabase(db string) error {
	if !c.sess.Connected() {
		return fault.New(fault.NotConnected, "connection is not ready")
	}
	c.cache.purge()
	c.sess.UseDatabase(db)
	return nil
}

// CurrentDatabase is the database calls default to; empty means the
// server's default database.
func (c *Client) CurrentDatabase() string {
	return c.sess.Database()
}

// CheckHealth reports whether the server considers itself healthy and why
// not.
func (c *Client) CheckHealth(ctx context.Context) (bool, []string, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.CheckHealthRequest, *vdbpb.CheckHealthResponse]{
		Method: vdbpb.MethodCheckHealth,
		Build:  func() (*vdbpb.CheckHealthRequest, error) { return &vdbpb.CheckHealthRequest{}, nil },
	})
	if err != nil {
		return false, nil, err
	}
	return resp.IsHealthy, resp.Reasons, nil
}

func (c *Client) GetServerVersion(ctx context.Context) (string, error) {
	resp, err := invoke(ctx, c, pipeline.Call[*vdbpb.GetVersionRequest, *vdbpb.GetVersionResponse]{
		Method: vdbpb.MethodGetVersion,
		Build:  func() (*vdbpb.GetVersionRequest, error) { return &vdbpb.GetVersionRequest{}, nil },
	})
	if err != nil {
		return "", err
	}
	return resp.Version, nil
}

// invoke runs one operation through the call pipeline on c's session.
func invoke[Req any, Resp any, PResp interface {
	*Resp
	vdbpb.Response
}](ctx context.Context, c *Client, call pipeline.Call[Req, PResp]) (PResp, error) {
	resp, err := pipeline.Run[Req, Resp, PResp](ctx, c.sess, call)
	if err != nil {
		log.Errorf("%s failed: %v", metrics.ShortMethod(call.Method), err)
	}
	return resp, err
}

// exec sends a request whose response is a bare status. validate runs after
// the connection check and may be nil.
func (c *Client) exec(ctx context.Context, method string, validate func() error, req any) error {
	_, err := invoke(ctx, c, pipeline.Call[any, *vdbpb.Status]{
		Method:   method,
		Validate: validate,
		Build:    func() (any, error) { return req, nil },
	})
	return err
}

func (c *Client) callOptions(opts []CallOption) callOptions {
	o := callOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.db == "" {
		o.db = c.sess.Database()
	}
	return o
}

func (c *Client) monitorOf(o callOptions) entity.ProgressMonitor {
	if o.monitor != nil {
		return *o.monitor
	}
	return c.monitor
}

// wait polls probe under m and records how long op waited.
func (c *Client) wait(ctx context.Context, op, what string, m entity.ProgressMonitor, probe poll.Probe) error {
	begin := time.Now()
	err := poll.Wait(ctx, what, m, probe)
	if m.Timeout > 0 {
		c.metrics.RecordWait(op, err, time.Since(begin))
	}
	return err
}

// unary sends one probe request through the retry executor.
func unary[Req any, Resp any, PResp interface {
	*Resp
	vdbpb.Response
}](ctx context.Context, c *Client, method string, req Req) (PResp, error) {
	return pipeline.Unary[Req, Resp, PResp](ctx, c.sess, method, req)
}

func requireName(kind, name string) error {
	if name == "" {
		return fault.Newf(fault.InvalidArgument, "%s name is empty", kind)
	}
	return nil
}
