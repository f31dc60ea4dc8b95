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


// Package sessiontest provides an in-process fake of the vector database
// service for tests. Requests and responses pass through the wire codec.
package sessiontest

import (
	"context"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/vearch/vdbclient/internal/proto/vdbpb"
)

// Call is one recorded invocation.
type Call struct {
	Method string
	MD     metadata.MD
	Req    []byte
}

// Decode unmarshals the recorded request into v.
func (c Call) Decode(v any) error {
	return vdbpb.Codec{}.Unmarshal(c.Req, v)
}

type handler func(ctx context.Context, data []byte) (any, error)

// Conn implements grpc.ClientConnInterface. Methods without a handler fail
// with codes.Unimplemented.
type Conn struct {
	mu       sync.Mutex
	handlers map[string]handler
	calls    []Call
}

// NewConn returns a fake whose Connect handshake succeeds.
func NewConn() *Conn {
	c := &Conn{handlers: make(map[string]handler)}
	Handle(c, vdbpb.MethodConnect, func(context.Context, *vdbpb.ConnectRequest) (any, error) {
		return &vdbpb.ConnectResponse{
			Status:     Success(),
			Identifier: 1,
			ServerInfo: &vdbpb.ServerInfo{BuildTags: "test"},
		}, nil
	})
	return c
}

// Handle registers fn for method, replacing any previous handler. The
// returned error should be a gRPC status error.
func Handle[Req any](c *Conn, method string, fn func(ctx context.Context, req *Req) (any, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[method] = func(ctx context.Context, data []byte) (any, error) {
		req := new(Req)
		if err := (vdbpb.Codec{}).Unmarshal(data, req); err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		return fn(ctx, req)
	}
}

// Reply registers a handler that always answers resp.
func Reply(c *Conn, method string, resp any) {
	Handle(c, method, func(context.Context, *struct{}) (any, error) {
		return resp, nil
	})
}

// Unregister removes the handler of method.
func (c *Conn) Unregister(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, method)
}

func (c *Conn) Invoke(ctx context.Context, method string, args any, reply any, _ ...grpc.CallOption) error {
	codec := vdbpb.Codec{}
	data, err := codec.Marshal(args)
	if err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	md, _ := metadata.FromOutgoingContext(ctx)

	c.mu.Lock()
	c.calls = append(c.calls, Call{Method: method, MD: md, Req: data})
	h := c.handlers[method]
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return status.FromContextError(err).Err()
	}
	if h == nil {
		return status.Errorf(codes.Unimplemented, "unknown method %s", method)
	}
	resp, err := h(ctx, data)
	if err != nil {
		return err
	}
	out, err := codec.Marshal(resp)
	if err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	return codec.Unmarshal(out, reply)
}

func (c *Conn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, status.Error(codes.Unimplemented, "streams are not supported")
}

// Calls returns the recorded invocations of method, or all of them when
// method is empty.
func (c *Conn) Calls(method string) []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Call
	for _, call := range c.calls {
		if method == "" || call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// Count is len(Calls(method)).
func (c *Conn) Count(method string) int {
	return len(c.Calls(method))
}

// Last returns the most recent call of method.
func (c *Conn) Last(method string) (Call, bool) {
	calls := c.Calls(method)
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

func Success() *vdbpb.Status {
	return &vdbpb.Status{}
}

func Failure(code int32, reason string) *vdbpb.Status {
	return &vdbpb.Status{Code: code, ErrorCode: vdbpb.StatusUnexpectedError, Reason: reason}
}
