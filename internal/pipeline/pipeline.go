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

// Package pipeline runs one client operation through the fixed sequence
// connection check, validation, send, wait and post-processing.
package pipeline

import (
	"context"
	"time"

	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
	"github.com/vearch/vdbclient/internal/retry"
)

type Stage int

const (
	Checking Stage = iota
	Validating
	Sending
	Waiting
	PostProcessing
	Done
	Failed
)

var stageNames = [...]string{"checking", "validating", "sending", "waiting", "post-processing", "done", "failed"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Terminal reports whether no further transition exists.
func (s Stage) Terminal() bool {
	return s == Done || s == Failed
}

// Next returns the stage that follows s once s finished with err.
func Next(s Stage, err error) Stage {
	if s.Terminal() {
		return s
	}
	if err != nil {
		return Failed
	}
	return s + 1
}

// Invoker issues single RPC attempts on an established session.
type Invoker interface {
	Connected() bool
	// Invoke performs one round trip and converts a non-success response
	// status into an error.
	Invoke(ctx context.Context, method string, req any, resp vdbpb.Response) error
	RetryPolicy() retry.Policy
}

// RetryObserver is implemented by invokers that want to see retries.
type RetryObserver interface {
	OnRetry(method string, attempt int, err error)
}

// Call describes one operation. Only Method and Build are required.
type Call[Req any, Resp vdbpb.Response] struct {
	Method   string
	Validate func() error
	Build    func() (Req, error)
	Wait     func(ctx context.Context, resp Resp) error
	Post     func(resp Resp) error
	// Observe sees every stage entered, terminal stages included.
	Observe func(Stage)
}

// Unary sends req through the retry executor and returns the response of
// the successful attempt.
func Unary[Req any, Resp any, PResp interface {
	*Resp
	vdbpb.Response
}](ctx context.Context, inv Invoker, method string, req Req) (PResp, error) {
	opts := []retry.Option{retry.WithName(method)}
	if obs, ok := inv.(RetryObserver); ok {
		opts = append(opts, retry.WithOnRetry(func(attempt int, _ time.Duration, err error) {
			obs.OnRetry(method, attempt, err)
		}))
	}
	var resp PResp
	err := retry.Do(ctx, inv.RetryPolicy(), func(ctx context.Context) error {
		resp = PResp(new(Resp))
		return inv.Invoke(ctx, method, req, resp)
	}, opts...)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Run drives c through its stages. On failure the response is nil and Post
// never runs.
func Run[Req any, Resp any, PResp interface {
	*Resp
	vdbpb.Response
}](ctx context.Context, inv Invoker, c Call[Req, PResp]) (PResp, error) {
	var (
		resp    PResp
		failure error
	)
	stage := Checking
	for {
		if c.Observe != nil {
			c.Observe(stage)
		}
		var err error
		switch stage {
		case Checking:
			if inv == nil || !inv.Connected() {
				err = fault.Newf(fault.NotConnected, "%s: connection is not ready", c.Method)
			}
		case Validating:
			if c.Validate != nil {
				err = c.Validate()
			}
		case Sending:
			var req Req
			if req, err = c.Build(); err == nil {
				resp, err = Unary[Req, Resp, PResp](ctx, inv, c.Method, req)
			}
		case Waiting:
			if c.Wait != nil {
				err = c.Wait(ctx, resp)
			}
		case PostProcessing:
			if c.Post != nil {
				err = c.Post(resp)
			}
		case Done:
			return resp, nil
		case Failed:
			return nil, failure
		}
		if err != nil {
			failure = err
		}
		stage = Next(stage, err)
	}
}
