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


package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
	"github.com/vearch/vdbclient/internal/retry"
)

type fakeInvoker struct {
	connected bool
	methods   []string
	results   []error
	policy    retry.Policy
}

func (f *fakeInvoker) Connected() bool { return f.connected }

func (f *fakeInvoker) RetryPolicy() retry.Policy { return f.policy }

func (f *fakeInvoker) Invoke(_ context.Context, method string, _ any, resp vdbpb.Response) error {
	f.methods = append(f.methods, method)
	if len(f.results) > 0 {
		err := f.results[0]
		f.results = f.results[1:]
		if err != nil {
			return err
		}
	}
	if b, ok := resp.(*vdbpb.BoolResponse); ok {
		b.Value = true
	}
	return nil
}

func newInvoker() *fakeInvoker {
	return &fakeInvoker{
		connected: true,
		policy:    retry.Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, Multiplier: 1, RetryOnRateLimit: true},
	}
}

func build() (*vdbpb.CollectionRequest, error) {
	return &vdbpb.CollectionRequest{CollectionName: "book"}, nil
}

func TestNextTransitions(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		from Stage
		err  error
		want Stage
	}{
		{Checking, nil, Validating},
		{Validating, nil, Sending},
		{Sending, nil, Waiting},
		{Waiting, nil, PostProcessing},
		{PostProcessing, nil, Done},
		{Checking, boom, Failed},
		{Validating, boom, Failed},
		{Sending, boom, Failed},
		{Waiting, boom, Failed},
		{PostProcessing, boom, Failed},
		{Done, nil, Done},
		{Done, boom, Done},
		{Failed, nil, Failed},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Next(c.from, c.err), "%s err=%v", c.from, c.err)
	}
	assert.Equal(t, "post-processing", PostProcessing.String())
	assert.Equal(t, "unknown", Stage(42).String())
}

func TestRunAllStages(t *testing.T) {
	inv := newInvoker()
	var stages []Stage
	posted := false
	resp, err := Run(context.Background(), inv, Call[*vdbpb.CollectionRequest, *vdbpb.BoolResponse]{
		Method:   vdbpb.MethodHasCollection,
		Validate: func() error { return nil },
		Build:    build,
		Wait:     func(context.Context, *vdbpb.BoolResponse) error { return nil },
		Post: func(r *vdbpb.BoolResponse) error {
			posted = r.Value
			return nil
		},
		Observe: func(s Stage) { stages = append(stages, s) },
	})
	require.NoError(t, err)
	assert.True(t, resp.Value)
	assert.True(t, posted)
	assert.Equal(t, []Stage{Checking, Validating, Sending, Waiting, PostProcessing, Done}, stages)
	assert.Equal(t, []string{vdbpb.MethodHasCollection}, inv.methods)
}

func TestRunNotConnected(t *testing.T) {
	inv := newInvoker()
	inv.connected = false
	resp, err := Run(context.Background(), inv, Call[*vdbpb.CollectionRequest, *vdbpb.BoolResponse]{
		Method: vdbpb.MethodHasCollection,
		Build:  build,
	})
	assert.Nil(t, resp)
	assert.Equal(t, fault.NotConnected, fault.CodeOf(err))
	assert.Empty(t, inv.methods)
}

func TestRunValidationNeverSends(t *testing.T) {
	inv := newInvoker()
	_, err := Run(context.Background(), inv, Call[*vdbpb.CollectionRequest, *vdbpb.BoolResponse]{
		Method:   vdbpb.MethodHasCollection,
		Validate: func() error { return fault.New(fault.DimensionNotEqual, "dim") },
		Build:    build,
	})
	assert.Equal(t, fault.DimensionNotEqual, fault.CodeOf(err))
	assert.Empty(t, inv.methods)
}

func TestRunBuildError(t *testing.T) {
	inv := newInvoker()
	_, err := Run(context.Background(), inv, Call[*vdbpb.CollectionRequest, *vdbpb.BoolResponse]{
		Method: vdbpb.MethodHasCollection,
		Build: func() (*vdbpb.CollectionRequest, error) {
			return nil, fault.New(fault.DataUnmatchSchema, "field")
		},
	})
	assert.Equal(t, fault.DataUnmatchSchema, fault.CodeOf(err))
	assert.Empty(t, inv.methods)
}

func TestRunRetriesSend(t *testing.T) {
	inv := newInvoker()
	inv.results = []error{fault.Server("throttled", fault.RateLimitCode, 0), nil}
	resp, err := Run(context.Background(), inv, Call[*vdbpb.CollectionRequest, *vdbpb.BoolResponse]{
		Method: vdbpb.MethodHasCollection,
		Build:  build,
	})
	require.NoError(t, err)
	assert.True(t, resp.Value)
	assert.Len(t, inv.methods, 2)
}

func TestRunWaitFailureSkipsPost(t *testing.T) {
	inv := newInvoker()
	posted := false
	resp, err := Run(context.Background(), inv, Call[*vdbpb.CollectionRequest, *vdbpb.BoolResponse]{
		Method: vdbpb.MethodHasCollection,
		Build:  build,
		Wait: func(context.Context, *vdbpb.BoolResponse) error {
			return fault.New(fault.Timeout, "wait")
		},
		Post: func(*vdbpb.BoolResponse) error {
			posted = true
			return nil
		},
	})
	assert.Nil(t, resp)
	assert.Equal(t, fault.Timeout, fault.CodeOf(err))
	assert.False(t, posted)
}

func TestUnary(t *testing.T) {
	inv := newInvoker()
	resp, err := Unary[*vdbpb.CollectionRequest, vdbpb.BoolResponse](context.Background(), inv, vdbpb.MethodHasCollection, &vdbpb.CollectionRequest{})
	require.NoError(t, err)
	assert.True(t, resp.Value)
}
