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


package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/vearch/vdbclient/fault"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts:      attempts,
		InitialBackoff:   time.Millisecond,
		MaxBackoff:       2 * time.Millisecond,
		Multiplier:       2,
		RetryOnRateLimit: true,
	}
}

func rateLimited() error {
	return fault.Server("rate limit exceeded", fault.RateLimitCode, 0)
}

func TestDoSucceedsFirstTime(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(4), func(context.Context) error {
		calls++
		return rateLimited()
	})
	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, fault.ServerFailed, fault.CodeOf(err))
	assert.Contains(t, err.Error(), "4 attempts")
}

func TestDoRecoversAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(10), func(context.Context) error {
		calls++
		if calls < 3 {
			return rateLimited()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoSingleAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(1), func(context.Context) error {
		calls++
		return rateLimited()
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	for _, c := range []codes.Code{
		codes.DeadlineExceeded,
		codes.PermissionDenied,
		codes.Unauthenticated,
		codes.InvalidArgument,
		codes.AlreadyExists,
		codes.ResourceExhausted,
		codes.Unimplemented,
	} {
		t.Run(c.String(), func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
				calls++
				return &fault.Error{Code: fault.RPCFailed, RPCCode: c}
			})
			require.Error(t, err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestDoStopsOnServerFailure(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		return fault.Server("collection not found", 100, 4)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, fault.ServerFailed, fault.CodeOf(err))
}

func TestDoRateLimitDisabled(t *testing.T) {
	p := fastPolicy(5)
	p.RetryOnRateLimit = false
	calls := 0
	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		return fault.Server("busy", 0, fault.LegacyRateLimitCode)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoTransportFailureNotRetried(t *testing.T) {
	for _, retryOnRateLimit := range []bool{true, false} {
		p := fastPolicy(5)
		p.RetryOnRateLimit = retryOnRateLimit
		calls := 0
		err := Do(context.Background(), p, func(context.Context) error {
			calls++
			return &fault.Error{Code: fault.RPCFailed, RPCCode: codes.Unavailable, Message: "unavailable"}
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, fault.RPCFailed, fault.CodeOf(err))
		assert.NotContains(t, err.Error(), "stop retry")
	}
}

func TestDoLocalErrorsAreNotRetried(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		return fault.New(fault.InvalidArgument, "bad")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRespectsMaxTimeout(t *testing.T) {
	p := fastPolicy(1000)
	p.InitialBackoff = 5 * time.Millisecond
	p.MaxBackoff = 5 * time.Millisecond
	p.MaxTimeout = 30 * time.Millisecond

	calls := 0
	begin := time.Now()
	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		return rateLimited()
	})
	require.Error(t, err)
	assert.Less(t, calls, 1000)
	assert.Less(t, time.Since(begin), time.Second)
	assert.Contains(t, err.Error(), "retry timeout")
}

func TestDoCanceledDuringBackoff(t *testing.T) {
	p := fastPolicy(10)
	p.InitialBackoff = time.Hour
	p.MaxBackoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, p, func(context.Context) error {
		calls++
		cancel()
		return rateLimited()
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, fault.Canceled, fault.CodeOf(err))
}

func TestDoHooks(t *testing.T) {
	var backoffs []time.Duration
	err := Do(context.Background(), fastPolicy(4), func(context.Context) error {
		return fault.New(fault.Unknown, "custom")
	},
		WithName("Insert"),
		WithClassifier(func(error) bool { return true }),
		WithOnRetry(func(_ int, b time.Duration, _ error) { backoffs = append(backoffs, b) }),
	)
	require.Error(t, err)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 2 * time.Millisecond}, backoffs)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 75, p.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, p.InitialBackoff)
	assert.Equal(t, 3*time.Second, p.MaxBackoff)
	assert.True(t, p.RetryOnRateLimit)
	assert.Equal(t, 30*time.Millisecond, p.next(10*time.Millisecond))
	assert.Equal(t, 3*time.Second, p.next(2*time.Second))
}
