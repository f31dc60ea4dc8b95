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

// Package retry runs one logical RPC with bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"

	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/pkg/log"
)

// Policy is read once per call and never changes during it.
type Policy struct {
	// MaxAttempts counts the first call; 1 or less disables retry.
	MaxAttempts int
	// MaxTimeout bounds the whole retry loop; 0 means unbounded.
	MaxTimeout     time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	// RetryOnRateLimit retries calls the server throttled.
	RetryOnRateLimit bool
}

// DefaultPolicy mirrors the server-recommended client settings.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:      75,
		MaxTimeout:       0,
		InitialBackoff:   10 * time.Millisecond,
		MaxBackoff:       3000 * time.Millisecond,
		Multiplier:       3,
		RetryOnRateLimit: true,
	}
}

// nonRetryable lists the gRPC codes that never succeed on a second try.
var nonRetryable = map[codes.Code]struct{}{
	codes.Canceled:          {},
	codes.DeadlineExceeded:  {},
	codes.PermissionDenied:  {},
	codes.Unauthenticated:   {},
	codes.InvalidArgument:   {},
	codes.AlreadyExists:     {},
	codes.ResourceExhausted: {},
	codes.Unimplemented:     {},
}

// Retryable is the default classification. Transport failures with a code in
// nonRetryable stop at once; otherwise only throttled server responses are
// retried, and only when the policy allows it.
func (p Policy) Retryable(err error) bool {
	fErr, ok := fault.As(err)
	if !ok {
		return false
	}
	if fErr.Code == fault.RPCFailed {
		if _, stop := nonRetryable[fErr.RPCCode]; stop {
			return false
		}
	}
	return p.RetryOnRateLimit && fErr.IsRateLimited()
}

func (p Policy) next(backoff time.Duration) time.Duration {
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	backoff = time.Duration(float64(backoff) * mult)
	if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
		backoff = p.MaxBackoff
	}
	return backoff
}

type options struct {
	name     string
	classify func(error) bool
	onRetry  func(attempt int, backoff time.Duration, err error)
}

type Option func(*options)

// WithName labels log lines with the operation name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithClassifier replaces the policy's retry classification.
func WithClassifier(fn func(error) bool) Option {
	return func(o *options) { o.classify = fn }
}

// WithOnRetry is invoked before each backoff sleep.
func WithOnRetry(fn func(attempt int, backoff time.Duration, err error)) Option {
	return func(o *options) { o.onRetry = fn }
}

// Do invokes call until it succeeds, fails with a non-retryable error, the
// attempts or the time budget run out, or ctx ends. The last failure is
// returned with its code kept.
func Do(ctx context.Context, p Policy, call func(ctx context.Context) error, opts ...Option) error {
	o := options{name: "rpc", classify: p.Retryable}
	for _, opt := range opts {
		opt(&o)
	}
	if p.MaxAttempts <= 1 {
		return call(ctx)
	}

	begin := time.Now()
	backoff := p.InitialBackoff
	for k := 1; ; k++ {
		err := call(ctx)
		if err == nil {
			return nil
		}
		if !o.classify(err) {
			return err
		}
		if k >= p.MaxAttempts {
			log.Warnf("%s: %d attempts failed, stop retry: %v", o.name, k, err)
			return errors.WithMessagef(err, "%d attempts, stop retry", k)
		}

		log.Warnf("%s: attempt %d failed, retry in %s: %v", o.name, k, backoff, err)
		if o.onRetry != nil {
			o.onRetry(k, backoff, err)
		}
		if sErr := sleep(ctx, backoff); sErr != nil {
			return fault.Wrapf(sErr.Code, err, "%s: retry interrupted after %d attempts", o.name, k)
		}
		backoff = p.next(backoff)

		if p.MaxTimeout > 0 && time.Since(begin) >= p.MaxTimeout {
			log.Warnf("%s: retry timeout %s after %d attempts: %v", o.name, p.MaxTimeout, k, err)
			return errors.WithMessagef(err, "retry timeout %s, %d attempts", p.MaxTimeout, k)
		}
	}
}

// sleep waits d or until ctx ends, returning a Canceled or Timeout error in
// the latter case.
func sleep(ctx context.Context, d time.Duration) *fault.Error {
	if d <= 0 {
		if ctx.Err() != nil {
			return fault.FromContext(ctx, "sleep")
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fault.FromContext(ctx, "sleep")
	}
}
