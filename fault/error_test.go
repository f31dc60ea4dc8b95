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

package fault

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestCodeString(t *testing.T) {
	assert.Equal(t, "DIMENSION_NOT_EQUAL", DimensionNotEqual.String())
	assert.Equal(t, "UNKNOWN", Code(1000).String())
}

func TestCodeOfWalksWrappedChain(t *testing.T) {
	base := Wrap(ServerFailed, "insert", errors.New("boom"))
	wrapped := errors.Wrap(base, "collection book")

	assert.Equal(t, ServerFailed, CodeOf(wrapped))
	fErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "insert", fErr.Message)
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestCodeOfPlainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"nil", nil, OK},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"canceled", errors.Wrap(context.Canceled, "wait"), Canceled},
		{"other", errors.New("x"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeOf(tt.err))
		})
	}
}

func TestRateLimited(t *testing.T) {
	assert.True(t, Server("slow down", RateLimitCode, 0).IsRateLimited())
	assert.True(t, Server("slow down", 0, LegacyRateLimitCode).IsRateLimited())
	assert.False(t, Server("bad", 65535, 1).IsRateLimited())
	assert.False(t, (&Error{Code: RPCFailed, RPCCode: codes.Unavailable, ServerCode: RateLimitCode}).IsRateLimited())
}

func TestFromContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, IsCanceled(FromContext(ctx, "wait")))

	ctx, cancel = context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	assert.True(t, IsTimeout(FromContext(ctx, "wait")))
}
