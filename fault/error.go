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
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

// Error is the error type returned by every client operation. Server failures
// carry the codes reported in the response status, transport failures carry the
// gRPC code.
type Error struct {
	Code       Code
	Message    string
	RPCCode    codes.Code
	ServerCode int32
	LegacyCode int32
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRateLimited reports whether the server throttled the request.
func (e *Error) IsRateLimited() bool {
	return e.Code == ServerFailed && (e.ServerCode == RateLimitCode || e.LegacyCode == LegacyRateLimitCode)
}

func (e *Error) GoString() string {
	return e.Error()
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Server builds the error for a non-success response status.
func Server(reason string, serverCode, legacyCode int32) *Error {
	return &Error{Code: ServerFailed, Message: reason, ServerCode: serverCode, LegacyCode: legacyCode}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var fErr *Error
	if errors.As(err, &fErr) {
		return fErr, true
	}
	return nil, false
}

// CodeOf maps any error to a Code. A nil error is OK.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	if fErr, ok := As(err); ok {
		return fErr.Code
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.Is(err, context.Canceled):
		return Canceled
	}
	return Unknown
}

func IsTimeout(err error) bool {
	return CodeOf(err) == Timeout
}

func IsCanceled(err error) bool {
	return CodeOf(err) == Canceled
}

// FromContext converts a finished context into an error of the matching kind.
func FromContext(ctx context.Context, what string) *Error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Wrap(Timeout, what, ctx.Err())
	}
	return Wrap(Canceled, what, ctx.Err())
}
