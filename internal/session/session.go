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


// Package session holds the state one client shares across its operations:
// the gRPC channel, the current database, per-call deadline and retry
// policy, authorization metadata, rate limiting, tracing and metrics.
package session

import (
	"context"
	"encoding/base64"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/pkg/log"
	"github.com/vearch/vdbclient/internal/pkg/metrics"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
	"github.com/vearch/vdbclient/internal/retry"
)

// Metadata keys attached to every call.
const (
	HeaderAuthorization = "authorization"
	HeaderDBName        = "dbname"
	HeaderRequestID     = "client-request-id"
	HeaderSessionID     = "client-session-id"
)

const sdkType = "Go"

// Session is safe for concurrent use; operations on it are independent and
// run in the order callers issue them.
type Session struct {
	conn   grpc.ClientConnInterface
	closer io.Closer
	cfg    Config
	auth   string

	mu         sync.RWMutex
	db         string
	serverID   int64
	serverInfo *vdbpb.ServerInfo

	identifier string
	connected  atomic.Bool
	closed     atomic.Bool
	calls      atomic.Int64

	limiter *rate.Limiter
	metrics *metrics.Recorder
}

// New wraps an existing channel. The session is usable once Connect
// succeeds.
func New(conn grpc.ClientConnInterface, cfg Config) *Session {
	s := &Session{
		conn:       conn,
		cfg:        cfg,
		auth:       Authorization(cfg.Username, cfg.Password, cfg.Token),
		db:         cfg.DBName,
		identifier: uuid.NewString(),
		metrics:    metrics.NewRecorder(),
	}
	if cfg.MaxRPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), burst)
	}
	return s
}

// Authorization renders the authorization header value. A token wins over
// a username and password.
func Authorization(username, password, token string) string {
	if token != "" {
		return token
	}
	if username == "" && password == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// Connect sends the client information to the server. Servers that do not
// implement the handshake are accepted as is.
func (s *Session) Connect(ctx context.Context) error {
	if s.closed.Load() {
		return fault.New(fault.NotConnected, "session is closed")
	}
	host, _ := os.Hostname()
	req := &vdbpb.ConnectRequest{ClientInfo: &vdbpb.ClientInfo{
		SdkType:    sdkType,
		SdkVersion: s.cfg.SDKVersion,
		User:       s.cfg.Username,
		Host:       host,
		LocalTime:  time.Now().Format("2006-01-02 15:04:05"),
		Reserved:   map[string]string{HeaderSessionID: s.identifier},
	}}
	if s.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ConnectTimeout)
		defer cancel()
	}
	resp := &vdbpb.ConnectResponse{}
	err := s.call(ctx, vdbpb.MethodConnect, req, resp)
	if fErr, ok := fault.As(err); ok && fErr.RPCCode == codes.Unimplemented {
		log.Warnf("server does not implement Connect, skip handshake")
		err = nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.serverID = resp.Identifier
	s.serverInfo = resp.ServerInfo
	s.mu.Unlock()
	s.connected.Store(true)
	return nil
}

func (s *Session) Connected() bool {
	return s.connected.Load() && !s.closed.Load()
}

func (s *Session) RetryPolicy() retry.Policy {
	return s.cfg.Retry
}

// Deadline is the per-RPC network deadline; 0 means none.
func (s *Session) Deadline() time.Duration {
	return s.cfg.RPCTimeout
}

// Database is the database requests are scoped to by default.
func (s *Session) Database() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// UseDatabase switches the default database of later calls.
func (s *Session) UseDatabase(name string) {
	s.mu.Lock()
	old := s.db
	s.db = name
	s.mu.Unlock()
	log.Infof("session %s switch database [%s] -> [%s]", s.identifier, old, name)
}

// Identifier is the client side id sent with every call.
func (s *Session) Identifier() string {
	return s.identifier
}

// ServerInfo returns what the server reported during Connect, possibly nil.
func (s *Session) ServerInfo() (int64, *vdbpb.ServerInfo) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverID, s.serverInfo
}

// Calls counts RPC attempts made through this session.
func (s *Session) Calls() int64 {
	return s.calls.Load()
}

// Invoke performs one attempt of method. Transport failures become RPCFailed
// or Timeout errors, a non-success response status becomes ServerFailed.
func (s *Session) Invoke(ctx context.Context, method string, req any, resp vdbpb.Response) error {
	if !s.Connected() {
		return fault.Newf(fault.NotConnected, "%s: connection is not ready", metrics.ShortMethod(method))
	}
	if s.cfg.RPCTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RPCTimeout)
		defer cancel()
	}
	return s.call(ctx, method, req, resp)
}

// OnRetry is called by the retry executor between attempts.
func (s *Session) OnRetry(method string, attempt int, err error) {
	s.metrics.RecordRetry(method)
}

func (s *Session) call(ctx context.Context, method string, req any, resp vdbpb.Response) (err error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return fault.FromContext(ctx, metrics.ShortMethod(method)+" rate limit wait")
			}
			return fault.Wrap(fault.Timeout, metrics.ShortMethod(method)+" rate limit wait", err)
		}
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, metrics.ShortMethod(method))
	ext.SpanKindRPCClient.Set(span)
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("code", fault.CodeOf(err).String())
		}
		span.Finish()
	}()
	ctx = s.outgoing(ctx, span)

	s.calls.Inc()
	done := s.metrics.Begin()
	begin := time.Now()
	err = s.conn.Invoke(ctx, method, req, resp, grpc.ForceCodec(vdbpb.Codec{}))
	done()
	err = checkResponse(method, err, resp)
	s.metrics.RecordRPC(method, err, time.Since(begin))

	if err != nil && log.IsDebugEnabled() {
		log.Debugf("session %s call %s failed: %v", s.identifier, method, err)
	}
	return err
}

func (s *Session) outgoing(ctx context.Context, span opentracing.Span) context.Context {
	kv := []string{HeaderRequestID, uuid.NewString(), HeaderSessionID, s.identifier}
	if s.auth != "" {
		kv = append(kv, HeaderAuthorization, s.auth)
	}
	if db := s.Database(); db != "" {
		kv = append(kv, HeaderDBName, db)
	}
	carrier := opentracing.TextMapCarrier{}
	if err := opentracing.GlobalTracer().Inject(span.Context(), opentracing.TextMap, carrier); err == nil {
		for k, v := range carrier {
			kv = append(kv, k, v)
		}
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

// checkResponse classifies the transport error first and only then trusts
// the response status.
func checkResponse(method string, err error, resp vdbpb.Response) error {
	name := metrics.ShortMethod(method)
	if err != nil {
		st, ok := status.FromError(err)
		if !ok {
			return fault.Wrap(fault.RPCFailed, name, err)
		}
		code := fault.RPCFailed
		switch st.Code() {
		case codes.DeadlineExceeded:
			code = fault.Timeout
		case codes.Canceled:
			code = fault.Canceled
		}
		return &fault.Error{Code: code, Message: name + ": " + st.Message(), RPCCode: st.Code(), Cause: err}
	}
	if st := resp.GetStatus(); !st.OK() {
		return fault.Server(st.Reason, st.Code, st.ErrorCode)
	}
	return nil
}

// Close releases the channel when the session owns it.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.connected.Store(false)
	log.Infof("session %s closed after %d calls", s.identifier, s.calls.Load())
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
