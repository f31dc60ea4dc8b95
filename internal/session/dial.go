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


package session

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"math"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/vearch/vdbclient/fault"
	"github.com/vearch/vdbclient/internal/pkg/log"
	"github.com/vearch/vdbclient/internal/proto/vdbpb"
	"github.com/vearch/vdbclient/internal/retry"
)

const (
	DefaultPort      = 19530
	DefaultTLSPort   = 443
	DefaultDatabase  = "default"
	defaultKeepalive = 10 * time.Second
)

// Config holds everything needed to open and use a session.
type Config struct {
	// Address is host:port or a URI such as https://host:443/dbname.
	Address  string
	Username string
	Password string
	Token    string
	DBName   string

	TLS        bool
	CACert     string
	ClientCert string
	ClientKey  string
	ServerName string

	ConnectTimeout        time.Duration
	RPCTimeout            time.Duration
	KeepaliveTime         time.Duration
	KeepaliveTimeout      time.Duration
	KeepaliveWithoutCalls bool

	// MaxRPS caps outgoing RPC attempts; 0 disables the limiter.
	MaxRPS float64
	Burst  int

	Retry      retry.Policy
	SDKVersion string
}

// Target is a parsed server address.
type Target struct {
	Scheme string
	Host   string
	Port   int
	DBName string
}

// Addr returns host:port for dialing.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// ParseURI accepts host, host:port, [v6]:port or scheme://host[:port][/db].
// A missing port defaults by scheme and a path names the database.
func ParseURI(uri string) (Target, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Target{}, fault.New(fault.InvalidArgument, "empty server address")
	}
	if !strings.Contains(uri, "://") {
		uri = "tcp://" + uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return Target{}, fault.Wrap(fault.InvalidArgument, "invalid server address "+uri, err)
	}
	t := Target{Scheme: u.Scheme, Host: u.Hostname()}
	if t.Host == "" {
		return Target{}, fault.Newf(fault.InvalidArgument, "no host in server address %s", uri)
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > math.MaxUint16 {
			return Target{}, fault.Newf(fault.InvalidArgument, "invalid port %q in server address", p)
		}
		t.Port = port
	} else if t.Scheme == "https" {
		t.Port = DefaultTLSPort
	} else {
		t.Port = DefaultPort
	}
	if path := strings.Trim(u.Path, "/"); path != "" {
		t.DBName = path
	}
	return t, nil
}

func (c *Config) transportCredentials() (credentials.TransportCredentials, error) {
	if !c.TLS {
		return insecure.NewCredentials(), nil
	}
	tc := &tls.Config{ServerName: c.ServerName, MinVersion: tls.VersionTLS12}
	if c.CACert != "" {
		pem, err := os.ReadFile(c.CACert)
		if err != nil {
			return nil, errors.Wrap(err, "read ca cert")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.Errorf("no certificate found in %s", c.CACert)
		}
		tc.RootCAs = pool
	}
	if c.ClientCert != "" || c.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
		if err != nil {
			return nil, errors.Wrap(err, "load client key pair")
		}
		tc.Certificates = []tls.Certificate{cert}
	}
	return credentials.NewTLS(tc), nil
}

// DialOptions are the gRPC options a session channel is opened with.
func (c *Config) DialOptions() ([]grpc.DialOption, error) {
	creds, err := c.transportCredentials()
	if err != nil {
		return nil, fault.Wrap(fault.InvalidArgument, "tls setup", err)
	}
	kaTime, kaTimeout := c.KeepaliveTime, c.KeepaliveTimeout
	if kaTime <= 0 {
		kaTime = defaultKeepalive
	}
	if kaTimeout <= 0 {
		kaTimeout = 2 * defaultKeepalive
	}
	return []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                kaTime,
			Timeout:             kaTimeout,
			PermitWithoutStream: c.KeepaliveWithoutCalls,
		}),
		grpc.WithDefaultCallOptions(
			grpc.ForceCodec(vdbpb.Codec{}),
			grpc.MaxCallRecvMsgSize(math.MaxInt32),
			grpc.MaxCallSendMsgSize(math.MaxInt32),
		),
	}, nil
}

// Dial opens a channel to cfg.Address and performs the connect handshake.
func Dial(ctx context.Context, cfg Config, extra ...grpc.DialOption) (*Session, error) {
	target, err := ParseURI(cfg.Address)
	if err != nil {
		return nil, err
	}
	if target.Scheme == "https" {
		cfg.TLS = true
	}
	if cfg.DBName == "" {
		cfg.DBName = target.DBName
	}
	opts, err := cfg.DialOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)

	dialCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	conn, err := grpc.DialContext(dialCtx, target.Addr(), append(opts, grpc.WithBlock())...)
	if err != nil {
		return nil, fault.Wrapf(fault.NotConnected, err, "failed to create grpc channel to %s", target.Addr())
	}

	s := New(conn, cfg)
	s.closer = conn
	if err := s.Connect(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Infof("connected to %s, db [%s], session %s", target.Addr(), s.Database(), s.Identifier())
	return s, nil
}
