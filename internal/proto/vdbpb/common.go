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

// Package vdbpb mirrors the wire schema of the vector database service.
// Messages travel over gRPC encoded with the msgpack codec in this package;
// field names follow their json tags.
package vdbpb

// Response is implemented by every response message.
type Response interface {
	GetStatus() *Status
}

// Status codes reported by the server.
const (
	StatusSuccess         int32 = 0
	StatusUnexpectedError int32 = 1
	StatusRateLimit       int32 = 8
	StatusIndexNotExist   int32 = 25
	StatusLegacyRateLimit int32 = 49
)

type Status struct {
	ErrorCode int32             `json:"error_code,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Code      int32             `json:"code,omitempty"`
	Retriable bool              `json:"retriable,omitempty"`
	Detail    string            `json:"detail,omitempty"`
	ExtraInfo map[string]string `json:"extra_info,omitempty"`
}

// GetStatus lets a bare Status serve as a response.
func (s *Status) GetStatus() *Status { return s }

// OK reports whether the status carries no error.
func (s *Status) OK() bool {
	return s == nil || (s.ErrorCode == StatusSuccess && s.Code == StatusSuccess)
}

type KeyValuePair struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
}

type ClientInfo struct {
	SdkType    string            `json:"sdk_type,omitempty"`
	SdkVersion string            `json:"sdk_version,omitempty"`
	LocalTime  string            `json:"local_time,omitempty"`
	User       string            `json:"user,omitempty"`
	Host       string            `json:"host,omitempty"`
	Reserved   map[string]string `json:"reserved,omitempty"`
}

type ServerInfo struct {
	BuildTags  string            `json:"build_tags,omitempty"`
	BuildTime  string            `json:"build_time,omitempty"`
	GitCommit  string            `json:"git_commit,omitempty"`
	GoVersion  string            `json:"go_version,omitempty"`
	DeployMode string            `json:"deploy_mode,omitempty"`
	Reserved   map[string]string `json:"reserved,omitempty"`
}

type ConnectRequest struct {
	ClientInfo *ClientInfo `json:"client_info,omitempty"`
}

type ConnectResponse struct {
	Status     *Status     `json:"status,omitempty"`
	ServerInfo *ServerInfo `json:"server_info,omitempty"`
	Identifier int64       `json:"identifier,omitempty"`
}

func (r *ConnectResponse) GetStatus() *Status { return r.Status }

type CheckHealthRequest struct{}

type CheckHealthResponse struct {
	Status    *Status  `json:"status,omitempty"`
	IsHealthy bool     `json:"is_healthy,omitempty"`
	Reasons   []string `json:"reasons,omitempty"`
}

func (r *CheckHealthResponse) GetStatus() *Status { return r.Status }

type GetVersionRequest struct{}

type GetVersionResponse struct {
	Status  *Status `json:"status,omitempty"`
	Version string  `json:"version,omitempty"`
}

func (r *GetVersionResponse) GetStatus() *Status { return r.Status }
