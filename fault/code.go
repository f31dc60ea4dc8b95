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

// Code is the outcome class of a client call.
type Code int

const (
	OK Code = iota
	NotConnected
	InvalidArgument
	RPCFailed
	ServerFailed
	Timeout
	DimensionNotEqual
	VectorIsEmpty
	DataUnmatchSchema
	UnsupportedType
	Canceled
	Unknown
)

var codeNames = map[Code]string{
	OK:                "OK",
	NotConnected:      "NOT_CONNECTED",
	InvalidArgument:   "INVALID_ARGUMENT",
	RPCFailed:         "RPC_FAILED",
	ServerFailed:      "SERVER_FAILED",
	Timeout:           "TIMEOUT",
	DimensionNotEqual: "DIMENSION_NOT_EQUAL",
	VectorIsEmpty:     "VECTOR_IS_EMPTY",
	DataUnmatchSchema: "DATA_UNMATCH_SCHEMA",
	UnsupportedType:   "UNSUPPORTED_TYPE",
	Canceled:          "CANCELED",
	Unknown:           "UNKNOWN",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsLocal reports whether the code is raised before anything reaches the network.
func (c Code) IsLocal() bool {
	switch c {
	case NotConnected, InvalidArgument, DimensionNotEqual, VectorIsEmpty, DataUnmatchSchema, UnsupportedType:
		return true
	}
	return false
}

// Server side codes that mean the request was throttled. The legacy value comes
// from the deprecated error_code field, the other from the newer code field.
const (
	LegacyRateLimitCode int32 = 49
	RateLimitCode       int32 = 8
)
