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

package vdbpb

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/vmihailenco/msgpack"
	"google.golang.org/grpc/encoding"

	"github.com/vearch/vdbclient/internal/pkg/log"
)

// CodecName is the gRPC content subtype of the wire messages.
const CodecName = "msgpack"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec encodes wire messages with msgpack using their json tags.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("msgpack encode %T panic: %s", v, cast.ToString(r))
			err = errors.Errorf("msgpack encode %T: %v", v, r)
		}
	}()
	var buf bytes.Buffer
	if err = msgpack.NewEncoder(&buf).UseCompactEncoding(true).UseJSONTag(true).Encode(v); err != nil {
		return nil, errors.Wrapf(err, "msgpack encode %T", v)
	}
	return buf.Bytes(), nil
}

func (Codec) Unmarshal(data []byte, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("msgpack decode %T panic: %s", v, cast.ToString(r))
			err = errors.Errorf("msgpack decode %T: %v", v, r)
		}
	}()
	if err = msgpack.NewDecoder(bytes.NewReader(data)).UseJSONTag(true).Decode(v); err != nil {
		return errors.Wrapf(err, "msgpack decode %T", v)
	}
	return nil
}
