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


package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vconfig "github.com/vearch/vdbclient/internal/config"
)

func TestInitJaegerDisabled(t *testing.T) {
	closer, err := InitJaeger("vdbctl", vconfig.TracerCfg{})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.False(t, Enabled())
}

func TestInitJaeger(t *testing.T) {
	closer, err := InitJaeger("vdbctl", vconfig.TracerCfg{Host: "127.0.0.1:6831", SampleType: "const", SampleParam: 1})
	require.NoError(t, err)
	defer closer.Close()
	assert.True(t, Enabled())
}
