// Copyright 2019 Intel Corporation. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fixture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sepkernel/colorer/pkg/coloring"
)

const sampleYAML = `
cache:
  l1: 2
  l2: 4
  l3: 8
cpus: [0, 1]
kernels:
  - name: k1
    cpus: [0]
subjects:
  - name: s1
    cpus: [1]
channels:
  - from: k1
    to: s1
isolationDomains:
  - d1
  - d2
isolation:
  - executor: k1
    domain: d1
  - executor: s1
    domain: d2
  - channel: {from: k1, to: s1}
    domain: d1
`

func TestLoadResolvesExecutorsChannelsAndIsolation(t *testing.T) {
	in, err := Load([]byte(sampleYAML))
	require.NoError(t, err)

	require.Equal(t, []string{"k1"}, in.Kernels)
	require.Equal(t, []string{"s1"}, in.Subjects)
	require.Len(t, in.Channels, 1)
	require.Equal(t, "k1", in.Channels[0].From)
	require.Equal(t, "s1", in.Channels[0].To)
	require.True(t, in.CPUs.Has(0, 1))
	require.Equal(t, coloring.CacheConfig{NL1: 2, NL2: 4, NL3: 8}, in.Cache)

	a, err := coloring.Solve(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, a.Render())
}

func TestLoadRejectsMalformedIsolationEntry(t *testing.T) {
	_, err := Load([]byte(`
cache: {l1: 1, l2: 1, l3: 1}
cpus: [0]
kernels: [{name: k1, cpus: [0]}]
isolation:
  - domain: d1
`))
	require.Error(t, err)
}
