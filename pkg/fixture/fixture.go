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

// Package fixture loads coloring.Input values from YAML (or JSON, which is
// a subset of YAML) documents. It follows the raw-then-resolved parsing
// idiom: a rawConfig is unmarshalled as plain data and then resolved into
// the strongly typed Input the solver consumes, with every resolution
// failure reported through a single aggregated error.
package fixture

import (
	"io/ioutil"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/sepkernel/colorer/pkg/coloring"
	"github.com/sepkernel/colorer/pkg/idset"
)

type rawCache struct {
	L1 int `json:"l1"`
	L2 int `json:"l2"`
	L3 int `json:"l3"`
}

type rawExecutor struct {
	Name string `json:"name"`
	CPUs []int  `json:"cpus"`
}

type rawChannel struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type rawIsolation struct {
	Executor string      `json:"executor,omitempty"`
	Channel  *rawChannel `json:"channel,omitempty"`
	Domain   string      `json:"domain"`
}

type rawConfig struct {
	Cache            rawCache       `json:"cache"`
	CPUs             []int          `json:"cpus"`
	Kernels          []rawExecutor  `json:"kernels"`
	Subjects         []rawExecutor  `json:"subjects"`
	Channels         []rawChannel   `json:"channels"`
	IsolationDomains []string       `json:"isolationDomains"`
	Isolation        []rawIsolation `json:"isolation"`
}

// Load parses a YAML or JSON document into a coloring.Input.
func Load(data []byte) (coloring.Input, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return coloring.Input{}, errors.Wrap(err, "fixture: failed to parse document")
	}
	return raw.resolve()
}

// LoadFile reads and parses the fixture at path.
func LoadFile(path string) (coloring.Input, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return coloring.Input{}, errors.Wrapf(err, "fixture: failed to read %q", path)
	}
	return Load(data)
}

func (r *rawConfig) resolve() (coloring.Input, error) {
	var issues *multierror.Error

	in := coloring.Input{
		CPUs:  idset.NewFromInts(r.CPUs...),
		ExCPU: make(map[string]idset.Set),
		Cache: coloring.CacheConfig{NL1: r.Cache.L1, NL2: r.Cache.L2, NL3: r.Cache.L3},
	}

	for _, k := range r.Kernels {
		in.Kernels = append(in.Kernels, k.Name)
		in.ExCPU[k.Name] = idset.NewFromInts(k.CPUs...)
	}
	for _, s := range r.Subjects {
		in.Subjects = append(in.Subjects, s.Name)
		in.ExCPU[s.Name] = idset.NewFromInts(s.CPUs...)
	}
	for _, c := range r.Channels {
		in.Channels = append(in.Channels, coloring.Channel{From: c.From, To: c.To})
	}
	for _, d := range r.IsolationDomains {
		in.IsolationDomains = append(in.IsolationDomains, coloring.DomainId(d))
	}

	for _, iso := range r.Isolation {
		switch {
		case iso.Channel != nil:
			in.MRIsolation = append(in.MRIsolation, coloring.IsolationEntry{
				Region: coloring.ChannelRegion(iso.Channel.From, iso.Channel.To),
				Domain: coloring.DomainId(iso.Domain),
			})
		case iso.Executor != "":
			in.MRIsolation = append(in.MRIsolation, coloring.IsolationEntry{
				Region: coloring.ExecutorRegion(iso.Executor),
				Domain: coloring.DomainId(iso.Domain),
			})
		default:
			issues = multierror.Append(issues, errors.New("fixture: isolation entry names neither an executor nor a channel"))
		}
	}

	if err := issues.ErrorOrNil(); err != nil {
		return coloring.Input{}, err
	}
	return in, nil
}
