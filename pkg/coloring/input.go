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

package coloring

import (
	"sort"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/sepkernel/colorer/pkg/idset"
)

// IsolationEntry assigns one region to one isolation domain. Input keeps
// these as a plain slice, rather than a map, so that a region accidentally
// mapped to two different domains can be detected as a validation error
// instead of silently overwriting a map entry.
type IsolationEntry struct {
	Region RegionId
	Domain DomainId
}

// Input is the full, unvalidated description of one coloring problem.
type Input struct {
	// Kernels and Subjects name the executors of each kind. A name must
	// not appear in both lists.
	Kernels  []string
	Subjects []string

	// Channels induces one synthetic memory region per entry.
	Channels []Channel

	// CPUs is the full set of CPUs in the system.
	CPUs idset.Set

	// ExCPU maps each executor name to the CPUs it is pinned to.
	ExCPU map[string]idset.Set

	// IsolationDomains lists the declared isolation domains. Every
	// domain named here must have at least one member region.
	IsolationDomains []DomainId

	// MRIsolation assigns every derived region (executor- and
	// channel-backed alike) to an isolation domain.
	MRIsolation []IsolationEntry

	// Cache is the hardware cache color budget.
	Cache CacheConfig
}

// Diagnostic is a non-fatal observation surfaced alongside a successful
// Model derivation, e.g. a channel whose endpoints disagree on isolation
// domain.
type Diagnostic struct {
	Region  RegionId
	Message string
}

// Model is the validated, derived form of an Input: every region's CPU set
// and isolation domain resolved, ready for the solver.
type Model struct {
	Regions     []*MemoryRegion
	byID        map[RegionId]*MemoryRegion
	CPUs        []idset.Id
	Domains     []DomainId
	Cache       CacheConfig
	Diagnostics []Diagnostic
}

// Region looks up a region by id.
func (m *Model) Region(id RegionId) (*MemoryRegion, bool) {
	r, ok := m.byID[id]
	return r, ok
}

// Validate checks in for every input validation failure mode (the six
// named kinds plus UnknownChannelEndpoint) without running the solver. It is useful for a "dry run" that only wants to know
// whether an Input is well-formed.
func Validate(in Input) error {
	_, err := validateAndDerive(&in)
	return err
}

// validateAndDerive checks in as a whole and, if valid, builds the
// resolved Model the solver operates on. All validation issues are
// collected before returning, rather than failing on the first one.
func validateAndDerive(in *Input) (*Model, error) {
	var issues *multierror.Error

	names := make(map[string]bool)
	for _, k := range in.Kernels {
		if names[k] {
			issues = multierror.Append(issues, newIssue(DuplicateEntityId, "entity %q declared more than once", k))
		}
		names[k] = true
	}
	for _, s := range in.Subjects {
		if names[s] {
			issues = multierror.Append(issues, newIssue(DuplicateEntityId, "entity %q declared more than once", s))
		}
		names[s] = true
	}

	for name := range names {
		cpus, ok := in.ExCPU[name]
		if !ok || cpus.Size() == 0 {
			issues = multierror.Append(issues, newIssue(MissingExecutorCPU, "executor %q has no pinned CPUs", name))
		}
	}

	seenChannel := make(map[RegionId]bool)
	regionIDs := make([]RegionId, 0, len(names)+len(in.Channels))
	for _, name := range sortedKeys(names) {
		regionIDs = append(regionIDs, ExecutorRegion(name))
	}
	for _, ch := range in.Channels {
		if !names[ch.From] {
			issues = multierror.Append(issues, newIssue(UnknownChannelEndpoint, "channel (%s,%s): unknown executor %q", ch.From, ch.To, ch.From))
			continue
		}
		if !names[ch.To] {
			issues = multierror.Append(issues, newIssue(UnknownChannelEndpoint, "channel (%s,%s): unknown executor %q", ch.From, ch.To, ch.To))
			continue
		}
		id := ChannelRegion(ch.From, ch.To)
		if seenChannel[id] {
			issues = multierror.Append(issues, newIssue(DuplicateEntityId, "channel %s declared more than once", id))
			continue
		}
		seenChannel[id] = true
		regionIDs = append(regionIDs, id)
	}

	// derive mr_cpu for every region that survived endpoint validation.
	cpus := make(map[RegionId]idset.Set, len(regionIDs))
	for _, id := range regionIDs {
		if id.IsChannel() {
			from, to := id.Endpoints()
			cpus[id] = in.ExCPU[from].Union(in.ExCPU[to])
			continue
		}
		cpus[id] = in.ExCPU[id.Name()]
	}

	usedCPUs := idset.New()
	for _, set := range cpus {
		usedCPUs.Add(set.Members()...)
	}
	for _, cpu := range in.CPUs.SortedMembers() {
		if !usedCPUs.Has(cpu) {
			issues = multierror.Append(issues, newIssue(UnusedCPU, "cpu %d is pinned to no executor", cpu))
		}
	}

	// resolve mr_cache_isolation: one consistent domain per region.
	byRegion := make(map[RegionId][]DomainId)
	for _, e := range in.MRIsolation {
		byRegion[e.Region] = append(byRegion[e.Region], e.Domain)
	}
	domain := make(map[RegionId]DomainId, len(regionIDs))
	domainMembers := make(map[DomainId][]RegionId)
	for _, id := range regionIDs {
		domains, ok := byRegion[id]
		if !ok || len(domains) == 0 {
			issues = multierror.Append(issues, newIssue(MissingIsolationDomain, "region %s has no isolation domain", id))
			continue
		}
		distinct := dedupeDomains(domains)
		if len(distinct) > 1 {
			issues = multierror.Append(issues, newIssue(NonFunctionalIsolation,
				"region %s is mapped to more than one isolation domain: %v", id, distinct))
			continue
		}
		domain[id] = distinct[0]
		domainMembers[distinct[0]] = append(domainMembers[distinct[0]], id)
	}

	for _, d := range in.IsolationDomains {
		if len(domainMembers[d]) == 0 {
			issues = multierror.Append(issues, newIssue(EmptyIsolationDomain, "isolation domain %q has no member regions", d))
		}
	}

	if issues.ErrorOrNil() != nil {
		return nil, validationError(issues)
	}

	regions := make([]*MemoryRegion, 0, len(regionIDs))
	byID := make(map[RegionId]*MemoryRegion, len(regionIDs))
	for _, id := range regionIDs {
		r := &MemoryRegion{ID: id, CPUs: cpus[id], Domain: domain[id]}
		regions = append(regions, r)
		byID[id] = r
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].ID.String() < regions[j].ID.String() })

	model := &Model{
		Regions: regions,
		byID:    byID,
		CPUs:    in.CPUs.SortedMembers(),
		Domains: sortedDomains(domainMembers),
		Cache:   in.Cache,
	}
	model.Diagnostics = channelIsolationDiagnostics(in, domain)
	return model, nil
}

// channelIsolationDiagnostics flags channels whose isolation domain differs
// from that of an endpoint, emitting one diagnostic for the sender and one
// for the receiver when each of them differs. This is not
// a validation error: a channel is free to sit in its own domain, possibly
// distinct from both of its endpoints. It is surfaced purely as a
// non-fatal observation for operators.
func channelIsolationDiagnostics(in *Input, domain map[RegionId]DomainId) []Diagnostic {
	var diags []Diagnostic
	for _, ch := range in.Channels {
		id := ChannelRegion(ch.From, ch.To)
		d, ok := domain[id]
		if !ok {
			continue
		}
		fromD, fromOK := domain[ExecutorRegion(ch.From)]
		toD, toOK := domain[ExecutorRegion(ch.To)]
		if fromOK && fromD != d {
			diags = append(diags, Diagnostic{Region: id, Message: "channel isolation domain differs from sender's"})
		}
		if toOK && toD != d {
			diags = append(diags, Diagnostic{Region: id, Message: "channel isolation domain differs from receiver's"})
		}
	}
	return diags
}

func dedupeDomains(ds []DomainId) []DomainId {
	seen := make(map[DomainId]bool, len(ds))
	out := make([]DomainId, 0, len(ds))
	for _, d := range ds {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedDomains(m map[DomainId][]RegionId) []DomainId {
	out := make([]DomainId, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
