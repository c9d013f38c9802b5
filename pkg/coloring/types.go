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
	"fmt"

	"github.com/sepkernel/colorer/pkg/idset"
)

// ExecutorKind discriminates the two kinds of executor entities.
type ExecutorKind int

const (
	// Kernel is a kernel executor.
	Kernel ExecutorKind = iota
	// Subject is a user subject executor.
	Subject
)

// String returns a human-readable name for the executor kind.
func (k ExecutorKind) String() string {
	switch k {
	case Kernel:
		return "kernel"
	case Subject:
		return "subject"
	default:
		return "unknown"
	}
}

// Channel is an ordered pair of executor names; it induces a synthetic
// memory region identified by the pair.
type Channel struct {
	From string
	To   string
}

// DomainId is an opaque cache isolation domain identifier.
type DomainId string

// RegionId identifies a MemoryRegion: either an executor (kernel or
// subject) by name, or a channel-backed region by its (from, to) pair.
// RegionId is comparable and safe to use as a map key.
type RegionId struct {
	name      string
	from      string
	to        string
	isChannel bool
}

// ExecutorRegion returns the RegionId of an executor-backed region.
func ExecutorRegion(name string) RegionId {
	return RegionId{name: name}
}

// ChannelRegion returns the RegionId of a channel-backed region.
func ChannelRegion(from, to string) RegionId {
	return RegionId{from: from, to: to, isChannel: true}
}

// IsChannel reports whether this region is channel-backed.
func (r RegionId) IsChannel() bool {
	return r.isChannel
}

// Name returns the executor name for an executor-backed region. It panics
// if called on a channel-backed region; callers should check IsChannel
// first.
func (r RegionId) Name() string {
	if r.isChannel {
		panic("coloring: Name() called on a channel RegionId")
	}
	return r.name
}

// Endpoints returns the (from, to) pair for a channel-backed region. It
// panics if called on an executor-backed region.
func (r RegionId) Endpoints() (string, string) {
	if !r.isChannel {
		panic("coloring: Endpoints() called on an executor RegionId")
	}
	return r.from, r.to
}

// String renders the region identity, e.g. "k1" or "c(a,b)".
func (r RegionId) String() string {
	if r.isChannel {
		return fmt.Sprintf("c(%s,%s)", r.from, r.to)
	}
	return r.name
}

// MemoryRegion is an executor's own image, or a channel's shared buffer.
type MemoryRegion struct {
	ID     RegionId
	CPUs   idset.Set
	Domain DomainId
}

// CacheConfig describes the number of colors available at each cache
// level.
type CacheConfig struct {
	NL1 int
	NL2 int
	NL3 int
}

// PageColor is a triple binding one color per cache level. The L1 and L2
// components are always CPU-bound to the same CPU, which this type
// enforces structurally by carrying a single CPU field rather than one per
// level.
type PageColor struct {
	L1  idset.Id
	L2  idset.Id
	L3  idset.Id
	CPU idset.Id
}

// String renders the page color as "(l1=a@p, l2=b@p, l3=c)", matching the
// textual fixture format.
func (pc PageColor) String() string {
	return fmt.Sprintf("(l1=%d@%d, l2=%d@%d, l3=%d)", pc.L1, pc.CPU, pc.L2, pc.CPU, pc.L3)
}

// L1Color is one CPU-bound L1 cache color.
type L1Color struct {
	ID  idset.Id
	CPU idset.Id
}

// L2Color is one CPU-bound L2 cache color.
type L2Color struct {
	ID  idset.Id
	CPU idset.Id
}

// L3Color is one shared L3 cache color.
type L3Color struct {
	ID idset.Id
}
