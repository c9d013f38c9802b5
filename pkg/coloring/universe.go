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

import "github.com/sepkernel/colorer/pkg/idset"

// Universe is the full color space derivable from a CacheConfig and a set
// of CPUs: L1 and L2 ids are CPU-scoped, L3 ids are global.
type Universe struct {
	CPUs idset.Set
	L1   idset.Set
	L2   idset.Set
	L3   idset.Set
}

// BuildUniverse constructs the color universe for the given cache budget
// and CPU set.
func BuildUniverse(cache CacheConfig, cpus idset.Set) Universe {
	return Universe{
		CPUs: cpus.Clone(),
		L1:   idset.Range(1, idset.Id(cache.NL1)),
		L2:   idset.Range(1, idset.Id(cache.NL2)),
		L3:   idset.Range(1, idset.Id(cache.NL3)),
	}
}

// AllL1 returns every (id, cpu) pair of L1_all.
func (u Universe) AllL1() []L1Color {
	out := make([]L1Color, 0, u.L1.Size()*u.CPUs.Size())
	for _, cpu := range u.CPUs.SortedMembers() {
		for _, id := range u.L1.SortedMembers() {
			out = append(out, L1Color{ID: id, CPU: cpu})
		}
	}
	return out
}

// AllL2 returns every (id, cpu) pair of L2_all.
func (u Universe) AllL2() []L2Color {
	out := make([]L2Color, 0, u.L2.Size()*u.CPUs.Size())
	for _, cpu := range u.CPUs.SortedMembers() {
		for _, id := range u.L2.SortedMembers() {
			out = append(out, L2Color{ID: id, CPU: cpu})
		}
	}
	return out
}

// AllL3 returns every L3 id of L3_all.
func (u Universe) AllL3() []L3Color {
	out := make([]L3Color, 0, u.L3.Size())
	for _, id := range u.L3.SortedMembers() {
		out = append(out, L3Color{ID: id})
	}
	return out
}

// Contains reports whether pc is a member of PC_all: its L1 and L2 ids are
// within budget for its CPU, its CPU is known, and its L3 id is within
// budget.
func (u Universe) Contains(pc PageColor) bool {
	return u.CPUs.Has(pc.CPU) && u.L1.Has(pc.L1) && u.L2.Has(pc.L2) && u.L3.Has(pc.L3)
}
