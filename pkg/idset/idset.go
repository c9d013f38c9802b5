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

// Package idset provides a small, shared set-of-small-integer-ids type used
// throughout the cache colorer for CPU ids and cache color ids alike.
package idset

import (
	"sort"
	"strconv"
)

// Id is an integer id, used to identify CPUs or cache colors, depending on
// context.
type Id int

// Set is an unordered set of integer ids.
type Set map[Id]struct{}

// New creates a new set from the given ids.
func New(ids ...Id) Set {
	s := make(Set, len(ids))
	s.Add(ids...)
	return s
}

// NewFromInts creates a new set from a plain int slice.
func NewFromInts(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[Id(id)] = struct{}{}
	}
	return s
}

// Range creates the set { lo, lo+1, ..., hi } (inclusive).
func Range(lo, hi Id) Set {
	s := make(Set, int(hi-lo)+1)
	for id := lo; id <= hi; id++ {
		s[id] = struct{}{}
	}
	return s
}

// Clone returns a copy of this Set.
func (s Set) Clone() Set {
	return New(s.Members()...)
}

// Add adds the given ids into the set.
func (s Set) Add(ids ...Id) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Del deletes the given ids from the set.
func (s Set) Del(ids ...Id) {
	for _, id := range ids {
		delete(s, id)
	}
}

// Size returns the number of ids in the set.
func (s Set) Size() int {
	return len(s)
}

// Has tests if all the given ids are present in the set.
func (s Set) Has(ids ...Id) bool {
	for _, id := range ids {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}

// Members returns all ids in the set as a randomly ordered slice.
func (s Set) Members() []Id {
	ids := make([]Id, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// SortedMembers returns all ids in the set as an ascending sorted slice.
func (s Set) SortedMembers() []Id {
	ids := s.Members()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Union returns the union of s and o, without modifying either.
func (s Set) Union(o Set) Set {
	u := s.Clone()
	u.Add(o.Members()...)
	return u
}

// Intersection returns the intersection of s and o.
func (s Set) Intersection(o Set) Set {
	i := make(Set)
	for id := range s {
		if o.Has(id) {
			i.Add(id)
		}
	}
	return i
}

// Difference returns the ids in s that are not in o.
func (s Set) Difference(o Set) Set {
	d := make(Set)
	for id := range s {
		if !o.Has(id) {
			d.Add(id)
		}
	}
	return d
}

// String returns the sorted set as a comma-separated string.
func (s Set) String() string {
	str, sep := "", ""
	for _, id := range s.SortedMembers() {
		str += sep + strconv.Itoa(int(id))
		sep = ","
	}
	return str
}
