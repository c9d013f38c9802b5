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

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ValidationKind identifies the specific way an Input failed validation.
type ValidationKind int

const (
	// MissingExecutorCPU: an executor has no entry (or an empty entry) in
	// ex_cpu.
	MissingExecutorCPU ValidationKind = iota
	// UnusedCPU: a CPU is declared but pinned to no executor.
	UnusedCPU
	// MissingIsolationDomain: a region has no entry in mr_cache_isolation.
	MissingIsolationDomain
	// NonFunctionalIsolation: a region is mapped to more than one distinct
	// isolation domain.
	NonFunctionalIsolation
	// EmptyIsolationDomain: a declared isolation domain has no member
	// regions.
	EmptyIsolationDomain
	// DuplicateEntityId: the same name is used for more than one entity.
	DuplicateEntityId
	// UnknownChannelEndpoint: a channel names an executor that does not
	// exist. Not one of the named validation kinds, but guarded against so
	// that malformed input never reaches the solver.
	UnknownChannelEndpoint
)

// String returns a short machine-stable name for the validation kind.
func (k ValidationKind) String() string {
	switch k {
	case MissingExecutorCPU:
		return "MissingExecutorCPU"
	case UnusedCPU:
		return "UnusedCPU"
	case MissingIsolationDomain:
		return "MissingIsolationDomain"
	case NonFunctionalIsolation:
		return "NonFunctionalIsolation"
	case EmptyIsolationDomain:
		return "EmptyIsolationDomain"
	case DuplicateEntityId:
		return "DuplicateEntityId"
	case UnknownChannelEndpoint:
		return "UnknownChannelEndpoint"
	default:
		return "Unknown"
	}
}

// ValidationIssue is a single input validation failure.
type ValidationIssue struct {
	Kind   ValidationKind
	Detail string
}

// Error implements the error interface.
func (v *ValidationIssue) Error() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

func newIssue(kind ValidationKind, format string, args ...interface{}) *ValidationIssue {
	return &ValidationIssue{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// SolveErrorKind identifies the top-level reason Solve failed.
type SolveErrorKind int

const (
	// ErrInputValidation: the Input failed validation; Cause wraps a
	// *multierror.Error of *ValidationIssue (reachable via errors.As).
	ErrInputValidation SolveErrorKind = iota
	// ErrUnsatL3: no feasible L3 partition exists for the isolation
	// domains present.
	ErrUnsatL3
	// ErrUnsatL2: no feasible L2 partition exists for the isolation
	// domains sharing some CPU.
	ErrUnsatL2
	// ErrCancelled: the context was cancelled before Solve finished.
	ErrCancelled
)

// String returns a short machine-stable name for the error kind.
func (k SolveErrorKind) String() string {
	switch k {
	case ErrInputValidation:
		return "InputValidation"
	case ErrUnsatL3:
		return "UnsatL3"
	case ErrUnsatL2:
		return "UnsatL2"
	case ErrCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// SolveError is the single error type returned by Solve. Its Kind
// discriminates which of the four failure modes occurred; Cause carries
// the kind-specific detail and is always non-nil.
type SolveError struct {
	Kind  SolveErrorKind
	Cause error
}

// Error implements the error interface.
func (e *SolveError) Error() string {
	return fmt.Sprintf("coloring: %s: %v", e.Kind, e.Cause)
}

// Unwrap allows errors.Is / errors.As to reach the underlying cause.
func (e *SolveError) Unwrap() error {
	return e.Cause
}

// UnsatL3Detail carries the domains that could not be separated and the
// number of L3 colors available.
type UnsatL3Detail struct {
	Domains []DomainId
	NL3     int
}

func (d *UnsatL3Detail) Error() string {
	return fmt.Sprintf("%d isolation domains require pairwise-disjoint L3 colors but only %d are available: %v",
		len(d.Domains), d.NL3, d.Domains)
}

// UnsatL2Detail carries the CPU on which the conflict occurred, the
// domains sharing it, and the number of L2 colors available.
type UnsatL2Detail struct {
	CPU     int
	Domains []DomainId
	NL2     int
}

func (d *UnsatL2Detail) Error() string {
	return fmt.Sprintf("cpu %d: %d isolation domains require pairwise-disjoint L2 colors but only %d are available: %v",
		d.CPU, len(d.Domains), d.NL2, d.Domains)
}

func validationError(issues *multierror.Error) error {
	return &SolveError{Kind: ErrInputValidation, Cause: errors.WithStack(issues)}
}

func unsatL3Error(domains []DomainId, nl3 int) error {
	return &SolveError{Kind: ErrUnsatL3, Cause: &UnsatL3Detail{Domains: domains, NL3: nl3}}
}

func unsatL2Error(cpu int, domains []DomainId, nl2 int) error {
	return &SolveError{Kind: ErrUnsatL2, Cause: &UnsatL2Detail{CPU: cpu, Domains: domains, NL2: nl2}}
}

func cancelledError(cause error) error {
	return &SolveError{Kind: ErrCancelled, Cause: errors.Wrap(cause, "solve cancelled")}
}
