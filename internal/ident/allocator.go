// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ident

import (
	"fmt"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

type state int

const (
	stateReserved state = iota
	stateAssigned
)

type key struct {
	parentPath string
	ident      string
}

// Allocator is the Ident Allocator of spec.md section 4.2: one mapping keyed
// by (parent_path, ident), built fresh per API. It is the only stateful,
// mutable component of the pipeline (spec.md section 9).
type Allocator struct {
	entries map[key]state
}

// New returns an empty Allocator.
func New() *Allocator {
	return &Allocator{entries: map[key]state{}}
}

// Reserve installs a placeholder at (parentPath, PascalCase(id)). It must be
// called once per top-level schema id before any traversal begins; a
// duplicate reserve is a fatal programmer error, matching the teacher's
// TypeIdentTracker.reserve, which panics rather than returning an error.
func (a *Allocator) Reserve(id, parentPath string) {
	k := key{parentPath, ToPascal(id)}
	if _, ok := a.entries[k]; ok {
		panic(fmt.Sprintf("ident: duplicate reservation for %q in %q", k.ident, k.parentPath))
	}
	a.entries[k] = stateReserved
}

// ClaimReserved consumes a prior Reserve at (parentPath, PascalCase(desired)).
// A claim with no matching reservation, or a second claim of an
// already-assigned ident, is a NamingConflict error.
func (a *Allocator) ClaimReserved(desired, parentPath string) (string, error) {
	wanted := ToPascal(desired)
	k := key{parentPath, wanted}
	st, ok := a.entries[k]
	if !ok {
		return "", dgerrors.Wrapf(dgerrors.Naming, nil, "cannot claim %q in %q: not reserved", wanted, parentPath)
	}
	if st == stateAssigned {
		return "", dgerrors.Wrapf(dgerrors.Naming, nil, "cannot claim %q in %q: already assigned", wanted, parentPath)
	}
	a.entries[k] = stateAssigned
	return wanted, nil
}

// Assign takes (parentPath, PascalCase(desired)) if free, otherwise appends
// 2, 3, ... until a free ident is found.
func (a *Allocator) Assign(desired, parentPath string) string {
	wanted := ToPascal(desired)
	k := key{parentPath, wanted}
	if _, taken := a.entries[k]; !taken {
		a.entries[k] = stateAssigned
		return wanted
	}
	for i := 2; ; i++ {
		candidate := ToPascal(fmt.Sprintf("%s%d", desired, i))
		k := key{parentPath, candidate}
		if _, taken := a.entries[k]; !taken {
			a.entries[k] = stateAssigned
			return candidate
		}
	}
}
