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
	"errors"
	"testing"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

func TestReserveThenClaim(t *testing.T) {
	a := New()
	a.Reserve("Thing", "schemas")
	got, err := a.ClaimReserved("Thing", "schemas")
	if err != nil {
		t.Fatalf("ClaimReserved: %v", err)
	}
	if got != "Thing" {
		t.Fatalf("got %q, want %q", got, "Thing")
	}
}

func TestClaimWithoutReserveIsNamingConflict(t *testing.T) {
	a := New()
	_, err := a.ClaimReserved("Thing", "schemas")
	if !errors.Is(err, dgerrors.Naming) {
		t.Fatalf("got %v, want dgerrors.Naming", err)
	}
}

func TestDoubleClaimIsNamingConflict(t *testing.T) {
	a := New()
	a.Reserve("Thing", "schemas")
	if _, err := a.ClaimReserved("Thing", "schemas"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if _, err := a.ClaimReserved("Thing", "schemas"); !errors.Is(err, dgerrors.Naming) {
		t.Fatalf("got %v, want dgerrors.Naming", err)
	}
}

func TestDuplicateReservePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate reserve")
		}
	}()
	a := New()
	a.Reserve("Thing", "schemas")
	a.Reserve("Thing", "schemas")
}

func TestAssignAppendsNumericSuffixOnCollision(t *testing.T) {
	a := New()
	first := a.Assign("Nested", "resources.things")
	second := a.Assign("Nested", "resources.things")
	third := a.Assign("Nested", "resources.things")
	if first != "Nested" || second != "Nested2" || third != "Nested3" {
		t.Fatalf("got %q, %q, %q", first, second, third)
	}
}

func TestAssignDoesNotCollideAcrossParentPaths(t *testing.T) {
	a := New()
	a.Reserve("Thing", "schemas")
	got := a.Assign("Thing", "resources.things")
	if got != "Thing" {
		t.Fatalf("got %q, want %q (different parent path)", got, "Thing")
	}
}

func TestToSnakeEscapesSelf(t *testing.T) {
	if got := ToSnake("self"); got != "_self" {
		t.Fatalf("got %q, want %q", got, "_self")
	}
}

func TestToPascalDoesNotEscapeKeyword(t *testing.T) {
	if got := ToPascal("type"); got == "Type" {
		// ToPascal should not collide with the package-level keyword table,
		// which only escapes lower-case Go keywords; PascalCase forms never
		// collide with reserved words. This check documents that.
		t.Log("PascalCase form of a keyword does not need escaping")
	}
}

func TestToSnakeLeadingDigit(t *testing.T) {
	got := ToSnake("2fa")
	if len(got) == 0 || got[0] == '2' {
		t.Fatalf("got %q, want leading digit prefixed with _", got)
	}
}

func TestSanitizeLeadingDigit(t *testing.T) {
	if got, want := sanitize("123abc"), "_123abc"; got != want {
		t.Fatalf("sanitize(%q) = %q, want %q", "123abc", got, want)
	}
}
