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

package uritemplate

import (
	"errors"
	"testing"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

func TestParseRoundTrip(t *testing.T) {
	templates := []string{
		"things/{thingId}",
		"{project}/managedZones/{+managedZone}/changes",
		"v1/{+name}:cancel",
		"static/literal/only",
	}
	for _, tmpl := range templates {
		nodes, err := Parse(tmpl, nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tmpl, err)
		}
		if got := Render(nodes); got != tmpl {
			t.Fatalf("Render(Parse(%q)) = %q, want %q", tmpl, got, tmpl)
		}
	}
}

func TestParseReservedOperatorPreservesSlashes(t *testing.T) {
	nodes, err := Parse("{project}/managedZones/{+managedZone}/changes", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	vars := Variables(nodes)
	if len(vars) != 2 {
		t.Fatalf("got %d variables, want 2", len(vars))
	}
	if vars[0].Reserved {
		t.Fatal("project should be a Simple expansion")
	}
	if !vars[1].Reserved {
		t.Fatal("managedZone should be a Reserved expansion")
	}
}

func TestParseUnsupportedOperatorLowersToSimple(t *testing.T) {
	nodes, err := Parse("things/{.thingId}", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	vars := Variables(nodes)
	if len(vars) != 1 || vars[0].Reserved {
		t.Fatalf("got %+v, want a single Simple variable", vars)
	}
}

func TestParseVariableListIsFatal(t *testing.T) {
	_, err := Parse("things/{a,b}", nil)
	if !errors.Is(err, dgerrors.Template) {
		t.Fatalf("got %v, want dgerrors.Template", err)
	}
}

func TestParseUnterminatedExpressionIsFatal(t *testing.T) {
	_, err := Parse("things/{thingId", nil)
	if !errors.Is(err, dgerrors.Template) {
		t.Fatalf("got %v, want dgerrors.Template", err)
	}
}

func TestValidateRequiredRejectsOptionalVariable(t *testing.T) {
	nodes, err := Parse("things/{thingId}", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = ValidateRequired(nodes, map[string]bool{"thingId": false})
	if !errors.Is(err, dgerrors.Template) {
		t.Fatalf("got %v, want dgerrors.Template", err)
	}
}

func TestValidateRequiredAcceptsRequiredVariable(t *testing.T) {
	nodes, err := Parse("things/{thingId}", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := ValidateRequired(nodes, map[string]bool{"thingId": true}); err != nil {
		t.Fatalf("ValidateRequired: %v", err)
	}
}
