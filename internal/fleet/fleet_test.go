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

package fleet

import (
	"errors"
	"testing"
)

func TestRunPreservesOrderAndCapturesErrors(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task{
		{Name: "a", Run: func() error { return nil }},
		{Name: "b", Run: func() error { return boom }},
		{Name: "c", Run: func() error { return nil }},
	}
	results := Run(tasks)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].Name != want {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Name, want)
		}
	}
	if results[1].Err != boom {
		t.Errorf("results[1].Err = %v, want %v", results[1].Err, boom)
	}

	errs := Errors(results)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	if !errors.Is(errs[0], boom) {
		t.Errorf("errs[0] = %v, want wrapping %v", errs[0], boom)
	}
}

func TestRunEmpty(t *testing.T) {
	if got := Run(nil); len(got) != 0 {
		t.Fatalf("Run(nil) = %v, want empty", got)
	}
}
