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

package formatter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteNonGoFilePassesThroughUnformatted(t *testing.T) {
	dir := t.TempDir()
	sink := New(dir)
	if err := sink.Write("go.mod", []byte("module example\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "module example\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteUsesGoimportsOverride(t *testing.T) {
	dir := t.TempDir()
	// "cat" stands in for a real formatter here: it round-trips stdin to
	// stdout unchanged, which is enough to exercise the override plumbing.
	t.Setenv("DISCOVERYGEN_GOIMPORTS", "cat")

	sink := New(dir)
	contents := []byte("package p\n")
	if err := sink.Write("p.go", contents); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "p.go"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(contents) {
		t.Fatalf("got %q, want %q", got, contents)
	}
}

func TestWriteFailsWhenOverrideToolMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DISCOVERYGEN_GOIMPORTS", "")
	t.Setenv("DISCOVERYGEN_GOFMT", filepath.Join(dir, "does-not-exist"))

	sink := New(dir)
	contents := []byte("package p\n")
	err := sink.Write("p.go", contents)
	if err == nil {
		t.Fatalf("expected an error from a nonexistent formatter binary")
	}
}
