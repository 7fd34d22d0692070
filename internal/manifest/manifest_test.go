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

package manifest

import (
	"os"
	"strings"
	"testing"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout("/out", "drive", "v3")
	want := Layout{
		Root:       "/out/drive/v3",
		LibDir:     "/out/drive/v3/lib",
		SpecPath:   "/out/drive/v3/spec.json",
		GoModPath:  "/out/drive/v3/lib/go.mod",
		ErrLogPath: "/out/drive/v3/generator-errors.log",
		DocPath:    "/out/drive/v3/lib/doc.html",
	}
	if l != want {
		t.Fatalf("NewLayout = %+v, want %+v", l, want)
	}
}

func TestWriteGoMod(t *testing.T) {
	dir := t.TempDir()
	layout := NewLayout(dir, "drive", "v3")
	err := WriteGoMod(layout, "example.com/drive/v3", "1.23.6", BuildInfo{GitHash: "abc123", BuildDate: "2026-07-30"})
	if err != nil {
		t.Fatalf("WriteGoMod: %v", err)
	}
	contents, err := os.ReadFile(layout.GoModPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got := string(contents)
	for _, want := range []string{"module example.com/drive/v3", "go 1.23.6", "abc123"} {
		if !strings.Contains(got, want) {
			t.Errorf("go.mod missing %q, got:\n%s", want, got)
		}
	}
}

func TestWriteSpecJSONAndErrorLog(t *testing.T) {
	dir := t.TempDir()
	layout := NewLayout(dir, "drive", "v3")
	if err := WriteSpecJSON(layout, []byte(`{"name":"drive"}`)); err != nil {
		t.Fatalf("WriteSpecJSON: %v", err)
	}
	if _, err := os.Stat(layout.SpecPath); err != nil {
		t.Fatalf("spec.json not written: %v", err)
	}

	if err := AppendErrorLog(layout, nil); err != nil {
		t.Fatalf("AppendErrorLog(nil): %v", err)
	}
	if _, err := os.Stat(layout.ErrLogPath); !os.IsNotExist(err) {
		t.Fatalf("expected no error log for an empty error list")
	}

	if err := AppendErrorLog(layout, []error{errFixture("boom")}); err != nil {
		t.Fatalf("AppendErrorLog: %v", err)
	}
	contents, err := os.ReadFile(layout.ErrLogPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(contents), "boom") {
		t.Fatalf("error log missing entry, got %q", contents)
	}
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
