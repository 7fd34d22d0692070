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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadRootConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadRootConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadRootConfig: %v", err)
	}
	if cfg.General.PackageName != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadRootConfigParsesSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".discoverygen.toml")
	contents := `
[general]
package-name = "drive"
service-config = "drive_v3.yaml"

[source]
included-ids = "files.list,files.get"

[[documentation-overrides]]
id = "files.list"
match = "foo"
replace = "bar"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRootConfig(path)
	if err != nil {
		t.Fatalf("LoadRootConfig: %v", err)
	}
	if cfg.General.PackageName != "drive" {
		t.Fatalf("PackageName = %q, want drive", cfg.General.PackageName)
	}
	if cfg.Source["included-ids"] != "files.list,files.get" {
		t.Fatalf("Source[included-ids] = %q", cfg.Source["included-ids"])
	}
	if len(cfg.CommentOverrides) != 1 || cfg.CommentOverrides[0].ID != "files.list" {
		t.Fatalf("CommentOverrides = %+v", cfg.CommentOverrides)
	}
}

func TestMergeConfigsLocalOverridesRoot(t *testing.T) {
	root := &Config{
		General: GeneralConfig{PackageName: "root-name"},
		Source:  map[string]string{"skipped-ids": "a,b"},
	}
	local := &Config{
		General: GeneralConfig{PackageName: "override-name"},
		Source:  map[string]string{"included-ids": "c"},
	}
	merged, err := mergeConfigs(root, local)
	if err != nil {
		t.Fatalf("mergeConfigs: %v", err)
	}
	want := map[string]string{"skipped-ids": "a,b", "included-ids": "c"}
	if diff := cmp.Diff(want, merged.Source); diff != "" {
		t.Fatalf("Source mismatch (-want +got):\n%s", diff)
	}
	if merged.General.PackageName != "override-name" {
		t.Fatalf("PackageName = %q, want override-name", merged.General.PackageName)
	}
}
