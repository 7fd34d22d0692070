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

// Package config provides functionality for working with the
// .discoverygen.toml sidecar, grounded on the teacher's sidekick.toml
// config package.
package config

import (
	"fmt"
	"maps"
	"os"
	"path"

	toml "github.com/pelletier/go-toml/v2"
)

const sidecarName = ".discoverygen.toml"

// DocumentationOverride patches the doc comment of a single emitted
// identifier after generation, for fixes that would otherwise require an
// upstream Discovery document change.
type DocumentationOverride struct {
	ID      string `toml:"id"`
	Match   string `toml:"match"`
	Replace string `toml:"replace"`
}

// Config is the merged view of the root sidecar and any command-line
// overrides.
type Config struct {
	General GeneralConfig `toml:"general"`

	// Source holds free-form parser options, notably "included-ids" and
	// "skipped-ids" (comma-separated resource/method ids) for filtering
	// which parts of a Discovery document to emit.
	Source           map[string]string       `toml:"source,omitempty"`
	CommentOverrides []DocumentationOverride `toml:"documentation-overrides,omitempty"`
}

// GeneralConfig carries settings that apply to the whole run. Language is
// always "go": this generator has exactly one output language, unlike the
// teacher's multi-codec pipeline.
type GeneralConfig struct {
	Language      string `toml:"language,omitempty"`
	PackageName   string `toml:"package-name,omitempty"`
	ServiceConfig string `toml:"service-config,omitempty"`
}

// LoadConfig reads the root sidecar (if present) and merges it with
// command-line overrides, returning the effective configuration.
func LoadConfig(packageName string, source map[string]string) (*Config, error) {
	rootConfig, err := LoadRootConfig(sidecarName)
	if err != nil {
		return nil, err
	}
	argsConfig := &Config{
		General: GeneralConfig{Language: "go", PackageName: packageName},
		Source:  maps.Clone(source),
	}
	return mergeConfigs(rootConfig, argsConfig)
}

// LoadRootConfig reads filename, returning an empty Config if it doesn't
// exist. A malformed sidecar is a hard error.
func LoadRootConfig(filename string) (*Config, error) {
	config := &Config{Source: map[string]string{}}
	contents, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := toml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return config, nil
}

func mergeConfigs(rootConfig, local *Config) (*Config, error) {
	merged := &Config{
		General: GeneralConfig{
			Language:      "go",
			PackageName:   rootConfig.General.PackageName,
			ServiceConfig: rootConfig.General.ServiceConfig,
		},
		Source:           map[string]string{},
		CommentOverrides: rootConfig.CommentOverrides,
	}
	maps.Copy(merged.Source, rootConfig.Source)
	if local.General.PackageName != "" {
		merged.General.PackageName = local.General.PackageName
	}
	if local.General.ServiceConfig != "" {
		merged.General.ServiceConfig = local.General.ServiceConfig
	}
	if len(local.CommentOverrides) > 0 {
		merged.CommentOverrides = local.CommentOverrides
	}
	maps.Copy(merged.Source, local.Source)
	return merged, nil
}

// WriteSidecar writes config as a .discoverygen.toml file under outDir.
// LoadConfig reads the sidecar from the current working directory, so a
// later run picks this file up only when it is started in outDir.
func WriteSidecar(outDir string, config *Config) error {
	if err := os.MkdirAll(outDir, 0o777); err != nil {
		return err
	}
	f, err := os.Create(path.Join(outDir, sidecarName))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}
