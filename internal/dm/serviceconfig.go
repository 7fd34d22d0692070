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

package dm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

// ServiceConfig is the subset of a GCP "google.api.Service" YAML document
// (the `*_v1.yaml` sidecar Discovery APIs are frequently published
// alongside) this generator cares about: the canonical host name and any
// OAuth scope descriptions the Discovery document itself left undocumented.
type ServiceConfig struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Authentication struct {
		Rules []struct {
			Selector string `json:"selector"`
			OAuth    struct {
				CanonicalScopes string `json:"canonicalScopes"`
			} `json:"oauth"`
		} `json:"rules"`
	} `json:"authentication"`
}

// LoadServiceConfigOverrides reads a GCP service-config YAML file from path
// and applies it to doc in place: canonicalScopes descriptions backfill any
// OAuthScope in doc.Scopes that Discovery left undescribed. Name and Title
// are decoded but not applied; doc.RootURL is left unchanged.
func LoadServiceConfigOverrides(doc *ApiDoc, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return dgerrors.Wrap(dgerrors.IO, "reading service config "+path, err)
	}
	var svc ServiceConfig
	if err := yaml.Unmarshal(contents, &svc); err != nil {
		return dgerrors.Wrap(dgerrors.Discovery, "parsing service config "+path, err)
	}

	descriptions := map[string]string{}
	for _, rule := range svc.Authentication.Rules {
		if rule.OAuth.CanonicalScopes == "" {
			continue
		}
		for _, scope := range strings.Split(rule.OAuth.CanonicalScopes, ",") {
			descriptions[strings.TrimSpace(scope)] = fmt.Sprintf("required by %s", rule.Selector)
		}
	}
	for i := range doc.Scopes {
		if doc.Scopes[i].Description != "" {
			continue
		}
		if desc, ok := descriptions[doc.Scopes[i].URL]; ok {
			doc.Scopes[i].Description = desc
		}
	}
	return nil
}
