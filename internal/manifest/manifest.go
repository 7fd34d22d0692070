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

// Package manifest lays out an emitted client package on disk (spec.md
// section 4.6) and writes its go.mod, grounded on the teacher's per-crate
// Cargo.toml emission (internal/language writes one manifest file per
// generated crate from a fixed template; this is the Go-module analogue).
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

// BuildInfo carries the generator's own build provenance, stamped via
// -ldflags at link time and recorded in every emitted package's manifest
// comment so a consumer can tell which generator build produced it.
type BuildInfo struct {
	GitHash   string
	BuildDate string
}

// goModTemplate is a single fixed stanza: internal/manifest needs no
// templating engine beyond text/template for this, since a generated
// client's go.mod never branches on more than the module path and Go
// version (see DESIGN.md for why mustache buys nothing extra here).
var goModTemplate = template.Must(template.New("go.mod").Parse(
	`// Code generated by discoverygen {{.Info.GitHash}} on {{.Info.BuildDate}}. DO NOT EDIT.
module {{.ModulePath}}

go {{.GoVersion}}
`))

// Layout describes the directory structure of one emitted API:
// <api-name>/<version>/{spec.json, lib/go.mod, lib/doc.html,
// generator-errors.log}. The emitter writes the generated .go files
// (client.go, schemas.go, params.go, scopes.go, support.go) into LibDir.
type Layout struct {
	Root       string // the API's own top-level output directory
	LibDir     string
	SpecPath   string
	GoModPath  string
	ErrLogPath string
	DocPath    string // optional HTML documentation fragment (spec.md section 6)
}

// NewLayout computes the output layout for one API under outDir.
func NewLayout(outDir, apiName, version string) Layout {
	root := filepath.Join(outDir, apiName, version)
	lib := filepath.Join(root, "lib")
	return Layout{
		Root:       root,
		LibDir:     lib,
		SpecPath:   filepath.Join(root, "spec.json"),
		GoModPath:  filepath.Join(lib, "go.mod"),
		ErrLogPath: filepath.Join(root, "generator-errors.log"),
		DocPath:    filepath.Join(lib, "doc.html"),
	}
}

// WriteGoMod renders go.mod for the emitted client package into the
// layout's lib directory.
func WriteGoMod(layout Layout, modulePath, goVersion string, info BuildInfo) error {
	if err := os.MkdirAll(layout.LibDir, 0o777); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "creating lib directory", err)
	}
	f, err := os.Create(layout.GoModPath)
	if err != nil {
		return dgerrors.Wrap(dgerrors.IO, "creating go.mod", err)
	}
	defer f.Close()

	data := struct {
		ModulePath string
		GoVersion  string
		Info       BuildInfo
	}{ModulePath: modulePath, GoVersion: goVersion, Info: info}
	if err := goModTemplate.Execute(f, data); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "rendering go.mod", err)
	}
	return nil
}

// WriteSpecJSON copies the original Discovery document's bytes verbatim
// into the layout's spec.json, so the emitted package ships alongside the
// exact input it was generated from.
func WriteSpecJSON(layout Layout, rawDoc []byte) error {
	if err := os.MkdirAll(layout.Root, 0o777); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "creating output directory", err)
	}
	if err := os.WriteFile(layout.SpecPath, rawDoc, 0o666); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "writing spec.json", err)
	}
	return nil
}

// WriteDoc writes the rendered package documentation tree (spec.md section
// 4.5.3) as an HTML fragment alongside the generated source, the optional
// documentation artifact spec.md section 6 allows.
func WriteDoc(layout Layout, html []byte) error {
	if err := os.MkdirAll(layout.LibDir, 0o777); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "creating lib directory", err)
	}
	if err := os.WriteFile(layout.DocPath, html, 0o666); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "writing doc.html", err)
	}
	return nil
}

// AppendErrorLog appends one line per error to the layout's
// generator-errors.log, creating it if absent. The CLI records here the
// error that made emission of this API's client package fail.
func AppendErrorLog(layout Layout, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if err := os.MkdirAll(layout.Root, 0o777); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "creating output directory", err)
	}
	f, err := os.OpenFile(layout.ErrLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return dgerrors.Wrap(dgerrors.IO, "opening generator-errors.log", err)
	}
	defer f.Close()
	var b strings.Builder
	for _, e := range errs {
		fmt.Fprintln(&b, e.Error())
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "writing generator-errors.log", err)
	}
	return nil
}
