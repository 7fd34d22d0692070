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

// Command discoverygen is the minimal CLI driver described in spec.md
// section 6: it reads one or more Discovery REST documents and writes a
// generated Go client package for each, grounded on the teacher's
// generator/cmd/main.go (flag.Parse, then a single Generate call per
// document; here fanned out through internal/fleet for more than one).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/orrery-dev/discoverygen/internal/air"
	"github.com/orrery-dev/discoverygen/internal/config"
	"github.com/orrery-dev/discoverygen/internal/dgerrors"
	"github.com/orrery-dev/discoverygen/internal/dm"
	"github.com/orrery-dev/discoverygen/internal/emitter"
	"github.com/orrery-dev/discoverygen/internal/fleet"
	"github.com/orrery-dev/discoverygen/internal/formatter"
	"github.com/orrery-dev/discoverygen/internal/manifest"
)

// gitHash and buildDate are stamped via -ldflags "-X main.gitHash=... -X
// main.buildDate=..." at link time, and carried into every emitted
// package's go.mod header comment through manifest.BuildInfo.
var (
	gitHash   = "dev"
	buildDate = "unknown"
)

const goVersion = "1.23.6"

func main() {
	var (
		input         = flag.String("input", "", "comma-separated paths to Discovery REST documents")
		outDir        = flag.String("out-dir", "generated", "base directory for generated output")
		serviceConfig = flag.String("service-config", "", "path to a google.api.Service YAML overlay, applied to every input")
		format        = flag.String("format", os.Getenv("DISCOVERYGEN_FORMAT"), "formatter executable to pipe generated .go files through; empty disables formatting")
	)
	flag.Parse()

	if *input == "" {
		slog.Error("discoverygen: -input is required")
		os.Exit(1)
	}

	formatSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "format" {
			formatSet = true
		}
	})

	paths := strings.Split(*input, ",")
	tasks := make([]fleet.Task, 0, len(paths))
	for _, p := range paths {
		p := strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tasks = append(tasks, fleet.Task{
			Name: p,
			Run: func() error {
				return generateOne(p, *outDir, *serviceConfig, *format, formatSet)
			},
		})
	}

	results := fleet.Run(tasks)
	for _, errs := range fleet.Errors(results) {
		slog.Error("discoverygen: generation failed", "error", errs)
	}
	if len(fleet.Errors(results)) > 0 {
		os.Exit(1)
	}
}

// generateOne runs the full pipeline for a single Discovery document:
// parse, optionally overlay a service config, build the AIR, emit the
// client package and its documentation, and write the manifest.
func generateOne(inputPath, outDir, serviceConfigPath, formatTool string, formatSet bool) error {
	rawDoc, err := os.ReadFile(inputPath)
	if err != nil {
		return dgerrors.Wrap(dgerrors.IO, "reading "+inputPath, err)
	}

	doc, err := dm.Parse(rawDoc)
	if err != nil {
		return err
	}

	if serviceConfigPath != "" {
		if err := dm.LoadServiceConfigOverrides(doc, serviceConfigPath); err != nil {
			return err
		}
	}

	cfg, err := config.LoadConfig(doc.Name, map[string]string{})
	if err != nil {
		return err
	}

	api, err := air.Build(doc)
	if err != nil {
		return err
	}

	layout := manifest.NewLayout(outDir, doc.Name, doc.Version)

	sink := resolveSink(layout.LibDir, formatTool, formatSet)
	if err := emitter.Generate(api, doc.Name, sink); err != nil {
		logErr := manifest.AppendErrorLog(layout, []error{err})
		if logErr != nil {
			slog.Warn("discoverygen: could not write generator-errors.log", "error", logErr)
		}
		return err
	}

	data, err := emitter.Build(api, doc.Name)
	if err != nil {
		return err
	}
	docHTML, err := emitter.RenderDocHTML(emitter.BuildDocTree(data))
	if err != nil {
		return err
	}
	if err := manifest.WriteDoc(layout, docHTML); err != nil {
		return err
	}

	modulePath := fmt.Sprintf("%s/%s/%s", "github.com/orrery-dev/discoverygen-clients", doc.Name, doc.Version)
	if err := manifest.WriteGoMod(layout, modulePath, goVersion, manifest.BuildInfo{GitHash: gitHash, BuildDate: buildDate}); err != nil {
		return err
	}
	if err := manifest.WriteSpecJSON(layout, rawDoc); err != nil {
		return err
	}
	if err := config.WriteSidecar(outDir, cfg); err != nil {
		return err
	}

	slog.Info("discoverygen: generated client package", "api", doc.Name, "version", doc.Version, "out", layout.Root)
	return nil
}

// resolveSink mirrors spec.md section 6's RUSTFMT-equivalent three-state
// environment rule: an explicit -format (or DISCOVERYGEN_FORMAT) of ""
// disables formatting outright; a non-empty value names the formatter to
// run; leaving the flag untouched falls back to formatter.New's own
// PATH/DISCOVERYGEN_GOFMT/DISCOVERYGEN_GOIMPORTS search.
func resolveSink(libDir, formatTool string, formatSet bool) emitter.Sink {
	if formatSet {
		if formatTool == "" {
			return emitter.NewRawSink(libDir)
		}
		return formatter.NewWithTool(libDir, formatTool)
	}
	if envTool, ok := os.LookupEnv("DISCOVERYGEN_FORMAT"); ok {
		if envTool == "" {
			return emitter.NewRawSink(libDir)
		}
		return formatter.NewWithTool(libDir, envTool)
	}
	return formatter.New(libDir)
}
