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

package emitter

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"
	"github.com/orrery-dev/discoverygen/internal/air"
	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

//go:embed templates
var templates embed.FS

const templatesRoot = "templates"

func templateProvider() func(string) (string, error) {
	return func(name string) (string, error) {
		contents, err := templates.ReadFile(name)
		if err != nil {
			return "", err
		}
		return string(contents), nil
	}
}

// mustacheProvider resolves a partial's bare name (as referenced by
// `{{>header}}`) relative to the directory of the template that included
// it, grounded on internal/language.mustacheProvider.
type mustacheProvider struct {
	impl    func(string) (string, error)
	dirname string
}

func (p *mustacheProvider) Get(name string) (string, error) {
	return p.impl(filepath.Join(p.dirname, name) + ".mustache")
}

// Sink receives the rendered contents of one output file. The formatter
// sink (internal/formatter) implements this to pipe every .go file through
// an external formatter before it touches disk.
type Sink interface {
	Write(outputPath string, contents []byte) error
}

// rawSink writes files directly, with no formatting pass; used by tests
// that only care about the rendered text.
type rawSink struct{ outDir string }

func (s rawSink) Write(outputPath string, contents []byte) error {
	dest := filepath.Join(s.outDir, outputPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o777); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "creating output directory", err)
	}
	if err := os.WriteFile(dest, contents, 0o666); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "writing "+outputPath, err)
	}
	return nil
}

// NewRawSink returns a Sink that writes files verbatim under outDir, with no
// formatting pass.
func NewRawSink(outDir string) Sink { return rawSink{outDir: outDir} }

// Generate renders every top-level template under templates/ against the
// AIR, writing each output file through sink, grounded on
// internal/language.GenerateClient.
func Generate(api *air.API, packageName string, sink Sink) error {
	data, err := Build(api, packageName)
	if err != nil {
		return err
	}

	provider := templateProvider()
	files := walkTemplatesDir(templates, templatesRoot)

	var errs []error
	for _, gen := range files {
		contents, err := provider(gen.TemplatePath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		nested := &mustacheProvider{impl: provider, dirname: filepath.Dir(gen.TemplatePath)}
		rendered, err := mustache.RenderPartials(contents, nested, data)
		if err != nil {
			errs = append(errs, dgerrors.Wrap(dgerrors.IO, "rendering "+gen.TemplatePath, err))
			continue
		}
		if err := sink.Write(gen.OutputPath, []byte(rendered)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors generating client package: %w", errors.Join(errs...))
	}
	return nil
}
