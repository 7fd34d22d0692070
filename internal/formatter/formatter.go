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

// Package formatter implements the emitter.Sink that pipes every generated
// .go file through an external Go formatter before it touches disk (other
// files are written as they are), grounded on
// spec.md section 4.7 and the teacher's RUSTFMT-equivalent environment-driven
// tool selection (internal/language picks its formatting command the same
// way: an env var override, falling back to a sane default binary name).
package formatter

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

// Sink mirrors internal/emitter.Sink, avoided as a direct import to keep
// this package usable without pulling in the mustache/embed machinery.
type Sink interface {
	Write(outputPath string, contents []byte) error
}

// formatSink formats every .go file it receives through an external tool
// before writing it; non-.go files (go.mod, generated JSON, etc.) pass
// through untouched.
type formatSink struct {
	outDir string
	tool   string // resolved absolute or PATH-relative binary name
	args   []string
}

// New returns a Sink that runs a formatter over every emitted .go file:
// $DISCOVERYGEN_GOIMPORTS, else $DISCOVERYGEN_GOFMT, else goimports on PATH,
// else gofmt on PATH. If neither override is set and neither tool is on
// PATH, the Sink writes files verbatim and logs why, rather than failing
// the whole run over a missing formatter. An override that names a missing
// executable is not a fallback case: Write then returns a Formatter error.
func New(outDir string) Sink {
	tool, args := resolveTool()
	return &formatSink{outDir: outDir, tool: tool, args: args}
}

// NewWithTool returns a Sink that runs the given formatter command over
// every emitted .go file, bypassing resolveTool's search. Used when the
// caller already knows which executable to invoke (the CLI's -format flag).
func NewWithTool(outDir, tool string) Sink {
	return &formatSink{outDir: outDir, tool: tool}
}

func resolveTool() (string, []string) {
	if goimports := os.Getenv("DISCOVERYGEN_GOIMPORTS"); goimports != "" {
		return goimports, nil
	}
	if gofmt := os.Getenv("DISCOVERYGEN_GOFMT"); gofmt != "" {
		return gofmt, []string{"-s"}
	}
	if path, err := exec.LookPath("goimports"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("gofmt"); err == nil {
		return path, []string{"-s"}
	}
	return "", nil
}

func (s *formatSink) Write(outputPath string, contents []byte) error {
	dest := filepath.Join(s.outDir, outputPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o777); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "creating output directory", err)
	}

	if filepath.Ext(outputPath) != ".go" || s.tool == "" {
		if filepath.Ext(outputPath) == ".go" {
			slog.Warn("formatter: no gofmt/goimports on PATH, writing unformatted", "file", outputPath)
		}
		if err := os.WriteFile(dest, contents, 0o666); err != nil {
			return dgerrors.Wrap(dgerrors.IO, "writing "+outputPath, err)
		}
		return nil
	}

	formatted, err := s.run(contents)
	if err != nil {
		return dgerrors.Wrap(dgerrors.Formatter, "formatting "+outputPath, err)
	}
	if err := os.WriteFile(dest, formatted, 0o666); err != nil {
		return dgerrors.Wrap(dgerrors.IO, "writing "+outputPath, err)
	}
	return nil
}

func (s *formatSink) run(contents []byte) ([]byte, error) {
	cmd := exec.CommandContext(context.Background(), s.tool, s.args...)
	cmd.Stdin = bytes.NewReader(contents)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, dgerrors.Wrapf(dgerrors.Formatter, err, "%s exited: %s", s.tool, stderr.String())
	}
	return stdout.Bytes(), nil
}
