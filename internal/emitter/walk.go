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
	"io/fs"
	"path/filepath"
	"strings"
)

// GeneratedFile pairs a template with the output file it produces, grounded
// on internal/language.GeneratedFile.
type GeneratedFile struct {
	TemplatePath string
	OutputPath   string
}

// walkTemplatesDir discovers every top-level template (skipping partials,
// identified the same way the teacher does: a partial's basename contains
// exactly one '.', e.g. "header.mustache", while a generated file's
// basename encodes its own extension, e.g. "client.go.mustache") under
// root, grounded on internal/language.WalkTemplatesDir.
func walkTemplatesDir(fsys fs.FS, root string) []GeneratedFile {
	var result []GeneratedFile
	_ = fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".mustache" {
			return nil
		}
		if strings.Count(d.Name(), ".") == 1 {
			return nil
		}
		dirname := filepath.Dir(strings.TrimPrefix(path, root))
		basename := strings.TrimSuffix(d.Name(), ".mustache")
		result = append(result, GeneratedFile{
			TemplatePath: path,
			OutputPath:   filepath.Join(dirname, basename),
		})
		return nil
	})
	return result
}
