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
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

// BuildDocTree renders data's resources and methods into spec.md section
// 4.5.3's human-readable tree: depth-indented, deterministic ordering (the
// same sorted order Build already applied), each entry linked to its
// generated type by name.
func BuildDocTree(data *PackageData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", data.PackageName)
	for _, m := range data.Methods {
		writeMethodEntry(&b, 0, m)
	}
	for _, r := range data.Resources {
		writeResourceEntry(&b, 0, r)
	}
	writeEnumSection(&b, data.Schemas)
	writeEnumSection(&b, data.ParamTypes)
	return b.String()
}

// writeEnumSection renders each enum type's "used by" list, backfilled from
// air.CrossReference's EnumUsers via buildUsedBy, so a reader can see which
// methods and global parameters are typed with a given enum without
// re-walking the API.
func writeEnumSection(b *strings.Builder, schemas []SchemaData) {
	for _, s := range schemas {
		if !s.IsEnum || len(s.UsedBy) == 0 {
			continue
		}
		fmt.Fprintf(b, "%s- **%s** used by:\n", treeIndent(0), s.Ident)
		for _, u := range s.UsedBy {
			fmt.Fprintf(b, "%s- `%s`\n", treeIndent(1), u)
		}
	}
}

func writeResourceEntry(b *strings.Builder, depth int, r ResourceData) {
	fmt.Fprintf(b, "%s- **%s** (`%s`)\n", treeIndent(depth), r.Ident, r.HubType)
	for _, m := range r.Methods {
		writeMethodEntry(b, depth+1, m)
	}
	for _, child := range r.Resources {
		writeResourceEntry(b, depth+1, child)
	}
}

func writeMethodEntry(b *strings.Builder, depth int, m MethodData) {
	doc := firstDocLine(m.Doc)
	if doc == "" {
		fmt.Fprintf(b, "%s- `%s`\n", treeIndent(depth), m.Ident)
		return
	}
	fmt.Fprintf(b, "%s- `%s` — %s\n", treeIndent(depth), m.Ident, doc)
}

func treeIndent(depth int) string {
	return strings.Repeat("  ", depth)
}

func firstDocLine(doc string) string {
	if doc == "" {
		return ""
	}
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		return doc[:i]
	}
	return doc
}

// RenderDocHTML renders a BuildDocTree markdown fragment to HTML via
// goldmark, producing the browsable documentation fragment spec.md section
// 6 allows alongside the crate-level (here, package-level) doc comment.
func RenderDocHTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return nil, dgerrors.Wrap(dgerrors.IO, "rendering package documentation tree", err)
	}
	return buf.Bytes(), nil
}
