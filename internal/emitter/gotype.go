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

// Package emitter renders the AIR into a Go client package, grounded on
// internal/golang's field-type switch and internal/language's mustache +
// go:embed + WalkTemplatesDir architecture.
package emitter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/orrery-dev/discoverygen/internal/air"
	"github.com/orrery-dev/discoverygen/internal/dm"
)

// scalarGoType maps a dm.Kind to the Go type that carries it, grounded on
// internal/golang.fieldType's switch over api.Typez. The Discovery format
// of a KindFormattedString is not consulted: every such field is a string.
func scalarGoType(k dm.Kind) string {
	switch k {
	case dm.KindAny:
		return "any"
	case dm.KindBool:
		return "bool"
	case dm.KindInt32:
		return "int32"
	case dm.KindUint32:
		return "uint32"
	case dm.KindInt64:
		return "Int64String"
	case dm.KindUint64:
		return "Uint64String"
	case dm.KindFloat32:
		return "float32"
	case dm.KindFloat64:
		return "float64"
	case dm.KindString:
		return "string"
	case dm.KindBytes:
		return "Bytes"
	case dm.KindDate:
		return "string"
	case dm.KindDateTime:
		return "time.Time"
	case dm.KindFormattedString:
		return "string"
	default:
		slog.Warn("emitter: unhandled scalar kind, falling back to any", "kind", k.String())
		return "any"
	}
}

// pathQualifier turns an AIR TypeKey.ParentPath into a PascalCase prefix,
// dropping the structural segments ("schemas", "params", "resources",
// "methods") that every path shares and keeping only the segments that
// actually distinguish one parent from another.
func pathQualifier(parentPath string) string {
	var parts []string
	for _, s := range strings.Split(parentPath, ".") {
		switch s {
		case "", "schemas", "params", "resources", "methods":
			continue
		}
		parts = append(parts, strcase.ToCamel(s))
	}
	return strings.Join(parts, "")
}

// goTypeName returns the exported Go type name for an AIR named type. Nested
// types are qualified with their parent's name, so a type nested under
// "schemas.Thing" in a field named "detail" becomes ThingDetail, mirroring
// internal/golang.messageName's Parent-prefixing for nested messages.
// Top-level schemas and global params are reserved directly under the
// literal "schemas"/"params" paths and are already unique without
// qualification; everything else is flattened into one Go package, so its
// Ident alone is not guaranteed unique across distinct parent paths.
func goTypeName(key air.TypeKey) string {
	if key.ParentPath == "schemas" || key.ParentPath == "params" {
		return key.Ident
	}
	q := pathQualifier(key.ParentPath)
	if q == "" {
		return key.Ident
	}
	return q + key.Ident
}

// fieldGoType returns the Go type for a struct field, applying the pointer
// indirection rules described in spec.md section 3.2: a Boxed named
// reference, and an optional scalar for which scalarNeedsPointerWhenOptional
// holds, get a pointer so nil can represent "absent" distinctly from the
// zero value of the wire type.
func fieldGoType(tr air.TypeRef, boxed, optional bool) string {
	switch tr.RefKind {
	case air.RefScalar:
		t := scalarGoType(tr.Scalar)
		if optional && scalarNeedsPointerWhenOptional(tr.Scalar) {
			return "*" + t
		}
		return t
	case air.RefNamed:
		if boxed {
			return "*" + goTypeName(tr.Named)
		}
		return goTypeName(tr.Named)
	case air.RefArray:
		return "[]" + fieldGoType(*tr.Elem, false, false)
	case air.RefMap:
		return "map[string]" + fieldGoType(*tr.MapValue, false, false)
	default:
		return "any"
	}
}

// scalarNeedsPointerWhenOptional reports whether an optional scalar field
// needs pointer indirection to distinguish "absent" from the zero value. A
// string's zero value ("") already round-trips through
// `omitempty`/`skip_serializing_if` correctly, so only the types whose zero
// value is a meaningful API value (e.g. a boolean false, a numeric zero)
// need pointers.
func scalarNeedsPointerWhenOptional(k dm.Kind) bool {
	switch k {
	case dm.KindString, dm.KindFormattedString, dm.KindDate, dm.KindAny, dm.KindBytes:
		return false
	default:
		return true
	}
}

// paramGoType returns the Go type for a method/global parameter. Repeated
// parameters are rendered as a slice.
func paramGoType(p *air.Param) string {
	t := fieldGoType(p.Type, false, !p.Required)
	if p.Repeated {
		return "[]" + t
	}
	return t
}

// exportedFieldName derives the idiomatic, exported Go struct field name
// from a Discovery property id. encoding/json only marshals exported
// fields, so this is independent of the AIR's snake_case Field.Name (kept
// there for ident-allocator bookkeeping).
func exportedFieldName(jsonName string) string {
	return strcase.ToCamel(jsonName)
}

// builderFieldName derives the unexported, lowerCamel Go field name used on
// a generated method's request-builder struct.
func builderFieldName(jsonName string) string {
	name := strcase.ToLowerCamel(jsonName)
	switch name {
	case "type", "func", "range", "map", "chan", "select", "interface":
		return name + "_"
	default:
		return name
	}
}

func jsonTag(jsonName string, optional bool) string {
	if optional {
		return fmt.Sprintf("`json:\"%s,omitempty\"`", jsonName)
	}
	return fmt.Sprintf("`json:\"%s\"`", jsonName)
}
