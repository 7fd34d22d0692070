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

// Package ident implements the naming rules of spec.md section 3.3 and the
// two-phase reserve/claim allocator of section 4.2.
package ident

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// goKeywords is the fixed keyword-escape table from spec.md section 3.3.
//
// https://go.dev/ref/spec#Keywords
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true,
	"select": true, "case": true, "defer": true, "go": true, "map": true,
	"struct": true, "chan": true, "else": true, "goto": true, "package": true,
	"switch": true, "const": true, "fallthrough": true, "if": true,
	"range": true, "type": true, "continue": true, "for": true,
	"import": true, "return": true, "var": true,
}

// sanitize replaces non-alphanumeric characters with '_' and prefixes a
// leading digit with '_', per spec.md section 3.3.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// ToPascal converts a raw Discovery identifier (a JSON property id, schema
// id, resource or method name) to a PascalCase Go type name.
func ToPascal(s string) string {
	return escapeKeyword(strcase.ToCamel(sanitize(s)))
}

// ToSnake converts a raw Discovery identifier to a snake_case Go field or
// module segment name, honoring the `self` -> `_self` rule from spec.md
// section 3.3.
func ToSnake(s string) string {
	snake := strcase.ToSnake(sanitize(s))
	if snake == "self" {
		return "_self"
	}
	return escapeKeyword(snake)
}

func escapeKeyword(s string) string {
	if goKeywords[s] {
		return s + "_"
	}
	return s
}
