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

// Package uritemplate parses a method's raw path template into a node list,
// restricted to the subset of RFC 6570 that Discovery documents actually
// use: the deliberately restricted subset described in spec.md section 4.4 —
// only Simple (`{x}`) and Reserved (`{+x}`) expansions, each carrying exactly
// one variable.
package uritemplate

import "strings"

// NodeKind distinguishes a literal path segment from a variable expansion.
type NodeKind int

const (
	Literal NodeKind = iota
	Variable
)

// Node is one element of a parsed path template.
type Node struct {
	Kind NodeKind
	// Text holds the literal text when Kind == Literal.
	Text string
	// Name holds the variable name when Kind == Variable.
	Name string
	// Reserved is true for a `{+x}` expansion, false for a `{x}` expansion
	// (including any other operator, which is lowered to Simple per
	// spec.md section 4.4).
	Reserved bool
}

// String renders a single node back to its original template syntax: a
// literal renders verbatim, a variable renders as `{name}` or `{+name}`.
func (n Node) String() string {
	if n.Kind == Literal {
		return n.Text
	}
	if n.Reserved {
		return "{+" + n.Name + "}"
	}
	return "{" + n.Name + "}"
}

// Render reassembles a node list into its template string. Used by the
// round-trip test described in spec.md section 8: parsing a template and
// rendering its nodes must reproduce the original string.
func Render(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.String())
	}
	return b.String()
}

// Variables returns every Variable node in nodes, in template order.
func Variables(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Kind == Variable {
			out = append(out, n)
		}
	}
	return out
}
