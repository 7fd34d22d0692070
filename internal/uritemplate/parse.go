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

package uritemplate

import (
	"log/slog"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

// Parse lexes template into a Node list. Any operator other than `+` is
// tolerated but lowered to Simple, logging a diagnostic through logger
// (spec.md section 4.4); logger may be nil, in which case the diagnostic is
// discarded. A variable-specification list of size other than one within a
// single expression is a fatal dgerrors.Template error, as is an unparseable
// template.
func Parse(template string, logger *slog.Logger) ([]Node, error) {
	l := lex(template)
	var nodes []Node
	for {
		it := l.nextItem()
		switch it.typ {
		case itemLiteral:
			nodes = append(nodes, Node{Kind: Literal, Text: it.val})
		case itemVarSimple:
			nodes = append(nodes, Node{Kind: Variable, Name: it.val, Reserved: false})
		case itemVarReserved:
			nodes = append(nodes, Node{Kind: Variable, Name: it.val, Reserved: true})
		case itemError:
			return nil, dgerrors.Wrapf(dgerrors.Template, nil, "%q: %s", template, it.val)
		case itemEOF:
			if len(l.loweredOperators) > 0 && logger != nil {
				logger.Warn("uri template uses an unsupported operator, lowering to Simple",
					"template", template, "operators", joinOperators(l.loweredOperators))
			}
			return nodes, nil
		}
	}
}

// ValidateRequired checks that every variable referenced by nodes is backed
// by a required parameter, per spec.md section 4.4: "Any referenced variable
// must be required; referencing an optional variable is a fatal generation
// error."
func ValidateRequired(nodes []Node, required map[string]bool) error {
	for _, n := range Variables(nodes) {
		if !required[n.Name] {
			return dgerrors.Wrapf(dgerrors.Template, nil, "path variable %q is not backed by a required parameter", n.Name)
		}
	}
	return nil
}
