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

package air

// LabelRecursiveFields sets Field.Boxed on every field whose type
// transitively refers back to the enclosing object, per spec.md sections
// 3.2 and 9.
//
// This is a single guarded depth-first traversal per object field: it walks
// named-object references only (arrays and maps already provide pointer
// indirection implicitly, so a field of array or map type never needs
// boxing even if its element type is recursive), stopping as soon as it
// re-enters a type it has already visited on the current path so that a
// cycle not passing through the enclosing type does not force boxing.
func LabelRecursiveFields(api *API) error {
	for _, ot := range api.Schemas {
		if ot.Kind != EntityObject {
			continue
		}
		for _, f := range ot.Fields {
			if f.Type.RefKind != RefNamed {
				continue
			}
			f.Boxed = requiresIndirectionWithin(f.Type.Named, ot.Key, api, map[TypeKey]bool{})
		}
	}
	return nil
}

// requiresIndirectionWithin reports whether the object at nestedKey
// eventually, via one or more Object-typed fields, refers back to target.
func requiresIndirectionWithin(nestedKey, target TypeKey, api *API, seen map[TypeKey]bool) bool {
	if nestedKey == target {
		return true
	}
	if seen[nestedKey] {
		return false
	}
	seen[nestedKey] = true
	defer delete(seen, nestedKey)

	nested, ok := api.State.ByKey[nestedKey]
	if !ok || nested.Kind != EntityObject {
		return false
	}
	for _, f := range nested.Fields {
		if f.Type.RefKind != RefNamed {
			continue
		}
		if requiresIndirectionWithin(f.Type.Named, target, api, seen) {
			return true
		}
	}
	return false
}
