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

import "github.com/orrery-dev/discoverygen/internal/dm"

// DeriveTraits computes Hashable and Ordered for every object in the AIR,
// per spec.md section 3.2: any occurrence of Any, Float32, or Float64
// disables total equality/ordering/hash; every other leaf permits them.
//
// The traversal follows every nested type transitively (object fields,
// array elements, map values), matching the teacher's fold_nested_follow_refs
// shape, and is memoized per object since the same nested type is commonly
// reachable from many paths.
func DeriveTraits(api *API) {
	memo := map[TypeKey]bool{}
	var visit func(key TypeKey, visiting map[TypeKey]bool) bool
	visit = func(key TypeKey, visiting map[TypeKey]bool) bool {
		if v, ok := memo[key]; ok {
			return v
		}
		if visiting[key] {
			// A cycle is only reachable through a field that is itself
			// boxed or collection-indirected; treat it as comparable and
			// let the non-cyclic leaves of the type decide.
			return true
		}
		ot, ok := api.State.ByKey[key]
		if !ok {
			return true
		}
		visiting[key] = true
		defer delete(visiting, key)

		ok2 := true
		switch ot.Kind {
		case EntityEnum:
			ok2 = true
		case EntityObject:
			for _, f := range ot.Fields {
				if !typeRefIsComparable(f.Type, visit, visiting) {
					ok2 = false
					break
				}
			}
		}
		memo[key] = ok2
		return ok2
	}

	for _, ot := range api.Schemas {
		if ot.Kind != EntityObject {
			continue
		}
		hashable := true
		for _, f := range ot.Fields {
			if !typeRefIsComparable(f.Type, visit, map[TypeKey]bool{}) {
				hashable = false
				break
			}
		}
		ot.Hashable = hashable
		ot.Ordered = hashable
	}
}

func typeRefIsComparable(tr TypeRef, visit func(TypeKey, map[TypeKey]bool) bool, visiting map[TypeKey]bool) bool {
	switch tr.RefKind {
	case RefScalar:
		switch tr.Scalar {
		case dm.KindAny, dm.KindFloat32, dm.KindFloat64:
			return false
		default:
			return true
		}
	case RefNamed:
		return visit(tr.Named, visiting)
	case RefArray:
		return typeRefIsComparable(*tr.Elem, visit, visiting)
	case RefMap:
		return typeRefIsComparable(*tr.MapValue, visit, visiting)
	default:
		return true
	}
}
