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

// ParamRef names one (method, param) pair that uses a given enum type,
// backfilled by CrossReference so the package-documentation tree can render
// "used by" lists on each enum without re-walking the whole API per enum.
type ParamRef struct {
	MethodID  string
	ParamName string
}

// CrossReference is a post-build pass, grounded on the teacher's xref.go
// technique of backfilling parent pointers once the full graph exists
// rather than threading them through construction. Discovery has no oneOf,
// but enumeration parameters need the same treatment: the emitter's enum
// doc comments and package documentation tree list, for every enum type,
// the methods and global parameters typed with it. Only params whose type
// is a named type are linked; a repeated param typed as an array of enums
// is not recorded.
//
// The result is stored on State.EnumUsers, keyed by the enum's TypeKey.
func CrossReference(api *API) {
	api.State.EnumUsers = map[TypeKey][]ParamRef{}

	link := func(methodID string, params []*Param) {
		for _, p := range params {
			key, ok := enumKey(p.Type)
			if !ok {
				continue
			}
			api.State.EnumUsers[key] = append(api.State.EnumUsers[key], ParamRef{MethodID: methodID, ParamName: p.Name})
		}
	}
	for _, p := range api.GlobalParams {
		if key, ok := enumKey(p.Type); ok {
			api.State.EnumUsers[key] = append(api.State.EnumUsers[key], ParamRef{MethodID: "", ParamName: p.Name})
		}
	}
	walkMethods(api, link)
}

func walkMethods(api *API, link func(methodID string, params []*Param)) {
	var visitResource func(r *Resource)
	visitResource = func(r *Resource) {
		for _, m := range r.Methods {
			link(m.ID, append(append([]*Param{}, m.RequiredParams...), m.OptionalParams...))
		}
		for _, child := range r.Resources {
			visitResource(child)
		}
	}
	for _, r := range api.Resources {
		visitResource(r)
	}
	for _, m := range api.Methods {
		link(m.ID, append(append([]*Param{}, m.RequiredParams...), m.OptionalParams...))
	}
}

func enumKey(tr TypeRef) (TypeKey, bool) {
	if tr.RefKind != RefNamed {
		return TypeKey{}, false
	}
	return tr.Named, true
}
