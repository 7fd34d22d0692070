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

import "github.com/orrery-dev/discoverygen/internal/dgerrors"

// Validate checks AIR-wide invariants that the builder depends on but
// cannot always enforce locally, mirroring the teacher's package-consistency
// pass: every named type reachable from a field, param, or method
// request/response must resolve to an entry registered in api.State.ByKey.
// A dangling reference at this point means an earlier pass produced a
// TypeRef without registering its target, which is a builder bug rather
// than a malformed Discovery document, so it is reported as ReferenceError
// to stay consistent with spec.md section 7's fatal-error taxonomy.
func Validate(api *API) error {
	for _, ot := range api.Schemas {
		if ot.Kind != EntityObject {
			continue
		}
		for _, f := range ot.Fields {
			if err := validateTypeRef(api, f.Type, ot.Key); err != nil {
				return err
			}
		}
	}
	for _, p := range api.GlobalParams {
		if err := validateTypeRef(api, p.Type, TypeKey{ParentPath: "params"}); err != nil {
			return err
		}
	}
	if err := validateResources(api, api.Resources); err != nil {
		return err
	}
	return validateMethods(api, api.Methods)
}

func validateResources(api *API, resources []*Resource) error {
	for _, r := range resources {
		if err := validateMethods(api, r.Methods); err != nil {
			return err
		}
		if err := validateResources(api, r.Resources); err != nil {
			return err
		}
	}
	return nil
}

func validateMethods(api *API, methods []*Method) error {
	for _, m := range methods {
		for _, p := range append(append([]*Param{}, m.RequiredParams...), m.OptionalParams...) {
			if err := validateTypeRef(api, p.Type, TypeKey{ParentPath: m.ParentPath}); err != nil {
				return err
			}
		}
		if m.Request != nil {
			if err := validateTypeRef(api, *m.Request, TypeKey{ParentPath: m.ParentPath}); err != nil {
				return err
			}
		}
		if m.Response != nil {
			if err := validateTypeRef(api, *m.Response, TypeKey{ParentPath: m.ParentPath}); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTypeRef(api *API, tr TypeRef, owner TypeKey) error {
	switch tr.RefKind {
	case RefNamed:
		if _, ok := api.State.ByKey[tr.Named]; !ok {
			return dgerrors.Wrapf(dgerrors.Reference, nil, "%s.%s: dangling reference to %s.%s", owner.ParentPath, owner.Ident, tr.Named.ParentPath, tr.Named.Ident)
		}
		return nil
	case RefArray:
		return validateTypeRef(api, *tr.Elem, owner)
	case RefMap:
		return validateTypeRef(api, *tr.MapValue, owner)
	default:
		return nil
	}
}
