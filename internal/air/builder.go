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

import (
	"sort"
	"strings"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
	"github.com/orrery-dev/discoverygen/internal/dm"
	"github.com/orrery-dev/discoverygen/internal/ident"
)

// Build walks doc in the order prescribed by spec.md section 4.3 (reserve
// all schema idents; build schema types; build global params; build
// resources and free-standing methods) and returns the resulting AIR.
//
// NamingConflict and ReferenceError are treated as fatal: Build returns on
// the first one, with no partial API (spec.md section 7).
func Build(doc *dm.ApiDoc) (*API, error) {
	b := &builder{
		doc:   doc,
		alloc: ident.New(),
		api: &API{
			Name:        doc.Name,
			Version:     doc.Version,
			RootURL:     doc.RootURL,
			ServicePath: doc.ServicePath,
			BatchPath:   doc.BatchPath,
			State: &State{
				SchemaByID: map[string]*ObjectOrEnum{},
				ByKey:      map[TypeKey]*ObjectOrEnum{},
			},
		},
	}
	for _, s := range doc.Scopes {
		b.api.Scopes = append(b.api.Scopes, newScope(s.URL, s.Description))
	}

	schemaIDs := sortedKeys(doc.Schemas)
	for _, id := range schemaIDs {
		b.alloc.Reserve(id, "schemas")
	}
	for _, id := range schemaIDs {
		ot, err := b.claimSchema(id, doc.Schemas[id].Type, doc.Schemas[id].CanonicalName)
		if err != nil {
			return nil, err
		}
		b.api.State.SchemaByID[id] = ot
	}

	if err := b.buildGlobalParams(); err != nil {
		return nil, err
	}

	resourceIDs := sortedKeys(doc.Resources)
	for _, id := range resourceIDs {
		r, err := b.buildResource(id, "resources."+ident.ToSnake(id), doc.Resources[id])
		if err != nil {
			return nil, err
		}
		b.api.Resources = append(b.api.Resources, r)
	}

	methodIDs := sortedKeys(doc.Methods)
	for _, id := range methodIDs {
		m, err := b.buildMethod(id, "", doc.Methods[id])
		if err != nil {
			return nil, err
		}
		b.api.Methods = append(b.api.Methods, m)
	}

	b.splitParamTypes()

	if err := LabelRecursiveFields(b.api); err != nil {
		return nil, err
	}
	DeriveTraits(b.api)
	if err := addMediaAltVariant(b.api); err != nil {
		return nil, err
	}
	CrossReference(b.api)
	if err := Validate(b.api); err != nil {
		return nil, err
	}
	return b.api, nil
}

// splitParamTypes moves every AIR type registered directly under the
// top-level "params" module (spec.md section 4.5, "params" module of
// nested enums used by global parameters) out of Schemas and into
// ParamTypes.
func (b *builder) splitParamTypes() {
	var schemas, params []*ObjectOrEnum
	for _, ot := range b.api.Schemas {
		if ot.Key.ParentPath == "params" {
			params = append(params, ot)
		} else {
			schemas = append(schemas, ot)
		}
	}
	b.api.Schemas = schemas
	b.api.ParamTypes = params
}

// buildGlobalParams lowers doc.Params into AIR Params in the "params"
// module, per spec.md section 4.3.
func (b *builder) buildGlobalParams() error {
	names := sortedKeys(b.doc.Params)
	for _, name := range names {
		pd := b.doc.Params[name]
		tr, err := b.resolveType(pd.Type, name, "params")
		if err != nil {
			return err
		}
		b.api.GlobalParams = append(b.api.GlobalParams, &Param{
			Name:     ident.ToSnake(name),
			JSONName: name,
			Doc:      pd.Description,
			Location: pd.Location,
			Required: pd.Required,
			Repeated: pd.Repeated,
			Type:     tr,
		})
	}
	return nil
}

type builder struct {
	doc   *dm.ApiDoc
	alloc *ident.Allocator
	api   *API
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// claimSchema builds the AIR type for a top-level schema, claiming its
// pre-reserved ident.
func (b *builder) claimSchema(id string, typ dm.TypeDesc, canonicalName string) (*ObjectOrEnum, error) {
	pascal, err := b.alloc.ClaimReserved(id, "schemas")
	if err != nil {
		return nil, err
	}
	key := TypeKey{ParentPath: "schemas", Ident: pascal}
	return b.buildNamedType(key, typ, canonicalName, false)
}

// buildNamedType builds the ObjectOrEnum for a key whose ident has already
// been allocated (either claimed or freshly assigned by the caller).
func (b *builder) buildNamedType(key TypeKey, typ dm.TypeDesc, doc string, methodLocal bool) (*ObjectOrEnum, error) {
	switch typ.Kind {
	case dm.KindEnumeration:
		ot := &ObjectOrEnum{Key: key, Kind: EntityEnum, Doc: doc, IsMethodLocal: methodLocal}
		variants, err := b.buildEnumVariants(typ.Enumeration)
		if err != nil {
			return nil, err
		}
		ot.Variants = variants
		b.register(ot)
		return ot, nil
	case dm.KindObject:
		ot := &ObjectOrEnum{Key: key, Kind: EntityObject, Doc: doc, IsMethodLocal: methodLocal}
		b.register(ot) // register before recursing on fields, in case of self-reference
		fields, err := b.buildObjectFields(key, typ)
		if err != nil {
			return nil, err
		}
		ot.Fields = fields
		return ot, nil
	default:
		return nil, dgerrors.Wrapf(dgerrors.Discovery, nil, "%s.%s: expected an object or enumeration schema, got %s", key.ParentPath, key.Ident, typ.Kind)
	}
}

func (b *builder) register(ot *ObjectOrEnum) {
	b.api.Schemas = append(b.api.Schemas, ot)
	b.api.State.ByKey[ot.Key] = ot
}

// buildEnumVariants applies the PascalCase collision/deprecation rule of
// spec.md section 4.1: when two or more variants collide after PascalCase
// mapping, every variant whose description mentions "deprecated" is dropped
// unconditionally, regardless of how many non-deprecated survivors remain.
func (b *builder) buildEnumVariants(raw []dm.EnumVariant) ([]*EnumValue, error) {
	byName := map[string][]*EnumValue{}
	var order []string
	for _, v := range raw {
		name := ident.ToPascal(v.Value)
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = append(byName[name], &EnumValue{Name: name, WireValue: v.Value, Doc: v.Description})
	}
	var out []*EnumValue
	for _, name := range order {
		group := byName[name]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		var nonDeprecated []*EnumValue
		for _, v := range group {
			if !strings.Contains(strings.ToLower(v.Doc), "deprecated") {
				nonDeprecated = append(nonDeprecated, v)
			}
		}
		switch len(nonDeprecated) {
		case 1:
			out = append(out, nonDeprecated[0])
		default:
			out = append(out, nonDeprecated...)
		}
	}
	return out, nil
}

func (b *builder) buildObjectFields(parentKey TypeKey, typ dm.TypeDesc) ([]*Field, error) {
	names := sortedKeys(typ.Properties)
	fields := make([]*Field, 0, len(names))
	for _, name := range names {
		prop := typ.Properties[name]
		parentPath := parentKey.ParentPath + "." + parentKey.Ident
		tr, err := b.resolveRefOrType(prop.Type, name, parentPath)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &Field{
			Name:     ident.ToSnake(name),
			JSONName: name,
			Doc:      prop.Description,
			Type:     tr,
			Optional: true,
		})
	}
	return fields, nil
}

// resolveRefOrType turns a dm.RefOrType into an AIR TypeRef, creating a
// fresh nested type under parentPath when the value is inline (not a
// top-level $ref), per spec.md section 3.2.
func (b *builder) resolveRefOrType(rt dm.RefOrType, desiredName, parentPath string) (TypeRef, error) {
	if rt.IsRef {
		if target, ok := b.api.State.SchemaByID[rt.Ref]; ok {
			return TypeRef{RefKind: RefNamed, Named: target.Key}, nil
		}
		if _, ok := b.doc.Schemas[rt.Ref]; ok {
			// A self or forward reference: the target's ident was reserved
			// up front, but its type is not built yet.
			return TypeRef{RefKind: RefNamed, Named: TypeKey{ParentPath: "schemas", Ident: ident.ToPascal(rt.Ref)}}, nil
		}
		return TypeRef{}, dgerrors.Wrapf(dgerrors.Reference, nil, "$ref %q does not resolve to a known schema", rt.Ref)
	}
	return b.resolveType(rt.Type, desiredName, parentPath)
}

func (b *builder) resolveType(typ dm.TypeDesc, desiredName, parentPath string) (TypeRef, error) {
	switch typ.Kind {
	case dm.KindArray:
		elem, err := b.resolveRefOrType(*typ.Items, desiredName, parentPath)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{RefKind: RefArray, Elem: &elem}, nil
	case dm.KindObject:
		if len(typ.Properties) == 0 && typ.AdditionalProperties != nil {
			val, err := b.resolveRefOrType(typ.AdditionalProperties.Type, desiredName, parentPath)
			if err != nil {
				return TypeRef{}, err
			}
			return TypeRef{RefKind: RefMap, MapValue: &val}, nil
		}
		pascal := b.alloc.Assign(desiredName, parentPath)
		key := TypeKey{ParentPath: parentPath, Ident: pascal}
		ot, err := b.buildNamedType(key, typ, "", false)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{RefKind: RefNamed, Named: ot.Key}, nil
	case dm.KindEnumeration:
		pascal := b.alloc.Assign(desiredName, parentPath)
		key := TypeKey{ParentPath: parentPath, Ident: pascal}
		ot, err := b.buildNamedType(key, typ, "", false)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{RefKind: RefNamed, Named: ot.Key}, nil
	default:
		return TypeRef{RefKind: RefScalar, Scalar: typ.Kind, Format: typ.Format}, nil
	}
}

func newScope(url, description string) *Scope {
	trimmed := strings.TrimPrefix(url, "https://www.googleapis.com/auth/")
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimRight(trimmed, "/")
	replaced := strings.NewReplacer(".", "_", "/", "_", "-", "_").Replace(trimmed)
	return &Scope{Ident: strings.ToUpper(replaced), URL: url, Description: description}
}

func (b *builder) buildResource(id, parentPath string, rd *dm.ResourceDesc) (*Resource, error) {
	r := &Resource{Ident: ident.ToPascal(id), ParentPath: parentPath}

	methodIDs := sortedKeys(rd.Methods)
	for _, mid := range methodIDs {
		m, err := b.buildMethod(mid, parentPath, rd.Methods[mid])
		if err != nil {
			return nil, err
		}
		r.Methods = append(r.Methods, m)
	}

	childIDs := sortedKeys(rd.Resources)
	for _, cid := range childIDs {
		child, err := b.buildResource(cid, parentPath+"."+ident.ToSnake(cid), rd.Resources[cid])
		if err != nil {
			return nil, err
		}
		r.Resources = append(r.Resources, child)
	}
	return r, nil
}

func (b *builder) buildMethod(id, parentPath string, md *dm.MethodDesc) (*Method, error) {
	schemaParent := parentPath + ".schemas"
	paramsParent := parentPath + ".params"

	m := &Method{
		ID:         md.ID,
		Ident:      ident.ToPascal(lastSegment(id)),
		ParentPath: parentPath,
		Path:       md.Path,
		HTTPMethod: md.HTTPMethod,
		Doc:        md.Description,
		Scopes:     md.Scopes,
	}

	if md.Request != nil {
		tr, err := b.resolveRefOrType(*md.Request, id+"_request", schemaParent)
		if err != nil {
			return nil, err
		}
		m.Request = &tr
	}
	var responseObject *ObjectOrEnum
	if md.Response != nil {
		tr, err := b.resolveRefOrType(*md.Response, id+"_response", schemaParent)
		if err != nil {
			return nil, err
		}
		m.Response = &tr
		responseObject = b.namedObject(tr)
		if responseObject != nil {
			for _, f := range responseObject.Fields {
				if f.Type.RefKind == RefArray {
					m.ArrayResponseFields = append(m.ArrayResponseFields, f)
				}
			}
		}
	}

	paramNames := sortedKeys(md.Parameters)
	orderIndex := map[string]int{}
	for i, p := range md.ParameterOrder {
		orderIndex[ident.ToSnake(p)] = i
	}
	var params []*Param
	for _, name := range paramNames {
		pd := md.Parameters[name]
		tr, err := b.resolveType(pd.Type, name, paramsParent)
		if err != nil {
			return nil, err
		}
		params = append(params, &Param{
			Name:     ident.ToSnake(name),
			JSONName: name,
			Doc:      pd.Description,
			Location: pd.Location,
			Required: pd.Required,
			Repeated: pd.Repeated,
			Type:     tr,
		})
	}
	sort.SliceStable(params, func(i, j int) bool {
		pi, oki := orderIndex[params[i].Name]
		pj, okj := orderIndex[params[j].Name]
		switch {
		case oki && okj:
			return pi < pj
		case oki:
			return true
		case okj:
			return false
		default:
			return params[i].Name < params[j].Name
		}
	})
	for _, p := range params {
		if p.Required {
			m.RequiredParams = append(m.RequiredParams, p)
		} else {
			m.OptionalParams = append(m.OptionalParams, p)
		}
	}

	m.Pagination, m.PageTokenParam = pageIterability(m, responseObject)

	m.SupportsMediaDownload = md.SupportsMediaDownload
	if md.MediaUpload != nil {
		m.MediaUpload = &MediaUpload{
			Accept:        md.MediaUpload.Accept,
			MaxSize:       md.MediaUpload.MaxSize,
			HasSimple:     md.MediaUpload.HasSimple,
			SimplePath:    md.MediaUpload.SimplePath,
			HasResumable:  md.MediaUpload.HasResumable,
			ResumablePath: md.MediaUpload.ResumablePath,
		}
	}
	return m, nil
}

func lastSegment(id string) string {
	if idx := strings.LastIndexByte(id, '.'); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// namedObject resolves a TypeRef to its ObjectOrEnum, or nil if it does not
// refer to one (e.g. a scalar, array, or map response).
func (b *builder) namedObject(tr TypeRef) *ObjectOrEnum {
	if tr.RefKind != RefNamed {
		return nil
	}
	ot, ok := b.api.State.ByKey[tr.Named]
	if !ok || ot.Kind != EntityObject {
		return nil
	}
	return ot
}

// pageIterability implements the is_iterable() predicate of spec.md section
// 4.3: the response's top-level object has a String property named
// nextPageToken, and the method has a String param named pageToken. The
// result is Required or Optional depending on whether that param is
// required.
func pageIterability(m *Method, response *ObjectOrEnum) (PageIterability, string) {
	if response == nil {
		return PageNone, ""
	}
	hasNextPageToken := false
	for _, f := range response.Fields {
		if f.JSONName == "nextPageToken" && f.Type.RefKind == RefScalar && f.Type.Scalar == dm.KindString {
			hasNextPageToken = true
			break
		}
	}
	if !hasNextPageToken {
		return PageNone, ""
	}
	all := append(append([]*Param{}, m.RequiredParams...), m.OptionalParams...)
	for _, p := range all {
		if p.JSONName != "pageToken" || p.Type.RefKind != RefScalar || p.Type.Scalar != dm.KindString {
			continue
		}
		if p.Required {
			return PageRequired, p.Name
		}
		return PageOptional, p.Name
	}
	return PageNone, ""
}
