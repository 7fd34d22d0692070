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

package dm

import (
	"encoding/json"
	"fmt"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

// Parse reads a Discovery document from contents and returns the normalized
// ApiDoc. It accepts either a successful document or an error payload
// served at the same URL, surfacing the latter as a dgerrors.IO error.
func Parse(contents []byte) (*ApiDoc, error) {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(contents, &probe); err != nil {
		return nil, dgerrors.Wrap(dgerrors.IO, "decoding discovery document", err)
	}
	if len(probe.Error) > 0 {
		var e wireErr
		if err := json.Unmarshal(contents, &e); err != nil {
			return nil, dgerrors.Wrap(dgerrors.IO, "decoding discovery error payload", err)
		}
		return nil, dgerrors.Wrapf(dgerrors.IO, nil, "discovery service returned an error: %s (%s)", e.Error.Message, e.Error.Status)
	}

	var w wireDoc
	if err := json.Unmarshal(contents, &w); err != nil {
		return nil, dgerrors.Wrap(dgerrors.IO, "decoding discovery document", err)
	}
	return normalize(&w)
}

func normalize(w *wireDoc) (*ApiDoc, error) {
	doc := &ApiDoc{
		Name:        w.Name,
		Version:     w.Version,
		RootURL:     w.RootURL,
		ServicePath: w.ServicePath,
		BatchPath:   w.BatchPath,
		Schemas:     map[string]*SchemaDesc{},
		Params:      map[string]*ParamDesc{},
		Resources:   map[string]*ResourceDesc{},
		Methods:     map[string]*MethodDesc{},
	}

	if w.Auth != nil && w.Auth.OAuth2.Scopes != nil {
		for pair := w.Auth.OAuth2.Scopes.Oldest(); pair != nil; pair = pair.Next() {
			doc.Scopes = append(doc.Scopes, OAuthScope{URL: pair.Key, Description: pair.Value.Description})
		}
	}

	if w.Schemas != nil {
		for pair := w.Schemas.Oldest(); pair != nil; pair = pair.Next() {
			s := pair.Value
			typ, err := normalizeType(&s.wireType, fmt.Sprintf("schemas.%s", pair.Key))
			if err != nil {
				return nil, err
			}
			id := s.ID
			if id == "" {
				id = pair.Key
			}
			canonical := s.CanonicalName
			if canonical == "" {
				canonical = id
			}
			doc.Schemas[id] = &SchemaDesc{ID: id, CanonicalName: canonical, Type: typ}
		}
	}

	if w.Parameters != nil {
		for pair := w.Parameters.Oldest(); pair != nil; pair = pair.Next() {
			p, err := normalizeParam(&pair.Value, fmt.Sprintf("parameters.%s", pair.Key))
			if err != nil {
				return nil, err
			}
			doc.Params[pair.Key] = p
		}
	}

	if w.Resources != nil {
		for pair := w.Resources.Oldest(); pair != nil; pair = pair.Next() {
			r, err := normalizeResource(&pair.Value, pair.Key)
			if err != nil {
				return nil, err
			}
			doc.Resources[pair.Key] = r
		}
	}

	if w.Methods != nil {
		for pair := w.Methods.Oldest(); pair != nil; pair = pair.Next() {
			m, err := normalizeMethod(&pair.Value, pair.Key)
			if err != nil {
				return nil, err
			}
			doc.Methods[pair.Key] = m
		}
	}

	return doc, nil
}

func normalizeResource(w *wireResource, path string) (*ResourceDesc, error) {
	r := &ResourceDesc{Methods: map[string]*MethodDesc{}, Resources: map[string]*ResourceDesc{}}
	if w.Methods != nil {
		for pair := w.Methods.Oldest(); pair != nil; pair = pair.Next() {
			m, err := normalizeMethod(&pair.Value, fmt.Sprintf("%s.%s", path, pair.Key))
			if err != nil {
				return nil, err
			}
			r.Methods[pair.Key] = m
		}
	}
	if w.Resources != nil {
		for pair := w.Resources.Oldest(); pair != nil; pair = pair.Next() {
			nested, err := normalizeResource(&pair.Value, fmt.Sprintf("%s.%s", path, pair.Key))
			if err != nil {
				return nil, err
			}
			r.Resources[pair.Key] = nested
		}
	}
	return r, nil
}

func normalizeMethod(w *wireMethod, path string) (*MethodDesc, error) {
	id := w.ID
	if id == "" {
		id = path
	}
	m := &MethodDesc{
		ID:                    id,
		Path:                  w.Path,
		HTTPMethod:            w.HTTPMethod,
		Description:           w.Description,
		ParameterOrder:        w.ParameterOrder,
		Parameters:            map[string]*ParamDesc{},
		Scopes:                w.Scopes,
		SupportsMediaDownload: w.SupportsMediaDownload,
	}
	if w.Parameters != nil {
		for pair := w.Parameters.Oldest(); pair != nil; pair = pair.Next() {
			p, err := normalizeParam(&pair.Value, fmt.Sprintf("%s.parameters.%s", path, pair.Key))
			if err != nil {
				return nil, err
			}
			m.Parameters[pair.Key] = p
		}
	}
	if len(w.Request) > 0 {
		req, err := normalizeRefOrTypeRaw(w.Request, path+".request")
		if err != nil {
			return nil, err
		}
		m.Request = req
	}
	if len(w.Response) > 0 {
		resp, err := normalizeRefOrTypeRaw(w.Response, path+".response")
		if err != nil {
			return nil, err
		}
		m.Response = resp
	}
	if w.MediaUpload != nil {
		mu := &MediaUpload{Accept: w.MediaUpload.Accept, MaxSize: w.MediaUpload.MaxSize}
		if w.MediaUpload.Protocols.Simple != nil {
			p := w.MediaUpload.Protocols.Simple
			if !p.Multipart {
				return nil, dgerrors.Wrapf(dgerrors.Upload, nil, "%s: simple upload protocol does not support multipart", path)
			}
			mu.HasSimple = true
			mu.SimplePath = stripLeadingSlash(p.Path)
		}
		if w.MediaUpload.Protocols.Resumable != nil {
			p := w.MediaUpload.Protocols.Resumable
			if !p.Multipart {
				return nil, dgerrors.Wrapf(dgerrors.Upload, nil, "%s: resumable upload protocol does not support multipart", path)
			}
			mu.HasResumable = true
			mu.ResumablePath = stripLeadingSlash(p.Path)
		}
		m.MediaUpload = mu
	}
	return m, nil
}

func stripLeadingSlash(s string) string {
	if len(s) > 0 && s[0] == '/' {
		return s[1:]
	}
	return s
}

func normalizeParam(w *wireParam, path string) (*ParamDesc, error) {
	typ, err := normalizeType(&w.wireType, path)
	if err != nil {
		return nil, err
	}
	loc := LocationQuery
	if w.Location == "path" {
		loc = LocationPath
	}
	return &ParamDesc{
		Description: w.Description,
		Default:     w.Default,
		Location:    loc,
		Required:    w.Required,
		Repeated:    w.Repeated,
		Type:        typ,
		Pattern:     w.Pattern,
		Minimum:     w.Minimum,
		Maximum:     w.Maximum,
	}, nil
}

// normalizeType encodes the (type, format, enum) union described in spec.md
// section 3.1. It returns a dgerrors.Discovery error on an unrecognized
// (type, format) pair, a missing items on an array, or an invalid enum
// table.
func normalizeType(w *wireType, path string) (TypeDesc, error) {
	switch w.Type {
	case "boolean":
		return TypeDesc{Kind: KindBool}, nil
	case "integer":
		switch w.Format {
		case "int32":
			return TypeDesc{Kind: KindInt32}, nil
		case "uint32":
			return TypeDesc{Kind: KindUint32}, nil
		}
		return TypeDesc{}, dgerrors.Wrapf(dgerrors.Discovery, nil, "%s: unrecognized integer format %q", path, w.Format)
	case "number":
		switch w.Format {
		case "float":
			return TypeDesc{Kind: KindFloat32}, nil
		case "double":
			return TypeDesc{Kind: KindFloat64}, nil
		}
		return TypeDesc{}, dgerrors.Wrapf(dgerrors.Discovery, nil, "%s: unrecognized number format %q", path, w.Format)
	case "string":
		switch w.Format {
		case "int64":
			return TypeDesc{Kind: KindInt64}, nil
		case "uint64":
			return TypeDesc{Kind: KindUint64}, nil
		case "byte":
			return TypeDesc{Kind: KindBytes}, nil
		case "date":
			return TypeDesc{Kind: KindDate}, nil
		case "date-time":
			return TypeDesc{Kind: KindDateTime}, nil
		case "":
			if len(w.Enum) == 0 {
				return TypeDesc{Kind: KindString}, nil
			}
			variants, err := dedupEnum(w.Enum, w.EnumDescriptions, path)
			if err != nil {
				return TypeDesc{}, err
			}
			return TypeDesc{Kind: KindEnumeration, Enumeration: variants}, nil
		default:
			return TypeDesc{Kind: KindFormattedString, Format: w.Format}, nil
		}
	case "array":
		if len(w.Items) == 0 {
			return TypeDesc{}, dgerrors.Wrapf(dgerrors.Discovery, nil, "%s: array schema is missing items", path)
		}
		items, err := normalizeRefOrTypeRaw(w.Items, path+".items")
		if err != nil {
			return TypeDesc{}, err
		}
		return TypeDesc{Kind: KindArray, Items: items}, nil
	case "object":
		props := map[string]*PropertyDesc{}
		if w.Properties != nil {
			for pair := w.Properties.Oldest(); pair != nil; pair = pair.Next() {
				p := pair.Value
				rt, err := refOrTypeFromWireProperty(&p, fmt.Sprintf("%s.properties.%s", path, pair.Key))
				if err != nil {
					return TypeDesc{}, err
				}
				props[pair.Key] = &PropertyDesc{Description: p.Description, Type: rt}
			}
		}
		var additional *PropertyDesc
		if w.AdditionalProperties != nil {
			rt, err := refOrTypeFromWireProperty(w.AdditionalProperties, path+".additionalProperties")
			if err != nil {
				return TypeDesc{}, err
			}
			additional = &PropertyDesc{Description: w.AdditionalProperties.Description, Type: rt}
		}
		return TypeDesc{Kind: KindObject, Properties: props, AdditionalProperties: additional}, nil
	case "any":
		return TypeDesc{Kind: KindAny}, nil
	default:
		return TypeDesc{}, dgerrors.Wrapf(dgerrors.Discovery, nil, "%s: unrecognized discovery type %q", path, w.Type)
	}
}

func refOrTypeFromWireProperty(p *wireProperty, path string) (RefOrType, error) {
	if p.Ref != "" {
		return RefOrType{IsRef: true, Ref: p.Ref}, nil
	}
	typ, err := normalizeType(&p.wireType, path)
	if err != nil {
		return RefOrType{}, err
	}
	return RefOrType{Type: typ}, nil
}

func normalizeRefOrTypeRaw(raw json.RawMessage, path string) (*RefOrType, error) {
	var w wireRefOrType
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, dgerrors.Wrap(dgerrors.IO, fmt.Sprintf("decoding %s", path), err)
	}
	if w.Ref != "" {
		return &RefOrType{IsRef: true, Ref: w.Ref}, nil
	}
	typ, err := normalizeType(&w.wireType, path)
	if err != nil {
		return nil, err
	}
	return &RefOrType{Type: typ}, nil
}

// dedupEnum pairs each enum value with its enumDescriptions entry. A
// descriptions list shorter than the values leaves the remaining variants
// with an empty Description; a list longer than the values is an invalid
// enum table and a dgerrors.Discovery error.
//
// No variant is dropped here: the rule for variants whose names collide
// after PascalCase mapping (dropping the "deprecated" ones) is applied by
// the AIR builder's buildEnumVariants, once variant names are computed.
func dedupEnum(values, descriptions []string, path string) ([]EnumVariant, error) {
	if len(descriptions) > len(values) {
		return nil, dgerrors.Wrapf(dgerrors.Discovery, nil, "%s: enum/enumDescriptions length mismatch", path)
	}
	variants := make([]EnumVariant, len(values))
	for i, v := range values {
		desc := ""
		if i < len(descriptions) {
			desc = descriptions[i]
		}
		variants[i] = EnumVariant{Value: v, Description: desc}
	}
	return variants, nil
}
