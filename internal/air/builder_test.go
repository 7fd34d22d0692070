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
	"errors"
	"testing"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
	"github.com/orrery-dev/discoverygen/internal/dm"
)

func emptyDoc() *dm.ApiDoc {
	return &dm.ApiDoc{
		Name:      "example",
		Version:   "v1",
		Schemas:   map[string]*dm.SchemaDesc{},
		Params:    map[string]*dm.ParamDesc{},
		Resources: map[string]*dm.ResourceDesc{},
		Methods:   map[string]*dm.MethodDesc{},
	}
}

func TestBuildEmptyAPI(t *testing.T) {
	api, err := Build(emptyDoc())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(api.Schemas) != 0 || len(api.Resources) != 0 || len(api.Methods) != 0 {
		t.Fatalf("expected an empty AIR, got %+v", api)
	}
}

func TestBuildScalarMethod(t *testing.T) {
	doc := emptyDoc()
	doc.Methods["ping"] = &dm.MethodDesc{
		ID:         "example.ping",
		Path:       "ping",
		HTTPMethod: "GET",
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(api.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(api.Methods))
	}
	if api.Methods[0].Ident != "Ping" {
		t.Fatalf("got ident %q, want Ping", api.Methods[0].Ident)
	}
}

func TestBuildPaginatedListIsIterable(t *testing.T) {
	doc := emptyDoc()
	doc.Schemas["ThingList"] = &dm.SchemaDesc{
		ID: "ThingList",
		Type: dm.TypeDesc{
			Kind: dm.KindObject,
			Properties: map[string]*dm.PropertyDesc{
				"nextPageToken": {Type: dm.RefOrType{Type: dm.TypeDesc{Kind: dm.KindString}}},
				"items":         {Type: dm.RefOrType{Type: dm.TypeDesc{Kind: dm.KindArray, Items: &dm.RefOrType{Type: dm.TypeDesc{Kind: dm.KindString}}}}},
			},
		},
	}
	doc.Methods["list"] = &dm.MethodDesc{
		ID:         "example.things.list",
		Path:       "things",
		HTTPMethod: "GET",
		Parameters: map[string]*dm.ParamDesc{
			"pageToken": {Location: dm.LocationQuery, Type: dm.TypeDesc{Kind: dm.KindString}},
		},
		Response: &dm.RefOrType{IsRef: true, Ref: "ThingList"},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := api.Methods[0]
	if m.Pagination != PageOptional {
		t.Fatalf("got pagination %v, want PageOptional", m.Pagination)
	}
	if m.PageTokenParam != "page_token" {
		t.Fatalf("got page token param %q, want page_token", m.PageTokenParam)
	}
	if len(m.ArrayResponseFields) != 1 || m.ArrayResponseFields[0].Name != "items" {
		t.Fatalf("got array response fields %+v, want [items]", m.ArrayResponseFields)
	}
}

func TestBuildRequiredPageTokenIsPageRequired(t *testing.T) {
	doc := emptyDoc()
	doc.Schemas["ThingList"] = &dm.SchemaDesc{
		ID: "ThingList",
		Type: dm.TypeDesc{
			Kind: dm.KindObject,
			Properties: map[string]*dm.PropertyDesc{
				"nextPageToken": {Type: dm.RefOrType{Type: dm.TypeDesc{Kind: dm.KindString}}},
			},
		},
	}
	doc.Methods["list"] = &dm.MethodDesc{
		ID:         "example.things.list",
		Path:       "things",
		HTTPMethod: "GET",
		Parameters: map[string]*dm.ParamDesc{
			"pageToken": {Location: dm.LocationQuery, Required: true, Type: dm.TypeDesc{Kind: dm.KindString}},
		},
		Response: &dm.RefOrType{IsRef: true, Ref: "ThingList"},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if api.Methods[0].Pagination != PageRequired {
		t.Fatalf("got pagination %v, want PageRequired", api.Methods[0].Pagination)
	}
}

func TestBuildCyclicSchemaBoxesField(t *testing.T) {
	doc := emptyDoc()
	doc.Schemas["Node"] = &dm.SchemaDesc{
		ID: "Node",
		Type: dm.TypeDesc{
			Kind: dm.KindObject,
			Properties: map[string]*dm.PropertyDesc{
				"parent": {Type: dm.RefOrType{IsRef: true, Ref: "Node"}},
				"name":   {Type: dm.RefOrType{Type: dm.TypeDesc{Kind: dm.KindString}}},
			},
		},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	node := api.State.SchemaByID["Node"]
	var parent *Field
	for _, f := range node.Fields {
		if f.JSONName == "parent" {
			parent = f
		}
	}
	if parent == nil {
		t.Fatal("expected a parent field")
	}
	if !parent.Boxed {
		t.Fatal("expected the self-referential parent field to be boxed")
	}
	// A self-reference is boxed into a pointer field (see Boxed above), and
	// a pointer is comparable regardless of what it points to: spec.md
	// section 3.2 only withholds Hashable for an Any/Float32/Float64 leaf,
	// not for a cycle, so Node stays hashable here.
	if !node.Hashable {
		t.Fatal("self-referential object boxes the cycle into a pointer and should still derive Hashable")
	}
}

func TestBuildArrayOfSelfDoesNotBox(t *testing.T) {
	doc := emptyDoc()
	doc.Schemas["Node"] = &dm.SchemaDesc{
		ID: "Node",
		Type: dm.TypeDesc{
			Kind: dm.KindObject,
			Properties: map[string]*dm.PropertyDesc{
				"children": {Type: dm.RefOrType{Type: dm.TypeDesc{Kind: dm.KindArray, Items: &dm.RefOrType{IsRef: true, Ref: "Node"}}}},
			},
		},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	node := api.State.SchemaByID["Node"]
	for _, f := range node.Fields {
		if f.JSONName == "children" && f.Boxed {
			t.Fatal("array-typed field should never need boxing: the slice already provides indirection")
		}
	}
}

func TestBuildMediaUploadMethodSupportsMedia(t *testing.T) {
	doc := emptyDoc()
	doc.Methods["insert"] = &dm.MethodDesc{
		ID:         "example.things.insert",
		Path:       "things",
		HTTPMethod: "POST",
		MediaUpload: &dm.MediaUpload{
			Accept:     []string{"*/*"},
			HasSimple:  true,
			SimplePath: "upload/things",
		},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if api.Methods[0].MediaUpload == nil || !api.Methods[0].MediaUpload.HasSimple {
		t.Fatal("expected the simple upload protocol to carry through to the AIR")
	}
	if !methodSupportsMedia(api.Methods[0]) {
		t.Fatal("a method with MediaUpload set should support media")
	}
}

func TestMediaSupportAddsAltEnumVariant(t *testing.T) {
	doc := emptyDoc()
	doc.Params["alt"] = &dm.ParamDesc{
		Location: dm.LocationQuery,
		Type: dm.TypeDesc{
			Kind: dm.KindEnumeration,
			Enumeration: []dm.EnumVariant{
				{Value: "json", Description: "Responses with Content-Type of application/json"},
			},
		},
	}
	doc.Methods["get"] = &dm.MethodDesc{
		ID:                    "example.things.get",
		Path:                  "things/{thingId}",
		HTTPMethod:            "GET",
		SupportsMediaDownload: true,
		Parameters: map[string]*dm.ParamDesc{
			"thingId": {Location: dm.LocationPath, Required: true, Type: dm.TypeDesc{Kind: dm.KindString}},
		},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var alt *Param
	for _, p := range api.GlobalParams {
		if p.JSONName == "alt" {
			alt = p
		}
	}
	if alt == nil {
		t.Fatal("expected an alt global param")
	}
	ot := api.State.ByKey[alt.Type.Named]
	var hasMedia bool
	for _, v := range ot.Variants {
		if v.WireValue == "media" {
			hasMedia = true
		}
	}
	if !hasMedia {
		t.Fatal("expected alt enum to gain a media variant")
	}
}

func TestBuildDanglingRefIsReferenceError(t *testing.T) {
	doc := emptyDoc()
	doc.Schemas["Thing"] = &dm.SchemaDesc{
		ID: "Thing",
		Type: dm.TypeDesc{
			Kind: dm.KindObject,
			Properties: map[string]*dm.PropertyDesc{
				"other": {Type: dm.RefOrType{IsRef: true, Ref: "Missing"}},
			},
		},
	}
	_, err := Build(doc)
	if !errors.Is(err, dgerrors.Reference) {
		t.Fatalf("got %v, want dgerrors.Reference", err)
	}
}

func TestBuildReservedPathOperatorMethod(t *testing.T) {
	doc := emptyDoc()
	doc.Methods["get"] = &dm.MethodDesc{
		ID:         "example.things.get",
		Path:       "things/{+name}",
		HTTPMethod: "GET",
		Parameters: map[string]*dm.ParamDesc{
			"name": {Location: dm.LocationPath, Required: true, Type: dm.TypeDesc{Kind: dm.KindString}},
		},
		ParameterOrder: []string{"name"},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := api.Methods[0]
	if m.Path != "things/{+name}" {
		t.Fatalf("got path %q, want the raw template preserved for internal/uritemplate", m.Path)
	}
	if len(m.RequiredParams) != 1 || m.RequiredParams[0].Name != "name" {
		t.Fatalf("got required params %+v, want [name]", m.RequiredParams)
	}
}

func TestEnumDeprecatedDedup(t *testing.T) {
	doc := emptyDoc()
	doc.Schemas["Status"] = &dm.SchemaDesc{
		ID: "Status",
		Type: dm.TypeDesc{
			Kind: dm.KindEnumeration,
			Enumeration: []dm.EnumVariant{
				{Value: "active", Description: "currently active"},
				{Value: "ACTIVE", Description: "deprecated: use active instead"},
			},
		},
	}
	api, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ot := api.State.SchemaByID["Status"]
	if len(ot.Variants) != 1 {
		t.Fatalf("got %d variants, want the deprecated collider dropped: %+v", len(ot.Variants), ot.Variants)
	}
}
