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
	"errors"
	"testing"

	"github.com/orrery-dev/discoverygen/internal/dgerrors"
)

func TestParseErrorPayload(t *testing.T) {
	const payload = `{"error": {"code": 404, "message": "not found", "status": "NOT_FOUND"}}`
	_, err := Parse([]byte(payload))
	if !errors.Is(err, dgerrors.IO) {
		t.Fatalf("got %v, want dgerrors.IO", err)
	}
}

func TestParseMinimalDocument(t *testing.T) {
	const payload = `{
		"name": "example",
		"version": "v1",
		"rootUrl": "https://example.googleapis.com/",
		"servicePath": "example/v1/",
		"schemas": {
			"Thing": {
				"id": "Thing",
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"count": {"type": "integer", "format": "int32"}
				}
			}
		},
		"resources": {
			"things": {
				"methods": {
					"get": {
						"id": "example.things.get",
						"path": "things/{thingId}",
						"httpMethod": "GET",
						"parameterOrder": ["thingId"],
						"parameters": {
							"thingId": {"type": "string", "location": "path", "required": true}
						},
						"response": {"$ref": "Thing"}
					}
				}
			}
		}
	}`
	doc, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Name != "example" || doc.Version != "v1" {
		t.Fatalf("got name/version %q/%q", doc.Name, doc.Version)
	}
	thing, ok := doc.Schemas["Thing"]
	if !ok {
		t.Fatal("expected a Thing schema")
	}
	if thing.Type.Kind != KindObject {
		t.Fatalf("got kind %v, want object", thing.Type.Kind)
	}
	if thing.Type.Properties["count"].Type.Type.Kind != KindInt32 {
		t.Fatalf("got count kind %v, want int32", thing.Type.Properties["count"].Type.Type.Kind)
	}
	get, ok := doc.Resources["things"].Methods["get"]
	if !ok {
		t.Fatal("expected a things.get method")
	}
	if !get.Response.IsRef || get.Response.Ref != "Thing" {
		t.Fatalf("got response %+v, want a ref to Thing", get.Response)
	}
}

func TestNormalizeTypeUnknownIntegerFormatIsDiscoveryError(t *testing.T) {
	_, err := normalizeType(&wireType{Type: "integer", Format: "weird"}, "test")
	if !errors.Is(err, dgerrors.Discovery) {
		t.Fatalf("got %v, want dgerrors.Discovery", err)
	}
}

func TestNormalizeTypeArrayMissingItemsIsDiscoveryError(t *testing.T) {
	_, err := normalizeType(&wireType{Type: "array"}, "test")
	if !errors.Is(err, dgerrors.Discovery) {
		t.Fatalf("got %v, want dgerrors.Discovery", err)
	}
}

func TestNormalizeTypeFormattedString(t *testing.T) {
	typ, err := normalizeType(&wireType{Type: "string", Format: "google-duration"}, "test")
	if err != nil {
		t.Fatalf("normalizeType: %v", err)
	}
	if typ.Kind != KindFormattedString || typ.Format != "google-duration" {
		t.Fatalf("got %+v", typ)
	}
}

func TestNormalizeMethodMultipartOnlySimpleUpload(t *testing.T) {
	w := &wireMethod{
		ID:         "example.things.insert",
		HTTPMethod: "POST",
	}
	w.MediaUpload = &wireMediaUpload{Accept: []string{"*/*"}}
	w.MediaUpload.Protocols.Simple = &wireUploadProtocol{Multipart: false, Path: "/upload/things"}
	_, err := normalizeMethod(w, "things.insert")
	if !errors.Is(err, dgerrors.Upload) {
		t.Fatalf("got %v, want dgerrors.Upload", err)
	}
}

func TestNormalizeMethodStripsLeadingSlashFromUploadPath(t *testing.T) {
	w := &wireMethod{ID: "example.things.insert", HTTPMethod: "POST"}
	w.MediaUpload = &wireMediaUpload{Accept: []string{"*/*"}}
	w.MediaUpload.Protocols.Simple = &wireUploadProtocol{Multipart: true, Path: "/upload/things"}
	m, err := normalizeMethod(w, "things.insert")
	if err != nil {
		t.Fatalf("normalizeMethod: %v", err)
	}
	if m.MediaUpload.SimplePath != "upload/things" {
		t.Fatalf("got %q, want leading slash stripped", m.MediaUpload.SimplePath)
	}
}

func TestDedupEnumMoreDescriptionsThanValuesIsDiscoveryError(t *testing.T) {
	_, err := dedupEnum([]string{"only one"}, []string{"a", "b"}, "test")
	if !errors.Is(err, dgerrors.Discovery) {
		t.Fatalf("got %v, want dgerrors.Discovery", err)
	}
}
