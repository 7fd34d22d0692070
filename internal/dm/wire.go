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

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// wireDoc mirrors the raw Discovery JSON shape. The service serves either a
// successful document or an error payload at the same URL (spec.md section
// 4.1); wireErr detects the latter.
type wireDoc struct {
	Kind        string                             `json:"kind"`
	ID          string                             `json:"id"`
	Name        string                             `json:"name"`
	Version     string                             `json:"version"`
	Title       string                             `json:"title"`
	Description string                             `json:"description"`
	RootURL     string                             `json:"rootUrl"`
	ServicePath string                             `json:"servicePath"`
	BatchPath   string                             `json:"batchPath"`
	Parameters  *orderedmap.OrderedMap[string, wireParam] `json:"parameters"`
	Auth        *wireAuth                          `json:"auth"`
	Schemas     *orderedmap.OrderedMap[string, wireSchema] `json:"schemas"`
	Resources   *orderedmap.OrderedMap[string, wireResource] `json:"resources"`
	Methods     *orderedmap.OrderedMap[string, wireMethod] `json:"methods"`
}

type wireErr struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type wireAuth struct {
	OAuth2 struct {
		Scopes *orderedmap.OrderedMap[string, wireScope] `json:"scopes"`
	} `json:"oauth2"`
}

type wireScope struct {
	Description string `json:"description"`
}

type wireSchema struct {
	ID            string `json:"id"`
	CanonicalName string `json:"canonicalName"`
	wireType      `json:",inline"`
}

// wireType is the raw (type, format, enum, properties, items,
// additionalProperties) tuple shared by schemas, properties, and array
// items.
type wireType struct {
	Type                 string                              `json:"type"`
	Format               string                               `json:"format"`
	Enum                 []string                             `json:"enum"`
	EnumDescriptions     []string                             `json:"enumDescriptions"`
	Properties           *orderedmap.OrderedMap[string, wireProperty] `json:"properties"`
	AdditionalProperties *wireProperty                        `json:"additionalProperties"`
	Items                json.RawMessage                      `json:"items"`
	Ref                  string                                `json:"$ref"`
}

type wireProperty struct {
	Description string          `json:"description"`
	Ref         string          `json:"$ref"`
	wireType    `json:",inline"`
}

type wireParam struct {
	Description string   `json:"description"`
	Default     string   `json:"default"`
	Location    string   `json:"location"`
	Required    bool     `json:"required"`
	Repeated    bool     `json:"repeated"`
	Pattern     string   `json:"pattern"`
	Minimum     string   `json:"minimum"`
	Maximum     string   `json:"maximum"`
	wireType    `json:",inline"`
}

type wireResource struct {
	Methods   *orderedmap.OrderedMap[string, wireMethod]   `json:"methods"`
	Resources *orderedmap.OrderedMap[string, wireResource] `json:"resources"`
}

type wireMethod struct {
	ID             string                              `json:"id"`
	Path           string                              `json:"path"`
	HTTPMethod     string                              `json:"httpMethod"`
	Description    string                              `json:"description"`
	ParameterOrder []string                            `json:"parameterOrder"`
	Parameters     *orderedmap.OrderedMap[string, wireParam] `json:"parameters"`
	Request        json.RawMessage                     `json:"request"`
	Response       json.RawMessage                     `json:"response"`
	Scopes         []string                            `json:"scopes"`

	SupportsMediaDownload bool               `json:"supportsMediaDownload"`
	MediaUpload           *wireMediaUpload    `json:"mediaUpload"`
}

type wireMediaUpload struct {
	Accept    []string `json:"accept"`
	MaxSize   string   `json:"maxSize"`
	Protocols struct {
		Simple *wireUploadProtocol `json:"simple"`
		Resumable *wireUploadProtocol `json:"resumable"`
	} `json:"protocols"`
}

type wireUploadProtocol struct {
	Multipart bool   `json:"multipart"`
	Path      string `json:"path"`
}

// wireRefOrType is the raw shape of a property/items/request/response value:
// either `{"$ref": "..."}` or an inline type tuple.
type wireRefOrType struct {
	Ref string `json:"$ref"`
	wireType `json:",inline"`
}
