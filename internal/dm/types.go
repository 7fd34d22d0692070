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

// Package dm holds the Discovery Model: a faithful, normalized parse of a
// Google Discovery document. It is the leaf of the transformation pipeline;
// everything downstream (the ident allocator, the AIR builder) consumes
// only the types in this package.
package dm

// ApiDoc is the normalized top-level Discovery document.
type ApiDoc struct {
	Name        string
	Version     string
	RootURL     string
	ServicePath string
	// BatchPath is carried for documentation purposes only; batch request
	// execution is out of scope (see spec Non-goals).
	BatchPath string
	Scopes    []OAuthScope
	Schemas   map[string]*SchemaDesc
	Params    map[string]*ParamDesc
	Resources map[string]*ResourceDesc
	Methods   map[string]*MethodDesc
}

// OAuthScope is one entry of the Discovery document's auth.oauth2.scopes map.
type OAuthScope struct {
	URL         string
	Description string
}

// SchemaDesc is a top-level named schema.
type SchemaDesc struct {
	ID string
	// CanonicalName, when present, is the `canonicalName` Discovery field;
	// it otherwise falls back to ID. Surfaced in package documentation only.
	CanonicalName string
	Type          TypeDesc
}

// TypeDesc is the closed sum of normalized Discovery schema shapes described
// in spec.md section 3.1. Exactly one of the Kind-specific fields is
// meaningful, selected by Kind.
type TypeDesc struct {
	Kind Kind

	// Enumeration holds (value, description) pairs when
	// Kind == KindEnumeration.
	Enumeration []EnumVariant
	// Format holds the Discovery `format` string when
	// Kind == KindFormattedString.
	Format string
	// Items holds the element type when Kind == KindArray.
	Items *RefOrType
	// Object fields, meaningful when Kind == KindObject.
	Properties          map[string]*PropertyDesc
	AdditionalProperties *PropertyDesc
}

// Kind enumerates the closed set of normalized primitive and composite
// Discovery type shapes.
type Kind int

const (
	KindAny Kind = iota
	KindBool
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindDate
	KindDateTime
	KindFormattedString
	KindEnumeration
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindDate:
		return "date"
	case KindDateTime:
		return "date-time"
	case KindFormattedString:
		return "formatted-string"
	case KindEnumeration:
		return "enumeration"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// EnumVariant is one (value, description) pair of an enumeration. A missing
// Discovery enumDescription maps to an empty Description, per spec.md
// section 4.1.
type EnumVariant struct {
	Value       string
	Description string
}

// RefOrType is the "reference or inline" sum from spec.md section 3.1.
// Exactly one of Ref or Type is meaningful, selected by IsRef.
type RefOrType struct {
	IsRef bool
	Ref   string
	Type  TypeDesc
}

// PropertyDesc is one entry of an Object's Properties map, or the
// AdditionalProperties slot.
type PropertyDesc struct {
	Description string
	Type        RefOrType
}

// ParamLocation is where a parameter is bound: path or query.
type ParamLocation int

const (
	LocationQuery ParamLocation = iota
	LocationPath
)

// ParamDesc describes a path or query parameter. Discovery restricts
// parameter types to the non-object subset: scalars, enums, and arrays of
// scalars.
type ParamDesc struct {
	Description string
	Default     string
	Location    ParamLocation
	Required    bool
	Repeated    bool
	Type        TypeDesc
	// Pattern, Minimum, and Maximum are retained metadata, unused for
	// codegen (spec.md section 3.1).
	Pattern string
	Minimum string
	Maximum string
}

// ResourceDesc is a (possibly nested) grouping of methods.
type ResourceDesc struct {
	Methods   map[string]*MethodDesc
	Resources map[string]*ResourceDesc
}

// MethodDesc is a single RPC.
type MethodDesc struct {
	ID             string
	Path           string
	HTTPMethod     string
	Description    string
	ParameterOrder []string
	Parameters     map[string]*ParamDesc
	Request        *RefOrType
	Response       *RefOrType
	Scopes         []string

	SupportsMediaDownload bool
	MediaUpload           *MediaUpload
}

// MediaUpload describes the upload protocols offered by a method, per
// spec.md section 3.1.
type MediaUpload struct {
	Accept     []string
	MaxSize    string
	SimplePath string
	HasSimple  bool
	ResumablePath string
	HasResumable  bool
}
